package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idextract/internal/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "idextract",
	Short: "Identity document extraction - pull structured fields from scans",
	Long: `idextract extracts structured fields from scanned U.S. identity
documents (driver's licenses, passports, EAD cards).

Documents go through a quality gate, up to two AI recognition passes,
field canonicalization, and required-field validation. Results can be
printed once per document or served over an HTTP API backed by SQLite.`,
	Version: version,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("idextract executed")

		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}
