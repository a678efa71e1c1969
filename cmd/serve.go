package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"idextract/internal/config"
	"idextract/internal/logger"
	"idextract/internal/server"
	"idextract/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the document extraction HTTP API",
	Long: `Start an HTTP server exposing the extraction pipeline and document
store.

Endpoints:
  POST   /api/documents            - upload and process a document
  GET    /api/documents            - list processed documents
  GET    /api/documents/:id        - fetch one document with its fields
  DELETE /api/documents/:id        - delete a document
  PUT    /api/documents/:id/fields - record manual field corrections
  GET    /health                   - liveness check

Processed documents and their extracted fields are persisted in SQLite.`,
	Example: `  # Serve on the default address with the default database
  idextract serve

  # Custom address and database location
  idextract serve --addr :9090 --db /var/lib/idextract/documents.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default from LISTEN_ADDR or :8080)")
	serveCmd.Flags().String("db", "", "SQLite database path (default from DATABASE_PATH or idextract.db)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, cleanup, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Error().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to open database")
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}()

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.New(pipeline, st, cfg.MaxUploadBytes).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.ListenAddr).
			Str("database", cfg.DatabasePath).
			Str("recognizer", cfg.Recognizer).
			Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error().Err(err).Msg("HTTP server failed")
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}
