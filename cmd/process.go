package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"idextract/internal/config"
	"idextract/internal/document"
	"idextract/internal/extract"
	"idextract/internal/imaging"
	"idextract/internal/logger"
	"idextract/internal/recognize"
)

var processCmd = &cobra.Command{
	Use:   "process [document-file]",
	Short: "Extract fields from an identity document image or PDF",
	Long: `Process a scanned identity document (image or PDF) and extract its
fields using AI recognition.

The document is checked against minimum quality requirements, classified
(driver's license, passport, or EAD card), and put through a second,
type-specific extraction pass. Extracted dates are normalized and
required fields validated for the detected type.

Required environment variables:
  OPENAI_API_KEY - OpenAI API key (when RECOGNIZER=openai, the default)
  GOOGLE_CLOUD_PROJECT, DOCUMENT_AI_PROCESSOR_ID - when RECOGNIZER=documentai`,
	Example: `  # Extract fields from a license scan
  idextract process license.jpg

  # Process a PDF scan and save the result as JSON
  idextract process passport.pdf --json -o result.json

  # Run Cloud Vision OCR first and pass the text to the recognizer
  idextract process ead-card.png --ocr`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	processCmd.Flags().Bool("json", false, "Output as JSON")
	processCmd.Flags().Int("timeout", 300, "Overall processing timeout in seconds")
	processCmd.Flags().Bool("ocr", false, "Run Cloud Vision OCR before recognition")
}

func runProcess(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("process")

	outputPath, _ := cmd.Flags().GetString("output")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	useOCR, _ := cmd.Flags().GetBool("ocr")

	filePath := args[0]

	log.Info().
		Str("file", filePath).
		Str("output", outputPath).
		Bool("json", jsonOutput).
		Bool("ocr", useOCR).
		Int("timeout", timeoutSecs).
		Msg("Starting document processing")

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if useOCR {
		cfg.UseOCRText = true
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		log.Error().Err(err).Str("file", filePath).Msg("Failed to read document file")
		return fmt.Errorf("failed to read document file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("document file is empty: %s", filePath)
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	pipeline, cleanup, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	startTime := time.Now()
	result, err := pipeline.Process(ctx, data)
	if err != nil {
		return handleProcessError(err, log)
	}

	log.Info().
		Str("document_type", result.DocumentType).
		Bool("complete", result.Complete).
		Int("fields", len(result.Fields)).
		Dur("duration", time.Since(startTime)).
		Msg("Document processing completed successfully")

	return outputResult(result, outputPath, jsonOutput, log)
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// handleProcessError provides user-friendly error messages for pipeline failures
func handleProcessError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Document processing failed")

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("processing timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("processing was canceled")
	case errors.Is(err, imaging.ErrUnsuitableImage):
		return fmt.Errorf("%s", extract.UserMessage(err))
	case errors.Is(err, imaging.ErrConversionFailed):
		return fmt.Errorf("failed to convert PDF - the file may be corrupted")
	case errors.Is(err, recognize.ErrMissingAPIKey):
		return fmt.Errorf("OPENAI_API_KEY is not set. Export it or add it to your .env file")
	case errors.Is(err, recognize.ErrRecognitionFailed):
		return fmt.Errorf("recognition service call failed. This may be a network issue or API quota limit: %w", err)
	default:
		return fmt.Errorf("document processing failed: %w", err)
	}
}

// outputResult formats and writes the extraction result
func outputResult(result *extract.Result, outputPath string, jsonOutput bool, log zerolog.Logger) error {
	var outputData []byte

	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Error().Err(err).Msg("Failed to marshal JSON output")
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		outputData = data
	} else {
		outputData = []byte(formatResultText(result))
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, outputData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}
		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(outputData)).
			Msg("Extraction result written to file")
		return nil
	}

	if _, err := os.Stdout.Write(outputData); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if !jsonOutput {
		fmt.Println()
	}
	return nil
}

func formatResultText(result *extract.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Document type: %s\n", result.TypeLabel)
	fmt.Fprintf(&b, "Complete: %v\n", result.Complete)
	for _, advisory := range result.Advisories {
		fmt.Fprintf(&b, "Advisory: %s\n", advisory)
	}
	b.WriteString("\nFields:\n")
	for _, field := range result.Fields {
		marker := ""
		if field.NeedsCorrection {
			marker = "  [NEEDS CORRECTION]"
		} else if field.Required {
			marker = "  [required]"
		}
		value := field.Value
		if value == document.NotFound {
			value = "(not found)"
		}
		fmt.Fprintf(&b, "  %-22s %s%s\n", field.Name+":", value, marker)
	}

	return b.String()
}
