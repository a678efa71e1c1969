package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"idextract/internal/config"
	"idextract/internal/document"
	"idextract/internal/extract"
	"idextract/internal/imaging"
	"idextract/internal/ocr"
	"idextract/internal/recognize"
)

// buildRecognizer constructs the configured recognition backend.
func buildRecognizer(ctx context.Context, cfg *config.Config, log zerolog.Logger) (recognize.Recognizer, error) {
	switch cfg.Recognizer {
	case config.RecognizerOpenAI:
		recognizer, err := recognize.NewOpenAIRecognizer(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITemperature)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create OpenAI recognizer")
			return nil, fmt.Errorf("failed to create OpenAI recognizer: %w", err)
		}
		return recognizer, nil

	case config.RecognizerDocumentAI:
		recognizer, err := recognize.NewDocumentAIRecognizer(ctx, recognize.DocumentAIConfig{
			ProjectID:   cfg.GoogleCloudProject,
			Location:    cfg.GoogleCloudLocation,
			ProcessorID: cfg.DocumentAIProcessorID,
			Timeout:     time.Duration(cfg.RecognizeTimeoutSeconds) * time.Second,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to create Document AI recognizer")
			return nil, fmt.Errorf("failed to create Document AI recognizer: %w", err)
		}
		return recognizer, nil

	default:
		return nil, fmt.Errorf("unknown recognizer backend %q", cfg.Recognizer)
	}
}

// buildPipeline assembles the full extraction pipeline from configuration.
// The returned cleanup closes any clients the pipeline holds open.
func buildPipeline(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*extract.Pipeline, func(), error) {
	recognizer, err := buildRecognizer(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	var textExtractor ocr.TextExtractor
	cleanup := func() {}
	if cfg.UseOCRText {
		visionExtractor, err := ocr.NewGoogleVisionTextExtractor(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create Vision text extractor")
			return nil, nil, fmt.Errorf("failed to create Vision text extractor: %w", err)
		}
		textExtractor = visionExtractor
		cleanup = func() {
			if err := visionExtractor.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Vision client")
			}
		}
	}

	pipelineConfig := extract.DefaultPipelineConfig()
	pipelineConfig.RecognizeTimeout = time.Duration(cfg.RecognizeTimeoutSeconds) * time.Second
	pipelineConfig.Limits.MaxBytes = cfg.MaxUploadBytes

	pipeline := extract.New(
		recognizer,
		imaging.NewFirstPageRasterizer(),
		textExtractor,
		document.LoadTemplates(),
		pipelineConfig,
	)

	return pipeline, cleanup, nil
}
