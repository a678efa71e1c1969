package recognize

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"idextract/internal/document"
	"idextract/internal/logger"
)

// DocumentAIConfig holds configuration for the Document AI backend.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project ID where Document AI is enabled.
	ProjectID string

	// Location is the processing location (e.g., "us", "eu"). Should match
	// where the processor was created.
	Location string

	// ProcessorID identifies the identity-document processor.
	ProcessorID string

	// Timeout is the maximum time to wait for processing. Default: 60s.
	Timeout time.Duration
}

// DocumentAIRecognizer implements Recognizer using a Google Document AI
// identity-document processor. Entity types from the processor are mapped
// into the pipeline's raw field vocabulary; fields the processor does not
// emit (including document_type, which most identity processors omit) are
// backfilled with document.NotFound and left to downstream handling.
type DocumentAIRecognizer struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
	log    zerolog.Logger
}

// entityFieldNames translates Document AI identity entity types into the
// raw field names the recognition contract uses. Unlisted types fall back
// to their snake-cased form and flow through the alias table downstream.
var entityFieldNames = map[string]string{
	"family_name":     "last_name",
	"given_names":     "first_name",
	"given_name":      "first_name",
	"document_id":     "document_number",
	"date_of_birth":   "date_of_birth",
	"expiration_date": "expiration_date",
	"issue_date":      "issue_date",
	"mrz_code":        "mrz",
	"portrait":        "",
}

// NewDocumentAIRecognizer creates a recognizer with credentials from the
// environment (GOOGLE_CREDENTIALS inline JSON or
// GOOGLE_APPLICATION_CREDENTIALS file path, falling back to application
// default credentials).
func NewDocumentAIRecognizer(ctx context.Context, config DocumentAIConfig) (*DocumentAIRecognizer, error) {
	const op = "NewDocumentAIRecognizer"

	if config.ProjectID == "" || config.ProcessorID == "" {
		return nil, WrapRecognitionError(op, ErrRecognitionFailed, "ProjectID and ProcessorID are required")
	}
	if config.Location == "" {
		config.Location = "us"
	}
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}

	var clientOptions []option.ClientOption
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, WrapRecognitionError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapRecognitionError(op, err, fmt.Sprintf("failed to create Document AI client for location %s", config.Location))
	}

	return NewDocumentAIRecognizerWithClient(client, config), nil
}

// NewDocumentAIRecognizerWithClient creates a recognizer with an explicit
// client (for testing).
func NewDocumentAIRecognizerWithClient(client *documentai.DocumentProcessorClient, config DocumentAIConfig) *DocumentAIRecognizer {
	return &DocumentAIRecognizer{
		client: client,
		config: config,
		log:    logger.WithComponent("documentai-recognizer"),
	}
}

// Recognize runs the processor over the image and maps the returned
// entities onto the requested field set. The hint is unused: the processor
// is already type-specific.
func (p *DocumentAIRecognizer) Recognize(ctx context.Context, in Input, hint document.Type, fields []string) (RawResult, error) {
	const op = "Recognize"

	if len(in.Image) == 0 {
		return nil, WrapRecognitionError(op, ErrRecognitionFailed, "no image content")
	}

	processCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			p.config.ProjectID, p.config.Location, p.config.ProcessorID),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  in.Image,
				MimeType: http.DetectContentType(in.Image),
			},
		},
	}

	resp, err := p.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, WrapRecognitionError(op, ErrRecognitionFailed, fmt.Sprintf("ProcessDocument: %v", err))
	}
	if resp.Document == nil {
		return nil, WrapRecognitionError(op, ErrEmptyResponse, "no document in response")
	}

	result := RawResult{}
	for _, entity := range resp.Document.Entities {
		name := entityFieldName(entity.Type)
		if name == "" {
			continue
		}
		value := strings.TrimSpace(entity.MentionText)
		if entity.NormalizedValue != nil && entity.NormalizedValue.Text != "" {
			value = strings.TrimSpace(entity.NormalizedValue.Text)
		}
		if value == "" {
			continue
		}
		result[name] = value
	}

	for _, field := range fields {
		if _, ok := result[field]; !ok {
			result[field] = document.NotFound
		}
	}

	p.log.Debug().
		Str("hint", hint.String()).
		Int("entities", len(resp.Document.Entities)).
		Int("requested", len(fields)).
		Msg("Document AI recognition pass completed")

	return result, nil
}

func entityFieldName(entityType string) string {
	key := strings.ToLower(strings.TrimSpace(entityType))
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if mapped, ok := entityFieldNames[key]; ok {
		return mapped
	}
	return key
}
