package recognize

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"idextract/internal/document"
	"idextract/internal/logger"
)

// OpenAIRecognizer implements Recognizer using GPT vision extraction. When
// the input carries OCR text the prompt is text-only; otherwise the raster
// image is attached to the chat message.
type OpenAIRecognizer struct {
	client      *openai.Client
	model       string
	temperature float32
	log         zerolog.Logger
}

// NewOpenAIRecognizer creates a recognizer backed by the OpenAI chat API.
func NewOpenAIRecognizer(apiKey, model string, temperature float32) (*OpenAIRecognizer, error) {
	if apiKey == "" {
		return nil, WrapRecognitionError("NewOpenAIRecognizer", ErrMissingAPIKey, "OPENAI_API_KEY is not set")
	}
	return NewOpenAIRecognizerWithClient(openai.NewClient(apiKey), model, temperature), nil
}

// NewOpenAIRecognizerWithClient creates a recognizer with an explicit client
// (for testing).
func NewOpenAIRecognizerWithClient(client *openai.Client, model string, temperature float32) *OpenAIRecognizer {
	return &OpenAIRecognizer{
		client:      client,
		model:       model,
		temperature: temperature,
		log:         logger.WithComponent("openai-recognizer"),
	}
}

// Recognize requests the given fields from the document via a single chat
// completion and parses the line-oriented response.
func (s *OpenAIRecognizer) Recognize(ctx context.Context, in Input, hint document.Type, fields []string) (RawResult, error) {
	const op = "Recognize"

	userMessage := s.buildUserMessage(in, hint, fields)

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   500,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			userMessage,
		},
	})
	if err != nil {
		return nil, WrapRecognitionError(op, ErrRecognitionFailed, fmt.Sprintf("chat completion: %v", err))
	}
	if len(resp.Choices) == 0 {
		return nil, WrapRecognitionError(op, ErrEmptyResponse, "no choices in response")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, WrapRecognitionError(op, ErrEmptyResponse, "empty message content")
	}

	result := parseFieldLines(content, fields)

	s.log.Debug().
		Str("hint", hint.String()).
		Int("requested", len(fields)).
		Int("extracted", len(result)).
		Msg("Recognition pass completed")

	return result, nil
}

func (s *OpenAIRecognizer) buildUserMessage(in Input, hint document.Type, fields []string) openai.ChatCompletionMessage {
	prompt := buildExtractionPrompt(in, hint, fields)

	if in.Text != "" || len(in.Image) == 0 {
		return openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleUser,
			Content: prompt,
		}
	}

	mimeType := http.DetectContentType(in.Image)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(in.Image))

	return openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{
				Type: openai.ChatMessagePartTypeText,
				Text: prompt,
			},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    dataURL,
					Detail: openai.ImageURLDetailAuto,
				},
			},
		},
	}
}

const systemPrompt = `You are a document field extraction expert specializing in U.S. identity documents.
You excel at finding patterns in noisy scans and correcting common OCR errors.
You understand document layout and field relationships.
You NEVER guess values - use NOT_FOUND if uncertain.`

func buildExtractionPrompt(in Input, hint document.Type, fields []string) string {
	var b strings.Builder

	docLabel := hint.String()
	if !hint.Known() {
		docLabel = "U.S. identity document (driver's license, passport, or EAD card)"
	}

	fmt.Fprintf(&b, "You are extracting fields from a %s.\n", docLabel)
	b.WriteString("The source may be noisy and contain OCR errors; use context clues and correct common misreads (0/O, 1/I, 5/S, 8/B).\n\n")
	b.WriteString("Required fields to extract:\n")
	for _, field := range fields {
		fmt.Fprintf(&b, "- %s\n", field)
	}
	b.WriteString(`
EXTRACTION RULES:
1. Return "NOT_FOUND" if a field is truly not present
2. Do not guess or make up values
3. Dates use U.S. format MM/DD/YYYY where the document shows one
4. document_type is the kind of document (e.g. "DRIVER LICENSE", "PASSPORT", "EMPLOYMENT AUTHORIZATION")
5. Double-check critical fields (names, numbers, dates)

Respond in exact format, one field per line:
field_name: value
`)

	if in.Text != "" {
		b.WriteString("\nText extracted from the document:\n")
		b.WriteString(in.Text)
		b.WriteString("\n")
	}

	return b.String()
}
