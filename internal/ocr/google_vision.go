package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// GoogleVisionTextExtractor implements TextExtractor using the Google Cloud
// Vision document text detection feature.
type GoogleVisionTextExtractor struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionTextExtractor creates an extractor with credentials from
// the environment. It expects either GOOGLE_APPLICATION_CREDENTIALS path or
// GOOGLE_CREDENTIALS JSON in env, falling back to application default
// credentials.
func NewGoogleVisionTextExtractor(ctx context.Context) (*GoogleVisionTextExtractor, error) {
	const op = "NewGoogleVisionTextExtractor"

	var client *vision.ImageAnnotatorClient
	var err error

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionTextExtractor{client: client}, nil
}

// NewGoogleVisionTextExtractorWithClient creates an extractor with an
// explicit client (for testing).
func NewGoogleVisionTextExtractorWithClient(client *vision.ImageAnnotatorClient) *GoogleVisionTextExtractor {
	return &GoogleVisionTextExtractor{client: client}
}

// ExtractText runs document text detection on the image and returns the
// full detected text.
func (g *GoogleVisionTextExtractor) ExtractText(ctx context.Context, image []byte) (string, error) {
	const op = "ExtractText"

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: image},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}
	if len(resp.Responses) == 0 {
		return "", WrapOCRError(op, ErrOCRFailed, "no response from Vision API")
	}

	annotation := resp.Responses[0]
	if annotation.Error != nil {
		return "", WrapOCRError(op, ErrOCRFailed, fmt.Sprintf("Vision API error: %s", annotation.Error.Message))
	}
	if annotation.FullTextAnnotation == nil || strings.TrimSpace(annotation.FullTextAnnotation.Text) == "" {
		return "", WrapOCRError(op, ErrEmptyDocument, "")
	}

	return annotation.FullTextAnnotation.Text, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionTextExtractor) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
