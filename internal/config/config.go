package config

import (
	"fmt"
	"os"
	"strconv"

	"idextract/internal/logger"
)

// Recognizer backend names accepted in RECOGNIZER.
const (
	RecognizerOpenAI     = "openai"
	RecognizerDocumentAI = "documentai"
)

type Config struct {
	// OpenAI Configuration
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAITemperature float32

	// Recognition backend selection: "openai" or "documentai"
	Recognizer string

	// When true, the image is run through Cloud Vision OCR first and the
	// extracted text is handed to the recognizer alongside the image.
	UseOCRText bool

	// Google Cloud Configuration
	GoogleCloudProject    string
	GoogleCloudLocation   string
	DocumentAIProcessorID string

	// Pipeline limits
	RecognizeTimeoutSeconds int
	MaxUploadBytes          int64

	// Server / storage
	ListenAddr   string
	DatabasePath string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OpenAIAPIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:             getEnv("OPENAI_MODEL", "gpt-4o"),
		OpenAITemperature:       getFloatEnv("OPENAI_TEMPERATURE", 0),
		Recognizer:              getEnv("RECOGNIZER", RecognizerOpenAI),
		UseOCRText:              getEnv("USE_OCR_TEXT", "") == "true",
		GoogleCloudProject:      getEnv("GOOGLE_CLOUD_PROJECT", ""),
		GoogleCloudLocation:     getEnv("GOOGLE_CLOUD_LOCATION", "us"),
		DocumentAIProcessorID:   getEnv("DOCUMENT_AI_PROCESSOR_ID", ""),
		RecognizeTimeoutSeconds: getIntEnv("RECOGNIZE_TIMEOUT_SECONDS", 60),
		MaxUploadBytes:          int64(getIntEnv("MAX_UPLOAD_BYTES", 10*1024*1024)),
		ListenAddr:              getEnv("LISTEN_ADDR", ":8080"),
		DatabasePath:            getEnv("DATABASE_PATH", "idextract.db"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:           getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:               getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.Recognizer {
	case RecognizerOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when RECOGNIZER=openai")
		}
	case RecognizerDocumentAI:
		if c.GoogleCloudProject == "" {
			return fmt.Errorf("GOOGLE_CLOUD_PROJECT is required when RECOGNIZER=documentai")
		}
		if c.DocumentAIProcessorID == "" {
			return fmt.Errorf("DOCUMENT_AI_PROCESSOR_ID is required when RECOGNIZER=documentai")
		}
	default:
		return fmt.Errorf("unknown RECOGNIZER %q (expected %q or %q)", c.Recognizer, RecognizerOpenAI, RecognizerDocumentAI)
	}
	if c.RecognizeTimeoutSeconds <= 0 {
		return fmt.Errorf("RECOGNIZE_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(parsed)
		}
	}
	return defaultValue
}
