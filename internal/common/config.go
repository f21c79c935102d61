package common

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Log    LogConfig
	Batch  BatchConfig
	PDF    PDFConfig
	Export ExportConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// BatchConfig controls how documents are walked and processed
type BatchConfig struct {
	Workers    int
	DocTimeout time.Duration
	Recursive  bool
	SkipHidden bool
}

// PDFConfig holds PDF extraction configuration
type PDFConfig struct {
	Pdftotext  string // binary for the metadata text fallback; "off" disables it
	Preflight  bool
	MinColumns int
}

// ExportConfig holds workbook configuration
type ExportConfig struct {
	Sheet string
}

// LoadConfig loads configuration from environment variables, reading a .env file first when present.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		Batch: BatchConfig{
			Workers:    getEnvAsInt("INVOICE_WORKERS", 1),
			DocTimeout: getEnvAsDuration("INVOICE_DOC_TIMEOUT", 2*time.Minute),
			Recursive:  getEnvAsBool("INVOICE_RECURSIVE", false),
			SkipHidden: getEnvAsBool("INVOICE_SKIP_HIDDEN", true),
		},
		PDF: PDFConfig{
			Pdftotext:  getEnv("PDFTOTEXT", "pdftotext"),
			Preflight:  getEnvAsBool("PDF_PREFLIGHT", true),
			MinColumns: getEnvAsInt("PDF_TABLE_MIN_COLUMNS", 3),
		},
		Export: ExportConfig{
			Sheet: getEnv("INVOICE_SHEET", "Sheet1"),
		},
	}
}

// TextFallbackEnabled reports whether the pdftotext fallback should be wired.
func (c PDFConfig) TextFallbackEnabled() bool {
	return c.Pdftotext != "" && !strings.EqualFold(c.Pdftotext, "off")
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator().
		Field("INVOICE_WORKERS", c.Batch.Workers, Positive).
		Field("PDF_TABLE_MIN_COLUMNS", c.PDF.MinColumns, Positive).
		Field("INVOICE_SHEET", c.Export.Sheet, Required, MaxLength(31))
	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
