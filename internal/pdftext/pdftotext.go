package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// CommandText reads document text with poppler's pdftotext.
type CommandText struct {
	Binary string
	runner Runner
}

// NewCommandText returns a TextSource backed by binary (default "pdftotext").
func NewCommandText(binary string, logger *slog.Logger) *CommandText {
	if logger == nil {
		logger = slog.Default()
	}
	if binary == "" {
		binary = "pdftotext"
	}
	return &CommandText{Binary: binary, runner: execRunner{logger: logger}}
}

// WithRunner swaps the command runner, for tests.
func (c *CommandText) WithRunner(r Runner) *CommandText {
	c.runner = r
	return c
}

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// DocumentText runs `pdftotext -layout -enc UTF-8 -eol unix <path> -`.
// Form feeds between pages become newlines.
func (c *CommandText) DocumentText(ctx context.Context, path string) (string, error) {
	out, errb, err := c.runner.Run(ctx, c.Binary, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", fmt.Errorf("%s: %w: %s", c.Binary, err, strings.TrimSpace(string(errb)))
	}
	text := reCRLF.ReplaceAllString(string(out), "\n")
	text = strings.ReplaceAll(text, "\f", "\n")
	text = reMultiBlank.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}
