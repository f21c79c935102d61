package pdftext

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// LedongthucOpener reads page content with github.com/ledongthuc/pdf and
// rebuilds text and tables with a Layout. Pages are decoded eagerly, so the
// returned Document holds no open file.
type LedongthucOpener struct {
	layout    Layout
	preflight bool
	logger    *slog.Logger
}

func NewLedongthucOpener(layout Layout, preflight bool, logger *slog.Logger) *LedongthucOpener {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedongthucOpener{layout: layout, preflight: preflight, logger: logger}
}

// Open validates path (when preflight is on) and decodes all pages. Panics
// raised by the PDF reader on malformed content are returned as errors.
func (o *LedongthucOpener) Open(ctx context.Context, path string) (doc Document, err error) {
	if o.preflight {
		if err := Validate(path); err != nil {
			return nil, fmt.Errorf("preflight: %w", err)
		}
	}

	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			o.logger.Warn("pdf close failed", "path", path, "error", cerr)
		}
	}()

	n := r.NumPage()
	pages := make(StaticDocument, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, StaticPage{})
			continue
		}
		pages = append(pages, o.layout.Page(toGlyphs(p.Content().Text)))
	}
	o.logger.Debug("pdf decoded", "path", path, "pages", n)
	return pages, nil
}

func toGlyphs(texts []pdf.Text) []Glyph {
	out := make([]Glyph, 0, len(texts))
	for _, t := range texts {
		out = append(out, Glyph{X: t.X, Y: t.Y, W: t.W, Size: t.FontSize, S: t.S})
	}
	return out
}

var disableConfigDir sync.Once

// Validate runs pdfcpu's relaxed structural validation on path.
func Validate(path string) error {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.ValidateFile(path, conf)
}
