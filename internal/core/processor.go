package core

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/invoice-extract/internal/common"
	"github.com/joseph-ayodele/invoice-extract/internal/core/metadata"
	"github.com/joseph-ayodele/invoice-extract/internal/core/table"
	"github.com/joseph-ayodele/invoice-extract/internal/entity"
	"github.com/joseph-ayodele/invoice-extract/internal/logging"
	"github.com/joseph-ayodele/invoice-extract/internal/pdftext"
)

// Processor turns one invoice PDF into line items: document metadata first,
// then a table scan over all pages with a single per-document table context.
type Processor struct {
	logger   *slog.Logger
	opener   pdftext.Opener
	fallback pdftext.TextSource
}

// NewProcessor wires the PDF opener. fallback may be nil; when set it supplies
// the metadata text for documents whose pages carry no extractable text.
func NewProcessor(logger *slog.Logger, opener pdftext.Opener, fallback pdftext.TextSource) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, opener: opener, fallback: fallback}
}

// ProcessFile extracts the line items of the PDF at path. Any error means the
// whole document is unusable; callers should skip it.
func (p *Processor) ProcessFile(ctx context.Context, path string) ([]entity.LineItem, error) {
	log := logging.FromContext(ctx, p.logger)

	doc, err := p.opener.Open(ctx, path)
	if err != nil {
		return nil, common.ExtractionError(path, err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			log.Warn("processor.close.failed", "error", cerr)
		}
	}()

	pages := doc.Pages()
	text := DocumentText(pages)
	if text == "" && p.fallback != nil {
		if text, err = p.fallback.DocumentText(ctx, path); err != nil {
			log.Warn("processor.text_fallback.failed", "error", err)
			text = ""
		}
	}

	invoice := metadata.Extract(text, filepath.Base(path))
	invoice.SourcePath = path
	items := ExtractItems(invoice, pages)

	log.Debug("processor.document.ok",
		"pages", len(pages),
		"items", len(items),
		"invoice_number", invoice.InvoiceNumber,
		"serial", invoice.SerialCode,
	)
	return items, nil
}

// DocumentText joins the text of every page that has any, one page per line block.
func DocumentText(pages []pdftext.Page) string {
	texts := make([]string, 0, len(pages))
	for _, pg := range pages {
		if t, ok := pg.Text(); ok && t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n")
}

// ExtractItems scans the first table of each page in order. The table context
// lives for exactly one document, so a header found on page 1 maps page 2.
func ExtractItems(invoice entity.InvoiceDocument, pages []pdftext.Page) []entity.LineItem {
	tc := table.NewContext()
	var items []entity.LineItem
	for _, pg := range pages {
		tables := pg.Tables()
		if len(tables) == 0 {
			continue
		}
		for _, row := range tables[0] {
			if f, ok := tc.Process(row); ok {
				items = append(items, Assemble(invoice, f))
			}
		}
	}
	return items
}
