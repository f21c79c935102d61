package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/invoice-extract/constants"
	"github.com/joseph-ayodele/invoice-extract/internal/common"
	"github.com/joseph-ayodele/invoice-extract/internal/core/normalize"
	"github.com/joseph-ayodele/invoice-extract/internal/entity"
)

const defaultSheet = "Sheet1"

// Service renders line items into the consolidated VAT workbook.
type Service struct {
	logger    *slog.Logger
	sheet     string
	writeFile func(name string, data []byte, perm os.FileMode) error
}

func NewService(sheet string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(sheet) == "" {
		sheet = defaultSheet
	}
	return &Service{logger: logger, sheet: sheet, writeFile: os.WriteFile}
}

// Filter drops header rows that leaked into the data and rows with no item,
// quantity or unit price. Order is preserved.
func (s *Service) Filter(items []entity.LineItem) []entity.LineItem {
	out := make([]entity.LineItem, 0, len(items))
	for _, it := range items {
		if normalize.ContainsFolded(it.ItemName, constants.HeaderLeakage...) {
			continue
		}
		if it.ItemName == "" && it.Quantity == nil && it.UnitPrice == nil {
			continue
		}
		out = append(out, it)
	}
	return out
}

// BuildWorkbook filters items and lays them out one row each, numbered from 1.
func (s *Service) BuildWorkbook(items []entity.LineItem) (*excelize.File, int, error) {
	rows := s.Filter(items)

	f := excelize.NewFile()
	if s.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, s.sheet); err != nil {
			return nil, 0, fmt.Errorf("rename sheet: %w", err)
		}
	}
	sheet := s.sheet

	for i, h := range constants.ExportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, it := range rows {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		number := func(col int, v *float64) {
			if v != nil {
				write(col, *v)
			}
		}

		write(1, i+1)
		write(2, constants.FormCode)
		write(3, it.Invoice.SerialCode)
		write(4, it.Invoice.InvoiceNumber)
		write(5, it.Invoice.IssueDate)
		write(6, it.Invoice.SellerName)
		write(7, it.Invoice.SellerTaxCode)
		write(8, it.ItemName)
		write(9, it.Unit)
		number(10, it.Quantity)
		number(11, it.UnitPrice)
		number(12, it.LineTotal)
		write(13, it.TaxRate)
		number(14, it.TaxAmount)
		write(15, it.Notes)
	}

	_ = f.SetColWidth(sheet, "A", "A", 6)  // stt
	_ = f.SetColWidth(sheet, "B", "E", 14) // form, serial, number, date
	_ = f.SetColWidth(sheet, "F", "F", 40) // seller
	_ = f.SetColWidth(sheet, "G", "G", 16) // tax code
	_ = f.SetColWidth(sheet, "H", "H", 48) // item
	_ = f.SetColWidth(sheet, "I", "I", 10) // unit
	_ = f.SetColWidth(sheet, "J", "N", 16) // amounts
	_ = f.SetColWidth(sheet, "O", "O", 20) // notes

	return f, len(rows), nil
}

// WriteFile builds the workbook and writes it to path. If path is locked or
// not writable it retries once on FallbackPath(path) and returns the path
// actually written.
func (s *Service) WriteFile(items []entity.LineItem, path string) (string, error) {
	start := time.Now()

	f, n, err := s.BuildWorkbook(items)
	if err != nil {
		return "", common.ExportError("build workbook", err)
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", common.ExportError("xlsx write", err)
	}

	written := path
	err = s.writeFile(path, buf.Bytes(), 0o644)
	if err != nil && errors.Is(err, fs.ErrPermission) {
		written = FallbackPath(path)
		s.logger.Warn("export.xlsx.locked", "path", path, "fallback", written, "error", err)
		err = s.writeFile(written, buf.Bytes(), 0o644)
	}
	if err != nil {
		return "", common.ExportError("write "+written, err)
	}

	s.logger.Info("export.xlsx.ok",
		"path", written,
		"rows", n,
		"dropped", len(items)-n,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return written, nil
}

// FallbackPath inserts constants.FallbackSuffix before the extension:
// "out/result.xlsx" becomes "out/result_v2.xlsx".
func FallbackPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + constants.FallbackSuffix + ext
}
