package table

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/invoice-extract/constants"
	"github.com/joseph-ayodele/invoice-extract/internal/core/normalize"
)

// Fields is the row-level part of a line item.
type Fields struct {
	ItemName  string
	Unit      string
	Quantity  *float64
	UnitPrice *float64
	LineTotal *float64
	TaxRate   string
	TaxAmount *float64
}

// Strategy turns one trimmed row into Fields; ok is false when the row does
// not describe a line item.
type Strategy interface {
	Extract(row []string) (f Fields, ok bool)
}

// qualifies is the validity filter shared by both strategies: section
// headers, subtotal lines and blank separators have no name or no
// quantity/price text.
func qualifies(name, quantity, unitPrice string) bool {
	return name != "" && (quantity != "" || unitPrice != "")
}

// MappedStrategy reads cells through a ColumnMap built from a header row.
type MappedStrategy struct {
	Columns ColumnMap
}

func (s MappedStrategy) Extract(row []string) (Fields, bool) {
	name := normalize.CleanItemName(s.Columns.Cell(row, ItemName))
	qty := s.Columns.Cell(row, Quantity)
	price := s.Columns.Cell(row, UnitPrice)
	if !qualifies(name, qty, price) {
		return Fields{}, false
	}

	rate := normalize.ParseTaxRate(s.Columns.Cell(row, TaxRate))
	f := Fields{
		ItemName:  name,
		Unit:      s.Columns.Cell(row, Unit),
		Quantity:  normalize.NumberPtr(qty),
		UnitPrice: normalize.NumberPtr(price),
		LineTotal: normalize.NumberPtr(s.Columns.Cell(row, LineTotal)),
		TaxRate:   rate.Label,
	}
	f.TaxAmount = normalize.TaxAmount(f.LineTotal, rate.Percent)
	return f, true
}

// PositionalStrategy guesses the layout of header-less tables: STT, name
// cells, unit, quantity, unit price, then amounts. It needs at least
// MinCells cells.
type PositionalStrategy struct {
	MinCells int
}

const defaultUnitColumn = 2

func (s PositionalStrategy) Extract(row []string) (Fields, bool) {
	if len(row) < s.MinCells {
		return Fields{}, false
	}

	unitIdx := findUnitColumn(row)
	tail := row[unitIdx+1:]
	var qty, price string
	if len(tail) >= 2 {
		qty, price = tail[0], tail[1]
	}
	name := normalize.CleanItemName(joinNonEmpty(row[1:unitIdx]))
	if !qualifies(name, qty, price) {
		return Fields{}, false
	}

	rate := scanTaxRate(tail)
	f := Fields{
		ItemName:  name,
		Unit:      row[unitIdx],
		Quantity:  normalize.NumberPtr(qty),
		UnitPrice: normalize.NumberPtr(price),
		TaxRate:   rate.Label,
	}
	f.LineTotal = lastPositive(row)
	if f.LineTotal == nil && f.Quantity != nil && f.UnitPrice != nil {
		if v := normalize.LineTotal(*f.Quantity, *f.UnitPrice); v != 0 {
			f.LineTotal = &v
		}
	}
	f.TaxAmount = normalize.TaxAmount(f.LineTotal, rate.Percent)
	return f, true
}

// findUnitColumn returns the right-most cell (never the first) holding a
// known unit label, or defaultUnitColumn.
func findUnitColumn(row []string) int {
	for i := len(row) - 1; i > 0; i-- {
		if constants.IsKnownUnit(row[i]) {
			return i
		}
	}
	return defaultUnitColumn
}

// scanTaxRate walks the cells after the unit column from the end and takes
// the first 5/8/10 percent value or KCT. Other rates are ignored.
func scanTaxRate(cells []string) normalize.TaxRate {
	for i := len(cells) - 1; i >= 0; i-- {
		v := strings.TrimSpace(cells[i])
		if v == "" {
			continue
		}
		stripped := strings.TrimSpace(strings.ReplaceAll(v, "%", ""))
		if isDigits(stripped) {
			n, err := strconv.Atoi(stripped)
			if err != nil {
				continue
			}
			if _, ok := constants.PositionalTaxRates[n]; ok {
				return normalize.TaxRate{Label: strconv.Itoa(n), Percent: float64(n)}
			}
			continue
		}
		if strings.EqualFold(v, constants.NotTaxable) {
			return normalize.TaxRate{Label: constants.NotTaxable}
		}
	}
	return normalize.TaxRate{}
}

// lastPositive returns the right-most cell that parses to a value above zero.
func lastPositive(row []string) *float64 {
	for i := len(row) - 1; i >= 0; i-- {
		if v, ok := normalize.ParseNumber(row[i]); ok && v > 0 {
			return &v
		}
	}
	return nil
}

func joinNonEmpty(cells []string) string {
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
