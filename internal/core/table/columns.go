// Package table classifies raw invoice table rows and maps them to line-item fields.
package table

import (
	"strings"

	"github.com/joseph-ayodele/invoice-extract/internal/core/normalize"
)

// Field is a canonical line-item column.
type Field int

const (
	ItemName Field = iota
	Unit
	Quantity
	UnitPrice
	TaxRate
	LineTotal
)

func (f Field) String() string {
	switch f {
	case ItemName:
		return "item_name"
	case Unit:
		return "unit"
	case Quantity:
		return "quantity"
	case UnitPrice:
		return "unit_price"
	case TaxRate:
		return "tax_rate"
	case LineTotal:
		return "line_total"
	}
	return "unknown"
}

// ColumnMap maps a canonical field to its zero-based column index.
type ColumnMap map[Field]int

// headerKeywords are checked in order against each folded header cell; the
// first keyword a cell contains decides its field.
var headerKeywords = []struct {
	keyword string
	field   Field
}{
	{"ten hang", ItemName},
	{"don vi", Unit},
	{"so luong", Quantity},
	{"don gia", UnitPrice},
	{"thue suat", TaxRate},
	{"thanh tien", LineTotal},
}

// IsHeader reports whether row names the goods column ("Tên hàng", with or without accents).
func IsHeader(row []string) bool {
	for _, c := range row {
		if normalize.ContainsFolded(c, headerKeywords[0].keyword) {
			return true
		}
	}
	return false
}

// BuildColumnMap scans every header cell for a known keyword. When two cells
// name the same field the later one wins.
func BuildColumnMap(header []string) ColumnMap {
	m := ColumnMap{}
	for i, c := range header {
		folded := normalize.Fold(c)
		for _, k := range headerKeywords {
			if strings.Contains(folded, k.keyword) {
				m[k.field] = i
				break
			}
		}
	}
	return m
}

// Cell returns the cell for f, or "" when f is unmapped or out of range.
func (m ColumnMap) Cell(row []string, f Field) string {
	idx, ok := m[f]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
