package table

import (
	"strings"
)

// MinPositionalCells is the narrowest row the positional fallback accepts.
const MinPositionalCells = 6

// Context carries the column mapping of one document across all its pages.
// Create one per document; the first header row found fixes the mapping.
type Context struct {
	Columns     ColumnMap
	HeaderFound bool

	positional PositionalStrategy
}

// NewContext returns an empty per-document context.
func NewContext() *Context {
	return &Context{
		Columns:    ColumnMap{},
		positional: PositionalStrategy{MinCells: MinPositionalCells},
	}
}

// Process classifies one raw row. Blank rows and the header row produce
// nothing; other rows go through the mapped strategy once a header has been
// seen and through the positional fallback before that.
func (c *Context) Process(raw []string) (Fields, bool) {
	row, blank := trimRow(raw)
	if blank {
		return Fields{}, false
	}

	if !c.HeaderFound && IsHeader(row) {
		c.HeaderFound = true
		c.Columns = BuildColumnMap(row)
		return Fields{}, false
	}
	return c.Strategy().Extract(row)
}

// Strategy returns the extraction strategy for the current header state.
func (c *Context) Strategy() Strategy {
	if c.HeaderFound {
		return MappedStrategy{Columns: c.Columns}
	}
	return c.positional
}

func trimRow(raw []string) ([]string, bool) {
	if len(raw) == 0 {
		return nil, true
	}
	row := make([]string, len(raw))
	blank := true
	for i, cell := range raw {
		row[i] = strings.TrimSpace(cell)
		if row[i] != "" {
			blank = false
		}
	}
	return row, blank
}
