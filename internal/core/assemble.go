package core

import (
	"github.com/joseph-ayodele/invoice-extract/internal/core/table"
	"github.com/joseph-ayodele/invoice-extract/internal/entity"
)

// Assemble merges row-level fields with a copy of the document fields.
func Assemble(doc entity.InvoiceDocument, f table.Fields) entity.LineItem {
	return entity.LineItem{
		Invoice:   doc,
		ItemName:  f.ItemName,
		Unit:      f.Unit,
		Quantity:  f.Quantity,
		UnitPrice: f.UnitPrice,
		LineTotal: f.LineTotal,
		TaxRate:   f.TaxRate,
		TaxAmount: f.TaxAmount,
		Notes:     "",
	}
}
