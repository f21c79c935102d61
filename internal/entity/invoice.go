package entity

// InvoiceDocument holds the invoice-level fields found in a document's text.
// It is built once per document and copied into every LineItem of that document.
type InvoiceDocument struct {
	SerialCode    string `json:"serial_code"`
	InvoiceNumber string `json:"invoice_number"`
	IssueDate     string `json:"issue_date"` // DD/MM/YYYY or empty
	SellerName    string `json:"seller_name"`
	SellerTaxCode string `json:"seller_tax_code"`
	SourcePath    string `json:"source_path"`
}

// LineItem is one goods/services row of an invoice plus its document fields.
// Nil numbers mean the cell was empty or unparseable, which is not the same as zero.
type LineItem struct {
	Invoice   InvoiceDocument `json:"invoice"`
	ItemName  string          `json:"item_name"`
	Unit      string          `json:"unit"`
	Quantity  *float64        `json:"quantity,omitempty"`
	UnitPrice *float64        `json:"unit_price,omitempty"`
	LineTotal *float64        `json:"line_total,omitempty"` // pre-tax value
	TaxRate   string          `json:"tax_rate"`             // "10", "KCT" or empty
	TaxAmount *float64        `json:"tax_amount,omitempty"`
	Notes     string          `json:"notes"`
}
