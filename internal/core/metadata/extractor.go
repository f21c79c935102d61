// Package metadata pulls invoice-level fields out of a document's full text.
package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/joseph-ayodele/invoice-extract/internal/entity"
)

// rule pairs a pattern with the function that turns its match into a value.
type rule struct {
	pattern *regexp.Regexp
	extract func(m []string) string
}

func group(n int) func([]string) string {
	return func(m []string) string { return strings.TrimSpace(m[n]) }
}

func newRule(pattern string, extract func([]string) string) rule {
	return rule{pattern: regexp.MustCompile(pattern), extract: extract}
}

// Rules are tried in order; the first match wins.
var (
	serialRules = []rule{
		newRule(`Ký hiệu.*?:\s*([A-Z0-9]+)`, group(1)),
	}
	numberRules = []rule{
		newRule(`Số[:：]?\s*(\d+)`, group(1)),
		newRule(`Số hóa đơn[:：]?\s*(\d+)`, group(1)),
		newRule(`Số HĐ[:：]?\s*(\d+)`, group(1)),
	}
	dateRules = []rule{
		newRule(`(?i)Ngày\s+(\d{1,2})\s+tháng\s+(\d{1,2})\s+năm\s+(\d{4})`, formatDate),
	}
	sellerRules = []rule{
		newRule(`Tên người bán[:：]?\s*(.*)`, group(1)),
	}
	taxCodeRules = []rule{
		newRule(`Mã số thuế:?\s*([0-9\-\.]+)`, group(1)),
	}
)

// formatDate renders "Ngày 5 tháng 3 năm 2024" captures as 05/03/2024.
func formatDate(m []string) string {
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%02d/%02d/%s", day, month, m[3])
}

func firstMatch(text string, rules []rule) (string, bool) {
	for _, r := range rules {
		if m := r.pattern.FindStringSubmatch(text); m != nil {
			return r.extract(m), true
		}
	}
	return "", false
}

// Extract builds an InvoiceDocument from the concatenated page text of one
// document. Fields are found independently; a missing field is left empty,
// except the invoice number which falls back to fallbackNumber.
func Extract(text, fallbackNumber string) entity.InvoiceDocument {
	text = strings.Map(asciiSpace, text)
	doc := entity.InvoiceDocument{InvoiceNumber: fallbackNumber}
	doc.SerialCode, _ = firstMatch(text, serialRules)
	if n, ok := firstMatch(text, numberRules); ok {
		doc.InvoiceNumber = n
	}
	doc.IssueDate, _ = firstMatch(text, dateRules)
	doc.SellerName, _ = firstMatch(text, sellerRules)
	doc.SellerTaxCode, _ = firstMatch(text, taxCodeRules)
	return doc
}

// asciiSpace turns NBSP and other Unicode space separators into ' ', which
// the patterns' \s matches.
func asciiSpace(r rune) rune {
	if r != ' ' && unicode.Is(unicode.Zs, r) {
		return ' '
	}
	return r
}
