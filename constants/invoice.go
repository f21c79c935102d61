package constants

import "strings"

// FormCode is the 01GTKT VAT invoice template code stamped on every exported row.
const FormCode = "01GTKT0/001"

// NotTaxable is the "không chịu thuế" tax-rate sentinel.
const NotTaxable = "KCT"

// PositionalTaxRates are the only rates the positional fallback accepts.
var PositionalTaxRates = map[int]struct{}{5: {}, 8: {}, 10: {}}

// KnownUnits are the unit labels the positional fallback uses to find the unit column.
var KnownUnits = []string{
	"Cái", "Lít", "m2", "m", "Bộ", "Kg", "Tấm", "Ống", "Phào", "mét", "Cặp", "Chiếc", "M",
}

// IsKnownUnit reports whether s equals one of KnownUnits, ignoring case.
func IsKnownUnit(s string) bool {
	if s == "" {
		return false
	}
	for _, u := range KnownUnits {
		if strings.EqualFold(s, u) {
			return true
		}
	}
	return false
}

// ExportColumns is the fixed column order of the consolidated workbook.
var ExportColumns = []string{
	"STT",
	"Mẫu số",
	"Ký hiệu",
	"Số",
	"Ngày, tháng, năm",
	"Tên người bán",
	"Mã số thuế người bán",
	"Tên hàng hóa, dịch vụ",
	"Đơn vị tính",
	"Số lượng",
	"Đơn giá",
	"Giá trị HHDV mua vào chưa có thuế GTGT",
	"Thuế suất (%)",
	"Tiền thuế GTGT",
	"Ghi chú",
}

// HeaderLeakage lists item-name fragments that mark a header row leaking into the data.
var HeaderLeakage = []string{"tên hàng hóa", "đơn vị tính", "char"}
