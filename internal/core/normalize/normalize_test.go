package normalize

import (
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "european grouping with decimals", input: "1.234,56", want: 1234.56, wantOK: true},
		{name: "us grouping with decimals", input: "1,234.56", want: 1234.56, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "only spaces", input: "   ", wantOK: false},
		{name: "single dot two decimals", input: "1000.25", want: 1000.25, wantOK: true},
		{name: "single dot one decimal", input: "2.5", want: 2.5, wantOK: true},
		{name: "single dot thousands group", input: "50.000", want: 50000, wantOK: true},
		{name: "several dots", input: "5.000.000", want: 5000000, wantOK: true},
		{name: "dot with long tail", input: "1.2345", want: 12345, wantOK: true},
		{name: "comma only", input: "12,5", want: 12.5, wantOK: true},
		{name: "comma only repeated", input: "1,234,567", wantOK: false},
		{name: "plain integer", input: "100", want: 100, wantOK: true},
		{name: "spaces and nbsp", input: "1 234 567", want: 1234567, wantOK: true},
		{name: "negative", input: "-1.500,5", want: -1500.5, wantOK: true},
		{name: "percent sign", input: "10%", wantOK: false},
		{name: "text", input: "KCT", wantOK: false},
		{name: "nan rejected", input: "NaN", wantOK: false},
		{name: "inf rejected", input: "inf", wantOK: false},
		{name: "infinity rejected", input: "-Infinity", wantOK: false},
		{name: "hex rejected", input: "0x10", wantOK: false},
		{name: "hex float rejected", input: "-0X1p3", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNumberPtr(t *testing.T) {
	if got := NumberPtr(""); got != nil {
		t.Errorf("NumberPtr(\"\") = %v, want nil", *got)
	}
	got := NumberPtr("5.000.000")
	if got == nil || *got != 5000000 {
		t.Errorf("NumberPtr(\"5.000.000\") = %v, want 5000000", got)
	}
}

func TestParseTaxRate(t *testing.T) {
	tests := []struct {
		input       string
		wantLabel   string
		wantPercent float64
	}{
		{"10%", "10", 10},
		{" 8 % ", "8", 8},
		{"5,5%", "5.5", 5.5},
		{"KCT", "KCT", 0},
		{"kct", "KCT", 0},
		{"", "", 0},
		{"x", "", 0},
		{"NaN", "", 0},
		{"inf%", "", 0},
		{"Infinity", "", 0},
		{"-inf", "", 0},
		{"0x1p3", "", 0},
		{"0XA", "", 0},
	}
	for _, tt := range tests {
		got := ParseTaxRate(tt.input)
		if got.Label != tt.wantLabel || got.Percent != tt.wantPercent {
			t.Errorf("ParseTaxRate(%q) = %+v, want {%q %v}", tt.input, got, tt.wantLabel, tt.wantPercent)
		}
	}
}

func TestTaxAmount(t *testing.T) {
	total := 100000.0
	if got := TaxAmount(&total, ParseTaxRate("10").Percent); got == nil || *got != 10000 {
		t.Errorf("TaxAmount(100000, 10) = %v, want 10000", got)
	}
	if got := TaxAmount(&total, ParseTaxRate("KCT").Percent); got != nil {
		t.Errorf("TaxAmount(100000, KCT) = %v, want nil", *got)
	}
	for _, percent := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := TaxAmount(&total, percent); got != nil {
			t.Errorf("TaxAmount(100000, %v) = %v, want nil", percent, *got)
		}
	}
	inf := math.Inf(1)
	if got := TaxAmount(&inf, 10); got != nil {
		t.Errorf("TaxAmount(+Inf, 10) = %v, want nil", *got)
	}
	if got := TaxAmount(nil, 10); got != nil {
		t.Errorf("TaxAmount(nil, 10) = %v, want nil", *got)
	}
	odd := 333.33
	if got := TaxAmount(&odd, 8); got == nil || *got != 26.67 {
		t.Errorf("TaxAmount(333.33, 8) = %v, want 26.67", got)
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(3, 1.115); got != 3.35 {
		t.Errorf("LineTotal(3, 1.115) = %v, want 3.35", got)
	}
	if got := LineTotal(100, 50000); got != 5000000 {
		t.Errorf("LineTotal(100, 50000) = %v, want 5000000", got)
	}
}

func TestCleanItemName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hàng hóa, dịch vụ: Xi măng", "Xi măng"},
		{"1 Hàng hoá, dịch vụ Thép cuộn", "Thép cuộn"},
		{"HÀNG HÓA, DỊCH VỤ\nSơn nước", "Sơn nước"},
		{"  Gạch men  ", "Gạch men"},
		{"Xi măng Hàng hóa, dịch vụ", "Xi măng Hàng hóa, dịch vụ"},
		{"12 Ống nhựa", "12 Ống nhựa"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanItemName(tt.input); got != tt.want {
			t.Errorf("CleanItemName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCleanItemNameIdempotent(t *testing.T) {
	inputs := []string{
		"Hàng hóa, dịch vụ Hàng hóa, dịch vụ Xi măng",
		"2 Hàng hóa dịch vụ: 3 Hàng hoá, dịch vụ,",
		"Tên hàng hóa, dịch vụ",
		"  \n ",
		"Bộ lọc nước",
	}
	for _, in := range inputs {
		once := CleanItemName(in)
		if twice := CleanItemName(once); twice != once {
			t.Errorf("CleanItemName not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestFold(t *testing.T) {
	tests := map[string]string{
		"Tên hàng hóa, dịch vụ": "ten hang hoa, dich vu",
		"Đơn vị tính":           "don vi tinh",
		"THUẾ SUẤT (%)":         "thue suat (%)",
		"ten hang":              "ten hang",
	}
	for in, want := range tests {
		if got := Fold(in); got != want {
			t.Errorf("Fold(%q) = %q, want %q", in, got, want)
		}
	}
	if !ContainsFolded("STT Tên Hàng", "ten hang") {
		t.Error("ContainsFolded should match accented header against unaccented keyword")
	}
}
