package table

import (
	"testing"
)

var header = []string{"STT", "Tên hàng hóa, dịch vụ", "Đơn vị tính", "Số lượng", "Đơn giá", "Thuế suất (%)", "Thành tiền"}

func ptrEq(got *float64, want float64) bool {
	return got != nil && *got == want
}

func TestBuildColumnMap(t *testing.T) {
	got := BuildColumnMap(header)
	want := ColumnMap{ItemName: 1, Unit: 2, Quantity: 3, UnitPrice: 4, TaxRate: 5, LineTotal: 6}
	if len(got) != len(want) {
		t.Fatalf("BuildColumnMap() = %v, want %v", got, want)
	}
	for f, idx := range want {
		if got[f] != idx {
			t.Errorf("column %s = %d, want %d", f, got[f], idx)
		}
	}
}

func TestBuildColumnMapUnaccented(t *testing.T) {
	got := BuildColumnMap([]string{"stt", "TEN HANG", "DON VI", "SO LUONG", "DON GIA", "THANH TIEN"})
	if got[ItemName] != 1 || got[Unit] != 2 || got[Quantity] != 3 || got[UnitPrice] != 4 || got[LineTotal] != 5 {
		t.Errorf("BuildColumnMap() = %v", got)
	}
	if _, ok := got[TaxRate]; ok {
		t.Errorf("TaxRate should be unmapped, got %d", got[TaxRate])
	}
}

func TestProcessHeaderThenRow(t *testing.T) {
	c := NewContext()
	if _, ok := c.Process(header); ok {
		t.Fatal("header row must not produce a record")
	}
	if !c.HeaderFound {
		t.Fatal("header not detected")
	}

	f, ok := c.Process([]string{"1", "Xi măng", "Kg", "100", "50.000", "10%", "5.000.000"})
	if !ok {
		t.Fatal("data row dropped")
	}
	if f.ItemName != "Xi măng" || f.Unit != "Kg" {
		t.Errorf("name/unit = %q/%q", f.ItemName, f.Unit)
	}
	if !ptrEq(f.Quantity, 100) {
		t.Errorf("Quantity = %v, want 100", f.Quantity)
	}
	if !ptrEq(f.UnitPrice, 50000) {
		t.Errorf("UnitPrice = %v, want 50000", f.UnitPrice)
	}
	if !ptrEq(f.LineTotal, 5000000) {
		t.Errorf("LineTotal = %v, want 5000000", f.LineTotal)
	}
	if f.TaxRate != "10" {
		t.Errorf("TaxRate = %q, want 10", f.TaxRate)
	}
	if !ptrEq(f.TaxAmount, 500000) {
		t.Errorf("TaxAmount = %v, want 500000", f.TaxAmount)
	}
}

func TestHeaderIsSticky(t *testing.T) {
	c := NewContext()
	c.Process(header)
	// a second header-looking row with a different layout must not remap
	c.Process([]string{"Tên hàng", "Số lượng", "Đơn giá", "Đơn vị tính"})
	if c.Columns[ItemName] != 1 || c.Columns[Quantity] != 3 {
		t.Errorf("mapping changed after second header: %v", c.Columns)
	}

	f, ok := c.Process([]string{"2", "Thép", "Tấm", "3", "1.200.000", "8%", "3.600.000"})
	if !ok || f.ItemName != "Thép" || !ptrEq(f.UnitPrice, 1200000) {
		t.Errorf("row after repeated header = %+v, %v", f, ok)
	}
}

func TestValidityFilter(t *testing.T) {
	c := NewContext()
	c.Process(header)

	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{name: "blank row", row: []string{"", " ", ""}, want: false},
		{name: "nil row", row: nil, want: false},
		{name: "no item name", row: []string{"", "", "", "5", "1.000", "", ""}, want: false},
		{name: "subtotal line", row: []string{"", "Cộng tiền hàng", "", "", "", "", "7.000.000"}, want: false},
		{name: "name and quantity", row: []string{"3", "Cát vàng", "m3", "2", "", "", ""}, want: true},
		{name: "name and price", row: []string{"4", "Vận chuyển", "", "", "300.000", "", ""}, want: true},
		{name: "short row out of range", row: []string{"5", "Đá 1x2", "m3"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := c.Process(tt.row); ok != tt.want {
				t.Errorf("Process(%q) ok = %v, want %v", tt.row, ok, tt.want)
			}
		})
	}
}

func TestMappedTaxRates(t *testing.T) {
	c := NewContext()
	c.Process(header)

	f, _ := c.Process([]string{"1", "Sách", "Cuốn", "1", "100.000", "KCT", "100.000"})
	if f.TaxRate != "KCT" || f.TaxAmount != nil {
		t.Errorf("KCT row: rate %q amount %v, want KCT and empty", f.TaxRate, f.TaxAmount)
	}

	f, _ = c.Process([]string{"2", "Bút", "Cái", "1", "100.000", "10", ""})
	if f.TaxRate != "10" || f.LineTotal != nil || f.TaxAmount != nil {
		t.Errorf("missing total: %+v, want empty total and tax", f)
	}

	f, _ = c.Process([]string{"3", "Giấy", "Ram", "1", "100.000", "abc", "100.000"})
	if f.TaxRate != "" || f.TaxAmount != nil {
		t.Errorf("bad rate: %+v", f)
	}

	for _, rate := range []string{"NaN", "inf", "Infinity", "-Inf%", "0x1p3"} {
		f, ok := c.Process([]string{"4", "Thước", "Cái", "2", "15.000", rate, "30.000"})
		if !ok {
			t.Errorf("rate %q: row dropped", rate)
			continue
		}
		if f.TaxRate != "" || f.TaxAmount != nil || f.LineTotal == nil || *f.LineTotal != 30000 {
			t.Errorf("rate %q: %+v, want empty rate and tax with total 30000", rate, f)
		}
	}
}

func TestMappedCleansItemName(t *testing.T) {
	c := NewContext()
	c.Process(header)
	f, ok := c.Process([]string{"1", "1 Hàng hóa, dịch vụ: Sơn chống thấm", "Lít", "20", "85.000", "10%", "1.700.000"})
	if !ok || f.ItemName != "Sơn chống thấm" {
		t.Errorf("ItemName = %q, ok %v", f.ItemName, ok)
	}
}

func TestPositionalFallback(t *testing.T) {
	c := NewContext()
	f, ok := c.Process([]string{"1", "Ống nhựa", "PVC D21", "Ống", "10", "25.000", "10", "250.000"})
	if !ok {
		t.Fatal("positional row dropped")
	}
	if c.HeaderFound {
		t.Fatal("no header expected")
	}
	if f.ItemName != "Ống nhựa PVC D21" || f.Unit != "Ống" {
		t.Errorf("name/unit = %q/%q", f.ItemName, f.Unit)
	}
	if !ptrEq(f.Quantity, 10) || !ptrEq(f.UnitPrice, 25000) {
		t.Errorf("qty/price = %v/%v", f.Quantity, f.UnitPrice)
	}
	if f.TaxRate != "10" {
		t.Errorf("TaxRate = %q, want 10", f.TaxRate)
	}
	if !ptrEq(f.LineTotal, 250000) || !ptrEq(f.TaxAmount, 25000) {
		t.Errorf("total/tax = %v/%v", f.LineTotal, f.TaxAmount)
	}
}

func TestPositionalDefaults(t *testing.T) {
	c := NewContext()

	// no known unit: unit column defaults to index 2, only rates 5/8/10 count
	f, ok := c.Process([]string{"1", "Dịch vụ lắp đặt", "Gói", "1,5", "2", "7%", ""})
	if !ok {
		t.Fatal("row dropped")
	}
	if f.Unit != "Gói" || f.ItemName != "Dịch vụ lắp đặt" {
		t.Errorf("name/unit = %q/%q", f.ItemName, f.Unit)
	}
	if f.TaxRate != "" || f.TaxAmount != nil {
		t.Errorf("unexpected rate %q / tax %v", f.TaxRate, f.TaxAmount)
	}
	// right-most positive number is the quantity-looking "2"
	if !ptrEq(f.LineTotal, 2) {
		t.Errorf("LineTotal = %v, want 2", f.LineTotal)
	}

	f, ok = c.Process([]string{"2", "Phí", "Lần", "1", "500.000", "KCT", "0"})
	if !ok || f.TaxRate != "KCT" || f.TaxAmount != nil {
		t.Errorf("KCT positional = %+v, %v", f, ok)
	}
}

func TestPositionalComputesTotal(t *testing.T) {
	c := NewContext()
	f, ok := c.Process([]string{"x", "Dây điện", "m", "2,5", "-3", "-", "0"})
	if !ok {
		t.Fatal("row dropped")
	}
	// 2.5 is the only positive cell, so it becomes the total
	if !ptrEq(f.LineTotal, 2.5) {
		t.Errorf("LineTotal = %v, want 2.5", f.LineTotal)
	}

	f, ok = c.Process([]string{"", "Nẹp", "m", "-2", "-4", "", ""})
	if !ok {
		t.Fatal("row dropped")
	}
	if !ptrEq(f.LineTotal, 8) {
		t.Errorf("LineTotal = %v, want computed 8", f.LineTotal)
	}
}

func TestPositionalNeedsSixCells(t *testing.T) {
	c := NewContext()
	if _, ok := c.Process([]string{"1", "Xi măng", "Kg", "100", "50.000"}); ok {
		t.Error("five-cell row accepted without header")
	}
}
