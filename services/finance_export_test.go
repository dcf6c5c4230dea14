package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestGenerateFinanceWorkbook(t *testing.T) {
	result, err := GenerateFinanceWorkbook(sampleContext(), sampleItems(t))
	if err != nil {
		t.Fatalf("GenerateFinanceWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != financeSheet {
		t.Fatalf("sheets = %v, want [%s]", sheets, financeSheet)
	}

	cells := []struct {
		cell string
		want string
	}{
		{"A2", "Student: Jane Citizen"},
		{"A3", "Parent/Guardian: John Citizen"},
		{"A4", "Device: Damaged"},
		{"A5", "Date: 5 March 2026"},
		{"A7", "Item"},
		{"A8", "Charger"},
		{"A9", "Case"},
		{"A10", "Total"},
	}
	for _, c := range cells {
		got, err := f.GetCellValue(financeSheet, c.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", c.cell, err)
		}
		if got != c.want {
			t.Errorf("%s = %q, want %q", c.cell, got, c.want)
		}
	}

	amounts := []struct {
		cell string
		want string
	}{
		{"B8", "25.50"},
		{"B9", "14.00"},
		{"B10", "39.50"},
	}
	for _, a := range amounts {
		raw, err := f.GetCellValue(financeSheet, a.cell, excelize.Options{RawCellValue: true})
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", a.cell, err)
		}
		if raw != a.want {
			t.Errorf("%s raw = %q, want %q", a.cell, raw, a.want)
		}
		cellType, err := f.GetCellType(financeSheet, a.cell)
		if err != nil {
			t.Fatalf("GetCellType(%s) error = %v", a.cell, err)
		}
		if cellType != excelize.CellTypeUnset && cellType != excelize.CellTypeNumber {
			t.Errorf("%s type = %v, want a numeric cell", a.cell, cellType)
		}
	}
}

func TestGenerateFinanceWorkbook_KeepsExactCents(t *testing.T) {
	var items []LineItem
	for i := 0; i < 10; i++ {
		amount, err := ParseAmount("0.10")
		if err != nil {
			t.Fatal(err)
		}
		items = append(items, LineItem{Description: "Cable tie", Amount: amount})
	}
	result, err := GenerateFinanceWorkbook(sampleContext(), items)
	if err != nil {
		t.Fatalf("GenerateFinanceWorkbook() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	raw, err := f.GetCellValue(financeSheet, "B18", excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatal(err)
	}
	if raw != "1.00" {
		t.Errorf("total raw = %q, want %q", raw, "1.00")
	}
}

func TestGenerateFinanceWorkbook_RequiresItems(t *testing.T) {
	_, err := GenerateFinanceWorkbook(sampleContext(), nil)
	if !errors.Is(err, ErrValidation) {
		t.Errorf("GenerateFinanceWorkbook() error = %v, want ErrValidation", err)
	}
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Charger", "Charger"},
		{"=SUM(A1)", "'=SUM(A1)"},
		{"+1", "'+1"},
		{"@cmd", "'@cmd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.in); got != tt.want {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
