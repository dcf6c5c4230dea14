package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const financeSheet = "Charges"

// numFmtFixed2 is the built-in "0.00" number format. Amounts are stored as
// their exact decimal text in numeric cells.
const numFmtFixed2 = 2

// GenerateFinanceWorkbook builds a one-sheet workbook listing the charges for
// the finance office, and returns the file contents.
func GenerateFinanceWorkbook(ic InvoiceContext, items []LineItem) ([]byte, error) {
	if err := ValidateRender(ic, items); err != nil {
		return nil, err
	}
	ic = ic.Normalized()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), financeSheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if err := f.SetColWidth(financeSheet, "A", "A", 48); err != nil {
		return nil, fmt.Errorf("set col width A: %w", err)
	}
	if err := f.SetColWidth(financeSheet, "B", "B", 14); err != nil {
		return nil, fmt.Errorf("set col width B: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	costStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: numFmtFixed2,
	})
	if err != nil {
		return nil, fmt.Errorf("create cost style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Border: thinBorders(),
		NumFmt: numFmtFixed2,
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	f.SetCellValue(financeSheet, "A1", "Device charges")
	f.SetCellStyle(financeSheet, "A1", "A1", titleStyle)
	f.SetCellValue(financeSheet, "A2", "Student: "+sanitizeExcelCell(ic.StudentName))
	f.SetCellValue(financeSheet, "A3", "Parent/Guardian: "+sanitizeExcelCell(ic.ParentName))
	f.SetCellValue(financeSheet, "A4", "Device: "+ic.Status.Label())
	if !ic.IssueDate.IsZero() {
		f.SetCellValue(financeSheet, "A5", "Date: "+ic.IssueDate.Format(DateLayout))
	}

	f.SetCellValue(financeSheet, "A7", "Item")
	f.SetCellValue(financeSheet, "B7", "Cost")
	f.SetCellStyle(financeSheet, "A7", "B7", headerStyle)

	row := 8
	for _, item := range items {
		f.SetCellValue(financeSheet, fmt.Sprintf("A%d", row), sanitizeExcelCell(item.Description))
		f.SetCellStyle(financeSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), itemStyle)
		if err := f.SetCellDefault(financeSheet, fmt.Sprintf("B%d", row), FormatAmount(item.Amount)); err != nil {
			return nil, fmt.Errorf("set cost cell: %w", err)
		}
		f.SetCellStyle(financeSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), costStyle)
		row++
	}

	f.SetCellValue(financeSheet, fmt.Sprintf("A%d", row), "Total")
	if err := f.SetCellDefault(financeSheet, fmt.Sprintf("B%d", row), FormatAmount(SumItems(items))); err != nil {
		return nil, fmt.Errorf("set total cell: %w", err)
	}
	f.SetCellStyle(financeSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalStyle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#808080", Style: 1}
	}
	return borders
}
