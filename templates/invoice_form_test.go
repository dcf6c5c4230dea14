package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLedgerFragment(t *testing.T) {
	data := LedgerData{
		Items: []LedgerRow{
			{Index: 0, Description: "Charger", Cost: "25.50"},
			{Index: 1, Description: "<Case>", Cost: "14.00"},
		},
		CostHeader:     "Cost ($)",
		CurrencySymbol: "$",
		Total:          "39.50",
	}

	var buf bytes.Buffer
	if err := LedgerFragment(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`id="ledger"`,
		"Cost ($)",
		"Charger",
		"25.50",
		"&lt;Case&gt;",
		`hx-delete="/items/1"`,
		"$39.50",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("fragment missing %q", want)
		}
	}
	if strings.Contains(body, "<Case>") {
		t.Error("description was not escaped")
	}
}

func TestLedgerFragment_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := LedgerFragment(LedgerData{Total: "0.00"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No items yet") {
		t.Errorf("expected empty state, got %q", buf.String())
	}
}

func TestInvoicePage_SelectsStatus(t *testing.T) {
	data := InvoiceFormData{
		Organization: "Thomas More College",
		StudentName:  `Jane "JJ" Citizen`,
		Status:       "Damaged",
		Statuses:     []string{"Missing", "Damaged"},
	}

	var buf bytes.Buffer
	if err := InvoicePage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()

	if !strings.Contains(body, `<option value="Damaged" selected>`) {
		t.Error("Damaged option not selected")
	}
	if strings.Contains(body, `<option value="Missing" selected>`) {
		t.Error("Missing option should not be selected")
	}
	if !strings.Contains(body, "Jane &#34;JJ&#34; Citizen") {
		t.Errorf("student name not escaped in value attribute: %s", body)
	}
}

func TestGenerateResultFragment(t *testing.T) {
	var buf bytes.Buffer
	res := GenerateResult{PDFPath: "letters/a.pdf", Warning: "draft unavailable"}
	if err := GenerateResultFragment(res).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()
	if !strings.Contains(body, "letters/a.pdf") || !strings.Contains(body, "draft unavailable") {
		t.Errorf("unexpected fragment %q", body)
	}
	if strings.Contains(body, "Email draft:") {
		t.Error("draft line shown without a draft path")
	}
}

func TestInvoicePage_EmbedsLedger(t *testing.T) {
	data := InvoiceFormData{
		Organization: "St <Mary's>",
		Ledger: LedgerData{
			Items:          []LedgerRow{{Index: 0, Description: "Charger", Cost: "25.50"}},
			CostHeader:     "Cost ($)",
			CurrencySymbol: "$",
			Total:          "25.50",
		},
	}

	var buf bytes.Buffer
	if err := InvoicePage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		"<title>St &lt;Mary&#39;s&gt; device charges</title>",
		`<section id="ledger">`,
		`hx-delete="/items/0"`,
		`name="description" value=""`,
		`hx-post="/invoice/generate"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}
