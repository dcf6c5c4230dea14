// Package templates renders the invoice desk pages as templ components.
package templates

// InvoiceFormData is everything the invoice page shows.
type InvoiceFormData struct {
	Organization string
	StudentName  string
	ParentName   string
	ParentEmail  string
	Status       string
	Statuses     []string
	Ledger       LedgerData
}

// LedgerData is the item table with display-ready amounts.
type LedgerData struct {
	Items          []LedgerRow
	CostHeader     string
	CurrencySymbol string
	Total          string
}

type LedgerRow struct {
	Index       int
	Description string
	Cost        string
}

// GenerateResult describes the files produced by a generate request.
type GenerateResult struct {
	PDFPath   string
	DraftPath string
	Warning   string
}
