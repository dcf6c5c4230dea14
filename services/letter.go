package services

import (
	"fmt"

	"ictinvoice/config"
)

// DateLayout is the letter date format, e.g. "5 March 2026".
const DateLayout = "2 January 2006"

const (
	invoiceNotice = "The cost for the repair and replacement is as below, and you will receive an invoice " +
		"from our Finance department for this amount."
	closingNotice = "Feel free to contact us by replying to this email if you have any questions " +
		"or if you would like to discuss this matter further."
)

// TableRow is one rendered row of the item table.
type TableRow struct {
	Item string
	Cost string
}

// ItemTable is the item table with display-ready strings.
type ItemTable struct {
	Header TableRow
	Rows   []TableRow
	Total  TableRow
}

// Letter is the text content of a charge letter in reading order.
type Letter struct {
	Title       string
	DateLine    string
	Subject     string
	Greeting    string
	Paragraphs  []string
	Table       ItemTable
	Closing     string
	SignOff     string
	SignerName  string
	SignerTitle string
}

// BuildLetter assembles the letter text for a validated context and a
// snapshot of the ledger items.
func BuildLetter(cfg config.Letter, ic InvoiceContext, items []LineItem) Letter {
	ic = ic.Normalized()

	table := ItemTable{
		Header: TableRow{Item: "Item", Cost: CostHeader(cfg.CurrencySymbol)},
		Rows:   make([]TableRow, 0, len(items)),
	}
	for _, item := range items {
		table.Rows = append(table.Rows, TableRow{
			Item: item.Description,
			Cost: FormatAmount(item.Amount),
		})
	}
	table.Total = TableRow{Item: "Total", Cost: FormatAmount(SumItems(items))}

	return Letter{
		Title:    fmt.Sprintf("%s %s Device - %s", cfg.Organization, ic.Status.Label(), ic.StudentName),
		DateLine: ic.IssueDate.Format(DateLayout),
		Subject:  fmt.Sprintf("RE: %s %s Device", cfg.Organization, ic.Status.Label()),
		Greeting: fmt.Sprintf("Hi %s,", ic.ParentName),
		Paragraphs: []string{
			fmt.Sprintf("I am writing to inform you that %s has recently visited the ICT office "+
				"with a %s device. As per the %s, any cost relating to the repair or replacement "+
				"of devices or accessories is passed on to the family.",
				ic.StudentName, ic.Status.Lower(), cfg.CharterName),
			invoiceNotice,
		},
		Table:       table,
		Closing:     closingNotice,
		SignOff:     "Yours Sincerely,",
		SignerName:  cfg.SignerName,
		SignerTitle: cfg.SignerTitle,
	}
}

// Text returns every text element of the letter, in order.
func (l Letter) Text() []string {
	out := []string{l.DateLine, l.Subject, l.Greeting}
	out = append(out, l.Paragraphs...)
	out = append(out, l.Table.Header.Item, l.Table.Header.Cost)
	for _, r := range l.Table.Rows {
		out = append(out, r.Item, r.Cost)
	}
	out = append(out, l.Table.Total.Item, l.Table.Total.Cost)
	out = append(out, l.Closing, l.SignOff, l.SignerName, l.SignerTitle)
	return out
}

// CostHeader is the cost column heading, e.g. "Cost ($)".
func CostHeader(symbol string) string {
	if symbol == "" {
		return "Cost"
	}
	return fmt.Sprintf("Cost (%s)", symbol)
}
