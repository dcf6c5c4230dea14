package handlers

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ictinvoice/config"
	"ictinvoice/services"
	"ictinvoice/templates"
)

// formValues are the recipient fields remembered between requests.
type formValues struct {
	StudentName string
	ParentName  string
	ParentEmail string
	Status      string
}

// Desk is the single in-memory invoice session behind the web handlers.
// Requests are served concurrently, so the ledger and form values are only
// touched while mu is held.
type Desk struct {
	cfg      *config.Config
	renderer *services.Renderer
	composer services.DraftComposer
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	ledger *services.Ledger
	form   formValues
}

// NewDesk creates an empty session.
func NewDesk(cfg *config.Config, renderer *services.Renderer, composer services.DraftComposer, logger *zap.Logger) *Desk {
	return &Desk{
		cfg:      cfg,
		renderer: renderer,
		composer: composer,
		logger:   logger.Named("desk"),
		now:      time.Now,
		ledger:   services.NewLedger(),
		form:     formValues{Status: string(services.DeviceMissing)},
	}
}

// rememberForm copies the recipient fields present in form into the session
// and returns the result. Caller must hold d.mu.
func (d *Desk) rememberForm(form url.Values) formValues {
	set := func(dst *string, key string) {
		if v, ok := form[key]; ok && len(v) > 0 {
			*dst = v[0]
		}
	}
	set(&d.form.StudentName, "student_name")
	set(&d.form.ParentName, "parent_name")
	set(&d.form.ParentEmail, "parent_email")
	set(&d.form.Status, "status")
	return d.form
}

// invoiceContext builds the letter context for fv, dated now. An unknown
// status is kept as entered so validation can report it.
func (d *Desk) invoiceContext(fv formValues) services.InvoiceContext {
	status, err := services.ParseDeviceStatus(fv.Status)
	if err != nil {
		status = services.DeviceStatus(strings.TrimSpace(fv.Status))
	}
	return services.InvoiceContext{
		StudentName: fv.StudentName,
		ParentName:  fv.ParentName,
		Status:      status,
		IssueDate:   d.now(),
	}
}

// ledgerData snapshots the ledger for display. Caller must hold d.mu.
func (d *Desk) ledgerData() templates.LedgerData {
	items := d.ledger.Items()
	rows := make([]templates.LedgerRow, len(items))
	for i, item := range items {
		rows[i] = templates.LedgerRow{
			Index:       i,
			Description: item.Description,
			Cost:        services.FormatAmount(item.Amount),
		}
	}

	return templates.LedgerData{
		Items:          rows,
		CostHeader:     services.CostHeader(d.cfg.Letter.CurrencySymbol),
		CurrencySymbol: d.cfg.Letter.CurrencySymbol,
		Total:          services.FormatAmount(d.ledger.Total()),
	}
}

// pageData snapshots the whole session for the invoice page.
func (d *Desk) pageData() templates.InvoiceFormData {
	d.mu.Lock()
	defer d.mu.Unlock()

	statuses := make([]string, len(services.DeviceStatuses))
	for i, s := range services.DeviceStatuses {
		statuses[i] = string(s)
	}

	return templates.InvoiceFormData{
		Organization: d.cfg.Letter.Organization,
		StudentName:  d.form.StudentName,
		ParentName:   d.form.ParentName,
		ParentEmail:  d.form.ParentEmail,
		Status:       d.form.Status,
		Statuses:     statuses,
		Ledger:       d.ledgerData(),
	}
}

// snapshot records the submitted form and returns it with a copy of the items.
func (d *Desk) snapshot(form url.Values) (formValues, []services.LineItem) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rememberForm(form), d.ledger.Items()
}
