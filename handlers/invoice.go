package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"

	"ictinvoice/services"
	"ictinvoice/templates"
)

// HandleInvoiceForm renders the invoice desk page with the current session.
func HandleInvoiceForm(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		component := templates.InvoicePage(d.pageData())
		return component.Render(e.Request.Context(), e.Response)
	}
}

// HandleItemAdd validates and appends a line item, then re-renders the ledger.
func HandleItemAdd(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		d.mu.Lock()
		d.rememberForm(e.Request.Form)
		item, err := d.ledger.Add(e.Request.FormValue("description"), e.Request.FormValue("cost"))
		data := d.ledgerData()
		d.mu.Unlock()

		if err != nil {
			d.logger.Debug("item_add: rejected", zap.Error(err))
			return ValidationToast(e, err)
		}

		d.logger.Info("item_add: item added",
			zap.String("description", item.Description),
			zap.String("amount", services.FormatAmount(item.Amount)),
			zap.String("total", data.Total))

		SetToast(e, "success", "Item added")
		return templates.LedgerFragment(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleItemRemove removes the item at the {index} path position.
func HandleItemRemove(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		index, err := strconv.Atoi(e.Request.PathValue("index"))
		if err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid item index")
		}

		d.mu.Lock()
		removed, err := d.ledger.RemoveAt(index)
		data := d.ledgerData()
		d.mu.Unlock()

		if err != nil {
			d.logger.Debug("item_remove: rejected", zap.Int("index", index), zap.Error(err))
			return ValidationToast(e, err)
		}

		d.logger.Info("item_remove: item removed",
			zap.String("description", removed.Description),
			zap.String("total", data.Total))

		SetToast(e, "success", "Item removed")
		return templates.LedgerFragment(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleItemsClear empties the ledger.
func HandleItemsClear(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		d.mu.Lock()
		d.ledger.Clear()
		data := d.ledgerData()
		d.mu.Unlock()

		d.logger.Info("items_clear: ledger cleared")
		SetToast(e, "info", "Items cleared")
		return templates.LedgerFragment(data).Render(e.Request.Context(), e.Response)
	}
}

// HandleItemsExport downloads the charges as an Excel workbook for finance.
func HandleItemsExport(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		fv, items := d.snapshot(e.Request.Form)
		ic := d.invoiceContext(fv)

		xlsxBytes, err := services.GenerateFinanceWorkbook(ic, items)
		if err != nil {
			var ve *services.ValidationError
			if errors.As(err, &ve) {
				return ValidationToast(e, err)
			}
			d.logger.Error("items_export: failed to build workbook", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to build the workbook. Please try again.")
		}

		filename := services.SuggestedFilename(d.cfg.Letter.ShortName, ic, ".xlsx")
		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleInvoiceDownload renders the letter and sends it as a download.
func HandleInvoiceDownload(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		fv, items := d.snapshot(e.Request.Form)
		ic := d.invoiceContext(fv)

		pdfBytes, err := d.renderer.Generate(ic, items)
		if err != nil {
			var ve *services.ValidationError
			if errors.As(err, &ve) {
				return ValidationToast(e, err)
			}
			d.logger.Error("invoice_download: failed to build letter", zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to build PDF. Please try again.")
		}

		filename := services.SuggestedFilename(d.cfg.Letter.ShortName, ic, ".pdf")
		d.logger.Info("invoice_download: letter sent", zap.String("filename", filename))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleInvoiceGenerate writes the letter into the output directory and
// prepares the covering email draft. A draft failure is reported as a
// warning; the letter stays on disk.
func HandleInvoiceGenerate(d *Desk) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Invalid form data")
		}

		fv, items := d.snapshot(e.Request.Form)
		ic := d.invoiceContext(fv)
		if err := services.ValidateRender(ic, items); err != nil {
			return ValidationToast(e, err)
		}

		if err := os.MkdirAll(d.cfg.Output.Dir, 0o755); err != nil {
			d.logger.Error("invoice_generate: failed to create output dir",
				zap.String("dir", d.cfg.Output.Dir), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to save PDF. Please try again.")
		}
		path := filepath.Join(d.cfg.Output.Dir, services.SuggestedFilename(d.cfg.Letter.ShortName, ic, ".pdf"))

		if err := d.renderer.Render(ic, items, path); err != nil {
			var ve *services.ValidationError
			if errors.As(err, &ve) {
				return ValidationToast(e, err)
			}
			d.logger.Error("invoice_generate: failed to render letter", zap.String("path", path), zap.Error(err))
			return ErrorToast(e, http.StatusInternalServerError, "Failed to build PDF. Please try again.")
		}

		draft := services.NewDraft(d.cfg.Letter, ic, path)
		draft.Recipient = fv.ParentEmail

		result := templates.GenerateResult{PDFPath: path}
		location, err := d.composer.Compose(e.Request.Context(), draft)
		result.DraftPath = location
		if err != nil {
			if errors.Is(err, services.ErrCollaboratorUnavailable) {
				d.logger.Warn("invoice_generate: draft composer unavailable", zap.Error(err))
			} else {
				d.logger.Error("invoice_generate: failed to compose draft", zap.Error(err))
			}
			result.Warning = "The PDF was saved, but the email draft could not be opened: " + err.Error()
			SetToast(e, "warning", "PDF saved. The email draft could not be opened.")
		} else {
			SetToast(e, "success", "PDF saved and email draft opened")
		}

		return templates.GenerateResultFragment(result).Render(e.Request.Context(), e.Response)
	}
}
