package services

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"ictinvoice/config"
)

// Renderer turns an invoice context and a ledger snapshot into a letter PDF.
type Renderer struct {
	cfg    config.Letter
	logger *zap.Logger
}

// NewRenderer creates a renderer for the given letterhead configuration.
func NewRenderer(cfg config.Letter, logger *zap.Logger) *Renderer {
	return &Renderer{
		cfg:    cfg,
		logger: logger.Named("renderer"),
	}
}

// Generate validates the inputs and returns the letter PDF bytes.
func (r *Renderer) Generate(ic InvoiceContext, items []LineItem) ([]byte, error) {
	pdf, _, err := r.generate(ic, items)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// Render validates the inputs and writes the letter PDF to outputPath.
// Nothing is written when validation fails, and a failed write leaves no
// partial file at outputPath.
func (r *Renderer) Render(ic InvoiceContext, items []LineItem, outputPath string) error {
	if strings.TrimSpace(outputPath) == "" {
		return newValidationError("output_path", "output path is required")
	}

	pdf, pages, err := r.generate(ic, items)
	if err != nil {
		var re *RenderError
		if errors.As(err, &re) {
			re.Path = outputPath
		}
		return err
	}

	if err := writeFileAtomic(outputPath, pdf, 0o644); err != nil {
		r.logger.Error("Failed to write letter",
			zap.String("path", outputPath),
			zap.Error(err))
		return &RenderError{Path: outputPath, Err: err}
	}

	r.logger.Info("Letter written",
		zap.String("path", outputPath),
		zap.Int("pages", pages),
		zap.Int("bytes", len(pdf)))
	return nil
}

func (r *Renderer) generate(ic InvoiceContext, items []LineItem) ([]byte, int, error) {
	if err := ValidateRender(ic, items); err != nil {
		return nil, 0, err
	}
	ic = ic.Normalized()

	letter := BuildLetter(r.cfg, ic, items)
	assets := letterAssets{
		Logo:      LoadAsset(r.cfg.LogoPath, r.logger),
		Footer:    LoadAsset(r.cfg.FooterPath, r.logger),
		Signature: LoadAsset(r.cfg.SignaturePath, r.logger),
	}

	pdf, err := generateLetterPDF(letter, assets, pdfOptions{
		Author:       r.cfg.Organization,
		ContactLines: r.cfg.ContactLines,
		Compress:     r.cfg.Compress,
		CreationDate: ic.IssueDate,
	})
	if err != nil {
		return nil, 0, &RenderError{Err: err}
	}

	pages, err := CountPages(pdf)
	if err != nil {
		return nil, 0, &RenderError{Err: fmt.Errorf("generated PDF is invalid: %w", err)}
	}

	r.logger.Debug("Letter generated",
		zap.String("student", ic.StudentName),
		zap.String("status", string(ic.Status)),
		zap.Int("items", len(items)),
		zap.String("total", letter.Table.Total.Cost),
		zap.Int("pages", pages))

	return pdf, pages, nil
}

// ValidateRender checks the render preconditions and reports every failing
// field at once.
func ValidateRender(ic InvoiceContext, items []LineItem) error {
	ve := &ValidationError{Fields: map[string]string{}}

	if err := ic.Validate(); err != nil {
		var fields *ValidationError
		if !errors.As(err, &fields) {
			return err
		}
		for k, v := range fields.Fields {
			ve.Fields[k] = v
		}
	}
	if len(items) == 0 {
		ve.Fields["items"] = "at least one item is required"
	}

	if len(ve.Fields) > 0 {
		return ve
	}
	return nil
}

var disablePDFConfigDir sync.Once

// CountPages parses a PDF and returns its page count.
func CountPages(pdf []byte) (int, error) {
	disablePDFConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(pdf), conf)
}
