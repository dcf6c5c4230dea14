package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/domodwyer/mailyak/v3"
	"github.com/google/uuid"
	"github.com/skratchdot/open-golang/open"
	"go.uber.org/zap"

	"ictinvoice/config"
)

// Draft is an email the user reviews and sends themselves.
type Draft struct {
	Recipient      string
	Subject        string
	Body           string
	AttachmentPath string
}

// DraftComposer prepares a draft and returns where it can be found.
type DraftComposer interface {
	Compose(ctx context.Context, d Draft) (string, error)
}

// NewDraft builds the covering email for a rendered letter.
func NewDraft(cfg config.Letter, ic InvoiceContext, attachmentPath string) Draft {
	ic = ic.Normalized()

	var body strings.Builder
	fmt.Fprintf(&body, "Hi %s,\n\n", ic.ParentName)
	fmt.Fprintf(&body, "I am writing in regard to a %s device that %s has brought into the office. ",
		ic.Status.Lower(), ic.StudentName)
	fmt.Fprintf(&body, "As per the %s Device Charter Policy, any costs are passed onto the supporting family.\n\n",
		cfg.ShortName)
	body.WriteString("Please refer to the attached letter for full details.\n\n")
	body.WriteString(closingNotice + "\n\n")
	body.WriteString("Kind regards,\n")
	body.WriteString(cfg.StaffMember)

	return Draft{
		Subject:        fmt.Sprintf("%s %s Device", cfg.Organization, ic.Status.Label()),
		Body:           body.String(),
		AttachmentPath: attachmentPath,
	}
}

// EMLComposer writes drafts as .eml files marked unsent, which desktop mail
// clients open as editable drafts.
type EMLComposer struct {
	from   string
	dir    string
	logger *zap.Logger
}

func NewEMLComposer(cfg config.Mail, logger *zap.Logger) *EMLComposer {
	return &EMLComposer{
		from:   cfg.From,
		dir:    cfg.DraftDir,
		logger: logger.Named("drafts"),
	}
}

// Compose writes <attachment name>.eml into the drafts directory and returns
// its path.
func (c *EMLComposer) Compose(ctx context.Context, d Draft) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d.AttachmentPath == "" {
		return "", newValidationError("attachment", "an attachment is required")
	}

	pdf, err := os.ReadFile(d.AttachmentPath)
	if err != nil {
		return "", &CollaboratorError{Composer: "eml", Err: fmt.Errorf("failed to read attachment: %w", err)}
	}

	mail := mailyak.New("", nil)
	if d.Recipient != "" {
		mail.To(d.Recipient)
	}
	if c.from != "" {
		mail.From(c.from)
	}
	mail.Subject(d.Subject)
	mail.Plain().Set(d.Body)
	mail.Attach(filepath.Base(d.AttachmentPath), bytes.NewReader(pdf))
	mail.SetHeader("X-Unsent", "1")
	mail.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), messageIDHost(c.from)))

	buf, err := mail.MimeBuf()
	if err != nil {
		return "", &CollaboratorError{Composer: "eml", Err: fmt.Errorf("failed to build message: %w", err)}
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", &CollaboratorError{Composer: "eml", Err: err}
	}
	base := strings.TrimSuffix(filepath.Base(d.AttachmentPath), filepath.Ext(d.AttachmentPath))
	path := filepath.Join(c.dir, base+".eml")
	if err := writeFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return "", &CollaboratorError{Composer: "eml", Err: err}
	}

	c.logger.Info("Draft written", zap.String("path", path), zap.String("subject", d.Subject))
	return path, nil
}

func messageIDHost(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return strings.TrimSuffix(from[i+1:], ">")
	}
	return "localhost"
}

// OpenerComposer composes with Next and then hands the result to the
// desktop's default handler. When opening fails the composed location is
// still returned alongside the error.
type OpenerComposer struct {
	Next DraftComposer
	// App opens drafts instead of the desktop default when set.
	App    string
	logger *zap.Logger
}

func NewOpenerComposer(next DraftComposer, logger *zap.Logger) *OpenerComposer {
	return &OpenerComposer{
		Next:   next,
		logger: logger.Named("opener"),
	}
}

func (o *OpenerComposer) Compose(ctx context.Context, d Draft) (string, error) {
	location, err := o.Next.Compose(ctx, d)
	if err != nil {
		return "", err
	}

	// The launcher is started without waiting and outlives the request.
	if o.App != "" {
		err = open.StartWith(location, o.App)
	} else {
		err = open.Start(location)
	}
	if err != nil {
		o.logger.Warn("Failed to open draft", zap.String("path", location), zap.String("app", o.App), zap.Error(err))
		return location, &CollaboratorError{Composer: "opener", Err: err}
	}

	o.logger.Info("Draft opened", zap.String("path", location))
	return location, nil
}
