// Package commands holds the command-line entry points added to the app's
// root command.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ictinvoice/config"
	"ictinvoice/services"
)

type renderOptions struct {
	Student   string
	Parent    string
	Status    string
	Items     []string
	Out       string
	Date      string
	Draft     bool
	Recipient string
}

// NewRenderCommand returns the "render" subcommand, which produces a letter
// without the web form.
func NewRenderCommand(cfg *config.Config, renderer *services.Renderer, composer services.DraftComposer, logger *zap.Logger) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a device charge letter PDF",
		Example: `  render --student "Jane Citizen" --parent "John Citizen" --status damaged \
    --item "Charger=25.50" --item "Case=14.00" --out letters/ --draft`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runRender(ctx, cmd.OutOrStdout(), cfg, renderer, composer, logger.Named("cli"), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Student, "student", "", "student name")
	flags.StringVar(&opts.Parent, "parent", "", "parent or guardian name")
	flags.StringVar(&opts.Status, "status", string(services.DeviceMissing), "device status: missing or damaged")
	flags.StringArrayVar(&opts.Items, "item", nil, `line item as "Description=Cost" (repeatable)`)
	flags.StringVar(&opts.Out, "out", "", "output file, or directory for the suggested file name (default output.dir)")
	flags.StringVar(&opts.Date, "date", "", "issue date as YYYY-MM-DD (default today)")
	flags.BoolVar(&opts.Draft, "draft", false, "also prepare the email draft")
	flags.StringVar(&opts.Recipient, "to", "", "email draft recipient")

	return cmd
}

func runRender(ctx context.Context, w io.Writer, cfg *config.Config, renderer *services.Renderer, composer services.DraftComposer, logger *zap.Logger, opts renderOptions) error {
	ledger := services.NewLedger()
	for _, raw := range opts.Items {
		description, amount, err := parseItemFlag(raw)
		if err != nil {
			return err
		}
		if _, err := ledger.Add(description, amount); err != nil {
			return fmt.Errorf("--item %q: %w", raw, err)
		}
	}

	status, err := services.ParseDeviceStatus(opts.Status)
	if err != nil {
		return err
	}

	issued := time.Now()
	if opts.Date != "" {
		issued, err = time.ParseInLocation(time.DateOnly, opts.Date, time.Local)
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
	}

	ic := services.InvoiceContext{
		StudentName: opts.Student,
		ParentName:  opts.Parent,
		Status:      status,
		IssueDate:   issued,
	}
	items := ledger.Items()
	if err := services.ValidateRender(ic, items); err != nil {
		return err
	}

	path, err := resolveOutputPath(opts.Out, cfg.Output.Dir, services.SuggestedFilename(cfg.Letter.ShortName, ic, ".pdf"))
	if err != nil {
		return err
	}

	if err := renderer.Render(ic, items, path); err != nil {
		return err
	}
	fmt.Fprintf(w, "Letter written to %s (total %s%s)\n",
		path, cfg.Letter.CurrencySymbol, services.FormatAmount(ledger.Total()))

	if !opts.Draft {
		return nil
	}

	draft := services.NewDraft(cfg.Letter, ic, path)
	draft.Recipient = opts.Recipient
	location, err := composer.Compose(ctx, draft)
	if location != "" {
		fmt.Fprintf(w, "Draft written to %s\n", location)
	}
	if err != nil {
		logger.Warn("Draft not opened", zap.String("letter", path), zap.Error(err))
		return fmt.Errorf("letter written to %s, but the draft failed: %w", path, err)
	}
	return nil
}

// parseItemFlag splits "Description=Cost" on the last '='.
func parseItemFlag(raw string) (string, string, error) {
	i := strings.LastIndex(raw, "=")
	if i < 0 {
		return "", "", fmt.Errorf(`invalid --item %q: want "Description=Cost"`, raw)
	}
	return raw[:i], raw[i+1:], nil
}

// resolveOutputPath returns the PDF path for --out. An empty value or a
// directory (existing, or written with a trailing separator) gets the
// suggested file name. Missing parent directories are created.
func resolveOutputPath(out, defaultDir, suggested string) (string, error) {
	if out == "" {
		out = defaultDir + string(filepath.Separator)
	}

	path := out
	if strings.HasSuffix(out, "/") || strings.HasSuffix(out, string(filepath.Separator)) {
		path = filepath.Join(out, suggested)
	} else if info, err := os.Stat(out); err == nil && info.IsDir() {
		path = filepath.Join(out, suggested)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return path, nil
}
