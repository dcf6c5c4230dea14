package services

import (
	"fmt"
	"math"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Page geometry in millimetres (A4 portrait).
const (
	pageWidth        = 210.0
	pageMarginSide   = 20.0
	pageMarginTop    = 10.0
	pageMarginBottom = 10.0
	gridCols         = 12
	contentWidth     = pageWidth - 2*pageMarginSide
	colWidth         = contentWidth / gridCols

	headerHeight    = 30.0 // logo box is 4 cols x 30mm
	headerSpacing   = 20.0
	logoCols        = 4
	contactLineStep = 4.0

	footerHeight  = 30.0
	footerPercent = 94.0 // ~160mm of the 170mm content width

	signatureHeight = 25.0
	bodyFontSize    = 11.0
)

// letterAssets are the optional images of a letter. Nil entries are skipped.
type letterAssets struct {
	Logo      *Asset
	Footer    *Asset
	Signature *Asset
}

// pdfOptions carries document metadata and the fixed contact block.
type pdfOptions struct {
	Author       string
	ContactLines []string
	Compress     bool
	CreationDate time.Time
}

// generateLetterPDF lays out a letter with maroto and returns the PDF bytes.
func generateLetterPDF(letter Letter, assets letterAssets, opts pdfOptions) ([]byte, error) {
	builder := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(pageMarginSide).
		WithTopMargin(pageMarginTop).
		WithRightMargin(pageMarginSide).
		WithBottomMargin(pageMarginBottom).
		WithCompression(opts.Compress).
		WithTitle(letter.Title, true)
	if opts.Author != "" {
		builder = builder.WithAuthor(opts.Author, true)
	}
	if !opts.CreationDate.IsZero() {
		builder = builder.WithCreationDate(opts.CreationDate)
	}

	m := maroto.New(builder.Build())

	if err := addLetterFooter(m, assets.Footer); err != nil {
		return nil, err
	}

	addLetterHeader(m, assets.Logo, opts.ContactLines)
	addLetterIntro(m, letter)
	addItemTable(m, letter.Table)
	addLetterSignature(m, letter, assets.Signature)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate letter PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addLetterFooter registers the footer image so it repeats on every page.
func addLetterFooter(m core.Maroto, footer *Asset) error {
	if footer == nil {
		return nil
	}

	left, top := footerPlacement(footer.Aspect())
	err := m.RegisterFooter(
		row.New(footerHeight).Add(
			col.New(gridCols).Add(
				image.NewFromBytes(footer.PNG, extension.Png, props.Rect{
					Left:    left,
					Top:     top,
					Percent: footerPercent,
				}),
			),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to register footer: %w", err)
	}
	return nil
}

// footerPlacement returns the offsets that centre a footer image of the given
// aspect horizontally and rest it on the bottom edge of the footer row. The
// size matches how maroto fits an image into a cell at footerPercent.
func footerPlacement(aspect float64) (left, top float64) {
	maxWidth := contentWidth * footerPercent / 100
	maxHeight := footerHeight * footerPercent / 100

	width := maxWidth
	height := width / aspect
	if height > maxHeight {
		height = maxHeight
		width = height * aspect
	}
	return (contentWidth - width) / 2, footerHeight - height
}

// addLetterHeader adds the logo (left) and contact block (right) on page 1.
func addLetterHeader(m core.Maroto, logo *Asset, contactLines []string) {
	logoCol := col.New(logoCols)
	if logo != nil {
		logoCol = logoCol.Add(image.NewFromBytes(logo.PNG, extension.Png, props.Rect{
			Percent: 100,
		}))
	}

	contactCol := col.New(gridCols - logoCols)
	for i, line := range contactLines {
		contactCol = contactCol.Add(text.New(line, props.Text{
			Top:   float64(i) * contactLineStep,
			Size:  9,
			Align: align.Right,
		}))
	}

	m.AddRows(
		row.New(headerHeight).Add(logoCol, contactCol),
		row.New(headerSpacing),
	)
}

// addLetterIntro adds the date, subject, greeting and body paragraphs.
func addLetterIntro(m core.Maroto, letter Letter) {
	body := props.Text{Size: bodyFontSize, Align: align.Left}
	bold := body
	bold.Style = fontstyle.Bold

	addParagraph(m, letter.DateLine, body)
	addParagraph(m, letter.Subject, bold)
	m.AddRows(row.New(8))

	addParagraph(m, letter.Greeting, body)
	for _, p := range letter.Paragraphs {
		addParagraph(m, p, body)
	}
	m.AddRows(row.New(2))
}

// addParagraph adds a full-width text row sized to its content plus spacing.
func addParagraph(m core.Maroto, s string, style props.Text) {
	m.AddAutoRow(col.New(gridCols).Add(text.New(s, style)))
	m.AddRows(row.New(4))
}

// addItemTable adds the shaded header row, one row per item and the total row.
func addItemTable(m core.Maroto, table ItemTable) {
	grid := &props.Color{Red: 128, Green: 128, Blue: 128}
	headerCell := &props.Cell{
		BackgroundColor: &props.Color{Red: 211, Green: 211, Blue: 211},
		BorderType:      border.Full,
		BorderColor:     grid,
		BorderThickness: 0.3,
	}
	bodyCell := &props.Cell{
		BorderType:      border.Full,
		BorderColor:     grid,
		BorderThickness: 0.3,
	}

	left := props.Text{Size: bodyFontSize, Align: align.Left, Top: 1.5, Left: 2}
	right := props.Text{Size: bodyFontSize, Align: align.Right, Top: 1.5, Right: 2}
	boldLeft := left
	boldLeft.Style = fontstyle.Bold
	boldRight := right
	boldRight.Style = fontstyle.Bold

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New(table.Header.Item, boldLeft)).WithStyle(headerCell),
			col.New(3).Add(text.New(table.Header.Cost, boldRight)).WithStyle(headerCell),
		),
	)

	for _, r := range table.Rows {
		m.AddAutoRow(
			col.New(9).Add(text.New(r.Item, left)).WithStyle(bodyCell),
			col.New(3).Add(text.New(r.Cost, right)).WithStyle(bodyCell),
		)
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New(table.Total.Item, boldLeft)).WithStyle(bodyCell),
			col.New(3).Add(text.New(table.Total.Cost, boldRight)).WithStyle(bodyCell),
		),
		row.New(6),
	)
}

// addLetterSignature adds the closing, the signature image and the signer lines.
func addLetterSignature(m core.Maroto, letter Letter, signature *Asset) {
	body := props.Text{Size: bodyFontSize, Align: align.Left}
	bold := body
	bold.Style = fontstyle.Bold

	addParagraph(m, letter.Closing, body)
	addParagraph(m, letter.SignOff, body)

	if signature != nil {
		m.AddRows(
			row.New(signatureHeight).Add(
				col.New(signatureCols(signature)).Add(
					image.NewFromBytes(signature.PNG, extension.Png, props.Rect{
						Percent: 100,
					}),
				),
			),
			row.New(2),
		)
	}

	m.AddAutoRow(col.New(gridCols).Add(text.New(letter.SignerName, body)))
	m.AddAutoRow(col.New(gridCols).Add(text.New(letter.SignerTitle, bold)))
}

// signatureCols returns the narrowest column span that shows the signature at
// full height without distorting it.
func signatureCols(signature *Asset) int {
	width := signatureHeight * signature.Aspect()
	n := int(math.Ceil(width / colWidth))
	if n < 1 {
		return 1
	}
	if n > gridCols {
		return gridCols
	}
	return n
}
