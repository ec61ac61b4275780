// Package pdf renders quotations as A4 PDF documents with maroto.
package pdf

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/sangkips/quotify-api/pkg/export"
)

// ContentType is the MIME type of the rendered document
const ContentType = "application/pdf"

const (
	marginLeft  = 15.0
	marginTop   = 12.0
	marginRight = 15.0

	// usable height of an A4 page below the top margin, kept short of
	// maroto's own bottom margin so it never breaks a page before we do
	pageBottom = 250.0

	contentWidth = 210.0 - marginLeft - marginRight
	gridUnit     = contentWidth / 12

	cellPadding     = 1.5
	tableFontSize   = 9.0
	tableHeaderRow  = 8.0
	tableMinRow     = 7.0
	summaryRow      = 6.0
	grandTotalRow   = 8.0
	bodyFontSize    = 9.0
	partyLineHeight = 5.0
)

// item table grid; must sum to 12
const (
	colNo          = 1
	colDescription = 6
	colQty         = 1
	colRate        = 2
	colAmount      = 2
)

var (
	colorPrimary   = &props.Color{Red: 15, Green: 23, Blue: 42}
	colorSecondary = &props.Color{Red: 100, Green: 116, Blue: 139}
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249}
	colorBorder    = &props.Color{Red: 203, Green: 213, Blue: 225}
)

// Generate renders doc and returns the PDF bytes
func Generate(doc *export.Document) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(marginLeft).
		WithTopMargin(marginTop).
		WithRightMargin(marginRight).
		Build()

	m := maroto.New(cfg)
	for _, rows := range layout(doc) {
		m.AddPages(page.New().Add(rows...))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return out.GetBytes(), nil
}

// layout measures every block of the document and splits it into pages
func layout(doc *export.Document) [][]core.Row {
	p := newPaginator(pageBottom)

	p.add(12, row.New(12).Add(col.New(12).Add(text.New("QUOTATION", props.Text{
		Size:  22,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: colorPrimary,
	}))))
	p.add(8, row.New(8).Add(col.New(12).Add(text.New(doc.MetaLine(), props.Text{
		Size:  10,
		Color: colorSecondary,
		Top:   2,
	}))))
	p.add(4, row.New(4))

	addParties(p, doc)
	p.add(6, row.New(6))

	addItems(p, doc.Items)
	p.add(6, row.New(6))

	addSummary(p, doc.SummaryLines())
	p.add(6, row.New(6))

	addParagraph(p, "Terms & Conditions", doc.TermsText())
	if doc.Notes != "" {
		p.add(4, row.New(4))
		addParagraph(p, "Notes", doc.Notes)
	}

	p.add(8, row.New(8))
	p.add(8, row.New(8).Add(col.New(12).Add(text.New(export.ThankYouLine, props.Text{
		Size:  10,
		Align: align.Center,
		Color: colorPrimary,
	}))))

	return p.result()
}

func addParties(p *paginator, doc *export.Document) {
	label := props.Text{Size: 11, Style: fontstyle.Bold, Color: colorPrimary}
	p.add(6, row.New(6).Add(
		col.New(6).Add(text.New("From", label)),
		col.New(6).Add(text.New("To", label)),
	))

	from, to := doc.From.Lines(), doc.To.Lines()
	n := max(len(from), len(to))
	for i := 0; i < n; i++ {
		style := props.Text{Size: 10, Color: colorSecondary}
		if i == 0 {
			style = props.Text{Size: 10, Style: fontstyle.Bold, Color: colorPrimary}
		}
		p.add(partyLineHeight, row.New(partyLineHeight).Add(
			col.New(6).Add(text.New(lineAt(from, i), style)),
			col.New(6).Add(text.New(lineAt(to, i), style)),
		))
	}
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

func tableHeader() core.Row {
	left := props.Text{Size: tableFontSize, Style: fontstyle.Bold, Color: colorPrimary, Top: 2, Left: cellPadding, Right: cellPadding}
	right := left
	right.Align = align.Right

	return row.New(tableHeaderRow).Add(
		col.New(colNo).Add(text.New("#", left)),
		col.New(colDescription).Add(text.New("Description", left)),
		col.New(colQty).Add(text.New("Qty", right)),
		col.New(colRate).Add(text.New("Rate", right)),
		col.New(colAmount).Add(text.New("Amount", right)),
	).WithStyle(&props.Cell{
		BackgroundColor: colorTableHead,
		BorderType:      border.Full,
		BorderColor:     colorBorder,
	})
}

// itemRowHeight grows with the wrapped description
func itemRowHeight(description string) float64 {
	width := colDescription*gridUnit - 2*cellPadding
	return max(tableMinRow, textHeight(description, width, tableFontSize)+2*cellPadding+1)
}

func addItems(p *paginator, items []export.Item) {
	p.beginTable(tableHeaderRow, tableMinRow, tableHeader)
	defer p.endTable()

	left := props.Text{Size: tableFontSize, Color: colorPrimary, Top: cellPadding, Left: cellPadding, Right: cellPadding}
	right := left
	right.Align = align.Right

	for i, item := range items {
		desc := item.Description
		if desc == "" {
			desc = "-"
		}
		qty := export.FormatQuantity(item.Quantity)
		if item.Unit != "" {
			qty += " " + item.Unit
		}

		h := itemRowHeight(desc)
		p.add(h, row.New(h).Add(
			col.New(colNo).Add(text.New(strconv.Itoa(i+1), left)),
			col.New(colDescription).Add(text.New(desc, left)),
			col.New(colQty).Add(text.New(qty, right)),
			col.New(colRate).Add(text.New(export.FormatAmount(item.Rate), right)),
			col.New(colAmount).Add(text.New(export.FormatAmount(item.Amount), right)),
		).WithStyle(&props.Cell{
			BorderType:  border.Full,
			BorderColor: colorBorder,
		}))
	}
}

func addSummary(p *paginator, lines []export.SummaryLine) {
	for _, line := range lines {
		h, style := summaryRow, props.Text{Size: 10, Color: colorPrimary, Align: align.Right}
		if line.Bold {
			h, style = grandTotalRow, props.Text{Size: 12, Style: fontstyle.Bold, Color: colorPrimary, Align: align.Right, Top: 1}
		}
		p.add(h, row.New(h).Add(
			col.New(6),
			col.New(3).Add(text.New(line.Label+":", style)),
			col.New(3).Add(text.New(line.Value, style)),
		))
	}
}

func addParagraph(p *paginator, title, body string) {
	p.add(6, row.New(6).Add(col.New(12).Add(text.New(title, props.Text{
		Size:  10,
		Style: fontstyle.Bold,
		Color: colorPrimary,
	}))))

	h := textHeight(body, contentWidth, bodyFontSize) + 2
	p.add(h, row.New(h).Add(col.New(12).Add(text.New(body, props.Text{
		Size:  bodyFontSize,
		Color: colorSecondary,
	}))))
}
