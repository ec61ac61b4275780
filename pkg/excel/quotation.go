// Package excel renders quotations as single-sheet xlsx workbooks.
package excel

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/sangkips/quotify-api/pkg/export"
	"github.com/xuri/excelize/v2"
)

const (
	// ContentType is the MIME type of the rendered workbook
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	// SheetName is the only worksheet of the workbook
	SheetName = "Quotation"
)

// Write renders doc as a workbook into w
func Write(w io.Writer, doc *export.Document) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, values := range rows(doc) {
		if len(values) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Generate renders doc and returns the workbook bytes
func Generate(doc *export.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rows lays the document out top to bottom; nil entries are blank rows
func rows(doc *export.Document) [][]interface{} {
	out := [][]interface{}{
		{"Quotation No", doc.Number},
		{"Date", doc.Date.Format(export.DateLayout)},
		{"Status", doc.Status},
		nil,
		{"Company", doc.From.Name},
		{"Customer", doc.To.Name},
		nil,
		{"#", "Description", "Qty", "Unit", "Rate", "Amount"},
	}

	for i, item := range doc.Items {
		out = append(out, []interface{}{
			strconv.Itoa(i + 1),
			item.Description,
			export.FormatQuantity(item.Quantity),
			item.Unit,
			export.FormatAmount(item.Rate),
			export.FormatAmount(item.Amount),
		})
	}

	out = append(out, nil)
	for _, line := range doc.SummaryLines() {
		out = append(out, []interface{}{line.Label, line.Value})
	}

	out = append(out, nil, []interface{}{"Terms & Conditions", doc.TermsText()})
	if doc.Notes != "" {
		out = append(out, []interface{}{"Notes", doc.Notes})
	}
	return out
}
