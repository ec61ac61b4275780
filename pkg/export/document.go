// Package export holds the renderer-neutral view of a quotation together
// with the derivations shared by the PDF and spreadsheet renderers.
package export

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// ThankYouLine closes every rendered document
	ThankYouLine = "Thank you for your business!"

	// DefaultTerms is printed when a quotation carries no terms of its own
	DefaultTerms = "Payment is due within 30 days of the invoice date. " +
		"Prices are valid for 30 days from the quotation date. " +
		"Goods remain the property of the seller until paid in full."

	// DateLayout is the calendar date format used in rendered documents
	DateLayout = "02 Jan 2006"
)

// Party is one side of the quotation (issuer or recipient)
type Party struct {
	Name    string
	Address string
	Phone   string
	Email   string
	// TaxNumber is only set for the issuing company
	TaxNumber string
}

// Item is one numbered row of the items table
type Item struct {
	Description string
	Quantity    float64
	Unit        string
	Rate        float64
	Amount      float64
}

// Adjustment is a labelled tax or discount figure
type Adjustment struct {
	Label      string
	Percentage float64
	Amount     float64
}

// Document is a read-only snapshot of a quotation ready for rendering
type Document struct {
	Number     string
	Date       time.Time
	Status     string
	From       Party
	To         Party
	Items      []Item
	SubTotal   float64
	Tax        *Adjustment
	Discount   *Adjustment
	GrandTotal float64
	Terms      string
	Notes      string
}

// SummaryLine is one row of the totals block
type SummaryLine struct {
	Label string
	Value string
	Bold  bool
}

// SummaryLines returns the totals block: subtotal, tax and discount when
// non-zero (discount negated), and the grand total last in bold.
func (d *Document) SummaryLines() []SummaryLine {
	lines := []SummaryLine{{Label: "Sub Total", Value: FormatAmount(d.SubTotal)}}

	if d.Tax != nil && finite(d.Tax.Amount) != 0 {
		label := "Tax"
		if d.Tax.Label != "" {
			label = d.Tax.Label
		}
		if p := finite(d.Tax.Percentage); p != 0 {
			label = fmt.Sprintf("%s (%s%%)", label, strconv.FormatFloat(p, 'f', -1, 64))
		}
		lines = append(lines, SummaryLine{Label: label, Value: FormatAmount(d.Tax.Amount)})
	}

	if d.Discount != nil && finite(d.Discount.Amount) != 0 {
		label := "Discount"
		if d.Discount.Label != "" {
			label = d.Discount.Label
		}
		lines = append(lines, SummaryLine{Label: label, Value: "-" + FormatAmount(d.Discount.Amount)})
	}

	return append(lines, SummaryLine{Label: "Grand Total", Value: FormatAmount(d.GrandTotal), Bold: true})
}

// TermsText returns the quotation's own terms or the default paragraph
func (d *Document) TermsText() string {
	if t := strings.TrimSpace(d.Terms); t != "" {
		return t
	}
	return DefaultTerms
}

// MetaLine is the "number / date / status" line under the title
func (d *Document) MetaLine() string {
	status := d.Status
	if status == "" {
		status = "DRAFT"
	}
	return fmt.Sprintf("Quotation No: %s    Date: %s    Status: %s",
		d.Number, d.Date.Format(DateLayout), status)
}

// Lines returns the non-empty contact lines of a party, name first
func (p Party) Lines() []string {
	name := p.Name
	if name == "" {
		name = "-"
	}
	lines := []string{name}
	for _, v := range []string{p.Address, p.Phone, p.Email} {
		if v != "" {
			lines = append(lines, v)
		}
	}
	if p.TaxNumber != "" {
		lines = append(lines, "GST: "+p.TaxNumber)
	}
	return lines
}

// FormatAmount renders a number fixed to two decimals; NaN and ±Inf render as 0.00
func FormatAmount(v float64) string {
	return strconv.FormatFloat(finite(v), 'f', 2, 64)
}

// FormatQuantity renders a quantity without trailing zeros, e.g. 2 or 1.5
func FormatQuantity(v float64) string {
	return strconv.FormatFloat(finite(v), 'f', -1, 64)
}

// FileName returns the attachment name for a quotation export
func FileName(number, ext string) string {
	number = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', '\r', '\n':
			return '_'
		}
		return r
	}, number)
	if number == "" {
		number = "quotation"
	}
	return number + "." + ext
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
