// Package totals derives the financial summary of a quotation from its line
// items. It is the arithmetic contract callers apply before submitting
// subTotal and grandTotal, which storage then trusts as given.
package totals

import "math"

// Totals is the derived financial summary of a list of line items
type Totals struct {
	SubTotal   float64 `json:"subTotal"`
	TaxAmount  float64 `json:"taxAmount"`
	GrandTotal float64 `json:"grandTotal"`
}

// Calculate returns subTotal = Σ amounts, taxAmount = subTotal × taxPercentage / 100
// and grandTotal = subTotal + taxAmount − discount.
// NaN and infinite inputs count as zero; Calculate never fails.
func Calculate(amounts []float64, taxPercentage, discount float64) Totals {
	var subTotal float64
	for _, amount := range amounts {
		subTotal += finite(amount)
	}

	taxAmount := subTotal * finite(taxPercentage) / 100

	return Totals{
		SubTotal:   subTotal,
		TaxAmount:  taxAmount,
		GrandTotal: subTotal + taxAmount - finite(discount),
	}
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
