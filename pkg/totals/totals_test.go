package totals

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		amounts  []float64
		tax      float64
		discount float64
		want     Totals
	}{
		{
			name: "no items",
			want: Totals{},
		},
		{
			name:    "sum without tax or discount",
			amounts: []float64{100, 50.5},
			want:    Totals{SubTotal: 150.5, TaxAmount: 0, GrandTotal: 150.5},
		},
		{
			name:    "tax applied to subtotal",
			amounts: []float64{100},
			tax:     5,
			want:    Totals{SubTotal: 100, TaxAmount: 5, GrandTotal: 105},
		},
		{
			name:     "discount subtracted after tax",
			amounts:  []float64{200},
			tax:      10,
			discount: 20,
			want:     Totals{SubTotal: 200, TaxAmount: 20, GrandTotal: 200},
		},
		{
			name:     "non-numeric values count as zero",
			amounts:  []float64{math.NaN(), 40, math.Inf(1)},
			tax:      math.NaN(),
			discount: math.Inf(-1),
			want:     Totals{SubTotal: 40, TaxAmount: 0, GrandTotal: 40},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.amounts, tt.tax, tt.discount)
			assert.InDelta(t, tt.want.SubTotal, got.SubTotal, 1e-9)
			assert.InDelta(t, tt.want.TaxAmount, got.TaxAmount, 1e-9)
			assert.InDelta(t, tt.want.GrandTotal, got.GrandTotal, 1e-9)
		})
	}
}

func TestCalculateGrandTotalIdentity(t *testing.T) {
	amounts := []float64{12.5, 7.25, 80}
	got := Calculate(amounts, 18, 3.75)

	assert.Equal(t, 12.5+7.25+80, got.SubTotal)
	assert.Equal(t, got.SubTotal+got.TaxAmount-3.75, got.GrandTotal)
}
