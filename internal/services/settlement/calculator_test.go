package settlement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeNet(t *testing.T) {
	tests := []struct {
		name            string
		totalSales      float64
		commission      float64
		tax             float64
		otherDeductions float64
		want            float64
	}{
		{
			name:       "standard weekly cycle",
			totalSales: 12500, commission: 625, tax: 375, otherDeductions: 50,
			want: 11450,
		},
		{
			name:       "fractional deductions",
			totalSales: 8750, commission: 437.50, tax: 262.50, otherDeductions: 25,
			want: 8025,
		},
		{
			name:       "zero sales",
			totalSales: 0, commission: 0, tax: 0, otherDeductions: 0,
			want: 0,
		},
		{
			name:       "deductions exceed sales",
			totalSales: 100, commission: 80, tax: 30, otherDeductions: 10,
			want: -20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeNet(tt.totalSales, tt.commission, tt.tax, tt.otherDeductions)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeDetail(t *testing.T) {
	t.Run("rate commission with flat tax", func(t *testing.T) {
		split := ComputeDetail(299, 5.0, 8.97)
		assert.Equal(t, 14.95, split.CommissionAmount)
		assert.Equal(t, 8.97, split.TaxAmount)
		assert.Equal(t, 275.08, split.NetAmount)
	})

	t.Run("zero rate keeps full amount minus tax", func(t *testing.T) {
		split := ComputeDetail(100, 0, 5)
		assert.Equal(t, 0.0, split.CommissionAmount)
		assert.Equal(t, 95.0, split.NetAmount)
	})

	t.Run("commission rounds to two places", func(t *testing.T) {
		// 33.33 at 7.5% is 2.49975, which must round to 2.50.
		split := ComputeDetail(33.33, 7.5, 0)
		assert.Equal(t, 2.5, split.CommissionAmount)
		assert.Equal(t, 30.83, split.NetAmount)
	})
}

func TestComputeDetailFromRates(t *testing.T) {
	split := ComputeDetailFromRates(1000, 10, 18)
	assert.Equal(t, 100.0, split.CommissionAmount)
	assert.Equal(t, 180.0, split.TaxAmount)
	assert.Equal(t, 720.0, split.NetAmount)
}
