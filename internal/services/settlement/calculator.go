package settlement

import (
	"github.com/shopspring/decimal"
)

// Money arithmetic runs on decimals and is rounded to two places once, so
// rate-based splits come out exact (299 at 5% is 14.95, not 14.9500...01).

// DetailSplit is the derived breakdown for one order inside a settlement.
type DetailSplit struct {
	CommissionAmount float64
	TaxAmount        float64
	NetAmount        float64
}

// ComputeNet derives the net settlement amount. A negative result is returned
// as-is; rejecting it is the caller's decision.
func ComputeNet(totalSales, commission, tax, otherDeductions float64) float64 {
	net := decimal.NewFromFloat(totalSales).
		Sub(decimal.NewFromFloat(commission)).
		Sub(decimal.NewFromFloat(tax)).
		Sub(decimal.NewFromFloat(otherDeductions))
	return net.Round(2).InexactFloat64()
}

// ComputeDetail derives the per-order split from a commission rate and a flat
// tax amount, the shape the settlement-detail endpoints consume.
func ComputeDetail(orderAmount, commissionRate, taxAmount float64) DetailSplit {
	order := decimal.NewFromFloat(orderAmount)
	commission := order.Mul(decimal.NewFromFloat(commissionRate)).Div(decimal.NewFromInt(100)).Round(2)
	tax := decimal.NewFromFloat(taxAmount).Round(2)
	net := order.Sub(commission).Sub(tax).Round(2)

	return DetailSplit{
		CommissionAmount: commission.InexactFloat64(),
		TaxAmount:        tax.InexactFloat64(),
		NetAmount:        net.InexactFloat64(),
	}
}

// ComputeDetailFromRates derives the split with a rate-based tax. Callers
// pricing from rates use this; the flat tax_deduction at the settlement level
// is a different quantity and must not be conflated with it.
func ComputeDetailFromRates(orderAmount, commissionRate, taxRate float64) DetailSplit {
	order := decimal.NewFromFloat(orderAmount)
	tax := order.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100)).Round(2)
	return ComputeDetail(orderAmount, commissionRate, tax.InexactFloat64())
}
