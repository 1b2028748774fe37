// Package costing computes line-item and invoice costs. It is the single
// authority for these numbers: client-submitted cost and totalCost values
// are discarded and recomputed here on every create and update.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/apperr"
)

// LineItem is the costing input for one invoice row.
type LineItem struct {
	Quantity    decimal.Decimal
	RatePerUnit decimal.Decimal
}

// Surcharges are the invoice-level additions to the material cost.
type Surcharges struct {
	CGST                  decimal.Decimal
	SGST                  decimal.Decimal
	TransportationCharges decimal.Decimal
}

// ItemCost returns quantity * ratePerUnit rounded to two decimal places.
func ItemCost(item LineItem) decimal.Decimal {
	return item.Quantity.Mul(item.RatePerUnit).Round(2)
}

// Compute derives the cost of every line item and the invoice total:
// sum(item costs) + cgst + sgst + transportationCharges. It rejects any
// negative quantity, rate, or surcharge.
func Compute(items []LineItem, s Surcharges) ([]decimal.Decimal, decimal.Decimal, error) {
	if err := validate(items, s); err != nil {
		return nil, decimal.Zero, err
	}

	costs := make([]decimal.Decimal, len(items))
	total := decimal.Zero
	for i, item := range items {
		costs[i] = ItemCost(item)
		total = total.Add(costs[i])
	}
	total = total.Add(s.CGST).Add(s.SGST).Add(s.TransportationCharges)
	return costs, total.Round(2), nil
}

func validate(items []LineItem, s Surcharges) error {
	for i, item := range items {
		if item.Quantity.IsNegative() {
			return apperr.Validationf("item %d: quantity must not be negative", i+1)
		}
		if item.RatePerUnit.IsNegative() {
			return apperr.Validationf("item %d: ratePerUnit must not be negative", i+1)
		}
	}
	if s.CGST.IsNegative() {
		return apperr.Validation("cgst must not be negative")
	}
	if s.SGST.IsNegative() {
		return apperr.Validation("sgst must not be negative")
	}
	if s.TransportationCharges.IsNegative() {
		return apperr.Validation("transportationCharges must not be negative")
	}
	return nil
}
