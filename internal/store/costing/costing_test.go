package costing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestItemCost(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		want     string
	}{
		{"whole numbers", "10", "250", "2500"},
		{"fractional quantity", "2.5", "100", "250"},
		{"rounds half up", "3", "33.335", "100.01"},
		{"zero quantity", "0", "500", "0"},
		{"zero rate", "12", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemCost(LineItem{Quantity: d(tt.quantity), RatePerUnit: d(tt.rate)})
			if !got.Equal(d(tt.want)) {
				t.Errorf("ItemCost(%s * %s) = %s, want %s", tt.quantity, tt.rate, got, tt.want)
			}
		})
	}
}

func TestComputeTotal(t *testing.T) {
	items := []LineItem{
		{Quantity: d("10"), RatePerUnit: d("250")},
		{Quantity: d("2.5"), RatePerUnit: d("100")},
		{Quantity: d("1"), RatePerUnit: d("49.99")},
	}
	s := Surcharges{CGST: d("140.25"), SGST: d("140.25"), TransportationCharges: d("500")}

	costs, total, err := Compute(items, s)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(costs) != 3 {
		t.Fatalf("Expected 3 item costs, got %d", len(costs))
	}
	wantCosts := []string{"2500", "250", "49.99"}
	for i, want := range wantCosts {
		if !costs[i].Equal(d(want)) {
			t.Errorf("cost[%d] = %s, want %s", i, costs[i], want)
		}
	}
	// 2500 + 250 + 49.99 + 140.25 + 140.25 + 500
	if want := d("3580.49"); !total.Equal(want) {
		t.Errorf("total = %s, want %s", total, want)
	}
}

func TestComputeEmptyItems(t *testing.T) {
	costs, total, err := Compute(nil, Surcharges{CGST: d("18"), SGST: d("18"), TransportationCharges: d("0")})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if len(costs) != 0 {
		t.Errorf("Expected no item costs, got %d", len(costs))
	}
	if want := d("36"); !total.Equal(want) {
		t.Errorf("total = %s, want %s", total, want)
	}
}

func TestComputeRejectsNegatives(t *testing.T) {
	tests := []struct {
		name  string
		items []LineItem
		s     Surcharges
	}{
		{"negative quantity", []LineItem{{Quantity: d("-1"), RatePerUnit: d("10")}}, Surcharges{}},
		{"negative rate", []LineItem{{Quantity: d("1"), RatePerUnit: d("-10")}}, Surcharges{}},
		{"negative cgst", nil, Surcharges{CGST: d("-1")}},
		{"negative sgst", nil, Surcharges{SGST: d("-1")}},
		{"negative transport", nil, Surcharges{TransportationCharges: d("-1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Compute(tt.items, tt.s); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}
