package quotes

import (
	"testing"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func TestRecalculate(t *testing.T) {
	q := models.Quote{
		TaxRate: 15,
		Items: []models.QuoteItem{
			{Title: "Hotel night", UnitPrice: 1200, Quantity: 3},
			{Title: "Airport transfer", UnitPrice: 350, Quantity: 2},
		},
	}
	Recalculate(&q)
	if q.Subtotal != 4300 {
		t.Fatalf("subtotal = %v, want 4300", q.Subtotal)
	}
	if q.Total != 4945 {
		t.Fatalf("total = %v, want 4945", q.Total)
	}
}

func TestRecalculateEmpty(t *testing.T) {
	q := models.Quote{TaxRate: 15}
	Recalculate(&q)
	if q.Subtotal != 0 || q.Total != 0 {
		t.Fatalf("empty quote should total zero, got %v / %v", q.Subtotal, q.Total)
	}
}

func TestRecalculateRoundsToCents(t *testing.T) {
	q := models.Quote{
		TaxRate: 7.5,
		Items: []models.QuoteItem{
			{Title: "City tour", UnitPrice: 33.33, Quantity: 3},
		},
	}
	Recalculate(&q)
	if q.Subtotal != 99.99 {
		t.Fatalf("subtotal = %v, want 99.99", q.Subtotal)
	}
	if q.Total != 107.49 {
		t.Fatalf("total = %v, want 107.49", q.Total)
	}
}
