package planner

import (
	"strings"
	"testing"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func plannedDraft() models.Draft {
	return models.Draft{
		Parse: &models.TripBase{
			Nights:       2,
			Destinations: []string{"Durban"},
			Interests:    []string{"beach"},
		},
		Plan: &models.PlanPhase{Itinerary: []models.TripDay{
			{Day: 1, Title: "Day 1 - Durban", Destination: "Durban", Activities: []string{"Arrival & check-in"}},
			{Day: 2, Title: "Day 2 - Durban", Destination: "Durban", Activities: []string{"Beach day"}},
		}},
	}
}

func pricedDraft() models.Draft {
	d := plannedDraft()
	d.Pricing = &models.PricingPhase{Pricing: &models.Pricing{
		Currency:  "USD",
		Total:     1000,
		Breakdown: map[string]float64{"lodging": 600, "food": 400},
		Note:      "",
	}}
	return d
}

func TestExtendClonesLastDay(t *testing.T) {
	e := NewEngine()
	d := e.Extend(plannedDraft(), 2)

	if got := len(d.Plan.Itinerary); got != 4 {
		t.Fatalf("expected 4 days, got %d", got)
	}
	if d.Parse.Nights != 4 {
		t.Fatalf("nights not updated: %d", d.Parse.Nights)
	}
	day4 := d.Plan.Itinerary[3]
	if day4.Day != 4 || day4.Title != "Day 4 - Durban" {
		t.Fatalf("appended day not renumbered: %+v", day4)
	}
	if len(day4.Activities) != 1 || day4.Activities[0] != "Beach day" {
		t.Fatalf("appended day did not clone last day's activities: %+v", day4.Activities)
	}
	if e.Undo.Len() != 1 {
		t.Fatalf("expected one undo entry, got %d", e.Undo.Len())
	}
}

func TestShortenClampsToOneNight(t *testing.T) {
	e := NewEngine()
	d := e.Shorten(plannedDraft(), 5)

	if d.Parse.Nights != 1 {
		t.Fatalf("expected nights clamped to 1, got %d", d.Parse.Nights)
	}
	if len(d.Plan.Itinerary) != 1 {
		t.Fatalf("expected 1 day, got %d", len(d.Plan.Itinerary))
	}
	if d.Plan.Itinerary[0].Title != "Day 1 - Durban" {
		t.Fatalf("remaining day title wrong: %q", d.Plan.Itinerary[0].Title)
	}
}

func TestExtendWithoutPlanIsNoOp(t *testing.T) {
	e := NewEngine()
	in := models.Draft{Parse: &models.TripBase{Nights: 3}}
	out := e.Extend(in, 1)

	if out.Parse.Nights != 3 {
		t.Fatalf("missing plan phase still mutated the draft: %d", out.Parse.Nights)
	}
	if e.Undo.Len() != 0 {
		t.Fatalf("no-op pushed an undo entry")
	}
}

func TestAdjustBudgetScalesAndNotes(t *testing.T) {
	e := NewEngine()
	d := e.AdjustBudget(pricedDraft(), 10)

	p := d.Pricing.Pricing
	if p.Total != 1100 {
		t.Fatalf("expected total 1100, got %v", p.Total)
	}
	if p.Breakdown["lodging"] != 660 || p.Breakdown["food"] != 440 {
		t.Fatalf("breakdown not scaled: %+v", p.Breakdown)
	}
	if !strings.HasSuffix(p.Note, "increased by 10%") {
		t.Fatalf("note wrong: %q", p.Note)
	}
}

func TestAdjustBudgetNegativeAndZero(t *testing.T) {
	e := NewEngine()

	d := e.AdjustBudget(pricedDraft(), -20)
	if d.Pricing.Pricing.Total != 800 {
		t.Fatalf("expected total 800, got %v", d.Pricing.Pricing.Total)
	}
	if !strings.HasSuffix(d.Pricing.Pricing.Note, "decreased by 20%") {
		t.Fatalf("note wrong: %q", d.Pricing.Pricing.Note)
	}

	d = e.AdjustBudget(pricedDraft(), 0)
	if d.Pricing.Pricing.Total != 1000 {
		t.Fatalf("zero percent changed the total: %v", d.Pricing.Pricing.Total)
	}
	if !strings.HasSuffix(d.Pricing.Pricing.Note, "increased by 0%") {
		t.Fatalf("zero percent note wrong: %q", d.Pricing.Pricing.Note)
	}
}

func TestAdjustBudgetAppendsToExistingNote(t *testing.T) {
	e := NewEngine()
	in := pricedDraft()
	in.Pricing.Pricing.Note = "Heuristic estimate"
	d := e.AdjustBudget(in, 10)
	if d.Pricing.Pricing.Note != "Heuristic estimate · increased by 10%" {
		t.Fatalf("note concat wrong: %q", d.Pricing.Pricing.Note)
	}
}

func TestAdjustBudgetWithoutPricingIsNoOp(t *testing.T) {
	e := NewEngine()
	out := e.AdjustBudget(plannedDraft(), 10)
	if out.Pricing != nil {
		t.Fatalf("no-op created pricing phase")
	}
	if e.Undo.Len() != 0 {
		t.Fatalf("no-op pushed an undo entry")
	}
}

func TestSwapDestinationCaseInsensitive(t *testing.T) {
	e := NewEngine()
	d := e.SwapDestination(plannedDraft(), "durban", "Cape Town")

	if d.Parse.Destinations[0] != "Cape Town" {
		t.Fatalf("parse destinations not swapped: %+v", d.Parse.Destinations)
	}
	for i, day := range d.Plan.Itinerary {
		if day.Destination != "Cape Town" {
			t.Fatalf("day %d destination not swapped: %+v", i+1, day)
		}
		want := models.DayTitle(i+1, "Cape Town")
		if day.Title != want {
			t.Fatalf("day %d title not re-rendered: %q", i+1, day.Title)
		}
	}
}

func TestSwapDestinationMatchesTitleTail(t *testing.T) {
	e := NewEngine()
	in := plannedDraft()
	in.Plan.Itinerary[1].Destination = ""
	d := e.SwapDestination(in, "Durban", "Garden Route")

	if d.Plan.Itinerary[1].Destination != "Garden Route" {
		t.Fatalf("title-tail match failed: %+v", d.Plan.Itinerary[1])
	}
}

func TestSwapDestinationLeavesOthersAlone(t *testing.T) {
	e := NewEngine()
	in := plannedDraft()
	in.Plan.Itinerary[1].Destination = "Umhlanga"
	in.Plan.Itinerary[1].Title = "Day 2 - Umhlanga"
	d := e.SwapDestination(in, "Durban", "Cape Town")

	if d.Plan.Itinerary[0].Destination != "Cape Town" {
		t.Fatalf("matching day not swapped")
	}
	if d.Plan.Itinerary[1].Destination != "Umhlanga" {
		t.Fatalf("non-matching day swapped: %+v", d.Plan.Itinerary[1])
	}
}

func TestApplyBatchPushesPerOp(t *testing.T) {
	e := NewEngine()
	d := e.Apply(pricedDraft(), []models.ItineraryOp{
		{Op: models.OpExtend, NightsDelta: 1},
		{Op: models.OpAdjustBudget, Percent: 10},
	})

	if e.Undo.Len() != 2 {
		t.Fatalf("expected 2 undo entries, got %d", e.Undo.Len())
	}

	// First pop undoes the budget change only.
	d, ok := e.UndoLast(d)
	if !ok {
		t.Fatal("undo failed")
	}
	if d.Pricing.Pricing.Total != 1000 {
		t.Fatalf("budget undo wrong: %v", d.Pricing.Pricing.Total)
	}
	if len(d.Plan.Itinerary) != 3 {
		t.Fatalf("budget undo reverted the extend too: %d days", len(d.Plan.Itinerary))
	}

	// Second pop restores the original.
	d, _ = e.UndoLast(d)
	if len(d.Plan.Itinerary) != 2 || d.Parse.Nights != 2 {
		t.Fatalf("extend undo wrong: %d days, %d nights", len(d.Plan.Itinerary), d.Parse.Nights)
	}
}

func TestUndoLastOnEmptyStack(t *testing.T) {
	e := NewEngine()
	in := plannedDraft()
	out, ok := e.UndoLast(in)
	if ok {
		t.Fatal("undo on empty stack reported success")
	}
	if len(out.Plan.Itinerary) != 2 {
		t.Fatalf("draft changed by failed undo")
	}
}
