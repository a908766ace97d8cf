package aiparser

import (
	"testing"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func findIntent(res models.IntentResult, typ string) *models.Intent {
	for i := range res.Intents {
		if res.Intents[i].Type == typ {
			return &res.Intents[i]
		}
	}
	return nil
}

func TestParseIntentHotel(t *testing.T) {
	res, ok := parseIntentAt("Find me a hotel in Durban for 3 nights", testNow)
	if !ok {
		t.Fatal("no intent detected")
	}
	h := findIntent(res, models.IntentHotelSearch)
	if h == nil {
		t.Fatal("hotel intent missing")
	}
	if h.City != "Durban" {
		t.Fatalf("city wrong: %q", h.City)
	}
	if h.Nights != 3 {
		t.Fatalf("nights wrong: %d", h.Nights)
	}
	if h.Guests == nil || h.Guests.Adults != 2 {
		t.Fatalf("guests wrong: %+v", h.Guests)
	}
}

func TestParseIntentCarRental(t *testing.T) {
	res, ok := parseIntentAt("I need a car rental in Cape Town tomorrow at 9am", testNow)
	if !ok {
		t.Fatal("no intent detected")
	}
	c := findIntent(res, models.IntentCarRental)
	if c == nil {
		t.Fatal("car rental intent missing")
	}
	if c.PickupCity != "Cape Town" || c.ReturnCity != "Cape Town" {
		t.Fatalf("pickup city wrong: %q", c.PickupCity)
	}
	if c.PickupTime != "09:00" {
		t.Fatalf("pickup time wrong: %q", c.PickupTime)
	}
	if c.PickupDate != "2026-03-05" {
		t.Fatalf("pickup date wrong: %q", c.PickupDate)
	}
}

func TestParseIntentDiningNearMe(t *testing.T) {
	res, ok := parseIntentAt("Find restaurants near me tonight at 7pm with budget R500", testNow)
	if !ok {
		t.Fatal("no intent detected")
	}
	d := findIntent(res, models.IntentDiningSearch)
	if d == nil {
		t.Fatal("dining intent missing")
	}
	if !d.NearMe {
		t.Fatal("nearMe not detected")
	}
	if d.Time != "19:00" {
		t.Fatalf("time wrong: %q", d.Time)
	}
	if d.Budget == nil || d.Budget.Currency != "ZAR" || d.Budget.Amount != 500 {
		t.Fatalf("budget wrong: %+v", d.Budget)
	}
	if d.Date != "2026-03-04" {
		t.Fatalf("tonight should resolve to today: %q", d.Date)
	}
}

func TestParseIntentEventsNextWeekend(t *testing.T) {
	res, ok := parseIntentAt("What events are on next weekend in Cape Town?", testNow)
	if !ok {
		t.Fatal("no intent detected")
	}
	e := findIntent(res, models.IntentEventSearch)
	if e == nil {
		t.Fatal("event intent missing")
	}
	if e.City != "Cape Town" {
		t.Fatalf("city wrong: %q", e.City)
	}
	if e.StartDate != "2026-03-07" || e.EndDate != "2026-03-08" {
		t.Fatalf("weekend range wrong: %q to %q", e.StartDate, e.EndDate)
	}
}

func TestParseIntentQuoteOps(t *testing.T) {
	res, ok := parseIntentAt("Create a quote for the client", testNow)
	if !ok {
		t.Fatal("no intent detected")
	}
	q := findIntent(res, models.IntentQuoteOps)
	if q == nil {
		t.Fatal("quote intent missing")
	}
	if len(q.QuoteOps) != 1 || q.QuoteOps[0].Op != "create" {
		t.Fatalf("quote ops wrong: %+v", q.QuoteOps)
	}
}

func TestParseIntentVisaAndInsurance(t *testing.T) {
	res, ok := parseIntentAt("Do I need a visa and travel insurance for Schengen?", testNow)
	if !ok {
		t.Fatal("no intent detected")
	}
	if findIntent(res, models.IntentVisaHelp) == nil {
		t.Fatal("visa intent missing")
	}
	if findIntent(res, models.IntentInsuranceHelp) == nil {
		t.Fatal("insurance intent missing")
	}
}

func TestParseIntentNothingDetected(t *testing.T) {
	if _, ok := parseIntentAt("hello there", testNow); ok {
		t.Fatal("expected no intent")
	}
	if _, ok := parseIntentAt("", testNow); ok {
		t.Fatal("expected empty prompt rejection")
	}
}

func TestParseItineraryOps(t *testing.T) {
	ops := ParseItineraryOps("extend the trip, add 2 nights and increase budget by 15%")
	if len(ops) != 2 {
		t.Fatalf("expected 2 ops, got %+v", ops)
	}
	if ops[0].Op != models.OpExtend || ops[0].NightsDelta != 2 {
		t.Fatalf("extend op wrong: %+v", ops[0])
	}
	if ops[1].Op != models.OpAdjustBudget || ops[1].Percent != 15 {
		t.Fatalf("budget op wrong: %+v", ops[1])
	}
}

func TestParseItineraryOpsSwapAndShorten(t *testing.T) {
	ops := ParseItineraryOps("shorten by removing a day and swap Durban for Cape Town")
	var swap, shorten *models.ItineraryOp
	for i := range ops {
		switch ops[i].Op {
		case models.OpSwapDestination:
			swap = &ops[i]
		case models.OpShorten:
			shorten = &ops[i]
		}
	}
	if shorten == nil || shorten.NightsDelta != 1 {
		t.Fatalf("shorten op wrong: %+v", ops)
	}
	if swap == nil || swap.From != "Durban" || swap.To != "Cape Town" {
		t.Fatalf("swap op wrong: %+v", ops)
	}
}

func TestParseItineraryOpsBudgetDecreaseDefault(t *testing.T) {
	ops := ParseItineraryOps("please reduce budget a bit")
	if len(ops) != 1 || ops[0].Op != models.OpAdjustBudget || ops[0].Percent != -10 {
		t.Fatalf("default decrease wrong: %+v", ops)
	}
}

func TestParseQuoteOpsAddItem(t *testing.T) {
	ops := ParseQuoteOps("add Sunset Cruise to my quote")
	if len(ops) != 1 || ops[0].Op != "addItem" {
		t.Fatalf("add item op wrong: %+v", ops)
	}
	if ops[0].Item == nil || ops[0].Item.Title != "Sunset Cruise" || ops[0].Item.Quantity != 1 {
		t.Fatalf("item wrong: %+v", ops[0].Item)
	}
}
