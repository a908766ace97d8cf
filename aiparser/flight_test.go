package aiparser

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC) // a Wednesday

func TestParseFlightRejectsNonFlight(t *testing.T) {
	if _, ok := ParseFlight("book me a hotel in Durban"); ok {
		t.Fatal("non-flight prompt accepted")
	}
	if _, ok := ParseFlight(""); ok {
		t.Fatal("empty prompt accepted")
	}
}

func TestParseFlightFromTo(t *testing.T) {
	fi, ok := parseFlightAt("flight from Durban to Johannesburg tomorrow at 9am", testNow)
	if !ok {
		t.Fatal("flight prompt rejected")
	}
	if fi.From == nil || fi.From.Code != "DUR" || fi.From.City != "Durban" {
		t.Fatalf("from wrong: %+v", fi.From)
	}
	if fi.To == nil || fi.To.Code != "JNB" {
		t.Fatalf("to wrong: %+v", fi.To)
	}
	if fi.Date != "2026-03-05" {
		t.Fatalf("date wrong: %q", fi.Date)
	}
	if fi.Time != "09:00" {
		t.Fatalf("time wrong: %q", fi.Time)
	}
	if fi.Pax != 1 || fi.Cabin != "economy" {
		t.Fatalf("defaults wrong: pax=%d cabin=%q", fi.Pax, fi.Cabin)
	}
}

func TestParseFlightAliasesAndCodes(t *testing.T) {
	fi, ok := parseFlightAt("flights from jhb to cpt", testNow)
	if !ok {
		t.Fatal("flight prompt rejected")
	}
	if fi.From == nil || fi.From.City != "Johannesburg" {
		t.Fatalf("alias not resolved: %+v", fi.From)
	}
	if fi.To == nil || fi.To.City != "Cape Town" {
		t.Fatalf("code not resolved: %+v", fi.To)
	}
	// No date in the prompt defaults to tomorrow.
	if fi.Date != "2026-03-05" {
		t.Fatalf("default date wrong: %q", fi.Date)
	}
}

func TestParseFlightUnknownCode(t *testing.T) {
	fi, _ := parseFlightAt("flight from lhr to Durban", testNow)
	if fi.From == nil || fi.From.Code != "LHR" || fi.From.City != "LHR" {
		t.Fatalf("unknown code handling wrong: %+v", fi.From)
	}
}

func TestParseFlightPaxAndCabin(t *testing.T) {
	fi, _ := parseFlightAt("business flight from Durban to Cape Town for 3 passengers", testNow)
	if fi.Pax != 3 {
		t.Fatalf("pax wrong: %d", fi.Pax)
	}
	if fi.Cabin != "business" {
		t.Fatalf("cabin wrong: %q", fi.Cabin)
	}
}

func TestToHHmm(t *testing.T) {
	cases := map[string]string{
		"9am":     "09:00",
		"12am":    "00:00",
		"3pm":     "15:00",
		"12pm":    "12:00",
		"15:30":   "15:30",
		"9:05 pm": "21:05",
	}
	for in, want := range cases {
		if got := toHHmm(in); got != want {
			t.Errorf("toHHmm(%q) = %q, want %q", in, got, want)
		}
	}
	if got := toHHmm("25:00"); got != "" {
		t.Errorf("invalid time accepted: %q", got)
	}
}

func TestNextWeekendRange(t *testing.T) {
	start, end, nights := nextWeekendRange(testNow)
	if start != "2026-03-07" || end != "2026-03-08" {
		t.Fatalf("weekend range wrong: %s to %s", start, end)
	}
	if nights != 1 {
		t.Fatalf("nights wrong: %d", nights)
	}
}
