package planner

import (
	"testing"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

func draftWithNights(n int) models.Draft {
	return models.Draft{Parse: &models.TripBase{Nights: n}}
}

func TestUndoStackLIFO(t *testing.T) {
	s := NewUndoStack()
	s.Push(draftWithNights(1))
	s.Push(draftWithNights(2))
	s.Push(draftWithNights(3))

	for want := 3; want >= 1; want-- {
		got, ok := s.Pop()
		if !ok {
			t.Fatalf("stack empty at %d", want)
		}
		if got.Parse.Nights != want {
			t.Fatalf("expected nights %d, got %d", want, got.Parse.Nights)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Fatal("pop on empty stack returned ok")
	}
}

func TestUndoStackLimitDropsOldest(t *testing.T) {
	s := NewUndoStackWithLimit(2)
	s.Push(draftWithNights(1))
	s.Push(draftWithNights(2))
	s.Push(draftWithNights(3))

	if s.Len() != 2 {
		t.Fatalf("expected len 2, got %d", s.Len())
	}
	got, _ := s.Pop()
	if got.Parse.Nights != 3 {
		t.Fatalf("expected newest on top, got %d", got.Parse.Nights)
	}
	got, _ = s.Pop()
	if got.Parse.Nights != 2 {
		t.Fatalf("expected oldest dropped, got %d", got.Parse.Nights)
	}
}

func TestUndoSnapshotDoesNotAliasLiveDraft(t *testing.T) {
	d := models.Draft{
		Parse: &models.TripBase{Nights: 2, Destinations: []string{"Durban"}},
		Plan: &models.PlanPhase{Itinerary: []models.TripDay{
			{Day: 1, Title: "Day 1 - Durban", Destination: "Durban", Activities: []string{"Beach day"}},
		}},
	}
	s := NewUndoStack()
	s.Push(d.Clone())

	d.Parse.Nights = 9
	d.Plan.Itinerary[0].Activities[0] = "changed"

	got, _ := s.Pop()
	if got.Parse.Nights != 2 {
		t.Fatalf("snapshot aliased parse phase: %d", got.Parse.Nights)
	}
	if got.Plan.Itinerary[0].Activities[0] != "Beach day" {
		t.Fatalf("snapshot aliased activities: %q", got.Plan.Itinerary[0].Activities[0])
	}
}
