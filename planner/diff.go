package planner

import (
	"sort"
	"strings"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

// DayChange records activity additions and removals for one itinerary day.
type DayChange struct {
	Day     int      `json:"day"`
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// DiffReport summarizes what changed between two plan snapshots in a
// session's history.
type DiffReport struct {
	NightsDelta       int         `json:"nightsDelta"`
	AddedInterests    []string    `json:"addedInterests,omitempty"`
	DestinationsDelta int         `json:"destinationsDelta"`
	AddedDays         []int       `json:"addedDays,omitempty"`
	RemovedDays       []int       `json:"removedDays,omitempty"`
	DayChanges        []DayChange `json:"dayChanges,omitempty"`
}

// Empty reports whether the diff carries no changes at all.
func (r DiffReport) Empty() bool {
	return r.NightsDelta == 0 &&
		len(r.AddedInterests) == 0 &&
		r.DestinationsDelta == 0 &&
		len(r.AddedDays) == 0 &&
		len(r.RemovedDays) == 0 &&
		len(r.DayChanges) == 0
}

// Diff compares two plan snapshots. Interests are matched
// case-insensitively, day presence by day number, and activities as
// ordered sets within each day shared by both snapshots.
func Diff(prev, curr models.TripPlan) DiffReport {
	var r DiffReport

	r.NightsDelta = curr.Nights - prev.Nights
	r.DestinationsDelta = len(curr.Destinations) - len(prev.Destinations)

	prevInterests := make(map[string]bool, len(prev.Interests))
	for _, it := range prev.Interests {
		prevInterests[strings.ToLower(it)] = true
	}
	for _, it := range curr.Interests {
		if !prevInterests[strings.ToLower(it)] {
			r.AddedInterests = append(r.AddedInterests, it)
		}
	}

	prevDays := make(map[int]models.TripDay, len(prev.Itinerary))
	for _, d := range prev.Itinerary {
		prevDays[d.Day] = d
	}
	currDays := make(map[int]models.TripDay, len(curr.Itinerary))
	for _, d := range curr.Itinerary {
		currDays[d.Day] = d
	}

	for n := range currDays {
		if _, ok := prevDays[n]; !ok {
			r.AddedDays = append(r.AddedDays, n)
		}
	}
	for n := range prevDays {
		if _, ok := currDays[n]; !ok {
			r.RemovedDays = append(r.RemovedDays, n)
		}
	}
	sort.Ints(r.AddedDays)
	sort.Ints(r.RemovedDays)

	shared := make([]int, 0, len(currDays))
	for n := range currDays {
		if _, ok := prevDays[n]; ok {
			shared = append(shared, n)
		}
	}
	sort.Ints(shared)

	for _, n := range shared {
		added := diffActivities(prevDays[n].Activities, currDays[n].Activities)
		removed := diffActivities(currDays[n].Activities, prevDays[n].Activities)
		if len(added) > 0 || len(removed) > 0 {
			r.DayChanges = append(r.DayChanges, DayChange{
				Day:     n,
				Added:   added,
				Removed: removed,
			})
		}
	}
	return r
}

// diffActivities returns the entries of b that are absent from a,
// preserving b's order.
func diffActivities(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	var out []string
	for _, s := range b {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}
