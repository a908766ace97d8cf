package planner

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

const (
	fallbackDestination = "Destination"
	placeholderActivity = "Leisure & exploration"
)

// Engine applies structured itinerary ops to a draft. Before each
// mutation it pushes a deep copy of the pre-mutation draft onto the undo
// stack, so an N-op batch is undone one op at a time. An op whose required
// phase is missing leaves both the draft and the stack untouched.
type Engine struct {
	Undo *UndoStack
}

func NewEngine() *Engine {
	return &Engine{Undo: NewUndoStack()}
}

// Apply runs a batch of ops in order and returns the resulting draft.
func (e *Engine) Apply(d models.Draft, ops []models.ItineraryOp) models.Draft {
	for _, op := range ops {
		switch op.Op {
		case models.OpExtend:
			d = e.Extend(d, deltaOrOne(op.NightsDelta))
		case models.OpShorten:
			d = e.Shorten(d, deltaOrOne(op.NightsDelta))
		case models.OpAdjustBudget:
			d = e.AdjustBudget(d, op.Percent)
		case models.OpSwapDestination:
			if op.From != "" && op.To != "" {
				d = e.SwapDestination(d, op.From, op.To)
			}
		}
	}
	return d
}

func deltaOrOne(n int) int {
	if n < 0 {
		n = -n
	}
	if n == 0 {
		n = 1
	}
	return n
}

// Extend adds nights to the itinerary, cloning the last day's activities
// into the appended days.
func (e *Engine) Extend(d models.Draft, nights int) models.Draft {
	return e.resize(d, nights)
}

// Shorten removes trailing nights, never going below one.
func (e *Engine) Shorten(d models.Draft, nights int) models.Draft {
	return e.resize(d, -nights)
}

func (e *Engine) resize(d models.Draft, delta int) models.Draft {
	if d.Plan == nil || d.Plan.Itinerary == nil {
		return d
	}
	e.Undo.Push(d.Clone())
	next := d.Clone()

	currentNights := len(next.Plan.Itinerary)
	if next.Parse != nil && next.Parse.Nights > 0 {
		currentNights = next.Parse.Nights
	}
	newNights := currentNights + delta
	if newNights < 1 {
		newNights = 1
	}
	if next.Parse != nil {
		next.Parse.Nights = newNights
	}

	days := next.Plan.Itinerary
	if newNights > len(days) {
		last := models.TripDay{
			Destination: fallbackDestination,
			Activities:  []string{placeholderActivity},
		}
		if len(days) > 0 {
			last = days[len(days)-1]
		} else if next.Parse != nil && len(next.Parse.Destinations) > 0 {
			last.Destination = next.Parse.Destinations[0]
		}
		for len(days) < newNights {
			dest := last.DestinationName()
			if dest == "" {
				dest = fallbackDestination
			}
			n := len(days) + 1
			acts := last.Activities
			if len(acts) == 0 {
				acts = []string{placeholderActivity}
			}
			days = append(days, models.TripDay{
				Day:         n,
				Title:       models.DayTitle(n, dest),
				Destination: dest,
				Activities:  append([]string(nil), acts...),
			})
		}
	} else if newNights < len(days) {
		days = days[:newNights]
	}

	next.Plan.Itinerary = renumber(days)
	return next
}

// renumber rewrites day numbers 1..n and re-derives every title from the
// day's destination.
func renumber(days []models.TripDay) []models.TripDay {
	for i := range days {
		dest := days[i].DestinationName()
		if dest == "" {
			dest = fallbackDestination
		}
		days[i].Day = i + 1
		days[i].Title = models.DayTitle(i+1, dest)
	}
	return days
}

// AdjustBudget scales the pricing total and every breakdown category by
// percent, rounding to the nearest whole amount, and appends a note
// describing the change. A zero percent still appends "increased by 0%",
// matching the long-standing behavior clients display.
func (e *Engine) AdjustBudget(d models.Draft, percent float64) models.Draft {
	if d.Pricing == nil || d.Pricing.Pricing == nil {
		return d
	}
	e.Undo.Push(d.Clone())
	next := d.Clone()

	scale := 1 + percent/100
	p := next.Pricing.Pricing
	p.Total = math.Round(p.Total * scale)
	for k, v := range p.Breakdown {
		p.Breakdown[k] = math.Round(v * scale)
	}

	suffix := fmt.Sprintf("increased by %s%%", trimFloat(percent))
	if percent < 0 {
		suffix = fmt.Sprintf("decreased by %s%%", trimFloat(-percent))
	}
	if p.Note != "" {
		p.Note += " · " + suffix
	} else {
		p.Note = suffix
	}
	return next
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SwapDestination replaces every case-insensitive occurrence of from with
// to, both in the parsed destination list and on each matching day. A day
// matches on its destination field or on the destination derived from its
// title (the remainder after the last " - ").
func (e *Engine) SwapDestination(d models.Draft, from, to string) models.Draft {
	if d.Plan == nil || d.Plan.Itinerary == nil {
		return d
	}
	e.Undo.Push(d.Clone())
	next := d.Clone()

	if next.Parse != nil {
		for i, dest := range next.Parse.Destinations {
			if strings.EqualFold(dest, from) {
				next.Parse.Destinations[i] = to
			}
		}
	}

	days := next.Plan.Itinerary
	for i := range days {
		dest := days[i].Destination
		if dest == "" {
			dest = days[i].Title
		}
		match := strings.EqualFold(dest, from) ||
			strings.EqualFold(titleTail(days[i].Title), from)
		newDest := days[i].DestinationName()
		if match {
			newDest = to
		}
		if newDest == "" {
			newDest = dest
		}
		days[i].Destination = newDest
		days[i].Day = i + 1
		days[i].Title = models.DayTitle(i+1, newDest)
	}
	next.Plan.Itinerary = days
	return next
}

func titleTail(title string) string {
	if i := strings.LastIndex(title, " - "); i >= 0 {
		return title[i+3:]
	}
	return ""
}

// UndoLast pops the most recent snapshot and returns it as the current
// draft. The boolean is false when there is nothing to undo, in which case
// the draft is returned unchanged.
func (e *Engine) UndoLast(d models.Draft) (models.Draft, bool) {
	snapshot, ok := e.Undo.Pop()
	if !ok {
		return d, false
	}
	return snapshot, true
}
