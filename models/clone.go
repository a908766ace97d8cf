package models

import (
	"fmt"
	"strings"
)

// DayTitle renders the canonical day title.
func DayTitle(day int, destination string) string {
	return fmt.Sprintf("Day %d - %s", day, destination)
}

// DestinationName returns the day's destination, falling back to the
// remainder of the title after the last " - " separator.
func (d TripDay) DestinationName() string {
	if d.Destination != "" {
		return d.Destination
	}
	if i := strings.LastIndex(d.Title, " - "); i >= 0 {
		return d.Title[i+3:]
	}
	return d.Title
}

func (d TripDay) Clone() TripDay {
	out := d
	out.Activities = append([]string(nil), d.Activities...)
	return out
}

func cloneDays(days []TripDay) []TripDay {
	if days == nil {
		return nil
	}
	out := make([]TripDay, len(days))
	for i, d := range days {
		out[i] = d.Clone()
	}
	return out
}

func (b TripBase) Clone() TripBase {
	out := b
	out.Destinations = append([]string(nil), b.Destinations...)
	out.Interests = append([]string(nil), b.Interests...)
	if b.Meta != nil {
		out.Meta = make(map[string]any, len(b.Meta))
		for k, v := range b.Meta {
			out.Meta[k] = v
		}
	}
	return out
}

func (p Pricing) Clone() Pricing {
	out := p
	if p.Breakdown != nil {
		out.Breakdown = make(map[string]float64, len(p.Breakdown))
		for k, v := range p.Breakdown {
			out.Breakdown[k] = v
		}
	}
	return out
}

func (t TripPlan) Clone() TripPlan {
	out := TripPlan{TripBase: t.TripBase.Clone()}
	out.Itinerary = cloneDays(t.Itinerary)
	if t.Pricing != nil {
		p := t.Pricing.Clone()
		out.Pricing = &p
	}
	return out
}

// Clone deep-copies the draft so that undo snapshots never alias the live
// value.
func (d Draft) Clone() Draft {
	out := Draft{Done: d.Done}
	if d.Parse != nil {
		b := d.Parse.Clone()
		out.Parse = &b
	}
	if d.Plan != nil {
		out.Plan = &PlanPhase{Itinerary: cloneDays(d.Plan.Itinerary)}
	}
	if d.Pricing != nil {
		out.Pricing = &PricingPhase{}
		if d.Pricing.Pricing != nil {
			p := d.Pricing.Pricing.Clone()
			out.Pricing.Pricing = &p
		}
	}
	return out
}
