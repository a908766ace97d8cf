package aiparser

import (
	"math"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

const (
	basePerNightAdult = 150
	basePerNightChild = 90 // 60% of the adult rate
)

// BuildItinerary lays out one day per night. Destinations are assigned in
// order; once exhausted the last one repeats.
func BuildItinerary(destinations []string, nights int, interests []string) []models.TripDay {
	has := make(map[string]bool, len(interests))
	for _, it := range interests {
		has[it] = true
	}

	days := make([]models.TripDay, 0, nights)
	for i := 1; i <= nights; i++ {
		dest := "Destination"
		if i-1 < len(destinations) {
			dest = destinations[i-1]
		} else if len(destinations) > 0 {
			dest = destinations[len(destinations)-1]
		}

		var activities []string
		if has["food"] {
			activities = append(activities, "Local culinary tour")
		}
		if has["museum"] || has["art"] || has["history"] {
			activities = append(activities, "Cultural site visit")
		}
		if has["beach"] {
			activities = append(activities, "Relax at the beach")
		}
		if has["adventure"] || has["hiking"] {
			activities = append(activities, "Outdoor adventure")
		}
		if len(activities) == 0 {
			activities = append(activities, "Leisure & exploration")
		}

		days = append(days, models.TripDay{
			Day:         i,
			Title:       models.DayTitle(i, dest),
			Destination: dest,
			Activities:  activities,
		})
	}
	return days
}

// RoughPricing estimates trip cost from party size and nights. When the
// stated budget is below the heuristic total, every component is scaled
// down proportionally to fit.
func RoughPricing(nights int, travelers models.Travelers, budget models.Budget) models.Pricing {
	lodging := float64((travelers.Adults*basePerNightAdult + travelers.Children*basePerNightChild) * nights)
	activities := math.Round(lodging * 0.25)
	food := math.Round(lodging * 0.35)
	total := lodging + activities + food

	scale := 1.0
	note := "Heuristic estimate"
	if budget.Amount > 0 && budget.Amount < total {
		scale = budget.Amount / total
		note = "Scaled to fit stated budget"
	}
	scaled := func(v float64) float64 { return math.Round(v * scale) }

	return models.Pricing{
		Currency: budget.Currency,
		Total:    scaled(total),
		Breakdown: map[string]float64{
			"lodging":    scaled(lodging),
			"activities": scaled(activities),
			"food":       scaled(food),
		},
		Note: note,
	}
}
