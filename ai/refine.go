// Package ai exposes the trip-generation HTTP surface: single-shot and
// streamed generation, instruction-based refinement, intent parsing,
// persisted drafts and stateful refinement sessions.
package ai

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/collecokzn-creator/colleco-mvp-sub004/aiparser"
	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

// Interests that "add <interest>" instructions may introduce.
var refineInterestLex = []string{
	"beach", "museum", "food", "adventure", "luxury", "relax", "culture",
	"nightlife", "hiking", "family", "romantic", "history", "art", "shopping",
}

var moreNightsRe = regexp.MustCompile(`(\d+)\s+(?:more|additional)\s+nights?`)

const maxNights = 30

// ApplyInstructions mutates a plan according to free-text refinement
// instructions: "add <interest>" appends a known interest, "N more nights"
// extends the stay (capped), and the itinerary and pricing are regenerated
// from the updated fields.
func ApplyInstructions(plan models.TripPlan, instructions string) models.TripPlan {
	out := plan.Clone()
	text := strings.ToLower(instructions)

	for _, k := range refineInterestLex {
		if strings.Contains(text, "add "+k) && !containsFold(out.Interests, k) {
			out.Interests = append(out.Interests, k)
		}
	}

	if m := moreNightsRe.FindStringSubmatch(text); m != nil {
		if extra, err := strconv.Atoi(m[1]); err == nil && extra > 0 {
			out.Nights += extra
			if out.Nights > maxNights {
				out.Nights = maxNights
			}
		}
	}

	out.Itinerary = aiparser.BuildItinerary(out.Destinations, out.Nights, out.Interests)
	pricing := aiparser.RoughPricing(out.Nights, out.Travelers, out.Budget)
	out.Pricing = &pricing
	return out
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
