// Package aiparser is a deterministic heuristic parser for travel
// prompts. It is side-effect free and keeps a stable output contract so a
// model-backed implementation can replace it later.
package aiparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

var currencySymbols = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "R": "ZAR", "¥": "JPY",
}

var interestKeywords = []string{
	"beach", "museum", "food", "cuisine", "adventure", "luxury", "relax",
	"culture", "nightlife", "hiking", "family", "romantic", "history",
	"art", "shopping",
}

// Small destination lexicon. A real system would query a geo DB.
var destinationLexicon = []string{
	"paris", "rome", "london", "barcelona", "new york", "new york city",
	"tokyo", "kyoto", "bali", "cape town", "dubai", "singapore", "lisbon",
	"amsterdam", "prague", "sydney", "melbourne", "vancouver", "toronto",
	"mexico city", "cancun", "madrid", "venice", "florence",
}

var (
	dateRangeRe    = regexp.MustCompile(`(?i)(\b\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})\s*(?:to|-|through|–|—)\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)
	singleDateRe   = regexp.MustCompile(`(?i)(on|starting|from)\s+(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)
	durationRe     = regexp.MustCompile(`(?i)(\b\d{1,2})\s*(?:nights?|days?)\b`)
	travelersRe    = regexp.MustCompile(`(?i)(\b\d{1,2})\s*(?:adults?)\b(?:[^\d]{0,20}(\d{1,2})\s*(?:kids?|children))?`)
	budgetSymbolRe = regexp.MustCompile(`([$€£R¥])\s?([\d,.]{2,})`)
	budgetCodeRe   = regexp.MustCompile(`(?i)(USD|EUR|GBP|ZAR|JPY|CAD|AUD)\s*([\d,.]{2,})`)
	perPersonRe    = regexp.MustCompile(`(?i)per\s*(person|adult|head)`)
	capitalizedRe  = regexp.MustCompile(`\b([A-Z][a-z]{2,}(?:\s+[A-Z][a-z]{2,})*)\b`)
	whitespaceRe   = regexp.MustCompile(`\s+`)
)

func clamp(n, min, max int) int {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// toISO normalizes a dd/mm/yyyy or mm/dd/yyyy style date to YYYY-MM-DD.
// When both fields could be a month, month-first wins.
func toISO(dateStr string) string {
	parts := regexp.MustCompile(`[/\-.]`).Split(dateStr, -1)
	if len(parts) < 3 {
		return ""
	}
	a, b, c := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2])
	if len(c) == 2 {
		c = "20" + c
	}
	nA, errA := strconv.Atoi(a)
	nB, errB := strconv.Atoi(b)
	year, errY := strconv.Atoi(c)
	if errA != nil || errB != nil || errY != nil {
		return ""
	}
	var month, day int
	switch {
	case nA > 12 && nB <= 12:
		day, month = nA, nB
	case nB > 12 && nA <= 12:
		day, month = nB, nA
	default:
		month, day = nA, nB
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) {
		return ""
	}
	return d.Format("2006-01-02")
}

func titleCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if upper && r >= 'a' && r <= 'z' {
			b.WriteRune(r - 32)
		} else {
			b.WriteRune(r)
		}
		upper = r == ' ' || r == '-' || r == '\''
	}
	return b.String()
}

func extractDestinations(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var found []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			found = append(found, name)
		}
	}
	for _, city := range destinationLexicon {
		if strings.Contains(lower, city) {
			add(titleCase(city))
		}
	}
	for _, m := range capitalizedRe.FindAllStringSubmatch(text, -1) {
		if len(found) >= 5 {
			break
		}
		if len(m[1]) <= 40 {
			add(m[1])
		}
	}
	if len(found) > 5 {
		found = found[:5]
	}
	return found
}

func extractInterests(lower string) []string {
	var hits []string
	for _, k := range interestKeywords {
		if strings.Contains(lower, k) {
			hits = append(hits, k)
		}
	}
	return hits
}

func extractBudget(text string) models.Budget {
	b := models.Budget{Currency: "USD"}
	if m := budgetSymbolRe.FindStringSubmatch(text); m != nil {
		if cur, ok := currencySymbols[m[1]]; ok {
			b.Currency = cur
		}
		if n, ok := parseNumber(m[2]); ok {
			b.Amount = n
		}
	} else if m := budgetCodeRe.FindStringSubmatch(text); m != nil {
		b.Currency = strings.ToUpper(m[1])
		if n, ok := parseNumber(m[2]); ok {
			b.Amount = n
		}
	}
	b.PerPerson = perPersonRe.MatchString(text)
	return b
}

// ParsePrompt parses a natural-language trip request into a full plan,
// including a generated itinerary and rough pricing. It returns false when
// the prompt is empty.
func ParsePrompt(prompt string) (models.TripPlan, bool) {
	original := strings.TrimSpace(prompt)
	if original == "" {
		return models.TripPlan{}, false
	}
	text := whitespaceRe.ReplaceAllString(original, " ")
	lower := strings.ToLower(text)

	var startDate, endDate string
	nights := 0
	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		startDate = toISO(m[1])
		endDate = toISO(m[2])
		if startDate != "" && endDate != "" {
			s, _ := time.Parse("2006-01-02", startDate)
			e, _ := time.Parse("2006-01-02", endDate)
			diff := int(e.Sub(s).Hours() / 24)
			if diff >= 0 && diff <= 60 {
				nights = diff
				if nights == 0 {
					nights = 1
				}
			}
		}
	} else if m := singleDateRe.FindStringSubmatch(text); m != nil {
		startDate = toISO(m[2])
	}
	if nights == 0 {
		if m := durationRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			nights = clamp(n, 1, 30)
		}
	}
	if nights == 0 {
		nights = 5
	}

	adults, children := 2, 0
	if m := travelersRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			adults = clamp(n, 1, 20)
		}
		if m[2] != "" {
			if n, err := strconv.Atoi(m[2]); err == nil {
				children = clamp(n, 0, 10)
			}
		}
	}

	budget := extractBudget(text)
	interests := extractInterests(lower)
	destinations := extractDestinations(strings.ReplaceAll(text, "\n", " "))
	if destinations == nil {
		destinations = []string{}
	}
	if interests == nil {
		interests = []string{}
	}

	travelers := models.Travelers{Adults: adults, Children: children}
	pricing := RoughPricing(nights, travelers, budget)
	plan := models.TripPlan{
		TripBase: models.TripBase{
			Original:     original,
			Destinations: destinations,
			StartDate:    startDate,
			EndDate:      endDate,
			Nights:       nights,
			Travelers:    travelers,
			Budget:       budget,
			Interests:    interests,
			Meta:         map[string]any{"heuristic": true, "version": 1},
		},
		Itinerary: BuildItinerary(destinations, nights, interests),
		Pricing:   &pricing,
	}
	return plan, true
}
