package aiparser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

var (
	nearMeRe    = regexp.MustCompile(`(?i)\bnear\s+me\b|\bnearby\b|\baround\s+me\b|\bclose\s+by\b|\bclosest\b`)
	cityPreRe   = regexp.MustCompile(`\b(?:in|near|around|at)\s+([A-Z][A-Za-z'’\-]+(?:\s+[A-Z][A-Za-z'’\-]+)*)`)
	starsRe     = regexp.MustCompile(`(\b[1-5])\s*-*\s*star`)
	weekendRe   = regexp.MustCompile(`\bnext\s+weekend\b|\bthis\s+weekend\b`)
	pickupAtRe  = regexp.MustCompile(`\b(?:at|pickup\s+at)\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|\d{1,2}:\d{2})\b`)
	returnAtRe  = regexp.MustCompile(`\breturn\s+(?:at\s+)?(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|\d{1,2}:\d{2})\b`)
	extendRe    = regexp.MustCompile(`add\s+(\d+)\s*(?:night|day)`)
	shortenRe   = regexp.MustCompile(`remove\s+(\d+)\s*(?:night|day)`)
	swapRe      = regexp.MustCompile(`(?i)swap\s+(.+?)\s+for\s+(.+?)(?:\.|$)`)
	budgetUpRe  = regexp.MustCompile(`(?i)(?:increase|raise)\s+budget\s+by\s+(\d+)%`)
	budgetDnRe  = regexp.MustCompile(`(?i)(?:decrease|reduce|lower)\s+budget\s+by\s+(\d+)%`)
	quoteNewRe  = regexp.MustCompile(`\b(?:create|make|generate|prepare|new)\s+(?:a\s+)?(?:quote|quotation|estimate)\b`)
	quoteAddRe  = regexp.MustCompile(`(?i)add\s+(.+?)\s+to\s+(?:my\s+)?(?:quote|quotation|estimate)`)
	quoteWordRe = regexp.MustCompile(`\badd\b.+\b(?:quote|quotation|estimate)\b`)
)

var cityStopWords = map[string]bool{
	"On": true, "At": true, "For": true, "To": true, "From": true,
	"This": true, "Next": true, "Near": true, "Around": true,
}

func matchAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// extractCityFromText prefers an explicit "in/near/around/at <City>"
// pattern, trimming trailing capitalized stop-words, then falls back to
// destination extraction.
func extractCityFromText(text string) string {
	var name string
	if m := cityPreRe.FindStringSubmatch(text); m != nil {
		name = m[1]
	} else if dests := extractDestinations(text); len(dests) > 0 {
		name = dests[0]
	}
	if name == "" {
		return ""
	}
	parts := strings.Fields(name)
	for len(parts) > 1 && cityStopWords[parts[len(parts)-1]] {
		parts = parts[:len(parts)-1]
	}
	return titleCase(strings.Join(parts, " "))
}

type dateRange struct {
	checkIn  string
	checkOut string
	nights   int
}

func extractDateRange(text string, now time.Time) dateRange {
	var r dateRange
	if m := dateRangeRe.FindStringSubmatch(text); m != nil {
		r.checkIn = toISO(m[1])
		r.checkOut = toISO(m[2])
		if r.checkIn != "" && r.checkOut != "" {
			s, _ := time.Parse("2006-01-02", r.checkIn)
			e, _ := time.Parse("2006-01-02", r.checkOut)
			if diff := int(e.Sub(s).Hours() / 24); diff > 0 {
				r.nights = diff
			}
		}
	}
	if r.checkIn == "" {
		if m := singleDateRe.FindStringSubmatch(text); m != nil {
			r.checkIn = toISO(m[2])
		}
	}
	lower := strings.ToLower(text)
	if r.checkIn == "" {
		switch {
		case weekendRe.MatchString(lower):
			r.checkIn, r.checkOut, r.nights = nextWeekendRange(now)
		case strings.Contains(lower, "tonight"):
			r.checkIn = relativeDate("today", now)
		case strings.Contains(lower, "tomorrow"):
			r.checkIn = relativeDate("tomorrow", now)
		}
	}
	if r.nights == 0 {
		if m := durationRe.FindStringSubmatch(text); m != nil {
			n, _ := strconv.Atoi(m[1])
			r.nights = clamp(n, 1, 30)
		}
	}
	return r
}

func extractGuests(text string) models.Travelers {
	g := models.Travelers{Adults: 2}
	if m := travelersRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			g.Adults = clamp(n, 1, 20)
		}
		if m[2] != "" {
			if n, err := strconv.Atoi(m[2]); err == nil {
				g.Children = clamp(n, 0, 10)
			}
		}
	}
	return g
}

func extractStars(lower string) int {
	if m := starsRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n
	}
	return 0
}

func extractVehicleClass(lower string) string {
	switch {
	case strings.Contains(lower, "suv"):
		return "SUV"
	case strings.Contains(lower, "mini") || strings.Contains(lower, "compact"):
		return "Compact"
	case strings.Contains(lower, "sedan"):
		return "Sedan"
	case strings.Contains(lower, "van") || strings.Contains(lower, "people carrier") || strings.Contains(lower, "mpv"):
		return "Van"
	}
	return ""
}

// ParseItineraryOps extracts structured draft mutations from free text.
func ParseItineraryOps(text string) []models.ItineraryOp {
	lower := strings.ToLower(text)
	var ops []models.ItineraryOp

	if strings.Contains(lower, "extend") || extendRe.MatchString(lower) {
		delta := 1
		if m := extendRe.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				delta = n
			}
		}
		ops = append(ops, models.ItineraryOp{Op: models.OpExtend, NightsDelta: delta})
	}
	if strings.Contains(lower, "shorten") || shortenRe.MatchString(lower) {
		delta := 1
		if m := shortenRe.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				delta = n
			}
		}
		ops = append(ops, models.ItineraryOp{Op: models.OpShorten, NightsDelta: delta})
	}
	if m := swapRe.FindStringSubmatch(text); m != nil {
		ops = append(ops, models.ItineraryOp{
			Op:   models.OpSwapDestination,
			From: strings.TrimSpace(m[1]),
			To:   strings.TrimSpace(m[2]),
		})
	}
	if strings.Contains(lower, "increase budget") || strings.Contains(lower, "raise budget") {
		pct := 10
		if m := budgetUpRe.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				pct = n
			}
		}
		ops = append(ops, models.ItineraryOp{Op: models.OpAdjustBudget, Percent: float64(pct)})
	}
	if strings.Contains(lower, "decrease budget") || strings.Contains(lower, "reduce budget") || strings.Contains(lower, "lower budget") {
		pct := 10
		if m := budgetDnRe.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				pct = n
			}
		}
		ops = append(ops, models.ItineraryOp{Op: models.OpAdjustBudget, Percent: float64(-pct)})
	}
	return ops
}

// ParseQuoteOps detects quote creation and item-add commands.
func ParseQuoteOps(text string) []models.QuoteOp {
	lower := strings.ToLower(text)
	if quoteNewRe.MatchString(lower) {
		return []models.QuoteOp{{Op: "create"}}
	}
	if quoteWordRe.MatchString(lower) {
		title := "Custom Item"
		if m := quoteAddRe.FindStringSubmatch(text); m != nil {
			title = strings.TrimSpace(m[1])
		}
		return []models.QuoteOp{{Op: "addItem", Item: &models.QuoteItem{Title: title, Quantity: 1}}}
	}
	return nil
}

var (
	hotelWords    = []string{"hotel", "accommodation", "lodging", "guesthouse", "guest house", "bnb", "resort", "stay"}
	carWords      = []string{"car hire", "car rental", "rent a car", "hire a car", "rental car"}
	activityWords = []string{"activity", "activities", "tour", "tickets", "museum", "hike", "safari", "wine tasting", "things to do"}
	diningWords   = []string{"dining", "restaurant", "restaurants", "eat", "food", "cafe", "cafes", "bar", "bars"}
	transferWords = []string{"transfer", "transfers", "shuttle", "pickup", "dropoff", "airport transfer", "airport shuttle"}
	eventWords    = []string{"event", "events", "concert", "festival", "exhibition", "expo", "show"}
	visaWords     = []string{"visa", "schengen", "e-visa", "passport"}
	insureWords   = []string{"insurance", "travel insurance", "medical cover"}
)

// ParseIntent classifies a prompt into zero or more tagged intents. It
// returns false when the prompt is empty or nothing was detected.
func ParseIntent(prompt string) (models.IntentResult, bool) {
	return parseIntentAt(prompt, time.Now())
}

func parseIntentAt(prompt string, now time.Time) (models.IntentResult, bool) {
	original := strings.TrimSpace(prompt)
	if original == "" {
		return models.IntentResult{}, false
	}
	lower := strings.ToLower(original)
	nearMe := nearMeRe.MatchString(original)
	var intents []models.Intent

	if fi, ok := parseFlightAt(original, now); ok {
		f := fi
		intents = append(intents, models.Intent{Type: models.IntentFlightSearch, Flight: &f})
	}

	if matchAny(lower, hotelWords) {
		r := extractDateRange(original, now)
		guests := extractGuests(original)
		budget := extractBudget(original)
		intents = append(intents, models.Intent{
			Type:     models.IntentHotelSearch,
			City:     extractCityFromText(original),
			CheckIn:  r.checkIn,
			CheckOut: r.checkOut,
			Nights:   r.nights,
			Guests:   &guests,
			Budget:   &budget,
			Stars:    extractStars(lower),
			NearMe:   nearMe,
		})
	}

	if matchAny(lower, carWords) {
		r := extractDateRange(original, now)
		city := extractCityFromText(original)
		intent := models.Intent{
			Type:         models.IntentCarRental,
			PickupCity:   city,
			ReturnCity:   city,
			PickupDate:   r.checkIn,
			ReturnDate:   r.checkOut,
			VehicleClass: extractVehicleClass(lower),
			NearMe:       nearMe,
		}
		if m := pickupAtRe.FindStringSubmatch(lower); m != nil {
			intent.PickupTime = toHHmm(m[1])
		}
		if m := returnAtRe.FindStringSubmatch(lower); m != nil {
			intent.ReturnTime = toHHmm(m[1])
		}
		intents = append(intents, intent)
	}

	if matchAny(lower, activityWords) {
		r := extractDateRange(original, now)
		intents = append(intents, models.Intent{
			Type:      models.IntentActivitySearch,
			City:      extractCityFromText(original),
			StartDate: r.checkIn,
			EndDate:   r.checkOut,
			NearMe:    nearMe,
		})
	}

	if matchAny(lower, diningWords) {
		r := extractDateRange(original, now)
		budget := extractBudget(original)
		intent := models.Intent{
			Type:   models.IntentDiningSearch,
			City:   extractCityFromText(original),
			Date:   r.checkIn,
			Budget: &budget,
			NearMe: nearMe,
		}
		if m := timeAtRe.FindStringSubmatch(lower); m != nil {
			intent.Time = toHHmm(m[1])
		}
		intents = append(intents, intent)
	}

	if matchAny(lower, transferWords) {
		r := extractDateRange(original, now)
		intent := models.Intent{
			Type:   models.IntentTransferRequest,
			City:   extractCityFromText(original),
			Date:   r.checkIn,
			NearMe: nearMe,
		}
		if m := timeAtRe.FindStringSubmatch(lower); m != nil {
			intent.Time = toHHmm(m[1])
		}
		intents = append(intents, intent)
	}

	if matchAny(lower, eventWords) {
		r := extractDateRange(original, now)
		intents = append(intents, models.Intent{
			Type:      models.IntentEventSearch,
			City:      extractCityFromText(original),
			StartDate: r.checkIn,
			EndDate:   r.checkOut,
			NearMe:    nearMe,
		})
	}

	if matchAny(lower, visaWords) {
		intents = append(intents, models.Intent{Type: models.IntentVisaHelp, Original: original, NearMe: nearMe})
	}
	if matchAny(lower, insureWords) {
		intents = append(intents, models.Intent{Type: models.IntentInsuranceHelp, Original: original, NearMe: nearMe})
	}

	if ops := ParseItineraryOps(original); len(ops) > 0 {
		intents = append(intents, models.Intent{Type: models.IntentItineraryOps, Ops: ops})
	}
	if qops := ParseQuoteOps(original); len(qops) > 0 {
		intents = append(intents, models.Intent{Type: models.IntentQuoteOps, QuoteOps: qops})
	}

	if len(intents) == 0 {
		return models.IntentResult{}, false
	}
	return models.IntentResult{Original: original, Intents: intents}, true
}
