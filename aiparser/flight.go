package aiparser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/collecokzn-creator/colleco-mvp-sub004/models"
)

var airportAliases = map[string]models.Airport{
	"durban":         {City: "Durban", Code: "DUR"},
	"dbn":            {City: "Durban", Code: "DUR"},
	"king shaka":     {City: "Durban", Code: "DUR"},
	"dur":            {City: "Durban", Code: "DUR"},
	"johannesburg":   {City: "Johannesburg", Code: "JNB"},
	"joburg":         {City: "Johannesburg", Code: "JNB"},
	"jozi":           {City: "Johannesburg", Code: "JNB"},
	"jhb":            {City: "Johannesburg", Code: "JNB"},
	"jnb":            {City: "Johannesburg", Code: "JNB"},
	"cape town":      {City: "Cape Town", Code: "CPT"},
	"cpt":            {City: "Cape Town", Code: "CPT"},
	"port elizabeth": {City: "Gqeberha", Code: "PLZ"},
	"gqeberha":       {City: "Gqeberha", Code: "PLZ"},
}

var (
	flightWordRe   = regexp.MustCompile(`\bflights?\b`)
	fromToRe       = regexp.MustCompile(`(?i)from\s+(.+?)\s+to\s+(.+?)(?:\s+(?:for|on|at|tomorrow|today|next|this)\b.*|$)`)
	fromTrailerRe  = regexp.MustCompile(`(?i)\s+(?:for|on|at|tomorrow|today|next|this)\b.*$`)
	relDayRe       = regexp.MustCompile(`\b(today|tomorrow)\b`)
	timeAtRe       = regexp.MustCompile(`\bat\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|\d{1,2}:\d{2})\b`)
	returnRelRe    = regexp.MustCompile(`\breturn\b.*\b(today|tomorrow)\b`)
	returnDateRe   = regexp.MustCompile(`(?i)return[^\d]*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`)
	returnTimeRe   = regexp.MustCompile(`\breturn\b[^\d]*at\s+(\d{1,2}(?::\d{2})?\s*(?:am|pm)?|\d{1,2}:\d{2})\b`)
	paxRe          = regexp.MustCompile(`(\d+)\s*(?:passengers?|pax|adults?)`)
	cabinRe        = regexp.MustCompile(`business|first|premium`)
	clockRe        = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	hourRe         = regexp.MustCompile(`^\d{1,2}$`)
	threeLetterRe  = regexp.MustCompile(`(?i)^[a-z]{3}$`)
	timeSuffixAmPm = regexp.MustCompile(`(?i)\s*(am|pm)$`)
)

// toHHmm normalizes "3pm", "15:30" or "9:05 am" to 24h HH:mm.
func toHHmm(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	ampm := ""
	if m := timeSuffixAmPm.FindStringSubmatch(s); m != nil {
		ampm = m[1]
		s = timeSuffixAmPm.ReplaceAllString(s, "")
	}
	var h, mm int
	switch {
	case clockRe.MatchString(s):
		parts := strings.SplitN(s, ":", 2)
		h, _ = strconv.Atoi(parts[0])
		mm, _ = strconv.Atoi(parts[1])
	case hourRe.MatchString(s):
		h, _ = strconv.Atoi(s)
	default:
		return ""
	}
	if ampm == "pm" && h < 12 {
		h += 12
	}
	if ampm == "am" && h == 12 {
		h = 0
	}
	if h < 0 || h > 23 || mm < 0 || mm > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", h, mm)
}

func relativeDate(keyword string, now time.Time) string {
	switch keyword {
	case "today":
		return now.UTC().Format("2006-01-02")
	case "tomorrow":
		return now.UTC().Add(24 * time.Hour).Format("2006-01-02")
	}
	return ""
}

// nextWeekendRange returns the upcoming Saturday/Sunday pair.
func nextWeekendRange(now time.Time) (start, end string, nights int) {
	d := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	daysUntilSat := (6 - int(d.Weekday()) + 7) % 7
	if daysUntilSat == 0 {
		daysUntilSat = 6
	}
	sat := d.AddDate(0, 0, daysUntilSat)
	sun := sat.AddDate(0, 0, 1)
	return sat.Format("2006-01-02"), sun.Format("2006-01-02"), 1
}

func resolveAirport(token string) models.Airport {
	t := strings.TrimSpace(strings.ToLower(token))
	t = whitespaceRe.ReplaceAllString(t, " ")
	if a, ok := airportAliases[t]; ok {
		return a
	}
	if threeLetterRe.MatchString(t) {
		code := strings.ToUpper(t)
		for _, a := range airportAliases {
			if a.Code == code {
				return a
			}
		}
		return models.Airport{City: code, Code: code}
	}
	return models.Airport{City: titleCase(t)}
}

// ParseFlight extracts a structured flight query from a prompt. It returns
// false when the prompt is empty or does not mention a flight.
func ParseFlight(prompt string) (models.FlightIntent, bool) {
	return parseFlightAt(prompt, time.Now())
}

func parseFlightAt(prompt string, now time.Time) (models.FlightIntent, bool) {
	original := strings.TrimSpace(prompt)
	if original == "" {
		return models.FlightIntent{}, false
	}
	text := whitespaceRe.ReplaceAllString(original, " ")
	lower := strings.ToLower(text)
	if !flightWordRe.MatchString(lower) {
		return models.FlightIntent{}, false
	}

	fi := models.FlightIntent{Original: original, Pax: 1, Cabin: "economy"}

	if m := fromToRe.FindStringSubmatch(lower); m != nil {
		from := resolveAirport(strings.TrimSpace(fromTrailerRe.ReplaceAllString(m[1], "")))
		to := resolveAirport(strings.TrimSpace(m[2]))
		fi.From = &from
		fi.To = &to
	}

	if m := relDayRe.FindStringSubmatch(lower); m != nil {
		fi.Date = relativeDate(m[1], now)
	}
	if fi.Date == "" {
		if m := singleDateRe.FindStringSubmatch(text); m != nil {
			fi.Date = toISO(m[2])
		} else if m := dateRangeRe.FindStringSubmatch(text); m != nil {
			fi.Date = toISO(m[1])
		}
	}
	if fi.Date == "" {
		fi.Date = relativeDate("tomorrow", now)
	}

	if m := timeAtRe.FindStringSubmatch(lower); m != nil {
		fi.Time = toHHmm(m[1])
	}
	if m := returnRelRe.FindStringSubmatch(lower); m != nil {
		fi.ReturnDate = relativeDate(m[1], now)
	}
	if fi.ReturnDate == "" {
		if m := returnDateRe.FindStringSubmatch(text); m != nil {
			fi.ReturnDate = toISO(m[1])
		}
	}
	if m := returnTimeRe.FindStringSubmatch(lower); m != nil {
		fi.ReturnTime = toHHmm(m[1])
	}

	if m := paxRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		fi.Pax = clamp(n, 1, 9)
	}
	if m := cabinRe.FindString(lower); m != "" {
		fi.Cabin = m
	}
	return fi, true
}
