package models

// Travelers is the party size extracted from a prompt.
type Travelers struct {
	Adults   int `json:"adults" bson:"adults"`
	Children int `json:"children" bson:"children"`
}

// Budget is the stated trip budget. Amount 0 means "not stated".
type Budget struct {
	Currency  string  `json:"currency" bson:"currency"`
	Amount    float64 `json:"amount,omitempty" bson:"amount,omitempty"`
	PerPerson bool    `json:"perPerson" bson:"perPerson"`
}

// TripDay is one itinerary day. Title is always derivable from Day and
// Destination as "Day {n} - {destination}"; anything that changes either
// must re-render it.
type TripDay struct {
	Day         int      `json:"day" bson:"day"`
	Title       string   `json:"title" bson:"title"`
	Destination string   `json:"destination" bson:"destination"`
	Activities  []string `json:"activities" bson:"activities"`
}

// TripBase is the "parse" phase of a draft: everything extracted from the
// prompt before the itinerary and pricing are generated.
type TripBase struct {
	Original     string         `json:"original,omitempty" bson:"original,omitempty"`
	Destinations []string       `json:"destinations" bson:"destinations"`
	StartDate    string         `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate      string         `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Nights       int            `json:"nights,omitempty" bson:"nights,omitempty"`
	Travelers    Travelers      `json:"travelers" bson:"travelers"`
	Budget       Budget         `json:"budget" bson:"budget"`
	Interests    []string       `json:"interests" bson:"interests"`
	Meta         map[string]any `json:"meta,omitempty" bson:"meta,omitempty"`
}

// Pricing is the rough cost estimate for a trip plan.
type Pricing struct {
	Currency  string             `json:"currency" bson:"currency"`
	Total     float64            `json:"total" bson:"total"`
	Breakdown map[string]float64 `json:"breakdown" bson:"breakdown"`
	Note      string             `json:"note" bson:"note"`
}

// TripPlan is a fully generated draft in its flat server shape: the parse
// result plus itinerary and pricing. This is what the single-shot, refine
// and session endpoints return, and what session history snapshots hold.
type TripPlan struct {
	TripBase  `bson:",inline"`
	Itinerary []TripDay `json:"itinerary" bson:"itinerary"`
	Pricing   *Pricing  `json:"pricing,omitempty" bson:"pricing,omitempty"`
}

// PlanPhase is the payload of a "plan" stream frame.
type PlanPhase struct {
	Itinerary []TripDay `json:"itinerary" bson:"itinerary"`
}

// PricingPhase is the payload of a "pricing" stream frame. The pricing
// object is nested one level down on the wire.
type PricingPhase struct {
	Pricing *Pricing `json:"pricing" bson:"pricing"`
}

// Draft is the phased draft assembled from the generation stream. Each
// phase is replaced wholesale by its frame; Done flips when the stream
// signals completion.
type Draft struct {
	Parse   *TripBase     `json:"parse,omitempty" bson:"parse,omitempty"`
	Plan    *PlanPhase    `json:"plan,omitempty" bson:"plan,omitempty"`
	Pricing *PricingPhase `json:"pricing,omitempty" bson:"pricing,omitempty"`
	Done    bool          `json:"done" bson:"done"`
}

// HistoryEntry is one snapshot in a refinement session, append-only.
type HistoryEntry struct {
	Type         string   `json:"type" bson:"type"`
	Data         TripPlan `json:"data" bson:"data"`
	Instructions string   `json:"instructions,omitempty" bson:"instructions,omitempty"`
	At           int64    `json:"at" bson:"at"`
}

// AISession is a stateful refinement session stored server-side.
type AISession struct {
	ID        string         `json:"id" bson:"id"`
	Prompt    string         `json:"prompt" bson:"prompt"`
	CreatedAt int64          `json:"createdAt" bson:"createdAt"`
	TokenHash string         `json:"-" bson:"tokenHash,omitempty"`
	History   []HistoryEntry `json:"history" bson:"history"`
}

// AIDraft is an uploaded draft stored server-side, scoped to the token
// that uploaded it when auth is enabled.
type AIDraft struct {
	ID        string   `json:"id" bson:"id"`
	Prompt    string   `json:"prompt" bson:"prompt"`
	Data      TripPlan `json:"data" bson:"data"`
	CreatedAt int64    `json:"createdAt" bson:"createdAt"`
	TokenHash string   `json:"-" bson:"tokenHash,omitempty"`
}

// DraftHandoff is the fixed-shape record written when the user confirms a
// draft, handed to durable storage for the itinerary page to import.
type DraftHandoff struct {
	AppliedAt    int64       `json:"appliedAt" bson:"appliedAt"`
	SourcePrompt string      `json:"sourcePrompt" bson:"sourcePrompt"`
	Itinerary    []TripDay   `json:"itinerary" bson:"itinerary"`
	Meta         HandoffMeta `json:"meta" bson:"meta"`
}

type HandoffMeta struct {
	Nights       int      `json:"nights" bson:"nights"`
	Destinations []string `json:"destinations" bson:"destinations"`
	Interests    []string `json:"interests" bson:"interests"`
	Budget       Budget   `json:"budget" bson:"budget"`
}
