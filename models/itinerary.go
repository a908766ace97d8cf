package models

// Itinerary represents a saved travel itinerary, either hand-built or
// imported from an AI draft handoff.
type Itinerary struct {
	ItineraryID  string  `json:"itineraryid" bson:"itineraryid,omitempty"`
	UserID       string  `json:"user_id" bson:"user_id"`
	Name         string  `json:"name" bson:"name"`
	Description  string  `json:"description" bson:"description"`
	StartDate    string  `json:"start_date" bson:"start_date"`
	EndDate      string  `json:"end_date" bson:"end_date"`
	Status       string  `json:"status" bson:"status"` // Draft/Confirmed
	Published    bool    `json:"published" bson:"published"`
	ForkedFrom   *string `json:"forked_from,omitempty" bson:"forked_from,omitempty"`
	SourcePrompt string  `json:"source_prompt,omitempty" bson:"source_prompt,omitempty"`
	Deleted      bool    `json:"-" bson:"deleted,omitempty"` // Internal use only
	// the day-by-day schedule
	Days []TripDay `json:"days" bson:"days"`
}
