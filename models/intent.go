package models

// Intent type discriminators produced by the unified intent parser.
const (
	IntentFlightSearch    = "flight_search"
	IntentHotelSearch     = "hotel_search"
	IntentCarRental       = "car_rental"
	IntentActivitySearch  = "activity_search"
	IntentDiningSearch    = "dining_search"
	IntentTransferRequest = "transfer_request"
	IntentEventSearch     = "event_search"
	IntentVisaHelp        = "visa_help"
	IntentInsuranceHelp   = "insurance_help"
	IntentItineraryOps    = "itinerary_ops"
	IntentQuoteOps        = "quote_ops"
)

// Airport is a resolved city/IATA pair for flight intents.
type Airport struct {
	City string `json:"city" bson:"city"`
	Code string `json:"code,omitempty" bson:"code,omitempty"`
}

// FlightIntent is a structured flight query extracted from natural language.
type FlightIntent struct {
	Original   string   `json:"original" bson:"original"`
	From       *Airport `json:"from,omitempty" bson:"from,omitempty"`
	To         *Airport `json:"to,omitempty" bson:"to,omitempty"`
	Date       string   `json:"date,omitempty" bson:"date,omitempty"`
	Time       string   `json:"time,omitempty" bson:"time,omitempty"`
	Pax        int      `json:"pax" bson:"pax"`
	Cabin      string   `json:"cabin" bson:"cabin"`
	ReturnDate string   `json:"returnDate,omitempty" bson:"returnDate,omitempty"`
	ReturnTime string   `json:"returnTime,omitempty" bson:"returnTime,omitempty"`
}

// ItineraryOp is one structured mutation command for a draft itinerary.
// Op is one of "extend", "shorten", "adjustBudget", "swapDestination";
// consumers switch exhaustively on it.
type ItineraryOp struct {
	Op          string  `json:"op" bson:"op"`
	NightsDelta int     `json:"nightsDelta,omitempty" bson:"nightsDelta,omitempty"`
	Percent     float64 `json:"percent,omitempty" bson:"percent,omitempty"`
	From        string  `json:"from,omitempty" bson:"from,omitempty"`
	To          string  `json:"to,omitempty" bson:"to,omitempty"`
}

const (
	OpExtend          = "extend"
	OpShorten         = "shorten"
	OpAdjustBudget    = "adjustBudget"
	OpSwapDestination = "swapDestination"
)

// QuoteOp is a structured quote action extracted from text.
type QuoteOp struct {
	Op   string     `json:"op" bson:"op"`
	Item *QuoteItem `json:"item,omitempty" bson:"item,omitempty"`
}

// Intent is one tagged intent record. Type decides which of the optional
// fields are populated; the draft client only renders these, it never
// interprets fields beyond the tag.
type Intent struct {
	Type     string `json:"type" bson:"type"`
	Original string `json:"original,omitempty" bson:"original,omitempty"`
	NearMe   bool   `json:"nearMe,omitempty" bson:"nearMe,omitempty"`

	// hotel / activity / dining / transfer / event searches
	City      string     `json:"city,omitempty" bson:"city,omitempty"`
	CheckIn   string     `json:"checkIn,omitempty" bson:"checkIn,omitempty"`
	CheckOut  string     `json:"checkOut,omitempty" bson:"checkOut,omitempty"`
	StartDate string     `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate   string     `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Date      string     `json:"date,omitempty" bson:"date,omitempty"`
	Time      string     `json:"time,omitempty" bson:"time,omitempty"`
	Nights    int        `json:"nights,omitempty" bson:"nights,omitempty"`
	Guests    *Travelers `json:"guests,omitempty" bson:"guests,omitempty"`
	Budget    *Budget    `json:"budget,omitempty" bson:"budget,omitempty"`
	Stars     int        `json:"stars,omitempty" bson:"stars,omitempty"`

	// car rental
	PickupCity   string `json:"pickupCity,omitempty" bson:"pickupCity,omitempty"`
	ReturnCity   string `json:"returnCity,omitempty" bson:"returnCity,omitempty"`
	PickupDate   string `json:"pickupDate,omitempty" bson:"pickupDate,omitempty"`
	ReturnDate   string `json:"returnDate,omitempty" bson:"returnDate,omitempty"`
	PickupTime   string `json:"pickupTime,omitempty" bson:"pickupTime,omitempty"`
	ReturnTime   string `json:"returnTime,omitempty" bson:"returnTime,omitempty"`
	VehicleClass string `json:"vehicleClass,omitempty" bson:"vehicleClass,omitempty"`

	// flight_search
	Flight *FlightIntent `json:"flight,omitempty" bson:"flight,omitempty"`

	// itinerary_ops / quote_ops
	Ops      []ItineraryOp `json:"ops,omitempty" bson:"ops,omitempty"`
	QuoteOps []QuoteOp     `json:"quoteOps,omitempty" bson:"quoteOps,omitempty"`
}

// IntentResult is the unified intent endpoint response body.
type IntentResult struct {
	Original string   `json:"original" bson:"original"`
	Intents  []Intent `json:"intents" bson:"intents"`
}
