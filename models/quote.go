package models

import "time"

// QuoteItem is one line item on a quote.
type QuoteItem struct {
	Title     string  `json:"title" bson:"title"`
	Category  string  `json:"category,omitempty" bson:"category,omitempty"`
	UnitPrice float64 `json:"unitPrice" bson:"unitPrice"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Quote is a priced proposal built from basket or itinerary items.
type Quote struct {
	QuoteID    string      `json:"quoteid" bson:"quoteid,omitempty"`
	UserID     string      `json:"user_id" bson:"user_id"`
	ClientName string      `json:"client_name" bson:"client_name"`
	Title      string      `json:"title" bson:"title"`
	Currency   string      `json:"currency" bson:"currency"`
	Items      []QuoteItem `json:"items" bson:"items"`
	Subtotal   float64     `json:"subtotal" bson:"subtotal"`
	TaxRate    float64     `json:"tax_rate" bson:"tax_rate"`
	Total      float64     `json:"total" bson:"total"`
	Status     string      `json:"status" bson:"status"` // Draft/Sent/Accepted
	CreatedAt  time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" bson:"updated_at"`
	Deleted    bool        `json:"-" bson:"deleted,omitempty"`
}
