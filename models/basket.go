package models

import "time"

// BasketItem is one product in a user's trip basket. Category mirrors the
// planner categories (Lodging, Transport, Activity, Dining, Flights).
type BasketItem struct {
	UserID    string    `json:"userId" bson:"userId"`
	ItemID    string    `json:"itemId" bson:"itemId"`
	Item      string    `json:"item" bson:"item"`
	Category  string    `json:"category" bson:"category"`
	City      string    `json:"city,omitempty" bson:"city,omitempty"`
	Price     float64   `json:"price" bson:"price"`
	Currency  string    `json:"currency,omitempty" bson:"currency,omitempty"`
	Quantity  int       `json:"quantity" bson:"quantity"`
	AddedAt   time.Time `json:"addedAt" bson:"addedAt"`
	UpdatedAt time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
