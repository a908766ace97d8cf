package models

import "time"

// Conversation is a messaging thread between a traveler and a partner or
// the concierge.
type Conversation struct {
	ConversationID string    `json:"conversationid" bson:"conversationid,omitempty"`
	Participants   []string  `json:"participants" bson:"participants"`
	Subject        string    `json:"subject,omitempty" bson:"subject,omitempty"`
	LastMessage    string    `json:"last_message,omitempty" bson:"last_message,omitempty"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	Deleted        bool      `json:"-" bson:"deleted,omitempty"`
}

// Message is one message inside a conversation.
type Message struct {
	MessageID      string    `json:"messageid" bson:"messageid,omitempty"`
	ConversationID string    `json:"conversationid" bson:"conversationid"`
	SenderID       string    `json:"senderid" bson:"senderid"`
	Content        string    `json:"content" bson:"content"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	ReadBy         []string  `json:"read_by,omitempty" bson:"read_by,omitempty"`
}

// Notification is an event pushed to connected clients (draft pricing
// ready, new message, quote update).
type Notification struct {
	Type      string `json:"type" bson:"type"`
	UserID    string `json:"userId,omitempty" bson:"userId,omitempty"`
	EntityID  string `json:"entityId,omitempty" bson:"entityId,omitempty"`
	Message   string `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}
