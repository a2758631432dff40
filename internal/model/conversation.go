package model

import "time"

// Conversation is a message channel between exactly two users.
// The partner is always "the other side" relative to the caller.
type Conversation struct {
	ID             int64               `json:"id"`
	Partner        UserRef             `json:"partner"`
	LastMessage    *Message            `json:"lastMessage,omitempty"`
	ContactRequest *ContactRequestRef  `json:"contactRequest,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// ContactRequestRef is the short contact request view embedded in a conversation
type ContactRequestRef struct {
	ID      int64                `json:"id"`
	Status  ContactRequestStatus `json:"status"`
	Message string               `json:"message"`
}

// Message belongs to exactly one conversation and is immutable once
// created. Conversation history is ordered by CreatedAt.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId,omitempty"`
	SenderUserID   int64     `json:"senderUserId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}
