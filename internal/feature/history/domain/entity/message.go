// Package entity defines the domain entities for the history feature.
package entity

import "time"

// Message roles stored in chat history.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Message is a single chat-history entry, keyed by the client's session ID.
// History is context for the tutoring frontend; the LLM call itself lives
// outside this service.
type Message struct {
	// ID is the auto-incremented identifier of the entry.
	ID uint `gorm:"primaryKey"`

	// SessionID groups messages belonging to one conversation.
	SessionID string `gorm:"index;size:64;not null"`

	// Role is who produced the message: "user" or "bot".
	Role string `gorm:"size:16;not null"`

	// Content is the message text.
	Content string `gorm:"type:text;not null"`

	// CreatedAt is the timestamp when the message was stored.
	CreatedAt time.Time
}
