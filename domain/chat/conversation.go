package chat

import (
	"convo-lab/domain/profile"
	"time"
)

// Conversation is the derived "latest message" row for one counterpart.
// It is recomputed on every aggregation pass and never persisted.
type Conversation struct {
	CounterpartID   string
	Counterpart     profile.Profile
	LastMessageID   string
	LastMessageText string
	LastMessageAt   time.Time
	HasUnread       bool
}

// NewConversation derives the row for self from the most recent message
// exchanged with the counterpart.
func NewConversation(self string, latest Message, counterpart profile.Profile) Conversation {
	return Conversation{
		CounterpartID:   latest.CounterpartOf(self),
		Counterpart:     counterpart,
		LastMessageID:   latest.ID,
		LastMessageText: latest.Text,
		LastMessageAt:   latest.At,
		HasUnread:       latest.UnreadFor(self),
	}
}
