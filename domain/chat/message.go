// Package chat contains core concepts of the direct messaging system.
// Messages are immutable except for their read flag.
// No runtime, network, or storage logic should be added here.
package chat

import (
	"convo-lab/errors"
	"crypto/rand"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"
)

// Message is a direct message between exactly two participants.
type Message struct {
	ID           string // ULID, lexicographically sortable by creation time
	SenderID     string
	ReceiverID   string
	Text         string
	At           time.Time
	Participants []string // denormalized {SenderID, ReceiverID}
	IsRead       bool
}

// Index keys embed UnixNano, so times outside of it would break key order.
var (
	minMessageTime = time.Unix(0, 0)
	maxMessageTime = time.Unix(0, math.MaxInt64)
)

// NewMessage builds a message ready to be appended.
// The text is trimmed; an empty result is rejected here and never stored.
func NewMessage(senderID, receiverID, text string, at time.Time) (Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, errors.ErrEmptyMessage
	}
	if senderID == receiverID {
		return Message{}, errors.ErrSelfMessage
	}
	if at.Before(minMessageTime) || at.After(maxMessageTime) {
		return Message{}, fmt.Errorf("%w: %s", errors.ErrInvalidTime, at.Format(time.RFC3339))
	}
	id, err := ulid.New(ulid.Timestamp(at), rand.Reader)
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", errors.ErrInvalidTime, err)
	}
	return Message{
		ID:           id.String(),
		SenderID:     senderID,
		ReceiverID:   receiverID,
		Text:         trimmed,
		At:           at.UTC(),
		Participants: []string{senderID, receiverID},
		IsRead:       false,
	}, nil
}

// WellFormed reports whether the record can take part in aggregation.
// Participants must be exactly the set {SenderID, ReceiverID}.
func (m Message) WellFormed() bool {
	if m.ID == "" || m.SenderID == "" || m.ReceiverID == "" || m.Text == "" {
		return false
	}
	if m.SenderID == m.ReceiverID {
		return false
	}
	participants := lo.Uniq(m.Participants)
	if len(participants) != 2 {
		return false
	}
	return lo.Contains(participants, m.SenderID) && lo.Contains(participants, m.ReceiverID)
}

// Involves reports whether user is the sender or the receiver.
func (m Message) Involves(user string) bool {
	return m.SenderID == user || m.ReceiverID == user
}

// CounterpartOf returns the non-self participant.
func (m Message) CounterpartOf(self string) string {
	if m.SenderID == self {
		return m.ReceiverID
	}
	return m.SenderID
}

// UnreadFor reports whether self still has to read this message.
func (m Message) UnreadFor(self string) bool {
	return m.ReceiverID == self && !m.IsRead
}

// NewerThan orders two messages by timestamp, then by greatest id.
func (m Message) NewerThan(other Message) bool {
	if !m.At.Equal(other.At) {
		return m.At.After(other.At)
	}
	return m.ID > other.ID
}

// MessageSnapshot is one full-state emission of a message feed.
type MessageSnapshot struct {
	Messages []Message
	Err      error
}
