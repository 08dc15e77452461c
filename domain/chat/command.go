package chat

import (
	"convo-lab/errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Identifiers end up inside storage keys, so the key separator is forbidden
// in every *ID field below.

// SendMessageCommand leaves Text to NewMessage, which trims it first.
type SendMessageCommand struct {
	SenderID   string `validate:"required,excludes=:"`
	ReceiverID string `validate:"required,excludes=:"`
	Text       string
	CreatedAt  time.Time
}

type MarkReadCommand struct {
	PeerID string `validate:"required,excludes=:"`
	SelfID string `validate:"required,excludes=:"`
}

type SetTypingCommand struct {
	SelfID   string `validate:"required,excludes=:"`
	PeerID   string `validate:"required,excludes=:"`
	IsTyping bool
}

type GetThreadCommand struct {
	SelfID string `validate:"required,excludes=:"`
	PeerID string `validate:"required,excludes=:"`
	Cursor *string
}

type ObserveTypingCommand struct {
	SelfID string `validate:"required,excludes=:"`
	PeerID string `validate:"required,excludes=:"`
}

type SearchCommand struct {
	SelfID string `validate:"required,excludes=:"`
	Query  string `validate:"required"`
	Limit  int    `validate:"gte=0,lte=100"`
}

// Validate checks a command struct against its tags.
func Validate(cmd any) error {
	if err := validate.Struct(cmd); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidCommand, err)
	}
	return nil
}
