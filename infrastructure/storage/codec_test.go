package storage

import (
	"convo-lab/domain/chat"
	"convo-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDecodeMessage_Truncated(t *testing.T) {
	req := require.New(t)
	msg, err := chat.NewMessage("alice", "bob", "hello", time.Now())
	req.NoError(err)
	raw := encodeMessage(msg)

	_, err = decodeMessage(raw[:len(raw)-3])
	req.ErrorIs(err, errors.ErrMalformedRecord)
}

func TestDecodeMessage_Missing_Fields_Is_Not_Well_Formed(t *testing.T) {
	req := require.New(t)

	// A record without participants decodes but cannot be aggregated
	raw := encodeMessage(chat.Message{ID: "1", SenderID: "alice", ReceiverID: "bob", Text: "hi", At: time.Now()})
	msg, err := decodeMessage(raw)
	req.NoError(err)
	req.False(msg.WellFormed())
}

func TestDecodeTyping_Keeps_Read_Flag_False(t *testing.T) {
	req := require.New(t)
	now := time.Now().UTC()

	state, err := decodeTyping(encodeTyping(chat.TypingState{From: "alice", To: "bob", UpdatedAt: now}))
	req.NoError(err)
	req.False(state.IsTyping)
	req.True(now.Equal(state.UpdatedAt))
}
