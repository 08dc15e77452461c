package chat

import (
	"convo-lab/domain/profile"
	"convo-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	req := require.New(t)
	at := time.Now()

	msg, err := NewMessage("alice", "bob", "  hello  ", at)
	req.NoError(err)
	req.Equal("hello", msg.Text)
	req.Equal([]string{"alice", "bob"}, msg.Participants)
	req.False(msg.IsRead)
	req.NotEmpty(msg.ID)
	req.True(msg.WellFormed())

	_, err = NewMessage("alice", "bob", "   ", at)
	req.ErrorIs(err, errors.ErrEmptyMessage)

	_, err = NewMessage("alice", "alice", "hi me", at)
	req.ErrorIs(err, errors.ErrSelfMessage)
}

func TestNewMessage_Time_Out_Of_Range(t *testing.T) {
	req := require.New(t)

	// Before the epoch the index keys would sort first
	_, err := NewMessage("alice", "bob", "hello", time.Date(1969, 12, 31, 23, 59, 0, 0, time.UTC))
	req.ErrorIs(err, errors.ErrInvalidTime)

	// Past the nanosecond range
	_, err = NewMessage("alice", "bob", "hello", time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC))
	req.ErrorIs(err, errors.ErrInvalidTime)

	// The epoch itself is fine
	msg, err := NewMessage("alice", "bob", "hello", time.Unix(0, 0))
	req.NoError(err)
	req.NotEmpty(msg.ID)
}

func TestMessage_WellFormed(t *testing.T) {
	base := Message{ID: "1", SenderID: "alice", ReceiverID: "bob", Text: "hi", Participants: []string{"bob", "alice"}}

	tests := []struct {
		name     string
		mutate   func(m Message) Message
		expected bool
	}{
		{name: "Participants in any order", mutate: func(m Message) Message { return m }, expected: true},
		{name: "Missing participant", mutate: func(m Message) Message { m.Participants = []string{"alice"}; return m }, expected: false},
		{name: "Foreign participant", mutate: func(m Message) Message { m.Participants = []string{"alice", "clara"}; return m }, expected: false},
		{name: "Extra participant", mutate: func(m Message) Message { m.Participants = []string{"alice", "bob", "clara"}; return m }, expected: false},
		{name: "Self addressed", mutate: func(m Message) Message {
			m.ReceiverID = "alice"
			m.Participants = []string{"alice", "alice"}
			return m
		}, expected: false},
		{name: "Empty text", mutate: func(m Message) Message { m.Text = ""; return m }, expected: false},
		{name: "Missing id", mutate: func(m Message) Message { m.ID = ""; return m }, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.mutate(base)
			require.Equal(t, tt.expected, msg.WellFormed())
		})
	}
}

func TestMessage_NewerThan_Tie_Break(t *testing.T) {
	req := require.New(t)
	at := time.Now()
	a := Message{ID: "01A", At: at}
	b := Message{ID: "01B", At: at}
	later := Message{ID: "00Z", At: at.Add(time.Nanosecond)}

	// Equal timestamps: the greatest id wins, regardless of argument order
	req.True(b.NewerThan(a))
	req.False(a.NewerThan(b))

	// Otherwise the timestamp decides
	req.True(later.NewerThan(b))
}

func TestConversation_Unread_Only_For_Receiver(t *testing.T) {
	req := require.New(t)
	msg := Message{ID: "1", SenderID: "alice", ReceiverID: "bob", Text: "hi", IsRead: false}

	req.True(NewConversation("bob", msg, profileOf("alice")).HasUnread)
	req.False(NewConversation("alice", msg, profileOf("bob")).HasUnread)
	req.Equal("alice", NewConversation("bob", msg, profileOf("alice")).CounterpartID)
}

func TestTypingState_ActiveAt(t *testing.T) {
	req := require.New(t)
	now := time.Now()
	state := TypingState{From: "alice", To: "bob", IsTyping: true, UpdatedAt: now}

	req.True(state.ActiveAt(now.Add(time.Hour), 0))
	req.True(state.ActiveAt(now.Add(time.Second), 10*time.Second))
	req.False(state.ActiveAt(now.Add(10*time.Second), 10*time.Second))

	expiresAt, ok := state.ExpiresAt(10 * time.Second)
	req.True(ok)
	req.Equal(now.Add(10*time.Second), expiresAt)

	_, ok = TypingState{IsTyping: false}.ExpiresAt(time.Second)
	req.False(ok)
}

func TestValidate(t *testing.T) {
	req := require.New(t)

	req.NoError(Validate(MarkReadCommand{PeerID: "alice", SelfID: "bob"}))
	req.ErrorIs(Validate(MarkReadCommand{PeerID: "", SelfID: "bob"}), errors.ErrInvalidCommand)
	req.ErrorIs(Validate(SetTypingCommand{SelfID: "a:b", PeerID: "bob"}), errors.ErrInvalidCommand)
	req.ErrorIs(Validate(SearchCommand{SelfID: "bob", Query: "x", Limit: 1000}), errors.ErrInvalidCommand)
}

func profileOf(id string) profile.Profile {
	return profile.Profile{UserID: id, Name: id}
}
