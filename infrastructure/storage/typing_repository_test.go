package storage

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTypingRepository_Get_Absent(t *testing.T) {
	req := require.New(t)
	repository := NewTypingRepository(openDB(t), nil)

	_, found, err := repository.Get(context.Background(), "alice", "bob")
	req.NoError(err)
	req.False(found)
}

func TestTypingRepository_Upsert_Overwrites_Directed_Pair(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	publisher := &recordingPublisher{}
	repository := NewTypingRepository(openDB(t), publisher)
	now := time.Now().UTC()

	// Given alice starts then stops typing to bob
	req.NoError(repository.Upsert(ctx, chat.TypingState{From: "alice", To: "bob", IsTyping: true, UpdatedAt: now}))
	req.NoError(repository.Upsert(ctx, chat.TypingState{From: "alice", To: "bob", IsTyping: false, UpdatedAt: now.Add(time.Second)}))

	// Then the last write wins
	state, found, err := repository.Get(ctx, "alice", "bob")
	req.NoError(err)
	req.True(found)
	req.False(state.IsTyping)
	req.True(now.Add(time.Second).Equal(state.UpdatedAt))

	// And the reverse direction is untouched
	_, found, err = repository.Get(ctx, "bob", "alice")
	req.NoError(err)
	req.False(found)

	// And every write was announced on the pair topic
	req.Len(publisher.events, 2)
	req.Equal([]string{event.TypingTopic("alice", "bob")}, publisher.events[1].Topics())
}
