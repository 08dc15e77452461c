package storage

import (
	"context"
	"convo-lab/domain/chat"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Runs against a live server only: REDIS_URL=redis://localhost:6379/15
func redisRepository(t *testing.T) *RedisTypingRepository {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	client, err := NewRedisClient(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisTypingRepository(client)
}

func TestRedisTypingRepository_Upsert_Publishes_And_Stores(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := redisRepository(t)
	from, to := uuid.NewString(), uuid.NewString()

	sub := repository.client.Subscribe(ctx, TypingChannel)
	defer func() { _ = sub.Close() }()
	_, err := sub.Receive(ctx)
	req.NoError(err)

	// Given an absent record
	_, found, err := repository.Get(ctx, from, to)
	req.NoError(err)
	req.False(found)

	// When the sender starts typing
	state := chat.TypingState{From: from, To: to, IsTyping: true, UpdatedAt: time.Now().UTC()}
	req.NoError(repository.Upsert(ctx, state))

	// Then the record is readable
	stored, found, err := repository.Get(ctx, from, to)
	req.NoError(err)
	req.True(found)
	req.True(stored.IsTyping)
	req.True(state.UpdatedAt.Equal(stored.UpdatedAt))

	// And the write is announced to every instance
	select {
	case msg := <-sub.Channel():
		decoded, err := DecodeTypingPayload(msg.Payload)
		req.NoError(err)
		req.Equal(from, decoded.From)
	case <-time.After(2 * time.Second):
		req.Fail("no typing payload published")
	}
}
