package storage

import (
	"context"
	"convo-lab/domain/chat"
	stderrors "errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// TypingChannel carries every typing write so that all server instances can
// wake their local watchers.
const TypingChannel = "typing-changes"

// RedisTypingRepository shares typing presence between server instances.
// It does not notify the local registry itself: the relay worker receives
// this instance's own writes from TypingChannel like everybody else's.
type RedisTypingRepository struct {
	client *redis.Client
}

func NewRedisTypingRepository(client *redis.Client) *RedisTypingRepository {
	return &RedisTypingRepository{client: client}
}

// NewRedisClient parses url and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return client, nil
}

func (r *RedisTypingRepository) Upsert(ctx context.Context, state chat.TypingState) error {
	payload := EncodeTypingPayload(state)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, typingKey(state.From, state.To), payload, 0)
		pipe.Publish(ctx, TypingChannel, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert typing %s->%s: %w", state.From, state.To, err)
	}
	return nil
}

func (r *RedisTypingRepository) Get(ctx context.Context, from, to string) (chat.TypingState, bool, error) {
	raw, err := r.client.Get(ctx, typingKey(from, to)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return chat.TypingState{}, false, nil
	}
	if err != nil {
		return chat.TypingState{}, false, err
	}
	state, err := decodeTyping(raw)
	if err != nil {
		return chat.TypingState{}, false, err
	}
	return state, true, nil
}

// DecodeTypingPayload reads a message received on TypingChannel.
func DecodeTypingPayload(payload string) (chat.TypingState, error) {
	return decodeTyping([]byte(payload))
}

// EncodeTypingPayload is the message published on TypingChannel.
func EncodeTypingPayload(state chat.TypingState) []byte {
	return encodeTyping(state)
}
