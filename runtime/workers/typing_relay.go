package workers

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/event"
	"convo-lab/infrastructure/storage"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// TypingRelay wakes local typing watchers for writes made through Redis,
// whichever server instance made them.
type TypingRelay struct {
	log       *slog.Logger
	client    *redis.Client
	publisher contract.Publisher
}

func NewTypingRelay(log *slog.Logger, client *redis.Client, publisher contract.Publisher) *TypingRelay {
	return &TypingRelay{log: log, client: client, publisher: publisher}
}

func (w *TypingRelay) Run(ctx context.Context) error {
	pubsub := w.client.Subscribe(ctx, storage.TypingChannel)
	defer func() { _ = pubsub.Close() }()

	// Wait for the subscription to be confirmed before relaying
	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("subscribe %s: %w", storage.TypingChannel, err)
	}
	w.log.Info("Typing relay subscribed", "channel", storage.TypingChannel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("%s channel closed", storage.TypingChannel)
			}
			w.handle(ctx, msg.Payload)
		}
	}
}

func (w *TypingRelay) handle(ctx context.Context, payload string) {
	state, err := storage.DecodeTypingPayload(payload)
	if err != nil {
		w.log.Warn("Dropping undecodable typing payload", "error", err)
		return
	}
	w.publisher.Publish(ctx, event.TypingChanged{State: state})
}
