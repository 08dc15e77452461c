package runtime

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/infrastructure/storage"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

// harness wires the real badger repositories to one registry.
type harness struct {
	log      *slog.Logger
	registry *Registry
	messages *storage.MessageRepository
	profiles *storage.ProfileRepository
	typing   *storage.TypingRepository
}

func newHarness(t *testing.T) *harness {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := NewRegistry(log, nil)
	return &harness{
		log:      log,
		registry: registry,
		messages: storage.NewMessageRepository(db, log, registry, nil),
		profiles: storage.NewProfileRepository(db, log),
		typing:   storage.NewTypingRepository(db, registry),
	}
}

func (h *harness) saveProfiles(t *testing.T, ids ...string) {
	for _, id := range ids {
		require.NoError(t, h.profiles.Save(context.Background(), profile.Profile{UserID: id, Name: id}))
	}
}

func (h *harness) send(t *testing.T, from, to, text string, at time.Time) chat.Message {
	msg, err := chat.NewMessage(from, to, text, at)
	require.NoError(t, err)
	require.NoError(t, h.messages.Append(context.Background(), msg))
	return msg
}

func (h *harness) subscriptions() *SubscriptionManager {
	aggregator := NewAggregator(h.log, h.profiles, nil)
	return NewSubscriptionManager(h.log, h.messages, NewMessageFeed(h.log, h.messages, h.registry), aggregator, nil)
}

func receive[T any](t *testing.T, c <-chan T) T {
	t.Helper()
	select {
	case v := <-c:
		return v
	case <-time.After(waitFor):
		require.FailNow(t, "nothing received in time")
	}
	var zero T
	return zero
}

func counterparts(conversations []chat.Conversation) []string {
	ids := make([]string, 0, len(conversations))
	for _, c := range conversations {
		ids = append(ids, c.CounterpartID)
	}
	return ids
}
