package runtime

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []event.ChangeEvent
}

func (s *recordingSink) Consume(_ context.Context, e event.ChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *recordingSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestRegistry_Subscribe_And_Unsubscribe(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry(slog.Default(), nil)
	topic := event.MessagesTopic("alice")
	sink1 := &recordingSink{}
	sink2 := &recordingSink{}

	// Given no watcher
	req.Nil(registry.SinksFor(topic))

	// When two watchers subscribe the same topic
	unsubscribe1 := registry.Subscribe(topic, sink1)
	unsubscribe2 := registry.Subscribe(topic, sink2)

	// Then both are returned
	req.Len(registry.SinksFor(topic), 2)

	// When one leaves, twice
	unsubscribe1()
	unsubscribe1()
	req.Len(registry.SinksFor(topic), 1)
	req.Contains(registry.SinksFor(topic), sink2)

	// When the last one leaves, the topic is removed
	unsubscribe2()
	req.Nil(registry.SinksFor(topic))
	req.Empty(registry.topics)
}

func TestRegistry_Publish_Reaches_Both_Participants(t *testing.T) {
	req := require.New(t)
	sideEffects := make(chan event.ChangeEvent, 1)
	registry := NewRegistry(slog.Default(), sideEffects)
	alice, bob, clara := &recordingSink{}, &recordingSink{}, &recordingSink{}
	registry.Subscribe(event.MessagesTopic("alice"), alice)
	registry.Subscribe(event.MessagesTopic("bob"), bob)
	registry.Subscribe(event.MessagesTopic("clara"), clara)

	// When alice writes to bob
	evt := event.MessageAppended{Message: chat.Message{SenderID: "alice", ReceiverID: "bob"}}
	registry.Publish(context.Background(), evt)

	// Then both participants are notified synchronously, clara is not
	req.Equal(1, alice.Len())
	req.Equal(1, bob.Len())
	req.Equal(0, clara.Len())

	// And the event is forwarded to side effects
	req.Equal(evt, <-sideEffects)
}

func TestRegistry_Publish_Never_Blocks_On_Full_Side_Effects(t *testing.T) {
	req := require.New(t)
	sideEffects := make(chan event.ChangeEvent)
	registry := NewRegistry(slog.Default(), sideEffects)
	sink := &recordingSink{}
	registry.Subscribe(event.TypingTopic("alice", "bob"), sink)

	// Nobody reads sideEffects
	registry.Publish(context.Background(), event.TypingChanged{State: chat.TypingState{From: "alice", To: "bob"}})

	req.Equal(1, sink.Len())
}

func TestSignalSink_Coalesces(t *testing.T) {
	req := require.New(t)
	s := newSignalSink()

	for i := 0; i < 5; i++ {
		req.NoError(s.Consume(context.Background(), event.MessagesRead{}))
	}

	req.Len(s.c, 1)
}
