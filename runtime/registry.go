package runtime

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/event"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Registry maps change topics to the sinks watching them.
//
// Publish is called by repositories right after a commit. Topic sinks are
// poked synchronously so a watcher registered before its initial read can
// never miss a write; the event is then handed to the side-effect channel
// consumed by the fanout worker.
type Registry struct {
	mu          sync.RWMutex
	log         *slog.Logger
	topics      map[string]map[string]contract.EventSink // topic -> watcher id -> sink
	sideEffects chan<- event.ChangeEvent
}

func NewRegistry(log *slog.Logger, sideEffects chan<- event.ChangeEvent) *Registry {
	return &Registry{
		log:         log,
		topics:      make(map[string]map[string]contract.EventSink),
		sideEffects: sideEffects,
	}
}

// Subscribe registers sink on topic until the returned function is called.
// The returned function is safe to call more than once.
func (r *Registry) Subscribe(topic string, sink contract.EventSink) func() {
	id := uuid.NewString()

	r.mu.Lock()
	if _, ok := r.topics[topic]; !ok {
		r.topics[topic] = make(map[string]contract.EventSink)
	}
	r.topics[topic][id] = sink
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if watchers, ok := r.topics[topic]; ok {
			delete(watchers, id)
			// No empty sets left behind once the last watcher is gone
			if len(watchers) == 0 {
				delete(r.topics, topic)
			}
		}
	}
}

// SinksFor returns the sinks currently watching topic, nil if none.
func (r *Registry) SinksFor(topic string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	watchers, ok := r.topics[topic]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(watchers))
	for _, sink := range watchers {
		sinks = append(sinks, sink)
	}
	return sinks
}

func (r *Registry) Publish(ctx context.Context, e event.ChangeEvent) {
	for _, topic := range e.Topics() {
		for _, sink := range r.SinksFor(topic) {
			if err := sink.Consume(ctx, e); err != nil {
				r.log.Debug("Watcher refused change", "topic", topic, "error", err)
			}
		}
	}

	if r.sideEffects == nil {
		return
	}
	select {
	case r.sideEffects <- e:
	default:
		r.log.Debug("Side effect channel full, change event lost", "type", e.Type())
	}
}

// signalSink turns change events into wake-up signals. Signals coalesce:
// any number of changes between two reads produce a single wake-up.
type signalSink struct {
	c chan struct{}
}

func newSignalSink() *signalSink {
	return &signalSink{c: make(chan struct{}, 1)}
}

func (s *signalSink) Consume(_ context.Context, _ event.ChangeEvent) error {
	select {
	case s.c <- struct{}{}:
	default:
	}
	return nil
}
