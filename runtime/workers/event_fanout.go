package workers

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/event"
	"log/slog"
	"sync"
	"time"
)

// EventFanout hands committed changes to the permanent side-effect sinks
// (search index, telemetry).
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. Watchers never depend on it: the
// registry wakes them before the event reaches this worker.
type EventFanout struct {
	log         *slog.Logger
	sideEffects <-chan event.ChangeEvent
	sinks       []contract.EventSink
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, sideEffects <-chan event.ChangeEvent, sinkTimeout time.Duration, sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, sideEffects: sideEffects, sinkTimeout: sinkTimeout, sinks: sinks}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.sideEffects:
			if !ok {
				w.log.Debug("Side effect channel closed")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout runs every sink concurrently, each bounded by the sink timeout,
// and returns once all of them are done.
func (w *EventFanout) Fanout(ctx context.Context, evt event.ChangeEvent) {
	var wg sync.WaitGroup
	for _, sink := range w.sinks {
		wg.Add(1)
		go func(sink contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := sink.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed", "type", evt.Type(), "error", err)
			}
		}(sink)
	}
	wg.Wait()
}
