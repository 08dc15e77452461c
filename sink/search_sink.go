package sink

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/event"
	"log/slog"
)

// SearchSink keeps the full-text index in step with appended messages.
type SearchSink struct {
	index contract.IMessageIndex
	log   *slog.Logger
}

func NewSearchSink(index contract.IMessageIndex, log *slog.Logger) SearchSink {
	return SearchSink{index: index, log: log}
}

func (s SearchSink) Consume(_ context.Context, e event.ChangeEvent) error {
	switch evt := e.(type) {
	case event.MessageAppended:
		return s.index.Index(evt.Message)
	default:
		return nil
	}
}
