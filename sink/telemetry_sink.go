package sink

import (
	"context"
	"convo-lab/domain/event"
	"convo-lab/observability"
	"strings"
)

// TelemetrySink counts committed changes per type.
type TelemetrySink struct {
	monitoring *observability.MonitoringManager
}

func NewTelemetrySink(monitoring *observability.MonitoringManager) TelemetrySink {
	return TelemetrySink{monitoring: monitoring}
}

func (t TelemetrySink) Consume(_ context.Context, e event.ChangeEvent) error {
	if _, ok := e.(event.MessageAppended); ok {
		t.monitoring.RecordMessageSent()
	}
	t.monitoring.RecordChangeEvent(string(e.Type()), strings.Join(e.Topics(), ","))
	return nil
}
