package workers

import (
	"context"
	"convo-lab/observability"
	"log/slog"
	"reflect"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelCapacityWorker samples the fill level of internal channels.
// Reading len and cap never blocks the producers.
type ChannelCapacityWorker struct {
	log                  *slog.Logger
	channels             []NamedChannel
	interval             time.Duration
	lowCapacityThreshold int
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	interval time.Duration, lowCapacityThreshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:                  log,
		channels:             channels,
		interval:             interval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sample()
		}
	}
}

func (w *ChannelCapacityWorker) sample() {
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		capacity, length := v.Cap(), v.Len()
		observability.ChannelUsage.WithLabelValues(nc.Name).Set(float64(length))
		if capacity <= 0 {
			// unbuffered
			continue
		}
		if left := capacity - length; left <= w.lowCapacityThreshold {
			w.log.Warn("Channel close to saturation", "name", nc.Name, "length", length, "capacity", capacity)
		}
	}
}
