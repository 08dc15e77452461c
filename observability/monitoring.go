package observability

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// RecentEvent is one committed change shown on the debug page.
type RecentEvent struct {
	Type      string `json:"type"`
	Topics    string `json:"topics"`
	Timestamp string `json:"timestamp"`
}

// MonitoringStats is the live view rendered by the debug inspector.
type MonitoringStats struct {
	ActiveSubscriptions int64  `json:"active_subscriptions"`
	AggregationPasses   uint64 `json:"aggregation_passes"`
	LookupFailures      uint64 `json:"lookup_failures"`
	MalformedRecords    uint64 `json:"malformed_records"`
	FeedErrors          uint64 `json:"feed_errors"`
	MessagesSent        uint64 `json:"messages_sent"`

	PID        int32   `json:"pid"`
	PIDStatus  string  `json:"pid_status"`
	CpuPercent float64 `json:"cpu_percent"`
	RamBytes   uint64  `json:"ram_bytes"`

	AllocMemMb   uint64        `json:"alloc_mem_mb"`
	NumGC        uint32        `json:"num_gc"`
	Goroutines   int           `json:"goroutines"`
	RecentEvents []RecentEvent `json:"recent_events"`
}

const maxRecentEvents = 20

// MonitoringManager mirrors the prometheus collectors with plain counters so
// the debug page can render them without a scrape. A nil manager is a no-op.
type MonitoringManager struct {
	log *slog.Logger
	mu  sync.RWMutex

	activeSubscriptions int64
	aggregationPasses   uint64
	lookupFailures      uint64
	malformedRecords    uint64
	feedErrors          uint64
	messagesSent        uint64

	process      MonitoringStats
	recentEvents []RecentEvent
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	return &MonitoringManager{
		log:          log,
		recentEvents: make([]RecentEvent, 0, maxRecentEvents),
	}
}

func (mm *MonitoringManager) RecordPass(mode string, d time.Duration) {
	AggregationPasses.WithLabelValues(mode).Inc()
	AggregationDuration.Observe(d.Seconds())
	if mm != nil {
		atomic.AddUint64(&mm.aggregationPasses, 1)
	}
}

func (mm *MonitoringManager) RecordLookupFailure() {
	ProfileLookupFailures.Inc()
	if mm != nil {
		atomic.AddUint64(&mm.lookupFailures, 1)
	}
}

func (mm *MonitoringManager) RecordMalformed(n int) {
	if n == 0 {
		return
	}
	MalformedRecords.Add(float64(n))
	if mm != nil {
		atomic.AddUint64(&mm.malformedRecords, uint64(n))
	}
}

func (mm *MonitoringManager) RecordFeedError() {
	FeedErrors.Inc()
	if mm != nil {
		atomic.AddUint64(&mm.feedErrors, 1)
	}
}

func (mm *MonitoringManager) RecordMessageSent() {
	MessagesSent.Inc()
	if mm != nil {
		atomic.AddUint64(&mm.messagesSent, 1)
	}
}

func (mm *MonitoringManager) SubscriptionOpened() {
	ActiveSubscriptions.Inc()
	if mm != nil {
		atomic.AddInt64(&mm.activeSubscriptions, 1)
	}
}

func (mm *MonitoringManager) SubscriptionClosed() {
	ActiveSubscriptions.Dec()
	if mm != nil {
		atomic.AddInt64(&mm.activeSubscriptions, -1)
	}
}

// RecordChangeEvent counts a committed change and keeps it in the recent list.
func (mm *MonitoringManager) RecordChangeEvent(eventType string, topics string) {
	ChangeEvents.WithLabelValues(eventType).Inc()
	if mm == nil {
		return
	}
	mm.mu.Lock()
	defer mm.mu.Unlock()

	evt := RecentEvent{
		Type:      eventType,
		Topics:    topics,
		Timestamp: time.Now().Format("15:04:05"),
	}
	mm.recentEvents = append([]RecentEvent{evt}, mm.recentEvents...)
	if len(mm.recentEvents) > maxRecentEvents {
		mm.recentEvents = mm.recentEvents[:maxRecentEvents]
	}
}

// UpdateProcess stores the last sample taken by the health worker.
func (mm *MonitoringManager) UpdateProcess(pid int32, status string, cpu float64, rss uint64) {
	ProcessCPU.Set(cpu)
	ProcessRSS.Set(float64(rss))
	if mm == nil {
		return
	}
	mm.mu.Lock()
	defer mm.mu.Unlock()
	mm.process.PID = pid
	mm.process.PIDStatus = status
	mm.process.CpuPercent = cpu
	mm.process.RamBytes = rss
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	if mm == nil {
		return MonitoringStats{}
	}
	mm.mu.RLock()
	stats := mm.process
	stats.RecentEvents = append([]RecentEvent(nil), mm.recentEvents...)
	mm.mu.RUnlock()

	stats.ActiveSubscriptions = atomic.LoadInt64(&mm.activeSubscriptions)
	stats.AggregationPasses = atomic.LoadUint64(&mm.aggregationPasses)
	stats.LookupFailures = atomic.LoadUint64(&mm.lookupFailures)
	stats.MalformedRecords = atomic.LoadUint64(&mm.malformedRecords)
	stats.FeedErrors = atomic.LoadUint64(&mm.feedErrors)
	stats.MessagesSent = atomic.LoadUint64(&mm.messagesSent)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	stats.AllocMemMb = m.Alloc / 1024 / 1024
	stats.NumGC = m.NumGC
	stats.Goroutines = runtime.NumGoroutine()
	return stats
}
