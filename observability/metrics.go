package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ModeFetch     = "fetch"
	ModeSubscribe = "subscribe"
)

var (
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convo_messages_sent_total",
			Help: "Total messages appended to the store",
		},
	)

	AggregationPasses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convo_aggregation_passes_total",
			Help: "Total conversation list recomputations",
		},
		[]string{"mode"}, // "fetch" or "subscribe"
	)

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "convo_aggregation_duration_seconds",
			Help:    "Duration of one aggregation pass, profile lookups included",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	ProfileLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convo_profile_lookup_failures_total",
			Help: "Conversations dropped because the counterpart profile could not be resolved",
		},
	)

	MalformedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convo_malformed_records_total",
			Help: "Message records skipped during aggregation",
		},
	)

	ActiveSubscriptions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "convo_active_subscriptions",
			Help: "Live conversation list subscriptions",
		},
	)

	FeedErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convo_feed_errors_total",
			Help: "Transient feed errors delivered as empty lists",
		},
	)

	ChangeEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convo_change_events_total",
			Help: "Committed changes by type",
		},
		[]string{"type"},
	)

	ProcessRSS = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "convo_process_rss_bytes",
			Help: "Resident memory of the server process",
		},
	)

	ProcessCPU = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "convo_process_cpu_percent",
			Help: "CPU usage of the server process",
		},
	)

	ChannelUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "convo_channel_length",
			Help: "Items waiting in an internal channel",
		},
		[]string{"channel"},
	)

	WorkerRestarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convo_worker_restarts_total",
			Help: "Supervised worker restarts after a panic or an error",
		},
		[]string{"worker"},
	)
)
