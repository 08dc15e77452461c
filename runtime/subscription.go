package runtime

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/observability"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type subscribeOptions struct {
	diagnostics func(error)
}

type SubscribeOption func(*subscribeOptions)

// WithDiagnostics receives the errors a subscription otherwise hides from its
// observer: feed failures delivered as empty lists and dropped counterparts.
// It is called from the subscription goroutine.
func WithDiagnostics(fn func(error)) SubscribeOption {
	return func(o *subscribeOptions) {
		o.diagnostics = fn
	}
}

// SubscriptionManager keeps conversation lists live.
type SubscriptionManager struct {
	log        *slog.Logger
	repository contract.IMessageRepository
	feed       contract.IMessageFeed
	aggregator *Aggregator
	monitoring *observability.MonitoringManager
}

func NewSubscriptionManager(
	log *slog.Logger,
	repository contract.IMessageRepository,
	feed contract.IMessageFeed,
	aggregator *Aggregator,
	monitoring *observability.MonitoringManager,
) *SubscriptionManager {
	return &SubscriptionManager{
		log:        log,
		repository: repository,
		feed:       feed,
		aggregator: aggregator,
		monitoring: monitoring,
	}
}

// Fetch computes the conversation list of self once.
// Unlike a subscription, a store failure is returned to the caller.
func (m *SubscriptionManager) Fetch(ctx context.Context, self string) ([]chat.Conversation, error) {
	start := time.Now()
	messages, err := m.repository.Query(ctx, self)
	if err != nil {
		return nil, fmt.Errorf("query messages of %s: %w", self, err)
	}
	conversations, _, err := m.aggregator.Aggregate(ctx, self, messages)
	if err != nil {
		return nil, err
	}
	m.monitoring.RecordPass(observability.ModeFetch, time.Since(start))
	return conversations, nil
}

// Subscribe calls observer with the full conversation list of self, first
// with the current state, then after every change to any message self takes
// part in. Each call opens its own feed.
//
// The subscription ends when the returned cancel is called or ctx is done.
// Cancel is idempotent and may be called from inside observer. Once it has
// returned, observer is not invoked again.
func (m *SubscriptionManager) Subscribe(ctx context.Context, self string, observer contract.ConversationObserver, opts ...SubscribeOption) func() {
	options := subscribeOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	id := uuid.NewString()
	subCtx, stop := context.WithCancel(ctx)
	snapshots := m.feed.Watch(subCtx, self)
	m.monitoring.SubscriptionOpened()
	m.log.Debug("Subscription opened", "subscription_id", id, "user_id", self)

	var (
		delivery   sync.Mutex
		cancelled  atomic.Bool
		inCallback atomic.Bool
		closeOnce  sync.Once
	)

	closeSubscription := func() {
		closeOnce.Do(func() {
			stop()
			m.monitoring.SubscriptionClosed()
			m.log.Debug("Subscription closed", "subscription_id", id, "user_id", self)
		})
	}

	deliver := func(conversations []chat.Conversation) {
		delivery.Lock()
		defer delivery.Unlock()
		if cancelled.Load() {
			return
		}
		inCallback.Store(true)
		defer inCallback.Store(false)
		observer(conversations)
	}

	diagnose := func(err error) {
		if options.diagnostics != nil && !cancelled.Load() {
			options.diagnostics(err)
		}
	}

	go func() {
		defer closeSubscription()

		for snapshot := range snapshots {
			if snapshot.Err != nil {
				m.monitoring.RecordFeedError()
				diagnose(snapshot.Err)
				deliver([]chat.Conversation{})
				continue
			}

			start := time.Now()
			conversations, failures, err := m.aggregator.Aggregate(subCtx, self, snapshot.Messages)
			if err != nil {
				// Cancelled mid-pass: the partial result is discarded.
				continue
			}
			m.monitoring.RecordPass(observability.ModeSubscribe, time.Since(start))
			for _, f := range failures {
				diagnose(fmt.Errorf("counterpart %s: %w", f.CounterpartID, f.Err))
			}
			deliver(conversations)
		}
	}()

	return func() {
		cancelled.Store(true)
		closeSubscription()
		// From another goroutine, wait for an in-flight delivery to finish.
		// From inside observer the lock is already held by this very call chain.
		if !inCallback.Load() {
			delivery.Lock()
			delivery.Unlock()
		}
	}
}
