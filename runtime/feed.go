package runtime

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"log/slog"
	"math/rand/v2"
	"time"

	"google.golang.org/grpc/backoff"
)

// feedRetry paces re-reads after a failed read when no change arrives.
var feedRetry = backoff.Config{
	BaseDelay:  100 * time.Millisecond,
	Multiplier: 1.6,
	Jitter:     0.2,
	MaxDelay:   5 * time.Second,
}

// retryDelay returns the wait before re-read number retries+1.
func retryDelay(cfg backoff.Config, retries int) time.Duration {
	delay, maxDelay := float64(cfg.BaseDelay), float64(cfg.MaxDelay)
	for ; delay < maxDelay && retries > 0; retries-- {
		delay *= cfg.Multiplier
	}
	if delay > maxDelay {
		delay = maxDelay
	}
	delay *= 1 + cfg.Jitter*(rand.Float64()*2-1)
	if delay < 0 {
		return 0
	}
	return time.Duration(delay)
}

// retryAfter arms a re-read after a failed read and disarms it after a good one.
type retryAfter struct {
	cfg     backoff.Config
	retries int
}

func (r *retryAfter) next(err error) <-chan time.Time {
	if err == nil {
		r.retries = 0
		return nil
	}
	delay := retryDelay(r.cfg, r.retries)
	r.retries++
	return time.After(delay)
}

// MessageFeed streams full snapshots of the messages a user takes part in.
// Every Watch call owns its own registration and goroutine.
type MessageFeed struct {
	log        *slog.Logger
	repository contract.IMessageRepository
	registry   contract.IRegistry
	retry      backoff.Config
}

func NewMessageFeed(log *slog.Logger, repository contract.IMessageRepository, registry contract.IRegistry) *MessageFeed {
	return &MessageFeed{log: log, repository: repository, registry: registry, retry: feedRetry}
}

// Watch emits the current snapshot, then a fresh one after each change.
// Changes that happen while a snapshot is being read or delivered collapse
// into one re-read. A failed read is retried with backoff until one succeeds
// or a change arrives. The channel is closed once ctx is done.
func (f *MessageFeed) Watch(ctx context.Context, user string) <-chan chat.MessageSnapshot {
	out := make(chan chat.MessageSnapshot)
	signal := newSignalSink()
	// Registered before the first read so no commit can slip in between.
	unsubscribe := f.registry.Subscribe(event.MessagesTopic(user), signal)

	go func() {
		defer close(out)
		defer unsubscribe()
		retry := &retryAfter{cfg: f.retry}

		for {
			messages, err := f.repository.Query(ctx, user)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				f.log.Warn("Message feed read failed", "user_id", user, "error", err)
			}
			select {
			case out <- chat.MessageSnapshot{Messages: messages, Err: err}:
			case <-ctx.Done():
				return
			}
			select {
			case <-signal.c:
			case <-retry.next(err):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// TypingFeed streams the typing record of one directed pair.
type TypingFeed struct {
	log        *slog.Logger
	repository contract.ITypingRepository
	registry   contract.IRegistry
	retry      backoff.Config
}

func NewTypingFeed(log *slog.Logger, repository contract.ITypingRepository, registry contract.IRegistry) *TypingFeed {
	return &TypingFeed{log: log, repository: repository, registry: registry, retry: feedRetry}
}

func (f *TypingFeed) Watch(ctx context.Context, from, to string) <-chan chat.TypingSnapshot {
	out := make(chan chat.TypingSnapshot)
	signal := newSignalSink()
	unsubscribe := f.registry.Subscribe(event.TypingTopic(from, to), signal)

	go func() {
		defer close(out)
		defer unsubscribe()
		retry := &retryAfter{cfg: f.retry}

		for {
			state, found, err := f.repository.Get(ctx, from, to)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				f.log.Debug("Typing feed read failed", "from", from, "to", to, "error", err)
			}
			select {
			case out <- chat.TypingSnapshot{State: state, Found: found, Err: err}:
			case <-ctx.Done():
				return
			}
			select {
			case <-signal.c:
			case <-retry.next(err):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
