package runtime

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/observability"
	"log/slog"
	"sort"
	"sync"
)

// Aggregator turns a user's raw messages into one row per counterpart.
// The same pass serves one-shot fetches and every live recomputation.
type Aggregator struct {
	log        *slog.Logger
	profiles   contract.IProfileLookup
	monitoring *observability.MonitoringManager
}

func NewAggregator(log *slog.Logger, profiles contract.IProfileLookup, monitoring *observability.MonitoringManager) *Aggregator {
	return &Aggregator{log: log, profiles: profiles, monitoring: monitoring}
}

// LookupFailure reports a counterpart dropped from a pass.
type LookupFailure struct {
	CounterpartID string
	Err           error
}

// Aggregate partitions messages by counterpart, keeps the most recent message
// of each partition, resolves every counterpart profile concurrently and
// returns the rows sorted by last message time, newest first.
//
// Malformed records and counterparts whose lookup fails are left out without
// failing the pass. The only error is ctx ending before the pass completes,
// in which case the partial result must be discarded.
func (a *Aggregator) Aggregate(ctx context.Context, self string, messages []chat.Message) ([]chat.Conversation, []LookupFailure, error) {
	latest := a.latestByCounterpart(self, messages)
	if len(latest) == 0 {
		return []chat.Conversation{}, nil, ctx.Err()
	}

	type result struct {
		conversation chat.Conversation
		failure      *LookupFailure
	}
	resChan := make(chan result, len(latest))
	var wg sync.WaitGroup

	for counterpartID, msg := range latest {
		wg.Add(1)
		go func(counterpartID string, msg chat.Message) {
			defer wg.Done()

			p, err := a.profiles.Fetch(ctx, counterpartID)
			if err != nil {
				resChan <- result{failure: &LookupFailure{CounterpartID: counterpartID, Err: err}}
				return
			}
			resChan <- result{conversation: chat.NewConversation(self, msg, withID(p, counterpartID))}
		}(counterpartID, msg)
	}

	// Goroutine to close channel once terminated
	go func() {
		wg.Wait()
		close(resChan)
	}()

	conversations := make([]chat.Conversation, 0, len(latest))
	var failures []LookupFailure
	for res := range resChan {
		if res.failure != nil {
			failures = append(failures, *res.failure)
			continue
		}
		conversations = append(conversations, res.conversation)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	for _, f := range failures {
		a.monitoring.RecordLookupFailure()
		a.log.Debug("Conversation dropped, profile lookup failed",
			"user_id", self, "counterpart_id", f.CounterpartID, "error", f.Err)
	}

	sort.Slice(conversations, func(i, j int) bool {
		ci, cj := conversations[i], conversations[j]
		if !ci.LastMessageAt.Equal(cj.LastMessageAt) {
			return ci.LastMessageAt.After(cj.LastMessageAt)
		}
		return ci.CounterpartID < cj.CounterpartID
	})
	return conversations, failures, nil
}

// latestByCounterpart keeps, for each counterpart, the newest well-formed
// message involving self.
func (a *Aggregator) latestByCounterpart(self string, messages []chat.Message) map[string]chat.Message {
	latest := make(map[string]chat.Message)
	malformed := 0
	for _, msg := range messages {
		if !msg.WellFormed() || !msg.Involves(self) {
			malformed++
			continue
		}
		counterpartID := msg.CounterpartOf(self)
		current, ok := latest[counterpartID]
		if !ok || msg.NewerThan(current) {
			latest[counterpartID] = msg
		}
	}
	if malformed > 0 {
		a.monitoring.RecordMalformed(malformed)
		a.log.Debug("Skipped malformed messages", "user_id", self, "count", malformed)
	}
	return latest
}

// withID makes sure the row always carries the counterpart identifier even if
// the stored profile was saved without it.
func withID(p profile.Profile, userID string) profile.Profile {
	if p.UserID == "" {
		p.UserID = userID
	}
	return p
}
