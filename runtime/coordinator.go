package runtime

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
)

// Coordinator owns the read flags and the typing presence layered on top of
// conversations.
type Coordinator struct {
	log        *slog.Logger
	messages   contract.IMessageRepository
	typing     contract.ITypingRepository
	typingFeed contract.ITypingFeed
	staleAfter time.Duration
	now        func() time.Time
}

// NewCoordinator builds a coordinator. A zero staleAfter disables typing expiry.
func NewCoordinator(
	log *slog.Logger,
	messages contract.IMessageRepository,
	typing contract.ITypingRepository,
	typingFeed contract.ITypingFeed,
	staleAfter time.Duration,
) *Coordinator {
	return &Coordinator{
		log:        log,
		messages:   messages,
		typing:     typing,
		typingFeed: typingFeed,
		staleAfter: staleAfter,
		now:        time.Now,
	}
}

// MarkRead flips every unread message sent by peer to self in one atomic batch.
// Nothing to flip is a success.
func (c *Coordinator) MarkRead(ctx context.Context, peer, self string) error {
	messages, err := c.messages.Query(ctx, self)
	if err != nil {
		return fmt.Errorf("query unread messages from %s: %w", peer, err)
	}
	ids := lo.FilterMap(messages, func(m chat.Message, _ int) (string, bool) {
		return m.ID, m.SenderID == peer && m.ReceiverID == self && !m.IsRead
	})
	if len(ids) == 0 {
		return nil
	}
	if err := c.messages.BatchUpdateRead(ctx, ids, true); err != nil {
		return err
	}
	c.log.Debug("Messages marked as read", "user_id", self, "counterpart_id", peer, "count", len(ids))
	return nil
}

// SetTyping overwrites the (self, peer) record with the current time.
func (c *Coordinator) SetTyping(ctx context.Context, self, peer string, isTyping bool) error {
	return c.typing.Upsert(ctx, chat.TypingState{
		From:      self,
		To:        peer,
		IsTyping:  isTyping,
		UpdatedAt: c.now().UTC(),
	})
}

// ObserveTyping streams whether peer is typing to self.
// An absent record and a failed read both read as false. When expiry is
// enabled a true flag turns false once stale, even without a new write.
func (c *Coordinator) ObserveTyping(ctx context.Context, peer, self string) <-chan bool {
	out := make(chan bool)

	go func() {
		defer close(out)
		snapshots := c.typingFeed.Watch(ctx, peer, self)

		var timer *time.Timer
		var expiry <-chan time.Time
		stopTimer := func() {
			if timer != nil {
				timer.Stop()
				timer = nil
				expiry = nil
			}
		}
		defer stopTimer()

		send := func(typing bool) bool {
			select {
			case out <- typing:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case snapshot, ok := <-snapshots:
				if !ok {
					return
				}
				stopTimer()
				typing := c.isTyping(snapshot)
				if typing {
					if expiresAt, ok := snapshot.State.ExpiresAt(c.staleAfter); ok {
						timer = time.NewTimer(expiresAt.Sub(c.now()))
						expiry = timer.C
					}
				}
				if !send(typing) {
					return
				}
			case <-expiry:
				timer = nil
				expiry = nil
				if !send(false) {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (c *Coordinator) isTyping(snapshot chat.TypingSnapshot) bool {
	if snapshot.Err != nil || !snapshot.Found {
		return false
	}
	return snapshot.State.ActiveAt(c.now(), c.staleAfter)
}
