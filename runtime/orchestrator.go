// Package runtime handles change propagation, live feeds and the conversation
// aggregation passes built on them.
// It orchestrates the system without containing business rules.
package runtime

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"convo-lab/domain/profile"
	"convo-lab/observability"
	"convo-lab/runtime/workers"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const defaultSearchLimit = 20

type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	sideEffects    chan event.ChangeEvent
	messages       contract.IMessageRepository
	profiles       contract.IProfileRepository
	index          contract.IMessageIndex
	moderator      contract.IModerator
	subscriptions  *SubscriptionManager
	coordinator    *Coordinator
	monitoring     *observability.MonitoringManager
	permanentSinks []contract.EventSink
	extraWorkers   []contract.Worker
	sinkTimeout    time.Duration
	now            func() time.Time
}

// Storage groups the collaborators the orchestrator reads and writes through.
// Index and Moderator are optional.
type Storage struct {
	Messages  contract.IMessageRepository
	Profiles  contract.IProfileRepository
	Typing    contract.ITypingRepository
	Index     contract.IMessageIndex
	Moderator contract.IModerator
}

// NewOrchestrator wires the feeds, the aggregator, the subscription manager and
// the coordinator on top of storage. The registry must be the publisher the
// repositories were built with, and sideEffects the channel it forwards to.
func NewOrchestrator(
	log *slog.Logger,
	supervisor contract.ISupervisor,
	registry contract.IRegistry,
	sideEffects chan event.ChangeEvent,
	storage Storage,
	monitoring *observability.MonitoringManager,
	typingStaleAfter time.Duration,
	sinkTimeout time.Duration,
) *Orchestrator {
	messageFeed := NewMessageFeed(log, storage.Messages, registry)
	typingFeed := NewTypingFeed(log, storage.Typing, registry)
	aggregator := NewAggregator(log, storage.Profiles, monitoring)

	return &Orchestrator{
		log:           log,
		supervisor:    supervisor,
		registry:      registry,
		sideEffects:   sideEffects,
		messages:      storage.Messages,
		profiles:      storage.Profiles,
		index:         storage.Index,
		moderator:     storage.Moderator,
		subscriptions: NewSubscriptionManager(log, storage.Messages, messageFeed, aggregator, monitoring),
		coordinator:   NewCoordinator(log, storage.Messages, storage.Typing, typingFeed, typingStaleAfter),
		monitoring:    monitoring,
		sinkTimeout:   sinkTimeout,
		now:           time.Now,
	}
}

// AddSinks registers side-effect sinks fed by the fanout worker.
func (o *Orchestrator) AddSinks(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// AddWorkers registers extra workers supervised alongside the fanout.
func (o *Orchestrator) AddWorkers(w ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extraWorkers = append(o.extraWorkers, w...)
}

// SendMessage validates, moderates and appends a new message.
func (o *Orchestrator) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	if err := chat.Validate(cmd); err != nil {
		return chat.Message{}, err
	}
	text := cmd.Text
	if o.moderator != nil {
		censored, words := o.moderator.Censor(text)
		if len(words) > 0 {
			o.log.Info("Message censored", "user_id", cmd.SenderID, "words", len(words))
		}
		text = censored
	}
	at := cmd.CreatedAt
	if at.IsZero() {
		at = o.now()
	}
	msg, err := chat.NewMessage(cmd.SenderID, cmd.ReceiverID, text, at)
	if err != nil {
		return chat.Message{}, err
	}
	if err := o.messages.Append(ctx, msg); err != nil {
		return chat.Message{}, err
	}
	o.monitoring.RecordMessageSent()
	return msg, nil
}

func (o *Orchestrator) FetchConversations(ctx context.Context, self string) ([]chat.Conversation, error) {
	return o.subscriptions.Fetch(ctx, self)
}

func (o *Orchestrator) SubscribeConversations(ctx context.Context, self string, observer contract.ConversationObserver, opts ...SubscribeOption) func() {
	return o.subscriptions.Subscribe(ctx, self, observer, opts...)
}

func (o *Orchestrator) MarkRead(ctx context.Context, cmd chat.MarkReadCommand) error {
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	return o.coordinator.MarkRead(ctx, cmd.PeerID, cmd.SelfID)
}

func (o *Orchestrator) SetTyping(ctx context.Context, cmd chat.SetTypingCommand) error {
	if err := chat.Validate(cmd); err != nil {
		return err
	}
	return o.coordinator.SetTyping(ctx, cmd.SelfID, cmd.PeerID, cmd.IsTyping)
}

func (o *Orchestrator) ObserveTyping(ctx context.Context, cmd chat.ObserveTypingCommand) (<-chan bool, error) {
	if err := chat.Validate(cmd); err != nil {
		return nil, err
	}
	return o.coordinator.ObserveTyping(ctx, cmd.PeerID, cmd.SelfID), nil
}

func (o *Orchestrator) GetThread(ctx context.Context, cmd chat.GetThreadCommand) ([]chat.Message, *string, error) {
	if err := chat.Validate(cmd); err != nil {
		return nil, nil, err
	}
	return o.messages.GetThread(ctx, cmd.SelfID, cmd.PeerID, cmd.Cursor)
}

func (o *Orchestrator) SaveProfile(ctx context.Context, p profile.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return o.profiles.Save(ctx, p)
}

func (o *Orchestrator) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	return o.profiles.Fetch(ctx, userID)
}

func (o *Orchestrator) ListMatches(ctx context.Context, filter profile.MatchFilter) ([]profile.Profile, error) {
	profiles, err := o.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(profiles), nil
}

// SearchMessages returns self's messages matching query, best match first.
func (o *Orchestrator) SearchMessages(ctx context.Context, cmd chat.SearchCommand) ([]chat.Message, error) {
	if err := chat.Validate(cmd); err != nil {
		return nil, err
	}
	if o.index == nil {
		return nil, fmt.Errorf("search index not configured")
	}
	limit := cmd.Limit
	if limit == 0 {
		limit = defaultSearchLimit
	}
	ids, err := o.index.Search(ctx, cmd.SelfID, cmd.Query, limit)
	if err != nil {
		return nil, err
	}
	return o.messages.GetByIDs(ctx, ids)
}

// Start registers the fanout and every extra worker, then blocks running the
// supervisor until ctx is done or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	fanout := workers.NewEventFanout(o.log, o.sideEffects, o.sinkTimeout, o.permanentSinks...)
	o.supervisor.Add(fanout)
	o.supervisor.Add(o.extraWorkers...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
	return nil
}

// Stop initiates a graceful shutdown of the supervised workers.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
