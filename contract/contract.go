//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"convo-lab/domain/profile"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging and supervision without a name method on Worker.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives committed changes.
// Feeds register cheap signal sinks, the fanout drives slow side-effect sinks.
type EventSink interface {
	Consume(ctx context.Context, e event.ChangeEvent) error
}

// Publisher is implemented by the registry; repositories call it after commit.
type Publisher interface {
	Publish(ctx context.Context, e event.ChangeEvent)
}

type IRegistry interface {
	Publisher
	Subscribe(topic string, sink EventSink) (unsubscribe func())
	SinksFor(topic string) []EventSink
}

type IMessageRepository interface {
	Query(ctx context.Context, user string) ([]chat.Message, error)
	Append(ctx context.Context, msg chat.Message) error
	BatchUpdateRead(ctx context.Context, ids []string, isRead bool) error
	GetThread(ctx context.Context, a, b string, cursor *string) ([]chat.Message, *string, error)
	GetByIDs(ctx context.Context, ids []string) ([]chat.Message, error)
}

type IProfileLookup interface {
	Fetch(ctx context.Context, userID string) (profile.Profile, error)
}

type IProfileRepository interface {
	IProfileLookup
	Save(ctx context.Context, p profile.Profile) error
	List(ctx context.Context) ([]profile.Profile, error)
}

type ITypingRepository interface {
	Upsert(ctx context.Context, state chat.TypingState) error
	// Get returns found=false when (from, to) has never been written.
	Get(ctx context.Context, from, to string) (state chat.TypingState, found bool, err error)
}

type IMessageIndex interface {
	Index(msg chat.Message) error
	Search(ctx context.Context, self, query string, limit int) ([]string, error)
}

type IModerator interface {
	Censor(text string) (string, []string)
}

type IMessageFeed interface {
	Watch(ctx context.Context, user string) <-chan chat.MessageSnapshot
}

type ITypingFeed interface {
	Watch(ctx context.Context, from, to string) <-chan chat.TypingSnapshot
}

// ConversationObserver is called with the full, sorted conversation list on
// every recomputation. Calls for one subscription never overlap.
type ConversationObserver func(conversations []chat.Conversation)
