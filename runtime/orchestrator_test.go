package runtime_test

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"convo-lab/domain/profile"
	"convo-lab/errors"
	"convo-lab/infrastructure/search"
	"convo-lab/infrastructure/storage"
	"convo-lab/mocks"
	"convo-lab/observability"
	"convo-lab/runtime"
	"convo-lab/runtime/workers"
	"convo-lab/sink"
	"log/slog"
	"testing"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	orchestrator *runtime.Orchestrator
	messages     *storage.MessageRepository
	index        *search.MessageIndex
	monitoring   *observability.MonitoringManager
}

func newFixture(t *testing.T, moderator *mocks.MockIModerator) fixture {
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = writer.Close() })

	log := slog.Default()
	sideEffects := make(chan event.ChangeEvent, 100)
	registry := runtime.NewRegistry(log, sideEffects)
	monitoring := observability.NewMonitoringManager(log)
	messages := storage.NewMessageRepository(db, log, registry, nil)
	index := search.NewMessageIndex(writer, log)

	s := runtime.Storage{
		Messages: messages,
		Profiles: storage.NewProfileRepository(db, log),
		Typing:   storage.NewTypingRepository(db, registry),
		Index:    index,
	}
	if moderator != nil {
		s.Moderator = moderator
	}
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log, 10*time.Millisecond),
		registry, sideEffects, s, monitoring, 0, time.Second)
	orchestrator.AddSinks(sink.NewSearchSink(index, log), sink.NewTelemetrySink(monitoring))

	return fixture{orchestrator: orchestrator, messages: messages, index: index, monitoring: monitoring}
}

func (f fixture) start(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = f.orchestrator.Start(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func Test_Orchestrator_SendMessage_Moderates_Text(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	moderator := mocks.NewMockIModerator(ctrl)
	f := newFixture(t, moderator)

	// Given a moderator masking one word
	moderator.EXPECT().Censor("what the heck").Return("what the ****", []string{"heck"})

	// When alice sends it to bob
	msg, err := f.orchestrator.SendMessage(context.Background(), chat.SendMessageCommand{
		SenderID:   "alice",
		ReceiverID: "bob",
		Text:       "what the heck",
	})

	// Then the stored text is masked
	req.NoError(err)
	stored, err := f.messages.Query(context.Background(), "bob")
	req.NoError(err)
	req.Len(stored, 1)
	req.Equal(msg.ID, stored[0].ID)
	req.Equal("what the ****", stored[0].Text)
	req.False(stored[0].At.IsZero())
	req.Equal(uint64(1), f.monitoring.GetLatest().MessagesSent)
}

func Test_Orchestrator_SendMessage_Rejections(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name string
		cmd  chat.SendMessageCommand
		want error
	}{
		{name: "self message", cmd: chat.SendMessageCommand{SenderID: "alice", ReceiverID: "alice", Text: "me"}, want: errors.ErrSelfMessage},
		{name: "blank text", cmd: chat.SendMessageCommand{SenderID: "alice", ReceiverID: "bob", Text: "   "}, want: errors.ErrEmptyMessage},
		{name: "missing receiver", cmd: chat.SendMessageCommand{SenderID: "alice", Text: "hi"}, want: errors.ErrInvalidCommand},
		{name: "before epoch", cmd: chat.SendMessageCommand{SenderID: "alice", ReceiverID: "bob", Text: "hi", CreatedAt: time.Unix(-60, 0)}, want: errors.ErrInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orchestrator.SendMessage(context.Background(), tt.cmd)
			require.ErrorIs(t, err, tt.want)
		})
	}

	stored, err := f.messages.Query(context.Background(), "alice")
	require.NoError(t, err)
	require.Empty(t, stored)
}

func Test_Orchestrator_Sent_Messages_Become_Searchable(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, nil)
	f.start(t)
	ctx := context.Background()

	sent, err := f.orchestrator.SendMessage(ctx, chat.SendMessageCommand{SenderID: "alice", ReceiverID: "bob", Text: "rehearsal moved to thursday"})
	req.NoError(err)
	_, err = f.orchestrator.SendMessage(ctx, chat.SendMessageCommand{SenderID: "clara", ReceiverID: "dave", Text: "thursday works"})
	req.NoError(err)

	// The fanout indexes messages asynchronously
	var found []chat.Message
	req.Eventually(func() bool {
		found, err = f.orchestrator.SearchMessages(ctx, chat.SearchCommand{SelfID: "bob", Query: "thursday"})
		return err == nil && len(found) == 1
	}, 2*time.Second, 20*time.Millisecond)
	req.Equal(sent.ID, found[0].ID)

	req.Eventually(func() bool {
		return len(f.monitoring.GetLatest().RecentEvents) == 2
	}, 2*time.Second, 20*time.Millisecond)
}

func Test_Orchestrator_Conversations_And_Read_Flags(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, nil)
	ctx := context.Background()

	req.NoError(f.orchestrator.SaveProfile(ctx, profile.Profile{UserID: "bob", Name: "Bob"}))
	_, err := f.orchestrator.SendMessage(ctx, chat.SendMessageCommand{SenderID: "bob", ReceiverID: "alice", Text: "hi"})
	req.NoError(err)

	updates := make(chan []chat.Conversation, 10)
	cancel := f.orchestrator.SubscribeConversations(ctx, "alice", func(c []chat.Conversation) { updates <- c })
	defer cancel()

	first := <-updates
	req.Len(first, 1)
	req.Equal("Bob", first[0].Counterpart.Name)
	req.True(first[0].HasUnread)

	// When alice reads bob
	req.NoError(f.orchestrator.MarkRead(ctx, chat.MarkReadCommand{PeerID: "bob", SelfID: "alice"}))

	select {
	case second := <-updates:
		req.False(second[0].HasUnread)
	case <-time.After(2 * time.Second):
		req.FailNow("no recompute after mark read")
	}

	fetched, err := f.orchestrator.FetchConversations(ctx, "alice")
	req.NoError(err)
	req.False(fetched[0].HasUnread)
}

func Test_Orchestrator_Thread_Is_Paginated(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, nil)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := f.orchestrator.SendMessage(ctx, chat.SendMessageCommand{
			SenderID: "alice", ReceiverID: "bob", Text: "ping", CreatedAt: now.Add(time.Duration(i) * time.Second),
		})
		req.NoError(err)
	}

	thread, cursor, err := f.orchestrator.GetThread(ctx, chat.GetThreadCommand{SelfID: "bob", PeerID: "alice"})
	req.NoError(err)
	req.Len(thread, 3)
	req.Nil(cursor)

	_, err = f.orchestrator.SearchMessages(ctx, chat.SearchCommand{SelfID: "bob"})
	req.ErrorIs(err, errors.ErrInvalidCommand)
}

func Test_Orchestrator_Typing(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	typing, err := f.orchestrator.ObserveTyping(ctx, chat.ObserveTypingCommand{SelfID: "alice", PeerID: "bob"})
	req.NoError(err)
	req.False(<-typing)

	req.NoError(f.orchestrator.SetTyping(ctx, chat.SetTypingCommand{SelfID: "bob", PeerID: "alice", IsTyping: true}))
	req.True(<-typing)

	_, err = f.orchestrator.ObserveTyping(ctx, chat.ObserveTypingCommand{SelfID: "alice"})
	req.ErrorIs(err, errors.ErrInvalidCommand)
}

func Test_Orchestrator_ListMatches(t *testing.T) {
	req := require.New(t)
	f := newFixture(t, nil)
	ctx := context.Background()

	profiles := []profile.Profile{
		{UserID: "alice", Name: "Alice", Instruments: []string{"drums"}, Genres: []string{"jazz"}},
		{UserID: "bob", Name: "Bob", Instruments: []string{"bass"}, Genres: []string{"jazz"}},
		{UserID: "clara", Name: "Clara", Instruments: []string{"drums"}, Genres: []string{"rock"}},
	}
	for _, p := range profiles {
		req.NoError(f.orchestrator.SaveProfile(ctx, p))
	}
	req.ErrorIs(f.orchestrator.SaveProfile(ctx, profile.Profile{UserID: "nameless"}), errors.ErrInvalidProfile)

	matches, err := f.orchestrator.ListMatches(ctx, profile.MatchFilter{Self: "alice", Genre: "jazz"})
	req.NoError(err)
	req.Len(matches, 1)
	req.Equal("bob", matches[0].UserID)
}
