package runtime

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/mocks"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func (h *harness) coordinator(staleAfter time.Duration) *Coordinator {
	return NewCoordinator(h.log, h.messages, h.typing, NewTypingFeed(h.log, h.typing, h.registry), staleAfter)
}

func TestCoordinator_MarkRead_Flips_Only_Peer_Messages(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx := context.Background()
	now := time.Now()

	// Given alice received two messages from bob, one from clara, and sent one to bob
	fromBob1 := h.send(t, "bob", "alice", "one", now)
	fromBob2 := h.send(t, "bob", "alice", "two", now.Add(time.Second))
	fromClara := h.send(t, "clara", "alice", "three", now.Add(2*time.Second))
	toBob := h.send(t, "alice", "bob", "four", now.Add(3*time.Second))

	// When alice reads bob
	req.NoError(h.coordinator(0).MarkRead(ctx, "bob", "alice"))

	// Then only bob's messages to alice are read
	messages, err := h.messages.GetByIDs(ctx, []string{fromBob1.ID, fromBob2.ID, fromClara.ID, toBob.ID})
	req.NoError(err)
	read := lo.SliceToMap(messages, func(m chat.Message) (string, bool) { return m.ID, m.IsRead })
	req.True(read[fromBob1.ID])
	req.True(read[fromBob2.ID])
	req.False(read[fromClara.ID])
	req.False(read[toBob.ID])

	// And reading bob again changes nothing
	req.NoError(h.coordinator(0).MarkRead(ctx, "bob", "alice"))
	again, err := h.messages.GetByIDs(ctx, []string{fromBob1.ID, fromBob2.ID, fromClara.ID, toBob.ID})
	req.NoError(err)
	req.Equal(read, lo.SliceToMap(again, func(m chat.Message) (string, bool) { return m.ID, m.IsRead }))
}

func TestCoordinator_MarkRead_Nothing_To_Flip(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	coordinator := NewCoordinator(slog.Default(), repository, nil, nil, 0)
	now := time.Now()

	// Given everything from bob is already read
	repository.EXPECT().Query(gomock.Any(), "alice").Return([]chat.Message{
		message("1", "bob", "alice", now, true),
		message("2", "alice", "bob", now, false),
	}, nil)

	// Then no batch is issued at all
	req.NoError(coordinator.MarkRead(context.Background(), "bob", "alice"))
}

func TestCoordinator_MarkRead_Sends_One_Batch(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	coordinator := NewCoordinator(slog.Default(), repository, nil, nil, 0)
	now := time.Now()

	repository.EXPECT().Query(gomock.Any(), "alice").Return([]chat.Message{
		message("1", "bob", "alice", now, false),
		message("2", "bob", "alice", now, true),
		message("3", "bob", "alice", now, false),
	}, nil)
	repository.EXPECT().BatchUpdateRead(gomock.Any(), []string{"1", "3"}, true).Return(nil)

	req.NoError(coordinator.MarkRead(context.Background(), "bob", "alice"))
}

func TestCoordinator_MarkRead_Store_Failure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	coordinator := NewCoordinator(slog.Default(), repository, nil, nil, 0)
	boom := fmt.Errorf("boom")

	repository.EXPECT().Query(gomock.Any(), "alice").Return([]chat.Message{message("1", "bob", "alice", time.Now(), false)}, nil)
	repository.EXPECT().BatchUpdateRead(gomock.Any(), []string{"1"}, true).Return(boom)

	req.ErrorIs(coordinator.MarkRead(context.Background(), "bob", "alice"), boom)
}

func TestCoordinator_ObserveTyping_Follows_Writes(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	coordinator := h.coordinator(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given no record yet
	typing := coordinator.ObserveTyping(ctx, "bob", "alice")
	req.False(receive(t, typing))

	// When bob starts typing to alice
	req.NoError(coordinator.SetTyping(ctx, "bob", "alice", true))
	req.True(receive(t, typing))

	// And stops
	req.NoError(coordinator.SetTyping(ctx, "bob", "alice", false))
	req.False(receive(t, typing))
}

func TestCoordinator_ObserveTyping_Ignores_Other_Direction(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	coordinator := h.coordinator(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	typing := coordinator.ObserveTyping(ctx, "bob", "alice")
	req.False(receive(t, typing))

	// alice typing to bob is not bob typing to alice
	req.NoError(coordinator.SetTyping(ctx, "alice", "bob", true))
	select {
	case v := <-typing:
		req.FailNow("unexpected typing update", "got %v", v)
	case <-time.After(150 * time.Millisecond):
	}

	// While bob typing to alice still comes through
	req.NoError(coordinator.SetTyping(ctx, "bob", "alice", true))
	req.True(receive(t, typing))
}

func TestCoordinator_ObserveTyping_Read_Failure_Is_False(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	feed := mocks.NewMockITypingFeed(ctrl)
	coordinator := NewCoordinator(slog.Default(), nil, nil, feed, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshots := make(chan chat.TypingSnapshot, 1)
	snapshots <- chat.TypingSnapshot{
		State: chat.TypingState{From: "bob", To: "alice", IsTyping: true, UpdatedAt: time.Now()},
		Found: true,
		Err:   fmt.Errorf("corrupted"),
	}
	close(snapshots)
	feed.EXPECT().Watch(gomock.Any(), "bob", "alice").Return((<-chan chat.TypingSnapshot)(snapshots))

	typing := coordinator.ObserveTyping(ctx, "bob", "alice")
	req.False(receive(t, typing))

	// Closing the feed closes the stream
	_, open := <-typing
	req.False(open)
}

func TestCoordinator_ObserveTyping_Stale_Flag_Expires(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	coordinator := h.coordinator(150 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	typing := coordinator.ObserveTyping(ctx, "bob", "alice")
	req.False(receive(t, typing))

	req.NoError(coordinator.SetTyping(ctx, "bob", "alice", true))
	req.True(receive(t, typing))

	// Then the flag turns false on its own, without a new write
	req.False(receive(t, typing))
}

func TestCoordinator_ObserveTyping_Already_Stale_Record(t *testing.T) {
	req := require.New(t)
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Given a true flag written an hour ago
	req.NoError(h.typing.Upsert(ctx, chat.TypingState{From: "bob", To: "alice", IsTyping: true, UpdatedAt: time.Now().Add(-time.Hour)}))

	// Then it reads as false with expiry enabled, true without
	req.False(receive(t, h.coordinator(time.Minute).ObserveTyping(ctx, "bob", "alice")))
	req.True(receive(t, h.coordinator(0).ObserveTyping(ctx, "bob", "alice")))
}
