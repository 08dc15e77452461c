package workers

import (
	"context"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"convo-lab/infrastructure/storage"
	"convo-lab/mocks"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

func TestTypingRelay_Republishes_Locally(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	relay := NewTypingRelay(slog.Default(), nil, publisher)
	state := chat.TypingState{From: "alice", To: "bob", IsTyping: true, UpdatedAt: time.Unix(0, 42).UTC()}

	// Then the decoded state is published on the local registry
	publisher.EXPECT().Publish(gomock.Any(), event.TypingChanged{State: state}).Times(1)

	// When a payload written by any instance arrives
	relay.handle(context.Background(), string(storage.EncodeTypingPayload(state)))
}

func TestTypingRelay_Drops_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockPublisher(ctrl)
	relay := NewTypingRelay(slog.Default(), nil, publisher)

	// Then nothing is published
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	relay.handle(context.Background(), "\xff\xff\xff")
}
