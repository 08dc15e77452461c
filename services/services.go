//go:generate go run go.uber.org/mock/mockgen -source=services.go -destination=../mocks/mock_services.go -package=mocks
package services

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/runtime"
)

type IConversationService interface {
	SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error)
	FetchConversations(ctx context.Context, self string) ([]chat.Conversation, error)
	SubscribeConversations(ctx context.Context, self string, observer contract.ConversationObserver, diagnostics func(error)) func()
	MarkRead(ctx context.Context, cmd chat.MarkReadCommand) error
	SetTyping(ctx context.Context, cmd chat.SetTypingCommand) error
	ObserveTyping(ctx context.Context, cmd chat.ObserveTypingCommand) (<-chan bool, error)
	GetThread(ctx context.Context, cmd chat.GetThreadCommand) ([]chat.Message, *string, error)
	SearchMessages(ctx context.Context, cmd chat.SearchCommand) ([]chat.Message, error)
}

type IProfileService interface {
	SaveProfile(ctx context.Context, p profile.Profile) error
	GetProfile(ctx context.Context, userID string) (profile.Profile, error)
	ListMatches(ctx context.Context, filter profile.MatchFilter) ([]profile.Profile, error)
}

type ConversationService struct {
	orchestrator *runtime.Orchestrator
}

func NewConversationService(o *runtime.Orchestrator) *ConversationService {
	return &ConversationService{orchestrator: o}
}

func (s *ConversationService) SendMessage(ctx context.Context, cmd chat.SendMessageCommand) (chat.Message, error) {
	return s.orchestrator.SendMessage(ctx, cmd)
}

func (s *ConversationService) FetchConversations(ctx context.Context, self string) ([]chat.Conversation, error) {
	return s.orchestrator.FetchConversations(ctx, self)
}

// SubscribeConversations opens a live conversation list. diagnostics may be nil.
func (s *ConversationService) SubscribeConversations(ctx context.Context, self string, observer contract.ConversationObserver, diagnostics func(error)) func() {
	var opts []runtime.SubscribeOption
	if diagnostics != nil {
		opts = append(opts, runtime.WithDiagnostics(diagnostics))
	}
	return s.orchestrator.SubscribeConversations(ctx, self, observer, opts...)
}

func (s *ConversationService) MarkRead(ctx context.Context, cmd chat.MarkReadCommand) error {
	return s.orchestrator.MarkRead(ctx, cmd)
}

func (s *ConversationService) SetTyping(ctx context.Context, cmd chat.SetTypingCommand) error {
	return s.orchestrator.SetTyping(ctx, cmd)
}

func (s *ConversationService) ObserveTyping(ctx context.Context, cmd chat.ObserveTypingCommand) (<-chan bool, error) {
	return s.orchestrator.ObserveTyping(ctx, cmd)
}

func (s *ConversationService) GetThread(ctx context.Context, cmd chat.GetThreadCommand) ([]chat.Message, *string, error) {
	return s.orchestrator.GetThread(ctx, cmd)
}

func (s *ConversationService) SearchMessages(ctx context.Context, cmd chat.SearchCommand) ([]chat.Message, error) {
	return s.orchestrator.SearchMessages(ctx, cmd)
}

type ProfileService struct {
	orchestrator *runtime.Orchestrator
}

func NewProfileService(o *runtime.Orchestrator) *ProfileService {
	return &ProfileService{orchestrator: o}
}

func (s *ProfileService) SaveProfile(ctx context.Context, p profile.Profile) error {
	return s.orchestrator.SaveProfile(ctx, p)
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	return s.orchestrator.GetProfile(ctx, userID)
}

func (s *ProfileService) ListMatches(ctx context.Context, filter profile.MatchFilter) ([]profile.Profile, error) {
	return s.orchestrator.ListMatches(ctx, filter)
}
