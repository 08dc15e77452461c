package server

import (
	"context"
	"convo-lab/auth"
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/errors"
	"convo-lab/infrastructure/storage"
	pb "convo-lab/proto/convo"
	"convo-lab/services"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"google.golang.org/grpc"
)

type ConversationServer struct {
	pb.UnimplementedConversationServiceServer
	log                  *slog.Logger
	conversations        services.IConversationService
	profiles             services.IProfileService
	connectionBufferSize int
}

func NewConversationServer(log *slog.Logger, conversations services.IConversationService,
	profiles services.IProfileService, connectionBufferSize int) *ConversationServer {
	if connectionBufferSize < 1 {
		connectionBufferSize = 1
	}
	return &ConversationServer{
		log:                  log,
		conversations:        conversations,
		profiles:             profiles,
		connectionBufferSize: connectionBufferSize,
	}
}

func (s *ConversationServer) SendMessage(ctx context.Context, req *pb.SendMessageRequest) (*pb.SendMessageResponse, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	msg, err := s.conversations.SendMessage(ctx, chat.SendMessageCommand{
		SenderID:   self,
		ReceiverID: req.ReceiverID,
		Text:       req.Text,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.SendMessageResponse{Message: toPbMessage(msg)}, nil
}

func (s *ConversationServer) FetchConversations(ctx context.Context, _ *pb.FetchConversationsRequest) (*pb.ConversationList, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	conversations, err := s.conversations.FetchConversations(ctx, self)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toPbConversationList(conversations), nil
}

func (s *ConversationServer) MarkRead(ctx context.Context, req *pb.MarkReadRequest) (*pb.Empty, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if err := s.conversations.MarkRead(ctx, chat.MarkReadCommand{PeerID: req.PeerID, SelfID: self}); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.Empty{}, nil
}

func (s *ConversationServer) SetTyping(ctx context.Context, req *pb.SetTypingRequest) (*pb.Empty, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	cmd := chat.SetTypingCommand{SelfID: self, PeerID: req.PeerID, IsTyping: req.IsTyping}
	if err := s.conversations.SetTyping(ctx, cmd); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.Empty{}, nil
}

func (s *ConversationServer) GetThread(ctx context.Context, req *pb.GetThreadRequest) (*pb.GetThreadResponse, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	var after *string
	if req.Cursor != nil {
		if after, err = storage.ParseCursor(*req.Cursor); err != nil {
			return nil, errors.MapToGRPCError(err)
		}
	}
	messages, cursor, err := s.conversations.GetThread(ctx, chat.GetThreadCommand{
		SelfID: self,
		PeerID: req.PeerID,
		Cursor: after,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.GetThreadResponse{Messages: toPbMessages(messages), Cursor: cursor}, nil
}

// SaveProfile only lets callers write their own profile.
func (s *ConversationServer) SaveProfile(ctx context.Context, req *pb.SaveProfileRequest) (*pb.Empty, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	p := fromPbProfile(req.Profile)
	p.UserID = self
	if err := s.profiles.SaveProfile(ctx, p); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.Empty{}, nil
}

func (s *ConversationServer) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.Profile, error) {
	p, err := s.profiles.GetProfile(ctx, req.UserID)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toPbProfile(p), nil
}

func (s *ConversationServer) ListMatches(ctx context.Context, req *pb.ListMatchesRequest) (*pb.ProfileList, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	profiles, err := s.profiles.ListMatches(ctx, profile.MatchFilter{
		Self:       self,
		Instrument: req.Instrument,
		Genre:      req.Genre,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.ProfileList{Profiles: lo.Map(profiles, func(p profile.Profile, _ int) *pb.Profile {
		return toPbProfile(p)
	})}, nil
}

func (s *ConversationServer) SearchMessages(ctx context.Context, req *pb.SearchMessagesRequest) (*pb.MessageList, error) {
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	messages, err := s.conversations.SearchMessages(ctx, chat.SearchCommand{
		SelfID: self,
		Query:  req.Query,
		Limit:  req.Limit,
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &pb.MessageList{Messages: toPbMessages(messages)}, nil
}

// SubscribeConversations pushes the full conversation list of the caller on
// every change. It blocks until the client disconnects. A slow client only
// ever gets the most recent list, older pending ones are replaced.
func (s *ConversationServer) SubscribeConversations(_ *pb.SubscribeConversationsRequest, stream grpc.ServerStreamingServer[pb.ConversationList]) error {
	ctx := stream.Context()
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return errors.MapToGRPCError(err)
	}

	updates := make(chan []chat.Conversation, s.connectionBufferSize)
	observer := func(conversations []chat.Conversation) {
		for {
			select {
			case updates <- conversations:
				return
			default:
			}
			// Full: drop the oldest pending list
			select {
			case <-updates:
			default:
			}
		}
	}
	diagnostics := func(err error) {
		s.log.Debug("Conversation list degraded", "user_id", self, "error", err)
	}
	cancel := s.conversations.SubscribeConversations(ctx, self, observer, diagnostics)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("Client disconnected from conversations", "user_id", self)
			return nil
		case conversations := <-updates:
			if err := stream.Send(toPbConversationList(conversations)); err != nil {
				s.log.Error("failed to push conversations to stream", "user_id", self, "error", err)
				return err
			}
		}
	}
}

func (s *ConversationServer) ObserveTyping(req *pb.ObserveTypingRequest, stream grpc.ServerStreamingServer[pb.TypingUpdate]) error {
	ctx := stream.Context()
	self, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	typing, err := s.conversations.ObserveTyping(ctx, chat.ObserveTypingCommand{SelfID: self, PeerID: req.PeerID})
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	for isTyping := range typing {
		if err := stream.Send(&pb.TypingUpdate{PeerID: req.PeerID, IsTyping: isTyping}); err != nil {
			return err
		}
	}
	return nil
}
