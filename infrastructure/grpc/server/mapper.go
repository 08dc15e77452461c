package server

import (
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	pb "convo-lab/proto/convo"

	"github.com/samber/lo"
)

func toPbMessage(m chat.Message) *pb.Message {
	return &pb.Message{
		MessageID:  m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Text:       m.Text,
		CreatedAt:  m.At,
		IsRead:     m.IsRead,
	}
}

func toPbMessages(messages []chat.Message) []*pb.Message {
	return lo.Map(messages, func(m chat.Message, _ int) *pb.Message {
		return toPbMessage(m)
	})
}

func toPbProfile(p profile.Profile) *pb.Profile {
	return &pb.Profile{
		UserID:      p.UserID,
		Name:        p.Name,
		Instruments: p.Instruments,
		Genres:      p.Genres,
		SkillLevel:  p.SkillLevel,
		Bio:         p.Bio,
	}
}

func fromPbProfile(p *pb.Profile) profile.Profile {
	if p == nil {
		return profile.Profile{}
	}
	return profile.Profile{
		UserID:      p.UserID,
		Name:        p.Name,
		Instruments: p.Instruments,
		Genres:      p.Genres,
		SkillLevel:  p.SkillLevel,
		Bio:         p.Bio,
	}
}

func toPbConversationList(conversations []chat.Conversation) *pb.ConversationList {
	return &pb.ConversationList{
		Conversations: lo.Map(conversations, func(c chat.Conversation, _ int) *pb.Conversation {
			return &pb.Conversation{
				CounterpartID:   c.CounterpartID,
				Counterpart:     toPbProfile(c.Counterpart),
				LastMessageID:   c.LastMessageID,
				LastMessageText: c.LastMessageText,
				LastMessageAt:   c.LastMessageAt,
				HasUnread:       c.HasUnread,
			}
		}),
	}
}
