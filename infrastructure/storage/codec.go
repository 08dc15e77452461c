package storage

import (
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

// Records are written in protobuf wire format so they stay readable by any
// protobuf tooling. Field numbers below must never be reused.
const (
	messageID           protowire.Number = 1
	messageSender       protowire.Number = 2
	messageReceiver     protowire.Number = 3
	messageText         protowire.Number = 4
	messageAt           protowire.Number = 5
	messageParticipants protowire.Number = 6
	messageIsRead       protowire.Number = 7

	profileUserID      protowire.Number = 1
	profileName        protowire.Number = 2
	profileInstruments protowire.Number = 3
	profileGenres      protowire.Number = 4
	profileSkillLevel  protowire.Number = 5
	profileBio         protowire.Number = 6

	typingFrom      protowire.Number = 1
	typingTo        protowire.Number = 2
	typingIsTyping  protowire.Number = 3
	typingUpdatedAt protowire.Number = 4
)

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func encodeMessage(m chat.Message) []byte {
	var b []byte
	b = appendString(b, messageID, m.ID)
	b = appendString(b, messageSender, m.SenderID)
	b = appendString(b, messageReceiver, m.ReceiverID)
	b = appendString(b, messageText, m.Text)
	b = appendVarint(b, messageAt, uint64(m.At.UnixNano()))
	for _, p := range m.Participants {
		b = protowire.AppendTag(b, messageParticipants, protowire.BytesType)
		b = protowire.AppendString(b, p)
	}
	b = appendVarint(b, messageIsRead, protowire.EncodeBool(m.IsRead))
	return b
}

func encodeProfile(p profile.Profile) []byte {
	var b []byte
	b = appendString(b, profileUserID, p.UserID)
	b = appendString(b, profileName, p.Name)
	for _, i := range p.Instruments {
		b = protowire.AppendTag(b, profileInstruments, protowire.BytesType)
		b = protowire.AppendString(b, i)
	}
	for _, g := range p.Genres {
		b = protowire.AppendTag(b, profileGenres, protowire.BytesType)
		b = protowire.AppendString(b, g)
	}
	b = appendString(b, profileSkillLevel, p.SkillLevel)
	b = appendString(b, profileBio, p.Bio)
	return b
}

func encodeTyping(s chat.TypingState) []byte {
	var b []byte
	b = appendString(b, typingFrom, s.From)
	b = appendString(b, typingTo, s.To)
	b = appendVarint(b, typingIsTyping, protowire.EncodeBool(s.IsTyping))
	b = appendVarint(b, typingUpdatedAt, uint64(s.UpdatedAt.UnixNano()))
	return b
}

// field is one decoded (number, value) pair. Exactly one of str or val is set
// depending on the wire type.
type field struct {
	num protowire.Number
	str string
	val uint64
}

// decodeFields walks a record and skips unknown wire types.
func decodeFields(b []byte) ([]field, error) {
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", errors.ErrMalformedRecord, protowire.ParseError(n))
		}
		b = b[n:]
		switch typ {
		case protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errors.ErrMalformedRecord, protowire.ParseError(n))
			}
			fields = append(fields, field{num: num, str: v})
			b = b[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errors.ErrMalformedRecord, protowire.ParseError(n))
			}
			fields = append(fields, field{num: num, val: v})
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", errors.ErrMalformedRecord, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return fields, nil
}

func decodeMessage(b []byte) (chat.Message, error) {
	fields, err := decodeFields(b)
	if err != nil {
		return chat.Message{}, err
	}
	var m chat.Message
	for _, f := range fields {
		switch f.num {
		case messageID:
			m.ID = f.str
		case messageSender:
			m.SenderID = f.str
		case messageReceiver:
			m.ReceiverID = f.str
		case messageText:
			m.Text = f.str
		case messageAt:
			m.At = time.Unix(0, int64(f.val)).UTC()
		case messageParticipants:
			m.Participants = append(m.Participants, f.str)
		case messageIsRead:
			m.IsRead = protowire.DecodeBool(f.val)
		}
	}
	return m, nil
}

func decodeProfile(b []byte) (profile.Profile, error) {
	fields, err := decodeFields(b)
	if err != nil {
		return profile.Profile{}, err
	}
	var p profile.Profile
	for _, f := range fields {
		switch f.num {
		case profileUserID:
			p.UserID = f.str
		case profileName:
			p.Name = f.str
		case profileInstruments:
			p.Instruments = append(p.Instruments, f.str)
		case profileGenres:
			p.Genres = append(p.Genres, f.str)
		case profileSkillLevel:
			p.SkillLevel = f.str
		case profileBio:
			p.Bio = f.str
		}
	}
	return p, nil
}

func decodeTyping(b []byte) (chat.TypingState, error) {
	fields, err := decodeFields(b)
	if err != nil {
		return chat.TypingState{}, err
	}
	var s chat.TypingState
	for _, f := range fields {
		switch f.num {
		case typingFrom:
			s.From = f.str
		case typingTo:
			s.To = f.str
		case typingIsTyping:
			s.IsTyping = protowire.DecodeBool(f.val)
		case typingUpdatedAt:
			s.UpdatedAt = time.Unix(0, int64(f.val)).UTC()
		}
	}
	return s, nil
}
