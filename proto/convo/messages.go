// Package convo holds the wire types and the gRPC service definition of
// convo.v1.ConversationService. Field numbers follow convo.proto; the json
// tags only serve debug output.
package convo

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
)

type Empty struct{}

type Message struct {
	MessageID  string    `json:"message_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	IsRead     bool      `json:"is_read"`
}

type Profile struct {
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Instruments []string `json:"instruments,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	SkillLevel  string   `json:"skill_level,omitempty"`
	Bio         string   `json:"bio,omitempty"`
}

type Conversation struct {
	CounterpartID   string    `json:"counterpart_id"`
	Counterpart     *Profile  `json:"counterpart"`
	LastMessageID   string    `json:"last_message_id"`
	LastMessageText string    `json:"last_message_text"`
	LastMessageAt   time.Time `json:"last_message_at"`
	HasUnread       bool      `json:"has_unread"`
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text"`
}

type SendMessageResponse struct {
	Message *Message `json:"message"`
}

type FetchConversationsRequest struct{}

type SubscribeConversationsRequest struct{}

type ConversationList struct {
	Conversations []*Conversation `json:"conversations"`
}

type MarkReadRequest struct {
	PeerID string `json:"peer_id"`
}

type SetTypingRequest struct {
	PeerID   string `json:"peer_id"`
	IsTyping bool   `json:"is_typing"`
}

type ObserveTypingRequest struct {
	PeerID string `json:"peer_id"`
}

type TypingUpdate struct {
	PeerID   string `json:"peer_id"`
	IsTyping bool   `json:"is_typing"`
}

type GetThreadRequest struct {
	PeerID string  `json:"peer_id"`
	Cursor *string `json:"cursor,omitempty"`
}

type GetThreadResponse struct {
	Messages []*Message `json:"messages"`
	Cursor   *string    `json:"cursor,omitempty"`
}

type SaveProfileRequest struct {
	Profile *Profile `json:"profile"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

type ListMatchesRequest struct {
	Instrument string `json:"instrument,omitempty"`
	Genre      string `json:"genre,omitempty"`
}

type ProfileList struct {
	Profiles []*Profile `json:"profiles"`
}

type SearchMessagesRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type MessageList struct {
	Messages []*Message `json:"messages"`
}

func (*Empty) marshalWire(*encoder) {}

func (*Empty) unmarshalField(protowire.Number, field) error { return nil }

func (m *Message) marshalWire(e *encoder) {
	if m == nil {
		return
	}
	e.putString(1, m.MessageID)
	e.putString(2, m.SenderID)
	e.putString(3, m.ReceiverID)
	e.putString(4, m.Text)
	e.putTimestamp(5, m.CreatedAt)
	e.putBool(6, m.IsRead)
}

func (m *Message) unmarshalField(num protowire.Number, f field) (err error) {
	switch num {
	case 1:
		m.MessageID = f.asString()
	case 2:
		m.SenderID = f.asString()
	case 3:
		m.ReceiverID = f.asString()
	case 4:
		m.Text = f.asString()
	case 5:
		m.CreatedAt, err = f.asTimestamp()
	case 6:
		m.IsRead = f.asBool()
	}
	return err
}

func (p *Profile) marshalWire(e *encoder) {
	if p == nil {
		return
	}
	e.putString(1, p.UserID)
	e.putString(2, p.Name)
	e.putStrings(3, p.Instruments)
	e.putStrings(4, p.Genres)
	e.putString(5, p.SkillLevel)
	e.putString(6, p.Bio)
}

func (p *Profile) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		p.UserID = f.asString()
	case 2:
		p.Name = f.asString()
	case 3:
		p.Instruments = append(p.Instruments, f.asString())
	case 4:
		p.Genres = append(p.Genres, f.asString())
	case 5:
		p.SkillLevel = f.asString()
	case 6:
		p.Bio = f.asString()
	}
	return nil
}

func (c *Conversation) marshalWire(e *encoder) {
	if c == nil {
		return
	}
	e.putString(1, c.CounterpartID)
	if c.Counterpart != nil {
		e.putMessage(2, c.Counterpart)
	}
	e.putString(3, c.LastMessageID)
	e.putString(4, c.LastMessageText)
	e.putTimestamp(5, c.LastMessageAt)
	e.putBool(6, c.HasUnread)
}

func (c *Conversation) unmarshalField(num protowire.Number, f field) (err error) {
	switch num {
	case 1:
		c.CounterpartID = f.asString()
	case 2:
		c.Counterpart = &Profile{}
		err = decode(f.raw, c.Counterpart)
	case 3:
		c.LastMessageID = f.asString()
	case 4:
		c.LastMessageText = f.asString()
	case 5:
		c.LastMessageAt, err = f.asTimestamp()
	case 6:
		c.HasUnread = f.asBool()
	}
	return err
}

func (r *SendMessageRequest) marshalWire(e *encoder) {
	e.putString(1, r.ReceiverID)
	e.putString(2, r.Text)
}

func (r *SendMessageRequest) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		r.ReceiverID = f.asString()
	case 2:
		r.Text = f.asString()
	}
	return nil
}

func (r *SendMessageResponse) marshalWire(e *encoder) {
	if r.Message != nil {
		e.putMessage(1, r.Message)
	}
}

func (r *SendMessageResponse) unmarshalField(num protowire.Number, f field) error {
	if num != 1 {
		return nil
	}
	r.Message = &Message{}
	return decode(f.raw, r.Message)
}

func (*FetchConversationsRequest) marshalWire(*encoder) {}

func (*FetchConversationsRequest) unmarshalField(protowire.Number, field) error { return nil }

func (*SubscribeConversationsRequest) marshalWire(*encoder) {}

func (*SubscribeConversationsRequest) unmarshalField(protowire.Number, field) error { return nil }

func (l *ConversationList) marshalWire(e *encoder) {
	for _, c := range l.Conversations {
		e.putMessage(1, c)
	}
}

func (l *ConversationList) unmarshalField(num protowire.Number, f field) error {
	if num != 1 {
		return nil
	}
	c := &Conversation{}
	if err := decode(f.raw, c); err != nil {
		return err
	}
	l.Conversations = append(l.Conversations, c)
	return nil
}

func (r *MarkReadRequest) marshalWire(e *encoder) {
	e.putString(1, r.PeerID)
}

func (r *MarkReadRequest) unmarshalField(num protowire.Number, f field) error {
	if num == 1 {
		r.PeerID = f.asString()
	}
	return nil
}

func (r *SetTypingRequest) marshalWire(e *encoder) {
	e.putString(1, r.PeerID)
	e.putBool(2, r.IsTyping)
}

func (r *SetTypingRequest) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		r.PeerID = f.asString()
	case 2:
		r.IsTyping = f.asBool()
	}
	return nil
}

func (r *ObserveTypingRequest) marshalWire(e *encoder) {
	e.putString(1, r.PeerID)
}

func (r *ObserveTypingRequest) unmarshalField(num protowire.Number, f field) error {
	if num == 1 {
		r.PeerID = f.asString()
	}
	return nil
}

func (u *TypingUpdate) marshalWire(e *encoder) {
	e.putString(1, u.PeerID)
	e.putBool(2, u.IsTyping)
}

func (u *TypingUpdate) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		u.PeerID = f.asString()
	case 2:
		u.IsTyping = f.asBool()
	}
	return nil
}

func (r *GetThreadRequest) marshalWire(e *encoder) {
	e.putString(1, r.PeerID)
	e.putOptionalString(2, r.Cursor)
}

func (r *GetThreadRequest) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		r.PeerID = f.asString()
	case 2:
		cursor := f.asString()
		r.Cursor = &cursor
	}
	return nil
}

func (r *GetThreadResponse) marshalWire(e *encoder) {
	for _, m := range r.Messages {
		e.putMessage(1, m)
	}
	e.putOptionalString(2, r.Cursor)
}

func (r *GetThreadResponse) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		m := &Message{}
		if err := decode(f.raw, m); err != nil {
			return err
		}
		r.Messages = append(r.Messages, m)
	case 2:
		cursor := f.asString()
		r.Cursor = &cursor
	}
	return nil
}

func (r *SaveProfileRequest) marshalWire(e *encoder) {
	if r.Profile != nil {
		e.putMessage(1, r.Profile)
	}
}

func (r *SaveProfileRequest) unmarshalField(num protowire.Number, f field) error {
	if num != 1 {
		return nil
	}
	r.Profile = &Profile{}
	return decode(f.raw, r.Profile)
}

func (r *GetProfileRequest) marshalWire(e *encoder) {
	e.putString(1, r.UserID)
}

func (r *GetProfileRequest) unmarshalField(num protowire.Number, f field) error {
	if num == 1 {
		r.UserID = f.asString()
	}
	return nil
}

func (r *ListMatchesRequest) marshalWire(e *encoder) {
	e.putString(1, r.Instrument)
	e.putString(2, r.Genre)
}

func (r *ListMatchesRequest) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		r.Instrument = f.asString()
	case 2:
		r.Genre = f.asString()
	}
	return nil
}

func (l *ProfileList) marshalWire(e *encoder) {
	for _, p := range l.Profiles {
		e.putMessage(1, p)
	}
}

func (l *ProfileList) unmarshalField(num protowire.Number, f field) error {
	if num != 1 {
		return nil
	}
	p := &Profile{}
	if err := decode(f.raw, p); err != nil {
		return err
	}
	l.Profiles = append(l.Profiles, p)
	return nil
}

func (r *SearchMessagesRequest) marshalWire(e *encoder) {
	e.putString(1, r.Query)
	e.putInt(2, r.Limit)
}

func (r *SearchMessagesRequest) unmarshalField(num protowire.Number, f field) error {
	switch num {
	case 1:
		r.Query = f.asString()
	case 2:
		r.Limit = f.asInt()
	}
	return nil
}

func (l *MessageList) marshalWire(e *encoder) {
	for _, m := range l.Messages {
		e.putMessage(1, m)
	}
}

func (l *MessageList) unmarshalField(num protowire.Number, f field) error {
	if num != 1 {
		return nil
	}
	m := &Message{}
	if err := decode(f.raw, m); err != nil {
		return err
	}
	l.Messages = append(l.Messages, m)
	return nil
}
