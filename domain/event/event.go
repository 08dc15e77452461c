// Package event holds the change notifications emitted after a write is committed.
// Feeds use them as wake-up signals; side-effect sinks consume their payload.
package event

import (
	"convo-lab/domain/chat"
	"fmt"
)

type Type string

const (
	MessageAppendedType Type = "MESSAGE_APPENDED"
	MessagesReadType    Type = "MESSAGES_READ"
	TypingChangedType   Type = "TYPING_CHANGED"
)

// ChangeEvent is published once per committed write.
type ChangeEvent interface {
	Type() Type
	Topics() []string
}

// MessagesTopic is the topic every message change of user is published on.
func MessagesTopic(user string) string {
	return fmt.Sprintf("messages:%s", user)
}

// TypingTopic is the topic of the typing record from -> to.
func TypingTopic(from, to string) string {
	return fmt.Sprintf("typing:%s:%s", from, to)
}

type MessageAppended struct {
	Message chat.Message
}

func (e MessageAppended) Type() Type { return MessageAppendedType }

func (e MessageAppended) Topics() []string {
	return []string{MessagesTopic(e.Message.SenderID), MessagesTopic(e.Message.ReceiverID)}
}

type MessagesRead struct {
	Reader string
	Peer   string
	IDs    []string
}

func (e MessagesRead) Type() Type { return MessagesReadType }

func (e MessagesRead) Topics() []string {
	return []string{MessagesTopic(e.Reader), MessagesTopic(e.Peer)}
}

type TypingChanged struct {
	State chat.TypingState
}

func (e TypingChanged) Type() Type { return TypingChangedType }

func (e TypingChanged) Topics() []string {
	return []string{TypingTopic(e.State.From, e.State.To)}
}
