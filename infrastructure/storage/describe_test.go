package storage

import (
	"convo-lab/domain/chat"
	"convo-lab/domain/profile"
	"convo-lab/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	req := require.New(t)
	msg, err := chat.NewMessage("alice", "bob", "hello", time.Now())
	req.NoError(err)

	record, err := Describe(string(messageKey(msg.ID)), encodeMessage(msg))
	req.NoError(err)
	req.Equal("MESSAGE", record.Kind)
	req.Equal(msg.ID, record.ID)
	req.Equal("alice -> bob: hello (unread)", record.Detail)

	record, err = Describe(inboxPrefix("bob")+indexSuffix(msg), []byte(msg.ID))
	req.NoError(err)
	req.Equal("INBOX", record.Kind)
	req.Equal(msg.ID, record.ID)

	record, err = Describe("profile:bob", encodeProfile(profile.Profile{UserID: "bob", Name: "Bob"}))
	req.NoError(err)
	req.Equal("bob", record.ID)

	record, err = Describe("unknown", []byte("abc"))
	req.NoError(err)
	req.Equal("RAW", record.Kind)

	_, err = Describe("msg:broken", []byte{0xff, 0xff})
	req.ErrorIs(err, errors.ErrMalformedRecord)
}
