package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConversations(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer
	now := time.Now()

	Conversations(&buf, []Row{
		{CounterpartID: "bob", Name: "Bob", LastMessage: "hello", At: now, Unread: true},
		{CounterpartID: "clara", Name: "Clara", LastMessage: strings.Repeat("a", 100), At: now.Add(-time.Hour)},
	}, false)

	out := buf.String()
	req.Contains(out, "bob")
	req.Contains(out, "●")
	req.Contains(out, strings.Repeat("a", maxPreview-1)+"…")
	req.NotContains(out, strings.Repeat("a", maxPreview))
	req.Less(strings.Index(out, "bob"), strings.Index(out, "clara"))
}

func TestConversations_Empty(t *testing.T) {
	var buf bytes.Buffer
	Conversations(&buf, nil, true)
	require.Equal(t, "No conversation yet\n", buf.String())
}

func TestRecords(t *testing.T) {
	req := require.New(t)
	var buf bytes.Buffer

	Records(&buf, []RecordRow{
		{Key: "msg:01HZXAAAAAAAAAAAAAAAAAAAAA", Kind: "MESSAGE", ID: "01HZXAAAAAAAAAAAAAAAAAAAAA", At: time.Now(), Detail: "alice -> bob"},
		{Key: "profile:bob", Kind: "PROFILE", ID: "bob", Detail: "Bob"},
		{Key: "msg:broken", Err: fmt.Errorf("malformed record")},
	})

	out := buf.String()
	req.Contains(out, "01HZXAAAAA")
	req.NotContains(out, "\t01HZXAAAAAAAAAAAAAAAAAAAAA\t")
	req.Contains(out, "MALFORMED: 1")
	req.Contains(out, "MESSAGE: 1")
	req.Contains(out, "PROFILE: 1")
}
