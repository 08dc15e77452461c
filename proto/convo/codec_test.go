package convo

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestCodec_Is_Registered(t *testing.T) {
	req := require.New(t)
	req.NotNil(encoding.GetCodecV2(CodecName))
}

func TestCodec_Conversation_List(t *testing.T) {
	req := require.New(t)
	codec := wireCodec{}
	at := time.Date(2024, 5, 1, 20, 30, 0, 123, time.UTC)

	// Given a list with a nested profile and one without
	in := &ConversationList{Conversations: []*Conversation{
		{
			CounterpartID:   "bob",
			Counterpart:     &Profile{UserID: "bob", Name: "Bob", Instruments: []string{"bass", "keys"}},
			LastMessageID:   "01HZX",
			LastMessageText: "jam tonight?",
			LastMessageAt:   at,
			HasUnread:       true,
		},
		{CounterpartID: "clara", LastMessageAt: at.Add(-time.Hour)},
	}}

	b, err := codec.Marshal(in)
	req.NoError(err)

	out := &ConversationList{}
	req.NoError(codec.Unmarshal(b, out))
	req.Len(out.Conversations, 2)
	req.Equal(in.Conversations[0], out.Conversations[0])
	req.Nil(out.Conversations[1].Counterpart)
	req.False(out.Conversations[1].HasUnread)
	req.True(at.Add(-time.Hour).Equal(out.Conversations[1].LastMessageAt))
}

func TestCodec_Empty_Cursor_Keeps_Presence(t *testing.T) {
	req := require.New(t)
	codec := wireCodec{}

	b, err := codec.Marshal(&GetThreadRequest{PeerID: "bob", Cursor: lo.ToPtr("")})
	req.NoError(err)
	out := &GetThreadRequest{}
	req.NoError(codec.Unmarshal(b, out))
	req.NotNil(out.Cursor)
	req.Empty(*out.Cursor)

	b, err = codec.Marshal(&GetThreadRequest{PeerID: "bob"})
	req.NoError(err)
	out = &GetThreadRequest{}
	req.NoError(codec.Unmarshal(b, out))
	req.Nil(out.Cursor)
}

func TestCodec_Reads_Protobuf_Layout(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 5, 1, 20, 30, 0, 0, time.UTC)
	ts, err := proto.Marshal(timestamppb.New(at))
	req.NoError(err)

	// Given a Message laid out field by field, with an unknown fixed64 field
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, "01HZX")
	b = protowire.AppendTag(b, 4, protowire.BytesType)
	b = protowire.AppendString(b, "hello")
	b = protowire.AppendTag(b, 99, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, 42)
	b = protowire.AppendTag(b, 5, protowire.BytesType)
	b = protowire.AppendBytes(b, ts)
	b = protowire.AppendTag(b, 6, protowire.VarintType)
	b = protowire.AppendVarint(b, 1)

	out := &Message{}
	req.NoError(wireCodec{}.Unmarshal(b, out))
	req.Equal(&Message{MessageID: "01HZX", Text: "hello", CreatedAt: at, IsRead: true}, out)
}

func TestCodec_Rejections(t *testing.T) {
	req := require.New(t)
	codec := wireCodec{}

	_, err := codec.Marshal("not a message")
	req.Error(err)

	req.Error(codec.Unmarshal([]byte{0x0a, 0x05, 'a'}, &Message{}))
	req.Error(codec.Unmarshal(nil, &struct{}{}))
}
