// Package search keeps a full-text index of message bodies.
// The index is derived data: it can be dropped and rebuilt from the message store.
package search

import (
	"context"
	"convo-lab/domain/chat"
	"fmt"
	"log/slog"

	"github.com/blugelabs/bluge"
)

const (
	fieldText        = "text"
	fieldParticipant = "participant"
	fieldAt          = "at"
)

type MessageIndex struct {
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

// Index stores or replaces msg under its id.
func (i *MessageIndex) Index(msg chat.Message) error {
	doc := bluge.NewDocument(msg.ID).
		AddField(bluge.NewTextField(fieldText, msg.Text)).
		AddField(bluge.NewKeywordField(fieldParticipant, msg.SenderID)).
		AddField(bluge.NewKeywordField(fieldParticipant, msg.ReceiverID)).
		AddField(bluge.NewDateTimeField(fieldAt, msg.At))
	if err := i.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index message %s: %w", msg.ID, err)
	}
	return nil
}

// Search returns the ids of the messages self takes part in whose text
// matches query, best match first.
func (i *MessageIndex) Search(ctx context.Context, self, query string, limit int) ([]string, error) {
	reader, err := i.writer.Reader()
	if err != nil {
		return nil, fmt.Errorf("open index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	q := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(query).SetField(fieldText)).
		AddMust(bluge.NewTermQuery(self).SetField(fieldParticipant))

	matches, err := reader.Search(ctx, bluge.NewTopNSearch(limit, q))
	if err != nil {
		return nil, err
	}

	var ids []string
	match, err := matches.Next()
	for err == nil && match != nil {
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				ids = append(ids, string(value))
				return false
			}
			return true
		})
		if err != nil {
			break
		}
		match, err = matches.Next()
	}
	if err != nil {
		return nil, err
	}
	i.log.Debug("Search done", "user_id", self, "query", query, "hits", len(ids))
	return ids, nil
}
