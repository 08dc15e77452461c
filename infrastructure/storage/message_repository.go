package storage

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	"convo-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

// MessageRepository persists messages in BadgerDB.
//
// Each message has one canonical record and two kinds of index entries:
//
//	msg:{id}                       canonical record, the only value that is ever rewritten
//	inbox:{user}:{ts19}:{id}       one per participant, drives Query
//	thread:{a}:{b}:{ts19}:{id}     one per pair (a < b), drives GetThread
//
// The 19-digit zero padded timestamp keeps lexicographic and chronological
// order identical; the id breaks ties between messages of the same nanosecond.
type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	publisher     contract.Publisher
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, publisher contract.Publisher, limitMessages *int) *MessageRepository {
	return &MessageRepository{db: db, log: log, publisher: publisher, limitMessages: limitMessages}
}

func messageKey(id string) []byte {
	return []byte("msg:" + id)
}

func inboxPrefix(user string) string {
	return fmt.Sprintf("inbox:%s:", user)
}

func threadPrefix(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("thread:%s:%s:", a, b)
}

func indexSuffix(m chat.Message) string {
	return fmt.Sprintf("%019d:%s", m.At.UnixNano(), m.ID)
}

// Append writes the record and all of its index entries in one transaction,
// then announces the change to both participants.
func (m *MessageRepository) Append(ctx context.Context, msg chat.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	suffix := indexSuffix(msg)
	err := m.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(messageKey(msg.ID), encodeMessage(msg)); err != nil {
			return err
		}
		for _, user := range lo.Uniq([]string{msg.SenderID, msg.ReceiverID}) {
			if err := txn.Set([]byte(inboxPrefix(user)+suffix), []byte(msg.ID)); err != nil {
				return err
			}
		}
		return txn.Set([]byte(threadPrefix(msg.SenderID, msg.ReceiverID)+suffix), []byte(msg.ID))
	})
	if err != nil {
		return fmt.Errorf("append message %s: %w", msg.ID, err)
	}
	m.publish(ctx, event.MessageAppended{Message: msg})
	return nil
}

// Query returns every message user takes part in, newest first.
// Records that cannot be decoded are logged and skipped.
func (m *MessageRepository) Query(ctx context.Context, user string) ([]chat.Message, error) {
	var messages []chat.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(inboxPrefix(user))
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(append(prefix, 0xFF)); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			msg, ok, err := m.load(txn, it.Item())
			if err != nil {
				return err
			}
			if ok {
				messages = append(messages, msg)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetThread pages through the messages exchanged between a and b, newest first.
// The returned cursor is nil when this page reaches the oldest message.
func (m *MessageRepository) GetThread(ctx context.Context, a, b string, cursor *string) ([]chat.Message, *string, error) {
	var messages []chat.Message
	var lastKey string
	var more bool
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := threadPrefix(a, b)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			seekKey = append(prefix, 0xFF)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()[prefixLen:]) == *cursor {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d message reached", *m.limitMessages))
				more = true
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[prefixLen:])
			msg, ok, err := m.load(txn, item)
			if err != nil {
				return err
			}
			if ok {
				messages = append(messages, msg)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if !more {
		return messages, nil, nil
	}
	return messages, &lastKey, nil
}

// GetByIDs returns the messages found for ids, in the order of ids.
// Unknown or undecodable ids are skipped.
func (m *MessageRepository) GetByIDs(ctx context.Context, ids []string) ([]chat.Message, error) {
	messages := make([]chat.Message, 0, len(ids))
	err := m.db.View(func(txn *badger.Txn) error {
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := txn.Get(messageKey(id))
			if stderrors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			var msg chat.Message
			err = item.Value(func(val []byte) error {
				msg, err = decodeMessage(val)
				return err
			})
			if err != nil {
				m.log.Warn("Skipping undecodable message", "id", id, "error", err)
				continue
			}
			messages = append(messages, msg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// BatchUpdateRead sets the read flag of every id in a single transaction.
// Either all records are rewritten or none is.
func (m *MessageRepository) BatchUpdateRead(ctx context.Context, ids []string, isRead bool) error {
	if len(ids) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	var updated []chat.Message
	err := m.db.Update(func(txn *badger.Txn) error {
		for _, id := range lo.Uniq(ids) {
			item, err := txn.Get(messageKey(id))
			if err != nil {
				return fmt.Errorf("message %s: %w", id, err)
			}
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			msg, err := decodeMessage(raw)
			if err != nil {
				return fmt.Errorf("message %s: %w", id, err)
			}
			msg.IsRead = isRead
			if err := txn.Set(messageKey(id), encodeMessage(msg)); err != nil {
				return err
			}
			updated = append(updated, msg)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("batch update read: %w", err)
	}

	byPair := lo.GroupBy(updated, func(msg chat.Message) string {
		return msg.ReceiverID + ":" + msg.SenderID
	})
	for _, group := range byPair {
		m.publish(ctx, event.MessagesRead{
			Reader: group[0].ReceiverID,
			Peer:   group[0].SenderID,
			IDs:    lo.Map(group, func(msg chat.Message, _ int) string { return msg.ID }),
		})
	}
	return nil
}

// load resolves an index entry to its canonical record.
// ok is false when the record is missing or undecodable.
func (m *MessageRepository) load(txn *badger.Txn, index *badger.Item) (chat.Message, bool, error) {
	id, err := index.ValueCopy(nil)
	if err != nil {
		return chat.Message{}, false, err
	}
	item, err := txn.Get(messageKey(string(id)))
	if err != nil {
		m.log.Warn("Dangling message index entry", "key", string(index.Key()), "error", err)
		return chat.Message{}, false, nil
	}
	var msg chat.Message
	err = item.Value(func(val []byte) error {
		msg, err = decodeMessage(val)
		return err
	})
	if err != nil {
		m.log.Warn("Skipping undecodable message", "id", string(id), "error", err)
		return chat.Message{}, false, nil
	}
	return msg, true, nil
}

func (m *MessageRepository) publish(ctx context.Context, e event.ChangeEvent) {
	if m.publisher == nil {
		return
	}
	m.publisher.Publish(ctx, e)
}

// ParseCursor validates a cursor received from a client.
func ParseCursor(cursor string) (*string, error) {
	if cursor == "" {
		return nil, nil
	}
	ts, id, ok := strings.Cut(cursor, ":")
	if !ok || len(ts) != 19 || id == "" {
		return nil, fmt.Errorf("%w: cursor %q", errors.ErrInvalidCommand, cursor)
	}
	return &cursor, nil
}
