package storage

import (
	"context"
	"convo-lab/contract"
	"convo-lab/domain/chat"
	"convo-lab/domain/event"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

func typingKey(from, to string) string {
	return fmt.Sprintf("typing:%s:%s", from, to)
}

// TypingRepository keeps one record per directed pair, overwritten in place.
type TypingRepository struct {
	db        *badger.DB
	publisher contract.Publisher
}

func NewTypingRepository(db *badger.DB, publisher contract.Publisher) *TypingRepository {
	return &TypingRepository{db: db, publisher: publisher}
}

func (t *TypingRepository) Upsert(ctx context.Context, state chat.TypingState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := t.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(typingKey(state.From, state.To)), encodeTyping(state))
	})
	if err != nil {
		return fmt.Errorf("upsert typing %s->%s: %w", state.From, state.To, err)
	}
	if t.publisher != nil {
		t.publisher.Publish(ctx, event.TypingChanged{State: state})
	}
	return nil
}

func (t *TypingRepository) Get(ctx context.Context, from, to string) (chat.TypingState, bool, error) {
	if err := ctx.Err(); err != nil {
		return chat.TypingState{}, false, err
	}
	var state chat.TypingState
	err := t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(typingKey(from, to)))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			state, err = decodeTyping(val)
			return err
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return chat.TypingState{}, false, nil
	}
	if err != nil {
		return chat.TypingState{}, false, err
	}
	return state, true, nil
}
