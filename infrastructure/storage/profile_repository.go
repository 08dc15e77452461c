package storage

import (
	"context"
	"convo-lab/domain/profile"
	"convo-lab/errors"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

const profilePrefix = "profile:"

type ProfileRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewProfileRepository(db *badger.DB, log *slog.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, log: log}
}

// Fetch returns errors.ErrProfileNotFound when userID has no profile.
func (p *ProfileRepository) Fetch(ctx context.Context, userID string) (profile.Profile, error) {
	if err := ctx.Err(); err != nil {
		return profile.Profile{}, err
	}
	var result profile.Profile
	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profilePrefix + userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = decodeProfile(val)
			return err
		})
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return profile.Profile{}, fmt.Errorf("%w: %s", errors.ErrProfileNotFound, userID)
	}
	if err != nil {
		return profile.Profile{}, err
	}
	return result, nil
}

// Save overwrites the whole profile of p.UserID.
func (p *ProfileRepository) Save(ctx context.Context, pr profile.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profilePrefix+pr.UserID), encodeProfile(pr))
	})
}

// List returns every stored profile ordered by user id.
func (p *ProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	var profiles []profile.Profile
	err := p.db.View(func(txn *badger.Txn) error {
		prefix := []byte(profilePrefix)
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			err := item.Value(func(val []byte) error {
				pr, err := decodeProfile(val)
				if err != nil {
					p.log.Warn("Skipping undecodable profile", "key", string(item.Key()), "error", err)
					return nil
				}
				profiles = append(profiles, pr)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
