package storage

import (
	"context"
	"convo-lab/domain/profile"
	"convo-lab/errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfileRepository_Save_And_Fetch(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewProfileRepository(openDB(t), slog.Default())
	alice := profile.Profile{
		UserID:      "alice",
		Name:        "Alice",
		Instruments: []string{"guitar", "voice"},
		Genres:      []string{"jazz"},
		SkillLevel:  "advanced",
		Bio:         "Looking for a drummer",
	}

	req.NoError(repository.Save(ctx, alice))

	fetched, err := repository.Fetch(ctx, "alice")
	req.NoError(err)
	req.Equal(alice, fetched)
}

func TestProfileRepository_Fetch_Not_Found(t *testing.T) {
	req := require.New(t)
	repository := NewProfileRepository(openDB(t), slog.Default())

	_, err := repository.Fetch(context.Background(), "ghost")
	req.ErrorIs(err, errors.ErrProfileNotFound)
}

func TestProfileRepository_List(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repository := NewProfileRepository(openDB(t), slog.Default())
	for _, id := range []string{"clara", "alice", "bob"} {
		req.NoError(repository.Save(ctx, profile.Profile{UserID: id, Name: id}))
	}

	profiles, err := repository.List(ctx)
	req.NoError(err)
	req.Len(profiles, 3)
	req.Equal("alice", profiles[0].UserID)
	req.Equal("clara", profiles[2].UserID)
}
