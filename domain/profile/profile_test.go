package profile

import (
	"convo-lab/errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchFilter_Apply(t *testing.T) {
	req := require.New(t)
	profiles := []Profile{
		{UserID: "alice", Name: "Alice", Instruments: []string{"guitar"}, Genres: []string{"jazz"}},
		{UserID: "bob", Name: "Bob", Instruments: []string{"drums"}, Genres: []string{"rock", "jazz"}},
		{UserID: "clara", Name: "Clara", Instruments: []string{"guitar", "bass"}, Genres: []string{"rock"}},
	}

	tests := []struct {
		name     string
		filter   MatchFilter
		expected []string
	}{
		{name: "No criteria excludes only self", filter: MatchFilter{Self: "alice"}, expected: []string{"bob", "clara"}},
		{name: "Instrument", filter: MatchFilter{Self: "bob", Instrument: "guitar"}, expected: []string{"alice", "clara"}},
		{name: "Genre", filter: MatchFilter{Self: "clara", Genre: "jazz"}, expected: []string{"alice", "bob"}},
		{name: "Instrument and genre", filter: MatchFilter{Self: "alice", Instrument: "guitar", Genre: "rock"}, expected: []string{"clara"}},
		{name: "Nothing matches", filter: MatchFilter{Self: "alice", Instrument: "theremin"}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, p := range tt.filter.Apply(profiles) {
				ids = append(ids, p.UserID)
			}
			req.Equal(tt.expected, ids)
		})
	}
}

func TestProfile_Validate(t *testing.T) {
	req := require.New(t)

	valid := Profile{UserID: "alice", Name: "Alice", Instruments: []string{"guitar"}, SkillLevel: "advanced"}
	req.NoError(valid.Validate())

	missingName := Profile{UserID: "alice"}
	req.ErrorIs(missingName.Validate(), errors.ErrInvalidProfile)

	badID := Profile{UserID: "ali:ce", Name: "Alice"}
	req.ErrorIs(badID.Validate(), errors.ErrInvalidProfile)

	badLevel := Profile{UserID: "alice", Name: "Alice", SkillLevel: "god-tier"}
	req.ErrorIs(badLevel.Validate(), errors.ErrInvalidProfile)
}
