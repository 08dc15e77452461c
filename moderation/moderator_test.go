package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// Spaces are noise, so dictionary words must not appear across word
// boundaries of the sample sentences either.
func TestModerator_Censor(t *testing.T) {
	mod, err := NewModerator([]string{"sellout", "tonedeaf", "talentless"}, replacementChar, slog.Default())
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "plain word",
			input:    "your solo was talentless",
			expected: "your solo was **********",
			words:    []string{"talentless"},
		},
		{
			name:     "repeated word keeps the spacing",
			input:    "sellout sellout",
			expected: "******* *******",
			words:    []string{"sellout", "sellout"},
		},
		{
			name:     "leet speak split by dots",
			input:    "what a 5.3.l.l.0.u.t move",
			expected: "what a ************* move",
			words:    []string{"sellout"},
		},
		{
			name:     "uppercase spelled with dashes",
			input:    "T-O-N-E-D-E-A-F drummer",
			expected: "*************** drummer",
			words:    []string{"tonedeaf"},
		},
		{
			name:     "accented neighbours untouched",
			input:    "Un été sans tonedeaf",
			expected: "Un été sans ********",
			words:    []string{"tonedeaf"},
		},
		{
			name:     "trailing punctuation kept",
			input:    "such a sellout.",
			expected: "such a *******.",
			words:    []string{"sellout"},
		},
		{
			name:     "clean message",
			input:    "Rehearsal moved to 8pm",
			expected: "Rehearsal moved to 8pm",
		},
		{
			name: "empty message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			content, words := mod.Censor(tt.input)
			req.Equal(tt.expected, content)
			req.Equal(tt.words, words)
		})
	}
}

func TestModerator_Ignores_Noise_Only_Patterns(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a dictionary polluted with entries that normalize to nothing
	mod, err := NewModerator([]string{"...", "---", "", "sellout"}, replacementChar, log)
	req.NoError(err)

	// Then real words are still caught
	content, words := mod.Censor("nobody here is a sellout")
	req.Equal("nobody here is a *******", content)
	req.Equal([]string{"sellout"}, words)

	// And punctuation alone is left alone
	content, words = mod.Censor("Encore ...")
	req.Equal("Encore ...", content)
	req.Nil(words)
}

func TestModerator_Language_Dictionary(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a word that is only forbidden in french
	mod, err := NewLanguageModerator(map[string][]string{
		"en": {"snake"},
		"fr": {"blaireau"},
	}, replacementChar, log)
	req.NoError(err)

	// When a long french message is sent
	input := "Bonjour à tous, je voudrais vous dire que ce snake est vraiment un sale blaireau et que je ne veux plus jamais le revoir dans notre groupe de musique."
	content, words := mod.Censor(input)

	// Then only the french dictionary applies
	req.Equal("fr", mod.Language(input))
	req.Equal([]string{"blaireau"}, words)
	req.Contains(content, "snake")
	req.NotContains(content, "blaireau")
}

func TestModerator_Short_Text_Uses_Union(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewLanguageModerator(map[string][]string{
		"en": {"snake"},
		"fr": {"blaireau"},
	}, replacementChar, log)
	req.NoError(err)

	// When the language cannot be told
	content, words := mod.Censor("blaireau!")

	// Then every dictionary applies
	req.Equal("", mod.Language("blaireau!"))
	req.Equal("********!", content)
	req.Equal([]string{"blaireau"}, words)
}
