package moderation

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Startup cost of a large dictionary split across languages.
func Test_Moderation_Build_Large_Dictionary(t *testing.T) {
	req := require.New(t)
	wordCount := 100_000

	dictionaries := map[string][]string{}
	for i := 0; i < wordCount; i++ {
		lang := "en"
		if i%2 == 0 {
			lang = "fr"
		}
		dictionaries[lang] = append(dictionaries[lang], "zz"+letters(i))
	}

	start := time.Now()
	mod, err := NewLanguageModerator(dictionaries, '*', slog.Default())
	req.NoError(err)
	t.Logf("Building %d automata over %d words: %v", len(dictionaries)+1, wordCount, time.Since(start))

	content, words := mod.Censor("hello zzbc")
	req.Contains(content, "hello ***")
	req.NotEmpty(words)
}

// letters spells i in base 26 with a..z.
func letters(i int) string {
	out := []byte{byte('a' + i%26)}
	for i /= 26; i > 0; i /= 26 {
		out = append([]byte{byte('a' + i%26)}, out...)
	}
	return string(out)
}

func BenchmarkModerator_Censor(b *testing.B) {
	mod, err := NewModerator([]string{"badger", "snake", "mushroom"}, '*', slog.Default())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		mod.Censor("S-N-A-K-E is a B.A.D.G.E.R and that is fine")
	}
}
