package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/abadojack/whatlanggo"
)

// Moderator masks dictionary words in outgoing messages.
// Each language gets its own automaton; text whose language cannot be told
// reliably is matched against the union of every dictionary.
type Moderator struct {
	log          *slog.Logger
	union        *goahocorasick.Machine
	byLanguage   map[string]*goahocorasick.Machine
	censoredChar rune
}

type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

// NewModerator initializes the Aho-Corasick automaton with a normalized version of the provided censored words list.
func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	union, err := buildMachine(censoredWords)
	if err != nil {
		return nil, err
	}
	return &Moderator{
		log:          log,
		union:        union,
		byLanguage:   make(map[string]*goahocorasick.Machine),
		censoredChar: censoredChar,
	}, nil
}

// NewLanguageModerator builds one automaton per ISO 639-1 code plus the union.
func NewLanguageModerator(dictionaries map[string][]string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	var all []string
	for _, words := range dictionaries {
		all = append(all, words...)
	}
	m, err := NewModerator(all, censoredChar, log)
	if err != nil {
		return nil, err
	}
	for lang, words := range dictionaries {
		machine, err := buildMachine(words)
		if err != nil {
			return nil, err
		}
		if machine != nil {
			m.byLanguage[lang] = machine
		}
	}
	return m, nil
}

// buildMachine returns nil when no pattern survives normalization.
func buildMachine(words []string) (*goahocorasick.Machine, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		// Pure noise normalizes to nothing and would match everywhere
		if normalized := normalizeRunes([]rune(word)); len(normalized) > 0 {
			patterns = append(patterns, normalized)
		}
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return m, nil
}

// Censor identifies forbidden patterns and replaces the original characters while preserving spacing.
// It also returns the normalized words that were found, in order of appearance.
func (m *Moderator) Censor(original string) (string, []string) {
	mapping := m.normalize(original)
	if len(mapping.Normalized) == 0 {
		return original, nil
	}

	matcher := m.matcherFor(original)
	if matcher == nil {
		return original, nil
	}

	origRunes := []rune(original)
	spans := matcher.MultiPatternSearch(mapping.Normalized, false)
	if len(spans) == 0 {
		return original, nil
	}

	var words []string
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)

		if normStart < 0 || normEnd > len(mapping.OrigIdx) {
			continue
		}
		words = append(words, string(span.Word))

		origStart := mapping.OrigIdx[normStart]
		origEnd := mapping.OrigIdx[normEnd-1] + 1

		for i := origStart; i < origEnd; i++ {
			origRunes[i] = m.censoredChar
		}
	}

	return string(origRunes), words
}

// Language returns the ISO 639-1 code used for text, empty when the union applies.
func (m *Moderator) Language(text string) string {
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	lang := info.Lang.Iso6391()
	if _, ok := m.byLanguage[lang]; !ok {
		return ""
	}
	return lang
}

func (m *Moderator) matcherFor(text string) *goahocorasick.Machine {
	if lang := m.Language(text); lang != "" {
		m.log.Debug("Moderating with language dictionary", "lang", lang)
		return m.byLanguage[lang]
	}
	return m.union
}

// normalize transforms the input string into a searchable format and tracks original rune positions.
func (m *Moderator) normalize(input string) TextMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

// normalizeRunes applies simplification and noise removal to a slice of runes.
func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet speak characters back to their standard alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters that should be ignored during the pattern matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
