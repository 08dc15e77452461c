package runtime

import (
	"bufio"
	"bytes"
	"convo-lab/errors"
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed censored/*
var censoredFolder embed.FS

// CensoredData carries the result of the loading process including metadata for logging.
type CensoredData struct {
	Words      []string
	Languages  []string
	ByLanguage map[string][]string
}

// CensoredLoader is responsible for reading and parsing blacklisted words from embedded files.
type CensoredLoader struct {
	fs fs.FS
}

func NewCensoredLoader(f fs.FS) *CensoredLoader {
	return &CensoredLoader{fs: f}
}

// NewEmbeddedCensoredLoader reads the dictionaries shipped with the binary.
func NewEmbeddedCensoredLoader() *CensoredLoader {
	return NewCensoredLoader(censoredFolder)
}

// LoadAll reads every dir/{lang}.txt file, one word per line.
// The file name without extension is the ISO 639-1 language code.
func (l *CensoredLoader) LoadAll(dir string) (*CensoredData, error) {
	entries, err := fs.ReadDir(l.fs, dir)
	if err != nil {
		return nil, err
	}

	data := &CensoredData{ByLanguage: make(map[string][]string)}
	uniqueWords := make(map[string]struct{})

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".txt" {
			continue
		}
		lang := strings.TrimSuffix(entry.Name(), ".txt")

		raw, err := fs.ReadFile(l.fs, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		// Scanner handles \n and \r\n alike
		scanner := bufio.NewScanner(bytes.NewReader(raw))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			data.ByLanguage[lang] = append(data.ByLanguage[lang], line)
			uniqueWords[line] = struct{}{}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		data.Languages = append(data.Languages, lang)
	}

	if len(uniqueWords) == 0 {
		return nil, errors.ErrEmptyWords
	}

	data.Words = make([]string, 0, len(uniqueWords))
	for w := range uniqueWords {
		data.Words = append(data.Words, w)
	}
	sort.Strings(data.Words)
	return data, nil
}
