// Package refdata loads the kanji membership list and level table from disk.
package refdata

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

// ErrLevelCount is returned when a level file does not hold exactly kanji.NumLevels levels.
var ErrLevelCount = errors.New("unexpected number of levels")

// KanjiSet is a membership set of known kanji.
type KanjiSet map[rune]struct{}

// Contains reports whether r is in the set.
func (s KanjiSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

// Load reads both reference files and builds a Reference. When kanjiPath is
// empty, any Han-script character or level member counts as a kanji.
func Load(kanjiPath, levelsPath string) (*kanji.Reference, error) {
	levels, err := LoadLevels(levelsPath)
	if err != nil {
		return nil, err
	}

	var isKanji func(rune) bool
	if kanjiPath == "" {
		members := KanjiSet{}
		for _, level := range levels {
			for _, r := range level {
				members[r] = struct{}{}
			}
		}
		isKanji = func(r rune) bool {
			return members.Contains(r) || unicode.Is(unicode.Han, r)
		}
		slog.Debug("Using Han script fallback for kanji membership", "level_members", len(members))
	} else {
		set, err := LoadKanjiList(kanjiPath)
		if err != nil {
			return nil, err
		}
		isKanji = set.Contains
		slog.Debug("Loaded kanji list", "path", kanjiPath, "kanji", len(set))
	}

	ref, err := kanji.NewReference(isKanji, levels)
	if err != nil {
		return nil, fmt.Errorf("failed to build reference: %w", err)
	}
	return ref, nil
}

// LoadKanjiList reads a UTF-8 file and treats every non-whitespace character as a kanji.
func LoadKanjiList(path string) (KanjiSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open kanji list: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only kanji list.
			_ = cerr
		}
	}()

	return ParseKanjiList(file)
}

// ParseKanjiList reads kanji from r, skipping whitespace and invalid bytes.
func ParseKanjiList(r io.Reader) (KanjiSet, error) {
	set := KanjiSet{}
	reader := bufio.NewReader(r)
	for {
		ch, _, err := reader.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read kanji list: %w", err)
		}
		if ch == unicode.ReplacementChar || unicode.IsSpace(ch) {
			continue
		}
		set[ch] = struct{}{}
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("kanji list is empty")
	}
	return set, nil
}

type yamlLevels struct {
	Levels []string `yaml:"levels"`
}

// LoadLevels reads the ordered level table. JSON files hold an array of strings;
// YAML files (.yaml, .yml) hold a "levels" list. Whitespace inside a level is ignored.
func LoadLevels(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("levels path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels: %w", err)
	}
	return ParseLevels(filepath.Ext(path), data)
}

// ParseLevels decodes level data; ext selects the format.
func ParseLevels(ext string, data []byte) ([]string, error) {
	var levels []string
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		var doc yamlLevels
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to decode levels: %w", err)
		}
		levels = doc.Levels
	default:
		if err := json.Unmarshal(data, &levels); err != nil {
			return nil, fmt.Errorf("failed to decode levels: %w", err)
		}
	}
	if len(levels) != kanji.NumLevels {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrLevelCount, kanji.NumLevels, len(levels))
	}
	for i, level := range levels {
		levels[i] = stripSpace(level)
	}
	return levels, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
