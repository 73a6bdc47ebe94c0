// Package kanji classifies kanji in text against a leveled reference vocabulary.
package kanji

import "fmt"

// NumLevels is the number of vocabulary levels in the reference curriculum.
const NumLevels = 60

// Level is a zero-based vocabulary level index.
type Level int

// OutsideLevels marks a kanji that belongs to no level bucket.
const OutsideLevels Level = -1

// Reference holds the read-only kanji membership test and level buckets.
// It is never mutated after construction and is safe for concurrent use.
type Reference struct {
	isKanji func(rune) bool
	levels  [NumLevels][]rune
	levelOf map[rune]Level
}

// NewReference builds a reference from a membership test and exactly NumLevels
// level strings, each holding the concatenated kanji of that level.
func NewReference(isKanji func(rune) bool, levels []string) (*Reference, error) {
	if isKanji == nil {
		return nil, fmt.Errorf("kanji membership test is required")
	}
	if len(levels) != NumLevels {
		return nil, fmt.Errorf("expected %d levels, got %d", NumLevels, len(levels))
	}
	ref := &Reference{
		isKanji: isKanji,
		levelOf: make(map[rune]Level),
	}
	for i, level := range levels {
		for _, r := range level {
			ref.levels[i] = append(ref.levels[i], r)
			// Buckets may overlap; the lowest index wins.
			if _, ok := ref.levelOf[r]; !ok {
				ref.levelOf[r] = Level(i)
			}
		}
	}
	return ref, nil
}

// IsKanji reports whether r is a known kanji.
func (ref *Reference) IsKanji(r rune) bool {
	return ref.isKanji(r)
}

// Classify resolves the level of r. The second result is false when r is not a kanji.
func (ref *Reference) Classify(r rune) (Level, bool) {
	if !ref.isKanji(r) {
		return 0, false
	}
	if level, ok := ref.levelOf[r]; ok {
		return level, true
	}
	return OutsideLevels, true
}

// LevelKanji returns a copy of the kanji listed for a level.
func (ref *Reference) LevelKanji(level Level) []rune {
	if level < 0 || level >= NumLevels {
		return nil
	}
	return append([]rune(nil), ref.levels[level]...)
}
