package stats

import (
	"sort"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

// TopKanji returns the n most frequent kanji, ties broken by code point.
func TopKanji(a kanji.TextAnalysis, n int) []rune {
	if n <= 0 || len(a.Frequency) == 0 {
		return nil
	}
	all := make([]rune, 0, len(a.Frequency))
	for r := range a.Frequency {
		all = append(all, r)
	}
	return topByOccurrences(a, all, n)
}

// NextToLearn returns the n most frequent kanji from levels above userLevel (1-based),
// the ones a learner at that level would meet most often without knowing them.
func NextToLearn(a kanji.TextAnalysis, userLevel, n int) []rune {
	if n <= 0 {
		return nil
	}
	if userLevel < 0 {
		userLevel = 0
	}
	var candidates []rune
	for i := userLevel; i < kanji.NumLevels; i++ {
		candidates = append(candidates, a.PerLevel[i]...)
	}
	return topByOccurrences(a, candidates, n)
}

func topByOccurrences(a kanji.TextAnalysis, list []rune, n int) []rune {
	items := append([]rune(nil), list...)
	sort.Slice(items, func(i, j int) bool {
		oi := a.Frequency[items[i]].Occurrences
		oj := a.Frequency[items[j]].Occurrences
		if oi == oj {
			return items[i] < items[j]
		}
		return oi > oj
	})
	if n > len(items) {
		n = len(items)
	}
	if n == 0 {
		return nil
	}
	return items[:n]
}
