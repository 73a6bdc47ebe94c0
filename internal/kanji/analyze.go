package kanji

// KanjiFrequency captures how often a single kanji occurs in a text.
type KanjiFrequency struct {
	Occurrences int
	Fraction    float64
	Level       Level
}

// TextAnalysis is the aggregate report for one input text.
type TextAnalysis struct {
	TotalOccurrences int
	TotalUniqueKanji int
	Frequency        map[rune]KanjiFrequency
	// PerLevel holds the distinct kanji of each level in first-seen order.
	PerLevel [NumLevels][]rune
	// OutsideLevels holds distinct kanji found in no level, in first-seen order.
	OutsideLevels []rune
}

// Analyze scans text one code point at a time and aggregates every kanji by level.
func Analyze(text string, ref *Reference) TextAnalysis {
	analysis := TextAnalysis{
		Frequency: make(map[rune]KanjiFrequency),
	}
	for _, r := range text {
		level, ok := ref.Classify(r)
		if !ok {
			continue
		}
		analysis.TotalOccurrences++
		if freq, seen := analysis.Frequency[r]; seen {
			freq.Occurrences++
			analysis.Frequency[r] = freq
			continue
		}
		analysis.TotalUniqueKanji++
		analysis.Frequency[r] = KanjiFrequency{Occurrences: 1, Level: level}
		if level == OutsideLevels {
			analysis.OutsideLevels = append(analysis.OutsideLevels, r)
		} else {
			analysis.PerLevel[level] = append(analysis.PerLevel[level], r)
		}
	}
	analysis.resolveFractions()
	return analysis
}

func (a *TextAnalysis) resolveFractions() {
	if a.TotalOccurrences == 0 {
		return
	}
	total := float64(a.TotalOccurrences)
	for r, freq := range a.Frequency {
		freq.Fraction = float64(freq.Occurrences) / total
		a.Frequency[r] = freq
	}
}

// LevelOccurrences sums the occurrences of every kanji in a level.
func (a TextAnalysis) LevelOccurrences(level Level) int {
	if level < 0 || level >= NumLevels {
		return 0
	}
	sum := 0
	for _, r := range a.PerLevel[level] {
		sum += a.Frequency[r].Occurrences
	}
	return sum
}

// Rebuild assembles an analysis from stored per-kanji occurrence counts.
// Entries are placed in their buckets in the order given.
func Rebuild(entries []StoredKanji) TextAnalysis {
	analysis := TextAnalysis{
		Frequency: make(map[rune]KanjiFrequency, len(entries)),
	}
	for _, e := range entries {
		if e.Occurrences <= 0 {
			continue
		}
		if _, dup := analysis.Frequency[e.Kanji]; dup {
			continue
		}
		level := e.Level
		if level < 0 || level >= NumLevels {
			level = OutsideLevels
		}
		analysis.TotalOccurrences += e.Occurrences
		analysis.TotalUniqueKanji++
		analysis.Frequency[e.Kanji] = KanjiFrequency{Occurrences: e.Occurrences, Level: level}
		if level == OutsideLevels {
			analysis.OutsideLevels = append(analysis.OutsideLevels, e.Kanji)
		} else {
			analysis.PerLevel[level] = append(analysis.PerLevel[level], e.Kanji)
		}
	}
	analysis.resolveFractions()
	return analysis
}

// StoredKanji is the persisted form of a single frequency entry.
type StoredKanji struct {
	Kanji       rune
	Occurrences int
	Level       Level
}

// Entries flattens the analysis into stored form, levels first then outside kanji,
// each in first-seen order.
func (a TextAnalysis) Entries() []StoredKanji {
	out := make([]StoredKanji, 0, len(a.Frequency))
	for _, bucket := range a.PerLevel {
		for _, r := range bucket {
			f := a.Frequency[r]
			out = append(out, StoredKanji{Kanji: r, Occurrences: f.Occurrences, Level: f.Level})
		}
	}
	for _, r := range a.OutsideLevels {
		f := a.Frequency[r]
		out = append(out, StoredKanji{Kanji: r, Occurrences: f.Occurrences, Level: OutsideLevels})
	}
	return out
}
