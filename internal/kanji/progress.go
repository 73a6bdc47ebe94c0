package kanji

import "math"

// Progress summarizes how much of a text a learner at a given level already knows.
type Progress struct {
	UserLevel         int
	Learned           int
	AboveLevel        int
	Outside           int
	LearnedPercent    float64
	AboveLevelPercent float64
	OutsidePercent    float64
}

// Progress splits the distinct kanji into those at or below userLevel (1-based),
// those above it and those outside every level. Percentages are of all distinct
// kanji and NaN when the text has none.
func (a TextAnalysis) Progress(userLevel int) Progress {
	if userLevel < 1 {
		userLevel = 1
	}
	if userLevel > NumLevels {
		userLevel = NumLevels
	}
	p := Progress{UserLevel: userLevel, Outside: len(a.OutsideLevels)}
	for i, bucket := range a.PerLevel {
		if i < userLevel {
			p.Learned += len(bucket)
		} else {
			p.AboveLevel += len(bucket)
		}
	}
	p.LearnedPercent = percentOf(p.Learned, a.TotalUniqueKanji)
	p.AboveLevelPercent = percentOf(p.AboveLevel, a.TotalUniqueKanji)
	p.OutsidePercent = percentOf(p.Outside, a.TotalUniqueKanji)
	return p
}

func percentOf(n, total int) float64 {
	if total == 0 {
		return math.NaN()
	}
	return float64(n) / float64(total) * 100
}
