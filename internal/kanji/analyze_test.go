package kanji

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func testReference(t *testing.T, known string, assign map[int]string) *Reference {
	t.Helper()
	set := map[rune]struct{}{}
	for _, r := range known {
		set[r] = struct{}{}
	}
	levels := make([]string, NumLevels)
	for idx, chars := range assign {
		levels[idx] = chars
	}
	ref, err := NewReference(func(r rune) bool {
		_, ok := set[r]
		return ok
	}, levels)
	if err != nil {
		t.Fatalf("new reference: %v", err)
	}
	return ref
}

func TestAnalyzeScenario(t *testing.T) {
	ref := testReference(t, "水火", map[int]string{2: "水"})
	a := Analyze("水水火", ref)

	if a.TotalOccurrences != 3 {
		t.Fatalf("expected 3 occurrences, got %d", a.TotalOccurrences)
	}
	if a.TotalUniqueKanji != 2 {
		t.Fatalf("expected 2 unique kanji, got %d", a.TotalUniqueKanji)
	}
	water := a.Frequency['水']
	if water.Occurrences != 2 || math.Abs(water.Fraction-2.0/3.0) > 1e-9 || water.Level != 2 {
		t.Fatalf("unexpected entry for 水: %+v", water)
	}
	fire := a.Frequency['火']
	if fire.Occurrences != 1 || math.Abs(fire.Fraction-1.0/3.0) > 1e-9 || fire.Level != OutsideLevels {
		t.Fatalf("unexpected entry for 火: %+v", fire)
	}
	if string(a.PerLevel[2]) != "水" {
		t.Fatalf("expected level 3 bucket to hold 水, got %q", string(a.PerLevel[2]))
	}
	if string(a.OutsideLevels) != "火" {
		t.Fatalf("expected 火 outside levels, got %q", string(a.OutsideLevels))
	}
}

func TestAnalyzeEmptyAndNonKanji(t *testing.T) {
	ref := testReference(t, "水火", map[int]string{0: "水"})
	for _, input := range []string{"", "Hello, world! 123 ひらがな"} {
		a := Analyze(input, ref)
		if a.TotalOccurrences != 0 || a.TotalUniqueKanji != 0 {
			t.Fatalf("%q: expected zero totals, got %d/%d", input, a.TotalOccurrences, a.TotalUniqueKanji)
		}
		if len(a.Frequency) != 0 {
			t.Fatalf("%q: expected empty frequency map", input)
		}
		for i, bucket := range a.PerLevel {
			if len(bucket) != 0 {
				t.Fatalf("%q: expected empty bucket %d", input, i)
			}
		}
		if len(a.OutsideLevels) != 0 {
			t.Fatalf("%q: expected no outside kanji", input)
		}
		series := DeriveSeries(a, UnitUnique, AxisPerLevel)
		for i, v := range series {
			if v != 0 {
				t.Fatalf("%q: expected zero at level %d, got %v", input, i+1, v)
			}
		}
	}
}

func TestAnalyzeInvariants(t *testing.T) {
	ref := testReference(t, "一二三四五六七八九十山川日月火水", map[int]string{
		0:  "一二三",
		1:  "山川三",
		5:  "日月",
		59: "十",
	})
	text := strings.Repeat("一二三山川日月火水十 abc。", 3) + "四五六七八九"
	a := Analyze(text, ref)

	if a.TotalUniqueKanji != len(a.Frequency) {
		t.Fatalf("unique count %d does not match map size %d", a.TotalUniqueKanji, len(a.Frequency))
	}
	var sum float64
	for _, f := range a.Frequency {
		sum += f.Fraction
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("expected fractions to sum to 1, got %v", sum)
	}
	for r := range a.Frequency {
		count := 0
		for _, bucket := range a.PerLevel {
			for _, c := range bucket {
				if c == r {
					count++
				}
			}
		}
		for _, c := range a.OutsideLevels {
			if c == r {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("expected %c in exactly one bucket, found %d", r, count)
		}
	}
	// 三 is listed in levels 1 and 2; the lower one wins.
	if a.Frequency['三'].Level != 0 {
		t.Fatalf("expected 三 at level 0, got %d", a.Frequency['三'].Level)
	}
	if string(a.PerLevel[1]) != "山川" {
		t.Fatalf("unexpected level 2 bucket %q", string(a.PerLevel[1]))
	}
	if string(a.OutsideLevels) != "火水四五六七八九" {
		t.Fatalf("unexpected outside kanji %q", string(a.OutsideLevels))
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	ref := testReference(t, "一二三山", map[int]string{0: "一", 3: "山"})
	text := "山一二山三一"
	first := Analyze(text, ref)
	second := Analyze(text, ref)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical analyses, got %+v and %+v", first, second)
	}
}

func TestRebuildRoundTrip(t *testing.T) {
	ref := testReference(t, "一二三山火", map[int]string{0: "一", 3: "山"})
	a := Analyze("山一二山三一火", ref)
	rebuilt := Rebuild(a.Entries())
	if !reflect.DeepEqual(a, rebuilt) {
		t.Fatalf("rebuilt analysis differs:\n%+v\n%+v", a, rebuilt)
	}
}

func TestNewReferenceRejectsLevelCount(t *testing.T) {
	if _, err := NewReference(func(rune) bool { return true }, []string{"一"}); err == nil {
		t.Fatalf("expected error for wrong level count")
	}
}

func TestProgress(t *testing.T) {
	ref := testReference(t, "一二山川火", map[int]string{0: "一二", 4: "山", 10: "川"})
	a := Analyze("一二山川火", ref)

	p := a.Progress(5)
	if p.Learned != 3 || p.AboveLevel != 1 || p.Outside != 1 {
		t.Fatalf("unexpected progress: %+v", p)
	}
	if math.Abs(p.LearnedPercent-60) > 1e-9 || math.Abs(p.OutsidePercent-20) > 1e-9 {
		t.Fatalf("unexpected percentages: %+v", p)
	}
	if got := a.Progress(0).UserLevel; got != 1 {
		t.Fatalf("expected level clamped to 1, got %d", got)
	}
	if got := a.Progress(99).UserLevel; got != NumLevels {
		t.Fatalf("expected level clamped to %d, got %d", NumLevels, got)
	}

	empty := Analyze("", ref).Progress(1)
	if !math.IsNaN(empty.LearnedPercent) {
		t.Fatalf("expected NaN percentage for empty analysis, got %v", empty.LearnedPercent)
	}
}
