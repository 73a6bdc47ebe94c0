package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return st
}

func sampleAnalysis(t *testing.T) kanji.TextAnalysis {
	t.Helper()
	known := map[rune]struct{}{'水': {}, '火': {}, '山': {}}
	levels := make([]string, kanji.NumLevels)
	levels[0] = "山"
	levels[4] = "水"
	ref, err := kanji.NewReference(func(r rune) bool {
		_, ok := known[r]
		return ok
	}, levels)
	if err != nil {
		t.Fatalf("new reference: %v", err)
	}
	return kanji.Analyze("水火山水火水", ref)
}

func TestInsertAndLoadAnalysis(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	original := sampleAnalysis(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := st.InsertAnalysis(ctx, "novel.txt", created, original)
	if err != nil {
		t.Fatalf("insert analysis: %v", err)
	}

	summary, loaded, err := st.LoadAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("load analysis: %v", err)
	}
	if summary.Source != "novel.txt" || !summary.CreatedAt.Equal(created) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if loaded.TotalOccurrences != original.TotalOccurrences || loaded.TotalUniqueKanji != original.TotalUniqueKanji {
		t.Fatalf("totals differ: got %d/%d", loaded.TotalOccurrences, loaded.TotalUniqueKanji)
	}
	if string(loaded.PerLevel[4]) != "水" || string(loaded.PerLevel[0]) != "山" {
		t.Fatalf("unexpected buckets: %q %q", string(loaded.PerLevel[0]), string(loaded.PerLevel[4]))
	}
	if string(loaded.OutsideLevels) != "火" {
		t.Fatalf("unexpected outside kanji: %q", string(loaded.OutsideLevels))
	}
	if loaded.Frequency['水'].Occurrences != 3 || loaded.Frequency['火'].Level != kanji.OutsideLevels {
		t.Fatalf("unexpected frequency: %+v", loaded.Frequency)
	}
}

func TestListAnalysesNewestFirst(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	a := sampleAnalysis(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, source := range []string{"a.txt", "b.txt", "c.txt"} {
		if _, err := st.InsertAnalysis(ctx, source, base.Add(time.Duration(i)*time.Hour), a); err != nil {
			t.Fatalf("insert %s: %v", source, err)
		}
	}

	list, err := st.ListAnalyses(ctx, 2)
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(list) != 2 || list[0].Source != "c.txt" || list[1].Source != "b.txt" {
		t.Fatalf("unexpected list: %+v", list)
	}

	all, err := st.ListAnalyses(ctx, 0)
	if err != nil {
		t.Fatalf("list all analyses: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(all))
	}
}

func TestListAnalysesOrdersWithinSecond(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	a := sampleAnalysis(t)
	whole := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	half := whole.Add(500 * time.Millisecond)
	if _, err := st.InsertAnalysis(ctx, "later.txt", half, a); err != nil {
		t.Fatalf("insert later: %v", err)
	}
	if _, err := st.InsertAnalysis(ctx, "earlier.txt", whole, a); err != nil {
		t.Fatalf("insert earlier: %v", err)
	}

	list, err := st.ListAnalyses(ctx, 0)
	if err != nil {
		t.Fatalf("list analyses: %v", err)
	}
	if len(list) != 2 || list[0].Source != "later.txt" || list[1].Source != "earlier.txt" {
		t.Fatalf("expected later.txt first, got %+v", list)
	}
	if !list[0].CreatedAt.Equal(half) || !list[1].CreatedAt.Equal(whole) {
		t.Fatalf("unexpected timestamps %v %v", list[0].CreatedAt, list[1].CreatedAt)
	}
}

func TestLoadAnalysisNotFound(t *testing.T) {
	st := openTestStore(t)
	if _, _, err := st.LoadAnalysis(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAnalysis(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertAnalysis(ctx, "stdin", time.Now(), sampleAnalysis(t))
	if err != nil {
		t.Fatalf("insert analysis: %v", err)
	}
	if err := st.DeleteAnalysis(ctx, id); err != nil {
		t.Fatalf("delete analysis: %v", err)
	}
	if _, _, err := st.LoadAnalysis(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted analysis to be gone, got %v", err)
	}
	if err := st.DeleteAnalysis(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInsertEmptyAnalysis(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	id, err := st.InsertAnalysis(ctx, "empty", time.Now(), kanji.TextAnalysis{Frequency: map[rune]kanji.KanjiFrequency{}})
	if err != nil {
		t.Fatalf("insert empty analysis: %v", err)
	}
	_, loaded, err := st.LoadAnalysis(ctx, id)
	if err != nil {
		t.Fatalf("load empty analysis: %v", err)
	}
	if loaded.TotalOccurrences != 0 || len(loaded.Frequency) != 0 {
		t.Fatalf("expected empty analysis, got %+v", loaded)
	}
}
