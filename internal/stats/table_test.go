package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/kanjicurve/internal/model"
)

func TestFormatTableAlignsWideCells(t *testing.T) {
	headers := []string{"Level", "Unique", "Kanji"}
	rows := [][]string{
		{"1", "12", "一二三"},
		{"10", "3", "水"},
	}
	rightAlign := map[int]bool{0: true, 1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Level Unique Kanji " {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "    1     12 一二三" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "   10      3 水    " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestRenderHistory(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderHistory(&buf, nil); err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No saved analyses." {
		t.Fatalf("unexpected empty output %q", buf.String())
	}

	buf.Reset()
	err := RenderHistory(&buf, []model.AnalysisSummary{
		{ID: 7, CreatedAt: time.Now(), Source: "吾輩は猫である.txt", TotalOccurrences: 1200, TotalUniqueKanji: 450},
	})
	if err != nil {
		t.Fatalf("RenderHistory failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "ID") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "1200") || !strings.Contains(lines[1], "吾輩は猫である.txt") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
