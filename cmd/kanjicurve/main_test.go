package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

func setupDataDirs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))

	levels := make([]string, kanji.NumLevels)
	levels[0] = "一二三"
	levels[1] = "水火"
	data, err := json.Marshal(levels)
	if err != nil {
		t.Fatalf("marshal levels: %v", err)
	}
	dir := filepath.Join(root, "config", "kanjicurve", "data")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir data: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "levels.json"), data, 0o644); err != nil {
		t.Fatalf("write levels: %v", err)
	}
	return root
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeFile(t *testing.T) {
	root := setupDataDirs(t)
	input := filepath.Join(root, "novel.txt")
	if err := os.WriteFile(input, []byte("一一水森。漢字"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	out, err := runCLI(t, "analyze", "--table", "--outside", "--width", "120", input)
	if err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out)
	}
	for _, want := range []string{"Total kanji: 6", "Total unique kanji: 5", "Per-Level", "Kanji outside levels (3)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSaveHistoryShowAndExport(t *testing.T) {
	root := setupDataDirs(t)
	input := filepath.Join(root, "story.txt")
	if err := os.WriteFile(input, []byte("一二水"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	if out, err := runCLI(t, "analyze", "--save", input); err != nil {
		t.Fatalf("analyze --save failed: %v\n%s", err, out)
	}

	out, err := runCLI(t, "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "story.txt") {
		t.Fatalf("expected saved analysis in history:\n%s", out)
	}

	out, err = runCLI(t, "show", "1")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "Analysis #1 (story.txt") || !strings.Contains(out, "Total kanji: 3") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	csvPath := filepath.Join(root, "out", "levels.csv")
	if out, err := runCLI(t, "export", "--id", "1", "--out", csvPath); err != nil {
		t.Fatalf("export failed: %v\n%s", err, out)
	}
	data, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != kanji.NumLevels+1 || lines[1] != "1,2,66.67,2,66.67" {
		t.Fatalf("unexpected csv:\n%s", data)
	}
}

func TestShowUnknownID(t *testing.T) {
	setupDataDirs(t)
	if _, err := runCLI(t, "show", "99"); err == nil {
		t.Fatalf("expected error for unknown id")
	}
}

func TestAnalyzeMissingLevels(t *testing.T) {
	root := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	_, err := runCLI(t, "analyze")
	if err == nil || !strings.Contains(err.Error(), "kanjicurve data --levels-url") {
		t.Fatalf("expected download hint, got %v", err)
	}
}

func TestReadInputConcatenatesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("一"), 0o644); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, []byte("二"), 0o644); err != nil {
		t.Fatalf("write b: %v", err)
	}
	text, source, err := readInput(strings.NewReader("ignored"), []string{a, b})
	if err != nil {
		t.Fatalf("readInput failed: %v", err)
	}
	if text != "一二" || source != "a.txt, b.txt" {
		t.Fatalf("unexpected input %q from %q", text, source)
	}

	text, source, err = readInput(strings.NewReader("三"), nil)
	if err != nil {
		t.Fatalf("readInput stdin failed: %v", err)
	}
	if text != "三" || source != stdinSource {
		t.Fatalf("unexpected stdin input %q from %q", text, source)
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("#12"); err != nil || id != 12 {
		t.Fatalf("unexpected parse result %d, %v", id, err)
	}
	for _, bad := range []string{"0", "-3", "abc"} {
		if _, err := parseID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestDefaultLevelsDest(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	if got := defaultLevelsDest("https://example.com/levels.yml"); got != filepath.Join("/cfg", "kanjicurve", "data", "levels.yaml") {
		t.Fatalf("unexpected yaml dest %q", got)
	}
	if got := defaultLevelsDest("https://example.com/levels"); got != filepath.Join("/cfg", "kanjicurve", "data", "levels.json") {
		t.Fatalf("unexpected json dest %q", got)
	}
}

func TestShowHasNoSaveFlag(t *testing.T) {
	root := newRootCmd()
	show, _, err := root.Find([]string{"show"})
	if err != nil {
		t.Fatalf("find show: %v", err)
	}
	if show.Flags().Lookup("save") != nil {
		t.Fatalf("expected show to have no --save flag")
	}
	for _, name := range []string{"table", "outside"} {
		if show.Flags().Lookup(name) == nil {
			t.Fatalf("expected show to have --%s", name)
		}
	}
	setupDataDirs(t)
	if _, err := runCLI(t, "show", "1", "--save"); err == nil || !strings.Contains(err.Error(), "unknown flag") {
		t.Fatalf("expected unknown flag error, got %v", err)
	}
}

func TestNegativeIDRejected(t *testing.T) {
	root := setupDataDirs(t)
	out := filepath.Join(root, "levels.csv")
	_, err := runCLI(t, "export", "--id=-1", "--out", out)
	if err == nil || !strings.Contains(err.Error(), "invalid analysis id -1") {
		t.Fatalf("expected invalid id error, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("expected no export file, got %v", statErr)
	}
}
