// Package main provides the CLI entrypoint for kanjicurve.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/kanjicurve/internal/config"
	"github.com/verte-zerg/kanjicurve/internal/export"
	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
	"github.com/verte-zerg/kanjicurve/internal/refdata"
	"github.com/verte-zerg/kanjicurve/internal/stats"
	"github.com/verte-zerg/kanjicurve/internal/statsui"
	"github.com/verte-zerg/kanjicurve/internal/store"
)

const (
	defaultLevel        = 1
	defaultPlotHeight   = 12
	defaultHistoryLimit = 20
	defaultCSVName      = "kanji-info.csv"
	defaultPNGName      = "kanji-chart.png"
	stdinSource         = "stdin"
)

var (
	kanjiPath  string
	levelsPath string
	userLevel  int
	verbose    bool

	outWidth       int
	outHeight      int
	outColor       bool
	chartTitle     string
	cumulativeUnit string
	perLevelUnit   string

	analyzeTable   bool
	analyzeOutside bool
	analyzeSave    bool

	viewID int64

	exportFormat     string
	exportOut        string
	exportCumulative bool
	exportID         int64

	historyLimit int

	dataKanjiURL  string
	dataLevelsURL string
	dataForce     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "kanjicurve [file...]",
		Short:             "Measure how the kanji of a text spread over learning levels",
		SilenceUsage:      true,
		SilenceErrors:     false,
		Args:              cobra.ArbitraryArgs,
		PersistentPreRunE: setupLogging,
		RunE:              runAnalyzeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&kanjiPath, "kanji", "", "kanji list file (default: Han script fallback)")
	flags.StringVar(&levelsPath, "levels", "", "level table file (.json, .yaml)")
	flags.IntVar(&userLevel, "level", defaultLevel, "your current level (1-60)")
	flags.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flags.IntVar(&outWidth, "width", 0, "output width (default: terminal width)")
	flags.IntVar(&outHeight, "height", defaultPlotHeight, "plot height in rows")
	flags.BoolVar(&outColor, "color", false, "force colored plot output")
	flags.StringVar(&chartTitle, "title", "", "chart title")
	flags.StringVar(&cumulativeUnit, "cumulative-unit", "", "cumulative axis unit (unique, total, unique-percent, total-percent)")
	flags.StringVar(&perLevelUnit, "per-level-unit", "", "per-level axis unit (unique, total, unique-percent, total-percent)")
	addAnalyzeFlags(rootCmd)

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newViewCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDataCmd())

	return rootCmd
}

func setupLogging(_ *cobra.Command, _ []string) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func addAnalyzeFlags(cmd *cobra.Command) {
	addReportFlags(cmd)
	cmd.Flags().BoolVar(&analyzeSave, "save", false, "save the analysis to history")
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&analyzeTable, "table", false, "print the per-level table")
	cmd.Flags().BoolVar(&analyzeOutside, "outside", false, "print kanji outside every level")
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file...]",
		Short: "Analyze text from files or stdin",
		RunE:  runAnalyzeCmd,
	}
	addAnalyzeFlags(cmd)
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	a, source, err := analyzeInput(cmd, cfg, args)
	if err != nil {
		return err
	}

	summary := model.AnalysisSummary{Source: source}
	if analyzeSave {
		id, err := saveAnalysis(cmd.Context(), source, a)
		if err != nil {
			return err
		}
		summary.ID = id
		logErrf("Saved analysis #%d\n", id)
	}

	report := stats.BuildReport(summary, a, cfg)
	sections := stats.Sections{Table: analyzeTable, Outside: analyzeOutside}
	if err := stats.RenderReport(cmd.OutOrStdout(), report, cfg, sections); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file...]",
		Short: "Explore an analysis interactively",
		RunE:  runViewCmd,
	}
	cmd.Flags().Int64Var(&viewID, "id", 0, "view a saved analysis instead of new input")
	return cmd
}

func runViewCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	summary, a, err := resolveAnalysis(cmd, cfg, args, viewID)
	if err != nil {
		return err
	}
	ui := statsui.NewModel(summary, a, cfg)
	program := tea.NewProgram(ui, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file...]",
		Short: "Export an analysis as CSV or PNG",
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "csv", "export format (csv, png)")
	cmd.Flags().StringVar(&exportOut, "out", "", "output path, '-' for stdout (default: kanji-info.csv or kanji-chart.png)")
	cmd.Flags().BoolVar(&exportCumulative, "cumulative", false, "export running totals in CSV")
	cmd.Flags().Int64Var(&exportID, "id", 0, "export a saved analysis instead of new input")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(strings.TrimSpace(exportFormat))
	if format != "csv" && format != "png" {
		return fmt.Errorf("--format must be csv or png")
	}
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	_, a, err := resolveAnalysis(cmd, cfg, args, exportID)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		out = defaultCSVName
		if format == "png" {
			out = defaultPNGName
		}
	}
	write := func(w io.Writer) error {
		if format == "png" {
			return export.WritePNG(w, a, cfg.Chart, 0, 0)
		}
		axis := kanji.AxisPerLevel
		if exportCumulative {
			axis = kanji.AxisCumulative
		}
		return export.WriteCSV(w, a, axis)
	}

	if out == "-" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return exportError(err)
		}
		return nil
	}
	if err := writeFileAtomic(out, write); err != nil {
		return exportError(err)
	}
	logErrf("Wrote %s\n", out)
	return nil
}

func exportError(err error) error {
	if errors.Is(err, export.ErrNoData) {
		return fmt.Errorf("nothing to export: the input has no kanji for the enabled chart axes")
	}
	return fmt.Errorf("failed to export: %w", err)
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved analyses",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLimit, "limit", defaultHistoryLimit, "number of analyses to list (0 for all)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	analyses, err := st.ListAnalyses(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list analyses: %w", err)
	}
	if err := stats.RenderHistory(cmd.OutOrStdout(), analyses); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Print a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	addReportFlags(cmd)
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	report, err := stats.LoadReport(cmd.Context(), st, id, cfg)
	if err != nil {
		return fmt.Errorf("failed to load analysis: %w", err)
	}
	sections := stats.Sections{Table: analyzeTable, Outside: analyzeOutside}
	if err := stats.RenderReport(cmd.OutOrStdout(), report, cfg, sections); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a saved analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  runDeleteCmd,
	}
}

func runDeleteCmd(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	if err := st.DeleteAnalysis(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	logErrf("Deleted analysis #%d\n", id)
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Download reference data (kanji list and level table)",
		Args:  cobra.NoArgs,
		RunE:  runDataCmd,
	}
	cmd.Flags().StringVar(&dataKanjiURL, "kanji-url", "", "URL of the kanji list")
	cmd.Flags().StringVar(&dataLevelsURL, "levels-url", "", "URL of the level table")
	cmd.Flags().BoolVar(&dataForce, "force", false, "overwrite existing files")
	return cmd
}

func runDataCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "kanji-url", &dataKanjiURL, fileCfg.Data.KanjiURL)
	applyStringConfig(cmd, "levels-url", &dataLevelsURL, fileCfg.Data.LevelsURL)
	applyStringConfig(cmd, "kanji", &kanjiPath, fileCfg.Data.Kanji)
	applyStringConfig(cmd, "levels", &levelsPath, fileCfg.Data.Levels)
	if dataKanjiURL == "" && dataLevelsURL == "" {
		return fmt.Errorf("nothing to download: set --kanji-url and/or --levels-url (or [data] in config)")
	}

	type download struct {
		url      string
		dest     string
		validate refdata.Validator
	}
	var downloads []download
	if dataKanjiURL != "" {
		dest := kanjiPath
		if dest == "" {
			dest = config.DefaultKanjiPath()
		}
		downloads = append(downloads, download{url: dataKanjiURL, dest: dest, validate: refdata.KanjiListValidator()})
	}
	if dataLevelsURL != "" {
		dest := levelsPath
		if dest == "" {
			dest = defaultLevelsDest(dataLevelsURL)
		}
		downloads = append(downloads, download{url: dataLevelsURL, dest: dest, validate: refdata.LevelsValidator(dest)})
	}

	for _, d := range downloads {
		if !dataForce {
			if _, err := os.Stat(d.dest); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", d.dest)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to stat %s: %w", d.dest, err)
			}
		}
		logErrf("Downloading %s...\n", d.url)
		if err := refdata.Fetch(cmd.Context(), d.url, d.dest, d.validate); err != nil {
			return fmt.Errorf("failed to download reference data: %w", err)
		}
		logErrf("Wrote %s\n", d.dest)
	}
	return nil
}

// defaultLevelsDest keeps the YAML extension of a YAML level table so it is
// parsed correctly later.
func defaultLevelsDest(url string) string {
	switch strings.ToLower(filepath.Ext(url)) {
	case ".yaml", ".yml":
		return filepath.Join(config.DefaultDataDir(), "levels.yaml")
	}
	return config.DefaultLevelsPath()
}

func loadAnalyzeConfig(cmd *cobra.Command) (model.AnalyzeConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.AnalyzeConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "kanji", &kanjiPath, fileCfg.Data.Kanji)
	applyStringConfig(cmd, "levels", &levelsPath, fileCfg.Data.Levels)
	applyIntConfig(cmd, "level", &userLevel, fileCfg.Analyze.Level)
	applyIntConfig(cmd, "width", &outWidth, fileCfg.Analyze.Width)
	applyIntConfig(cmd, "height", &outHeight, fileCfg.Analyze.Height)
	applyBoolConfig(cmd, "color", &outColor, fileCfg.Analyze.Color)

	chart, err := fileCfg.Chart.ApplyChart(model.DefaultChartSettings())
	if err != nil {
		return model.AnalyzeConfig{}, fmt.Errorf("invalid chart config: %w", err)
	}
	if cmd.Flags().Changed("title") {
		chart.Title = chartTitle
	}
	if cmd.Flags().Changed("cumulative-unit") {
		unit, err := kanji.ParseUnit(cumulativeUnit)
		if err != nil {
			return model.AnalyzeConfig{}, fmt.Errorf("invalid --cumulative-unit: %w", err)
		}
		chart.Cumulative.Unit = unit
	}
	if cmd.Flags().Changed("per-level-unit") {
		unit, err := kanji.ParseUnit(perLevelUnit)
		if err != nil {
			return model.AnalyzeConfig{}, fmt.Errorf("invalid --per-level-unit: %w", err)
		}
		chart.PerLevel.Unit = unit
	}

	cfg := model.AnalyzeConfig{
		KanjiPath:  resolveKanjiPath(kanjiPath),
		LevelsPath: resolveLevelsPath(levelsPath),
		UserLevel:  userLevel,
		Width:      outWidth,
		Height:     outHeight,
		Color:      outColor,
		Chart:      chart,
	}
	if err := validateConfig(cfg); err != nil {
		return model.AnalyzeConfig{}, err
	}
	return cfg, nil
}

func validateConfig(cfg model.AnalyzeConfig) error {
	if cfg.UserLevel < 1 || cfg.UserLevel > kanji.NumLevels {
		return fmt.Errorf("--level must be between 1 and %d", kanji.NumLevels)
	}
	if cfg.Width < 0 {
		return fmt.Errorf("--width must be >= 0")
	}
	if cfg.Height <= 0 {
		return fmt.Errorf("--height must be > 0")
	}
	return nil
}

// resolveKanjiPath falls back to the downloaded kanji list when it exists;
// an empty result selects Han script membership.
func resolveKanjiPath(path string) string {
	if path != "" {
		return path
	}
	if _, err := os.Stat(config.DefaultKanjiPath()); err == nil {
		return config.DefaultKanjiPath()
	}
	return ""
}

func resolveLevelsPath(path string) string {
	if path != "" {
		return path
	}
	yamlPath := filepath.Join(config.DefaultDataDir(), "levels.yaml")
	if _, err := os.Stat(config.DefaultLevelsPath()); err != nil {
		if _, yerr := os.Stat(yamlPath); yerr == nil {
			return yamlPath
		}
	}
	return config.DefaultLevelsPath()
}

func loadReference(cfg model.AnalyzeConfig) (*kanji.Reference, error) {
	ref, err := refdata.Load(cfg.KanjiPath, cfg.LevelsPath)
	if err != nil {
		return nil, referenceLoadError(cfg.LevelsPath, err)
	}
	return ref, nil
}

func referenceLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load reference data: %v", err),
		fmt.Sprintf("expected level table at: %s", path),
		"Download: kanjicurve data --levels-url <url>",
		"Or point to a file: kanjicurve --levels <path>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func analyzeInput(cmd *cobra.Command, cfg model.AnalyzeConfig, args []string) (kanji.TextAnalysis, string, error) {
	ref, err := loadReference(cfg)
	if err != nil {
		return kanji.TextAnalysis{}, "", err
	}
	text, source, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return kanji.TextAnalysis{}, "", err
	}
	start := time.Now()
	a := kanji.Analyze(text, ref)
	slog.Debug("Analyzed input", "source", source, "bytes", len(text),
		"kanji", a.TotalOccurrences, "unique", a.TotalUniqueKanji, "elapsed", time.Since(start))
	return a, source, nil
}

func resolveAnalysis(cmd *cobra.Command, cfg model.AnalyzeConfig, args []string, id int64) (model.AnalysisSummary, kanji.TextAnalysis, error) {
	if id < 0 {
		return model.AnalysisSummary{}, kanji.TextAnalysis{}, fmt.Errorf("invalid analysis id %d", id)
	}
	if id > 0 {
		if len(args) > 0 {
			return model.AnalysisSummary{}, kanji.TextAnalysis{}, fmt.Errorf("--id cannot be combined with input files")
		}
		st, err := openStore()
		if err != nil {
			return model.AnalysisSummary{}, kanji.TextAnalysis{}, err
		}
		defer closeStore(st)
		summary, a, err := st.LoadAnalysis(cmd.Context(), id)
		if err != nil {
			return model.AnalysisSummary{}, kanji.TextAnalysis{}, fmt.Errorf("failed to load analysis: %w", err)
		}
		return summary, a, nil
	}
	a, source, err := analyzeInput(cmd, cfg, args)
	if err != nil {
		return model.AnalysisSummary{}, kanji.TextAnalysis{}, err
	}
	return model.AnalysisSummary{Source: source}, a, nil
}

// readInput concatenates the named files in order, or reads stdin when none are given.
func readInput(stdin io.Reader, args []string) (string, string, error) {
	if len(args) == 0 {
		if file, ok := stdin.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
			return "", "", fmt.Errorf("no input: pass files or pipe text on stdin")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), stdinSource, nil
	}
	var b strings.Builder
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to read input: %w", err)
		}
		b.Write(data)
	}
	return b.String(), inputSource(args), nil
}

func inputSource(args []string) string {
	names := make([]string, len(args))
	for i, path := range args {
		names[i] = filepath.Base(path)
	}
	return strings.Join(names, ", ")
}

func saveAnalysis(ctx context.Context, source string, a kanji.TextAnalysis) (int64, error) {
	st, err := openStore()
	if err != nil {
		return 0, err
	}
	defer closeStore(st)
	id, err := st.InsertAnalysis(ctx, source, time.Now(), a)
	if err != nil {
		return 0, fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

func openStore() (*store.Store, error) {
	storePath := config.DefaultDBPath()
	st, err := store.Open(storePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	slog.Debug("Opened history db", "path", storePath)
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		logErrf("failed to close db: %v\n", cerr)
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(strings.TrimSpace(arg), "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid analysis id %q", arg)
	}
	return id, nil
}

func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "kanjicurve-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	defaults := model.DefaultChartSettings()
	return fmt.Sprintf(`# kanjicurve configuration
# Uncomment a value to enable it. CLI flags override config values.

[data]
# kanji = %q       # Kanji list (default: Han script fallback)
# levels = %q      # Level table, JSON array or YAML "levels" list
# kanji-url = ""        # Download source for: kanjicurve data
# levels-url = ""       # Download source for: kanjicurve data

[analyze]
# level = %d            # Your current level (1-60)
# width = 0             # Output width (0: terminal width)
# height = %d          # Plot height in rows
# color = false         # Force colored plot output

[chart]
# title = ""            # Chart title
# legend = %t         # Show the legend in PNG exports

[chart.cumulative]
# enabled = %t
# position = %q     # none, left, right
# unit = %q # unique, total, unique-percent, total-percent
# display = %q        # bar, line
# color = %q

[chart.per-level]
# enabled = %t
# position = %q
# unit = %q
# display = %q
# color = %q
`,
		config.DefaultKanjiPath(),
		config.DefaultLevelsPath(),
		defaultLevel,
		defaultPlotHeight,
		defaults.DisplayLegend,
		defaults.Cumulative.Enabled,
		string(defaults.Cumulative.Position),
		defaults.Cumulative.Unit.String(),
		string(defaults.Cumulative.Display),
		defaults.Cumulative.Color,
		defaults.PerLevel.Enabled,
		string(defaults.PerLevel.Position),
		defaults.PerLevel.Unit.String(),
		string(defaults.PerLevel.Display),
		defaults.PerLevel.Color,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
