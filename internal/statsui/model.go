// Package statsui provides the Bubble Tea analysis interface.
package statsui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanjicurve/internal/glyph"
	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
	"github.com/verte-zerg/kanjicurve/internal/stats"
)

const (
	tabOverview = iota
	tabLevels
	tabOutside
)

const (
	plotHeight = 12
	glyphCols  = 20
	glyphRows  = 10
)

const (
	fieldLevel = iota
	fieldTitle
	fieldCumulativeUnit
	fieldPerLevelUnit
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	glyphStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Padding(0, 2)
)

// Model implements the Bubble Tea analysis UI.
type Model struct {
	cfg    model.AnalyzeConfig
	report stats.Report
	errMsg string
	glyphs *glyph.Renderer

	tabs        []string
	activeTab   int
	viewports   []viewport.Model
	levelTable  table.Model
	levelLayout tableLayout

	width  int
	height int

	settingsMode   bool
	settingsInputs []textinput.Model
	settingsIndex  int
	settingsError  string
}

type tableLayout struct {
	width  int
	height int
}

// NewModel constructs an analysis UI model.
func NewModel(summary model.AnalysisSummary, a kanji.TextAnalysis, cfg model.AnalyzeConfig) *Model {
	m := &Model{
		cfg:    cfg,
		tabs:   []string{"Overview", "Levels", "Outside"},
		glyphs: glyph.Default(),
	}
	m.report = stats.BuildReport(summary, a, cfg)
	m.initInputs()
	m.initLevelTable()
	m.initViewports()
	m.renderTabContents()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.settingsMode {
			return m.updateSettings(msg)
		}
		if m.activeTab == tabLevels {
			m.levelTable.Focus()
		} else {
			m.levelTable.Blur()
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "u":
			m.cfg.Chart.Cumulative.Unit = nextUnit(m.cfg.Chart.Cumulative.Unit)
			m.refreshReport()
			return m, nil
		case "U":
			m.cfg.Chart.PerLevel.Unit = nextUnit(m.cfg.Chart.PerLevel.Unit)
			m.refreshReport()
			return m, nil
		case "+", "=":
			m.cfg.UserLevel = clampLevel(m.cfg.UserLevel + 1)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.UserLevel = clampLevel(m.cfg.UserLevel - 1)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startSettings()
		case "g", "home":
			if m.activeTab == tabLevels {
				m.levelTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabLevels {
				m.levelTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabLevels {
				var cmd tea.Cmd
				m.levelTable, cmd = m.levelTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.settingsInputs = []textinput.Model{
		newSettingsInput("Level (1-60): "),
		newSettingsInput("Title: "),
		newSettingsInput("Cumulative unit: "),
		newSettingsInput("Per-level unit: "),
	}
	m.settingsInputs[fieldCumulativeUnit].Placeholder = unitPlaceholder()
	m.settingsInputs[fieldPerLevelUnit].Placeholder = unitPlaceholder()
	m.setInputsFromConfig()
}

func (m *Model) initLevelTable() {
	m.levelTable = table.New(
		table.WithColumns(levelColumns(80)),
		table.WithHeight(1),
	)
	m.levelTable.SetStyles(levelTableStyles())
	m.levelTable.SetRows(levelRows(m.report.Analysis))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.settingsMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func newSettingsInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func unitPlaceholder() string {
	names := make([]string, len(kanji.Units))
	for i, u := range kanji.Units {
		names[i] = u.String()
	}
	return strings.Join(names, " | ")
}

func (m *Model) setInputsFromConfig() {
	if len(m.settingsInputs) == 0 {
		return
	}
	m.settingsInputs[fieldLevel].SetValue(strconv.Itoa(clampLevel(m.cfg.UserLevel)))
	m.settingsInputs[fieldTitle].SetValue(m.cfg.Chart.Title)
	m.settingsInputs[fieldCumulativeUnit].SetValue(m.cfg.Chart.Cumulative.Unit.String())
	m.settingsInputs[fieldPerLevelUnit].SetValue(m.cfg.Chart.PerLevel.Unit.String())
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setLevelTableSize(m.width, vpHeight)
	for i := range m.settingsInputs {
		promptWidth := lipgloss.Width(m.settingsInputs[i].Prompt)
		m.settingsInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabLevels {
		m.levelTable.Focus()
	} else {
		m.levelTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettingsSummary(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderSettingsSummary() string {
	source := m.report.Summary.Source
	if source == "" {
		source = "input"
	}
	summary := fmt.Sprintf("Source: %s  level=%d  cumulative=%s  per-level=%s",
		source, clampLevel(m.cfg.UserLevel), m.cfg.Chart.Cumulative.Unit, m.cfg.Chart.PerLevel.Unit)
	summary = truncateLine(summary, m.width)
	return headerStyle.Render(summary)
}

func (m *Model) renderHelp() string {
	return headerStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Level: -/+  Units: u/U  Settings: /  Quit: q")
}

func (m *Model) renderSettingsHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
}

func (m *Model) renderFooter() string {
	if m.settingsMode {
		return m.renderSettingsHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(m.errMsg)
	}
	return m.renderHelp()
}

func (m *Model) renderSettingsForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.settingsInputs {
		lines = append(lines, input.View())
	}
	if m.settingsError != "" {
		lines = append(lines, errorStyle.Render(m.settingsError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.settingsMode {
		return fitLines(m.renderSettingsForm(), m.width, height)
	}
	if m.activeTab == tabLevels {
		if m.report.Analysis.TotalOccurrences == 0 {
			return fitLines("No kanji in the input.", m.width, height)
		}
		view := tableMutedStyle.Render(m.levelTable.View())
		return fitLines(view, m.width, height)
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	m.report = stats.BuildReport(m.report.Summary, m.report.Analysis, m.cfg)
	m.errMsg = ""
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.glyphs, width))
	m.viewports[tabOutside].SetContent(renderOutside(m.report.Analysis, width))
}

func renderOverview(report stats.Report, glyphs *glyph.Renderer, width int) string {
	if report.Analysis.TotalOccurrences == 0 {
		return "No kanji in the input."
	}
	cards := renderSummaryCards(report, width)
	if art := renderNextGlyph(report, glyphs, width-lipgloss.Width(cards)); art != "" {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, cards, art)
	}
	chart := stats.RenderChartString(report.Chart, width, plotHeight, true)
	return strings.TrimRight(cards+"\n\n"+chart, "\n")
}

func renderSummaryCards(report stats.Report, width int) string {
	a := report.Analysis
	p := report.Progress
	cards := []string{
		metricCard("Total kanji", strconv.Itoa(a.TotalOccurrences)),
		metricCard("Unique kanji", strconv.Itoa(a.TotalUniqueKanji)),
		metricCard("Level", strconv.Itoa(p.UserLevel)),
		metricCard("Learned", fmt.Sprintf("%d (%s)", p.Learned, stats.FormatPercent(p.LearnedPercent))),
		metricCard("Above level", fmt.Sprintf("%d (%s)", p.AboveLevel, stats.FormatPercent(p.AboveLevelPercent))),
		metricCard("Outside", fmt.Sprintf("%d (%s)", p.Outside, stats.FormatPercent(p.OutsidePercent))),
	}
	if next := stats.NextToLearn(a, p.UserLevel, 10); len(next) > 0 {
		cards = append(cards, metricCard("Learn next", string(next)))
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...)
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

// renderNextGlyph draws the most frequent kanji to learn next when a CJK font
// is available and there is room beside the cards.
func renderNextGlyph(report stats.Report, glyphs *glyph.Renderer, room int) string {
	if room < glyphCols+4 {
		return ""
	}
	next := stats.NextToLearn(report.Analysis, report.Progress.UserLevel, 1)
	if len(next) == 0 {
		return ""
	}
	art := glyphs.Render(next[0], glyphCols, glyphRows)
	if art == "" {
		return ""
	}
	return glyphStyle.Render(art)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderOutside(a kanji.TextAnalysis, width int) string {
	if len(a.OutsideLevels) == 0 {
		return "Every kanji in the input belongs to a level."
	}
	header := headerStyle.Render(fmt.Sprintf("Kanji outside levels (%d)", len(a.OutsideLevels)))
	return header + "\n" + strings.Join(stats.WrapKanji(a.OutsideLevels, width), "\n")
}

func levelColumns(width int) []table.Column {
	columns := []table.Column{
		{Title: "Level", Width: 5},
		{Title: "Unique", Width: 6},
		{Title: "Total %", Width: 7},
		{Title: "Occurrences", Width: 11},
		{Title: "Occ. Total %", Width: 12},
		{Title: "New", Width: 8},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 1
	}
	columns = append(columns, table.Column{Title: "Kanji", Width: maxInt(10, width-used-1)})
	return columns
}

func levelRows(a kanji.TextAnalysis) []table.Row {
	_, cells := stats.LevelTableRows(a, 0)
	rows := make([]table.Row, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, table.Row(row))
	}
	return rows
}

func (m *Model) setLevelTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.levelLayout.width == width && m.levelLayout.height == viewportHeight {
		return
	}
	m.levelLayout.width = width
	m.levelLayout.height = viewportHeight
	m.levelTable.SetColumns(levelColumns(width))
	m.levelTable.SetRows(levelRows(m.report.Analysis))
	m.levelTable.SetWidth(width)
	m.levelTable.SetHeight(viewportHeight)
	viewportHeight = m.adjustLevelTableHeight(height)
	if m.levelLayout.height != viewportHeight {
		m.levelLayout.height = viewportHeight
		m.levelTable.SetHeight(viewportHeight)
	}
}

func levelTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) adjustLevelTableHeight(bodyHeight int) int {
	target := maxInt(1, bodyHeight)
	height := m.levelTable.Height()
	viewHeight := lipgloss.Height(m.levelTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	m.levelTable.SetHeight(height)
	viewHeight = lipgloss.Height(m.levelTable.View())
	if viewHeight == target {
		return height
	}
	height += target - viewHeight
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) startSettings() (tea.Model, tea.Cmd) {
	m.settingsMode = true
	m.settingsError = ""
	m.setInputsFromConfig()
	return m, m.setSettingsIndex(0)
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applySettings(); err != nil {
			m.settingsError = err.Error()
			return m, nil
		}
		m.settingsMode = false
		m.settingsError = ""
		m.refreshReport()
		m.updateLayout()
		return m, nil
	case tea.KeyTab:
		return m, m.setSettingsIndex(m.settingsIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setSettingsIndex(m.settingsIndex - 1)
	}
	var cmd tea.Cmd
	m.settingsInputs[m.settingsIndex], cmd = m.settingsInputs[m.settingsIndex].Update(msg)
	return m, cmd
}

func (m *Model) setSettingsIndex(idx int) tea.Cmd {
	count := len(m.settingsInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.settingsIndex = idx
	var cmd tea.Cmd
	for i := range m.settingsInputs {
		if i == m.settingsIndex {
			cmd = m.settingsInputs[i].Focus()
		} else {
			m.settingsInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applySettings() error {
	levelInput := strings.TrimSpace(m.settingsInputs[fieldLevel].Value())
	level, err := strconv.Atoi(levelInput)
	if err != nil || level < 1 || level > kanji.NumLevels {
		return fmt.Errorf("invalid level (use 1-%d)", kanji.NumLevels)
	}
	cumulative, err := kanji.ParseUnit(m.settingsInputs[fieldCumulativeUnit].Value())
	if err != nil {
		return fmt.Errorf("invalid cumulative unit: %w", err)
	}
	perLevel, err := kanji.ParseUnit(m.settingsInputs[fieldPerLevelUnit].Value())
	if err != nil {
		return fmt.Errorf("invalid per-level unit: %w", err)
	}

	m.cfg.UserLevel = level
	m.cfg.Chart.Title = strings.TrimSpace(m.settingsInputs[fieldTitle].Value())
	m.cfg.Chart.Cumulative.Unit = cumulative
	m.cfg.Chart.PerLevel.Unit = perLevel
	return nil
}

func nextUnit(u kanji.Unit) kanji.Unit {
	for i, candidate := range kanji.Units {
		if candidate == u {
			return kanji.Units[(i+1)%len(kanji.Units)]
		}
	}
	return kanji.Units[0]
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > kanji.NumLevels {
		return kanji.NumLevels
	}
	return level
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
