// Package tui provides the Bubble Tea home screen.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/mindgym/internal/i18n"
	"github.com/verte-zerg/mindgym/internal/locale"
	"github.com/verte-zerg/mindgym/internal/results"
	"github.com/verte-zerg/mindgym/internal/stats"
)

const (
	screenHome = iota
	screenSettings
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C89A3A")).
			Bold(true).
			MarginBottom(1)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	optionStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	cardStyle     = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model implements the home screen: a board of games and a language picker.
type Model struct {
	results  *results.Store
	selector *locale.Selector
	locale   locale.Locale

	unsubscribe func()

	screen  int
	cursor  int
	board   table.Model
	options []locale.Locale

	width  int
	height int
}

// NewModel constructs the home screen model and subscribes it to locale changes.
func NewModel(rs *results.Store, sel *locale.Selector) *Model {
	m := &Model{
		results:  rs,
		selector: sel,
		locale:   sel.Current(),
		options:  locale.Supported(),
	}
	m.board = table.New(table.WithFocused(true))
	m.board.SetStyles(boardStyles())
	m.unsubscribe = sel.Subscribe(func(l locale.Locale) {
		m.locale = l
		m.refreshBoard()
	})
	m.refreshBoard()
	return m
}

// Close detaches the model from the selector.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
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
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.screen == screenSettings {
			return m.updateSettings(msg)
		}
		return m.updateHome(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "s":
		m.screen = screenSettings
		m.cursor = m.optionIndex(m.locale)
		return m, nil
	}
	var cmd tea.Cmd
	m.board, cmd = m.board.Update(msg)
	return m, cmd
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		m.screen = screenHome
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "enter":
		m.selector.Set(context.Background(), m.options[m.cursor])
		m.screen = screenHome
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	if m.screen == screenSettings {
		content = m.renderSettings()
	} else {
		content = m.renderHome()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderHome() string {
	title := titleStyle.Render(m.text(i18n.KeyHomeTitle))
	footer := footerStyle.Render(m.text(i18n.KeyHomeHelp))
	return lipgloss.JoinVertical(lipgloss.Left, title, cardStyle.Render(m.board.View()), footer)
}

func (m *Model) renderSettings() string {
	title := titleStyle.Render(m.text(i18n.KeySettings) + " · " + m.text(i18n.KeyLanguage))
	lines := make([]string, 0, len(m.options))
	for i, opt := range m.options {
		label := i18n.LanguageName(opt)
		if opt == m.locale {
			label += " ✓"
		}
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+label))
			continue
		}
		lines = append(lines, optionStyle.Render("  "+label))
	}
	list := cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	footer := footerStyle.Render(m.text(i18n.KeySettingHelp))
	return lipgloss.JoinVertical(lipgloss.Left, title, list, footer)
}

func (m *Model) refreshBoard() {
	labels := stats.Labels(m.locale)
	board := stats.BuildBoard(m.results, m.locale)
	rows := make([]table.Row, 0, len(board))
	for _, r := range board {
		best := labels.NoResults
		if r.HasBest {
			best = stats.FormatScore(r.Best, r.Unit)
		}
		rows = append(rows, table.Row{r.Title, best, strconv.Itoa(r.Attempts)})
	}
	headers := []string{labels.Game, labels.Best, labels.Attempts}
	columns := make([]table.Column, len(headers))
	for i, h := range headers {
		width := runewidth.StringWidth(h)
		for _, row := range rows {
			if w := runewidth.StringWidth(row[i]); w > width {
				width = w
			}
		}
		columns[i] = table.Column{Title: h, Width: width}
	}
	m.board.SetRows(nil)
	m.board.SetColumns(columns)
	m.board.SetRows(rows)
	m.board.SetHeight(len(rows) + 2)
}

func (m *Model) optionIndex(l locale.Locale) int {
	for i, opt := range m.options {
		if opt == l {
			return i
		}
	}
	return 0
}

func (m *Model) text(key string) string {
	return i18n.Text(m.locale, key)
}

func boardStyles() table.Styles {
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
