package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

const (
	statsPanelMinWidth = 80
	statsPanelWidth    = 22
	scoreboardRows     = 100
)

type boardView int

const (
	viewTopScores boardView = iota
	viewSessions
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Toggle, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Next, k.Prev}, {k.Toggle, k.Back, k.Quit}}
}

func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "scroll up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "scroll down")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		Toggle: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/sessions")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists top scores or recent sessions for one game mode at
// a time, with a summary of that mode beside the table on wide terminals.
type ScoreboardModel struct {
	modes     []registry.GameInfo
	mode      int
	view      boardView
	store     *storage.Store
	scores    []storage.ScoreEntry
	sessions  []storage.SessionSummary
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.rebuild()
	m.load()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= statsPanelMinWidth
}

func (m ScoreboardModel) currentID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.view == viewSessions {
		return []table.Column{
			{Title: "Started", Width: 14},
			{Title: "Rounds", Width: 7},
			{Title: "Popped", Width: 7},
			{Title: "Dropped", Width: 8},
			{Title: "Score", Width: 8},
		}
	}

	levelWidth := 12
	avail := m.width - 4
	if m.wide() {
		avail -= statsPanelWidth + 3
	}
	if avail > 50 {
		levelWidth = min(avail-34, 20)
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Level", Width: levelWidth},
		{Title: "Date", Width: 14},
	}
}

// rebuild recreates the table for the current view and size.
func (m *ScoreboardModel) rebuild() {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Inherit(theme.TableHeader)
	styles.Selected = styles.Selected.Inherit(theme.TableSelected).Bold(false)

	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
		table.WithStyles(styles),
	)
	m.help.Width = m.width
	m.fill()
}

// load reads the current mode's scores, sessions and stats. Read errors
// leave the lists empty.
func (m *ScoreboardModel) load() {
	m.scores, m.sessions, m.stats = nil, nil, nil
	if id := m.currentID(); m.store != nil && id != "" {
		m.scores, _ = m.store.TopScores(id, scoreboardRows)
		m.sessions, _ = m.store.RecentSessions(id, scoreboardRows)
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fill()
}

func (m *ScoreboardModel) fill() {
	var rows []table.Row
	switch m.view {
	case viewSessions:
		for _, s := range m.sessions {
			rows = append(rows, table.Row{
				s.StartedAt.Format("Jan 02 15:04"),
				strconv.Itoa(s.Rounds),
				strconv.Itoa(s.Popped),
				strconv.Itoa(s.Dropped),
				strconv.Itoa(s.Score),
			})
		}
	default:
		for i, s := range m.scores {
			level := s.Level
			if level == "" {
				level = "-"
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				strconv.Itoa(s.Score),
				level,
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.view = 1 - m.view
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.step(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.step(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// step moves to the next or previous mode, wrapping around.
func (m *ScoreboardModel) step(delta int) {
	if n := len(m.modes); n > 0 {
		m.mode = (m.mode + delta + n) % n
		m.load()
	}
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	heading := "HIGH SCORES"
	if m.view == viewSessions {
		heading = "RECENT SESSIONS"
	}
	if len(m.modes) > 0 {
		heading += " - " + modeLabel(m.modes[m.mode])
	}

	var b strings.Builder
	b.WriteString(theme.Title.MarginBottom(1).Render(centerText(heading, m.width)))
	b.WriteString("\n\n")

	body := theme.TableBorder.Render(m.tableView())
	if m.wide() {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.statsPanel(), "  ", body))
	} else {
		b.WriteString(centerText(m.modeTabs(), m.width))
		b.WriteString("\n\n")
		b.WriteString(centerText(body, m.width))
	}

	b.WriteString("\n")
	b.WriteString(theme.Controls.Render(m.help.View(m.keys)))
	return b.String()
}

// statsPanel shows the mode list and the aggregate stats of the current
// mode.
func (m ScoreboardModel) statsPanel() string {
	var b strings.Builder
	b.WriteString(theme.Section.Render("Modes"))
	b.WriteString("\n")
	for i, g := range m.modes {
		if i == m.mode {
			b.WriteString(theme.ItemActive.Render("> " + modeLabel(g)))
		} else {
			b.WriteString(theme.ItemNormal.Render("  " + modeLabel(g)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Section.Render("Stats"))
	b.WriteString("\n")
	if m.stats == nil || m.stats.GamesCount == 0 {
		b.WriteString(theme.Description.Render("no games yet"))
	} else {
		fmt.Fprintf(&b, "Games  %d\n", m.stats.GamesCount)
		fmt.Fprintf(&b, "Best   %d\n", m.stats.HighScore)
		fmt.Fprintf(&b, "Avg    %.0f\n", m.stats.AvgScore)
		b.WriteString(theme.Description.Render("Last   " + m.stats.LastPlayed.Format("Jan 02")))
	}

	return theme.TableBorder.Width(statsPanelWidth).Render(b.String())
}

func (m ScoreboardModel) modeTabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = theme.TableSelected.Padding(0, 1).Render(modeLabel(g))
		} else {
			tabs[i] = theme.Controls.Render(" " + modeLabel(g) + " ")
		}
	}
	return strings.Join(tabs, " ")
}

// modeLabel is the short name of a registered game mode.
func modeLabel(g registry.GameInfo) string {
	if strings.HasSuffix(g.ID, "_endless") {
		return "Endless"
	}
	return "Campaign"
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.view == viewSessions && len(m.sessions) == 0:
		return theme.Empty.Render("No sessions recorded yet.")
	case m.view == viewTopScores && len(m.scores) == 0:
		return theme.Empty.Render("No scores recorded yet.\nPop some bubbles to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard on its own. It returns true when the
// player went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
