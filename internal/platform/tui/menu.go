package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/levels"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// MenuItem is one selectable entry: a game mode, optionally pinned to a level.
type MenuItem struct {
	GameID string
	Title  string
	Level  string // Level ID to start from, empty for the first level
	Best   int    // Best recorded score, 0 when unknown
}

// MenuModel is the Bubble Tea model for the mode and level picker.
type MenuModel struct {
	items          []MenuItem
	modes          int // Leading items that are modes rather than levels
	cursor         int
	scrollOffset   int
	width          int
	height         int
	store          *storage.Store
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
	loadErr        error
}

// NewMenuModel creates a new menu model over the current level set.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	items, modes, err := menuItems(bubblepop.Levels(), store)
	return MenuModel{
		items:     items,
		modes:     modes,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		store:     store,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		loadErr:   err,
	}
}

// menuItems lists the registered modes followed by one entry per level.
func menuItems(set levels.Set, store *storage.Store) ([]MenuItem, int, error) {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}
	modes := len(items)

	all, err := set.LoadAll()
	if err != nil {
		return items, modes, err
	}
	for _, lvl := range all {
		item := MenuItem{GameID: "bubblepop", Title: lvl.Name, Level: lvl.ID}
		if store != nil {
			if best, err := store.LevelHighScore(item.GameID, lvl.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}
	return items, modes, nil
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.updateScroll()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.updateScroll()
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.config.Level = selected.Level
			return m, tea.Quit
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// visibleItems is how many entries fit between the header and the footer.
func (m MenuModel) visibleItems() int {
	return max(m.height-12, 3)
}

// updateScroll adjusts the scroll offset to keep the cursor visible.
func (m *MenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("B U B B L E   P O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(theme.Description.Render("Select a mode or a level"), m.width))
	b.WriteString("\n\n")

	end := min(m.scrollOffset+m.visibleItems(), len(m.items))
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		if i == m.modes {
			b.WriteString("\n")
			b.WriteString(centerText(theme.Section.Render("Levels"), m.width))
			b.WriteString("\n")
		}
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.items) {
		b.WriteString(centerText(theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	if m.loadErr != nil {
		b.WriteString("\n")
		b.WriteString(centerText(theme.Description.Render("Levels unavailable: "+m.loadErr.Error()), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := theme.Controls.Render("Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit")
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int) string {
	item := m.items[i]
	cursor := "  "
	style := theme.ItemNormal
	if i == m.cursor {
		cursor = "> "
		style = theme.ItemActive
	}

	line := cursor + item.Title
	if i >= m.modes {
		line = fmt.Sprintf("%s%2d. %s", cursor, i-m.modes+1, item.Title)
		if item.Best > 0 {
			line += theme.Description.Render(fmt.Sprintf("  best %d", item.Best))
		}
	}
	return style.Render(line)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config, updated by resizes and the selection.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring styled text by its
// printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.GameID = m.Selected().GameID
	default:
		result.Quit = true
	}
	return result, nil
}
