package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

// RoundRecorder returns a round hook that stores every resolved round under
// sessionID. Failed writes are logged and play goes on.
func RoundRecorder(store *storage.Store, sessionID string, logger *log.Logger) func(bubblepop.RoundRecord) {
	return func(r bubblepop.RoundRecord) {
		_, err := store.SaveRound(storage.Round{
			SessionID: sessionID,
			GameID:    r.GameID,
			Level:     r.Level,
			Round:     r.Round,
			Outcome:   r.Outcome,
			Booster:   r.Booster,
			Popped:    r.Popped,
			Dropped:   r.Dropped,
			Score:     r.Score,
		})
		if err != nil {
			logger.Warn("cannot save round", "error", err)
		}
	}
}

// SessionModel is the top-level model of one SSH connection. It moves
// between the menu, the scoreboard and a game until the player quits.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	logger     *log.Logger
	sessionID  string
	menu       MenuModel
	scoreboard *ScoreboardModel
	game       *Model
	quitting   bool
}

func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	sessionID := storage.NewSessionID()
	return SessionModel{
		store:     store,
		config:    cfg,
		logger:    logger.With("session", sessionID),
		sessionID: sessionID,
		menu:      NewMenuModel(store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.game != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// toMenu rebuilds the menu so best scores reflect the last game.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.game, m.scoreboard = nil, nil
	m.menu = NewMenuModel(m.store, m.config)
	return m, m.menu.Init()
}

// updateMenu drives the menu. The menu ends its own program on a choice,
// so its tea.Quit is dropped unless the player left.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		board := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &board
		return m, board.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err != nil {
		m.logger.Error("cannot create game", "game", id, "error", err)
		return m.toMenu()
	}
	if bp, ok := game.(*bubblepop.Game); ok && m.store != nil {
		bp.OnRound(RoundRecorder(m.store, m.sessionID, m.logger))
	}

	cfg := m.menu.Config()
	cfg.Seed = time.Now().UnixNano()
	m.logger.Info("game started", "game", id, "level", cfg.Level)

	model := NewModel(game, m.store, cfg)
	m.game = &model
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.logger.Info("game ended", "game", m.game.game.ID(), "score", m.game.gameState.Score)
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		m.scoreboard = &board
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.game != nil:
		return m.game.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}
