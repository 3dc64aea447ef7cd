package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/bubblepop/internal/audio"
	"github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
	"github.com/vovakirdan/bubblepop/internal/registry"
	"github.com/vovakirdan/bubblepop/internal/storage"
)

var (
	flagLevel string
	flagSound bool
)

// modes maps command line mode names to registered game IDs.
var modes = map[string]string{
	"campaign": "bubblepop",
	"endless":  "bubblepop_endless",
}

var playCmd = &cobra.Command{
	Use:   "play [campaign|endless]",
	Short: "Play a game",
	Long: `Start playing. Campaign mode plays the levels in order; endless mode
generates fields that get harder as the score grows.

Controls:
  Left/Right, A/D  - Aim
  Space/Up         - Fire
  Tab/Down         - Swap current and next bubble
  B                - Load a booster
  H                - Hint: aim at the best shot
  P                - Pause
  Esc              - Pause, or leave when paused or over
  R                - Restart (after game over)
  ?                - Full key help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  bubblepop play
  bubblepop play --level lvl03
  bubblepop play endless --difficulty hard
  bubblepop play --config ./my-bubblepop.yaml --sound`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"campaign", "endless"},
	RunE:      runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID to start the campaign from")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	menuCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := "campaign"
	if len(args) == 1 {
		mode = args[0]
	}
	gameID, ok := modes[mode]
	if !ok {
		return fmt.Errorf("unknown mode %q, expected campaign or endless", mode)
	}
	if flagLevel != "" {
		if _, err := bubblepop.Levels().LoadByID(flagLevel); err != nil {
			return fmt.Errorf("level %q: %w", flagLevel, err)
		}
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	done, err := startSession(store)
	if err != nil {
		return err
	}
	defer done()

	cfg := runtimeConfig()
	cfg.Level = flagLevel
	if _, err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still run without one.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// startSession wires logging, sound and round history for one local session.
// The returned function releases them.
func startSession(store *storage.Store) (func(), error) {
	gl, closeLog, err := gameLogger()
	if err != nil {
		return nil, err
	}
	sessionID := storage.NewSessionID()
	gl = gl.With("session", sessionID)
	bubblepop.SetLogger(gl)

	var sm *audio.SoundManager
	if flagSound {
		sm = audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			gl.Warn("sound unavailable", "error", err)
			sm = nil
		} else {
			bubblepop.SetAudio(sm)
		}
	}

	if store != nil {
		bubblepop.SetRoundHook(tui.RoundRecorder(store, sessionID, gl))
	}

	return func() {
		bubblepop.SetRoundHook(nil)
		bubblepop.SetAudio(nil)
		bubblepop.SetLogger(nil)
		if sm != nil {
			sm.Cleanup()
		}
		closeLog()
	}, nil
}
