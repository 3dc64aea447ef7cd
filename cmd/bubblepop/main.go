// bubblepop is a bubble shooter for the terminal.
//
// Usage:
//
//	bubblepop list                 - List game modes and levels
//	bubblepop play [mode]          - Play campaign (default) or endless
//	bubblepop menu                 - Pick a mode or level interactively
//	bubblepop serve                - Start SSH server for remote play
//	bubblepop scores [mode]        - Show high scores and recent sessions
//	bubblepop graph <level>        - Export a level's field as Graphviz
//	bubblepop sim <level>          - Autoplay a level and print each round
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.bubblepop/scores.db)
//	--config <path>      - Game config YAML
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--levels <dir>       - Extra level directory overlaid on the builtin levels
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/levels"
	"github.com/vovakirdan/bubblepop/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevels     string
	flagVerbose    bool
	flagLogFile    string
	flagNoColor    bool
)

// logger is set up before every command runs.
var logger *log.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bubblepop",
	Short: "Bubble Pop - a bubble shooter in your terminal",
	Long: `Bubble Pop is a terminal bubble shooter. Aim, bounce off the walls and
match three or more bubbles of a color. Bubbles cut off from the top row fall.

Available commands:
  list     - Show game modes and levels
  play     - Play campaign or endless mode directly
  menu     - Interactive mode and level picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent sessions
  graph    - Export a level field as a Graphviz graph
  sim      - Let the autoplayer clear a level

Examples:
  bubblepop play
  bubblepop play endless --difficulty hard
  bubblepop play --level lvl02
  bubblepop menu
  bubblepop serve --ssh :2222
  bubblepop graph lvl01 --out field.svg`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.bubblepop/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLevels, "levels", "", "Directory of extra level files (YAML or TOML)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log engine rounds at debug level")
	pf.StringVar(&flagLogFile, "log-file", "", "Write game logs to this file while playing")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colors")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(simCmd)
}

// setup applies the global flags to the game package.
func setup(_ *cobra.Command, _ []string) error {
	logger = newLogger(os.Stderr, flagVerbose)

	if flagFPS <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", flagFPS)
	}
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
	}

	bubblepop.SetConfigPath(flagConfig)
	bubblepop.SetDifficultyPreset(flagDifficulty)
	if flagLevels != "" {
		bubblepop.SetLevels(append(levels.DefaultSet(), levels.NewLoader(flagLevels)))
	}
	tui.SetPlain(flagNoColor)
	return nil
}
