package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblepop/internal/config"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

var (
	flagSimShots int
	flagSimQuiet bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Let the autoplayer clear a level",
	Long: `Play a level with the hint autoplayer: every round takes the shot that
clears the most bubbles. Prints the field after each round.

Examples:
  bubblepop sim lvl01
  bubblepop sim lvl02 --shots 5 --seed 42
  bubblepop sim lvl03 --quiet`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimShots, "shots", 0, "Maximum shots (0 = the level's limit)")
	simCmd.Flags().BoolVarP(&flagSimQuiet, "quiet", "q", false, "Only print the summary")
}

func runSim(cmd *cobra.Command, args []string) error {
	lvl, err := bubblepop.Levels().LoadByID(args[0])
	if err != nil {
		return fmt.Errorf("level %q: %w", args[0], err)
	}
	field, err := lvl.Field()
	if err != nil {
		return err
	}
	cfg, err := config.LoadBubblePop(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	shots := flagSimShots
	if shots <= 0 {
		shots = lvl.Shots
	}

	policy := core.Policy{MinMatch: cfg.Gameplay.MinMatch, GateInclusive: cfg.Booster.GateInclusive}
	topo := field.Topology()
	launch := core.Pt(topo.Width(field.Cols())/2, float64(field.Rows())*topo.RowHeight()+0.5)
	ctrl := core.NewController(field, lvl.NewFeed(seed), policy, launch)

	out := cmd.OutOrStdout()
	if !flagSimQuiet {
		fmt.Fprintf(out, "%s (%s)\n%s\n", lvl.Name, lvl.ID, core.RenderASCII(field))
	}

	cleared := 0
	fired := 0
	for ; fired < shots && field.Len() > 0; fired++ {
		color := ctrl.Player().Color
		shot, ok := core.BestShot(field, color, policy.MinMatch)
		if !ok {
			break
		}
		if err := ctrl.Aim(shot.At.X-launch.X, shot.At.Y-launch.Y); err != nil {
			return err
		}
		if err := ctrl.Shoot(); err != nil {
			return err
		}
		res, err := ctrl.Collide(shot.At, shot.Struck)
		if err != nil {
			return err
		}
		ctrl.Events().Consume()
		cleared += res.Cleared()

		logger.Debug("round", "round", res.Round, "outcome", res.Outcome, "cell", res.Cell,
			"popped", len(res.Popped), "dropped", len(res.Floaters))
		if !flagSimQuiet {
			fmt.Fprintf(out, "Round %d: %s at %v, popped %d, dropped %d\n%s\n",
				res.Round, color, res.Cell, len(res.Popped), len(res.Floaters), core.RenderASCII(field))
		}
	}

	status := "not cleared"
	if field.Len() == 0 {
		status = "cleared"
	}
	fmt.Fprintf(out, "%s: %s after %d shots, %d bubbles removed, %d left\n",
		lvl.ID, status, fired, cleared, field.Len())
	return nil
}
