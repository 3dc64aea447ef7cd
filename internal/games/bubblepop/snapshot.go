package bubblepop

import (
	"math"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Snapshot is the observable game state, flattened to primitive types for
// determinism checks and debugging.
type Snapshot struct {
	Tick     int
	Mode     int // 0=Campaign, 1=Endless
	Level    string
	Score    int
	Shots    int
	Boosters int
	Round    int
	Rounds   int
	GameOver bool

	// Aim and flight in thousandths of a cell
	Angle  int
	Flying bool
	PosX   int
	PosY   int

	Color   int
	Next    int
	Booster int

	// Field rows as produced by core.Layout
	Field []string
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     g.tick,
		Mode:     int(g.mode),
		Level:    g.levelID(),
		Score:    g.score,
		Shots:    g.shots,
		Boosters: g.boosters,
		Rounds:   g.rounds,
		GameOver: g.gameOver,
		Angle:    milli(g.angle),
		Flying:   g.flight.active,
	}
	if g.ctrl == nil {
		return snap
	}

	p := g.ctrl.Player()
	snap.Round = g.ctrl.Round()
	snap.Color = int(p.Color)
	snap.Next = int(g.ctrl.NextColor())
	snap.Booster = int(p.Booster)
	if g.flight.active {
		snap.PosX = milli(g.flight.pos.X)
		snap.PosY = milli(g.flight.pos.Y)
	}
	snap.Field = core.Layout(g.ctrl.Graph())
	return snap
}

func milli(v float64) int {
	return int(math.Round(v * 1000))
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)              //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shots)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Boosters)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Angle)             //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PosX)              //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PosY)              //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Color*8+snap.Next) //#nosec G115 -- hash computation

	for _, s := range append([]string{snap.Level}, snap.Field...) {
		for _, r := range s {
			h = h*31 + uint64(r) //#nosec G115 -- hash computation
		}
		h = h*31 + '\n'
	}
	return h
}
