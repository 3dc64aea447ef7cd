package bubblepop

import (
	"math"

	platformcore "github.com/vovakirdan/bubblepop/internal/core"
	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// hitKind says what a flying bubble ran into.
type hitKind int

const (
	hitNone hitKind = iota
	hitBubble
	hitCeiling
)

// hit is the first contact found while advancing a flight.
type hit struct {
	kind   hitKind
	at     core.Point
	struck core.BubbleID
}

// substep is the longest distance a flight moves between collision checks,
// in bubble diameters.
const substep = 0.2

// flight is the player bubble between launch and contact. Positions are in
// field space: one unit per bubble diameter, Y growing downward.
type flight struct {
	pos    core.Point
	dir    core.Point
	active bool
}

func launchFlight(from core.Point, angle float64) flight {
	rad := angle * math.Pi / 180
	return flight{
		pos:    from,
		dir:    core.Pt(math.Sin(rad), -math.Cos(rad)),
		active: true,
	}
}

// advance moves the bubble speed units along its direction, bouncing off the
// side walls, and stops at the first contact. reach is the center distance at
// which two bubbles touch.
func (f *flight) advance(g *core.Graph, speed, reach float64) hit {
	width := g.Topology().Width(g.Cols())
	steps := int(math.Ceil(speed / substep))
	if steps < 1 {
		steps = 1
	}
	delta := speed / float64(steps)

	for i := 0; i < steps; i++ {
		f.pos = f.pos.Add(f.dir.X*delta, f.dir.Y*delta)
		f.bounce(width)

		if id, ok := nearestWithin(g, f.pos, reach); ok {
			return hit{kind: hitBubble, at: f.pos, struck: id}
		}
		if f.pos.Y <= 0.5 {
			f.pos.Y = 0.5
			return hit{kind: hitCeiling, at: f.pos, struck: core.NoBubble}
		}
	}
	return hit{kind: hitNone, at: f.pos, struck: core.NoBubble}
}

func (f *flight) bounce(width float64) {
	if f.pos.X < 0.5 {
		f.pos.X = 1 - f.pos.X
		f.dir.X = -f.dir.X
	}
	if right := width - 0.5; f.pos.X > right {
		f.pos.X = 2*right - f.pos.X
		f.dir.X = -f.dir.X
	}
}

// nearestWithin returns the live bubble whose center is closest to p, if it
// is within reach.
func nearestWithin(g *core.Graph, p core.Point, reach float64) (core.BubbleID, bool) {
	topo := g.Topology()
	best := core.NoBubble
	bestD := reach * reach
	for _, id := range g.Live() {
		b, _ := g.Bubble(id)
		if d := topo.Center(b.Cell).Dist2(p); d <= bestD {
			best, bestD = id, d
		}
	}
	return best, best != core.NoBubble
}

// guide returns points along the aim line, bounced off the walls, until it
// reaches a bubble or the ceiling. At most n points are returned.
func guide(g *core.Graph, from core.Point, angle, reach float64, n int) []core.Point {
	f := launchFlight(from, angle)
	points := make([]core.Point, 0, n)
	for len(points) < n {
		h := f.advance(g, 1, reach)
		if h.kind != hitNone {
			break
		}
		points = append(points, f.pos)
	}
	return points
}

// aimAt returns the launch angle in degrees that points from one point to
// another, measured from straight up and clamped to maxAngle.
func aimAt(from, to core.Point, maxAngle float64) float64 {
	deg := math.Atan2(to.X-from.X, from.Y-to.Y) * 180 / math.Pi
	return clampAngle(deg, maxAngle)
}

func clampAngle(deg, maxAngle float64) float64 {
	return platformcore.Clamp(deg, -maxAngle, maxAngle)
}
