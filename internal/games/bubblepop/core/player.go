package core

import "math"

// PlayerState is the lifecycle of the shootable bubble.
type PlayerState uint8

const (
	PlayerReady PlayerState = iota
	PlayerAimed
	PlayerShot
	PlayerAttached
	PlayerDiscarded
	PlayerRemoved
)

// String returns the string representation of a player state.
func (s PlayerState) String() string {
	switch s {
	case PlayerReady:
		return "ready"
	case PlayerAimed:
		return "aimed"
	case PlayerShot:
		return "shot"
	case PlayerAttached:
		return "attached"
	case PlayerDiscarded:
		return "discarded"
	case PlayerRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Player is the bubble the player launches. It is distinct from field
// bubbles: it has a continuous position until it attaches.
type Player struct {
	Color    Color
	Booster  BoosterKind
	Pos      Point
	Dir      Point // Unit aim vector
	State    PlayerState
	Consumed bool // Absorbed into the field this round
}

// Aim sets the aim vector to the normalized direction (dx, dy).
// A zero vector aims straight up.
func (p *Player) Aim(dx, dy float64) {
	n := math.Hypot(dx, dy)
	if n == 0 {
		p.Dir = Point{X: 0, Y: -1}
		return
	}
	p.Dir = Point{X: dx / n, Y: dy / n}
}

// AimAngle aims at an angle in radians measured from straight up, positive
// to the right.
func (p *Player) AimAngle(rad float64) {
	p.Aim(math.Sin(rad), -math.Cos(rad))
}
