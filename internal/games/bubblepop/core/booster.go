package core

// BoosterKind tags the player bubble variant.
type BoosterKind uint8

const (
	BoosterStandard   BoosterKind = iota // Ordinary colored bubble
	BoosterColorMatch                    // Pops every colored group touching its impact point
)

// String returns the string representation of a booster kind.
func (k BoosterKind) String() string {
	switch k {
	case BoosterStandard:
		return "standard"
	case BoosterColorMatch:
		return "color_match"
	default:
		return "unknown"
	}
}

// ParseBooster converts a name to a BoosterKind.
func ParseBooster(s string) (BoosterKind, bool) {
	switch s {
	case "", "standard":
		return BoosterStandard, true
	case "color_match", "color":
		return BoosterColorMatch, true
	default:
		return BoosterStandard, false
	}
}

// Seed describes one match traversal to run after a bubble attaches.
type Seed struct {
	IDs     []BubbleID
	Color   Color
	MinSize int // Group size needed to pop
}

// Behavior is the capability set the controller dispatches through for a
// player bubble variant.
type Behavior interface {
	Kind() BoosterKind

	// Gate decides whether a collision with struck resolves at all. A closed
	// gate leaves the player bubble in flight and the graph untouched.
	Gate(g *Graph, p *Player, struck Bubble, policy Policy) bool

	// Seeds returns the traversals to run, in order, once attached is in the graph.
	Seeds(g *Graph, attached BubbleID, policy Policy) []Seed

	// Transient reports whether the attached node is used up after matching.
	Transient() bool

	// CanSwitch reports whether the bubble may be swapped with the next one.
	CanSwitch() bool

	// OnLoad, OnShot and OnReset emit the variant's lifecycle events.
	OnLoad(q *EventQueue, p *Player, round int)
	OnShot(q *EventQueue, p *Player, round int)
	OnReset(q *EventQueue, p *Player, round int)
}

// BehaviorFor returns the behavior of a booster kind.
func BehaviorFor(kind BoosterKind) Behavior {
	switch kind {
	case BoosterColorMatch:
		return colorMatch{}
	default:
		return standard{}
	}
}

// standard seeds one traversal from the attached bubble itself.
type standard struct{}

func (standard) Kind() BoosterKind { return BoosterStandard }
func (standard) Transient() bool   { return false }
func (standard) CanSwitch() bool   { return true }

func (standard) Gate(_ *Graph, p *Player, _ Bubble, _ Policy) bool {
	return !p.Consumed
}

func (standard) Seeds(g *Graph, attached BubbleID, policy Policy) []Seed {
	b, ok := g.Bubble(attached)
	if !ok || !b.Color.Matchable() {
		return nil
	}
	return []Seed{{IDs: []BubbleID{attached}, Color: b.Color, MinSize: policy.MinGroup()}}
}

func (standard) OnLoad(*EventQueue, *Player, int) {}

func (standard) OnShot(q *EventQueue, p *Player, round int) {
	q.Push(Event{Kind: EventShoot, Round: round, Bubble: NoBubble, Color: p.Color, Pos: p.Pos})
}

func (standard) OnReset(*EventQueue, *Player, int) {}

// colorMatch attaches as a blank node, then seeds an independent traversal
// from each colored neighbor and pops every region it reaches regardless of
// size. It only resolves against a non-blank bubble that passes the direction
// gate, and only once per shot.
type colorMatch struct{}

func (colorMatch) Kind() BoosterKind { return BoosterColorMatch }
func (colorMatch) Transient() bool   { return true }
func (colorMatch) CanSwitch() bool   { return false }

func (colorMatch) Gate(g *Graph, p *Player, struck Bubble, policy Policy) bool {
	if struck.Color == ColorBlank || p.Consumed {
		return false
	}
	return policy.GateAllows(p.Pos, g.Topology().Center(struck.Cell))
}

func (colorMatch) Seeds(g *Graph, attached BubbleID, _ Policy) []Seed {
	var seeds []Seed
	for _, n := range g.NeighborsOf(attached) {
		b, _ := g.Bubble(n)
		if b.Color == ColorBlank {
			continue
		}
		seeds = append(seeds, Seed{IDs: []BubbleID{n}, Color: b.Color, MinSize: 1})
	}
	return seeds
}

func (colorMatch) OnLoad(q *EventQueue, p *Player, round int) {
	q.Push(Event{Kind: EventBoosterAdded, Round: round, Bubble: NoBubble, Booster: BoosterColorMatch, Pos: p.Pos})
}

func (colorMatch) OnShot(q *EventQueue, p *Player, round int) {
	q.Push(Event{Kind: EventShoot, Round: round, Bubble: NoBubble, Pos: p.Pos, Booster: BoosterColorMatch})
	q.Push(Event{Kind: EventBoosterShot, Round: round, Bubble: NoBubble, Pos: p.Pos, Booster: BoosterColorMatch})
}

func (colorMatch) OnReset(q *EventQueue, p *Player, round int) {
	kind := EventBoosterRemoved
	if p.Consumed {
		kind = EventBoosterConsumed
	}
	q.Push(Event{Kind: kind, Round: round, Bubble: NoBubble, Pos: p.Pos, Booster: BoosterColorMatch})
}
