package core

import (
	"errors"
	"fmt"
)

// ErrInvalidState is returned when a controller operation is not allowed in
// the current phase.
var ErrInvalidState = errors.New("invalid state")

// Phase is the controller's position in a round.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseAimed
	PhaseShot
	PhaseAttached
	PhaseDiscarded
	PhaseResolving
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAimed:
		return "aimed"
	case PhaseShot:
		return "shot"
	case PhaseAttached:
		return "attached"
	case PhaseDiscarded:
		return "discarded"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Outcome summarizes how a collision was handled.
type Outcome uint8

const (
	OutcomeGated     Outcome = iota // Collision ignored; the bubble is still in flight
	OutcomeAttached                 // The bubble joined the field and the round resolved
	OutcomeDiscarded                // The bubble left without joining the field
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeGated:
		return "gated"
	case OutcomeAttached:
		return "attached"
	case OutcomeDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

// RoundResult reports what one collision did to the field.
type RoundResult struct {
	Round    int
	Outcome  Outcome
	Booster  BoosterKind
	Color    Color
	Bubble   BubbleID // The attached bubble, or NoBubble
	Cell     Cell
	Groups   []MatchGroup // Popped groups in traversal order
	Popped   []BubbleID   // Every matched field bubble; a spent booster node is not one
	Floaters []BubbleID
	Cause    error // Why the bubble was discarded, if it was
}

// Cleared returns the number of bubbles the round removed from the field.
func (r RoundResult) Cleared() int {
	return len(r.Popped) + len(r.Floaters)
}

// Controller drives the rounds of one field:
// Idle -> Aimed -> Shot -> (Attached | Discarded) -> Resolving -> Idle.
//
// It is the only component that mutates the graph once the field is built.
// Every call runs to completion synchronously; there is no concurrency.
type Controller struct {
	g        *Graph
	resolver *AttachResolver
	policy   Policy
	feed     Feed
	events   *EventQueue
	launch   Point

	phase   Phase
	round   int
	current Player
	next    Color
	held    Color // Color displaced by a loaded booster
	holding bool
}

// NewController creates a controller for the field and starts the first round.
// launch is the field-space position every player bubble starts from.
func NewController(g *Graph, feed Feed, policy Policy, launch Point) *Controller {
	if feed == nil {
		feed = NewSequenceFeed()
	}
	c := &Controller{
		g:        g,
		resolver: NewAttachResolver(g),
		policy:   policy,
		feed:     feed,
		events:   NewEventQueue(),
		launch:   launch,
		round:    1,
	}
	first := feed.Next(g)
	c.next = feed.Next(g)
	c.startRound(first)
	return c
}

// Graph returns the field.
func (c *Controller) Graph() *Graph {
	return c.g
}

// Events returns the queue collaborators consume from.
func (c *Controller) Events() *EventQueue {
	return c.events
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Round returns the current round number, starting at 1.
func (c *Controller) Round() int {
	return c.round
}

// Player returns a copy of the live player bubble.
func (c *Controller) Player() Player {
	return c.current
}

// NextColor returns the color queued for the following round.
func (c *Controller) NextColor() Color {
	return c.next
}

// Policy returns the matching policy.
func (c *Controller) Policy() Policy {
	return c.policy
}

// LoadBooster replaces the player bubble of this round with a booster.
// The displaced color returns on the following round.
func (c *Controller) LoadBooster(kind BoosterKind) error {
	if c.phase != PhaseIdle && c.phase != PhaseAimed {
		return fmt.Errorf("load booster in phase %v: %w", c.phase, ErrInvalidState)
	}
	if c.current.Booster == kind {
		return nil
	}
	if c.current.Booster == BoosterStandard {
		c.held = c.current.Color
		c.holding = true
	}
	c.current.Booster = kind
	c.current.Color = ColorBlank
	BehaviorFor(kind).OnLoad(c.events, &c.current, c.round)
	return nil
}

// Aim points the player bubble along (dx, dy).
func (c *Controller) Aim(dx, dy float64) error {
	if c.phase != PhaseIdle && c.phase != PhaseAimed {
		return fmt.Errorf("aim in phase %v: %w", c.phase, ErrInvalidState)
	}
	c.current.Aim(dx, dy)
	c.current.State = PlayerAimed
	c.phase = PhaseAimed
	return nil
}

// Switch swaps the player bubble with the next one. Boosters refuse; the
// return value reports whether a swap happened.
func (c *Controller) Switch() bool {
	if c.phase != PhaseIdle && c.phase != PhaseAimed {
		return false
	}
	if !BehaviorFor(c.current.Booster).CanSwitch() {
		return false
	}
	c.current.Color, c.next = c.next, c.current.Color
	return true
}

// Shoot launches the aimed player bubble.
func (c *Controller) Shoot() error {
	if c.phase != PhaseAimed {
		return fmt.Errorf("shoot in phase %v: %w", c.phase, ErrInvalidState)
	}
	c.current.State = PlayerShot
	c.phase = PhaseShot
	BehaviorFor(c.current.Booster).OnShot(c.events, &c.current, c.round)
	return nil
}

// Move reports a new position of the bubble in flight.
func (c *Controller) Move(pos Point) error {
	if c.phase != PhaseShot {
		return fmt.Errorf("move in phase %v: %w", c.phase, ErrInvalidState)
	}
	c.current.Pos = pos
	c.events.Push(Event{Kind: EventMoved, Round: c.round, Bubble: NoBubble, Color: c.current.Color, Pos: pos, Booster: c.current.Booster})
	return nil
}

// Collide resolves a collision of the bubble in flight with a field bubble at
// the given point: attach, pop matches, then drop floaters, and start the next
// round. A closed booster gate returns OutcomeGated and changes nothing.
func (c *Controller) Collide(at Point, struck BubbleID) (RoundResult, error) {
	if c.phase != PhaseShot {
		return RoundResult{}, fmt.Errorf("collide in phase %v: %w", c.phase, ErrInvalidState)
	}
	sb, ok := c.g.Bubble(struck)
	if !ok || !sb.Live() {
		return RoundResult{}, fmt.Errorf("collide with %d: %w", struck, ErrUnknownBubble)
	}

	behavior := BehaviorFor(c.current.Booster)
	c.current.Pos = at
	result := RoundResult{
		Round:   c.round,
		Booster: c.current.Booster,
		Color:   c.current.Color,
		Bubble:  NoBubble,
	}
	if !behavior.Gate(c.g, &c.current, sb, c.policy) {
		result.Outcome = OutcomeGated
		return result, nil
	}

	id, err := c.resolver.Resolve(at, struck, c.current.Color)
	if errors.Is(err, ErrNoValidCell) {
		result.Outcome = OutcomeDiscarded
		result.Cause = err
		c.discard()
		return result, nil
	}
	if err != nil {
		return RoundResult{}, err
	}

	hit := Event{Kind: EventHit, Round: c.round, Bubble: struck, Cell: sb.Cell, Color: sb.Color, Pos: at, Booster: c.current.Booster}
	return c.settle(result, id, hit, behavior), nil
}

// CollideCeiling attaches the bubble in flight to the anchor row cell nearest
// to at. A booster has nothing to act on there and is discarded.
func (c *Controller) CollideCeiling(at Point) (RoundResult, error) {
	if c.phase != PhaseShot {
		return RoundResult{}, fmt.Errorf("ceiling in phase %v: %w", c.phase, ErrInvalidState)
	}

	behavior := BehaviorFor(c.current.Booster)
	c.current.Pos = at
	result := RoundResult{
		Round:   c.round,
		Booster: c.current.Booster,
		Color:   c.current.Color,
		Bubble:  NoBubble,
	}
	if behavior.Transient() {
		result.Outcome = OutcomeDiscarded
		c.discard()
		return result, nil
	}

	id, err := c.resolver.ResolveCeiling(at, c.current.Color)
	if errors.Is(err, ErrNoValidCell) {
		result.Outcome = OutcomeDiscarded
		result.Cause = err
		c.discard()
		return result, nil
	}
	if err != nil {
		return RoundResult{}, err
	}

	nb, _ := c.g.Bubble(id)
	hit := Event{Kind: EventHit, Round: c.round, Bubble: NoBubble, Cell: nb.Cell, Color: c.current.Color, Pos: at, Booster: c.current.Booster}
	return c.settle(result, id, hit, behavior), nil
}

// settle runs the attached half of a round: events, matching, floaters.
func (c *Controller) settle(result RoundResult, id BubbleID, hit Event, behavior Behavior) RoundResult {
	c.phase = PhaseAttached
	c.current.Consumed = true
	c.current.State = PlayerAttached
	nb, _ := c.g.Bubble(id)
	result.Outcome = OutcomeAttached
	result.Bubble = id
	result.Cell = nb.Cell
	c.events.Push(hit)
	c.emit(EventAttached, nb)

	c.phase = PhaseResolving
	for _, seed := range behavior.Seeds(c.g, id, c.policy) {
		group := Match(c.g, seed.IDs, seed.Color)
		if !group.Pops(seed.MinSize) {
			continue
		}
		c.pop(group.Members)
		result.Groups = append(result.Groups, group)
		result.Popped = append(result.Popped, group.Members...)
	}
	if b, ok := c.g.Bubble(id); ok && b.Live() && behavior.Transient() {
		c.pop([]BubbleID{id})
	}

	result.Floaters = c.drop()

	behavior.OnReset(c.events, &c.current, c.round)
	c.finishRound()
	return result
}

// CollideBoundary handles the bubble in flight leaving the field without a
// valid attach point. The graph is not touched.
func (c *Controller) CollideBoundary() (RoundResult, error) {
	if c.phase != PhaseShot {
		return RoundResult{}, fmt.Errorf("boundary in phase %v: %w", c.phase, ErrInvalidState)
	}
	result := RoundResult{
		Round:   c.round,
		Outcome: OutcomeDiscarded,
		Booster: c.current.Booster,
		Color:   c.current.Color,
		Bubble:  NoBubble,
	}
	c.discard()
	return result, nil
}

// pop marks a group matched, then removes it.
func (c *Controller) pop(ids []BubbleID) {
	for _, id := range ids {
		c.g.setState(id, StateMatched)
		b, _ := c.g.Bubble(id)
		c.emit(EventMatched, b)
	}
	c.remove(ids)
}

// drop finds the floaters left by this round's removals and releases them.
func (c *Controller) drop() []BubbleID {
	floaters := FindFloaters(c.g)
	for _, id := range floaters {
		c.g.setState(id, StateFalling)
		b, _ := c.g.Bubble(id)
		c.emit(EventFalling, b)
	}
	c.remove(floaters)
	return floaters
}

func (c *Controller) remove(ids []BubbleID) {
	for _, id := range ids {
		b, _ := c.g.Bubble(id)
		if c.g.Remove(id) {
			c.emit(EventRemoved, b)
		}
	}
}

func (c *Controller) emit(kind EventKind, b Bubble) {
	c.events.Push(Event{Kind: kind, Round: c.round, Bubble: b.ID, Cell: b.Cell, Color: b.Color, Pos: c.g.Topology().Center(b.Cell)})
}

func (c *Controller) discard() {
	c.phase = PhaseDiscarded
	c.current.State = PlayerDiscarded
	c.events.Push(Event{Kind: EventDiscarded, Round: c.round, Bubble: NoBubble, Color: c.current.Color, Pos: c.current.Pos, Booster: c.current.Booster})
	BehaviorFor(c.current.Booster).OnReset(c.events, &c.current, c.round)
	c.finishRound()
}

func (c *Controller) finishRound() {
	c.current.State = PlayerRemoved
	c.round++

	color := c.next
	if c.holding {
		color = c.held
		c.holding = false
	} else {
		c.next = c.feed.Next(c.g)
	}
	c.startRound(color)
}

func (c *Controller) startRound(color Color) {
	c.current = Player{
		Color: color,
		Pos:   c.launch,
		Dir:   Point{X: 0, Y: -1},
		State: PlayerReady,
	}
	c.phase = PhaseIdle
}
