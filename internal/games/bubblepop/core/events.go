package core

// EventKind identifies an engine notification.
type EventKind uint8

const (
	EventAttached        EventKind = iota // A field bubble was created from the player bubble
	EventMatched                          // A bubble joined a popped group
	EventFalling                          // A bubble lost its path to the anchor row
	EventRemoved                          // A bubble left the graph
	EventMoved                            // The player bubble moved
	EventShoot                            // The player bubble was launched
	EventHit                              // The player bubble struck the field and attached
	EventDiscarded                        // The player bubble left without joining the field
	EventBoosterAdded                     // A booster was loaded
	EventBoosterShot                      // A booster was launched
	EventBoosterConsumed                  // A booster resolved its effect and is gone
	EventBoosterRemoved                   // A booster left without resolving
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventAttached:
		return "attached"
	case EventMatched:
		return "matched"
	case EventFalling:
		return "falling"
	case EventRemoved:
		return "removed"
	case EventMoved:
		return "moved"
	case EventShoot:
		return "shoot"
	case EventHit:
		return "hit"
	case EventDiscarded:
		return "discarded"
	case EventBoosterAdded:
		return "booster_added"
	case EventBoosterShot:
		return "booster_shot"
	case EventBoosterConsumed:
		return "booster_consumed"
	case EventBoosterRemoved:
		return "booster_removed"
	default:
		return "unknown"
	}
}

// Event is a lifecycle notification for render and audio collaborators.
// Fields not relevant to a kind are left at their zero value; Bubble is
// NoBubble for player-only events.
type Event struct {
	Kind    EventKind
	Round   int
	Bubble  BubbleID
	Cell    Cell
	Color   Color
	Pos     Point
	Booster BoosterKind
}

// EventQueue is a FIFO of engine events. The controller pushes while it
// resolves a round; collaborators consume between rounds.
type EventQueue struct {
	events []Event
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event.
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Consume returns all pending events in FIFO order and empties the queue.
func (q *EventQueue) Consume() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return len(q.events)
}
