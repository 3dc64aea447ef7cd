package core

// DefaultMinMatch is the ordinary-play group size needed to pop.
const DefaultMinMatch = 3

// Policy holds the matching parameters that sit outside the traversals.
type Policy struct {
	// MinMatch is the group size ordinary shots need to pop. Values below
	// MinGroupSize are raised to it.
	MinMatch int

	// GateInclusive sets the boundary of the booster direction gate. The gate
	// passes when the incoming bubble's Y is greater than (or, if inclusive,
	// equal to) the struck bubble's Y, i.e. the struck bubble is level with or
	// above the incoming one on screen.
	GateInclusive bool
}

// DefaultPolicy returns the standard rules.
func DefaultPolicy() Policy {
	return Policy{
		MinMatch:      DefaultMinMatch,
		GateInclusive: true,
	}
}

// MinGroup returns the effective ordinary-play pop threshold.
func (p Policy) MinGroup() int {
	if p.MinMatch < MinGroupSize {
		return MinGroupSize
	}
	return p.MinMatch
}

// GateAllows applies the direction gate to an incoming position and the
// center of the struck bubble.
func (p Policy) GateAllows(incoming, struck Point) bool {
	if p.GateInclusive {
		return incoming.Y >= struck.Y
	}
	return incoming.Y > struck.Y
}
