package core

// Action is a semantic input, independent of the key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Rotate aim left
	ActionRight          // Rotate aim right
	ActionFire           // Shoot the loaded bubble
	ActionSwitch         // Swap current and next bubble
	ActionBooster        // Load a booster
	ActionHint           // Aim at the best shot
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Left", "Right", "Fire", "Switch", "Booster", "Hint",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one tick. The zero
// value is empty and ready to use.
type InputFrame struct {
	bits uint32
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

func (f *InputFrame) Clear() {
	f.bits = 0
}
