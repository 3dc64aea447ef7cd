// Package audio is the sound collaborator of the game: it turns engine events
// into short synthesized tones.
package audio

import (
	"time"

	"github.com/vovakirdan/bubblepop/internal/games/bubblepop/core"
)

// Sound names a game sound.
type Sound uint8

const (
	SoundShoot Sound = iota
	SoundHit
	SoundPop
	SoundDrop
	SoundAddBooster
	SoundBoosterGone
	SoundLevelWon
	SoundGameOver
	soundCount
)

// String returns the string representation of a sound.
func (s Sound) String() string {
	switch s {
	case SoundShoot:
		return "shoot"
	case SoundHit:
		return "hit"
	case SoundPop:
		return "pop"
	case SoundDrop:
		return "drop"
	case SoundAddBooster:
		return "add_booster"
	case SoundBoosterGone:
		return "booster_gone"
	case SoundLevelWon:
		return "level_won"
	case SoundGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// tone describes a sound as a frequency sweep.
type tone struct {
	from, to float64 // Hz
	length   time.Duration
	volume   float64
	noise    float64 // Share of noise mixed into the tone
}

var tones = [soundCount]tone{
	SoundShoot:       {from: 520, to: 880, length: 80 * time.Millisecond, volume: 0.20},
	SoundHit:         {from: 220, to: 180, length: 60 * time.Millisecond, volume: 0.25, noise: 0.3},
	SoundPop:         {from: 660, to: 1320, length: 120 * time.Millisecond, volume: 0.25},
	SoundDrop:        {from: 440, to: 110, length: 250 * time.Millisecond, volume: 0.20},
	SoundAddBooster:  {from: 330, to: 990, length: 200 * time.Millisecond, volume: 0.20},
	SoundBoosterGone: {from: 200, to: 120, length: 180 * time.Millisecond, volume: 0.15, noise: 0.5},
	SoundLevelWon:    {from: 523, to: 1046, length: 400 * time.Millisecond, volume: 0.25},
	SoundGameOver:    {from: 392, to: 98, length: 600 * time.Millisecond, volume: 0.25},
}

// ForEvent returns the sound an engine event triggers, if any.
func ForEvent(e core.Event) (Sound, bool) {
	switch e.Kind {
	case core.EventShoot:
		return SoundShoot, true
	case core.EventHit:
		return SoundHit, true
	case core.EventMatched:
		return SoundPop, true
	case core.EventFalling:
		return SoundDrop, true
	case core.EventBoosterAdded:
		return SoundAddBooster, true
	case core.EventBoosterConsumed, core.EventBoosterRemoved:
		return SoundBoosterGone, true
	default:
		// EventBoosterShot always follows an EventShoot and stays silent.
		return 0, false
	}
}

// Player plays sounds. Calls must not block.
type Player interface {
	Play(s Sound)
}

// Nop is a Player that stays silent.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Sound) {}

// Drain plays the sounds of a batch of events. Each sound plays at most once
// per batch so a large pop does not stack dozens of identical tones.
func Drain(p Player, events []core.Event) {
	var played [soundCount]bool
	for _, e := range events {
		s, ok := ForEvent(e)
		if !ok || played[s] {
			continue
		}
		played[s] = true
		p.Play(s)
	}
}
