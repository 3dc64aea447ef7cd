package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// SoundManager plays sounds through the system speaker.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*50))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Play queues a sound on the mixer. It is a no-op until Initialize succeeds.
func (sm *SoundManager) Play(s Sound) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || s >= soundCount {
		return
	}

	t := tones[s]
	streamer := beep.Take(sampleRate.N(t.length), newToneGenerator(sampleRate, t))
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// toneGenerator renders a frequency sweep with a linear fade out.
type toneGenerator struct {
	sr      beep.SampleRate
	tone    tone
	pos     int
	samples int
	phase   float64
	seed    uint32
}

// newToneGenerator creates a generator for one tone.
func newToneGenerator(sr beep.SampleRate, t tone) *toneGenerator {
	return &toneGenerator{
		sr:      sr,
		tone:    t,
		samples: max(sr.N(t.length), 1),
		seed:    0x9e3779b9,
	}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.tone.from + (g.tone.to-g.tone.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		// xorshift noise
		g.seed ^= g.seed << 13
		g.seed ^= g.seed >> 17
		g.seed ^= g.seed << 5
		noise := float64(g.seed)/float64(math.MaxUint32)*2 - 1

		envelope := 1 - progress
		sample := g.tone.volume * envelope * ((1-g.tone.noise)*math.Sin(g.phase) + g.tone.noise*noise)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
