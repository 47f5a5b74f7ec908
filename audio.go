package bounce

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/AchrafSoltani/bounce/particle"
)

const audioRate = beep.SampleRate(44100)

// Blip lengths and pitches. Each particle gets its own note of a
// pentatonic scale so overlapping bounces stay consonant.
const (
	blipLength = 60 * time.Millisecond
	maxVoices  = 8
)

var scale = []float64{261.63, 293.66, 329.63, 392.00, 440.00, 523.25, 587.33, 659.25}

// Audio plays a short blip for every bounce. It is silent until Init
// succeeds, so a machine without a sound device still runs the demo.
type Audio struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ready  bool
	volume float64
}

// NewAudio creates a bounce sound player. Volume is a linear gain in
// (0, 1].
func NewAudio(volume float64) *Audio {
	return &Audio{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the default output device.
func (a *Audio) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ready {
		return nil
	}
	if err := speaker.Init(audioRate, audioRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(a.mixer)
	a.ready = true
	return nil
}

// Bounce queues one blip per particle that hit a boundary this tick.
func (a *Audio) Bounce(stats particle.Stats) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready || len(stats.Bounced) == 0 {
		return
	}

	// The speaker goroutine streams from the mixer under this lock
	speaker.Lock()
	defer speaker.Unlock()
	for _, i := range stats.Bounced {
		if a.mixer.Len() >= maxVoices {
			return
		}
		a.mixer.Add(gain(Blip(scale[i%len(scale)], blipLength, audioRate), a.volume))
	}
}

// Close stops every queued sound.
func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.ready {
		return
	}
	speaker.Clear()
	a.ready = false
}

func gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// fade scales a streamer linearly from full volume to silence over n
// samples.
type fade struct {
	beep.Streamer
	pos, n int
}

// Blip returns a sine tone of the given frequency and length that fades
// linearly to silence. Frequencies at or above the Nyquist limit give
// silence.
func Blip(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	n := rate.N(d)
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return beep.Silence(n)
	}
	return beep.Take(n, &fade{Streamer: tone, n: n})
}

func (f *fade) Stream(samples [][2]float64) (int, bool) {
	if f.pos >= f.n {
		return 0, false
	}
	if len(samples) > f.n-f.pos {
		samples = samples[:f.n-f.pos]
	}
	n, ok := f.Streamer.Stream(samples)
	for i := range samples[:n] {
		env := 1 - float64(f.pos)/float64(f.n)
		samples[i][0] *= env
		samples[i][1] *= env
		f.pos++
	}
	return n, ok
}
