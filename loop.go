package bounce

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/AchrafSoltani/bounce/particle"
	"github.com/AchrafSoltani/bounce/raster"
)

// ErrFellBehind is returned by Loop.Run when a tick finishes after the
// deadline of the next one. The loop does not try to catch up.
var ErrFellBehind = errors.New("bounce: fell behind schedule")

// Clock is a monotonic time source.
type Clock interface {
	Now() time.Duration
	Sleep(time.Duration)
}

type monotonic struct{ start time.Time }

func (c monotonic) Now() time.Duration { return time.Since(c.start) }
func (monotonic) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock returns a Clock backed by the monotonic wall clock.
func SystemClock() Clock {
	return monotonic{start: time.Now()}
}

// Hooks are optional callbacks run by the loop.
type Hooks struct {
	// OnTick runs after each simulated tick has been drawn
	OnTick func(tick int, stats particle.Stats)

	// OnSnapshot runs with the locked surface when S is pressed
	OnSnapshot func(s *raster.Surface)
}

// Loop drives a particle system at a fixed tick rate:
// poll input, update, draw, present, sleep until the next tick.
type Loop struct {
	Display  Display
	System   *particle.System
	Renderer *Renderer
	Clock    Clock
	Rand     *rand.Rand
	TickRate int
	MaxTicks int
	Hooks    Hooks

	tick     int
	paused   bool
	snapshot bool
	fps      float64
}

// NewLoop wires a loop from cfg.
func NewLoop(cfg Config, d Display, sys *particle.System, rng *rand.Rand) *Loop {
	return &Loop{
		Display:  d,
		System:   sys,
		Renderer: NewRenderer(cfg),
		Clock:    SystemClock(),
		Rand:     rng,
		TickRate: cfg.TickRate,
		MaxTicks: cfg.MaxTicks,
	}
}

// Tick returns the number of simulated ticks so far.
func (l *Loop) Tick() int { return l.tick }

// Run runs until a quit request, Escape, MaxTicks, context cancellation or
// an overrun. A quit returns nil; an overrun returns ErrFellBehind.
func (l *Loop) Run(ctx context.Context) error {
	if l.TickRate <= 0 {
		return ErrBadTickRate
	}
	clock := l.Clock
	if clock == nil {
		clock = SystemClock()
	}
	if l.Renderer == nil {
		l.Renderer = &Renderer{Outline: raster.White, Walls: raster.Gray}
	}

	interval := time.Second / time.Duration(l.TickRate)
	dt := 1 / float64(l.TickRate)

	next := clock.Now()
	fpsStart, fpsFrames := next, 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if l.handleEvents() {
			return nil
		}

		var stats particle.Stats
		if !l.paused {
			stats = l.System.Update(dt)
			l.tick++
		}

		l.Renderer.Status = Status{Tick: l.tick, FPS: l.fps, Paused: l.paused}
		if err := l.Renderer.Draw(l.Display, l.System); err == nil {
			if err := l.Display.Present(); err != nil {
				return fmt.Errorf("bounce: present: %w", err)
			}
			fpsFrames++
		}
		if l.snapshot {
			l.snapshot = false
			l.takeSnapshot()
		}
		if !l.paused && l.Hooks.OnTick != nil {
			l.Hooks.OnTick(l.tick, stats)
		}
		if l.MaxTicks > 0 && l.tick >= l.MaxTicks {
			return nil
		}

		now := clock.Now()
		if el := now - fpsStart; el >= time.Second {
			l.fps = float64(fpsFrames) / el.Seconds()
			fpsStart, fpsFrames = now, 0
		}

		next += interval
		if next < now {
			Logger().Warn("running behind, stopping", "tick", l.tick, "late", now-next)
			return ErrFellBehind
		}
		clock.Sleep(next - now)
	}
}

// handleEvents drains pending events and reports whether to quit.
func (l *Loop) handleEvents() bool {
	for e := l.Display.PollEvent(); e != nil; e = l.Display.PollEvent() {
		switch e.Type {
		case EventQuit:
			return true
		case EventKeyDown:
			if l.handleKey(e.Key) {
				return true
			}
		default:
			Logger().Debug("unhandled event", "type", e.Type, "width", e.Width, "height", e.Height)
		}
	}
	return false
}

func (l *Loop) handleKey(k Key) bool {
	switch k {
	case KeyEscape, 'q':
		return true
	case KeySpace, 'p':
		l.paused = !l.paused
	case 'r':
		if l.Rand == nil {
			l.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		}
		l.System.Reset(l.Rand)
	case 'm':
		l.Renderer.Toggle()
	case 's':
		l.snapshot = true
	default:
		Logger().Debug("unbound key", "key", k)
	}
	return false
}

func (l *Loop) takeSnapshot() {
	if l.Hooks.OnSnapshot == nil {
		return
	}
	s, err := l.Display.Lock()
	if err != nil {
		Logger().Warn("snapshot skipped", "err", err)
		return
	}
	defer l.Display.Unlock()
	l.Hooks.OnSnapshot(s)
}
