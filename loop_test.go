package bounce

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/AchrafSoltani/bounce/particle"
	"github.com/AchrafSoltani/bounce/raster"
)

// fakeClock advances only when slept on or told to.
type fakeClock struct {
	now   time.Duration
	slept []time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now += d
}

func testLoop(t *testing.T) (*Loop, *Headless, *fakeClock) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 64, 48
	cfg.Particles = 3
	sys, err := particle.New(cfg.ParticleConfig(), rand.New(rand.NewPCG(7, 7)))
	if err != nil {
		t.Fatalf("particle.New failed: %v", err)
	}
	d := NewHeadless(cfg.Width, cfg.Height, raster.Packed32)
	clock := &fakeClock{}
	l := NewLoop(cfg, d, sys, rand.New(rand.NewPCG(1, 1)))
	l.Clock = clock
	return l, d, clock
}

func TestLoopRunsMaxTicks(t *testing.T) {
	l, d, clock := testLoop(t)
	l.MaxTicks = 10

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if d.Frames() != 10 || l.Tick() != 10 {
		t.Errorf("frames = %d, ticks = %d; want 10 each", d.Frames(), l.Tick())
	}
	if len(clock.slept) != 9 {
		t.Fatalf("slept %d times, want 9", len(clock.slept))
	}
	for i, s := range clock.slept {
		if s != 40*time.Millisecond {
			t.Errorf("sleep %d = %v, want 40ms", i, s)
		}
	}
}

func TestLoopOverrunFailsFast(t *testing.T) {
	l, d, _ := testLoop(t)
	clock := l.Clock.(*fakeClock)
	l.Hooks.OnTick = func(int, particle.Stats) {
		clock.now += 100 * time.Millisecond
	}

	if err := l.Run(context.Background()); !errors.Is(err, ErrFellBehind) {
		t.Fatalf("Run returned %v, want ErrFellBehind", err)
	}
	if d.Frames() != 1 {
		t.Errorf("presented %d frames before stopping, want 1", d.Frames())
	}
}

func TestLoopDeadlineEqualToNowSleepsZero(t *testing.T) {
	l, _, clock := testLoop(t)
	l.MaxTicks = 3
	l.Hooks.OnTick = func(int, particle.Stats) {
		clock.now += 40 * time.Millisecond
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	for i, s := range clock.slept {
		if s != 0 {
			t.Errorf("sleep %d = %v, want 0", i, s)
		}
	}
}

func TestLoopQuitEvent(t *testing.T) {
	l, d, _ := testLoop(t)
	d.Push(Event{Type: EventQuit})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if d.Frames() != 0 {
		t.Errorf("presented %d frames after quit", d.Frames())
	}
}

func TestLoopEscapeQuits(t *testing.T) {
	l, d, _ := testLoop(t)
	d.OnPresent = func(*raster.Surface) {
		if d.Frames() == 2 {
			d.Push(Event{Type: EventKeyDown, Key: KeyEscape})
		}
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if l.Tick() != 2 {
		t.Errorf("stopped after %d ticks, want 2", l.Tick())
	}
}

func TestLoopContextCancel(t *testing.T) {
	l, _, _ := testLoop(t)
	ctx, cancel := context.WithCancel(context.Background())
	l.Hooks.OnTick = func(tick int, _ particle.Stats) {
		if tick == 5 {
			cancel()
		}
	}

	if err := l.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v, want context.Canceled", err)
	}
	if l.Tick() != 5 {
		t.Errorf("stopped after %d ticks, want 5", l.Tick())
	}
}

func TestLoopLockFailureAbortsFrame(t *testing.T) {
	l, d, _ := testLoop(t)
	l.MaxTicks = 3
	d.FailLock(errors.New("device lost"))
	l.Hooks.OnTick = func(int, particle.Stats) {
		d.FailLock(nil)
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if d.Frames() != 2 {
		t.Errorf("presented %d frames, want 2", d.Frames())
	}
	if l.Tick() != 3 {
		t.Errorf("simulated %d ticks, want 3", l.Tick())
	}
}

func TestLoopPauseFreezesSimulation(t *testing.T) {
	l, d, _ := testLoop(t)
	before := append([]particle.Particle(nil), l.System.Particles()...)

	d.Push(Event{Type: EventKeyDown, Key: KeySpace})
	d.OnPresent = func(*raster.Surface) {
		if d.Frames() == 3 {
			d.Push(Event{Type: EventQuit})
		}
	}

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if l.Tick() != 0 {
		t.Errorf("ticked %d times while paused", l.Tick())
	}
	for i, p := range l.System.Particles() {
		if p != before[i] {
			t.Errorf("particle %d moved while paused", i)
		}
	}
}

func TestLoopKeys(t *testing.T) {
	l, d, _ := testLoop(t)
	l.MaxTicks = 1
	var snaps int
	l.Hooks.OnSnapshot = func(s *raster.Surface) {
		if s == nil {
			t.Error("snapshot got a nil surface")
		}
		snaps++
	}
	d.Push(Event{Type: EventKeyDown, Key: 'm'})
	d.Push(Event{Type: EventKeyDown, Key: 's'})
	d.Push(Event{Type: EventResize, Width: 10, Height: 10})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	if l.Renderer.Mode != RenderCircles {
		t.Errorf("render mode = %v, want circles", l.Renderer.Mode)
	}
	if snaps != 1 {
		t.Errorf("took %d snapshots, want 1", snaps)
	}
}

func TestLoopResetKey(t *testing.T) {
	l, d, _ := testLoop(t)
	l.MaxTicks = 1
	before := append([]particle.Particle(nil), l.System.Particles()...)
	d.Push(Event{Type: EventKeyDown, Key: 'r'})

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	same := 0
	for i, p := range l.System.Particles() {
		if p.Color == before[i].Color {
			same++
		}
	}
	if same == len(before) {
		t.Error("reset kept every particle color")
	}
}

func TestLoopRejectsBadTickRate(t *testing.T) {
	l, _, _ := testLoop(t)
	l.TickRate = 0
	if err := l.Run(context.Background()); !errors.Is(err, ErrBadTickRate) {
		t.Errorf("Run returned %v, want ErrBadTickRate", err)
	}
}
