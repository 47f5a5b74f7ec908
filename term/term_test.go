package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/AchrafSoltani/bounce"
	"github.com/AchrafSoltani/bounce/raster"
)

func newTestDisplay(t *testing.T) (*Display, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	d, err := NewWithScreen(sim)
	if err != nil {
		t.Fatalf("NewWithScreen failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d, sim
}

func TestSurfaceIsTwiceAsTall(t *testing.T) {
	d, sim := newTestDisplay(t)
	cols, rows := sim.Size()
	if w, h := d.Size(); w != cols || h != 2*rows {
		t.Errorf("surface %dx%d for a %dx%d terminal", w, h, cols, rows)
	}
}

func TestPresentDrawsHalfBlocks(t *testing.T) {
	d, sim := newTestDisplay(t)

	s, err := d.Lock()
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	s.Clear(raster.Black.Map(s.Format))
	raster.SetPixel(s, 3, 0, raster.Red.Map(s.Format))
	raster.SetPixel(s, 3, 1, raster.Blue.Map(s.Format))
	d.Unlock()

	if err := d.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}

	r, _, style, _ := sim.GetContent(3, 0)
	if r != upperHalf {
		t.Fatalf("cell rune = %q, want %q", r, upperHalf)
	}
	want := tcell.StyleDefault.Foreground(rgb(raster.Red)).Background(rgb(raster.Blue))
	if style != want {
		t.Errorf("cell style does not carry red over blue")
	}

	_, _, style, _ = sim.GetContent(0, 0)
	black := tcell.StyleDefault.Foreground(rgb(raster.Black)).Background(rgb(raster.Black))
	if style != black {
		t.Errorf("untouched cell is not black")
	}
}

func TestLockIsExclusive(t *testing.T) {
	d, _ := newTestDisplay(t)
	if _, err := d.Lock(); err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if _, err := d.Lock(); err != bounce.ErrLocked {
		t.Errorf("second Lock returned %v, want ErrLocked", err)
	}
	d.Unlock()
	d.Close()
	if _, err := d.Lock(); err != bounce.ErrClosed {
		t.Errorf("Lock after Close returned %v, want ErrClosed", err)
	}
}

func TestKeysArriveAsEvents(t *testing.T) {
	d, sim := newTestDisplay(t)
	sim.InjectKey(tcell.KeyRune, 'P', tcell.ModNone)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if e := d.PollEvent(); e != nil && e.Type == bounce.EventKeyDown {
			if e.Key != 'p' {
				t.Errorf("key = %q, want 'p'", e.Key)
			}
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no key event received")
}

func TestConvert(t *testing.T) {
	tests := []struct {
		ev   tcell.Event
		want bounce.Event
	}{
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), bounce.Event{Type: bounce.EventKeyDown, Key: bounce.KeyEscape}},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), bounce.Event{Type: bounce.EventKeyDown, Key: bounce.KeySpace}},
		{tcell.NewEventResize(80, 24), bounce.Event{Type: bounce.EventResize, Width: 80, Height: 48}},
	}
	for i, tt := range tests {
		got, ok := convert(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("case %d: got %+v, %v; want %+v", i, got, ok, tt.want)
		}
	}
}
