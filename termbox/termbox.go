// Package termbox shows the bounce demo in a 256-color terminal through
// termbox-go, two pixels per cell like package term. termbox keeps global
// state, so only one Display can be open at a time.
package termbox

import (
	"sync"

	"github.com/nsf/termbox-go"

	"github.com/AchrafSoltani/bounce"
	"github.com/AchrafSoltani/bounce/raster"
)

const upperHalf = '▀'

// Display is a bounce.Display on the termbox terminal.
type Display struct {
	surface *raster.Surface
	backbuf []termbox.Cell
	cols    int

	mu     sync.Mutex
	locked bool
	closed bool

	events chan bounce.Event
	done   chan struct{}
}

// New initializes termbox in 256-color mode.
func New() (*Display, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.SetOutputMode(termbox.Output256)
	termbox.HideCursor()

	cols, rows := termbox.Size()
	d := &Display{
		surface: raster.NewSurface(cols, rows*2, raster.Packed32),
		cols:    cols,
		backbuf: make([]termbox.Cell, cols*rows),
		events:  make(chan bounce.Event, 256),
		done:    make(chan struct{}),
	}
	go d.pollEvents()

	bounce.Logger().Info("termbox open", "cols", cols, "rows", rows)
	return d, nil
}

// Size returns the surface size in pixels.
func (d *Display) Size() (width, height int) {
	return d.surface.Width, d.surface.Height
}

func (d *Display) Lock() (*raster.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, bounce.ErrClosed
	}
	if d.locked {
		return nil, bounce.ErrLocked
	}
	d.locked = true
	return d.surface, nil
}

func (d *Display) Unlock() {
	d.mu.Lock()
	d.locked = false
	d.mu.Unlock()
}

// Present fills the back buffer from the surface and copies it into
// termbox's cell buffer, which must still have the size New saw.
func (d *Display) Present() error {
	fillCells(d.backbuf, d.cols, d.surface)
	if w, h := termbox.Size(); w == d.cols && w*h == len(d.backbuf) {
		copy(termbox.CellBuffer(), d.backbuf)
	} else {
		for i, c := range d.backbuf {
			termbox.SetCell(i%d.cols, i/d.cols, c.Ch, c.Fg, c.Bg)
		}
	}
	return termbox.Flush()
}

// fillCells turns pixel row pairs into half block cells.
func fillCells(cells []termbox.Cell, cols int, s *raster.Surface) {
	for i := range cells {
		x, row := i%cols, i/cols
		cells[i] = termbox.Cell{
			Ch: upperHalf,
			Fg: attr(s.RGBAt(x, 2*row)),
			Bg: attr(s.RGBAt(x, 2*row+1)),
		}
	}
}

// attr maps a color to the 6x6x6 cube of the 256-color palette. termbox
// reserves attribute 0 for the default color, hence the +1.
func attr(c raster.Color) termbox.Attribute {
	q := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return termbox.Attribute(16 + 36*q(c.R) + 6*q(c.G) + q(c.B) + 1)
}

func (d *Display) PollEvent() *bounce.Event {
	select {
	case e := <-d.events:
		return &e
	default:
		return nil
	}
}

// Close interrupts the event reader and restores the terminal.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	// Interrupt blocks until PollEvent takes it, so skip it when the reader
	// already stopped on an input error.
	select {
	case <-d.done:
	default:
		termbox.Interrupt()
		<-d.done
	}
	termbox.Close()
	return nil
}

func (d *Display) pollEvents() {
	defer close(d.done)
	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return
		case termbox.EventError:
			bounce.Logger().Warn("termbox input error", "err", ev.Err)
			return
		}
		if e, ok := convert(ev); ok {
			select {
			case d.events <- e:
			default:
			}
		}
	}
}

func convert(ev termbox.Event) (bounce.Event, bool) {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Ch != 0 {
			return keyDown(bounce.KeyFromRune(ev.Ch)), true
		}
		switch ev.Key {
		case termbox.KeyCtrlC:
			return bounce.Event{Type: bounce.EventQuit}, true
		case termbox.KeyEsc:
			return keyDown(bounce.KeyEscape), true
		case termbox.KeySpace:
			return keyDown(bounce.KeySpace), true
		case termbox.KeyEnter:
			return keyDown(bounce.KeyEnter), true
		case termbox.KeyArrowUp:
			return keyDown(bounce.KeyUp), true
		case termbox.KeyArrowDown:
			return keyDown(bounce.KeyDown), true
		case termbox.KeyArrowLeft:
			return keyDown(bounce.KeyLeft), true
		case termbox.KeyArrowRight:
			return keyDown(bounce.KeyRight), true
		}
	case termbox.EventResize:
		return bounce.Event{Type: bounce.EventResize, Width: ev.Width, Height: ev.Height * 2}, true
	}
	return bounce.Event{}, false
}

func keyDown(k bounce.Key) bounce.Event {
	return bounce.Event{Type: bounce.EventKeyDown, Key: k}
}
