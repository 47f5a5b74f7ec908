// Package term shows the bounce demo in a terminal through tcell. Every
// character cell holds two vertically stacked pixels drawn as an upper
// half block with the top pixel as foreground and the bottom one as
// background, so a W x H terminal gives a W x 2H surface.
package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/AchrafSoltani/bounce"
	"github.com/AchrafSoltani/bounce/raster"
)

const upperHalf = '▀'

// Display is a bounce.Display on a tcell screen.
type Display struct {
	screen  tcell.Screen
	surface *raster.Surface

	mu     sync.Mutex
	locked bool
	closed bool

	events chan bounce.Event
	quit   chan struct{}
}

// New opens the terminal and sizes the surface to fit it.
func New() (*Display, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen)
}

// NewWithScreen uses an existing, uninitialized screen, such as a
// simulation screen in tests.
func NewWithScreen(screen tcell.Screen) (*Display, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	cols, rows := screen.Size()

	d := &Display{
		screen:  screen,
		surface: raster.NewSurface(cols, rows*2, raster.Packed32),
		events:  make(chan bounce.Event, 256),
		quit:    make(chan struct{}),
	}
	go d.pollEvents()

	bounce.Logger().Info("terminal open", "cols", cols, "rows", rows)
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

// Present writes the surface into the cells that fit the current terminal
// size and shows them.
func (d *Display) Present() error {
	s := d.surface
	cols, rows := d.screen.Size()
	cols = min(cols, s.Width)
	rows = min(rows, (s.Height+1)/2)

	for row := 0; row < rows; row++ {
		for x := 0; x < cols; x++ {
			top := s.RGBAt(x, 2*row)
			bottom := s.RGBAt(x, 2*row+1)
			style := tcell.StyleDefault.
				Foreground(rgb(top)).
				Background(rgb(bottom))
			d.screen.SetContent(x, row, upperHalf, nil, style)
		}
	}
	d.screen.Show()
	return nil
}

func rgb(c raster.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (d *Display) PollEvent() *bounce.Event {
	select {
	case e := <-d.events:
		return &e
	default:
		return nil
	}
}

// Close restores the terminal.
func (d *Display) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	close(d.quit)
	d.screen.Fini()
	return nil
}

// pollEvents forwards tcell events until the screen is finalized, at which
// point PollEvent returns nil.
func (d *Display) pollEvents() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		e, ok := convert(ev)
		if !ok {
			continue
		}
		select {
		case d.events <- e:
		case <-d.quit:
			return
		default:
		}
	}
}

func convert(ev tcell.Event) (bounce.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return bounce.Event{Type: bounce.EventQuit}, true
		case tcell.KeyEscape:
			return keyDown(bounce.KeyEscape), true
		case tcell.KeyEnter:
			return keyDown(bounce.KeyEnter), true
		case tcell.KeyUp:
			return keyDown(bounce.KeyUp), true
		case tcell.KeyDown:
			return keyDown(bounce.KeyDown), true
		case tcell.KeyLeft:
			return keyDown(bounce.KeyLeft), true
		case tcell.KeyRight:
			return keyDown(bounce.KeyRight), true
		case tcell.KeyRune:
			if ev.Modifiers()&tcell.ModCtrl != 0 && (ev.Rune() == 'c' || ev.Rune() == 'C') {
				return bounce.Event{Type: bounce.EventQuit}, true
			}
			return keyDown(bounce.KeyFromRune(ev.Rune())), true
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		return bounce.Event{Type: bounce.EventResize, Width: w, Height: h * 2}, true
	}
	return bounce.Event{}, false
}

// Terminals only report presses.
func keyDown(k bounce.Key) bounce.Event {
	return bounce.Event{Type: bounce.EventKeyDown, Key: k}
}
