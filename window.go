package bounce

import (
	"fmt"
	"sync"

	"github.com/AchrafSoltani/bounce/internal/x11"
	"github.com/AchrafSoltani/bounce/raster"
)

// Window is an X11 window Display. Frames are drawn into a client side
// surface in the server's native pixel format and pushed with PutImage.
type Window struct {
	conn    *x11.Conn
	id      uint32
	gc      uint32
	surface *raster.Surface

	mu     sync.Mutex
	locked bool
	closed bool

	events chan Event
	quit   chan struct{}
}

// NewWindow opens a window on display ("" for $DISPLAY).
func NewWindow(display, title string, width, height int) (*Window, error) {
	conn, err := x11.Dial(display)
	if err != nil {
		return nil, err
	}

	format := raster.FormatForBytes(int(conn.BitsPerPixel) / 8)
	if !format.Supported() {
		conn.Close()
		return nil, fmt.Errorf("bounce: %w: server uses %d bits per pixel", raster.ErrUnsupportedFormat, conn.BitsPerPixel)
	}

	id, err := conn.CreateWindow(uint16(width), uint16(height))
	if err != nil {
		conn.Close()
		return nil, err
	}
	fail := func(err error) (*Window, error) {
		conn.DestroyWindow(id)
		conn.Close()
		return nil, err
	}

	gc, err := conn.CreateGC(id)
	if err != nil {
		return fail(err)
	}
	if err := conn.SetTitle(id, title); err != nil {
		return fail(err)
	}
	if err := conn.EnableCloseButton(id); err != nil {
		return fail(err)
	}
	if err := conn.MapWindow(id); err != nil {
		return fail(err)
	}

	// Rows use the server's scanline padding so frames go out unchanged
	pitch := conn.Stride(width)
	w := &Window{
		conn: conn,
		id:   id,
		gc:   gc,
		surface: &raster.Surface{
			Width:  width,
			Height: height,
			Pitch:  pitch,
			Format: format,
			Pixels: make([]byte, pitch*height),
		},
		events: make(chan Event, 256),
		quit:   make(chan struct{}),
	}
	go w.pollEvents()

	Logger().Info("x11 window open", "width", width, "height", height, "format", format, "depth", conn.RootDepth)
	return w, nil
}

func (w *Window) Lock() (*raster.Surface, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil, ErrClosed
	}
	if w.locked {
		return nil, ErrLocked
	}
	w.locked = true
	return w.surface, nil
}

func (w *Window) Unlock() {
	w.mu.Lock()
	w.locked = false
	w.mu.Unlock()
}

// Present copies the surface to the window.
func (w *Window) Present() error {
	s := w.surface
	return w.conn.PutImage(w.id, w.gc, s.Width, s.Height, s.Pitch, s.Pixels)
}

// PollEvent returns the next event, or nil if none is available.
func (w *Window) PollEvent() *Event {
	select {
	case e := <-w.events:
		return &e
	default:
		return nil
	}
}

// Close destroys the window and drops the connection.
func (w *Window) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.quit)
	w.conn.FreeGC(w.gc)
	w.conn.DestroyWindow(w.id)
	return w.conn.Close()
}

// pollEvents runs in a goroutine, reading X11 events and sending to channel
func (w *Window) pollEvents() {
	for {
		xe, err := w.conn.NextEvent()
		if err != nil {
			select {
			case <-w.quit:
			default:
				Logger().Warn("x11 connection lost", "err", err)
				w.send(Event{Type: EventQuit})
			}
			return
		}
		if e, ok := w.convert(xe); ok && !w.send(e) {
			return
		}
	}
}

// send delivers e unless the window is closing. A full queue drops it.
func (w *Window) send(e Event) bool {
	select {
	case w.events <- e:
	case <-w.quit:
		return false
	default:
	}
	return true
}

func (w *Window) convert(xe x11.Event) (Event, bool) {
	switch e := xe.(type) {
	case x11.KeyEvent:
		t := EventKeyDown
		if e.Release {
			t = EventKeyUp
		}
		return Event{Type: t, Key: keyFromX11(e.Keycode)}, true
	case x11.ExposeEvent:
		if e.Count == 0 {
			return Event{Type: EventExpose, Width: int(e.Width), Height: int(e.Height)}, true
		}
	case x11.ConfigureEvent:
		return Event{Type: EventResize, Width: int(e.Width), Height: int(e.Height)}, true
	case x11.ClientMessageEvent:
		if w.conn.IsDeleteWindow(e) {
			return Event{Type: EventQuit}, true
		}
	case x11.ErrorEvent:
		Logger().Warn("x11 error", "code", e.ErrorCode, "opcode", e.Major, "seq", e.Sequence)
	}
	return Event{}, false
}
