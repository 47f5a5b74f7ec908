package bounce

import (
	"sync"

	"github.com/AchrafSoltani/bounce/raster"
)

// Headless is an in-memory Display. Frames are kept in a surface of any
// supported format and events are injected with Push.
type Headless struct {
	mu      sync.Mutex
	surface *raster.Surface
	locked  bool
	closed  bool
	frames  int
	lockErr error

	events chan Event

	// OnPresent, if set, is called with the surface after each Present
	OnPresent func(*raster.Surface)
}

// NewHeadless creates a headless display with a tightly packed surface.
func NewHeadless(width, height int, format raster.PixelFormat) *Headless {
	return &Headless{
		surface: raster.NewSurface(width, height, format),
		events:  make(chan Event, 256),
	}
}

func (h *Headless) Lock() (*raster.Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch {
	case h.closed:
		return nil, ErrClosed
	case h.lockErr != nil:
		return nil, h.lockErr
	case h.locked:
		return nil, ErrLocked
	}
	h.locked = true
	return h.surface, nil
}

func (h *Headless) Unlock() {
	h.mu.Lock()
	h.locked = false
	h.mu.Unlock()
}

func (h *Headless) Present() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	h.frames++
	fn := h.OnPresent
	h.mu.Unlock()

	if fn != nil {
		fn(h.surface)
	}
	return nil
}

// PollEvent returns the next pushed event, or nil.
func (h *Headless) PollEvent() *Event {
	select {
	case e := <-h.events:
		return &e
	default:
		return nil
	}
}

// Push queues an event. It is dropped when the queue is full.
func (h *Headless) Push(e Event) {
	select {
	case h.events <- e:
	default:
	}
}

func (h *Headless) Close() error {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
	return nil
}

// FailLock makes every following Lock return err until called with nil.
func (h *Headless) FailLock(err error) {
	h.mu.Lock()
	h.lockErr = err
	h.mu.Unlock()
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Surface returns the backing surface.
func (h *Headless) Surface() *raster.Surface {
	return h.surface
}
