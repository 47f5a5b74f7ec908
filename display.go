// Package bounce runs a software-rasterized particle bounce demo. A fixed
// set of particles moves inside a box or a set of rotating planes and is
// drawn pixel by pixel into whatever surface a Display hands out: an X11
// window, a terminal, an SDL window or an in-memory buffer.
package bounce

import (
	"errors"

	"github.com/AchrafSoltani/bounce/raster"
)

// Display is where frames go and input comes from.
//
// Lock grants exclusive access to the pixel surface until Unlock; the
// surface must not be retained afterwards. PollEvent never blocks and
// returns nil when no event is pending.
type Display interface {
	Lock() (*raster.Surface, error)
	Unlock()
	Present() error
	PollEvent() *Event
	Close() error
}

var (
	ErrLocked = errors.New("bounce: surface already locked")
	ErrClosed = errors.New("bounce: display closed")
)
