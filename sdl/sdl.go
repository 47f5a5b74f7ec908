//go:build sdl

// Package sdl shows the bounce demo in an SDL2 window, drawing straight
// into the window surface in whatever pixel format SDL picked. Build with
// -tags sdl; it needs the SDL2 development libraries.
package sdl

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/AchrafSoltani/bounce"
	"github.com/AchrafSoltani/bounce/raster"
)

// Display is a bounce.Display on an SDL window surface.
type Display struct {
	window  *sdl.Window
	surface *sdl.Surface
	view    raster.Surface
	locked  bool
}

// New opens a window. All methods must be called from the thread that
// called New.
func New(title string, width, height int) (*Display, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init: %w", err)
	}
	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	d := &Display{window: window}
	bounce.Logger().Info("sdl window open", "width", width, "height", height)
	return d, nil
}

// Lock locks the window surface and exposes its pixels in place.
func (d *Display) Lock() (*raster.Surface, error) {
	if d.locked {
		return nil, bounce.ErrLocked
	}
	surf, err := d.window.GetSurface()
	if err != nil {
		return nil, fmt.Errorf("sdl: window surface: %w", err)
	}
	if surf.MustLock() {
		if err := surf.Lock(); err != nil {
			return nil, fmt.Errorf("sdl: lock surface: %w", err)
		}
	}
	d.surface = surf
	d.locked = true

	d.view = raster.Surface{
		Width:  int(surf.W),
		Height: int(surf.H),
		Pitch:  int(surf.Pitch),
		Format: raster.FormatForBytes(int(surf.Format.BytesPerPixel)),
		Pixels: surf.Pixels(),
	}
	return &d.view, nil
}

func (d *Display) Unlock() {
	if !d.locked {
		return
	}
	if d.surface.MustLock() {
		d.surface.Unlock()
	}
	d.locked = false
}

func (d *Display) Present() error {
	return d.window.UpdateSurface()
}

// PollEvent pumps SDL's queue and returns the first event bounce knows,
// or nil once the queue is empty.
func (d *Display) PollEvent() *bounce.Event {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			return &bounce.Event{Type: bounce.EventQuit}
		case *sdl.KeyboardEvent:
			t := bounce.EventKeyDown
			if e.Type == sdl.KEYUP {
				t = bounce.EventKeyUp
			}
			return &bounce.Event{Type: t, Key: key(e.Keysym.Sym)}
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				return &bounce.Event{Type: bounce.EventResize, Width: int(e.Data1), Height: int(e.Data2)}
			}
		default:
			bounce.Logger().Debug("unhandled sdl event", "type", ev.GetType())
		}
	}
	return nil
}

func key(sym sdl.Keycode) bounce.Key {
	switch sym {
	case sdl.K_ESCAPE:
		return bounce.KeyEscape
	case sdl.K_RETURN:
		return bounce.KeyEnter
	case sdl.K_UP:
		return bounce.KeyUp
	case sdl.K_DOWN:
		return bounce.KeyDown
	case sdl.K_LEFT:
		return bounce.KeyLeft
	case sdl.K_RIGHT:
		return bounce.KeyRight
	}
	// Printable keys use their ASCII value as keycode
	if sym >= ' ' && sym < 0x7F {
		return bounce.KeyFromRune(rune(sym))
	}
	return bounce.KeyUnknown
}

func (d *Display) Close() error {
	d.Unlock()
	err := d.window.Destroy()
	sdl.Quit()
	return err
}
