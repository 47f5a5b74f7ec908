// Package raster implements software rendering onto byte-packed pixel
// surfaces: a format-dispatching pixel writer and the line, rectangle,
// circle and text primitives built on top of it.
package raster

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// PixelFormat identifies how a pixel is encoded in a Surface.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	Indexed8                  // 1 byte per pixel, palette index or RGB332
	Packed16                  // 2 bytes per pixel, RGB565
	Packed24                  // 3 bytes per pixel, packed RGB (unsupported)
	Packed32                  // 4 bytes per pixel, XRGB8888
)

// ErrUnsupportedFormat is returned for encodings SetPixel cannot write.
var ErrUnsupportedFormat = errors.New("raster: unsupported pixel format")

// FormatForBytes maps a bytes-per-pixel width to its format.
func FormatForBytes(bpp int) PixelFormat {
	switch bpp {
	case 1:
		return Indexed8
	case 2:
		return Packed16
	case 3:
		return Packed24
	case 4:
		return Packed32
	}
	return FormatUnknown
}

// BytesPerPixel returns the encoded width of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case Indexed8:
		return 1
	case Packed16:
		return 2
	case Packed24:
		return 3
	case Packed32:
		return 4
	}
	return 0
}

// Supported reports whether SetPixel can write this format.
func (f PixelFormat) Supported() bool {
	return f == Indexed8 || f == Packed16 || f == Packed32
}

func (f PixelFormat) String() string {
	switch f {
	case Indexed8:
		return "indexed8"
	case Packed16:
		return "packed16"
	case Packed24:
		return "packed24"
	case Packed32:
		return "packed32"
	}
	return "unknown"
}

// ParseFormat parses the names printed by PixelFormat.String.
func ParseFormat(name string) (PixelFormat, error) {
	for _, f := range []PixelFormat{Indexed8, Packed16, Packed24, Packed32} {
		if f.String() == name {
			return f, nil
		}
	}
	return FormatUnknown, fmt.Errorf("raster: unknown pixel format %q", name)
}

// Surface is a 2D pixel buffer. Pixels may be owned by the surface or
// borrowed from a display (an X11 image, an SDL surface); rows are Pitch
// bytes apart and Pitch may exceed Width*BytesPerPixel.
type Surface struct {
	Width  int
	Height int
	Pitch  int
	Format PixelFormat
	Pixels []byte
}

// NewSurface allocates a zeroed surface with a tight pitch.
func NewSurface(width, height int, format PixelFormat) *Surface {
	pitch := width * format.BytesPerPixel()
	return &Surface{
		Width:  width,
		Height: height,
		Pitch:  pitch,
		Format: format,
		Pixels: make([]byte, pitch*height),
	}
}

// Validate checks that the surface can be drawn on.
func (s *Surface) Validate() error {
	if !s.Format.Supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.Format)
	}
	if s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("raster: negative surface size %dx%d", s.Width, s.Height)
	}
	if s.Pitch < s.Width*s.Format.BytesPerPixel() {
		return fmt.Errorf("raster: pitch %d too small for width %d", s.Pitch, s.Width)
	}
	if len(s.Pixels) < s.Pitch*s.Height {
		return fmt.Errorf("raster: buffer holds %d bytes, need %d", len(s.Pixels), s.Pitch*s.Height)
	}
	return nil
}

// Contains reports whether (x, y) lies on the surface.
func (s *Surface) Contains(x, y int) bool {
	return x >= 0 && x < s.Width && y >= 0 && y < s.Height
}

// SetPixel stores the native pixel value c at (x, y). There is no clipping:
// the caller guarantees 0 <= x < Width and 0 <= y < Height. Formats other
// than Indexed8, Packed16 and Packed32 are ignored.
func SetPixel(s *Surface, x, y int, c uint32) {
	switch s.Format {
	case Indexed8:
		s.Pixels[y*s.Pitch+x] = uint8(c)
	case Packed16:
		binary.LittleEndian.PutUint16(s.Pixels[y*s.Pitch+x*2:], uint16(c))
	case Packed32:
		binary.LittleEndian.PutUint32(s.Pixels[y*s.Pitch+x*4:], c)
	}
}

// Pixel returns the native pixel value at (x, y), or 0 outside the surface.
func (s *Surface) Pixel(x, y int) uint32 {
	if !s.Contains(x, y) {
		return 0
	}
	switch s.Format {
	case Indexed8:
		return uint32(s.Pixels[y*s.Pitch+x])
	case Packed16:
		return uint32(binary.LittleEndian.Uint16(s.Pixels[y*s.Pitch+x*2:]))
	case Packed32:
		return binary.LittleEndian.Uint32(s.Pixels[y*s.Pitch+x*4:])
	}
	return 0
}

// RGBAt returns the color at (x, y)
func (s *Surface) RGBAt(x, y int) Color {
	return UnmapRGB(s.Format, s.Pixel(x, y))
}

// Clear fills the entire surface with a native pixel value
func (s *Surface) Clear(c uint32) {
	for y := 0; y < s.Height; y++ {
		HLine(s, 0, s.Width-1, y, c)
	}
}

// plot is the clipping wrapper every primitive draws through.
func plot(s *Surface, x, y int, c uint32) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	SetPixel(s, x, y, c)
}
