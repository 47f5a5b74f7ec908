package raster

// Color represents an RGB color
type Color struct {
	R, G, B uint8
}

// Predefined colors
var (
	Black   = Color{0, 0, 0}
	White   = Color{255, 255, 255}
	Red     = Color{255, 0, 0}
	Green   = Color{0, 255, 0}
	Blue    = Color{0, 0, 255}
	Yellow  = Color{255, 255, 0}
	Cyan    = Color{0, 255, 255}
	Magenta = Color{255, 0, 255}
	Gray    = Color{128, 128, 128}
)

// RGB creates a color from red, green, blue components
func RGB(r, g, b uint8) Color {
	return Color{r, g, b}
}

// Hex creates a color from a hex value (0xRRGGBB)
func Hex(hex uint32) Color {
	return Color{
		R: uint8((hex >> 16) & 0xFF),
		G: uint8((hex >> 8) & 0xFF),
		B: uint8(hex & 0xFF),
	}
}

// Map packs c in the native encoding of format f.
func (c Color) Map(f PixelFormat) uint32 {
	return MapRGB(f, c.R, c.G, c.B)
}

// MapRGB packs r, g, b into the pixel value SetPixel expects for format f.
//
//	Indexed8: RRRGGGBB (the 3-3-2 default palette)
//	Packed16: RRRRRGGGGGGBBBBB (RGB565)
//	Packed32: 0x00RRGGBB, stored little-endian as B, G, R, X
//
// Unsupported formats map to 0.
func MapRGB(f PixelFormat, r, g, b uint8) uint32 {
	switch f {
	case Indexed8:
		return uint32(r&0xE0) | uint32(g&0xE0)>>3 | uint32(b)>>6
	case Packed16:
		return uint32(r>>3)<<11 | uint32(g>>2)<<5 | uint32(b>>3)
	case Packed32:
		return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
	}
	return 0
}

// UnmapRGB expands a native pixel value of format f back to 8-bit channels.
// Low bits lost by the packing are filled by bit replication so white stays
// white.
func UnmapRGB(f PixelFormat, v uint32) Color {
	switch f {
	case Indexed8:
		r := uint8(v>>5) & 0x07
		g := uint8(v>>2) & 0x07
		b := uint8(v) & 0x03
		return Color{
			R: r<<5 | r<<2 | r>>1,
			G: g<<5 | g<<2 | g>>1,
			B: b<<6 | b<<4 | b<<2 | b,
		}
	case Packed16:
		r := uint8(v>>11) & 0x1F
		g := uint8(v>>5) & 0x3F
		b := uint8(v) & 0x1F
		return Color{
			R: r<<3 | r>>2,
			G: g<<2 | g>>4,
			B: b<<3 | b>>2,
		}
	case Packed32:
		return Hex(v)
	}
	return Black
}
