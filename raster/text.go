package raster

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextFace is the bitmap face used by DrawText.
var TextFace font.Face = basicfont.Face7x13

// MeasureText returns the pixel size of the box DrawText fills for text.
func MeasureText(text string) (width, height int) {
	m := TextFace.Metrics()
	return font.MeasureString(TextFace, text).Ceil(), m.Height.Ceil()
}

// DrawText renders text with its top-left corner at (x, y). Glyph coverage
// is thresholded at 50%, the surfaces here carry no alpha.
func DrawText(s *Surface, x, y int, text string, c uint32) {
	w, h := MeasureText(text)
	if w == 0 || h == 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: TextFace,
		Dot:  fixed.Point26_6{X: 0, Y: TextFace.Metrics().Ascent},
	}
	d.DrawString(text)

	for row := 0; row < h; row++ {
		off := row * mask.Stride
		for col := 0; col < w; col++ {
			if mask.Pix[off+col] >= 0x80 {
				plot(s, x+col, y+row, c)
			}
		}
	}
}
