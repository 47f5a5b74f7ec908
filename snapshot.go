package bounce

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/AchrafSoltani/bounce/raster"
)

// SurfaceImage copies a surface into an opaque NRGBA image.
func SurfaceImage(s *raster.Surface) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		off := y * img.Stride
		for x := 0; x < s.Width; x++ {
			c := s.RGBAt(x, y)
			img.Pix[off] = c.R
			img.Pix[off+1] = c.G
			img.Pix[off+2] = c.B
			img.Pix[off+3] = 0xFF
			off += 4
		}
	}
	return img
}

// SurfaceFromImage converts any image to a surface of the given format.
// Alpha is dropped.
func SurfaceFromImage(img image.Image, format raster.PixelFormat) (*raster.Surface, error) {
	if !format.Supported() {
		return nil, fmt.Errorf("bounce: %w: %s", raster.ErrUnsupportedFormat, format)
	}
	b := img.Bounds()
	s := raster.NewSurface(b.Dx(), b.Dy(), format)

	// Fast path for *image.NRGBA, no interface calls per pixel
	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := 0; y < s.Height; y++ {
			off := nrgba.PixOffset(b.Min.X, b.Min.Y+y)
			for x := 0; x < s.Width; x++ {
				p := nrgba.Pix[off : off+4]
				raster.SetPixel(s, x, y, raster.MapRGB(format, p[0], p[1], p[2]))
				off += 4
			}
		}
		return s, nil
	}

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			raster.SetPixel(s, x, y, raster.MapRGB(format, c.R, c.G, c.B))
		}
	}
	return s, nil
}

// WritePNG encodes the surface as PNG.
func WritePNG(w io.Writer, s *raster.Surface) error {
	return png.Encode(w, SurfaceImage(s))
}

// WriteBMP encodes the surface as an uncompressed BMP.
func WriteBMP(w io.Writer, s *raster.Surface) error {
	return bmp.Encode(w, SurfaceImage(s))
}

// SaveSnapshot writes the surface to path, as BMP when the extension is
// .bmp and PNG otherwise.
func SaveSnapshot(path string, s *raster.Surface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		err = WriteBMP(f, s)
	} else {
		err = WritePNG(f, s)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("bounce: snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot decodes a PNG or BMP image into a surface of the given
// format.
func LoadSnapshot(r io.Reader, format raster.PixelFormat) (*raster.Surface, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bounce: decode snapshot: %w", err)
	}
	return SurfaceFromImage(img, format)
}
