package bounce

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/AchrafSoltani/bounce/raster"
)

func testPattern() *raster.Surface {
	s := raster.NewSurface(8, 6, raster.Packed32)
	s.Clear(raster.Blue.Map(s.Format))
	raster.DrawLine(s, 0, 0, 7, 5, raster.Yellow.Map(s.Format))
	raster.SetPixel(s, 7, 0, raster.Hex(0x123456).Map(s.Format))
	return s
}

func sameSurface(t *testing.T, got, want *raster.Surface) {
	t.Helper()
	if got.Width != want.Width || got.Height != want.Height {
		t.Fatalf("size %dx%d, want %dx%d", got.Width, got.Height, want.Width, want.Height)
	}
	for y := 0; y < want.Height; y++ {
		for x := 0; x < want.Width; x++ {
			if g, w := got.RGBAt(x, y), want.RGBAt(x, y); g != w {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestPNGRoundTrip(t *testing.T) {
	want := testPattern()
	var buf bytes.Buffer
	if err := WritePNG(&buf, want); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	got, err := LoadSnapshot(&buf, raster.Packed32)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	sameSurface(t, got, want)
}

func TestBMPRoundTrip(t *testing.T) {
	want := testPattern()
	var buf bytes.Buffer
	if err := WriteBMP(&buf, want); err != nil {
		t.Fatalf("WriteBMP failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("BM")) {
		t.Fatal("missing BMP signature")
	}
	got, err := LoadSnapshot(&buf, raster.Packed32)
	if err != nil {
		t.Fatalf("LoadSnapshot failed: %v", err)
	}
	sameSurface(t, got, want)
}

func TestSaveSnapshotPicksFormat(t *testing.T) {
	dir := t.TempDir()
	s := testPattern()
	for _, name := range []string{"frame.png", "frame.BMP"} {
		path := filepath.Join(dir, name)
		if err := SaveSnapshot(path, s); err != nil {
			t.Fatalf("SaveSnapshot(%s) failed: %v", name, err)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		_, format, err := image.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		want := "png"
		if name == "frame.BMP" {
			want = "bmp"
		}
		if format != want {
			t.Errorf("%s encoded as %s", name, format)
		}
	}
}

func TestSurfaceFromImageConvertsFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 2, 5, 4))
	img.Set(2, 2, color.RGBA{255, 0, 0, 255})
	img.Set(4, 3, color.RGBA{0, 255, 0, 255})

	s, err := SurfaceFromImage(img, raster.Packed16)
	if err != nil {
		t.Fatalf("SurfaceFromImage failed: %v", err)
	}
	if s.Width != 3 || s.Height != 2 {
		t.Fatalf("size %dx%d, want 3x2", s.Width, s.Height)
	}
	if s.Pixel(0, 0) != 0xF800 || s.Pixel(2, 1) != 0x07E0 {
		t.Errorf("pixels = %#x, %#x; want red and green in RGB565", s.Pixel(0, 0), s.Pixel(2, 1))
	}

	if _, err := SurfaceFromImage(img, raster.Packed24); err == nil {
		t.Error("Packed24 accepted")
	}
}
