package raster

import "math"

// DrawLine draws a line using Bresenham's algorithm
func DrawLine(s *Surface, x0, y0, x1, y1 int, c uint32) {
	dx, sx := abs(x1-x0), -1
	if x0 < x1 {
		sx = 1
	}
	dy, sy := abs(y1-y0), -1
	if y0 < y1 {
		sy = 1
	}
	err := -dy / 2
	if dx > dy {
		err = dx / 2
	}

	for {
		plot(s, x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := err
		if e2 > -dx {
			err -= dy
			x0 += sx
		}
		if e2 < dy {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect draws the outline of the rectangle with corners (x, y) and
// (x+width, y+height).
func DrawRect(s *Surface, x, y, width, height int, c uint32) {
	DrawLine(s, x, y, x+width, y, c)
	DrawLine(s, x, y, x, y+height, c)
	DrawLine(s, x+width, y, x+width, y+height, c)
	DrawLine(s, x, y+height, x+width, y+height, c)
}

// HLine fills the span [x0, x1] of row y, clipped to the surface.
func HLine(s *Surface, x0, x1, y int, c uint32) {
	if y < 0 || y >= s.Height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, s.Width-1)
	for x := x0; x <= x1; x++ {
		SetPixel(s, x, y, c)
	}
}

// DrawCircle draws a circle outline using the midpoint algorithm.
//
// Pixel (0,0) covers the cell [0,1)x[0,1), so the circle is centered on the
// top-left corner of pixel (cx, cy) rather than on its middle; the plotted
// cells are mirror images across the lines x=cx and y=cy. Both the centre
// and the offsets sit on half units, so every plotted coordinate is whole.
func DrawCircle(s *Surface, cx, cy, radius int, c uint32) {
	err := float64(-radius)
	x := float64(radius) - 0.5
	y := 0.5
	ox := float64(cx) - 0.5
	oy := float64(cy) - 0.5

	px := func(v float64) int { return int(math.Floor(v)) }

	for x >= y {
		plot(s, px(ox+x), px(oy+y), c)
		plot(s, px(ox+y), px(oy+x), c)

		if x != 0 {
			plot(s, px(ox-x), px(oy+y), c)
			plot(s, px(ox+y), px(oy-x), c)
		}
		if y != 0 {
			plot(s, px(ox+x), px(oy-y), c)
			plot(s, px(ox-y), px(oy+x), c)
		}
		if x != 0 && y != 0 {
			plot(s, px(ox-x), px(oy-y), c)
			plot(s, px(ox-y), px(oy-x), c)
		}

		err += y
		y++
		err += y
		if err >= 0 {
			x--
			err -= x
			err -= x
		}
	}
}

// FillCircle fills the disc drawn by DrawCircle with the same arguments.
// Rows pair up across the corner line y=cy like the outline's, and each
// span's half chord floor(sqrt(2*r*dy - dy*dy)) is taken at the row's
// middle, dy = 0.5, 1.5, ... down from the pole. That keeps every filled
// pixel inside the outline and leaves no gap between the two.
func FillCircle(s *Surface, cx, cy, radius int, c uint32) {
	r := float64(radius)
	for dy := 0.5; dy < r; dy++ {
		dx := int(math.Floor(math.Sqrt(2*r*dy - dy*dy)))
		if dx == 0 {
			continue
		}
		k := radius - 1 - int(dy)
		HLine(s, cx-dx, cx+dx-1, cy+k, c)
		HLine(s, cx-dx, cx+dx-1, cy-1-k, c)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
