package physics

// Box is an axis-aligned play area. Particles live in [XInf,XSup]x[YInf,YSup].
type Box struct {
	XInf, XSup float64
	YInf, YSup float64
}

// Inset shrinks the box by d on every side.
func (b Box) Inset(d float64) Box {
	return Box{b.XInf + d, b.XSup - d, b.YInf + d, b.YSup - d}
}

// Contains reports whether p lies inside the box, limits included.
func (b Box) Contains(p Vec2) bool {
	return p.X >= b.XInf && p.X <= b.XSup && p.Y >= b.YInf && p.Y <= b.YSup
}

func (b Box) Width() float64 { return b.XSup - b.XInf }
func (b Box) Height() float64 { return b.YSup - b.YInf }

// Center returns the middle of the box.
func (b Box) Center() Vec2 {
	return Vec2{(b.XInf + b.XSup) / 2, (b.YInf + b.YSup) / 2}
}

// ResolveBox bounces a particle off the box limits. Each axis is handled on
// its own, in the order x-low, x-high, y-low, y-high: a position at or past
// a limit is put back one unit inside it and that velocity component is
// negated. A particle sitting on a corner flips both components.
// It returns the number of limits hit.
func ResolveBox(pos, vel *Vec2, b Box) int {
	hits := 0
	if pos.X <= b.XInf {
		pos.X = b.XInf + 1
		vel.X = -vel.X
		hits++
	}
	if pos.X >= b.XSup {
		pos.X = b.XSup - 1
		vel.X = -vel.X
		hits++
	}
	if pos.Y <= b.YInf {
		pos.Y = b.YInf + 1
		vel.Y = -vel.Y
		hits++
	}
	if pos.Y >= b.YSup {
		pos.Y = b.YSup - 1
		vel.Y = -vel.Y
		hits++
	}
	return hits
}
