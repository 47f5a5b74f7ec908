package physics

import "math"

// Plane is a half-plane boundary. N is the unit normal (a, b) pointing to
// the inside and C the signed offset, so a point p is at signed distance
// a*p.X + b*p.Y + c from the boundary line; negative distances are outside.
// P0 and P1 are the visible segment drawn for the boundary.
type Plane struct {
	N      Vec2
	C      float64
	P0, P1 Vec2
}

// NewPlane builds the plane through the segment p0→p1. With screen
// coordinates (y down) the inside is on the right-hand side when walking
// from p0 to p1, so a clockwise polygon faces inwards.
func NewPlane(p0, p1 Vec2) Plane {
	d := p1.Sub(p0)
	n := Vec2{-d.Y, d.X}.Normalize()
	return Plane{
		N:  n,
		C:  -n.Dot(p0),
		P0: p0,
		P1: p1,
	}
}

// Distance returns the signed distance from p to the boundary line.
func (pl Plane) Distance(p Vec2) float64 {
	return pl.N.X*p.X + pl.N.Y*p.Y + pl.C
}

// Offset moves the boundary d units towards the inside.
func (pl Plane) Offset(d float64) Plane {
	pl.C -= d
	pl.P0 = pl.P0.Add(pl.N.Scale(d))
	pl.P1 = pl.P1.Add(pl.N.Scale(d))
	return pl
}

// Rotate turns the normal and the visible segment by theta radians about
// pivot. C is recomputed so that the boundary keeps its signed distance to
// the pivot.
func (pl *Plane) Rotate(theta float64, pivot Vec2) {
	dist := pl.Distance(pivot)
	pl.N = pl.N.Rotate(theta)
	pl.P0 = pl.P0.Sub(pivot).Rotate(theta).Add(pivot)
	pl.P1 = pl.P1.Sub(pivot).Rotate(theta).Add(pivot)
	pl.C = dist - pl.N.Dot(pivot)
}

// Reflect mirrors v about the plane normal: v' = v - 2(v·n)n, computed from
// the incoming velocity as a whole.
func (pl Plane) Reflect(v Vec2) Vec2 {
	return v.Sub(pl.N.Scale(2 * v.Dot(pl.N)))
}

// ResolvePlanes checks a particle against every plane. A collision needs the
// particle outside (distance < 0) and still heading outwards (v·n < 0); the
// velocity is then reflected. Position is left alone so the particle walks
// back in on its own. It returns the number of planes hit.
func ResolvePlanes(pos Vec2, vel *Vec2, planes []Plane) int {
	hits := 0
	for i := range planes {
		pl := &planes[i]
		if pl.Distance(pos) < 0 && vel.Dot(pl.N) < 0 {
			*vel = pl.Reflect(*vel)
			hits++
		}
	}
	return hits
}

// BoxPlanes returns the four inward-facing planes bounding b, in the order
// top, right, bottom, left.
func BoxPlanes(b Box) []Plane {
	tl := Vec2{b.XInf, b.YInf}
	tr := Vec2{b.XSup, b.YInf}
	br := Vec2{b.XSup, b.YSup}
	bl := Vec2{b.XInf, b.YSup}
	return []Plane{
		NewPlane(tl, tr),
		NewPlane(tr, br),
		NewPlane(br, bl),
		NewPlane(bl, tl),
	}
}

// RegularPolygon returns the inward-facing planes of a regular polygon with
// the given number of sides inscribed in a circle of radius r around center.
func RegularPolygon(center Vec2, r float64, sides int) []Plane {
	if sides < 3 {
		return nil
	}
	step := 2 * math.Pi / float64(sides)
	vertex := func(i int) Vec2 {
		// Start at the top so squares come out axis-aligned
		a := -math.Pi/2 - step/2 + float64(i)*step
		return Vec2{center.X + r*math.Cos(a), center.Y + r*math.Sin(a)}
	}
	planes := make([]Plane, sides)
	for i := range planes {
		planes[i] = NewPlane(vertex(i), vertex(i+1))
	}
	return planes
}
