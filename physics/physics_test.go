package physics

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestResolveBoxHighLimit(t *testing.T) {
	b := Box{XInf: 0, XSup: 100, YInf: 0, YSup: 80}
	pos := Vec2{100, 40}
	vel := Vec2{5, 3}

	if hits := ResolveBox(&pos, &vel, b); hits != 1 {
		t.Fatalf("expected 1 hit, got %d", hits)
	}
	if vel.X != -5 {
		t.Errorf("vel.X = %v, want -5", vel.X)
	}
	if pos.X != 99 {
		t.Errorf("pos.X = %v, want 99", pos.X)
	}
	if vel.Y != 3 || pos.Y != 40 {
		t.Errorf("y axis should be untouched, got pos.Y=%v vel.Y=%v", pos.Y, vel.Y)
	}
}

func TestResolveBoxLowLimits(t *testing.T) {
	b := Box{XInf: 10, XSup: 100, YInf: 20, YSup: 80}
	pos := Vec2{4, 50}
	vel := Vec2{-7, 1}
	ResolveBox(&pos, &vel, b)
	if pos.X != 11 || vel.X != 7 {
		t.Errorf("x-low: got pos.X=%v vel.X=%v", pos.X, vel.X)
	}

	pos = Vec2{50, 20}
	vel = Vec2{1, -2}
	ResolveBox(&pos, &vel, b)
	if pos.Y != 21 || vel.Y != 2 {
		t.Errorf("y-low: got pos.Y=%v vel.Y=%v", pos.Y, vel.Y)
	}
}

func TestResolveBoxCorner(t *testing.T) {
	b := Box{XInf: 0, XSup: 50, YInf: 0, YSup: 50}
	pos := Vec2{50, 50}
	vel := Vec2{2, 3}

	if hits := ResolveBox(&pos, &vel, b); hits != 2 {
		t.Fatalf("expected both axes to hit, got %d", hits)
	}
	if vel != (Vec2{-2, -3}) {
		t.Errorf("vel = %+v, want both components negated", vel)
	}
	if pos != (Vec2{49, 49}) {
		t.Errorf("pos = %+v, want (49,49)", pos)
	}
}

func TestResolveBoxInside(t *testing.T) {
	b := Box{XInf: 0, XSup: 50, YInf: 0, YSup: 50}
	pos := Vec2{25, 25}
	vel := Vec2{2, 3}
	if hits := ResolveBox(&pos, &vel, b); hits != 0 {
		t.Fatalf("unexpected hits: %d", hits)
	}
	if pos != (Vec2{25, 25}) || vel != (Vec2{2, 3}) {
		t.Error("state changed for a particle inside the box")
	}
}

func TestPlaneReflectionPreservesSpeed(t *testing.T) {
	// Plane x >= 1 with unit normal (1,0): the particle at x=0 is at
	// distance -1 and moving outwards at -2 along the normal.
	pl := Plane{N: Vec2{1, 0}, C: -1}
	pos := Vec2{0, 5}
	vel := Vec2{-2, 3}

	if d := pl.Distance(pos); d != -1 {
		t.Fatalf("distance = %v, want -1", d)
	}
	before := vel.Len()

	planes := []Plane{pl}
	if hits := ResolvePlanes(pos, &vel, planes); hits != 1 {
		t.Fatalf("expected a collision, got %d", hits)
	}
	if vel != (Vec2{2, 3}) {
		t.Errorf("vel = %+v, want (2,3)", vel)
	}
	if !near(vel.Len(), before) {
		t.Errorf("speed changed from %v to %v", before, vel.Len())
	}
}

func TestPlaneReflectionOblique(t *testing.T) {
	n := Vec2{1, 1}.Normalize()
	pl := Plane{N: n, C: 0}
	vel := Vec2{-3, 1}
	got := pl.Reflect(vel)

	if !near(got.Len(), vel.Len()) {
		t.Errorf("|v'| = %v, want %v", got.Len(), vel.Len())
	}
	// Normal component flips, tangential component stays
	if !near(got.Dot(n), -vel.Dot(n)) {
		t.Errorf("normal component %v, want %v", got.Dot(n), -vel.Dot(n))
	}
	tangent := Vec2{-n.Y, n.X}
	if !near(got.Dot(tangent), vel.Dot(tangent)) {
		t.Errorf("tangential component changed")
	}
	if !near(got.X, -1) || !near(got.Y, 3) {
		t.Errorf("v' = %+v, want (-1,3)", got)
	}
}

func TestResolvePlanesIgnoresInwardMotion(t *testing.T) {
	planes := []Plane{{N: Vec2{0, 1}, C: 0}}
	pos := Vec2{3, -4} // outside
	vel := Vec2{1, 2}  // already heading back in
	if hits := ResolvePlanes(pos, &vel, planes); hits != 0 {
		t.Fatalf("expected no collision, got %d", hits)
	}
	if vel != (Vec2{1, 2}) {
		t.Error("velocity changed without a collision")
	}

	pos = Vec2{3, 4} // inside, moving out
	vel = Vec2{0, -5}
	if hits := ResolvePlanes(pos, &vel, planes); hits != 0 {
		t.Fatal("a particle inside the plane must not bounce")
	}
}

func TestNewPlaneFacesInward(t *testing.T) {
	b := Box{XInf: 0, XSup: 100, YInf: 0, YSup: 60}
	center := b.Center()
	for i, pl := range BoxPlanes(b) {
		if !near(pl.N.Len(), 1) {
			t.Errorf("plane %d normal not unit: %+v", i, pl.N)
		}
		if pl.Distance(center) <= 0 {
			t.Errorf("plane %d: center is outside", i)
		}
		if !near(pl.Distance(pl.P0), 0) || !near(pl.Distance(pl.P1), 0) {
			t.Errorf("plane %d: segment not on the boundary", i)
		}
	}

	top := BoxPlanes(b)[0]
	if !near(top.Distance(Vec2{10, -3}), -3) {
		t.Errorf("point above the box: distance %v, want -3", top.Distance(Vec2{10, -3}))
	}
}

func TestPlaneRotateAboutOrigin(t *testing.T) {
	pl := Plane{N: Vec2{1, 0}, C: 5, P0: Vec2{-5, -10}, P1: Vec2{-5, 10}}
	pl.Rotate(math.Pi/2, Vec2{})

	if !near(pl.N.X, 0) || !near(pl.N.Y, 1) {
		t.Errorf("normal = %+v, want (0,1)", pl.N)
	}
	if !near(pl.C, 5) {
		t.Errorf("C = %v, want unchanged 5", pl.C)
	}
	if !near(pl.P0.X, 10) || !near(pl.P0.Y, -5) {
		t.Errorf("P0 = %+v, want (10,-5)", pl.P0)
	}
	if !near(pl.Distance(pl.P0), 0) || !near(pl.Distance(pl.P1), 0) {
		t.Error("segment left the boundary after rotation")
	}
}

func TestPlaneRotateAboutPivot(t *testing.T) {
	pivot := Vec2{50, 40}
	planes := RegularPolygon(pivot, 30, 6)
	if len(planes) != 6 {
		t.Fatalf("expected 6 planes, got %d", len(planes))
	}
	for i := range planes {
		before := planes[i].Distance(pivot)
		for step := 0; step < 100; step++ {
			planes[i].Rotate(0.07, pivot)
		}
		if !near(planes[i].Distance(pivot), before) {
			t.Errorf("plane %d: pivot distance drifted %v -> %v", i, before, planes[i].Distance(pivot))
		}
		if math.Abs(planes[i].N.Len()-1) > 1e-6 {
			t.Errorf("plane %d: normal length %v", i, planes[i].N.Len())
		}
		if math.Abs(planes[i].Distance(planes[i].P0)) > 1e-6 {
			t.Errorf("plane %d: segment drifted off the boundary", i)
		}
	}
}

func TestRegularPolygonSquareMatchesBox(t *testing.T) {
	c := Vec2{0, 0}
	sq := RegularPolygon(c, math.Sqrt2*10, 4)
	wantN := []Vec2{{0, 1}, {-1, 0}, {0, -1}, {1, 0}}
	for i, pl := range sq {
		if !near(pl.N.X, wantN[i].X) || !near(pl.N.Y, wantN[i].Y) {
			t.Errorf("side %d normal %+v, want %+v", i, pl.N, wantN[i])
		}
		if !near(pl.Distance(c), 10) {
			t.Errorf("side %d at distance %v, want 10", i, pl.Distance(c))
		}
	}
	if RegularPolygon(c, 10, 2) != nil {
		t.Error("fewer than 3 sides should give no planes")
	}
}

func TestPlaneOffset(t *testing.T) {
	pl := NewPlane(Vec2{0, 0}, Vec2{10, 0}).Offset(3)
	if !near(pl.Distance(Vec2{5, 3}), 0) {
		t.Errorf("offset boundary should pass through y=3, got distance %v", pl.Distance(Vec2{5, 3}))
	}
	if !near(pl.P0.Y, 3) || !near(pl.P1.Y, 3) {
		t.Errorf("segment not moved: %+v %+v", pl.P0, pl.P1)
	}
}
