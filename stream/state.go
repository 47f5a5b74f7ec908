// Package stream serves the live state of a bounce simulation over HTTP:
// JSON snapshots on a websocket at /ws and the latest frame at /frame.png.
package stream

import (
	"fmt"

	"github.com/AchrafSoltani/bounce/particle"
)

// Particle is the wire form of one particle.
type Particle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	VX    float64 `json:"vx"`
	VY    float64 `json:"vy"`
	Color string  `json:"color"`
}

// Segment is the visible part of a plane boundary.
type Segment struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// State is one published tick.
type State struct {
	Tick      int        `json:"tick"`
	Model     string     `json:"model"`
	Hits      int        `json:"hits"`
	Particles []Particle `json:"particles"`
	Planes    []Segment  `json:"planes,omitempty"`
}

// Capture copies the state of sys after the given tick.
func Capture(tick int, sys *particle.System, stats particle.Stats) State {
	st := State{
		Tick:      tick,
		Model:     sys.Model().String(),
		Hits:      stats.Hits(),
		Particles: make([]Particle, 0, sys.Len()),
	}
	for _, p := range sys.Particles() {
		st.Particles = append(st.Particles, Particle{
			X:     p.Pos.X,
			Y:     p.Pos.Y,
			VX:    p.Vel.X,
			VY:    p.Vel.Y,
			Color: fmt.Sprintf("#%02x%02x%02x", p.Color.R, p.Color.G, p.Color.B),
		})
	}
	if sys.Model() == particle.ModelPlanes {
		for _, pl := range sys.Planes() {
			st.Planes = append(st.Planes, Segment{pl.P0.X, pl.P0.Y, pl.P1.X, pl.P1.Y})
		}
	}
	return st
}
