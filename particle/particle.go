// Package particle owns the state of the bounce simulation: a fixed set of
// particles moving inside a box or a set of half-plane boundaries.
package particle

import (
	"github.com/AchrafSoltani/bounce/physics"
	"github.com/AchrafSoltani/bounce/raster"
)

// Particle is a point mass with a display color.
type Particle struct {
	Pos   physics.Vec2
	Vel   physics.Vec2
	Color raster.Color
}

// Model selects the collision model used by System.Update.
type Model int

const (
	ModelBox Model = iota
	ModelPlanes
)

func (m Model) String() string {
	switch m {
	case ModelBox:
		return "box"
	case ModelPlanes:
		return "planes"
	}
	return "unknown"
}

// ParseModel parses "box" or "planes".
func ParseModel(name string) (Model, bool) {
	switch name {
	case "box":
		return ModelBox, true
	case "planes":
		return ModelPlanes, true
	}
	return ModelBox, false
}

// Stats summarizes one Update call.
type Stats struct {
	BoxHits   int
	PlaneHits int
	// Bounced lists the indices of particles that hit something
	Bounced []int
}

// Hits returns the total number of boundary hits.
func (s Stats) Hits() int { return s.BoxHits + s.PlaneHits }
