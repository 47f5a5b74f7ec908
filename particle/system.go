package particle

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/AchrafSoltani/bounce/physics"
	"github.com/AchrafSoltani/bounce/raster"
)

// Config describes a simulation instance.
type Config struct {
	// Count is the fixed number of particles
	Count int

	// Box is the play area: initial positions are drawn from it and it is
	// the collision box for ModelBox
	Box physics.Box

	// MaxVelocity bounds each velocity component, in units per second
	MaxVelocity float64

	Model Model

	// Planes are the boundaries for ModelPlanes. They are copied.
	Planes []physics.Plane

	// AngularSpeed rotates the planes about Pivot, in radians per second
	AngularSpeed float64
	Pivot        physics.Vec2
}

var (
	ErrNoParticles = errors.New("particle: count must be positive")
	ErrEmptyBox    = errors.New("particle: play area must be wider and taller than 2 units")
	ErrNoPlanes    = errors.New("particle: plane model needs at least one plane")
)

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return ErrNoParticles
	}
	// ResolveBox puts particles one unit inside a limit, which needs room
	if c.Box.Width() <= 2 || c.Box.Height() <= 2 {
		return ErrEmptyBox
	}
	if c.MaxVelocity < 0 {
		return fmt.Errorf("particle: negative max velocity %v", c.MaxVelocity)
	}
	if c.Model == ModelPlanes && len(c.Planes) == 0 {
		return ErrNoPlanes
	}
	return nil
}

// System owns the particles and boundaries of one simulation.
type System struct {
	cfg       Config
	particles []Particle
	planes    []physics.Plane
	stats     Stats
}

// New creates a system with randomized particles drawn from rng.
func New(cfg Config, rng *rand.Rand) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &System{
		cfg:       cfg,
		particles: make([]Particle, cfg.Count),
	}
	s.Reset(rng)
	return s, nil
}

// Reset re-randomizes every particle and restores the initial planes.
// Positions are uniform in the play area, velocity components uniform in
// [-MaxVelocity, MaxVelocity] and color channels uniform in [0, 255].
func (s *System) Reset(rng *rand.Rand) {
	for i := range s.particles {
		s.particles[i] = Particle{
			Pos: s.randomPosition(rng),
			Vel: physics.Vec2{
				X: uniform(rng, -s.cfg.MaxVelocity, s.cfg.MaxVelocity),
				Y: uniform(rng, -s.cfg.MaxVelocity, s.cfg.MaxVelocity),
			},
			Color: raster.RGB(uint8(rng.IntN(256)), uint8(rng.IntN(256)), uint8(rng.IntN(256))),
		}
	}
	s.planes = append(s.planes[:0], s.cfg.Planes...)
}

// randomPosition draws a point in the box. In the plane model points
// outside any plane are redrawn a bounded number of times.
func (s *System) randomPosition(rng *rand.Rand) physics.Vec2 {
	a := s.cfg.Box
	var p physics.Vec2
	for try := 0; try < 100; try++ {
		p = physics.Vec2{
			X: uniform(rng, a.XInf+1, a.XSup-1),
			Y: uniform(rng, a.YInf+1, a.YSup-1),
		}
		if s.cfg.Model != ModelPlanes || inside(p, s.cfg.Planes) {
			break
		}
	}
	return p
}

func inside(p physics.Vec2, planes []physics.Plane) bool {
	for _, pl := range planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// Update advances the simulation by dt seconds: planes rotate first, then
// every particle moves and is checked against the selected collision model.
func (s *System) Update(dt float64) Stats {
	s.stats = Stats{}

	if s.cfg.AngularSpeed != 0 && dt != 0 {
		theta := s.cfg.AngularSpeed * dt
		for i := range s.planes {
			s.planes[i].Rotate(theta, s.cfg.Pivot)
		}
	}

	for i := range s.particles {
		p := &s.particles[i]
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))

		hits := 0
		switch s.cfg.Model {
		case ModelBox:
			hits = physics.ResolveBox(&p.Pos, &p.Vel, s.cfg.Box)
			s.stats.BoxHits += hits
		case ModelPlanes:
			hits = physics.ResolvePlanes(p.Pos, &p.Vel, s.planes)
			s.stats.PlaneHits += hits
		}
		if hits > 0 {
			s.stats.Bounced = append(s.stats.Bounced, i)
		}
	}
	return s.stats
}

// Particles returns the live particle slice. Callers must not keep it
// across Update calls they do not own.
func (s *System) Particles() []Particle { return s.particles }

// Planes returns the current, possibly rotated, boundaries.
func (s *System) Planes() []physics.Plane { return s.planes }

// Box returns the play area.
func (s *System) Box() physics.Box { return s.cfg.Box }

// Model returns the collision model in use.
func (s *System) Model() Model { return s.cfg.Model }

// Len returns the number of particles.
func (s *System) Len() int { return len(s.particles) }
