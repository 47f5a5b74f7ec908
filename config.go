package bounce

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/AchrafSoltani/bounce/particle"
	"github.com/AchrafSoltani/bounce/physics"
	"github.com/AchrafSoltani/bounce/raster"
)

// Config holds the settings of one demo run.
type Config struct {
	Width, Height int

	// TickRate is the number of fixed simulation steps per second
	TickRate int

	// MaxTicks stops the loop after that many ticks; 0 runs until quit
	MaxTicks int

	Particles   int
	MaxVelocity float64 // units per second, per axis
	Radius      int

	Model particle.Model
	Mode  RenderMode

	// Sides selects a regular polygon for the plane model; below 3 the
	// planes follow the window edges
	Sides int

	// Spin is the plane rotation speed in radians per second
	Spin float64

	Seed       uint64
	HUD        bool
	Background raster.Color
}

// DefaultConfig returns the classic setup: five white-ish particles in a
// 640x480 box at 25 ticks per second.
func DefaultConfig() Config {
	return Config{
		Width:       640,
		Height:      480,
		TickRate:    25,
		Particles:   5,
		MaxVelocity: 250,
		Radius:      4,
		Model:       particle.ModelBox,
		Mode:        RenderPixels,
		Background:  raster.Black,
	}
}

var ErrBadTickRate = errors.New("bounce: tick rate must be positive")

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("bounce: invalid size %dx%d", c.Width, c.Height)
	}
	if c.TickRate <= 0 {
		return ErrBadTickRate
	}
	if c.Radius < 0 {
		return fmt.Errorf("bounce: negative radius %d", c.Radius)
	}
	if 2*c.Radius+3 >= min(c.Width, c.Height) {
		return fmt.Errorf("bounce: radius %d does not fit a %dx%d window", c.Radius, c.Width, c.Height)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("bounce: negative tick limit %d", c.MaxTicks)
	}
	return c.ParticleConfig().Validate()
}

// TickInterval is the duration of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// ParticleConfig derives the simulation settings. Boundaries sit Radius
// units inside the window so circles touch the edges rather than cross
// them.
func (c Config) ParticleConfig() particle.Config {
	edges := physics.Box{
		XInf: 0, XSup: float64(c.Width - 1),
		YInf: 0, YSup: float64(c.Height - 1),
	}
	r := float64(c.Radius)

	pc := particle.Config{
		Count:        c.Particles,
		Box:          edges.Inset(r),
		MaxVelocity:  c.MaxVelocity,
		Model:        c.Model,
		AngularSpeed: c.Spin,
		Pivot:        edges.Center(),
	}

	var planes []physics.Plane
	if c.Sides >= 3 {
		planes = physics.RegularPolygon(edges.Center(), math.Min(edges.Width(), edges.Height())/2, c.Sides)
	} else {
		planes = physics.BoxPlanes(edges)
	}
	for _, pl := range planes {
		pc.Planes = append(pc.Planes, pl.Offset(r))
	}
	return pc
}
