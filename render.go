package bounce

import (
	"fmt"
	"math"

	"github.com/AchrafSoltani/bounce/particle"
	"github.com/AchrafSoltani/bounce/raster"
)

// RenderMode selects how particles are drawn.
type RenderMode int

const (
	RenderPixels RenderMode = iota
	RenderCircles
)

func (m RenderMode) String() string {
	switch m {
	case RenderPixels:
		return "pixels"
	case RenderCircles:
		return "circles"
	}
	return "unknown"
}

// ParseRenderMode parses "pixels" or "circles".
func ParseRenderMode(name string) (RenderMode, error) {
	switch name {
	case "pixels", "pixel":
		return RenderPixels, nil
	case "circles", "circle":
		return RenderCircles, nil
	}
	return RenderPixels, fmt.Errorf("bounce: unknown render mode %q", name)
}

// Status is what the HUD shows besides the particle count.
type Status struct {
	Tick   int
	FPS    float64
	Paused bool
}

// Renderer draws one frame of a particle system.
type Renderer struct {
	Mode       RenderMode
	Radius     int
	Background raster.Color
	Walls      raster.Color
	Outline    raster.Color
	HUD        bool
	Status     Status

	warned bool
}

// NewRenderer returns a renderer set up from cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		Mode:       cfg.Mode,
		Radius:     cfg.Radius,
		Background: cfg.Background,
		Walls:      raster.Gray,
		Outline:    raster.White,
		HUD:        cfg.HUD,
	}
}

// Toggle switches between pixel and circle drawing.
func (r *Renderer) Toggle() {
	if r.Mode == RenderPixels {
		r.Mode = RenderCircles
	} else {
		r.Mode = RenderPixels
	}
}

// Draw renders sys into d's surface. When the surface cannot be locked
// the frame is abandoned and the error returned; the surface is always
// unlocked once it was locked.
func (r *Renderer) Draw(d Display, sys *particle.System) error {
	s, err := d.Lock()
	if err != nil {
		Logger().Warn("frame aborted: lock failed", "err", err)
		return err
	}
	defer d.Unlock()

	if err := s.Validate(); err != nil {
		if !r.warned {
			r.warned = true
			Logger().Warn("frame skipped", "format", s.Format, "err", err)
		}
		return err
	}

	f := s.Format
	s.Clear(r.Background.Map(f))

	// Boundaries are stored inset by the particle radius; in circle mode
	// draw them where the circle edges touch.
	inset := 0.0
	if r.Mode == RenderCircles {
		inset = float64(r.Radius)
	}

	walls := r.Walls.Map(f)
	switch sys.Model() {
	case particle.ModelBox:
		b := sys.Box().Inset(-inset)
		x0, y0 := pixel(b.XInf), pixel(b.YInf)
		raster.DrawRect(s, x0, y0, pixel(b.XSup)-x0, pixel(b.YSup)-y0, walls)
	case particle.ModelPlanes:
		for _, pl := range sys.Planes() {
			pl = pl.Offset(-inset)
			raster.DrawLine(s, pixel(pl.P0.X), pixel(pl.P0.Y), pixel(pl.P1.X), pixel(pl.P1.Y), walls)
		}
	}

	outline := r.Outline.Map(f)
	for _, p := range sys.Particles() {
		x, y := pixel(p.Pos.X), pixel(p.Pos.Y)
		c := p.Color.Map(f)
		if r.Mode == RenderCircles && r.Radius > 0 {
			raster.FillCircle(s, x, y, r.Radius, c)
			raster.DrawCircle(s, x, y, r.Radius, outline)
		} else if s.Contains(x, y) {
			raster.SetPixel(s, x, y, c)
		}
	}

	if r.HUD {
		r.drawHUD(s, sys)
	}
	return nil
}

func (r *Renderer) drawHUD(s *raster.Surface, sys *particle.System) {
	line := fmt.Sprintf("tick %d  particles %d  fps %.1f", r.Status.Tick, sys.Len(), r.Status.FPS)
	if r.Status.Paused {
		line += "  paused"
	}
	raster.DrawText(s, 4, 4, line, r.Outline.Map(s.Format))
}

func pixel(v float64) int {
	return int(math.Round(v))
}
