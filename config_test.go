package bounce

import (
	"errors"
	"testing"
	"time"

	"github.com/AchrafSoltani/bounce/particle"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	if cfg.TickInterval() != 40*time.Millisecond {
		t.Errorf("tick interval = %v, want 40ms", cfg.TickInterval())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero fps", func(c *Config) { c.TickRate = 0 }, ErrBadTickRate},
		{"no particles", func(c *Config) { c.Particles = 0 }, particle.ErrNoParticles},
		{"bad size", func(c *Config) { c.Width = 0 }, nil},
		{"huge radius", func(c *Config) { c.Radius = 300 }, nil},
		{"negative ticks", func(c *Config) { c.MaxTicks = -1 }, nil},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.modify(&cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: accepted", tt.name)
			continue
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParticleConfigInsetsByRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Radius = 5
	pc := cfg.ParticleConfig()

	if pc.Box.XInf != 5 || pc.Box.XSup != 634 || pc.Box.YInf != 5 || pc.Box.YSup != 474 {
		t.Errorf("box = %+v", pc.Box)
	}
	if len(pc.Planes) != 4 {
		t.Fatalf("got %d planes, want 4", len(pc.Planes))
	}
	// The top plane passes five units below the window edge
	if d := pc.Planes[0].Distance(pc.Pivot); d != 239.5-5 {
		t.Errorf("pivot distance to top plane = %v, want %v", d, 239.5-5)
	}

	cfg.Sides = 5
	if n := len(cfg.ParticleConfig().Planes); n != 5 {
		t.Errorf("pentagon has %d planes", n)
	}
}
