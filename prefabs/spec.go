package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/slicerman/sequencer"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadTuning reads sequencer.yaml over the default tuning and validates it.
func LoadTuning() (sequencer.Tuning, error) {
	tuning := sequencer.DefaultTuning()
	data, err := Load("sequencer.yaml")
	if err != nil {
		return tuning, fmt.Errorf("prefabs: load sequencer.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return sequencer.DefaultTuning(), fmt.Errorf("prefabs: unmarshal sequencer.yaml: %w", err)
	}
	if err := tuning.Validate(); err != nil {
		return sequencer.DefaultTuning(), fmt.Errorf("prefabs: sequencer.yaml: %w", err)
	}
	return tuning, nil
}

// EnemySpec configures how launched entities spawn, fly and burst.
type EnemySpec struct {
	Spawn       SpawnSpec       `yaml:"spawn"`
	Launch      LaunchSpec      `yaml:"launch"`
	Penguin     KindSpec        `yaml:"penguin"`
	FastMover   KindSpec        `yaml:"fast_mover"`
	Bomb        KindSpec        `yaml:"bomb"`
	Fuse        EmitterSpec     `yaml:"fuse"`
	HitBurst    EmitterSpec     `yaml:"hit_burst"`
	BombBurst   EmitterSpec     `yaml:"bomb_burst"`
	RenderLayer RenderLayerSpec `yaml:"render_layer"`
}

// SpawnSpec places new entities. KindRange is the size of the uniform kind
// draw: 0 is a bomb, KindRange-1 a fast mover, anything else a penguin.
type SpawnSpec struct {
	MinX      float64 `yaml:"min_x"`
	MaxX      float64 `yaml:"max_x"`
	Y         float64 `yaml:"y"`
	CullY     float64 `yaml:"cull_y"`
	Radius    float64 `yaml:"radius"`
	Mass      float64 `yaml:"mass"`
	KindRange int     `yaml:"kind_range"`
}

// LaunchSpec drives the launch script. Velocities are in script units and
// multiplied by the scale factors.
type LaunchSpec struct {
	Script        string     `yaml:"script"`
	Bands         []BandSpec `yaml:"bands"`
	YMin          int        `yaml:"y_min"`
	YMax          int        `yaml:"y_max"`
	VelocityScale float64    `yaml:"velocity_scale"`
	FastScaleY    float64    `yaml:"fast_scale_y"`
	SpinMin       float64    `yaml:"spin_min"`
	SpinMax       float64    `yaml:"spin_max"`
}

// BandSpec picks the horizontal launch speed for spawns left of Below.
type BandSpec struct {
	Below float64 `yaml:"below"`
	Min   int     `yaml:"min"`
	Max   int     `yaml:"max"`
	Sign  int     `yaml:"sign"`
}

type KindSpec struct {
	Sound string    `yaml:"sound"`
	Color YAMLColor `yaml:"color"`
}

type EmitterSpec struct {
	OffsetX  float64   `yaml:"offset_x"`
	OffsetY  float64   `yaml:"offset_y"`
	Interval int       `yaml:"interval"`
	Burst    int       `yaml:"burst"`
	Life     int       `yaml:"life"`
	Speed    float64   `yaml:"speed"`
	Size     float64   `yaml:"size"`
	TTL      int       `yaml:"ttl"`
	Color    YAMLColor `yaml:"color"`
}

type RenderLayerSpec struct {
	Index int `yaml:"index"`
}

func LoadEnemySpec() (*EnemySpec, error) {
	spec, err := LoadSpec[EnemySpec]("enemy.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: enemy.yaml: %w", err)
	}
	return &spec, nil
}

func (s *EnemySpec) Validate() error {
	switch {
	case s.Spawn.MaxX < s.Spawn.MinX:
		return fmt.Errorf("%w: spawn.max_x %v below min_x %v", ErrInvalidSpec, s.Spawn.MaxX, s.Spawn.MinX)
	case s.Spawn.Radius <= 0:
		return fmt.Errorf("%w: spawn.radius must be > 0", ErrInvalidSpec)
	case s.Spawn.CullY >= s.Spawn.Y:
		return fmt.Errorf("%w: spawn.cull_y %v must be below spawn.y %v", ErrInvalidSpec, s.Spawn.CullY, s.Spawn.Y)
	case s.Spawn.KindRange < 3:
		return fmt.Errorf("%w: spawn.kind_range must be >= 3, got %d", ErrInvalidSpec, s.Spawn.KindRange)
	case len(s.Launch.Bands) == 0:
		return fmt.Errorf("%w: launch.bands is empty", ErrInvalidSpec)
	case s.Launch.YMax < s.Launch.YMin:
		return fmt.Errorf("%w: launch.y_max below y_min", ErrInvalidSpec)
	case s.Launch.SpinMax < s.Launch.SpinMin:
		return fmt.Errorf("%w: launch.spin_max below spin_min", ErrInvalidSpec)
	}
	for i, b := range s.Launch.Bands {
		if b.Max < b.Min {
			return fmt.Errorf("%w: launch.bands[%d] max below min", ErrInvalidSpec, i)
		}
		if i > 0 && b.Below <= s.Launch.Bands[i-1].Below {
			return fmt.Errorf("%w: launch.bands must be sorted by below", ErrInvalidSpec)
		}
	}
	return nil
}

type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}
