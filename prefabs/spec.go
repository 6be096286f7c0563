package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

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

// LootSpec tunes loot dropped by destroyed entities.
type LootSpec struct {
	Name string `yaml:"name"`
	// Money thrown = size * BaseFactor * random(LowFactor, 1).
	BaseFactor float64 `yaml:"base_factor"`
	LowFactor  float64 `yaml:"low_factor"`
	// MaxSpeed is in world units per second, relative to the source.
	MaxSpeed    float64   `yaml:"max_speed"`
	MaxLife     int       `yaml:"max_life"`
	MaxRotSpeed float64   `yaml:"max_rot_speed"`
	Size        float64   `yaml:"size"`
	Tint        YAMLColor `yaml:"tint"`
	// ValuerScript names a tengo script under scripts/; empty uses the
	// built-in denominations.
	ValuerScript string `yaml:"valuer_script"`
}

// DefaultLootSpec mirrors loot.yaml so a missing or broken file still
// produces sane drops.
func DefaultLootSpec() LootSpec {
	return LootSpec{
		Name:        "loot",
		BaseFactor:  40,
		LowFactor:   0.3,
		MaxSpeed:    2,
		MaxLife:     360,
		MaxRotSpeed: 90,
		Size:        0.24,
		Tint:        YAMLColor{Color: color.RGBA{R: 255, G: 215, B: 0, A: 255}},
	}
}

func LoadLootSpec() (LootSpec, error) {
	return LoadLootSpecFile("loot.yaml")
}

// LoadLootSpecFile overlays filename on the defaults. On error the defaults
// are returned alongside it.
func LoadLootSpecFile(filename string) (LootSpec, error) {
	spec := DefaultLootSpec()
	data, err := Load(filename)
	if err != nil {
		return spec, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return DefaultLootSpec(), fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if spec.LowFactor < 0 || spec.LowFactor > 1 {
		return DefaultLootSpec(), fmt.Errorf("prefabs: %s: low_factor %v outside [0,1]", filename, spec.LowFactor)
	}
	return spec, nil
}

// ProjectileSpec configures a non-entity projectile.
type ProjectileSpec struct {
	Name string `yaml:"name"`
	// Density <= 0 marks an impulse-free projectile such as a beam: it never
	// takes part in physical collision response.
	Density   float64   `yaml:"density"`
	Damage    int       `yaml:"damage"`
	Speed     float64   `yaml:"speed"`
	Radius    float64   `yaml:"radius"`
	LifeTicks int       `yaml:"life_ticks"`
	Tint      YAMLColor `yaml:"tint"`
}

func LoadProjectileSpec(filename string) (ProjectileSpec, error) {
	return LoadSpec[ProjectileSpec](filename)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	clr, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = clr
	return nil
}

// ParseHexColor accepts #RRGGBB or #RRGGBBAA.
func ParseHexColor(raw string) (color.Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) != 6 && len(s) != 8 {
		return nil, fmt.Errorf("invalid color format: %s", raw)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return nil, fmt.Errorf("invalid color %s: %w", raw, err)
		}
		rgba[i] = v
	}
	return color.RGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}, nil
}
