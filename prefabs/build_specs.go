package prefabs

import "gopkg.in/yaml.v3"

// EntityBuildSpec is a prefab: a name plus raw component specs keyed by
// registry name.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PositionComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type VelocityComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type AngleComponentSpec struct {
	Degrees float64 `yaml:"degrees"`
	Spin    float64 `yaml:"spin"`
}

type SizeComponentSpec struct {
	Size float64 `yaml:"size"`
}

type HealthComponentSpec struct {
	Max int `yaml:"max"`
}

type PhysicsBodyComponentSpec struct {
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
	Static     bool    `yaml:"static"`
}

type RenderableElementSpec struct {
	Texture        string     `yaml:"texture"`
	Width          float64    `yaml:"width"`
	Height         float64    `yaml:"height"`
	Offset         VectorSpec `yaml:"offset"`
	Angle          float64    `yaml:"angle"`
	GraphicsOffset VectorSpec `yaml:"graphics_offset"`
	Tint           string     `yaml:"tint"`
}

type RenderableComponentSpec struct {
	Invisible bool                    `yaml:"invisible"`
	Elements  []RenderableElementSpec `yaml:"elements"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type TTLComponentSpec struct {
	Frames int `yaml:"frames"`
}

type InvulnerableComponentSpec struct {
	Frames int `yaml:"frames"`
}

type CameraComponentSpec struct {
	Zoom          float64 `yaml:"zoom"`
	Smoothness    float64 `yaml:"smoothness"`
	PixelsPerUnit float64 `yaml:"pixels_per_unit"`
}
