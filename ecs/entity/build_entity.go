package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/prefabs"
	"golang.org/x/image/colornames"
)

// TextureSource resolves renderable texture names. A nil source or an unknown
// name leaves the element untextured.
type TextureSource interface {
	Texture(name string) *ebiten.Image
}

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
	Textures   TextureSource
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":          addPlayerTag,
	"asteroid_tag":        addAsteroidTag,
	"drops_loot_on_death": addDropsLootOnDeath,
	"position":            addPosition,
	"velocity":            addVelocity,
	"angle":               addAngle,
	"size":                addSize,
	"health":              addHealth,
	"invulnerable":        addInvulnerable,
	"ttl":                 addTTL,
	"physics_body":        addPhysicsBody,
	"render_layer":        addRenderLayer,
	"renderable":          addRenderable,
	"camera":              addCamera,
}

var componentBuildOrder = []string{
	"player_tag",
	"asteroid_tag",
	"drops_loot_on_death",
	"position",
	"velocity",
	"angle",
	"size",
	"health",
	"invulnerable",
	"ttl",
	"physics_body",
	"render_layer",
	"renderable",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string, textures TextureSource) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec, textures)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec, textures TextureSource) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	// unknown names fail before anything is created
	unknown := make([]string, 0)
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return 0, fmt.Errorf("build entity: %q: no builder for components %s", prefabPath, strings.Join(unknown, ", "))
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Textures: textures}

	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

// SetEntityPlacement overrides the prefab position and velocity. Physics
// bodies pick these up when the physics system creates them.
func SetEntityPlacement(w *ecs.World, e ecs.Entity, pos, vel cp.Vector) error {
	if err := ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{Position: pos}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Velocity: vel})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addAsteroidTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AsteroidTagComponent.Kind(), &component.AsteroidTag{})
}

func addDropsLootOnDeath(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.DropsLootOnDeathComponent.Kind(), &component.DropsLootOnDeath{})
}

func addPosition(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PositionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode position spec: %w", err)
	}
	return ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{Position: cp.Vector{X: spec.X, Y: spec.Y}})
}

func addVelocity(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.VelocityComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode velocity spec: %w", err)
	}
	return ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Velocity: cp.Vector{X: spec.X, Y: spec.Y}})
}

func addAngle(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AngleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode angle spec: %w", err)
	}
	return ecs.Add(w, e, component.AngleComponent.Kind(), &component.Angle{Degrees: spec.Degrees, Spin: spec.Spin})
}

func addSize(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SizeComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode size spec: %w", err)
	}
	if spec.Size <= 0 {
		return fmt.Errorf("size must be positive, got %v", spec.Size)
	}
	return ecs.Add(w, e, component.SizeComponent.Kind(), &component.Size{Size: spec.Size})
}

func addHealth(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.HealthComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode health spec: %w", err)
	}
	if spec.Max <= 0 {
		return fmt.Errorf("health max must be positive, got %d", spec.Max)
	}
	return ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: spec.Max, Current: spec.Max})
}

func addInvulnerable(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InvulnerableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode invulnerable spec: %w", err)
	}
	return ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{Frames: spec.Frames})
}

func addTTL(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TTLComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode ttl spec: %w", err)
	}
	return ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.Frames})
}

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PhysicsBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics_body spec: %w", err)
	}
	if !spec.Static && spec.Mass <= 0 {
		return fmt.Errorf("dynamic body needs positive mass, got %v", spec.Mass)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderLayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render_layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

func addRenderable(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RenderableComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode renderable spec: %w", err)
	}

	elements := make([]component.RenderableElement, 0, len(spec.Elements))
	for i, el := range spec.Elements {
		tint, err := parseTint(el.Tint)
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		var tex *ebiten.Image
		if ctx != nil && ctx.Textures != nil && el.Texture != "" {
			tex = ctx.Textures.Texture(el.Texture)
		}
		elements = append(elements, component.RenderableElement{
			Texture:          tex,
			Width:            el.Width,
			Height:           el.Height,
			RelativePosition: cp.Vector{X: el.Offset.X, Y: el.Offset.Y},
			RelativeAngle:    el.Angle,
			GraphicsOffset:   cp.Vector{X: el.GraphicsOffset.X, Y: el.GraphicsOffset.Y},
			Tint:             tint,
		})
	}

	return ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{
		Elements:    elements,
		IsInvisible: spec.Invisible,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	cam := &component.Camera{Zoom: spec.Zoom, Smoothness: spec.Smoothness, PixelsPerUnit: spec.PixelsPerUnit}
	if cam.Zoom <= 0 {
		cam.Zoom = 1
	}
	if cam.Smoothness <= 0 || cam.Smoothness > 1 {
		cam.Smoothness = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

// parseTint accepts "#RRGGBB[AA]" or a CSS color name. Empty is white.
func parseTint(raw string) (color.Color, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return color.White, nil
	}
	if strings.HasPrefix(raw, "#") {
		return prefabs.ParseHexColor(raw)
	}
	if c, ok := colornames.Map[strings.ToLower(raw)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown tint %q", raw)
}
