package system

import (
	"errors"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"github.com/milk9111/spacecombat/item"
	"github.com/milk9111/spacecombat/prefabs"
	"go.uber.org/zap"
)

const lootReceiver = "loot-drop"

// lootLayer draws loot below ships.
const lootLayer = 0

// LootDroppingSystem scatters money items from entities that die with
// DropsLootOnDeath. It only reacts to the deletion event and has no per-tick
// work of its own.
type LootDroppingSystem struct {
	spec    prefabs.LootSpec
	valuer  item.Valuer
	rng     *rand.Rand
	texture *ebiten.Image
	log     *zap.Logger

	dropped int
	value   float64
}

func NewLootDroppingSystem(spec prefabs.LootSpec, valuer item.Valuer, rng *rand.Rand, texture *ebiten.Image, log *zap.Logger) *LootDroppingSystem {
	if valuer == nil {
		valuer = item.DefaultDenominations()
	}
	if rng == nil {
		rng = common.NewRand(1)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &LootDroppingSystem{spec: spec, valuer: valuer, rng: rng, texture: texture, log: log}
}

// SetSpec swaps the tuning, e.g. after loot.yaml was edited.
func (s *LootDroppingSystem) SetSpec(spec prefabs.LootSpec) {
	s.spec = spec
}

func (s *LootDroppingSystem) SetValuer(v item.Valuer) {
	if v != nil {
		s.valuer = v
	}
}

func (s *LootDroppingSystem) Spec() prefabs.LootSpec { return s.spec }

func (s *LootDroppingSystem) Register(bus *ecs.EventBus) error {
	return ecs.Subscribe(bus, ecs.Receiver[event.Deletion]{
		Name:   lootReceiver,
		Phase:  ecs.PhaseReact,
		Before: []string{DestructionReceiver},
		Requires: component.Set(
			component.DropsLootOnDeathComponent,
			component.PositionComponent,
			component.VelocityComponent,
			component.SizeComponent,
		),
		Handle: s.drop,
	})
}

// LootAmount is the money thrown by an entity of the given size for one
// random draw in [lowFactor, 1).
func LootAmount(size, baseFactor, draw float64) float64 {
	return size * baseFactor * draw
}

func (s *LootDroppingSystem) drop(w *ecs.World, e ecs.Entity, _ event.Deletion) ecs.Result {
	pos := ecs.MustGet(w, e, component.PositionComponent.Kind(), lootReceiver).Position
	vel := ecs.MustGet(w, e, component.VelocityComponent.Kind(), lootReceiver).Velocity
	size := ecs.MustGet(w, e, component.SizeComponent.Kind(), lootReceiver).Size

	spec := s.spec
	amount := LootAmount(size, spec.BaseFactor, common.RandomFloat(s.rng, spec.LowFactor, 1))
	items := s.valuer.MoneyToItems(amount)

	for _, it := range items {
		speed := s.rng.Float64() * spec.MaxSpeed
		velocity := vel.Add(common.FromAngle(s.rng.Float64()*360, speed))
		radius := s.rng.Float64() * size / 2
		position := pos.Add(common.FromAngle(s.rng.Float64()*360, radius))
		spin := common.RandomFloat(s.rng, -spec.MaxRotSpeed, spec.MaxRotSpeed)
		life := lootLife(s.rng, spec.MaxLife)

		w.Commands().Spawn(s.lootBuilder(it, position, velocity, spin, life))
	}

	s.dropped += len(items)
	s.value += item.Total(items)
	s.log.Debug("loot dropped",
		zap.Stringer("source", e),
		zap.Float64("amount", amount),
		zap.Int("items", len(items)))
	return ecs.Continue
}

// lootLife picks a lifetime in [maxLife/2, maxLife] ticks.
func lootLife(rng *rand.Rand, maxLife int) int {
	if maxLife <= 1 {
		return 1
	}
	half := maxLife / 2
	return half + rng.IntN(maxLife-half+1)
}

func (s *LootDroppingSystem) lootBuilder(it item.Item, pos, vel cp.Vector, spin float64, life int) func(*ecs.World, ecs.Entity) {
	size := s.spec.Size
	if size <= 0 {
		size = 0.25
	}
	var tint color.Color = color.White
	if s.spec.Tint.Color != nil {
		tint = s.spec.Tint.Color
	}
	texture := s.texture
	return func(w *ecs.World, e ecs.Entity) {
		err := errors.Join(
			ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{Position: pos}),
			ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{Velocity: vel}),
			ecs.Add(w, e, component.AngleComponent.Kind(), &component.Angle{Spin: spin}),
			ecs.Add(w, e, component.SizeComponent.Kind(), &component.Size{Size: size}),
			ecs.Add(w, e, component.LootComponent.Kind(), &component.Loot{Item: it}),
			ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: life}),
			ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: lootLayer}),
			ecs.Add(w, e, component.RenderableComponent.Kind(), &component.Renderable{
				Elements: []component.RenderableElement{{
					Texture: texture,
					Width:   size,
					Height:  size,
					Tint:    tint,
				}},
			}),
		)
		if err != nil {
			s.log.Warn("loot spawn incomplete", zap.Stringer("entity", e), zap.String("item", it.Name), zap.Error(err))
		}
	}
}

// Dropped reports the number of loot items and their total value so far.
func (s *LootDroppingSystem) Dropped() (int, float64) {
	return s.dropped, s.value
}
