// Package game bundles one running simulation: the world, its event bus,
// the physics space and every system, wired in tick order.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/config"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/entity"
	"github.com/milk9111/spacecombat/ecs/system"
	"github.com/milk9111/spacecombat/item"
	"github.com/milk9111/spacecombat/physics"
	"github.com/milk9111/spacecombat/prefabs"
	"github.com/milk9111/spacecombat/render"
	"go.uber.org/zap"
)

// Impacts below impulseThreshold are harmless; above it every unit of
// impulse costs impulseScale health.
const (
	impulseThreshold = 1.5
	impulseScale     = 6
)

type Options struct {
	Config   *config.Config
	Logger   *zap.Logger
	Input    system.Input
	Sounds   physics.SoundPlayer
	Textures entity.TextureSource
}

// Sim is not safe for concurrent use. Prefab reloads arrive through
// DrainReloads on the simulation goroutine.
type Sim struct {
	cfg      *config.Config
	log      *zap.Logger
	rng      *rand.Rand
	textures entity.TextureSource

	World     *ecs.World
	Scheduler *ecs.Scheduler
	Space     *physics.Space
	Objects   *physics.ObjectManager
	Contacts  *ContactTap

	deletion  *system.DeletionUpdateSystem
	damage    *system.DamageSystem
	impulse   *system.ImpulseDamageSystem
	physics   *system.PhysicsSystem
	bodies    *system.BodyUpdateSystem
	loot      *system.LootDroppingSystem
	ttl       *system.TTLSystem
	movement  *system.MovementSystem
	camera    *system.CameraSystem
	player    *system.PlayerControlSystem
	rendering *system.RenderingSystem
}

func New(opts Options) (*Sim, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Sim{
		cfg:      cfg,
		log:      log,
		rng:      common.NewRand(cfg.Sim.Seed),
		textures: opts.Textures,
		World:    ecs.NewWorld(),
	}

	s.Space = physics.NewSpace(cfg.Sim.Iterations, cfg.Sim.Damping)
	s.Space.AddBounds(cfg.Sim.ArenaSize / 2)
	s.Objects = physics.NewObjectManager(s.Space)
	translator := physics.NewTranslator(s.World, s.Objects, opts.Sounds, log.Named("contacts"))
	s.Contacts = NewContactTap(translator, cfg.Debug.DrawContacts)
	s.Space.SetListener(s.Contacts)

	lootSpec, err := prefabs.LoadLootSpecFile(cfg.Loot.Prefab)
	if err != nil {
		log.Warn("loot prefab unavailable, using defaults", zap.String("prefab", cfg.Loot.Prefab), zap.Error(err))
	}
	valuer, err := newValuer(lootSpec, log)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	bolt, err := prefabs.LoadProjectileSpec("projectile.yaml")
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	beam, err := prefabs.LoadProjectileSpec("beam.yaml")
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	s.deletion = system.NewDeletionUpdateSystem(log.Named("deletion"))
	s.damage = system.NewDamageSystem(log.Named("damage"))
	s.impulse = system.NewImpulseDamageSystem(impulseThreshold, impulseScale)
	s.physics = system.NewPhysicsSystem(s.Space, s.Objects, cfg.DT(), log.Named("physics"))
	s.bodies = system.NewBodyUpdateSystem()
	s.loot = system.NewLootDroppingSystem(lootSpec, valuer, s.rng, s.texture("loot"), log.Named("loot"))
	s.ttl = system.NewTTLSystem()
	s.movement = system.NewMovementSystem(cfg.DT())
	s.camera = system.NewCameraSystem()
	s.player = system.NewPlayerControlSystem(opts.Input, s.Objects, bolt, beam)
	s.rendering = system.NewRenderingSystem()

	if err := system.RegisterAll(s.World.Bus(),
		s.deletion,
		s.damage,
		s.impulse,
		s.physics,
		s.bodies,
		s.loot,
		s.rendering,
	); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	// deletion must run first so marks from the previous tick are released
	// before anything else sees them
	s.Scheduler = ecs.NewScheduler(
		s.deletion,
		s.player,
		s.ttl,
		s.damage,
		s.physics,
		s.movement,
		s.bodies,
		s.camera,
	)

	return s, nil
}

func newValuer(spec prefabs.LootSpec, log *zap.Logger) (item.Valuer, error) {
	if spec.ValuerScript == "" {
		return item.DefaultDenominations(), nil
	}
	src, err := prefabs.LoadScript(spec.ValuerScript)
	if err != nil {
		return nil, fmt.Errorf("load valuer script: %w", err)
	}
	return item.NewScriptValuer(src, item.DefaultDenominations(), log.Named("valuer"))
}

// Step advances the simulation by one tick.
func (s *Sim) Step() {
	s.Contacts.Reset()
	s.Scheduler.Update(s.World)
}

// Draw renders every visible entity through d.
func (s *Sim) Draw(d render.Drawer) {
	s.rendering.Draw(s.World, d)
}

func (s *Sim) View(screenW, screenH int) render.View {
	return s.camera.View(s.World, screenW, screenH)
}

func (s *Sim) Stats() render.Stats {
	dropped, value := s.loot.Dropped()
	return render.Stats{
		Tick:      s.World.Tick(),
		Entities:  s.World.Count(),
		Objects:   s.Objects.Len(),
		Destroyed: s.deletion.Destroyed(),
		Loot:      dropped,
		Value:     value,
	}
}

func (s *Sim) LootSpec() prefabs.LootSpec { return s.loot.Spec() }

func (s *Sim) Logger() *zap.Logger { return s.log }
