package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/entity"
	"github.com/milk9111/spacecombat/physics"
	"go.uber.org/zap"
)

// Entities keep this far from the player spawn.
const spawnClearance = 4.0

// Spawn builds a prefab entity at pos moving with vel.
func (s *Sim) Spawn(prefab string, pos, vel cp.Vector) (ecs.Entity, error) {
	e, err := entity.BuildEntity(s.World, prefab, s.textures)
	if err != nil {
		return 0, err
	}
	if err := entity.SetEntityPlacement(s.World, e, pos, vel); err != nil {
		ecs.DestroyEntity(s.World, e)
		return 0, fmt.Errorf("game: place %s: %w", prefab, err)
	}
	return e, nil
}

// Populate fills the arena: the player ship and camera at the origin, then
// asteroids, freighters and loose debris at random clear spots.
func (s *Sim) Populate() error {
	if _, err := s.Spawn("scout.yaml", cp.Vector{}, cp.Vector{}); err != nil {
		return err
	}
	if _, err := entity.BuildEntity(s.World, "camera.yaml", s.textures); err != nil {
		return err
	}

	for i := 0; i < s.cfg.Sim.Asteroids; i++ {
		if _, err := s.Spawn("asteroid.yaml", s.randomSpot(), s.randomDrift(1.5)); err != nil {
			return err
		}
	}
	for i := 0; i < s.cfg.Sim.Freighters; i++ {
		if _, err := s.Spawn("freighter.yaml", s.randomSpot(), s.randomDrift(0.5)); err != nil {
			return err
		}
	}
	for i := 0; i < s.cfg.Sim.Debris; i++ {
		d := physics.NewDebris(fmt.Sprintf("debris-%d", i), 6, 0.5, 0.3, s.randomSpot(), s.randomDrift(2))
		s.Objects.AddDelayed(d)
	}

	s.log.Info("arena populated",
		zap.Int("asteroids", s.cfg.Sim.Asteroids),
		zap.Int("freighters", s.cfg.Sim.Freighters),
		zap.Int("debris", s.cfg.Sim.Debris),
		zap.Float64("arena", s.cfg.Sim.ArenaSize))
	return nil
}

func (s *Sim) randomSpot() cp.Vector {
	half := s.cfg.Sim.ArenaSize/2 - 2
	if half <= spawnClearance {
		half = spawnClearance + 1
	}
	for {
		p := cp.Vector{X: common.RandomFloat(s.rng, -half, half), Y: common.RandomFloat(s.rng, -half, half)}
		if p.Length() >= spawnClearance {
			return p
		}
	}
}

func (s *Sim) randomDrift(maxSpeed float64) cp.Vector {
	return common.FromAngle(s.rng.Float64()*360, s.rng.Float64()*maxSpeed)
}

func (s *Sim) texture(name string) *ebiten.Image {
	if s.textures == nil {
		return nil
	}
	return s.textures.Texture(name)
}
