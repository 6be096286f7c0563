package game

import (
	"path"

	"github.com/milk9111/spacecombat/prefabs"
	"go.uber.org/zap"
)

// Reload applies an edited prefab or script. Only loot tuning and its valuer
// script are live; other edits take effect for entities spawned afterwards
// because prefabs are read on every spawn. A failed reload keeps the current
// settings.
func (s *Sim) Reload(name string) error {
	spec := s.loot.Spec()
	switch {
	case name == s.cfg.Loot.Prefab:
		next, err := prefabs.LoadLootSpecFile(name)
		if err != nil {
			return err
		}
		valuer, err := newValuer(next, s.log)
		if err != nil {
			return err
		}
		s.loot.SetSpec(next)
		s.loot.SetValuer(valuer)
		s.log.Info("loot tuning reloaded",
			zap.Float64("base_factor", next.BaseFactor),
			zap.Float64("max_speed", next.MaxSpeed),
			zap.String("valuer", next.ValuerScript))
	case prefabs.IsScriptFile(name) && spec.ValuerScript != "" && path.Base(name) == path.Base(spec.ValuerScript):
		valuer, err := newValuer(spec, s.log)
		if err != nil {
			return err
		}
		s.loot.SetValuer(valuer)
		s.log.Info("valuer script reloaded", zap.String("script", name))
	default:
		s.log.Debug("prefab changed", zap.String("name", name))
	}
	return nil
}

// DrainReloads applies every pending name without blocking and returns how
// many were read.
func (s *Sim) DrainReloads(events <-chan string) int {
	n := 0
	for {
		select {
		case name, ok := <-events:
			if !ok {
				return n
			}
			n++
			if err := s.Reload(name); err != nil {
				s.log.Warn("prefab reload failed", zap.String("name", name), zap.Error(err))
			}
		default:
			return n
		}
	}
}
