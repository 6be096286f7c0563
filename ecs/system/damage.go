package system

import (
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"go.uber.org/zap"
)

// DamageSystem applies event.Damage to Health and marks entities whose health
// runs out. Update counts invulnerability frames down.
type DamageSystem struct {
	log *zap.Logger
}

func NewDamageSystem(log *zap.Logger) *DamageSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &DamageSystem{log: log}
}

func (s *DamageSystem) Register(bus *ecs.EventBus) error {
	return ecs.Subscribe(bus, ecs.Receiver[event.Damage]{
		Name:     "damage",
		Phase:    ecs.PhaseDecide,
		Requires: component.Set(component.HealthComponent),
		Handle:   s.handle,
	})
}

func (s *DamageSystem) handle(w *ecs.World, e ecs.Entity, ev event.Damage) ecs.Result {
	if ev.Amount <= 0 || ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
		return ecs.Continue
	}
	health := ecs.MustGet(w, e, component.HealthComponent.Kind(), "damage")
	if health.Current <= 0 {
		return ecs.Continue
	}
	health.Current -= ev.Amount
	if health.Current > 0 {
		return ecs.Continue
	}
	health.Current = 0
	if Mark(w, e) {
		s.log.Debug("health depleted", zap.Stringer("entity", e), zap.Int("damage", ev.Amount))
	}
	return ecs.Continue
}

func (s *DamageSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Frames <= 0 {
			return
		}
		inv.Frames--
		if inv.Frames == 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})
}

// ImpulseDamageSystem turns hard impacts into damage. Impulses at or below
// Threshold are ignored; the excess is scaled into hit points.
type ImpulseDamageSystem struct {
	Threshold float64
	Scale     float64
}

func NewImpulseDamageSystem(threshold, scale float64) *ImpulseDamageSystem {
	return &ImpulseDamageSystem{Threshold: threshold, Scale: scale}
}

func (s *ImpulseDamageSystem) Register(bus *ecs.EventBus) error {
	return ecs.Subscribe(bus, ecs.Receiver[event.Impulse]{
		Name:     "impulse-damage",
		Phase:    ecs.PhaseDecide,
		Requires: component.Set(component.HealthComponent),
		Handle: func(w *ecs.World, e ecs.Entity, ev event.Impulse) ecs.Result {
			if amount := s.Damage(ev.Magnitude); amount > 0 {
				ecs.Send(w, event.Damage{Amount: amount}, e)
			}
			return ecs.Continue
		},
	})
}

// Damage converts an impulse magnitude into hit points.
func (s *ImpulseDamageSystem) Damage(magnitude float64) int {
	if magnitude <= s.Threshold {
		return 0
	}
	return int((magnitude - s.Threshold) * s.Scale)
}
