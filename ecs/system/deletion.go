package system

import (
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"go.uber.org/zap"
)

// DestructionReceiver is the terminal Deletion receiver. Receivers that need
// the dying entity's components list it in Before.
const DestructionReceiver = "destruction"

// Mark flags e for deletion. It reports false when e is dead or already
// marked, so marking is idempotent.
func Mark(w *ecs.World, e ecs.Entity) bool {
	if !ecs.IsAlive(w, e) || ecs.Has(w, e, component.DeletionMarkerComponent.Kind()) {
		return false
	}
	return ecs.Add(w, e, component.DeletionMarkerComponent.Kind(), &component.DeletionMarker{}) == nil
}

// DeletionUpdateSystem fires event.Deletion to every entity marked before it
// ran. It must be the first system of the tick: an entity marked in tick N is
// signalled in tick N+1 and destroyed at the end of that tick.
type DeletionUpdateSystem struct {
	log       *zap.Logger
	destroyed int
}

func NewDeletionUpdateSystem(log *zap.Logger) *DeletionUpdateSystem {
	if log == nil {
		log = zap.NewNop()
	}
	return &DeletionUpdateSystem{log: log}
}

// Register subscribes the terminal destruction receiver.
func (s *DeletionUpdateSystem) Register(bus *ecs.EventBus) error {
	return ecs.Subscribe(bus, ecs.Receiver[event.Deletion]{
		Name:     DestructionReceiver,
		Phase:    ecs.PhaseDestroy,
		Requires: component.Set(component.DeletionMarkerComponent),
		Handle: func(w *ecs.World, e ecs.Entity, _ event.Deletion) ecs.Result {
			w.Commands().Destroy(e)
			s.destroyed++
			s.log.Debug("entity destroyed", zap.Stringer("entity", e), zap.Uint64("tick", w.Tick()))
			return ecs.Continue
		},
	})
}

func (s *DeletionUpdateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.DeletionMarkerComponent) {
		ecs.Send(w, event.Deletion{}, e)
	}
}

// Destroyed counts entities handed to the terminal step so far.
func (s *DeletionUpdateSystem) Destroyed() int {
	return s.destroyed
}
