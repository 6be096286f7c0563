package ecs

import "github.com/milk9111/spacecombat/ecs/component"

// World owns entities, component stores, the staged command queue and the
// event bus. Structural changes made while systems are running should go
// through Commands so they land at the tick boundary.
type World struct {
	entities entityPool
	stores   map[component.ComponentID]store
	commands Commands
	bus      *EventBus
	tick     uint64
}

// NewWorld creates an empty ECS world with its own event bus.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]store),
		bus:    NewEventBus(),
	}
}

// CreateEntity allocates a new entity immediately. Systems that run inside a
// tick should use Commands().Spawn instead.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components immediately.
// It returns false for dead or unknown entities.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gens {
		if e, ok := w.entities.current(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

func (w *World) DestroyEntity(e Entity) bool {
	return DestroyEntity(w, e)
}

// Count returns the number of live entities.
func (w *World) Count() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// Commands returns the staged structural change queue.
func (w *World) Commands() *Commands {
	if w == nil {
		return nil
	}
	return &w.commands
}

// Bus returns the world event bus.
func (w *World) Bus() *EventBus {
	if w == nil {
		return nil
	}
	return w.bus
}

// Tick returns the number of completed ticks.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// EndTick applies staged commands and advances the tick counter. The
// scheduler calls it once after every system has run.
func (w *World) EndTick() int {
	if w == nil {
		return 0
	}
	applied := w.commands.flush(w)
	w.tick++
	return applied
}

// HasAll reports whether e is alive and holds every component in ids.
func (w *World) HasAll(e Entity, ids []component.ComponentID) bool {
	if !IsAlive(w, e) {
		return false
	}
	for _, id := range ids {
		s, ok := w.stores[id]
		if !ok || !s.has(e.id()) {
			return false
		}
	}
	return true
}

func (w *World) storeByID(id component.ComponentID) store {
	if w == nil {
		return nil
	}
	return w.stores[id]
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *sparseSet[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*sparseSet[T])
		return typed
	}
	if !create {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	s := &sparseSet[T]{}
	w.stores[kind.ID()] = s
	return s
}
