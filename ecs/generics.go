package ecs

import "github.com/milk9111/spacecombat/ecs/component"

// Add inserts or replaces the component for e. Replacing is non-structural and
// safe while systems iterate.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !IsAlive(w, e) {
		return component.ErrEntityNotAlive
	}
	storeFor(w, kind, true).set(e.id(), value)
	return nil
}

// Get returns the stored component pointer; mutations are visible to every
// later reader in the same tick.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	s := storeFor(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e.id())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	return s != nil && s.has(e.id())
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	s := storeFor(w, kind, false)
	return s != nil && s.remove(e.id())
}

// MustGet is for receivers whose required component set guarantees presence.
// A miss is a programming error and panics with the caller's label.
func MustGet[T any](w *World, e Entity, kind component.ComponentKind[T], who string) *T {
	v, ok := Get(w, e, kind)
	if !ok || v == nil {
		panic(who + ": entity " + e.String() + " is missing a required component")
	}
	return v
}
