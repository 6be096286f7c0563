package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies one registered component type.
type ComponentID uint32

var nextComponentID atomic.Uint32

// ComponentKind is the typed key a store is indexed by.
type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is the package-level value each component file exports.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.kind.id
}

// Identified is satisfied by kinds and handles so receivers can declare a
// required component set without caring about the component types.
type Identified interface {
	ID() ComponentID
}

// Set builds a required component set.
func Set(kinds ...Identified) []ComponentID {
	ids := make([]ComponentID, 0, len(kinds))
	for _, k := range kinds {
		if k == nil || k.ID() == 0 {
			continue
		}
		ids = append(ids, k.ID())
	}
	return ids
}
