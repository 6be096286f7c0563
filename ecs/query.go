package ecs

import "github.com/milk9111/spacecombat/ecs/component"

// Query returns a snapshot of entities holding every listed component. The
// result is a fresh slice, so callers may mutate the world while ranging it.
func (w *World) Query(kinds ...component.Identified) []Entity {
	return QueryIDs(w, component.Set(kinds...))
}

// QueryIDs is Query over raw component ids.
func QueryIDs(w *World, ids []component.ComponentID) []Entity {
	if w == nil {
		return nil
	}
	if len(ids) == 0 {
		return Entities(w)
	}

	// iterate the smallest store
	var smallest store
	for _, id := range ids {
		s := w.storeByID(id)
		if s == nil {
			return nil
		}
		if smallest == nil || s.len() < smallest.len() {
			smallest = s
		}
	}

	out := make([]Entity, 0, smallest.len())
	for _, id := range smallest.ids() {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		if w.HasAll(e, ids) {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first live entity holding every listed component.
func First(w *World, kinds ...component.Identified) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

func (w *World) First(kinds ...component.Identified) (Entity, bool) {
	return First(w, kinds...)
}

// ForEach visits every entity holding kind. The visit order is a snapshot
// taken before the first callback.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.Query(kind) {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
