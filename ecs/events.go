package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/milk9111/spacecombat/ecs/component"
)

var (
	ErrBusSealed         = errors.New("ecs: event bus already sealed")
	ErrDuplicateReceiver = errors.New("ecs: duplicate receiver name")
	ErrUnknownReceiver   = errors.New("ecs: unknown receiver in before constraint")
	ErrOrderCycle        = errors.New("ecs: receiver ordering cycle")
)

// Result tells the bus whether later receivers of the same event may run.
type Result uint8

const (
	Continue Result = iota
	Stop
)

// Phase is the coarse ordering of receivers for one event type. Receivers in
// a lower phase always run before receivers in a higher one.
type Phase uint8

const (
	PhaseDecide Phase = iota
	PhaseReact
	PhaseDestroy
	PhaseRender
)

func (p Phase) String() string {
	switch p {
	case PhaseDecide:
		return "decide"
	case PhaseReact:
		return "react"
	case PhaseDestroy:
		return "destroy"
	case PhaseRender:
		return "render"
	default:
		return fmt.Sprintf("phase(%d)", uint8(p))
	}
}

// Receiver subscribes Handle to events of type E sent to entities holding
// every component in Requires. Before names receivers of the same event type
// that must run after this one.
type Receiver[E any] struct {
	Name     string
	Phase    Phase
	Before   []string
	Requires []component.ComponentID
	Handle   func(w *World, e Entity, ev E) Result
}

type receiver struct {
	name     string
	phase    Phase
	before   []string
	requires []component.ComponentID
	order    int
	call     func(w *World, e Entity, ev any) Result
}

// EventBus delivers typed events synchronously. Registration happens at
// startup; Seal resolves the per-type receiver order once and rejects
// contradictory constraints.
type EventBus struct {
	receivers map[reflect.Type][]*receiver
	sealed    bool
	next      int
}

func NewEventBus() *EventBus {
	return &EventBus{receivers: make(map[reflect.Type][]*receiver)}
}

// Subscribe registers r for events of type E.
func Subscribe[E any](b *EventBus, r Receiver[E]) error {
	if b == nil {
		return errors.New("ecs: subscribe on nil bus")
	}
	if b.sealed {
		return fmt.Errorf("subscribe %q: %w", r.Name, ErrBusSealed)
	}
	if r.Handle == nil {
		return fmt.Errorf("subscribe %q: nil handler", r.Name)
	}
	t := reflect.TypeFor[E]()
	name := r.Name
	if name == "" {
		name = fmt.Sprintf("%s#%d", t, b.next)
	}
	for _, existing := range b.receivers[t] {
		if existing.name == name {
			return fmt.Errorf("subscribe %q to %s: %w", name, t, ErrDuplicateReceiver)
		}
	}
	handle := r.Handle
	b.receivers[t] = append(b.receivers[t], &receiver{
		name:     name,
		phase:    r.Phase,
		before:   slices.Clone(r.Before),
		requires: slices.Clone(r.Requires),
		order:    b.next,
		call: func(w *World, e Entity, ev any) Result {
			return handle(w, e, ev.(E))
		},
	})
	b.next++
	return nil
}

// Seal orders every event type's receivers: phase first, then Before edges,
// then registration order. It fails on unknown names or cycles, including a
// Before edge pointing into an earlier phase.
func (b *EventBus) Seal() error {
	if b == nil {
		return errors.New("ecs: seal nil bus")
	}
	if b.sealed {
		return nil
	}
	for t, rs := range b.receivers {
		sorted, err := resolveOrder(rs)
		if err != nil {
			return fmt.Errorf("seal %s: %w", t, err)
		}
		b.receivers[t] = sorted
	}
	b.sealed = true
	return nil
}

func (b *EventBus) Sealed() bool {
	return b != nil && b.sealed
}

// ReceiverOrder returns the resolved receiver names for event type E.
func ReceiverOrder[E any](b *EventBus) []string {
	if b == nil {
		return nil
	}
	rs := b.receivers[reflect.TypeFor[E]()]
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.name)
	}
	return names
}

func resolveOrder(rs []*receiver) ([]*receiver, error) {
	index := make(map[string]int, len(rs))
	for i, r := range rs {
		index[r.name] = i
	}

	// edges[i] lists receivers that must run after i
	edges := make([][]int, len(rs))
	indegree := make([]int, len(rs))
	addEdge := func(from, to int) {
		if slices.Contains(edges[from], to) {
			return
		}
		edges[from] = append(edges[from], to)
		indegree[to]++
	}
	for i, r := range rs {
		for _, name := range r.before {
			j, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("%q before %q: %w", r.name, name, ErrUnknownReceiver)
			}
			addEdge(i, j)
		}
		for j, other := range rs {
			if r.phase < other.phase {
				addEdge(i, j)
			}
		}
	}

	ready := make([]int, 0, len(rs))
	for i := range rs {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]*receiver, 0, len(rs))
	for len(ready) > 0 {
		// lowest (phase, registration order) first keeps the result stable
		best := 0
		for k := 1; k < len(ready); k++ {
			a, c := rs[ready[k]], rs[ready[best]]
			if a.phase < c.phase || (a.phase == c.phase && a.order < c.order) {
				best = k
			}
		}
		i := ready[best]
		ready = slices.Delete(ready, best, best+1)
		out = append(out, rs[i])
		for _, j := range edges[i] {
			indegree[j]--
			if indegree[j] == 0 {
				ready = append(ready, j)
			}
		}
	}
	if len(out) != len(rs) {
		return nil, ErrOrderCycle
	}
	return out, nil
}

// Send delivers ev to target. Receivers whose required set target lacks are
// skipped; a dead target receives nothing. The first Stop ends delivery.
func Send[E any](w *World, ev E, target Entity) Result {
	if w == nil || w.bus == nil {
		return Continue
	}
	b := w.bus
	if !b.sealed {
		if err := b.Seal(); err != nil {
			panic("ecs: send: " + err.Error())
		}
	}
	for _, r := range b.receivers[reflect.TypeFor[E]()] {
		if !w.entities.isAlive(target) {
			return Continue
		}
		if !w.HasAll(target, r.requires) {
			continue
		}
		if r.call(w, target, ev) == Stop {
			return Stop
		}
	}
	return Continue
}

// Broadcast sends ev to every entity holding the filter set and returns how
// many entities it was delivered to. The entity set is snapshotted first.
func Broadcast[E any](w *World, ev E, filter ...component.Identified) int {
	if w == nil {
		return 0
	}
	delivered := 0
	for _, e := range w.Query(filter...) {
		if !w.IsAlive(e) {
			continue
		}
		Send(w, ev, e)
		delivered++
	}
	return delivered
}
