package system

import (
	"slices"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/common"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"github.com/milk9111/spacecombat/prefabs"
)

type systemFunc func(w *ecs.World)

func (f systemFunc) Update(w *ecs.World) { f(w) }

type harness struct {
	w        *ecs.World
	deletion *DeletionUpdateSystem
	damage   *DamageSystem
	loot     *LootDroppingSystem
}

func testLootSpec() prefabs.LootSpec {
	spec := prefabs.DefaultLootSpec()
	spec.MaxSpeed = 2
	spec.MaxLife = 100
	return spec
}

// newHarness wires the deletion pipeline, damage and loot receivers. extra
// receivers are registered before the bus is sealed.
func newHarness(t *testing.T, extra ...func(bus *ecs.EventBus) error) *harness {
	t.Helper()
	h := &harness{
		w:        ecs.NewWorld(),
		deletion: NewDeletionUpdateSystem(nil),
		damage:   NewDamageSystem(nil),
		loot:     NewLootDroppingSystem(testLootSpec(), nil, common.NewRand(3), nil, nil),
	}
	for _, fn := range extra {
		if err := fn(h.w.Bus()); err != nil {
			t.Fatal(err)
		}
	}
	if err := RegisterAll(h.w.Bus(), h.deletion, h.damage, h.loot); err != nil {
		t.Fatal(err)
	}
	return h
}

func (h *harness) scheduler(systems ...ecs.System) *ecs.Scheduler {
	return ecs.NewScheduler(append([]ecs.System{h.deletion}, systems...)...)
}

func spawnLooter(t *testing.T, w *ecs.World, pos cp.Vector, size float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	for _, err := range []error{
		ecs.Add(w, e, component.PositionComponent.Kind(), &component.Position{Position: pos}),
		ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}),
		ecs.Add(w, e, component.SizeComponent.Kind(), &component.Size{Size: size}),
		ecs.Add(w, e, component.DropsLootOnDeathComponent.Kind(), &component.DropsLootOnDeath{}),
		ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Max: 10, Current: 10}),
	} {
		if err != nil {
			t.Fatal(err)
		}
	}
	return e
}

func TestDeletionTakesExactlyOneTick(t *testing.T) {
	deliveries := 0
	h := newHarness(t, func(bus *ecs.EventBus) error {
		return ecs.Subscribe(bus, ecs.Receiver[event.Deletion]{
			Name:   "count",
			Phase:  ecs.PhaseReact,
			Before: []string{DestructionReceiver},
			Handle: func(*ecs.World, ecs.Entity, event.Deletion) ecs.Result {
				deliveries++
				return ecs.Continue
			},
		})
	})
	w := h.w
	victim := ecs.CreateEntity(w)

	var aliveDuring []uint64
	marker := systemFunc(func(w *ecs.World) {
		if w.Tick() == 0 {
			Mark(w, victim)
		}
	})
	observer := systemFunc(func(w *ecs.World) {
		if ecs.IsAlive(w, victim) && len(w.Query(component.DeletionMarkerComponent)) == 1 {
			aliveDuring = append(aliveDuring, w.Tick())
		}
	})
	s := h.scheduler(marker, marker, observer)

	s.Update(w) // tick 0: marked twice
	if !ecs.IsAlive(w, victim) {
		t.Fatalf("entity must survive the tick it was marked in")
	}
	s.Update(w) // tick 1: deletion event, destroyed at the boundary
	if ecs.IsAlive(w, victim) {
		t.Fatalf("entity must be gone at the start of tick 2")
	}
	if !slices.Equal(aliveDuring, []uint64{0, 1}) {
		t.Fatalf("expected the entity observable in ticks 0 and 1, got %v", aliveDuring)
	}
	s.Update(w)
	if deliveries != 1 || h.deletion.Destroyed() != 1 {
		t.Fatalf("expected one deletion and one destruction, got %d and %d", deliveries, h.deletion.Destroyed())
	}
}

func TestMarkIsIdempotentAndIgnoresDeadEntities(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	if !Mark(w, e) {
		t.Fatalf("first mark should succeed")
	}
	if Mark(w, e) {
		t.Fatalf("second mark should be a no-op")
	}
	ecs.DestroyEntity(w, e)
	if Mark(w, e) {
		t.Fatalf("marking a destroyed entity should be a no-op")
	}
}

func TestDeletionReceiverOrder(t *testing.T) {
	h := newHarness(t)
	got := ecs.ReceiverOrder[event.Deletion](h.w.Bus())
	if !slices.Equal(got, []string{lootReceiver, DestructionReceiver}) {
		t.Fatalf("deletion receivers = %v", got)
	}
}

func TestLootSpawnerSeesSourceBeforeDestruction(t *testing.T) {
	var seen []bool
	h := newHarness(t, func(bus *ecs.EventBus) error {
		return ecs.Subscribe(bus, ecs.Receiver[event.Deletion]{
			Name:   "witness",
			Phase:  ecs.PhaseDestroy,
			Before: []string{DestructionReceiver},
			Handle: func(w *ecs.World, e ecs.Entity, _ event.Deletion) ecs.Result {
				// loot-drop already ran: its spawns are queued, the source is intact
				seen = append(seen, w.Commands().Len() > 0 && ecs.Has(w, e, component.SizeComponent.Kind()))
				return ecs.Continue
			},
		})
	})
	w := h.w
	var victims []ecs.Entity
	for i := 0; i < 5; i++ {
		victims = append(victims, spawnLooter(t, w, cp.Vector{X: float64(i)}, 4))
	}
	s := h.scheduler(systemFunc(func(w *ecs.World) {
		if w.Tick() == 0 {
			for _, v := range victims {
				Mark(w, v)
			}
		}
	}))
	s.Update(w)
	s.Update(w)

	if len(seen) != len(victims) || slices.Contains(seen, false) {
		t.Fatalf("loot must be computed before each destruction, got %v", seen)
	}
}

func TestZeroHealthDropsLootNextTick(t *testing.T) {
	h := newHarness(t)
	w := h.w
	src := spawnLooter(t, w, cp.Vector{}, 10)

	killer := systemFunc(func(w *ecs.World) {
		if w.Tick() == 0 {
			ecs.Send(w, event.Damage{Amount: 10}, src)
		}
	})
	s := h.scheduler(killer)

	s.Update(w)
	if !ecs.Has(w, src, component.DeletionMarkerComponent.Kind()) {
		t.Fatalf("zero health should mark the entity")
	}
	if n := len(w.Query(component.LootComponent)); n != 0 {
		t.Fatalf("no loot before the deletion tick, got %d", n)
	}

	s.Update(w)
	if ecs.IsAlive(w, src) {
		t.Fatalf("source should be destroyed")
	}
	loot := w.Query(component.LootComponent)
	if len(loot) == 0 {
		t.Fatalf("expected loot entities")
	}
	maxSpeed := h.loot.Spec().MaxSpeed
	for _, e := range loot {
		pos, _ := ecs.Get(w, e, component.PositionComponent.Kind())
		vel, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		if d := pos.Position.Length(); d > 5 {
			t.Fatalf("loot spawned %v from the source, radius limit 5", d)
		}
		if sp := vel.Velocity.Length(); sp > maxSpeed {
			t.Fatalf("loot speed %v exceeds %v", sp, maxSpeed)
		}
		if ttl, ok := ecs.Get(w, e, component.TTLComponent.Kind()); !ok || ttl.Frames <= 0 {
			t.Fatalf("loot needs a bounded lifetime")
		}
	}
	if n, value := h.loot.Dropped(); n != len(loot) || value <= 0 {
		t.Fatalf("Dropped() = %d, %v for %d entities", n, value, len(loot))
	}
}

func TestLootInheritsSourceVelocity(t *testing.T) {
	h := newHarness(t)
	w := h.w
	src := spawnLooter(t, w, cp.Vector{X: 100, Y: -50}, 6)
	vel, _ := ecs.Get(w, src, component.VelocityComponent.Kind())
	vel.Velocity = cp.Vector{X: 10}

	s := h.scheduler(systemFunc(func(w *ecs.World) {
		if w.Tick() == 0 {
			Mark(w, src)
		}
	}))
	s.Update(w)
	s.Update(w)

	for _, e := range w.Query(component.LootComponent) {
		v, _ := ecs.Get(w, e, component.VelocityComponent.Kind())
		p, _ := ecs.Get(w, e, component.PositionComponent.Kind())
		if d := v.Velocity.Sub(cp.Vector{X: 10}).Length(); d > h.loot.Spec().MaxSpeed {
			t.Fatalf("relative loot speed %v too high", d)
		}
		if d := p.Position.Sub(cp.Vector{X: 100, Y: -50}).Length(); d > 3 {
			t.Fatalf("loot offset %v beyond size/2", d)
		}
	}
}

func TestLootAmountMonotonicInSize(t *testing.T) {
	for _, draw := range []float64{0.3, 0.55, 0.99} {
		prev := -1.0
		for size := 0.0; size <= 20; size += 0.5 {
			got := LootAmount(size, 40, draw)
			if got < prev {
				t.Fatalf("draw %v: amount fell from %v to %v at size %v", draw, prev, got, size)
			}
			prev = got
		}
	}
}

func TestLootWithoutTriggerTagDropsNothing(t *testing.T) {
	h := newHarness(t)
	w := h.w
	e := spawnLooter(t, w, cp.Vector{}, 10)
	ecs.Remove(w, e, component.DropsLootOnDeathComponent.Kind())

	s := h.scheduler(systemFunc(func(w *ecs.World) {
		if w.Tick() == 0 {
			Mark(w, e)
		}
	}))
	s.Update(w)
	s.Update(w)
	if ecs.IsAlive(w, e) {
		t.Fatalf("entity should still be destroyed")
	}
	if n := len(w.Query(component.LootComponent)); n != 0 {
		t.Fatalf("expected no loot, got %d", n)
	}
}
