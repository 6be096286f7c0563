package game

import (
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/config"
	"github.com/milk9111/spacecombat/ecs"
	"github.com/milk9111/spacecombat/ecs/component"
	"github.com/milk9111/spacecombat/ecs/event"
	"github.com/milk9111/spacecombat/ecs/system"
	"github.com/milk9111/spacecombat/physics"
	"github.com/milk9111/spacecombat/prefabs"
)

func newSim(t *testing.T, mutate func(c *config.Config)) *Sim {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(Options{Config: cfg})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

// usePrefabDir points disk prefab lookups at a temp dir for one test.
func usePrefabDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })
	return dir
}

func TestDeletionReceiversRunBeforeDestruction(t *testing.T) {
	s := newSim(t, nil)
	order := ecs.ReceiverOrder[event.Deletion](s.World.Bus())
	if len(order) != 3 || order[len(order)-1] != system.DestructionReceiver {
		t.Fatalf("deletion order = %v", order)
	}
	for _, name := range []string{"physics-body-cleanup", "loot-drop"} {
		if !slices.Contains(order, name) {
			t.Fatalf("missing %s in %v", name, order)
		}
	}
	if _, ok := s.Scheduler.Systems()[0].(*system.DeletionUpdateSystem); !ok {
		t.Fatalf("deletion system must run first, got %T", s.Scheduler.Systems()[0])
	}
}

func TestPopulateAndStep(t *testing.T) {
	s := newSim(t, nil)
	if err := s.Populate(); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	// scout + camera
	wantEntities := 2 + cfg.Sim.Asteroids + cfg.Sim.Freighters
	if got := s.World.Count(); got != wantEntities {
		t.Fatalf("entities = %d, want %d", got, wantEntities)
	}
	if s.Objects.Len() != 0 {
		t.Fatalf("debris must wait for the tick boundary")
	}

	s.Step()
	if got := s.Objects.Len(); got != cfg.Sim.Debris {
		t.Fatalf("objects = %d, want %d", got, cfg.Sim.Debris)
	}
	bodies := 0
	ecs.ForEach(s.World, component.PhysicsBodyComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body != nil {
			bodies++
		}
	})
	if bodies != wantEntities-1 {
		t.Fatalf("expected a body per ship and rock, got %d", bodies)
	}

	for _, e := range s.World.Query(component.AsteroidTagComponent, component.PositionComponent) {
		p, _ := ecs.Get(s.World, e, component.PositionComponent.Kind())
		if p.Position.Length() < spawnClearance-0.5 {
			t.Fatalf("asteroid spawned on the player at %v", p.Position)
		}
	}
}

func TestMarkedAsteroidDropsLootAndLeavesSpace(t *testing.T) {
	s := newSim(t, func(c *config.Config) { c.Sim.Debris = 0 })
	rock, err := s.Spawn("asteroid.yaml", cp.Vector{X: 6}, cp.Vector{})
	if err != nil {
		t.Fatal(err)
	}
	s.Step()
	pb, _ := ecs.Get(s.World, rock, component.PhysicsBodyComponent.Kind())
	if pb == nil || pb.Body == nil {
		t.Fatalf("asteroid body not created")
	}
	body := pb.Body

	system.Mark(s.World, rock)
	s.Step()

	if s.World.IsAlive(rock) {
		t.Fatalf("marked asteroid should be destroyed after one tick")
	}
	if s.Space.Raw().ContainsBody(body) {
		t.Fatalf("body should leave the space with the entity")
	}
	stats := s.Stats()
	if stats.Destroyed != 1 || stats.Loot == 0 || stats.Value <= 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if got := len(s.World.Query(component.LootComponent)); got != stats.Loot {
		t.Fatalf("loot entities = %d, stats say %d", got, stats.Loot)
	}
}

func TestSameSeedSamePlacement(t *testing.T) {
	placement := func(seed uint64) []cp.Vector {
		s := newSim(t, func(c *config.Config) { c.Sim.Seed = seed })
		if err := s.Populate(); err != nil {
			t.Fatal(err)
		}
		var out []cp.Vector
		ecs.ForEach(s.World, component.PositionComponent.Kind(), func(_ ecs.Entity, p *component.Position) {
			out = append(out, p.Position)
		})
		return out
	}
	a, b := placement(42), placement(42)
	if !slices.Equal(a, b) {
		t.Fatalf("one seed produced two layouts")
	}
	if slices.Equal(a, placement(43)) {
		t.Fatalf("different seeds produced the same layout")
	}
}

func TestReloadLootTuning(t *testing.T) {
	dir := usePrefabDir(t)
	s := newSim(t, nil)
	before := s.LootSpec()

	if err := os.WriteFile(filepath.Join(dir, "loot.yaml"), []byte("max_speed: 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	events := make(chan string, 4)
	events <- "loot.yaml"
	events <- "asteroid.yaml"
	if n := s.DrainReloads(events); n != 2 {
		t.Fatalf("drained %d events, want 2", n)
	}
	if got := s.LootSpec().MaxSpeed; got != 7 {
		t.Fatalf("max speed = %v after reload", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "loot.yaml"), []byte("low_factor: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload("loot.yaml"); err == nil {
		t.Fatalf("expected an error for a bad low factor")
	}
	if got := s.LootSpec(); got.MaxSpeed != 7 || got.LowFactor != before.LowFactor {
		t.Fatalf("failed reload should keep the previous tuning, got %+v", got)
	}
}

func TestReloadBrokenValuerScriptKeepsOld(t *testing.T) {
	dir := usePrefabDir(t)
	s := newSim(t, nil)
	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "scripts", s.LootSpec().ValuerScript)
	if err := os.WriteFile(script, []byte("items = ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload("scripts/" + s.LootSpec().ValuerScript); err == nil {
		t.Fatalf("expected compile error")
	}

	rock, err := s.Spawn("asteroid.yaml", cp.Vector{X: 6}, cp.Vector{})
	if err != nil {
		t.Fatal(err)
	}
	system.Mark(s.World, rock)
	s.Step()
	if stats := s.Stats(); stats.Loot == 0 {
		t.Fatalf("previous valuer should still price loot, got %+v", stats)
	}
}

type listenerLog struct {
	begins, solves int
}

func (l *listenerLog) BeginContact(physics.Object, physics.Object) { l.begins++ }
func (l *listenerLog) PostSolve(physics.Object, physics.Object, cp.Vector, []float64) {
	l.solves++
}

func TestContactTap(t *testing.T) {
	next := &listenerLog{}
	tap := NewContactTap(next, false)
	unknown := physics.ObjectFromUserData(nil)

	tap.BeginContact(unknown, unknown)
	tap.PostSolve(unknown, unknown, cp.Vector{X: 1}, []float64{1})
	if len(tap.Points()) != 0 {
		t.Fatalf("points recorded while not recording")
	}
	tap.SetRecording(true)
	for i := 0; i < maxRecordedContacts+5; i++ {
		tap.PostSolve(unknown, unknown, cp.Vector{X: float64(i)}, nil)
	}
	if len(tap.Points()) != maxRecordedContacts {
		t.Fatalf("points = %d, want cap %d", len(tap.Points()), maxRecordedContacts)
	}
	tap.Reset()
	if len(tap.Points()) != 0 || tap.Total() != maxRecordedContacts+6 {
		t.Fatalf("after reset: %d points, %d total", len(tap.Points()), tap.Total())
	}
	if next.begins != 1 || next.solves != maxRecordedContacts+6 {
		t.Fatalf("forwarding lost calls: %+v", next)
	}
}

func TestAutopilotRhythm(t *testing.T) {
	a := &Autopilot{FireEvery: 3, BeamEvery: 5}
	fires, beams := 0, 0
	for i := 0; i < 15; i++ {
		c := a.Controls()
		if c.Fire {
			fires++
		}
		if c.Beam {
			beams++
		}
	}
	if fires != 5 || beams != 3 {
		t.Fatalf("fires = %d, beams = %d", fires, beams)
	}
}

type recorder struct{ n int }

func (r *recorder) Draw(_ *ebiten.Image, _, _, _, _, _, _, _ float64, _ color.Color) { r.n++ }

func TestDrawObjectsCoversLiveObjects(t *testing.T) {
	s := newSim(t, nil)
	if err := s.Populate(); err != nil {
		t.Fatal(err)
	}
	s.Step()
	rec := &recorder{}
	s.DrawObjects(rec)
	if rec.n != s.Objects.Len() {
		t.Fatalf("drew %d objects, have %d", rec.n, s.Objects.Len())
	}
	s.DrawObjects(nil)
}
