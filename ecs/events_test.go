package ecs

import (
	"errors"
	"slices"
	"testing"

	"github.com/milk9111/spacecombat/ecs/component"
)

type pingEvent struct{ n int }

func recordTo(log *[]string, name string, res Result) func(*World, Entity, pingEvent) Result {
	return func(_ *World, _ Entity, _ pingEvent) Result {
		*log = append(*log, name)
		return res
	}
}

func TestSealOrdersByPhaseBeforeAndDeclaration(t *testing.T) {
	w := NewWorld()
	var log []string
	b := w.Bus()

	regs := []Receiver[pingEvent]{
		{Name: "render", Phase: PhaseRender, Handle: recordTo(&log, "render", Continue)},
		{Name: "destroy", Phase: PhaseDestroy, Handle: recordTo(&log, "destroy", Continue)},
		{Name: "loot", Phase: PhaseReact, Before: []string{"destroy"}, Handle: recordTo(&log, "loot", Continue)},
		{Name: "cleanup", Phase: PhaseReact, Handle: recordTo(&log, "cleanup", Continue)},
		{Name: "sound", Phase: PhaseReact, Before: []string{"loot"}, Handle: recordTo(&log, "sound", Continue)},
		{Name: "decide", Phase: PhaseDecide, Handle: recordTo(&log, "decide", Continue)},
	}
	for _, r := range regs {
		if err := Subscribe(b, r); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Seal(); err != nil {
		t.Fatal(err)
	}

	want := []string{"decide", "cleanup", "sound", "loot", "destroy", "render"}
	if got := ReceiverOrder[pingEvent](b); !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	e := CreateEntity(w)
	Send(w, pingEvent{}, e)
	if !slices.Equal(log, want) {
		t.Fatalf("delivery = %v, want %v", log, want)
	}
}

func TestSealRejectsBadGraphs(t *testing.T) {
	noop := func(*World, Entity, pingEvent) Result { return Continue }
	cases := []struct {
		name string
		regs []Receiver[pingEvent]
		want error
	}{
		{
			name: "unknown_before",
			regs: []Receiver[pingEvent]{{Name: "a", Before: []string{"ghost"}, Handle: noop}},
			want: ErrUnknownReceiver,
		},
		{
			name: "explicit_cycle",
			regs: []Receiver[pingEvent]{
				{Name: "a", Before: []string{"b"}, Handle: noop},
				{Name: "b", Before: []string{"a"}, Handle: noop},
			},
			want: ErrOrderCycle,
		},
		{
			name: "before_into_earlier_phase",
			regs: []Receiver[pingEvent]{
				{Name: "destroy", Phase: PhaseDestroy, Before: []string{"react"}, Handle: noop},
				{Name: "react", Phase: PhaseReact, Handle: noop},
			},
			want: ErrOrderCycle,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewEventBus()
			for _, r := range tc.regs {
				if err := Subscribe(b, r); err != nil {
					t.Fatal(err)
				}
			}
			if err := b.Seal(); !errors.Is(err, tc.want) {
				t.Fatalf("Seal() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSubscribeValidation(t *testing.T) {
	b := NewEventBus()
	noop := func(*World, Entity, pingEvent) Result { return Continue }
	if err := Subscribe(b, Receiver[pingEvent]{Name: "a", Handle: noop}); err != nil {
		t.Fatal(err)
	}
	if err := Subscribe(b, Receiver[pingEvent]{Name: "a", Handle: noop}); !errors.Is(err, ErrDuplicateReceiver) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	if err := Subscribe(b, Receiver[pingEvent]{Name: "nil"}); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	if err := b.Seal(); err != nil {
		t.Fatal(err)
	}
	if err := Subscribe(b, Receiver[pingEvent]{Name: "late", Handle: noop}); !errors.Is(err, ErrBusSealed) {
		t.Fatalf("expected sealed error, got %v", err)
	}
}

func TestSendFiltersStopsAndIgnoresStaleTargets(t *testing.T) {
	w := NewWorld()
	tag := component.NewComponent[struct{}]()
	var log []string

	regs := []Receiver[pingEvent]{
		{Name: "tagged", Requires: component.Set(tag), Handle: recordTo(&log, "tagged", Continue)},
		{Name: "stopper", Handle: recordTo(&log, "stopper", Stop)},
		{Name: "after", Handle: recordTo(&log, "after", Continue)},
	}
	for _, r := range regs {
		if err := Subscribe(w.Bus(), r); err != nil {
			t.Fatal(err)
		}
	}

	plain := CreateEntity(w)
	if res := Send(w, pingEvent{}, plain); res != Stop {
		t.Fatalf("expected Stop result, got %v", res)
	}
	if !slices.Equal(log, []string{"stopper"}) {
		t.Fatalf("untagged delivery = %v", log)
	}

	log = nil
	tagged := CreateEntity(w)
	_ = Add(w, tagged, tag.Kind(), &struct{}{})
	Send(w, pingEvent{}, tagged)
	if !slices.Equal(log, []string{"tagged", "stopper"}) {
		t.Fatalf("tagged delivery = %v", log)
	}

	log = nil
	DestroyEntity(w, tagged)
	if res := Send(w, pingEvent{}, tagged); res != Continue || len(log) != 0 {
		t.Fatalf("stale target should receive nothing, got %v / %v", res, log)
	}
}

func TestSendStopsWhenReceiverDestroysTarget(t *testing.T) {
	w := NewWorld()
	calls := 0
	_ = Subscribe(w.Bus(), Receiver[pingEvent]{Name: "killer", Handle: func(w *World, e Entity, _ pingEvent) Result {
		calls++
		DestroyEntity(w, e)
		return Continue
	}})
	_ = Subscribe(w.Bus(), Receiver[pingEvent]{Name: "late", Handle: func(*World, Entity, pingEvent) Result {
		calls++
		return Continue
	}})
	Send(w, pingEvent{}, CreateEntity(w))
	if calls != 1 {
		t.Fatalf("receivers after destruction must not run, got %d calls", calls)
	}
}

func TestBroadcastReachesFilteredSnapshot(t *testing.T) {
	w := NewWorld()
	tag := component.NewComponent[struct{}]()
	got := 0
	_ = Subscribe(w.Bus(), Receiver[pingEvent]{Name: "count", Handle: func(w *World, e Entity, ev pingEvent) Result {
		got += ev.n
		return Continue
	}})

	for i := 0; i < 3; i++ {
		e := CreateEntity(w)
		_ = Add(w, e, tag.Kind(), &struct{}{})
	}
	CreateEntity(w)

	if n := Broadcast(w, pingEvent{n: 2}, tag); n != 3 {
		t.Fatalf("expected 3 deliveries, got %d", n)
	}
	if got != 6 {
		t.Fatalf("expected payload sum 6, got %d", got)
	}
}
