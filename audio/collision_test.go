package audio

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/physics"
)

func TestVolume(t *testing.T) {
	cases := []struct {
		name    string
		impulse float64
		want    float64
	}{
		{"graze", 0.01, 0},
		{"floor", minImpulse, 0},
		{"full", fullImpulse, 1},
		{"beyond", 40, 1},
		{"half", (minImpulse + fullImpulse) / 2, 0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Volume(c.impulse); got < c.want-1e-9 || got > c.want+1e-9 {
				t.Fatalf("Volume(%v) = %v, want %v", c.impulse, got, c.want)
			}
		})
	}
}

func TestThrottlePerKind(t *testing.T) {
	s := NewCollisionSounds(nil)
	now := time.Unix(100, 0)
	s.now = func() time.Time { return now }

	if !s.allow(physics.KindOther) {
		t.Fatalf("first sound should play")
	}
	if s.allow(physics.KindOther) {
		t.Fatalf("repeat inside the interval should be dropped")
	}
	if !s.allow(physics.KindProjectile) {
		t.Fatalf("other kinds are throttled separately")
	}
	now = now.Add(minInterval)
	if !s.allow(physics.KindOther) {
		t.Fatalf("sound should play again after the interval")
	}
}

func TestSilentCollisionsNeverOpenContext(t *testing.T) {
	s := NewCollisionSounds(nil)
	s.PlayCollision(physics.ObjectFromUserData(nil), 10)
	s.PlayCollision(physics.OtherObject(physics.NewDebris("rock", 1, 1, 0.5, cp.Vector{}, cp.Vector{})), 0)
	s.SetMuted(true)
	s.PlayCollision(physics.OtherObject(physics.NewDebris("rock", 1, 1, 0.5, cp.Vector{}, cp.Vector{})), 10)
	if s.ctx != nil {
		t.Fatalf("audio context should stay closed")
	}

	var nilSounds *CollisionSounds
	nilSounds.PlayCollision(physics.ObjectFromUserData(nil), 1)
}
