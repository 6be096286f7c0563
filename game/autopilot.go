package game

import (
	"math"

	"github.com/milk9111/spacecombat/ecs/system"
)

// Autopilot flies a slow spiral and fires on a fixed rhythm. The headless
// runner uses it so fights happen without a keyboard.
type Autopilot struct {
	FireEvery int
	BeamEvery int

	tick int
}

func (a *Autopilot) Controls() system.Controls {
	a.tick++
	c := system.Controls{
		Thrust: 0.5,
		Turn:   math.Sin(float64(a.tick) / 90),
	}
	if a.FireEvery > 0 && a.tick%a.FireEvery == 0 {
		c.Fire = true
	}
	if a.BeamEvery > 0 && a.tick%a.BeamEvery == 0 {
		c.Beam = true
	}
	return c
}
