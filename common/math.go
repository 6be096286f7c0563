package common

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func LerpVector(a, b cp.Vector, t float64) cp.Vector {
	return cp.Vector{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

func Radians(deg float64) float64 { return deg * math.Pi / 180 }

func Degrees(rad float64) float64 { return rad * 180 / math.Pi }

// FromAngle returns a vector of the given length pointing deg degrees
// counter-clockwise from +X.
func FromAngle(deg, length float64) cp.Vector {
	r := Radians(deg)
	return cp.Vector{X: math.Cos(r) * length, Y: math.Sin(r) * length}
}

// Rotate turns v by deg degrees counter-clockwise.
func Rotate(v cp.Vector, deg float64) cp.Vector {
	s, c := math.Sincos(Radians(deg))
	return cp.Vector{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// RandomFloat draws uniformly from [lo, hi).
func RandomFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
