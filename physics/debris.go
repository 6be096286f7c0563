package physics

import "github.com/jakecoffman/cp"

// Debris is a drifting wreck fragment. It wears down from impacts and
// projectile hits and leaves the space when its integrity is gone.
type Debris struct {
	Name      string
	Integrity float64

	body  *cp.Body
	shape *cp.Shape
	hits  int
}

func NewDebris(name string, integrity, mass, radius float64, pos, vel cp.Vector) *Debris {
	d := &Debris{Name: name, Integrity: integrity}
	d.body, d.shape = NewCircleBody(mass, radius, pos)
	d.body.SetVelocityVector(vel)
	return d
}

func (d *Debris) HandleContact(_ Context, _ Object, impulse float64, _ cp.Vector) {
	d.hits++
	d.Integrity -= impulse
}

func (d *Debris) TakeDamage(amount int) {
	d.Integrity -= float64(amount)
}

func (d *Debris) Hits() int { return d.hits }

func (d *Debris) Update(Context, float64) bool {
	return d.Integrity > 0
}

func (d *Debris) Body() *cp.Body   { return d.body }
func (d *Debris) Shape() *cp.Shape { return d.shape }
