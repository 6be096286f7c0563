package physics

import "github.com/jakecoffman/cp"

// Simulated is a non-entity object owned by the ObjectManager.
type Simulated interface {
	Collider
	// Update advances one tick. Returning false removes the object.
	Update(ctx Context, dt float64) bool
	Body() *cp.Body
	Shape() *cp.Shape
}

// ObjectManager holds projectiles and debris. Adds and removes are staged and
// only touch the cp space in Flush, which runs at the tick boundary.
type ObjectManager struct {
	space   *Space
	live    []Simulated
	index   map[Simulated]int
	adds    []Simulated
	removes []Simulated
}

func NewObjectManager(space *Space) *ObjectManager {
	return &ObjectManager{space: space, index: make(map[Simulated]int)}
}

func (m *ObjectManager) AddDelayed(o Simulated) {
	if o == nil {
		return
	}
	m.adds = append(m.adds, o)
}

func (m *ObjectManager) RemoveDelayed(o Simulated) {
	if o == nil {
		return
	}
	m.removes = append(m.removes, o)
}

// Update ticks every live object and stages the expired ones for removal.
func (m *ObjectManager) Update(ctx Context, dt float64) {
	ctx.Objects = m
	for _, o := range m.live {
		if !o.Update(ctx, dt) {
			m.RemoveDelayed(o)
		}
	}
}

// Flush applies staged changes and reports how many objects were added and
// removed. Removing an object that is not live is a no-op.
func (m *ObjectManager) Flush() (added, removed int) {
	for _, o := range m.adds {
		if _, ok := m.index[o]; ok {
			continue
		}
		m.index[o] = len(m.live)
		m.live = append(m.live, o)
		if m.space != nil {
			m.space.Add(objectFor(o), o.Body(), o.Shape())
		}
		added++
	}
	m.adds = m.adds[:0]

	for _, o := range m.removes {
		i, ok := m.index[o]
		if !ok {
			continue
		}
		last := len(m.live) - 1
		m.live[i] = m.live[last]
		m.index[m.live[i]] = i
		m.live = m.live[:last]
		delete(m.index, o)
		if m.space != nil {
			m.space.Remove(o.Body(), o.Shape())
		}
		removed++
	}
	m.removes = m.removes[:0]
	return added, removed
}

// Live returns a snapshot of the live objects.
func (m *ObjectManager) Live() []Simulated {
	out := make([]Simulated, len(m.live))
	copy(out, m.live)
	return out
}

func (m *ObjectManager) Len() int { return len(m.live) }

// Pending reports staged adds and removes.
func (m *ObjectManager) Pending() int { return len(m.adds) + len(m.removes) }

func objectFor(o Simulated) Object {
	if p, ok := o.(*Projectile); ok {
		return ProjectileObject(p)
	}
	return OtherObject(o)
}
