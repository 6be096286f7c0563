package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// collisionTypeObject is given to every shape so one handler sees all pairs.
const collisionTypeObject cp.CollisionType = 1

// Space wraps a cp space and feeds its contact callbacks to a listener.
type Space struct {
	space    *cp.Space
	listener ContactListener
	// impulses is reused across post-solve callbacks
	impulses [1]float64
}

func NewSpace(iterations int, damping float64) *Space {
	s := &Space{space: cp.NewSpace()}
	if iterations > 0 {
		s.space.Iterations = uint(iterations)
	}
	s.space.SetDamping(damping)
	s.installHandler()
	return s
}

func (s *Space) SetListener(l ContactListener) {
	s.listener = l
}

// Raw exposes the cp space for debug drawing.
func (s *Space) Raw() *cp.Space {
	return s.space
}

func (s *Space) installHandler() {
	handler := s.space.NewCollisionHandler(collisionTypeObject, collisionTypeObject)
	handler.UserData = s
	handler.BeginFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		sp, ok := userData.(*Space)
		if !ok || sp.listener == nil {
			return true
		}
		a, b := arb.Bodies()
		sp.listener.BeginContact(ObjectFromUserData(a.UserData), ObjectFromUserData(b.UserData))
		return true
	}
	handler.PostSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) {
		sp, ok := userData.(*Space)
		if !ok || sp.listener == nil {
			return
		}
		a, b := arb.Bodies()
		var point cp.Vector
		if set := arb.ContactPointSet(); set.Count > 0 {
			point = set.Points[0].PointA
		}
		// cp keeps per-point impulses private. The single entry is the
		// arbiter's summed impulse projected on the normal, so friction
		// never counts.
		sp.impulses[0] = NormalImpulse(arb.TotalImpulse(), arb.Normal())
		sp.listener.PostSolve(ObjectFromUserData(a.UserData), ObjectFromUserData(b.UserData), point, sp.impulses[:])
	}
}

// NormalImpulse is the magnitude of total along normal.
func NormalImpulse(total, normal cp.Vector) float64 {
	return math.Abs(total.Dot(normal))
}

// Add links body to obj and inserts it with its shape. It must not be called
// during Step.
func (s *Space) Add(obj Object, body *cp.Body, shape *cp.Shape) {
	if body == nil {
		return
	}
	body.UserData = obj
	if body != s.space.StaticBody {
		s.space.AddBody(body)
	}
	if shape != nil {
		shape.SetCollisionType(collisionTypeObject)
		s.space.AddShape(shape)
	}
}

// Remove takes body and shape out of the space. Unknown ones are ignored.
func (s *Space) Remove(body *cp.Body, shape *cp.Shape) {
	if shape != nil && s.space.ContainsShape(shape) {
		s.space.RemoveShape(shape)
	}
	if body != nil && s.space.ContainsBody(body) {
		s.space.RemoveBody(body)
		body.UserData = nil
	}
}

func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

// AddBounds walls off a square arena of the given half extent. Walls carry
// no user data.
func (s *Space) AddBounds(half float64) {
	corners := []cp.Vector{
		{X: -half, Y: -half}, {X: half, Y: -half},
		{X: half, Y: half}, {X: -half, Y: half},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		wall := cp.NewSegment(s.space.StaticBody, a, b, 0.5)
		wall.SetElasticity(0.8)
		wall.SetFriction(0.5)
		wall.SetCollisionType(collisionTypeObject)
		s.space.AddShape(wall)
	}
}

// NewCircleBody builds a dynamic circle. A non-positive mass yields a static
// body.
func NewCircleBody(mass, radius float64, pos cp.Vector) (*cp.Body, *cp.Shape) {
	var body *cp.Body
	if mass <= 0 {
		body = cp.NewStaticBody()
	} else {
		body = cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	}
	body.SetPosition(pos)
	shape := cp.NewCircle(body, radius, cp.Vector{})
	return body, shape
}
