package game

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/spacecombat/physics"
)

const maxRecordedContacts = 64

// ContactTap forwards contacts to the translator and optionally keeps the
// points of the current tick for the debug overlay.
type ContactTap struct {
	next   physics.ContactListener
	record bool
	points []cp.Vector
	total  int
}

func NewContactTap(next physics.ContactListener, record bool) *ContactTap {
	return &ContactTap{next: next, record: record}
}

func (c *ContactTap) BeginContact(a, b physics.Object) {
	c.next.BeginContact(a, b)
}

func (c *ContactTap) PostSolve(a, b physics.Object, point cp.Vector, impulses []float64) {
	c.total++
	if c.record && len(c.points) < maxRecordedContacts {
		c.points = append(c.points, point)
	}
	c.next.PostSolve(a, b, point, impulses)
}

// Points are the contact points of the last step.
func (c *ContactTap) Points() []cp.Vector { return c.points }

// Total counts solved contacts since the simulation started.
func (c *ContactTap) Total() int { return c.total }

func (c *ContactTap) SetRecording(on bool) {
	c.record = on
	if !on {
		c.points = nil
	}
}

func (c *ContactTap) Reset() {
	c.points = c.points[:0]
}
