package ecs

// Commands stages structural changes requested mid-tick. The queue is drained
// by World.EndTick in FIFO order; commands queued while draining (a spawn
// builder that spawns again) are applied in the same drain.
type Commands struct {
	pending []command
}

type command struct {
	spawn   func(w *World, e Entity)
	do      func(w *World)
	destroy Entity
}

// Spawn queues the creation of an entity. build receives the new entity once
// it exists and adds its components.
func (c *Commands) Spawn(build func(w *World, e Entity)) {
	if c == nil || build == nil {
		return
	}
	c.pending = append(c.pending, command{spawn: build})
}

// Destroy queues the removal of e. Queuing the same entity twice, or an
// entity that is gone by the time the queue drains, is harmless.
func (c *Commands) Destroy(e Entity) {
	if c == nil || !e.Valid() {
		return
	}
	c.pending = append(c.pending, command{destroy: e})
}

// Do queues fn to run at the tick boundary alongside the entity commands.
// Collaborators that keep their own staged state, like the physics object
// manager, drain through it.
func (c *Commands) Do(fn func(w *World)) {
	if c == nil || fn == nil {
		return
	}
	c.pending = append(c.pending, command{do: fn})
}

// Len reports how many commands are waiting.
func (c *Commands) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pending)
}

func (c *Commands) flush(w *World) int {
	applied := 0
	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		for _, cmd := range batch {
			if cmd.spawn != nil {
				e := CreateEntity(w)
				cmd.spawn(w, e)
				applied++
				continue
			}
			if cmd.do != nil {
				cmd.do(w)
				applied++
				continue
			}
			if DestroyEntity(w, cmd.destroy) {
				applied++
			}
		}
	}
	return applied
}
