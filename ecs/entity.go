package ecs

import "strconv"

// Entity packs a slot id in the low 32 bits and the slot generation in the
// high 32 bits. A destroyed entity keeps its value but no longer matches the
// slot generation, so stale handles never resolve to a reused slot.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e.id()), 10) + "v" + strconv.FormatUint(uint64(e.generation()), 10)
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// entityPool hands out slot ids and bumps generations on destroy.
type entityPool struct {
	gens  []generation
	alive []bool
	free  []entityID
	count int
}

func (p *entityPool) create() Entity {
	var id entityID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.gens = append(p.gens, 0)
		p.alive = append(p.alive, false)
		id = entityID(len(p.gens))
	}
	p.alive[id-1] = true
	p.count++
	return makeEntity(id, p.gens[id-1])
}

func (p *entityPool) destroy(e Entity) bool {
	if !p.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	p.gens[idx]++
	p.alive[idx] = false
	p.free = append(p.free, e.id())
	p.count--
	return true
}

func (p *entityPool) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(p.gens) {
		return false
	}
	return p.alive[id-1] && p.gens[id-1] == e.generation()
}

func (p *entityPool) current(id entityID) (Entity, bool) {
	if id == 0 || int(id) > len(p.gens) || !p.alive[id-1] {
		return 0, false
	}
	return makeEntity(id, p.gens[id-1]), true
}
