package component

// Invulnerable ignores damage while Frames > 0. The damage system counts it
// down and removes it at zero; Frames == 0 on insert means until removed.
type Invulnerable struct {
	Frames int
}

var InvulnerableComponent = NewComponent[Invulnerable]()
