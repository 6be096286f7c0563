package component

// Size is the entity's characteristic diameter in world units.
type Size struct {
	Size float64
}

var SizeComponent = NewComponent[Size]()
