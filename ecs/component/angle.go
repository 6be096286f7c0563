package component

// Angle is the entity orientation in degrees.
type Angle struct {
	Degrees float64
	// Spin is in degrees per second.
	Spin float64
}

var AngleComponent = NewComponent[Angle]()
