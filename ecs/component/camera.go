package component

// Camera follows the player ship. The camera entity's Position is the world
// point drawn at the screen center.
type Camera struct {
	Zoom float64
	// Smoothness in (0,1]: fraction of the remaining distance closed per tick.
	Smoothness float64
	// PixelsPerUnit converts world units to screen pixels before zoom.
	PixelsPerUnit float64
}

var CameraComponent = NewComponent[Camera]()
