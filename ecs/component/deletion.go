package component

// DeletionMarker tags an entity as safe to remove on the next tick. The
// deletion pipeline fires its pre-removal event to every marked entity at the
// following tick boundary, so native resources can be released before the
// entity handle goes stale. Only the pipeline reads it.
type DeletionMarker struct{}

var DeletionMarkerComponent = NewComponent[DeletionMarker]()
