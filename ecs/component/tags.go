package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// AsteroidTag marks destructible rocks; they carry no behavior of their own.
type AsteroidTag struct{}

var AsteroidTagComponent = NewComponent[AsteroidTag]()
