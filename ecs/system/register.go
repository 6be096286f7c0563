package system

import (
	"fmt"

	"github.com/milk9111/spacecombat/ecs"
)

// Registrar is a system that owns event receivers.
type Registrar interface {
	Register(bus *ecs.EventBus) error
}

// RegisterAll subscribes every registrar and seals the bus, so ordering
// mistakes surface at startup rather than on the first event.
func RegisterAll(bus *ecs.EventBus, rs ...Registrar) error {
	for _, r := range rs {
		if r == nil {
			continue
		}
		if err := r.Register(bus); err != nil {
			return fmt.Errorf("system: register %T: %w", r, err)
		}
	}
	if err := bus.Seal(); err != nil {
		return fmt.Errorf("system: seal bus: %w", err)
	}
	return nil
}
