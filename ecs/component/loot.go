package component

import "github.com/milk9111/spacecombat/item"

// DropsLootOnDeath scatters money items when the entity is destroyed. The
// amount depends on Size only.
type DropsLootOnDeath struct{}

var DropsLootOnDeathComponent = NewComponent[DropsLootOnDeath]()

// Loot is a collectible item drifting in space.
type Loot struct {
	Item item.Item
}

var LootComponent = NewComponent[Loot]()
