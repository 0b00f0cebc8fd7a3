package factory

import (
	"github.com/automoto/tileforge/archetypes"
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/components"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/yohamta/donburi"
)

// CreateLevel registers the map entities collide with, and a space of the
// same size for their boxes.
func CreateLevel(world donburi.World, m *tilemap.MapTile, collisions *collision.Model) *donburi.Entry {
	level := archetypes.Level.Spawn(world)
	components.Level.Set(level, &components.LevelData{
		Map:        m,
		Collisions: collisions,
	})

	if _, ok := components.Space.First(world); !ok {
		CreateSpace(world, m.Width(), m.Height(), m.TileWidth, m.TileHeight)
	}
	return level
}
