package factory

import (
	"github.com/automoto/tileforge/archetypes"
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/components"
	cfg "github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// CreateCollidable spawns a falling box probing tiles with the given
// categories.
func CreateCollidable(world donburi.World, x, y, w, h float64, categories ...*collision.Category) *donburi.Entry {
	e := archetypes.Collidable.Spawn(world)

	obj := resolv.NewObject(x, y, w, h, tags.ResolvBody)
	obj.Data = e // Link for O(1) lookup
	components.Object.SetValue(e, components.ObjectData{Object: obj})

	components.Transform.SetValue(e, components.TransformData{OldX: x, OldY: y})
	components.Physics.SetValue(e, components.PhysicsData{
		Gravity:  cfg.Physics.Gravity,
		MaxSpeed: cfg.Physics.MaxSpeed,
	})
	components.TileCollidable.SetValue(e, components.TileCollidableData{
		Categories: categories,
		Results:    make(map[string]*collision.Result, len(categories)),
	})

	if spaceEntry, ok := components.Space.First(world); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}

	return e
}
