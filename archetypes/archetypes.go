package archetypes

import (
	"github.com/automoto/tileforge/components"
	"github.com/automoto/tileforge/tags"
	"github.com/yohamta/donburi"
)

var (
	Collidable = newArchetype(
		tags.Collidable,
		components.Object,
		components.Transform,
		components.Physics,
		components.TileCollidable,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	e := world.Entry(world.Create(
		append(a.components, cs...)...,
	))
	return e
}
