package systems

import "github.com/yohamta/donburi"

// Update runs one frame of the entity side: movement, tile collisions,
// then space bookkeeping.
func Update(world donburi.World) {
	UpdatePhysics(world)
	UpdateTileCollisions(world)
	UpdateObjects(world)
}
