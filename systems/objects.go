package systems

import (
	"github.com/automoto/tileforge/components"
	"github.com/yohamta/donburi"
)

// UpdateObjects moves every box to its new cells of the space.
func UpdateObjects(world donburi.World) {
	components.Object.Each(world, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		obj.Update()
	})
}
