package systems

import (
	"math"

	"github.com/automoto/tileforge/components"
	cfg "github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var movers = donburi.NewQuery(filter.Contains(
	components.Object,
	components.Transform,
	components.Physics,
))

// UpdatePhysics stores the current position as the sweep origin, then
// applies gravity and moves every box by its speed.
func UpdatePhysics(world donburi.World) {
	movers.Each(world, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)
		transform := components.Transform.Get(e)

		transform.OldX, transform.OldY = obj.X, obj.Y

		physics.SpeedY = math.Min(physics.SpeedY+physics.Gravity, cfg.Physics.MaxFallSpeed)
		if physics.MaxSpeed > 0 {
			physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, physics.MaxSpeed)
			physics.SpeedY = gamemath.ClampSpeed(physics.SpeedY, physics.MaxSpeed)
		}

		obj.X += physics.SpeedX
		obj.Y += physics.SpeedY
	})
}
