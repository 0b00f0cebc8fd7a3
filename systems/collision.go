package systems

import (
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/components"
	"github.com/automoto/tileforge/tags"
	"github.com/yohamta/donburi"
)

// sweep is the movement of a box since UpdatePhysics.
type sweep struct {
	transform *components.TransformData
	obj       components.ObjectData
}

func (s sweep) OldPosition() (float64, float64) { return s.transform.OldX, s.transform.OldY }
func (s sweep) Position() (float64, float64)    { return s.obj.X, s.obj.Y }

// UpdateTileCollisions probes the level tiles with every category of every
// collidable entity, in category order, and snaps the box onto the surface
// hit.
func UpdateTileCollisions(world donburi.World) {
	levelEntry, ok := components.Level.First(world)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry)
	if level.Collisions == nil {
		return
	}

	tags.Collidable.Each(world, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)
		transform := components.Transform.Get(e)
		collidable := components.TileCollidable.Get(e)

		physics.OnGround = false
		physics.OnWall = false
		if collidable.Results == nil {
			collidable.Results = make(map[string]*collision.Result, len(collidable.Categories))
		}

		for _, category := range collidable.Categories {
			res := level.Collisions.ComputeCollision(sweep{transform: transform, obj: *obj}, category)
			collidable.Results[category.Name] = res
			if res == nil {
				continue
			}
			snapToSurface(physics, obj, transform, category, res)
		}
	})
}

func snapToSurface(physics *components.PhysicsData, obj *components.ObjectData, transform *components.TransformData, category *collision.Category, res *collision.Result) {
	switch category.Axis {
	case collision.AxisY:
		if obj.Y >= transform.OldY {
			physics.OnGround = true
		}
		obj.Y = res.Y - float64(category.OffsetY)
		physics.SpeedY = 0
	case collision.AxisX:
		obj.X = res.X - float64(category.OffsetX)
		physics.SpeedX = 0
		physics.OnWall = true
	}
}
