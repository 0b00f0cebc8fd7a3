package main

import (
	"fmt"
	"log"

	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/components"
	"github.com/automoto/tileforge/systems"
	"github.com/automoto/tileforge/systems/factory"
	"github.com/yohamta/donburi"
)

// runSimulate drops a box one tile wide on the map and reports where it
// rests.
func runSimulate(o options) error {
	set := loadSet(o)
	m, err := loadOrGenerate(o, set)
	if err != nil {
		return err
	}
	model, err := set.CollisionModel(m)
	if err != nil {
		return err
	}

	categories := set.Categories
	if o.category != "" {
		c, ok := set.Category(o.category)
		if !ok {
			return fmt.Errorf("unknown category %q", o.category)
		}
		categories = []*collision.Category{c}
	}

	world := donburi.NewWorld()
	factory.CreateLevel(world, m, model)
	box := factory.CreateCollidable(world, o.dropX, 0, float64(m.TileWidth), float64(m.TileHeight), categories...)
	for i := 0; i < o.frames; i++ {
		systems.Update(world)
	}

	obj := components.Object.Get(box)
	physics := components.Physics.Get(box)
	log.Printf("Box at %.2f,%.2f after %d frames (on ground: %v)", obj.X, obj.Y, o.frames, physics.OnGround)
	for name, res := range components.TileCollidable.Get(box).Results {
		if res != nil {
			log.Printf("  %s: tile %d,%d formula %s", name, res.Tile.X, res.Tile.Y, res.Formula.Name)
		}
	}
	return nil
}
