package components

import (
	"github.com/automoto/tileforge/collision"
	"github.com/yohamta/donburi"
)

// TileCollidableData lists the probes of an entity. Results holds the last
// hit of each category by name, nil when nothing was crossed.
type TileCollidableData struct {
	Categories []*collision.Category
	Results    map[string]*collision.Result
}

var TileCollidable = donburi.NewComponentType[TileCollidableData]()
