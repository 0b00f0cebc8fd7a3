package components

import (
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	Map        *tilemap.MapTile
	Collisions *collision.Model
}

var Level = donburi.NewComponentType[LevelData]()
