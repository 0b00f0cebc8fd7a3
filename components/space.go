package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Space holds the boxes of every entity, sized to the level.
var Space = donburi.NewComponentType[resolv.Space]()
