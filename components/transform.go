package components

import "github.com/yohamta/donburi"

// TransformData keeps the position of the previous frame so tile
// collisions can sweep from it.
type TransformData struct {
	OldX, OldY float64
}

var Transform = donburi.NewComponentType[TransformData]()
