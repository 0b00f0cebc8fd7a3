package tags

import "github.com/yohamta/donburi"

var (
	Collidable = donburi.NewTag().SetName("Collidable")
)

// Resolv tags
const (
	ResolvBody = "body"
)
