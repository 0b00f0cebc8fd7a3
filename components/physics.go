package components

import (
	"github.com/yohamta/donburi"
)

type PhysicsData struct {
	SpeedX   float64
	SpeedY   float64
	Gravity  float64
	MaxSpeed float64
	OnGround bool
	OnWall   bool
}

var Physics = donburi.NewComponentType[PhysicsData]()
