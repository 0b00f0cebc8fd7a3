package collision

import "github.com/automoto/tileforge/shared/tilemap"

// Transformable is anything that moved since the last frame.
type Transformable interface {
	OldPosition() (x, y float64)
	Position() (x, y float64)
}

// Movement is a plain Transformable.
type Movement struct {
	OldX, OldY float64
	X, Y       float64
}

func (m Movement) OldPosition() (float64, float64) { return m.OldX, m.OldY }
func (m Movement) Position() (float64, float64)    { return m.X, m.Y }

// Result is the first surface crossed by a sweep. X and Y are the probe
// position on the surface, category offset included.
type Result struct {
	X, Y    float64
	Axis    Axis
	Tile    *tilemap.Tile
	Formula *Formula
}
