// Package tilemap holds the tile grid shared by collision, transition and
// generation code. It has no dependencies on donburi or resolv, pure data only.
package tilemap

import (
	"fmt"
	"sort"
)

// TileRef identifies a tile image: a sheet id and the tile index inside it.
type TileRef struct {
	Sheet  int
	Number int
}

func (r TileRef) String() string {
	return fmt.Sprintf("%d:%d", r.Sheet, r.Number)
}

// Less orders refs by sheet then number.
func (r TileRef) Less(o TileRef) bool {
	if r.Sheet != o.Sheet {
		return r.Sheet < o.Sheet
	}
	return r.Number < o.Number
}

// SortRefs sorts refs in place and returns them.
func SortRefs(refs []TileRef) []TileRef {
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}

// Tile is one placed cell of a MapTile.
type Tile struct {
	Ref TileRef
	X   int // column, in tiles
	Y   int // row, in tiles

	// Group is the logical terrain group of the cell. Transition art keeps
	// the group it belongs to, not the art group.
	Group string
}

// Sheet describes a tile sheet image.
type Sheet struct {
	ID         int
	Image      string
	TileWidth  int
	TileHeight int
}

// TileArea is a rectangle in tile units.
type TileArea struct {
	X, Y int
	W, H int
}

// NewTileArea validates and returns an area.
func NewTileArea(x, y, w, h int) (TileArea, error) {
	a := TileArea{X: x, Y: y, W: w, H: h}
	if err := a.Validate(); err != nil {
		return TileArea{}, err
	}
	return a, nil
}

// Validate reports an invalid origin or size.
func (a TileArea) Validate() error {
	if a.X < 0 || a.Y < 0 {
		return fmt.Errorf("area origin %d,%d: %w", a.X, a.Y, ErrInvalidArea)
	}
	if a.W <= 0 || a.H <= 0 {
		return fmt.Errorf("area size %dx%d: %w", a.W, a.H, ErrInvalidArea)
	}
	return nil
}

// Contains reports whether the tile position is inside the area.
func (a TileArea) Contains(tx, ty int) bool {
	return tx >= a.X && ty >= a.Y && tx < a.X+a.W && ty < a.Y+a.H
}

// Clip returns the part of the area inside a width x height map.
// The second result is false when nothing is left.
func (a TileArea) Clip(width, height int) (TileArea, bool) {
	x0, y0 := max(a.X, 0), max(a.Y, 0)
	x1, y1 := min(a.X+a.W, width), min(a.Y+a.H, height)
	if x1 <= x0 || y1 <= y0 {
		return TileArea{}, false
	}
	return TileArea{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}
