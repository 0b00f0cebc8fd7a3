package collision

import (
	"math"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/solarlune/resolv"
)

// broadPhase mirrors every tile owning formulas as a resolv object tagged
// with its collision group, one space cell per tile.
type broadPhase struct {
	space         *resolv.Space
	width, height int
	objects       map[[2]int]*resolv.Object
}

func newBroadPhase(m *tilemap.MapTile) *broadPhase {
	return &broadPhase{
		space:   resolv.NewSpace(m.Width(), m.Height(), m.TileWidth, m.TileHeight),
		width:   m.Width(),
		height:  m.Height(),
		objects: make(map[[2]int]*resolv.Object),
	}
}

func (b *broadPhase) matches(m *tilemap.MapTile) bool {
	return b.width == m.Width() && b.height == m.Height()
}

// set replaces the object of a tile position. An empty group only removes.
func (b *broadPhase) set(m *tilemap.MapTile, t *tilemap.Tile, group string) {
	key := [2]int{t.X, t.Y}
	if old, ok := b.objects[key]; ok {
		b.space.Remove(old)
		delete(b.objects, key)
	}
	if group == "" {
		return
	}
	obj := resolv.NewObject(
		float64(t.X*m.TileWidth), float64(t.Y*m.TileHeight),
		float64(m.TileWidth), float64(m.TileHeight),
		group,
	)
	obj.Data = t
	b.space.Add(obj)
	b.objects[key] = obj
}

// touches reports whether the box spanned by the sweep overlaps any tile of
// the given collision groups. No groups means any.
func (b *broadPhase) touches(x0, y0, x1, y1 float64, groups []string) bool {
	minX, minY := math.Min(x0, x1), math.Min(y0, y1)
	probe := resolv.NewObject(minX, minY, math.Abs(x1-x0)+1, math.Abs(y1-y0)+1)
	b.space.Add(probe)
	defer b.space.Remove(probe)
	return probe.Check(0, 0, groups...) != nil
}

func (b *broadPhase) size() int {
	return len(b.objects)
}
