package collision

import (
	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/gamemath"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
)

// Computer sweeps a category probe from an entity's old position to its
// current one and returns the first tile surface crossed.
type Computer struct {
	mapTile *tilemap.MapTile
	groups  *tilegroup.Model
	loader  *Loader
	broad   *broadPhase

	// group and loader revisions the broad phase was built at
	groupRev, loaderRev uint64
}

func NewComputer(m *tilemap.MapTile, groups *tilegroup.Model, loader *Loader) *Computer {
	c := &Computer{mapTile: m, groups: groups, loader: loader}
	m.AddListener(c.onTileSet)
	return c
}

// Rebuild mirrors the current map into the broad phase.
func (c *Computer) Rebuild() {
	if !c.mapTile.IsCreated() {
		c.broad = nil
		return
	}
	c.broad = newBroadPhase(c.mapTile)
	c.groupRev, c.loaderRev = c.groups.Revision(), c.loader.Revision()
	c.mapTile.Each(func(t *tilemap.Tile) {
		c.broad.set(c.mapTile, t, c.solidGroup(t))
	})
}

func (c *Computer) onTileSet(t *tilemap.Tile) {
	if c.stale() {
		return
	}
	c.broad.set(c.mapTile, t, c.solidGroup(t))
}

// stale reports a broad phase missing, sized for another map, or built
// before the last group or collision change.
func (c *Computer) stale() bool {
	return c.broad == nil || !c.broad.matches(c.mapTile) ||
		c.groupRev != c.groups.Revision() || c.loaderRev != c.loader.Revision()
}

// solidGroup returns the collision group of a tile, empty when it owns no
// formula.
func (c *Computer) solidGroup(t *tilemap.Tile) string {
	name := c.groups.Group(t.Ref)
	if len(c.loader.Group(name).Formulas) == 0 {
		return ""
	}
	return name
}

// Compute returns nil when the probe crossed nothing.
func (c *Computer) Compute(t Transformable, category *Category) *Result {
	if !c.mapTile.IsCreated() {
		return nil
	}
	if c.stale() {
		c.Rebuild()
	}

	ox, oy := t.OldPosition()
	x, y := t.Position()
	ox += float64(category.OffsetX)
	oy += float64(category.OffsetY)
	x += float64(category.OffsetX)
	y += float64(category.OffsetY)
	dx, dy := x-ox, y-oy
	if dx == 0 && dy == 0 {
		return nil
	}
	if !c.broad.touches(ox, oy, x, y, category.Groups) {
		return nil
	}

	steps := gamemath.SweepSteps(dx, dy, c.mapTile.TileWidth, c.mapTile.TileHeight, config.Collision.MaxSweepSteps)
	sx, sy := dx/float64(steps), dy/float64(steps)
	px, py := ox, oy
	for i := 0; i < steps; i++ {
		nx, ny := px+sx, py+sy
		if i == steps-1 {
			nx, ny = x, y
		}
		if res := c.computeStep(category, px, py, nx, ny); res != nil {
			return res
		}
		px, py = nx, ny
	}
	return nil
}

// computeStep tests one segment no longer than a tile. The earliest crossing
// wins; on equal crossings the earlier tile, then the earlier formula.
func (c *Computer) computeStep(category *Category, px, py, nx, ny float64) *Result {
	var best *Result
	bestT := 2.0
	for _, tile := range c.stepTiles(px, py, nx, ny) {
		name := c.groups.Group(tile.Ref)
		if !category.Accepts(name) {
			continue
		}
		for _, f := range c.loader.Group(name).Formulas {
			if f.Range.Output != category.Axis || !c.constraintsHold(tile, f) {
				continue
			}
			t, res := c.cross(tile, f, category, px, py, nx, ny)
			if res != nil && t < bestT {
				best, bestT = res, t
			}
		}
	}
	return best
}

// stepTiles returns the start tile, the two corner tiles and the end tile of
// a segment, without duplicates.
func (c *Computer) stepTiles(px, py, nx, ny float64) []*tilemap.Tile {
	tiles := make([]*tilemap.Tile, 0, 4)
	add := func(x, y float64) {
		t := c.mapTile.TileAt(x, y)
		if t == nil {
			return
		}
		for _, seen := range tiles {
			if seen == t {
				return
			}
		}
		tiles = append(tiles, t)
	}
	add(px, py)
	add(px, ny)
	add(nx, py)
	add(nx, ny)
	return tiles
}

// constraintsHold checks the formula constraint against the groups of the
// tile's neighbours.
func (c *Computer) constraintsHold(t *tilemap.Tile, f *Formula) bool {
	if f.Constraint.IsEmpty() {
		return true
	}
	for _, o := range tilemap.Orientations {
		if !f.Constraint.Check(o, c.groups.TileGroupOf(c.mapTile.Neighbor(t, o))) {
			return false
		}
	}
	return true
}

// Accepts reports whether art ref placed at the position of tile at would
// keep every formula constraint of its collision group.
func (c *Computer) Accepts(ref tilemap.TileRef, at *tilemap.Tile) bool {
	for _, f := range c.loader.Group(c.groups.Group(ref)).Formulas {
		if !c.constraintsHold(at, f) {
			return false
		}
	}
	return true
}

// cross tests the segment against one formula of one tile. It returns the
// crossing parameter along the segment and the result, nil when the surface
// is not crossed.
func (c *Computer) cross(tile *tilemap.Tile, f *Formula, category *Category, px, py, nx, ny float64) (float64, *Result) {
	tx := float64(tile.X * c.mapTile.TileWidth)
	ty := float64(tile.Y * c.mapTile.TileHeight)

	// in: the axis the formula reads, out: the axis it computes
	in0, in1, out0, out1 := px, nx, py, ny
	inOrigin, outOrigin := tx, ty
	if f.Range.Output == AxisX {
		in0, in1, out0, out1 = py, ny, px, nx
		inOrigin, outOrigin = ty, tx
	}

	lo, hi := f.Range.InputBounds()
	ta, tb, ok := gamemath.ClipInterval(in0-inOrigin, in1-in0, lo, hi)
	if !ok {
		return 0, nil
	}

	ia, ib := gamemath.Lerp(in0, in1, ta), gamemath.Lerp(in0, in1, tb)
	sa := outOrigin + f.surfaceClamped(ia-inOrigin)
	sb := outOrigin + f.surfaceClamped(ib-inOrigin)
	d0 := gamemath.Lerp(out0, out1, ta) - sa
	d1 := gamemath.Lerp(out0, out1, tb) - sb
	if gamemath.NearZero(d0) {
		d0 = 0
	}
	if gamemath.NearZero(d1) {
		d1 = 0
	}

	var t float64
	switch {
	case (d0 <= 0 && d1 >= 0) || (d0 > 0 && d1 <= 0):
		t = gamemath.Lerp(ta, tb, gamemath.CrossingParam(d0, d1))
	case category.Glue && d0 == 0 && out1-out0 >= 0 && d1 < 0:
		t = ta
	default:
		return 0, nil
	}

	res := &Result{Axis: f.Range.Output, Tile: tile, Formula: f}
	if f.Range.Output == AxisY {
		res.X, res.Y = ib, sb
	} else {
		res.X, res.Y = sb, ib
	}
	return t, res
}

func (f *Formula) surfaceClamped(input float64) float64 {
	lo, hi := f.Range.InputBounds()
	out, _ := f.Surface(gamemath.Clamp(input, lo, hi))
	return out
}
