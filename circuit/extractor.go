package circuit

import (
	"sort"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/zyedidia/generic/mapset"
)

// Catalog maps each circuit to the tile art drawing it.
type Catalog map[Circuit]mapset.Set[tilemap.TileRef]

func (c Catalog) Add(ci Circuit, ref tilemap.TileRef) {
	set, ok := c[ci]
	if !ok {
		set = mapset.New[tilemap.TileRef]()
		c[ci] = set
	}
	set.Put(ref)
}

func (c Catalog) Merge(other Catalog) {
	for ci, refs := range other {
		refs.Each(func(ref tilemap.TileRef) { c.Add(ci, ref) })
	}
}

// Refs returns the sorted refs of a circuit.
func (c Catalog) Refs(ci Circuit) []tilemap.TileRef {
	set, ok := c[ci]
	if !ok {
		return nil
	}
	refs := make([]tilemap.TileRef, 0, set.Size())
	set.Each(func(ref tilemap.TileRef) { refs = append(refs, ref) })
	return tilemap.SortRefs(refs)
}

// Circuits returns the keys sorted.
func (c Catalog) Circuits() []Circuit {
	out := make([]Circuit, 0, len(c))
	for ci := range c {
		out = append(out, ci)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

var orthogonal = []struct {
	side Type
	o    tilemap.Orientation
}{
	{SideNorth, tilemap.North},
	{SideEast, tilemap.East},
	{SideSouth, tilemap.South},
	{SideWest, tilemap.West},
}

// groupFunc returns the group a tile counts as.
type groupFunc func(t *tilemap.Tile) string

// classify builds the circuit of a path tile: the sides continuing the same
// group, and the terrain most seen around it.
func classify(m *tilemap.MapTile, groups *tilegroup.Model, t *tilemap.Tile, in string, groupOf groupFunc) Circuit {
	var typ Type
	for _, side := range orthogonal {
		if n := m.Neighbor(t, side.o); n != nil && groupOf(n) == in {
			typ |= side.side
		}
	}

	counts := make(map[string]int)
	for _, o := range tilemap.Orientations {
		n := m.Neighbor(t, o)
		if n == nil {
			continue
		}
		if g := groupOf(n); g != in && groups.IsTerrain(g) {
			counts[g]++
		}
	}
	out := in
	best := 0
	for g, n := range counts {
		if n > best || (n == best && g < out) {
			out, best = g, n
		}
	}
	return Circuit{Type: typ, In: in, Out: out}
}

// Extractor reads circuits out of sample maps.
type Extractor struct {
	groups *tilegroup.Model
}

func NewExtractor(groups *tilegroup.Model) *Extractor {
	return &Extractor{groups: groups}
}

// GetCircuits returns the union of the circuits drawn in every map. A tile
// counts as the group its level marks it with, else the group of its art.
func (e *Extractor) GetCircuits(maps []*tilemap.MapTile) Catalog {
	catalog := make(Catalog)
	for _, m := range maps {
		m.Each(func(t *tilemap.Tile) {
			in := e.groupOf(t)
			if e.groups.Type(in) != tilegroup.TypeCircuit {
				return
			}
			catalog.Add(classify(m, e.groups, t, in, e.groupOf), t.Ref)
		})
	}
	return catalog
}

func (e *Extractor) groupOf(t *tilemap.Tile) string {
	if t.Group != "" {
		return t.Group
	}
	return e.groups.Group(t.Ref)
}
