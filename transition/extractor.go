package transition

import (
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/zyedidia/generic/mapset"
)

// Catalog maps each transition to the tile art drawing it.
type Catalog map[Transition]mapset.Set[tilemap.TileRef]

// Add records a ref for a transition.
func (c Catalog) Add(tr Transition, ref tilemap.TileRef) {
	set, ok := c[tr]
	if !ok {
		set = mapset.New[tilemap.TileRef]()
		c[tr] = set
	}
	set.Put(ref)
}

// Merge adds every entry of other.
func (c Catalog) Merge(other Catalog) {
	for tr, refs := range other {
		refs.Each(func(ref tilemap.TileRef) { c.Add(tr, ref) })
	}
}

// Refs returns the sorted refs of a transition.
func (c Catalog) Refs(tr Transition) []tilemap.TileRef {
	set, ok := c[tr]
	if !ok {
		return nil
	}
	refs := make([]tilemap.TileRef, 0, set.Size())
	set.Each(func(ref tilemap.TileRef) { refs = append(refs, ref) })
	return tilemap.SortRefs(refs)
}

// Transitions returns the keys sorted.
func (c Catalog) Transitions() []Transition {
	return sortedTransitions(c)
}

// Extractor reads transitions out of hand made sample maps.
type Extractor struct {
	groups *tilegroup.Model
}

func NewExtractor(groups *tilegroup.Model) *Extractor {
	return &Extractor{groups: groups}
}

// GetTransitions returns the union of the transitions found in every map.
// A tile counts as the group its level marks it with, else the group of its
// art. Terrain tiles record their CENTER transition. Transition art is classified
// from its terrain neighbours and recorded both ways. Tiles that do not show
// exactly two terrain groups around them are skipped.
func (e *Extractor) GetTransitions(maps []*tilemap.MapTile) Catalog {
	catalog := make(Catalog)
	for _, m := range maps {
		m.Each(func(t *tilemap.Tile) {
			group := e.groupOf(t)
			switch {
			case e.groups.IsTerrain(group):
				catalog.Add(Transition{Type: Center, In: group, Out: group}, t.Ref)
			case e.groups.Type(group) == tilegroup.TypeTransition:
				if tr, ok := e.classify(m, t); ok {
					catalog.Add(tr, t.Ref)
					catalog.Add(tr.Symmetric(), t.Ref)
				}
			}
		})
	}
	return catalog
}

// classify picks the group seen most around the tile as in, ties going to
// the smaller name, and builds the type from where the other one lies.
func (e *Extractor) classify(m *tilemap.MapTile, t *tilemap.Tile) (Transition, bool) {
	var neighbours [8]string
	counts := make(map[string]int, 2)
	for _, o := range tilemap.Orientations {
		n := m.Neighbor(t, o)
		if n == nil {
			continue
		}
		if g := e.groupOf(n); e.groups.IsTerrain(g) {
			neighbours[o] = g
			counts[g]++
		}
	}
	if len(counts) != 2 {
		return Transition{}, false
	}

	var in, out string
	for g, n := range counts {
		if in == "" || n > counts[in] || (n == counts[in] && g < in) {
			in = g
		}
	}
	for g := range counts {
		if g != in {
			out = g
		}
	}

	var mask uint8
	for o, g := range neighbours {
		if g == out {
			mask |= 1 << uint(o)
		}
	}
	typ, ok := Classify(mask)
	if !ok || typ == Center {
		return Transition{}, false
	}
	return Transition{Type: typ, In: in, Out: out}, true
}

func (e *Extractor) groupOf(t *tilemap.Tile) string {
	if t.Group != "" {
		return t.Group
	}
	return e.groups.Group(t.Ref)
}
