package collision

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Group lists the formulas of every tile whose art belongs to the tile group
// of the same name. Formula order is the configuration order.
type Group struct {
	Name     string
	Formulas []*Formula
}

// Has reports whether the group lists the formula.
func (g *Group) Has(name string) bool {
	for _, f := range g.Formulas {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Remove drops a formula from the group.
func (g *Group) Remove(name string) {
	kept := g.Formulas[:0]
	for _, f := range g.Formulas {
		if f.Name != name {
			kept = append(kept, f)
		}
	}
	g.Formulas = kept
}

// Category is the part of a moving entity tested against tiles, such as its
// feet or its left side.
type Category struct {
	Name    string
	Axis    Axis
	OffsetX int
	OffsetY int

	// Glue keeps the entity on a surface that drops away under it, as when
	// walking down a slope.
	Glue bool

	// Groups limits the collision groups tested. Empty means all.
	Groups []string
}

// Accepts reports whether tiles of the collision group are tested.
func (c *Category) Accepts(group string) bool {
	if len(c.Groups) == 0 {
		return true
	}
	for _, g := range c.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func sortedSet(set mapset.Set[string]) []string {
	if set.Size() == 0 {
		return nil
	}
	out := make([]string, 0, set.Size())
	set.Each(func(s string) { out = append(out, s) })
	sort.Strings(out)
	return out
}
