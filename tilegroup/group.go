// Package tilegroup maps tile refs to named groups such as water or ground.
package tilegroup

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/zyedidia/generic/mapset"
)

// NoGroup is returned for refs that belong to no configured group.
const NoGroup = "none"

var ErrUnknownType = errors.New("unknown group type")

// Type tells how the tiles of a group are used by the map generator.
type Type int

const (
	// TypeNone is plain terrain.
	TypeNone Type = iota
	// TypeTransition tiles sit between two terrain groups.
	TypeTransition
	// TypeCircuit tiles form paths such as roads or rivers.
	TypeCircuit
)

var typeNames = [...]string{
	TypeNone:       "NONE",
	TypeTransition: "TRANSITION",
	TypeCircuit:    "CIRCUIT",
}

func (t Type) String() string {
	if t < TypeNone || t > TypeCircuit {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType reads a group type name. An empty name is TypeNone.
func ParseType(name string) (Type, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return TypeNone, nil
	}
	for i, n := range typeNames {
		if n == upper {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("group type %q: %w", name, ErrUnknownType)
}

// TileGroup is one configured group.
type TileGroup struct {
	Name  string
	Type  Type
	Tiles []tilemap.TileRef
}

// Model resolves the group of any tile ref.
type Model struct {
	order  []string
	types  map[string]Type
	tiles  map[string]mapset.Set[tilemap.TileRef]
	byTile map[tilemap.TileRef]string

	revision uint64
}

func NewModel() *Model {
	return &Model{
		types:  make(map[string]Type),
		tiles:  make(map[string]mapset.Set[tilemap.TileRef]),
		byTile: make(map[tilemap.TileRef]string),
	}
}

// LoadGroups replaces all groups. Group order is kept and used as the
// generator priority, first is lowest. A ref listed twice ends up in the last
// group naming it.
func (m *Model) LoadGroups(groups []TileGroup) {
	order := make([]string, 0, len(groups))
	types := make(map[string]Type, len(groups))
	tiles := make(map[string]mapset.Set[tilemap.TileRef], len(groups))
	byTile := make(map[tilemap.TileRef]string)

	for _, g := range groups {
		set, ok := tiles[g.Name]
		if !ok {
			set = mapset.New[tilemap.TileRef]()
			tiles[g.Name] = set
			order = append(order, g.Name)
		}
		types[g.Name] = g.Type
		for _, ref := range g.Tiles {
			if prev, ok := byTile[ref]; ok && prev != g.Name {
				tiles[prev].Remove(ref)
			}
			set.Put(ref)
			byTile[ref] = g.Name
		}
	}

	m.order, m.types, m.tiles, m.byTile = order, types, tiles, byTile
	m.revision++
}

// Revision changes every time a ref may have changed group.
func (m *Model) Revision() uint64 {
	return m.revision
}

// Group returns the group of a ref, NoGroup when unknown.
func (m *Model) Group(ref tilemap.TileRef) string {
	if g, ok := m.byTile[ref]; ok {
		return g
	}
	return NoGroup
}

// TileGroupOf returns the group of the tile art, NoGroup for nil.
func (m *Model) TileGroupOf(t *tilemap.Tile) string {
	if t == nil {
		return NoGroup
	}
	return m.Group(t.Ref)
}

// Type returns the type of a group. Unknown groups are TypeNone.
func (m *Model) Type(group string) Type {
	return m.types[group]
}

// IsTerrain reports a configured group of TypeNone.
func (m *Model) IsTerrain(group string) bool {
	_, ok := m.types[group]
	return ok && m.types[group] == TypeNone
}

func (m *Model) Has(group string) bool {
	_, ok := m.types[group]
	return ok
}

// Groups returns group names in configuration order.
func (m *Model) Groups() []string {
	return append([]string(nil), m.order...)
}

// Priority returns the configuration index of a group, -1 when unknown.
func (m *Model) Priority(group string) int {
	for i, g := range m.order {
		if g == group {
			return i
		}
	}
	return -1
}

// Tiles returns the sorted refs of a group.
func (m *Model) Tiles(group string) []tilemap.TileRef {
	set, ok := m.tiles[group]
	if !ok {
		return nil
	}
	refs := make([]tilemap.TileRef, 0, set.Size())
	set.Each(func(ref tilemap.TileRef) { refs = append(refs, ref) })
	return tilemap.SortRefs(refs)
}

// ChangeGroup moves a ref to another group. An empty or NoGroup target only
// removes the ref. Unknown target groups are created as terrain.
func (m *Model) ChangeGroup(ref tilemap.TileRef, group string) {
	m.revision++
	if prev, ok := m.byTile[ref]; ok {
		m.tiles[prev].Remove(ref)
		delete(m.byTile, ref)
	}
	if group == "" || group == NoGroup {
		return
	}
	set, ok := m.tiles[group]
	if !ok {
		set = mapset.New[tilemap.TileRef]()
		m.tiles[group] = set
		m.types[group] = TypeNone
		m.order = append(m.order, group)
	}
	set.Put(ref)
	m.byTile[ref] = group
}

// Export returns the groups in configuration order, tiles sorted.
func (m *Model) Export() []TileGroup {
	groups := make([]TileGroup, 0, len(m.order))
	for _, name := range m.order {
		groups = append(groups, TileGroup{Name: name, Type: m.types[name], Tiles: m.Tiles(name)})
	}
	return groups
}

// AssignTerrain fills in the logical group of tiles that have none, using the
// group of their art. Transition art is left alone, its terrain depends on
// the neighbourhood.
func (m *Model) AssignTerrain(mp *tilemap.MapTile) {
	mp.Each(func(t *tilemap.Tile) {
		if t.Group != "" {
			return
		}
		if g := m.Group(t.Ref); m.Type(g) != TypeTransition {
			t.Group = g
		}
	})
}
