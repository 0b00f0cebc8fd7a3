package collision

import (
	"log"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
)

// Model is the collision feature of a map: loaded formulas and groups plus
// the computer using them.
type Model struct {
	mapTile  *tilemap.MapTile
	groups   *tilegroup.Model
	loader   *Loader
	computer *Computer
}

func NewModel(m *tilemap.MapTile, groups *tilegroup.Model) *Model {
	loader := NewLoader()
	return &Model{
		mapTile:  m,
		groups:   groups,
		loader:   loader,
		computer: NewComputer(m, groups, loader),
	}
}

// LoadCollisions installs formulas and collision groups, then mirrors the map
// into the broad phase.
func (m *Model) LoadCollisions(formulas []*Formula, groups []*Group) error {
	if err := m.loader.Load(formulas, groups); err != nil {
		return err
	}
	m.computer.Rebuild()
	if m.computer.broad != nil {
		log.Printf("Loaded collisions: %d formulas, %d groups, %d solid tiles",
			len(formulas), len(groups), m.computer.broad.size())
	}
	return nil
}

// ComputeCollision returns the first surface the category probe crossed
// while moving, nil when none.
func (m *Model) ComputeCollision(t Transformable, category *Category) *Result {
	return m.computer.Compute(t, category)
}

// Accepts reports whether ref can be placed where at stands without breaking
// formula constraints.
func (m *Model) Accepts(ref tilemap.TileRef, at *tilemap.Tile) bool {
	return m.computer.Accepts(ref, at)
}

func (m *Model) Formula(name string) (*Formula, bool) { return m.loader.Formula(name) }
func (m *Model) Group(name string) *Group             { return m.loader.Group(name) }
func (m *Model) HasGroup(name string) bool            { return m.loader.HasGroup(name) }
func (m *Model) Formulas() []*Formula                 { return m.loader.Formulas() }
func (m *Model) Groups() []*Group                     { return m.loader.Groups() }
