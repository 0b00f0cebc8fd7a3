package circuit

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
)

// AcceptFunc tells whether art may be placed where tile at stands.
type AcceptFunc func(ref tilemap.TileRef, at *tilemap.Tile) bool

type Option func(*Model)

func WithRand(r *rand.Rand) Option {
	return func(m *Model) { m.rng = r }
}

func WithAccept(fn AcceptFunc) Option {
	return func(m *Model) { m.accept = fn }
}

// Model is the circuit feature of a map.
type Model struct {
	mapTile *tilemap.MapTile
	groups  *tilegroup.Model
	rng     *rand.Rand
	accept  AcceptFunc
	catalog Catalog
}

func NewModel(m *tilemap.MapTile, groups *tilegroup.Model, opts ...Option) *Model {
	model := &Model{
		mapTile: m,
		groups:  groups,
		rng:     rand.New(rand.NewSource(config.Generator.Seed)),
		catalog: make(Catalog),
	}
	for _, opt := range opts {
		opt(model)
	}
	return model
}

// LoadCircuits replaces the catalog.
func (m *Model) LoadCircuits(catalog Catalog) {
	next := make(Catalog, len(catalog))
	next.Merge(catalog)
	m.catalog = next
}

func (m *Model) Catalog() Catalog {
	return m.catalog
}

// GetCircuits returns every known circuit, sorted.
func (m *Model) GetCircuits() []Circuit {
	return m.catalog.Circuits()
}

func (m *Model) GetTiles(c Circuit) []tilemap.TileRef {
	return m.catalog.Refs(c)
}

func (m *Model) groupOf(t *tilemap.Tile) string {
	if t.Group != "" {
		return t.Group
	}
	return m.groups.Group(t.Ref)
}

// Classify returns the circuit a path tile needs. ok is false for tiles that
// are not part of a circuit group.
func (m *Model) Classify(t *tilemap.Tile) (Circuit, bool) {
	in := m.groupOf(t)
	if m.groups.Type(in) != tilegroup.TypeCircuit {
		return Circuit{}, false
	}
	return classify(m.mapTile, m.groups, t, in, m.groupOf), true
}

// Resolve updates a path tile and its orthogonal neighbours.
func (m *Model) Resolve(t *tilemap.Tile) error {
	if err := m.resolveTile(t); err != nil {
		return err
	}
	for _, side := range orthogonal {
		if n := m.mapTile.Neighbor(t, side.o); n != nil {
			if err := m.resolveTile(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveAll updates every path tile of the map.
func (m *Model) ResolveAll() error {
	var err error
	m.mapTile.Each(func(t *tilemap.Tile) {
		if err == nil {
			err = m.resolveTile(t)
		}
	})
	return err
}

func (m *Model) resolveTile(t *tilemap.Tile) error {
	c, ok := m.Classify(t)
	if !ok {
		return nil
	}
	t.Group = c.In
	candidates := m.catalog.Refs(c)
	if len(candidates) == 0 {
		return fmt.Errorf("tile %d,%d %s: %w", t.X, t.Y, c, ErrMissingCircuit)
	}
	for _, ref := range candidates {
		if ref == t.Ref {
			return nil
		}
	}

	if m.accept != nil {
		accepted := candidates[:0:0]
		for _, ref := range candidates {
			if m.accept(ref, t) {
				accepted = append(accepted, ref)
			}
		}
		if len(accepted) > 0 {
			candidates = accepted
		} else {
			log.Printf("No circuit candidate keeps constraints at %d,%d, using any of %d", t.X, t.Y, len(candidates))
		}
	}
	t.Ref = candidates[m.rng.Intn(len(candidates))]
	return m.mapTile.SetTile(t)
}
