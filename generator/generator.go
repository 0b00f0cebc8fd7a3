// Package generator builds maps from size, fill and region preferences, then
// draws transitions and circuits with art taken from sample maps.
package generator

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/automoto/tileforge/circuit"
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/automoto/tileforge/transition"
)

var (
	ErrNoSize        = errors.New("map size not set")
	ErrHoles         = errors.New("map has empty cells")
	ErrInvalidRegion = errors.New("invalid region")
)

type Option func(*Generator)

// WithCatalogs uses already extracted catalogs instead of reading the
// sample maps.
func WithCatalogs(transitions transition.Catalog, circuits circuit.Catalog) Option {
	return func(g *Generator) {
		g.transitions = transitions
		g.circuits = circuits
	}
}

// WithCollisions makes art choice respect formula constraints.
func WithCollisions(formulas []*collision.Formula, groups []*collision.Group) Option {
	return func(g *Generator) {
		g.formulas = formulas
		g.collisionGroups = groups
	}
}

// Generator is a MapGenerator.
type Generator struct {
	transitions     transition.Catalog
	circuits        circuit.Catalog
	formulas        []*collision.Formula
	collisionGroups []*collision.Group
}

func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateMap builds a new map. Nothing is returned on error, a map with a
// pattern lacking art is never handed out.
func (g *Generator) GenerateMap(params *Parameters, levels []*tilemap.MapTile, sheets []tilemap.Sheet, groups []tilegroup.TileGroup) (*tilemap.MapTile, error) {
	if params == nil {
		return nil, ErrNoSize
	}
	groupModel := tilegroup.NewModel()
	groupModel.LoadGroups(groups)

	transitions, circuits := g.transitions, g.circuits
	if transitions == nil {
		transitions = transition.NewExtractor(groupModel).GetTransitions(levels)
	}
	if circuits == nil {
		circuits = circuit.NewExtractor(groupModel).GetCircuits(levels)
	}

	rng := rand.New(rand.NewSource(params.Seed))
	m := tilemap.New()
	m.LoadSheets(sheets)
	if err := params.Apply(m, groupModel, rng); err != nil {
		return nil, err
	}
	if !m.IsCreated() {
		return nil, ErrNoSize
	}
	if holes := m.InTileWidth*m.InTileHeight - m.Count(); holes > 0 {
		return nil, fmt.Errorf("%d cells: %w", holes, ErrHoles)
	}

	trOpts := []transition.Option{transition.WithRand(rng)}
	ciOpts := []circuit.Option{circuit.WithRand(rng)}
	if g.formulas != nil {
		collisions := collision.NewModel(m, groupModel)
		if err := collisions.LoadCollisions(g.formulas, g.collisionGroups); err != nil {
			return nil, err
		}
		trOpts = append(trOpts, transition.WithAccept(collisions.Accepts))
		ciOpts = append(ciOpts, circuit.WithAccept(collisions.Accepts))
	}

	trModel := transition.NewModel(m, groupModel, trOpts...)
	trModel.LoadTransitions(transitions)
	if err := trModel.ResolveAll(); err != nil {
		return nil, fmt.Errorf("resolve transitions: %w", err)
	}

	ciModel := circuit.NewModel(m, groupModel, ciOpts...)
	ciModel.LoadCircuits(circuits)
	if err := ciModel.ResolveAll(); err != nil {
		return nil, fmt.Errorf("resolve circuits: %w", err)
	}

	log.Printf("Generated map: %dx%d tiles from %d samples (%d transitions, %d circuits)",
		m.InTileWidth, m.InTileHeight, len(levels), len(transitions), len(circuits))
	return m, nil
}
