package main

import (
	"errors"
	"os"

	"github.com/automoto/tileforge/catalog"
	"github.com/automoto/tileforge/generator"
	"github.com/automoto/tileforge/shared/tilemap"
)

var errNoParameters = errors.New("no " + catalog.GeneratorFile + " in catalog")

func generate(o options, set *catalog.Set) (*tilemap.MapTile, error) {
	if set.Parameters == nil {
		return nil, errNoParameters
	}
	if o.seed != 0 {
		set.Parameters.Seed = o.seed
	}
	levels, err := fillCatalogs(o, set)
	if err != nil {
		return nil, err
	}

	opts := []generator.Option{generator.WithCatalogs(set.Transitions, set.Circuits)}
	if len(set.Formulas) > 0 {
		opts = append(opts, generator.WithCollisions(set.Formulas, set.Collisions))
	}
	return generator.New(opts...).GenerateMap(set.Parameters, levels, set.Sheets, set.Groups)
}

func runGenerate(o options) error {
	set := loadSet(o)
	m, err := generate(o, set)
	if err != nil {
		return err
	}
	if o.mapFile == "" {
		return nil
	}
	data, err := catalog.EncodeMap(m)
	if err != nil {
		return err
	}
	return os.WriteFile(o.mapFile, data, 0o644)
}

// loadOrGenerate reads the map file when given, otherwise generates a map.
func loadOrGenerate(o options, set *catalog.Set) (*tilemap.MapTile, error) {
	if o.mapFile == "" {
		return generate(o, set)
	}
	data, err := os.ReadFile(o.mapFile)
	if err != nil {
		return nil, err
	}
	m, err := catalog.DecodeMap(o.mapFile, data)
	if err != nil {
		return nil, err
	}
	m.LoadSheets(set.Sheets)
	set.GroupModel().AssignTerrain(m)
	return m, nil
}
