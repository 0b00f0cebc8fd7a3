// Command tilegen extracts transition and circuit catalogs from sample
// levels, generates maps from them and previews the result in a terminal.
//
//	tilegen [flags] extract|generate|preview|simulate
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/automoto/tileforge/catalog"
	"github.com/automoto/tileforge/circuit"
	cfg "github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/leveldata"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/transition"
)

type options struct {
	catalogDir string
	levelsDir  string
	layer      string
	mapFile    string
	seed       int64
	noCache    bool
	frames     int
	dropX      float64
	category   string
}

func main() {
	var o options
	flag.StringVar(&o.catalogDir, "catalog", "catalog", "Catalog directory (groups.yaml, formulas.yaml, ...)")
	flag.StringVar(&o.levelsDir, "levels", "levels", "Directory of sample .tmx levels")
	flag.StringVar(&o.layer, "layer", leveldata.DefaultLayer, "Tile layer read from sample levels")
	flag.StringVar(&o.mapFile, "map", "", "Generated map file (written by generate, read by preview and simulate)")
	flag.Int64Var(&o.seed, "seed", 0, "Generator seed (0 = generator.yaml or default)")
	flag.BoolVar(&o.noCache, "nocache", false, "Ignore and do not update the extraction cache")
	flag.IntVar(&o.frames, "frames", 120, "Frames to simulate")
	flag.Float64Var(&o.dropX, "x", 8, "Pixel column a box is dropped at by simulate")
	flag.StringVar(&o.category, "category", "", "Collision category of the dropped box (empty = all)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] extract|generate|preview|simulate\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if o.noCache {
		cfg.Cache.Enabled = false
	}

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "extract":
		err = runExtract(o)
	case "generate":
		err = runGenerate(o)
	case "preview":
		err = runPreview(o)
	case "simulate":
		err = runSimulate(o)
	default:
		flag.Usage()
		log.Fatalf("Unknown command %q", cmd)
	}
	if err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func loadSet(o options) *catalog.Set {
	set, err := catalog.Load(os.DirFS(o.catalogDir))
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	return set
}

// catalogs returns the transition and circuit catalogs of the sample
// levels, from the catalog directory, the cache, or a fresh extraction, in
// that order.
func catalogs(o options, set *catalog.Set) (transition.Catalog, circuit.Catalog, []*tilemap.MapTile, error) {
	if set.Transitions != nil && set.Circuits != nil {
		return set.Transitions, set.Circuits, nil, nil
	}
	byName, names, err := leveldata.LoadAllLevels(os.DirFS(o.levelsDir), ".", o.layer)
	if err != nil {
		return nil, nil, nil, err
	}
	levels := leveldata.Ordered(byName, names)

	groups := set.GroupModel()
	fingerprint := catalog.Fingerprint(levels, groups)

	cache, err := catalog.OpenCache()
	if err != nil {
		log.Printf("Warning: Could not open cache: %v", err)
	}
	transitions, err := cache.LoadTransitions(fingerprint)
	if err != nil {
		log.Printf("Warning: Could not load cached transitions: %v", err)
	}
	circuits, err := cache.LoadCircuits(fingerprint)
	if err != nil {
		log.Printf("Warning: Could not load cached circuits: %v", err)
	}
	if transitions != nil && circuits != nil {
		return transitions, circuits, levels, nil
	}

	transitions = transition.NewExtractor(groups).GetTransitions(levels)
	circuits = circuit.NewExtractor(groups).GetCircuits(levels)
	if err := cache.SaveTransitions(fingerprint, transitions); err != nil {
		log.Printf("Warning: Could not cache transitions: %v", err)
	}
	if err := cache.SaveCircuits(fingerprint, circuits); err != nil {
		log.Printf("Warning: Could not cache circuits: %v", err)
	}
	return transitions, circuits, levels, nil
}

// fillCatalogs stores the transition and circuit catalogs in set and returns
// the sample levels read, if any.
func fillCatalogs(o options, set *catalog.Set) ([]*tilemap.MapTile, error) {
	transitions, circuits, levels, err := catalogs(o, set)
	if err != nil {
		return nil, err
	}
	set.Transitions, set.Circuits = transitions, circuits
	return levels, nil
}
