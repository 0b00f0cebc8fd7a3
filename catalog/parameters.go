package catalog

import (
	"fmt"

	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/generator"
	"gopkg.in/yaml.v3"
)

type sizeYAML struct {
	TileWidth  int  `yaml:"tilewidth,omitempty"`
	TileHeight int  `yaml:"tileheight,omitempty"`
	Width      *int `yaml:"width"`
	Height     *int `yaml:"height"`
}

type areaYAML struct {
	X *int `yaml:"x"`
	Y *int `yaml:"y"`
	W *int `yaml:"w"`
	H *int `yaml:"h"`
}

type regionYAML struct {
	Tile   *tileRefYAML `yaml:"tile"`
	Area   *areaYAML    `yaml:"area"`
	Size   *int         `yaml:"size"`
	Number *int         `yaml:"number"`
}

type parametersFile struct {
	Seed    *int64       `yaml:"seed,omitempty"`
	Size    *sizeYAML    `yaml:"size,omitempty"`
	Fill    *tileRefYAML `yaml:"fill,omitempty"`
	Regions []regionYAML `yaml:"regions,omitempty"`
}

// DecodeParameters reads generator preferences. A missing seed or tile size
// keeps the configured default.
func DecodeParameters(file string, data []byte) (*generator.Parameters, error) {
	var f parametersFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	params := generator.NewParameters()
	if f.Seed != nil {
		params.Seed = *f.Seed
	}
	if f.Size != nil {
		size, err := f.Size.pref(file)
		if err != nil {
			return nil, err
		}
		params.Add(size)
	}
	if f.Fill != nil {
		tile, err := f.Fill.ref(file, "fill")
		if err != nil {
			return nil, err
		}
		params.Add(generator.PrefMapFill{Tile: tile})
	}
	for i, r := range f.Regions {
		node := fmt.Sprintf("regions[%d]", i)
		region, err := r.pref(file, node)
		if err != nil {
			return nil, err
		}
		if err := region.Validate(); err != nil {
			return nil, configError(file, node, err)
		}
		params.Add(region)
	}
	return params, nil
}

// pref reads the map size. A tile size left out entirely is the configured
// default; a half given one is an error.
func (s *sizeYAML) pref(file string) (generator.PrefMapSize, error) {
	p := generator.PrefMapSize{TileWidth: s.TileWidth, TileHeight: s.TileHeight}
	switch {
	case p.TileWidth == 0 && p.TileHeight == 0:
		p.TileWidth, p.TileHeight = config.C.TileWidth, config.C.TileHeight
	case p.TileWidth == 0:
		return p, missing(file, "size", "tilewidth")
	case p.TileHeight == 0:
		return p, missing(file, "size", "tileheight")
	}
	var err error
	if p.Width, err = required(s.Width, file, "size", "width"); err != nil {
		return p, err
	}
	if p.Height, err = required(s.Height, file, "size", "height"); err != nil {
		return p, err
	}
	return p, nil
}

func (r *regionYAML) pref(file, node string) (generator.PrefMapRegion, error) {
	var p generator.PrefMapRegion
	if r.Tile == nil {
		return p, missing(file, node, "tile")
	}
	if r.Area == nil {
		return p, missing(file, node, "area")
	}
	tile, err := r.Tile.ref(file, node+".tile")
	if err != nil {
		return p, err
	}
	p.Tile = tile
	area := node + ".area"
	for _, f := range []struct {
		dst  *int
		src  *int
		name string
	}{
		{&p.Area.X, r.Area.X, "x"},
		{&p.Area.Y, r.Area.Y, "y"},
		{&p.Area.W, r.Area.W, "w"},
		{&p.Area.H, r.Area.H, "h"},
	} {
		if *f.dst, err = required(f.src, file, area, f.name); err != nil {
			return p, err
		}
	}
	if p.Size, err = required(r.Size, file, node, "size"); err != nil {
		return p, err
	}
	if p.Number, err = required(r.Number, file, node, "number"); err != nil {
		return p, err
	}
	return p, nil
}

// EncodeParameters writes the preferences back, in run order.
func EncodeParameters(params *generator.Parameters) ([]byte, error) {
	seed := params.Seed
	f := parametersFile{Seed: &seed}
	for _, pref := range params.Preferences() {
		switch p := pref.(type) {
		case generator.PrefMapSize:
			w, h := p.Width, p.Height
			f.Size = &sizeYAML{TileWidth: p.TileWidth, TileHeight: p.TileHeight, Width: &w, Height: &h}
		case generator.PrefMapFill:
			tile := refYAML(p.Tile)
			f.Fill = &tile
		case generator.PrefMapRegion:
			tile := refYAML(p.Tile)
			x, y, w, h := p.Area.X, p.Area.Y, p.Area.W, p.Area.H
			size, number := p.Size, p.Number
			f.Regions = append(f.Regions, regionYAML{
				Tile:   &tile,
				Area:   &areaYAML{X: &x, Y: &y, W: &w, H: &h},
				Size:   &size,
				Number: &number,
			})
		default:
			return nil, fmt.Errorf("preference %T: %w", pref, ErrUnknownType)
		}
	}
	return yaml.Marshal(f)
}
