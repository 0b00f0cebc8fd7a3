package catalog

import (
	"fmt"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"gopkg.in/yaml.v3"
)

type tileRefYAML struct {
	Sheet  *int `yaml:"sheet"`
	Number *int `yaml:"number"`
}

func (t tileRefYAML) ref(file, node string) (tilemap.TileRef, error) {
	sheet, err := required(t.Sheet, file, node, "sheet")
	if err != nil {
		return tilemap.TileRef{}, err
	}
	number, err := required(t.Number, file, node, "number")
	if err != nil {
		return tilemap.TileRef{}, err
	}
	return tilemap.TileRef{Sheet: sheet, Number: number}, nil
}

func refYAML(r tilemap.TileRef) tileRefYAML {
	sheet, number := r.Sheet, r.Number
	return tileRefYAML{Sheet: &sheet, Number: &number}
}

func refsYAML(refs []tilemap.TileRef) []tileRefYAML {
	out := make([]tileRefYAML, 0, len(refs))
	for _, r := range refs {
		out = append(out, refYAML(r))
	}
	return out
}

// refs reads a list of tile refs, naming each by its index under node.
func refs(file, node string, tiles []tileRefYAML) ([]tilemap.TileRef, error) {
	out := make([]tilemap.TileRef, 0, len(tiles))
	for i, t := range tiles {
		r, err := t.ref(file, fmt.Sprintf("%s.tiles[%d]", node, i))
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

type sheetYAML struct {
	ID         *int   `yaml:"id"`
	Image      string `yaml:"image"`
	TileWidth  int    `yaml:"tilewidth"`
	TileHeight int    `yaml:"tileheight"`
}

type sheetsFile struct {
	Sheets []sheetYAML `yaml:"sheets"`
}

// DecodeSheets reads a sheets file.
func DecodeSheets(file string, data []byte) ([]tilemap.Sheet, error) {
	var f sheetsFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	sheets := make([]tilemap.Sheet, 0, len(f.Sheets))
	for i, s := range f.Sheets {
		node := fmt.Sprintf("sheets[%d]", i)
		id, err := required(s.ID, file, node, "id")
		if err != nil {
			return nil, err
		}
		if s.Image == "" {
			return nil, missing(file, node, "image")
		}
		if s.TileWidth <= 0 || s.TileHeight <= 0 {
			return nil, missing(file, node, "tilewidth/tileheight")
		}
		sheets = append(sheets, tilemap.Sheet{ID: id, Image: s.Image, TileWidth: s.TileWidth, TileHeight: s.TileHeight})
	}
	return sheets, nil
}

func EncodeSheets(sheets []tilemap.Sheet) ([]byte, error) {
	f := sheetsFile{Sheets: make([]sheetYAML, 0, len(sheets))}
	for _, s := range sheets {
		id := s.ID
		f.Sheets = append(f.Sheets, sheetYAML{ID: &id, Image: s.Image, TileWidth: s.TileWidth, TileHeight: s.TileHeight})
	}
	return yaml.Marshal(f)
}

type groupYAML struct {
	Name  string        `yaml:"name"`
	Type  string        `yaml:"type,omitempty"`
	Tiles []tileRefYAML `yaml:"tiles"`
}

type groupsFile struct {
	Groups []groupYAML `yaml:"groups"`
}

// DecodeGroups reads a groups file. Group order is the generator priority.
func DecodeGroups(file string, data []byte) ([]tilegroup.TileGroup, error) {
	var f groupsFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	groups := make([]tilegroup.TileGroup, 0, len(f.Groups))
	for i, g := range f.Groups {
		node := fmt.Sprintf("groups[%d]", i)
		if g.Name == "" {
			return nil, missing(file, node, "name")
		}
		typ, err := tilegroup.ParseType(g.Type)
		if err != nil {
			return nil, typeError(file, node, err)
		}
		tiles, err := refs(file, "group "+g.Name, g.Tiles)
		if err != nil {
			return nil, err
		}
		groups = append(groups, tilegroup.TileGroup{Name: g.Name, Type: typ, Tiles: tiles})
	}
	return groups, nil
}

func EncodeGroups(groups []tilegroup.TileGroup) ([]byte, error) {
	f := groupsFile{Groups: make([]groupYAML, 0, len(groups))}
	for _, g := range groups {
		gy := groupYAML{Name: g.Name, Tiles: refsYAML(g.Tiles)}
		if g.Type != tilegroup.TypeNone {
			gy.Type = g.Type.String()
		}
		f.Groups = append(f.Groups, gy)
	}
	return yaml.Marshal(f)
}
