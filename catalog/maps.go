package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/automoto/tileforge/shared/tilemap"
	"gopkg.in/yaml.v3"
)

type mapFile struct {
	TileWidth  int      `yaml:"tilewidth"`
	TileHeight int      `yaml:"tileheight"`
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Rows       []string `yaml:"rows"`
}

const emptyCell = "-"

// EncodeMap writes a map as rows of "sheet:number" cells separated by
// spaces. Empty cells are "-". Logical groups are not kept.
func EncodeMap(m *tilemap.MapTile) ([]byte, error) {
	if !m.IsCreated() {
		return nil, tilemap.ErrNotCreated
	}
	f := mapFile{
		TileWidth:  m.TileWidth,
		TileHeight: m.TileHeight,
		Width:      m.InTileWidth,
		Height:     m.InTileHeight,
		Rows:       make([]string, 0, m.InTileHeight),
	}
	cells := make([]string, m.InTileWidth)
	for y := 0; y < m.InTileHeight; y++ {
		for x := 0; x < m.InTileWidth; x++ {
			cells[x] = emptyCell
			if t := m.Tile(x, y); t != nil {
				cells[x] = t.Ref.String()
			}
		}
		f.Rows = append(f.Rows, strings.Join(cells, " "))
	}
	return yaml.Marshal(f)
}

// DecodeMap reads a map written by EncodeMap.
func DecodeMap(file string, data []byte) (*tilemap.MapTile, error) {
	var f mapFile
	if err := decode(file, data, &f); err != nil {
		return nil, err
	}
	m := tilemap.New()
	if err := m.Create(f.TileWidth, f.TileHeight, f.Width, f.Height); err != nil {
		return nil, configError(file, "", err)
	}
	if len(f.Rows) != f.Height {
		return nil, configError(file, "rows", fmt.Errorf("%d rows for height %d: %w", len(f.Rows), f.Height, tilemap.ErrInvalidSize))
	}
	for y, row := range f.Rows {
		node := fmt.Sprintf("rows[%d]", y)
		cells := strings.Fields(row)
		if len(cells) != f.Width {
			return nil, configError(file, node, fmt.Errorf("%d cells for width %d: %w", len(cells), f.Width, tilemap.ErrInvalidSize))
		}
		for x, cell := range cells {
			if cell == emptyCell {
				continue
			}
			ref, err := parseRef(cell)
			if err != nil {
				return nil, configError(file, node, err)
			}
			if err := m.SetTile(m.CreateTile(ref, x, y)); err != nil {
				return nil, configError(file, node, err)
			}
		}
	}
	return m, nil
}

func parseRef(cell string) (tilemap.TileRef, error) {
	sheet, number, ok := strings.Cut(cell, ":")
	if !ok {
		return tilemap.TileRef{}, fmt.Errorf("cell %q: %w", cell, ErrMissingAttribute)
	}
	s, err := strconv.Atoi(sheet)
	if err != nil {
		return tilemap.TileRef{}, fmt.Errorf("cell %q: %w", cell, err)
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return tilemap.TileRef{}, fmt.Errorf("cell %q: %w", cell, err)
	}
	return tilemap.TileRef{Sheet: s, Number: n}, nil
}
