package leveldata

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/lafriks/go-tiled"
)

// LoadSampleMap parses a TMX file and returns the tiles of one layer. A tile
// refers to its tileset by index in the map and to its image by local id.
// It takes an fs.FS so callers can pass embed.FS or os.DirFS.
func LoadSampleMap(fsys fs.FS, tmxPath, layerName string) (*tilemap.MapTile, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	var layer *tiled.Layer
	for _, l := range levelMap.Layers {
		if l.Name == layerName {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("%s layer %q: %w", tmxPath, layerName, ErrMissingLayer)
	}

	m := tilemap.New()
	if err := m.Create(levelMap.TileWidth, levelMap.TileHeight, levelMap.Width, levelMap.Height); err != nil {
		return nil, fmt.Errorf("%s: %w", tmxPath, err)
	}
	m.LoadSheets(Sheets(levelMap))

	sheetOf := make(map[*tiled.Tileset]int, len(levelMap.Tilesets))
	for i, ts := range levelMap.Tilesets {
		sheetOf[ts] = i
	}

	for y := 0; y < levelMap.Height; y++ {
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}
			t := m.CreateTile(tilemap.TileRef{Sheet: sheetOf[tile.Tileset], Number: int(tile.ID)}, x, y)
			if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
				t.Group = tilesetTile.Properties.GetString(GroupProperty)
			}
			if err := m.SetTile(t); err != nil {
				return nil, fmt.Errorf("%s: %w", tmxPath, err)
			}
		}
	}
	return m, nil
}

// Sheets describes the tilesets of a map, indexed like TileRef.Sheet.
func Sheets(levelMap *tiled.Map) []tilemap.Sheet {
	sheets := make([]tilemap.Sheet, 0, len(levelMap.Tilesets))
	for i, ts := range levelMap.Tilesets {
		s := tilemap.Sheet{ID: i, TileWidth: ts.TileWidth, TileHeight: ts.TileHeight}
		if ts.Image != nil {
			s.Image = ts.Image.Source
		}
		sheets = append(sheets, s)
	}
	return sheets
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads the
// given layer of each, and returns maps keyed by stem name plus a sorted list
// of names.
func LoadAllLevels(fsys fs.FS, levelsDir, layerName string) (map[string]*tilemap.MapTile, []string, error) {
	pattern := path.Join(levelsDir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("%s: %w", levelsDir, ErrNoLevels)
	}

	levels := make(map[string]*tilemap.MapTile, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		m, err := LoadSampleMap(fsys, p, layerName)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		stem := strings.TrimSuffix(path.Base(p), ".tmx")
		levels[stem] = m
		names = append(names, stem)
	}

	sort.Strings(names)
	log.Printf("Loaded %d sample levels from %s", len(names), levelsDir)
	return levels, names, nil
}

// Ordered returns the maps of LoadAllLevels in name order.
func Ordered(levels map[string]*tilemap.MapTile, names []string) []*tilemap.MapTile {
	out := make([]*tilemap.MapTile, 0, len(names))
	for _, n := range names {
		out = append(out, levels[n])
	}
	return out
}
