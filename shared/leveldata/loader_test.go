package leveldata

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/automoto/tileforge/shared/tilemap"
)

const sampleTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="3" height="2" tilewidth="16" tileheight="16" infinite="0" nextlayerid="3" nextobjectid="1">
 <tileset firstgid="1" name="terrain" tilewidth="16" tileheight="16" tilecount="4" columns="4">
  <image source="terrain.png" width="64" height="16"/>
  <tile id="2">
   <properties>
    <property name="group" value="ground"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="decor" width="3" height="2">
  <data encoding="csv">
0,0,0,
0,0,0
</data>
 </layer>
 <layer id="2" name="tiles" width="3" height="2">
  <data encoding="csv">
1,2,3,
0,4,1
</data>
 </layer>
</map>
`

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"levels/b.tmx": {Data: []byte(sampleTMX)},
		"levels/a.tmx": {Data: []byte(sampleTMX)},
	}
}

func TestLoadSampleMap(t *testing.T) {
	m, err := LoadSampleMap(sampleFS(), "levels/a.tmx", DefaultLayer)
	if err != nil {
		t.Fatalf("LoadSampleMap: %v", err)
	}
	if m.InTileWidth != 3 || m.InTileHeight != 2 || m.TileWidth != 16 {
		t.Fatalf("size = %dx%d of %d", m.InTileWidth, m.InTileHeight, m.TileWidth)
	}
	if m.Count() != 5 {
		t.Errorf("Count = %d, want 5", m.Count())
	}
	if m.Tile(0, 1) != nil {
		t.Error("empty cell loaded")
	}
	if got := m.Tile(1, 1).Ref; got != (tilemap.TileRef{Sheet: 0, Number: 3}) {
		t.Errorf("ref = %v", got)
	}
	if got := m.Tile(2, 0).Group; got != "ground" {
		t.Errorf("group property = %q", got)
	}
	if got := m.Tile(0, 0).Group; got != "" {
		t.Errorf("group without property = %q", got)
	}
	if s, ok := m.Sheet(0); !ok || s.Image != "terrain.png" {
		t.Errorf("sheet = %+v, %v", s, ok)
	}
}

func TestLoadSampleMapMissingLayer(t *testing.T) {
	_, err := LoadSampleMap(sampleFS(), "levels/a.tmx", "walls")
	if !errors.Is(err, ErrMissingLayer) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadAllLevels(t *testing.T) {
	levels, names, err := LoadAllLevels(sampleFS(), "levels", DefaultLayer)
	if err != nil {
		t.Fatalf("LoadAllLevels: %v", err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("names = %v", names)
	}
	if ordered := Ordered(levels, names); ordered[0] != levels["a"] {
		t.Error("Ordered does not follow names")
	}

	if _, _, err := LoadAllLevels(sampleFS(), "empty", DefaultLayer); !errors.Is(err, ErrNoLevels) {
		t.Errorf("empty dir err = %v", err)
	}
}
