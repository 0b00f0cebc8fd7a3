package transition

import (
	"testing"

	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
)

var (
	waterRef  = tilemap.TileRef{Sheet: 0, Number: 0}
	groundRef = tilemap.TileRef{Sheet: 0, Number: 1}
	sandRef   = tilemap.TileRef{Sheet: 0, Number: 2}
)

// shoreRef gives every transition cell of a sample its own art.
func shoreRef(sample, x, y int) tilemap.TileRef {
	return tilemap.TileRef{Sheet: sample + 1, Number: y*16 + x}
}

func testGroups() *tilegroup.Model {
	var shore []tilemap.TileRef
	for sample := 0; sample < 3; sample++ {
		for y := 0; y < 16; y++ {
			for x := 0; x < 16; x++ {
				shore = append(shore, shoreRef(sample, x, y))
			}
		}
	}
	g := tilegroup.NewModel()
	g.LoadGroups([]tilegroup.TileGroup{
		{Name: "water", Tiles: []tilemap.TileRef{waterRef}},
		{Name: "sand", Tiles: []tilemap.TileRef{sandRef}},
		{Name: "ground", Tiles: []tilemap.TileRef{groundRef}},
		{Name: "shore", Type: tilegroup.TypeTransition, Tiles: shore},
	})
	return g
}

// buildMap reads w, s, g as terrain and t as transition art.
func buildMap(t *testing.T, sample int, rows ...string) *tilemap.MapTile {
	t.Helper()
	m := tilemap.New()
	if err := m.Create(16, 16, len(rows[0]), len(rows)); err != nil {
		t.Fatal(err)
	}
	for y, row := range rows {
		for x, r := range row {
			var ref tilemap.TileRef
			switch r {
			case 'w':
				ref = waterRef
			case 's':
				ref = sandRef
			case 'g':
				ref = groundRef
			case 't':
				ref = shoreRef(sample, x, y)
			default:
				t.Fatalf("unknown cell %q", r)
			}
			if err := m.SetTile(m.CreateTile(ref, x, y)); err != nil {
				t.Fatal(err)
			}
		}
	}
	return m
}

func groundPatch(t *testing.T) *tilemap.MapTile {
	return buildMap(t, 0,
		"wwwwwww",
		"wtttttw",
		"wtgggtw",
		"wtgggtw",
		"wtgggtw",
		"wtttttw",
		"wwwwwww",
	)
}

func waterPatch(t *testing.T) *tilemap.MapTile {
	return buildMap(t, 1,
		"ggggggg",
		"gtttttg",
		"gtwwwtg",
		"gtwwwtg",
		"gtwwwtg",
		"gtttttg",
		"ggggggg",
	)
}

func widePatch(t *testing.T) *tilemap.MapTile {
	return buildMap(t, 2,
		"wwwwwwww",
		"wttttttw",
		"wtggggtw",
		"wtggggtw",
		"wtggggtw",
		"wtggggtw",
		"wttttttw",
		"wwwwwwww",
	)
}
