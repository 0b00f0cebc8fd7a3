package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/automoto/tileforge/circuit"
	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/generator"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/automoto/tileforge/transition"
)

const groupsYAML = `
groups:
  - name: water
    tiles:
      - {sheet: 0, number: 0}
  - name: ground
    tiles:
      - {sheet: 0, number: 1}
      - {sheet: 0, number: 2}
  - name: shore
    type: transition
    tiles:
      - {sheet: 1, number: 0}
`

const formulasYAML = `
formulas:
  - name: floor
    range: {output: Y, minX: 0, maxX: 16, minY: 0, maxY: 16}
    function: {type: linear, a: 0, b: 0}
    constraints:
      - orientation: NORTH
        forbid: [ground]
  - name: ramp
    range: {output: Y, minX: 0, maxX: 16, minY: 0, maxY: 16}
    function: {a: -1, b: 16}
`

const collisionsYAML = `
collisions:
  - group: ground
    formulas: [floor]
  - group: shore
    formulas: [floor, ramp]
`

func TestDecodeGroups(t *testing.T) {
	groups, err := DecodeGroups(GroupsFile, []byte(groupsYAML))
	if err != nil {
		t.Fatalf("DecodeGroups: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}
	if groups[2].Type != tilegroup.TypeTransition || groups[0].Type != tilegroup.TypeNone {
		t.Errorf("types = %v, %v", groups[0].Type, groups[2].Type)
	}
	if len(groups[1].Tiles) != 2 || groups[1].Tiles[1] != (tilemap.TileRef{Sheet: 0, Number: 2}) {
		t.Errorf("ground tiles = %v", groups[1].Tiles)
	}

	data, err := EncodeGroups(groups)
	if err != nil {
		t.Fatal(err)
	}
	again, err := DecodeGroups(GroupsFile, data)
	if err != nil {
		t.Fatal(err)
	}
	for i := range groups {
		if again[i].Name != groups[i].Name || again[i].Type != groups[i].Type || len(again[i].Tiles) != len(groups[i].Tiles) {
			t.Errorf("group %d = %+v, want %+v", i, again[i], groups[i])
		}
	}
}

func TestConfigErrors(t *testing.T) {
	cases := []struct {
		name string
		file string
		data string
		want error
	}{
		{"group without name", GroupsFile, "groups:\n  - tiles: []\n", ErrMissingAttribute},
		{"bad group type", GroupsFile, "groups:\n  - name: x\n    type: lava\n", ErrUnknownType},
		{"bad axis", FormulasFile, "formulas:\n  - name: f\n    range: {output: Z}\n    function: {a: 0, b: 0}\n", ErrUnknownAxis},
		{"missing function", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y}\n", ErrMissingAttribute},
		{"bad function", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y}\n    function: {type: sine}\n", ErrUnknownType},
		{"bad range", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y, minX: 4, maxX: 2, minY: 0, maxY: 16}\n    function: {a: 0, b: 0}\n", ErrInvalidRange},
		{"bad orientation", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y, minX: 0, maxX: 16, minY: 0, maxY: 16}\n    function: {a: 0, b: 0}\n    constraints:\n      - orientation: UP\n", ErrUnknownOrientation},
		{"range without maxX", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y, minX: 0, minY: 0, maxY: 16}\n    function: {a: 0, b: 0}\n", ErrMissingAttribute},
		{"misspelled range key", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y, minX: 0, maxX: 16, minY: 0, maxy: 16}\n    function: {a: 0, b: 0}\n", ErrMalformed},
		{"range without output", FormulasFile, "formulas:\n  - name: f\n    range: {minX: 0, maxX: 16, minY: 0, maxY: 16}\n    function: {a: 0, b: 0}\n", ErrMissingAttribute},
		{"function without coefficients", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y, minX: 0, maxX: 16, minY: 0, maxY: 16}\n    function: {}\n", ErrMissingAttribute},
		{"function without b", FormulasFile, "formulas:\n  - name: f\n    range: {output: Y, minX: 0, maxX: 16, minY: 0, maxY: 16}\n    function: {a: 1}\n", ErrMissingAttribute},
		{"tile without number", GroupsFile, "groups:\n  - name: x\n    tiles: [{sheet: 1}]\n", ErrMissingAttribute},
		{"tile without sheet", GroupsFile, "groups:\n  - name: x\n    tiles: [{number: 1}]\n", ErrMissingAttribute},
		{"unknown group key", GroupsFile, "groups:\n  - name: x\n    tile: []\n", ErrMalformed},
		{"transition tile without sheet", TransitionsFile, "transitions:\n  - {type: UP, in: a, out: b, tiles: [{number: 0}]}\n", ErrMissingAttribute},
		{"sheet without id", SheetsFile, "sheets:\n  - {image: terrain.png, tilewidth: 16, tileheight: 16}\n", ErrMissingAttribute},
		{"category without offset", CategoriesFile, "categories:\n  - {name: feet, axis: Y, x: 8}\n", ErrMissingAttribute},
		{"region without number", GeneratorFile, "regions:\n  - tile: {sheet: 0, number: 1}\n    area: {x: 0, y: 0, w: 2, h: 2}\n    size: 1\n", ErrMissingAttribute},
		{"area without h", GeneratorFile, "regions:\n  - tile: {sheet: 0, number: 1}\n    area: {x: 0, y: 0, w: 2}\n    size: 1\n    number: 1\n", ErrMissingAttribute},
		{"size without height", GeneratorFile, "size: {width: 4}\n", ErrMissingAttribute},
		{"half tile size", GeneratorFile, "size: {tilewidth: 16, width: 4, height: 4}\n", ErrMissingAttribute},
		{"fill without number", GeneratorFile, "fill: {sheet: 0}\n", ErrMissingAttribute},
		{"unknown parameter", GeneratorFile, "sead: 4\n", ErrMalformed},
		{"bad transition", TransitionsFile, "transitions:\n  - {type: SIDEWAYS, in: a, out: b, tiles: [{sheet: 0, number: 0}]}\n", ErrUnknownType},
		{"transition without tiles", TransitionsFile, "transitions:\n  - {type: UP, in: a, out: b}\n", ErrMissingAttribute},
		{"bad circuit", CircuitsFile, "circuits:\n  - {type: NNE, in: a, out: b, tiles: [{sheet: 0, number: 0}]}\n", ErrUnknownType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var err error
			switch c.file {
			case GroupsFile:
				_, err = DecodeGroups(c.file, []byte(c.data))
			case FormulasFile:
				_, err = DecodeFormulas(c.file, []byte(c.data))
			case TransitionsFile:
				_, err = DecodeTransitions(c.file, []byte(c.data))
			case CircuitsFile:
				_, err = DecodeCircuits(c.file, []byte(c.data))
			case SheetsFile:
				_, err = DecodeSheets(c.file, []byte(c.data))
			case CategoriesFile:
				_, err = DecodeCategories(c.file, []byte(c.data))
			case GeneratorFile:
				_, err = DecodeParameters(c.file, []byte(c.data))
			}
			if !errors.Is(err, c.want) {
				t.Fatalf("err = %v, want %v", err, c.want)
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) || cfgErr.File != c.file {
				t.Fatalf("err = %#v, want ConfigError in %s", err, c.file)
			}
		})
	}
}

func TestFormulas(t *testing.T) {
	formulas, err := DecodeFormulas(FormulasFile, []byte(formulasYAML))
	if err != nil {
		t.Fatalf("DecodeFormulas: %v", err)
	}
	if len(formulas) != 2 {
		t.Fatalf("formulas = %d", len(formulas))
	}
	floor, ramp := formulas[0], formulas[1]
	if floor.Constraint.Check(tilemap.North, "ground") || !floor.Constraint.Check(tilemap.North, "water") {
		t.Error("floor constraint not read")
	}
	if !ramp.Constraint.IsEmpty() {
		t.Error("ramp has a constraint")
	}
	if got := ramp.Function.Compute(4); got != 12 {
		t.Errorf("ramp(4) = %v, want 12", got)
	}

	data, err := EncodeFormulas(formulas)
	if err != nil {
		t.Fatal(err)
	}
	again, err := DecodeFormulas(FormulasFile, data)
	if err != nil {
		t.Fatalf("decode encoded formulas: %v", err)
	}
	if again[0].Range != floor.Range || again[1].Function != ramp.Function {
		t.Errorf("formulas changed: %+v %+v", again[0], again[1])
	}
	if got := again[0].Constraint.Forbidden(tilemap.North); len(got) != 1 || got[0] != "ground" {
		t.Errorf("forbidden = %v", got)
	}
}

func TestCollisionsAndCategories(t *testing.T) {
	formulas, err := DecodeFormulas(FormulasFile, []byte(formulasYAML))
	if err != nil {
		t.Fatal(err)
	}
	groups, err := DecodeCollisions(CollisionsFile, []byte(collisionsYAML), formulas)
	if err != nil {
		t.Fatalf("DecodeCollisions: %v", err)
	}
	if len(groups) != 2 || len(groups[1].Formulas) != 2 || groups[1].Formulas[1] != formulas[1] {
		t.Fatalf("groups = %+v", groups)
	}

	_, err = DecodeCollisions(CollisionsFile, []byte("collisions:\n  - group: ground\n    formulas: [cliff]\n"), formulas)
	if !errors.Is(err, ErrUnknownFormula) {
		t.Fatalf("unknown formula err = %v", err)
	}

	cats, err := DecodeCategories(CategoriesFile, []byte(`
categories:
  - {name: feet, axis: Y, x: 8, y: 16}
  - {name: side, axis: X, x: 0, y: 8, glue: false, groups: [ground]}
  - {name: ghost, axis: Y, x: 0, y: 0, groups: [lava]}
`))
	if err != nil {
		t.Fatalf("DecodeCategories: %v", err)
	}
	if !cats[0].Glue || cats[1].Glue || cats[0].OffsetX != 8 || cats[1].Axis != collision.AxisX {
		t.Errorf("categories = %+v %+v", cats[0], cats[1])
	}

	m := tilemap.New()
	_ = m.Create(16, 16, 2, 2)
	model := collision.NewModel(m, tilegroup.NewModel())
	if err := model.LoadCollisions(formulas, groups); err != nil {
		t.Fatal(err)
	}
	if err := ResolveCategories(CategoriesFile, cats[:2], model); err != nil {
		t.Errorf("ResolveCategories: %v", err)
	}
	if err := ResolveCategories(CategoriesFile, cats, model); !errors.Is(err, ErrUnknownGroup) {
		t.Errorf("unknown group err = %v", err)
	}
}

func sampleTransitions() transition.Catalog {
	c := make(transition.Catalog)
	c.Add(transition.Transition{Type: transition.Up, In: "water", Out: "ground"}, tilemap.TileRef{Sheet: 1, Number: 1})
	c.Add(transition.Transition{Type: transition.Up, In: "water", Out: "ground"}, tilemap.TileRef{Sheet: 1, Number: 0})
	c.Add(transition.Transition{Type: transition.CornerDownRight, In: "ground", Out: "water"}, tilemap.TileRef{Sheet: 1, Number: 2})
	return c
}

func TestTransitionsAndCircuits(t *testing.T) {
	data, err := EncodeTransitions(sampleTransitions())
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeTransitions(TransitionsFile, data)
	if err != nil {
		t.Fatalf("DecodeTransitions: %v\n%s", err, data)
	}
	if len(got) != 2 {
		t.Fatalf("transitions = %d, want 2", len(got))
	}
	refs := got.Refs(transition.Transition{Type: transition.Up, In: "water", Out: "ground"})
	if len(refs) != 2 || refs[0].Number != 0 {
		t.Errorf("refs = %v", refs)
	}

	circuits := make(circuit.Catalog)
	circuits.Add(circuit.Circuit{Type: circuit.SideEast | circuit.SideSouth, In: "road", Out: "ground"}, tilemap.TileRef{Sheet: 2, Number: 4})
	if data, err = EncodeCircuits(circuits); err != nil {
		t.Fatal(err)
	}
	gotCircuits, err := DecodeCircuits(CircuitsFile, data)
	if err != nil {
		t.Fatalf("DecodeCircuits: %v\n%s", err, data)
	}
	if refs := gotCircuits.Refs(circuit.Circuit{Type: circuit.SideEast | circuit.SideSouth, In: "road", Out: "ground"}); len(refs) != 1 {
		t.Errorf("circuit refs = %v", refs)
	}
}

func TestParameters(t *testing.T) {
	params, err := DecodeParameters(GeneratorFile, []byte(`
seed: 42
size: {tilewidth: 16, tileheight: 16, width: 32, height: 24}
fill: {sheet: 0, number: 0}
regions:
  - tile: {sheet: 0, number: 1}
    area: {x: 4, y: 4, w: 10, h: 10}
    size: 3
    number: 5
`))
	if err != nil {
		t.Fatalf("DecodeParameters: %v", err)
	}
	if params.Seed != 42 {
		t.Errorf("seed = %d", params.Seed)
	}
	if n := len(params.Preferences()); n != 3 {
		t.Fatalf("preferences = %d, want 3", n)
	}

	data, err := EncodeParameters(params)
	if err != nil {
		t.Fatal(err)
	}
	again, err := DecodeParameters(GeneratorFile, data)
	if err != nil {
		t.Fatal(err)
	}
	if again.Seed != 42 || len(again.Preferences()) != 3 {
		t.Errorf("round trip lost preferences: %s", data)
	}

	defaults, err := DecodeParameters(GeneratorFile, []byte("size: {width: 4, height: 4}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if size, ok := defaults.Preferences()[0].(generator.PrefMapSize); !ok || size.TileWidth != config.C.TileWidth {
		t.Errorf("default size = %+v", defaults.Preferences()[0])
	}

	_, err = DecodeParameters(GeneratorFile, []byte("regions:\n  - tile: {sheet: 0, number: 1}\n    area: {x: 0, y: 0, w: 0, h: 2}\n    size: 1\n    number: 1\n"))
	if !errors.Is(err, tilemap.ErrInvalidArea) {
		t.Errorf("empty area err = %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	fsys := fstest.MapFS{
		GroupsFile:     {Data: []byte(groupsYAML)},
		FormulasFile:   {Data: []byte(formulasYAML)},
		CollisionsFile: {Data: []byte(collisionsYAML)},
		CategoriesFile: {Data: []byte("categories:\n  - {name: feet, axis: Y, x: 8, y: 16, groups: [ground]}\n")},
		SheetsFile:     {Data: []byte("sheets:\n  - {id: 0, image: terrain.png, tilewidth: 16, tileheight: 16}\n")},
	}
	set, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(set.Groups) != 3 || len(set.Formulas) != 2 || len(set.Collisions) != 2 || len(set.Sheets) != 1 {
		t.Fatalf("set = %+v", set)
	}
	if set.Transitions != nil || set.Parameters != nil {
		t.Error("missing files produced values")
	}
	if _, ok := set.Category("feet"); !ok {
		t.Error("category feet not found")
	}

	m := tilemap.New()
	_ = m.Create(16, 16, 2, 2)
	if _, err := set.CollisionModel(m); err != nil {
		t.Errorf("CollisionModel: %v", err)
	}

	if _, err := Load(fstest.MapFS{}); err == nil {
		t.Error("Load without groups succeeded")
	}
}

type memStore map[string][]byte

func (s memStore) LoadItem(key string) ([]byte, error) { return s[key], nil }

func (s memStore) SaveItem(key string, data []byte) error {
	s[key] = data
	return nil
}

func cacheLevel(ref tilemap.TileRef) *tilemap.MapTile {
	m := tilemap.New()
	_ = m.Create(16, 16, 2, 1)
	_ = m.SetTile(m.CreateTile(tilemap.TileRef{Sheet: 0, Number: 0}, 0, 0))
	_ = m.SetTile(m.CreateTile(ref, 1, 0))
	return m
}

func TestCache(t *testing.T) {
	groups, err := DecodeGroups(GroupsFile, []byte(groupsYAML))
	if err != nil {
		t.Fatal(err)
	}
	model := tilegroup.NewModel()
	model.LoadGroups(groups)

	levels := []*tilemap.MapTile{cacheLevel(tilemap.TileRef{Sheet: 0, Number: 1})}
	fp := Fingerprint(levels, model)
	if again := Fingerprint([]*tilemap.MapTile{cacheLevel(tilemap.TileRef{Sheet: 0, Number: 1})}, model); again != fp {
		t.Fatalf("same content, fingerprints %s and %s", fp, again)
	}

	store := memStore{}
	cache := NewCache(store)
	got, err := cache.LoadTransitions(fp)
	if err != nil || got != nil {
		t.Fatalf("empty cache = %v, %v", got, err)
	}
	if err := cache.SaveTransitions(fp, sampleTransitions()); err != nil {
		t.Fatal(err)
	}
	got, err = cache.LoadTransitions(fp)
	if err != nil || len(got) != 2 {
		t.Fatalf("cached = %v, %v", got, err)
	}
	if Key("transitions", fp) == Key("circuits", fp) {
		t.Error("kinds share a key")
	}

	edited := []*tilemap.MapTile{cacheLevel(tilemap.TileRef{Sheet: 0, Number: 2})}
	marked := []*tilemap.MapTile{cacheLevel(tilemap.TileRef{Sheet: 0, Number: 1})}
	marked[0].Tile(1, 0).Group = "water"
	regrouped := tilegroup.NewModel()
	regrouped.LoadGroups(groups)
	regrouped.ChangeGroup(tilemap.TileRef{Sheet: 0, Number: 1}, "water")

	for name, other := range map[string]string{
		"edited tile":   Fingerprint(edited, model),
		"marked group":  Fingerprint(marked, model),
		"edited groups": Fingerprint(levels, regrouped),
	} {
		if other == fp {
			t.Errorf("%s keeps the fingerprint", name)
			continue
		}
		if cached, err := cache.LoadTransitions(other); err != nil || cached != nil {
			t.Errorf("%s hit the cache: %v, %v", name, cached, err)
		}
	}

	var disabled *Cache
	if c, err := disabled.LoadCircuits(fp); c != nil || err != nil {
		t.Errorf("nil cache = %v, %v", c, err)
	}
	if err := disabled.SaveCircuits(fp, make(circuit.Catalog)); err != nil {
		t.Errorf("nil cache save: %v", err)
	}
}

func TestMapRoundTrip(t *testing.T) {
	m := tilemap.New()
	_ = m.Create(16, 8, 3, 2)
	_ = m.SetTile(m.CreateTile(tilemap.TileRef{Sheet: 1, Number: 12}, 0, 0))
	_ = m.SetTile(m.CreateTile(tilemap.TileRef{Sheet: 0, Number: 3}, 2, 1))

	data, err := EncodeMap(m)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeMap("map.yaml", data)
	if err != nil {
		t.Fatalf("DecodeMap: %v\n%s", err, data)
	}
	if got.TileHeight != 8 || got.InTileWidth != 3 || got.Count() != 2 {
		t.Fatalf("map = %+v, %d tiles", got, got.Count())
	}
	if tile := got.Tile(0, 0); tile == nil || tile.Ref != (tilemap.TileRef{Sheet: 1, Number: 12}) {
		t.Errorf("tile 0,0 = %v", tile)
	}

	bad := "tilewidth: 16\ntileheight: 16\nwidth: 2\nheight: 1\nrows:\n  - \"0:1\"\n"
	if _, err := DecodeMap("map.yaml", []byte(bad)); !errors.Is(err, tilemap.ErrInvalidSize) {
		t.Errorf("short row err = %v", err)
	}
}

func TestSaveCollisions(t *testing.T) {
	formulas, err := DecodeFormulas(FormulasFile, []byte(formulasYAML))
	if err != nil {
		t.Fatal(err)
	}
	groups, err := DecodeCollisions(CollisionsFile, []byte(collisionsYAML), formulas)
	if err != nil {
		t.Fatal(err)
	}
	m := tilemap.New()
	_ = m.Create(16, 16, 2, 2)
	model := collision.NewModel(m, tilegroup.NewModel())
	if err := model.LoadCollisions(formulas, groups); err != nil {
		t.Fatal(err)
	}
	cats := []*collision.Category{
		{Name: "feet", Axis: collision.AxisY, OffsetX: 8, OffsetY: 16, Glue: true, Groups: []string{"ground"}},
		{Name: "side", Axis: collision.AxisX, OffsetY: 8},
	}

	dir := t.TempDir()
	if err := SaveCollisions(dir, model, cats); err != nil {
		t.Fatalf("SaveCollisions: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, CategoriesFile))
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeCategories(CategoriesFile, data)
	if err != nil {
		t.Fatalf("decode saved categories: %v\n%s", err, data)
	}
	if len(got) != 2 || got[0].OffsetY != 16 || !got[0].Glue || got[1].Glue || got[1].Axis != collision.AxisX {
		t.Errorf("categories = %+v %+v", got[0], got[1])
	}
	if _, err := os.Stat(filepath.Join(dir, CollisionsFile)); err != nil {
		t.Errorf("collisions not written: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	set, err := Load(fstest.MapFS{
		GroupsFile:     {Data: []byte(groupsYAML)},
		FormulasFile:   {Data: []byte(formulasYAML)},
		CollisionsFile: {Data: []byte(collisionsYAML)},
		CategoriesFile: {Data: []byte("categories:\n  - {name: feet, axis: Y, x: 8, y: 16, glue: false, groups: [shore]}\n")},
		SheetsFile:     {Data: []byte("sheets:\n  - {id: 1, image: shore.png, tilewidth: 16, tileheight: 8}\n")},
		GeneratorFile:  {Data: []byte("seed: 7\nfill: {sheet: 0, number: 0}\n")},
	})
	if err != nil {
		t.Fatal(err)
	}
	set.Transitions = sampleTransitions()
	set.Circuits = make(circuit.Catalog)

	dir := t.TempDir()
	if err := set.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := Load(os.DirFS(dir))
	if err != nil {
		t.Fatalf("Load saved set: %v", err)
	}
	if len(again.Groups) != 3 || len(again.Formulas) != 2 || len(again.Collisions) != 2 || len(again.Transitions) != 2 {
		t.Fatalf("set = %+v", again)
	}
	if s := again.Sheets; len(s) != 1 || s[0] != (tilemap.Sheet{ID: 1, Image: "shore.png", TileWidth: 16, TileHeight: 8}) {
		t.Errorf("sheets = %+v", s)
	}
	feet, ok := again.Category("feet")
	if !ok || feet.Glue || feet.OffsetX != 8 || len(feet.Groups) != 1 || feet.Groups[0] != "shore" {
		t.Errorf("feet = %+v", feet)
	}
	if again.Parameters == nil || again.Parameters.Seed != 7 {
		t.Errorf("parameters = %+v", again.Parameters)
	}
}
