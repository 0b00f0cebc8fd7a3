package systems

import (
	"math"
	"testing"

	"github.com/automoto/tileforge/collision"
	"github.com/automoto/tileforge/components"
	"github.com/automoto/tileforge/shared/gamemath"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/systems/factory"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/yohamta/donburi"
)

var groundRef = tilemap.TileRef{Sheet: 0, Number: 1}

// newLevel builds a 4x4 map of 16px tiles whose third row is ground with a
// flat top, so the floor surface is at y = 32.
func newLevel(t *testing.T, world donburi.World) *tilemap.MapTile {
	t.Helper()
	groups := tilegroup.NewModel()
	groups.LoadGroups([]tilegroup.TileGroup{{Name: "ground", Tiles: []tilemap.TileRef{groundRef}}})

	m := tilemap.New()
	if err := m.Create(16, 16, 4, 4); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < 4; x++ {
		_ = m.SetTile(m.CreateTile(groundRef, x, 2))
	}

	top, err := collision.NewFormula("top",
		collision.Range{Output: collision.AxisY, MaxX: 16, MaxY: 16},
		collision.Linear{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	model := collision.NewModel(m, groups)
	if err := model.LoadCollisions([]*collision.Formula{top}, []*collision.Group{{Name: "ground", Formulas: []*collision.Formula{top}}}); err != nil {
		t.Fatal(err)
	}
	factory.CreateLevel(world, m, model)
	return m
}

func feet() *collision.Category {
	return &collision.Category{Name: "feet", Axis: collision.AxisY, OffsetX: 4, OffsetY: 16, Glue: true}
}

func TestFallingBoxLands(t *testing.T) {
	world := donburi.NewWorld()
	newLevel(t, world)
	e := factory.CreateCollidable(world, 4, 0, 8, 16, feet())

	for i := 0; i < 60; i++ {
		Update(world)
	}

	obj := components.Object.Get(e)
	physics := components.Physics.Get(e)
	if math.Abs(obj.Y-16) > gamemath.Epsilon {
		t.Fatalf("box at y=%v, want 16", obj.Y)
	}
	if !physics.OnGround || physics.SpeedY != 0 {
		t.Errorf("physics = %+v", physics)
	}
	res := components.TileCollidable.Get(e).Results["feet"]
	if res == nil || res.Tile.Y != 2 || res.Formula.Name != "top" {
		t.Errorf("feet result = %+v", res)
	}
}

func TestBoxWithoutCategoriesFalls(t *testing.T) {
	world := donburi.NewWorld()
	newLevel(t, world)
	e := factory.CreateCollidable(world, 4, 0, 8, 16)

	for i := 0; i < 10; i++ {
		Update(world)
	}
	if obj := components.Object.Get(e); obj.Y <= 16 {
		t.Fatalf("box stopped at y=%v without a probe", obj.Y)
	}
}

func TestNoLevelOnlyMoves(t *testing.T) {
	world := donburi.NewWorld()
	e := factory.CreateCollidable(world, 0, 0, 8, 8, feet())

	Update(world)

	obj := components.Object.Get(e)
	transform := components.Transform.Get(e)
	if transform.OldY != 0 || obj.Y <= 0 {
		t.Fatalf("old y=%v, y=%v", transform.OldY, obj.Y)
	}
	if res := components.TileCollidable.Get(e).Results["feet"]; res != nil {
		t.Errorf("result without level = %+v", res)
	}
}

func TestSpeedIsClamped(t *testing.T) {
	world := donburi.NewWorld()
	e := factory.CreateCollidable(world, 0, 0, 8, 8)
	physics := components.Physics.Get(e)
	physics.SpeedX = 100

	UpdatePhysics(world)

	if physics.SpeedX != physics.MaxSpeed {
		t.Fatalf("SpeedX = %v, want %v", physics.SpeedX, physics.MaxSpeed)
	}
	if obj := components.Object.Get(e); obj.X != physics.MaxSpeed {
		t.Errorf("x = %v", obj.X)
	}
}
