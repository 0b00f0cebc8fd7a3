package transition

import (
	"errors"
	"testing"

	"github.com/automoto/tileforge/shared/tilemap"
)

func TestSymmetric(t *testing.T) {
	pairs := map[Type]Type{
		Up:       Down,
		Left:     Right,
		UpLeft:   CornerDownRight,
		UpRight:  CornerDownLeft,
		DownLeft: CornerUpRight,
		Center:   Center,
	}
	for a, b := range pairs {
		if a.Symmetric() != b || b.Symmetric() != a {
			t.Errorf("%s <-> %s not symmetric", a, b)
		}
	}
	for _, typ := range Types() {
		if typ.Symmetric().Symmetric() != typ {
			t.Errorf("%s: double symmetric = %s", typ, typ.Symmetric().Symmetric())
		}
	}
}

func TestClassify(t *testing.T) {
	bit := func(os ...tilemap.Orientation) uint8 {
		var m uint8
		for _, o := range os {
			m |= 1 << uint(o)
		}
		return m
	}
	tests := []struct {
		name  string
		mask  uint8
		want  Type
		valid bool
	}{
		{"alone", 0, Center, true},
		{"south east corner", bit(tilemap.SouthEast), UpLeft, true},
		{"south west corner", bit(tilemap.SouthWest), UpRight, true},
		{"north east corner", bit(tilemap.NorthEast), DownLeft, true},
		{"north west corner", bit(tilemap.NorthWest), DownRight, true},
		{"south row", bit(tilemap.SouthWest, tilemap.South, tilemap.SouthEast), Up, true},
		{"north row", bit(tilemap.NorthWest, tilemap.North, tilemap.NorthEast), Down, true},
		{"east column", bit(tilemap.East), Left, true},
		{"west column", bit(tilemap.West, tilemap.NorthWest), Right, true},
		{"inner corner", bit(tilemap.North, tilemap.West), CornerDownRight, true},
		{"inner corner opposite", bit(tilemap.South, tilemap.East), CornerUpLeft, true},
		{"opposite diagonals", bit(tilemap.NorthEast, tilemap.SouthWest), 0, false},
		{"both sides", bit(tilemap.North, tilemap.South), 0, false},
		{"surrounded", 0xff, 0, false},
	}
	for _, tt := range tests {
		got, ok := Classify(tt.mask)
		if ok != tt.valid || (ok && got != tt.want) {
			t.Errorf("%s: Classify = %s, %v, want %s, %v", tt.name, got, ok, tt.want, tt.valid)
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range Types() {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%s) = %v, %v", typ, got, err)
		}
	}
	if _, err := ParseType("DIAGONAL"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("err = %v", err)
	}
}
