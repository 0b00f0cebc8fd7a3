// Package transition classifies tiles sitting between two terrain groups,
// extracts the transition art of sample maps and resolves maps against it.
package transition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/tileforge/shared/tilemap"
)

var (
	ErrUnknownType       = errors.New("unknown transition type")
	ErrMissingTransition = errors.New("missing transition")
	ErrNoConvergence     = errors.New("transitions do not converge")
)

// Type is the shape of a transition tile. Each type is identified by the
// quarters of the tile that show the out group.
type Type int

const (
	UpLeft Type = iota
	Up
	UpRight
	Left
	Right
	DownLeft
	Down
	DownRight
	CornerUpLeft
	CornerUpRight
	CornerDownLeft
	CornerDownRight
	Center
)

// Quarter bits.
const (
	QuarterUpLeft uint8 = 1 << iota
	QuarterUpRight
	QuarterDownLeft
	QuarterDownRight
)

var typeNames = [...]string{
	UpLeft:          "UP_LEFT",
	Up:              "UP",
	UpRight:         "UP_RIGHT",
	Left:            "LEFT",
	Right:           "RIGHT",
	DownLeft:        "DOWN_LEFT",
	Down:            "DOWN",
	DownRight:       "DOWN_RIGHT",
	CornerUpLeft:    "CORNER_UP_LEFT",
	CornerUpRight:   "CORNER_UP_RIGHT",
	CornerDownLeft:  "CORNER_DOWN_LEFT",
	CornerDownRight: "CORNER_DOWN_RIGHT",
	Center:          "CENTER",
}

// An UP_LEFT tile is the up left corner of an out area: only its down right
// quarter shows the out group. Inner corners are the complements.
var typeQuarters = [...]uint8{
	UpLeft:          QuarterDownRight,
	Up:              QuarterDownLeft | QuarterDownRight,
	UpRight:         QuarterDownLeft,
	Left:            QuarterUpRight | QuarterDownRight,
	Right:           QuarterUpLeft | QuarterDownLeft,
	DownLeft:        QuarterUpRight,
	Down:            QuarterUpLeft | QuarterUpRight,
	DownRight:       QuarterUpLeft,
	CornerUpLeft:    QuarterUpRight | QuarterDownLeft | QuarterDownRight,
	CornerUpRight:   QuarterUpLeft | QuarterDownLeft | QuarterDownRight,
	CornerDownLeft:  QuarterUpLeft | QuarterUpRight | QuarterDownRight,
	CornerDownRight: QuarterUpLeft | QuarterUpRight | QuarterDownLeft,
	Center:          0,
}

const allQuarters = QuarterUpLeft | QuarterUpRight | QuarterDownLeft | QuarterDownRight

var (
	byQuarters   [16]Type
	validQuarter [16]bool
	// neighbour mask, one bit per tilemap.Orientation, to quarter mask
	neighbourQuarters [256]uint8
)

func init() {
	for t, q := range typeQuarters {
		byQuarters[q] = Type(t)
		validQuarter[q] = true
	}

	bit := func(o tilemap.Orientation) int { return 1 << uint(o) }
	quarterSides := []struct {
		q     uint8
		sides int
	}{
		{QuarterUpLeft, bit(tilemap.North) | bit(tilemap.West) | bit(tilemap.NorthWest)},
		{QuarterUpRight, bit(tilemap.North) | bit(tilemap.East) | bit(tilemap.NorthEast)},
		{QuarterDownLeft, bit(tilemap.South) | bit(tilemap.West) | bit(tilemap.SouthWest)},
		{QuarterDownRight, bit(tilemap.South) | bit(tilemap.East) | bit(tilemap.SouthEast)},
	}
	for mask := 0; mask < 256; mask++ {
		var q uint8
		for _, s := range quarterSides {
			if mask&s.sides != 0 {
				q |= s.q
			}
		}
		neighbourQuarters[mask] = q
	}
}

// Types lists every transition type.
func Types() []Type {
	types := make([]Type, 0, len(typeNames))
	for t := range typeNames {
		types = append(types, Type(t))
	}
	return types
}

func (t Type) String() string {
	if t < UpLeft || t > Center {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// Quarters returns the quarters showing the out group.
func (t Type) Quarters() uint8 {
	return typeQuarters[t]
}

// Symmetric returns the type seen from the other group: the same tile with
// in and out swapped.
func (t Type) Symmetric() Type {
	if t == Center {
		return Center
	}
	return byQuarters[allQuarters&^typeQuarters[t]]
}

// FromQuarters returns the type of a quarter mask. Opposite diagonals and a
// fully covered tile have no type.
func FromQuarters(q uint8) (Type, bool) {
	q &= allQuarters
	if !validQuarter[q] || q == allQuarters {
		return 0, false
	}
	return byQuarters[q], true
}

// Classify returns the type for a mask of the neighbours, indexed by
// tilemap.Orientation, that belong to the out group.
func Classify(neighbours uint8) (Type, bool) {
	return FromQuarters(neighbourQuarters[neighbours])
}

func ParseType(name string) (Type, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range typeNames {
		if n == upper {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("transition type %q: %w", name, ErrUnknownType)
}

// Transition is a tile shape between group In, the group of the cell, and
// group Out.
type Transition struct {
	Type Type
	In   string
	Out  string
}

func (t Transition) String() string {
	return fmt.Sprintf("%s %s->%s", t.Type, t.In, t.Out)
}

// Less orders by in, out then type.
func (t Transition) Less(o Transition) bool {
	if t.In != o.In {
		return t.In < o.In
	}
	if t.Out != o.Out {
		return t.Out < o.Out
	}
	return t.Type < o.Type
}

// Symmetric returns the same art seen from the out group.
func (t Transition) Symmetric() Transition {
	return Transition{Type: t.Type.Symmetric(), In: t.Out, Out: t.In}
}

// GroupTransition is one hop between two groups.
type GroupTransition struct {
	In  string
	Out string
}
