// Package circuit handles path like groups, roads or rivers, whose art
// depends on which orthogonal neighbours continue the path.
package circuit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType    = errors.New("unknown circuit type")
	ErrMissingCircuit = errors.New("missing circuit")
)

// Type is the set of connected sides, one bit per side.
type Type uint8

const (
	SideNorth Type = 1 << iota
	SideEast
	SideSouth
	SideWest
)

// None is a path cell connected to nothing.
const None Type = 0

const allSides = SideNorth | SideEast | SideSouth | SideWest

var sideLetters = []struct {
	side   Type
	letter string
}{
	{SideNorth, "N"},
	{SideEast, "E"},
	{SideSouth, "S"},
	{SideWest, "W"},
}

// Types lists the sixteen circuit types.
func Types() []Type {
	types := make([]Type, 0, 16)
	for t := Type(0); t <= allSides; t++ {
		types = append(types, t)
	}
	return types
}

func (t Type) String() string {
	if t > allSides {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	if t == None {
		return "NONE"
	}
	var b strings.Builder
	for _, s := range sideLetters {
		if t&s.side != 0 {
			b.WriteString(s.letter)
		}
	}
	return b.String()
}

// Has reports whether the side is connected.
func (t Type) Has(side Type) bool {
	return t&side != 0
}

// ParseType reads names like "NONE", "NS" or "news"; letter order does not
// matter.
func ParseType(name string) (Type, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "NONE" {
		return None, nil
	}
	if upper == "" {
		return 0, fmt.Errorf("circuit type %q: %w", name, ErrUnknownType)
	}
	var t Type
	for _, r := range upper {
		found := false
		for _, s := range sideLetters {
			if string(r) == s.letter && t&s.side == 0 {
				t |= s.side
				found = true
			}
		}
		if !found {
			return 0, fmt.Errorf("circuit type %q: %w", name, ErrUnknownType)
		}
	}
	return t, nil
}

// Circuit is path art of group In drawn over terrain Out.
type Circuit struct {
	Type Type
	In   string
	Out  string
}

func (c Circuit) String() string {
	return fmt.Sprintf("%s %s/%s", c.Type, c.In, c.Out)
}

// Less orders by in, out then type.
func (c Circuit) Less(o Circuit) bool {
	if c.In != o.In {
		return c.In < o.In
	}
	if c.Out != o.Out {
		return c.Out < o.Out
	}
	return c.Type < o.Type
}
