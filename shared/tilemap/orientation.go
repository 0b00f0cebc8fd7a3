package tilemap

import (
	"fmt"
	"strings"
)

// Orientation is one of the eight neighbour directions of a tile.
type Orientation int

const (
	North Orientation = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Orientations lists all directions, clockwise from North.
var Orientations = []Orientation{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var orientationNames = [...]string{
	North:     "NORTH",
	NorthEast: "NORTH_EAST",
	East:      "EAST",
	SouthEast: "SOUTH_EAST",
	South:     "SOUTH",
	SouthWest: "SOUTH_WEST",
	West:      "WEST",
	NorthWest: "NORTH_WEST",
}

// y grows downwards
var orientationOffsets = [...][2]int{
	North:     {0, -1},
	NorthEast: {1, -1},
	East:      {1, 0},
	SouthEast: {1, 1},
	South:     {0, 1},
	SouthWest: {-1, 1},
	West:      {-1, 0},
	NorthWest: {-1, -1},
}

func (o Orientation) String() string {
	if o < North || o > NorthWest {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// Offset returns the tile delta towards the neighbour.
func (o Orientation) Offset() (dx, dy int) {
	off := orientationOffsets[o]
	return off[0], off[1]
}

// ParseOrientation reads a name such as "NORTH_EAST".
func ParseOrientation(name string) (Orientation, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range orientationNames {
		if n == upper {
			return Orientation(i), nil
		}
	}
	return 0, fmt.Errorf("orientation %q: %w", name, ErrUnknownOrientation)
}
