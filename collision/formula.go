// Package collision computes where moving entities hit tile surfaces.
//
// A tile's art belongs to a group; a collision group of the same name lists
// the formulas describing its surfaces. Each formula maps one axis to the
// other inside a range of the tile, e.g. a flat floor maps every x in
// [0, 16] to y = 16.
package collision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/automoto/tileforge/shared/gamemath"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/zyedidia/generic/mapset"
)

var (
	ErrUnknownAxis     = errors.New("unknown axis")
	ErrInvalidRange    = errors.New("invalid range")
	ErrUnknownFormula  = errors.New("unknown formula")
	ErrUnknownGroup    = errors.New("unknown collision group")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrMissingFunction = errors.New("missing function")
)

// Axis is X or Y.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func ParseAxis(name string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	}
	return 0, fmt.Errorf("axis %q: %w", name, ErrUnknownAxis)
}

// Function maps an input coordinate to an output coordinate, both relative
// to the tile origin.
type Function interface {
	Compute(input float64) float64
}

// Linear is a*input + b.
type Linear struct {
	A, B float64
}

func (l Linear) Compute(input float64) float64 {
	return gamemath.Linear(l.A, l.B, input)
}

// Range bounds a formula inside its tile. Output is the axis the function
// computes; the other axis is the input.
type Range struct {
	Output     Axis
	MinX, MaxX int
	MinY, MaxY int
}

func (r Range) Validate() error {
	if r.MinX > r.MaxX {
		return fmt.Errorf("x %d > %d: %w", r.MinX, r.MaxX, ErrInvalidRange)
	}
	if r.MinY > r.MaxY {
		return fmt.Errorf("y %d > %d: %w", r.MinY, r.MaxY, ErrInvalidRange)
	}
	if r.Output != AxisX && r.Output != AxisY {
		return fmt.Errorf("output %s: %w", r.Output, ErrUnknownAxis)
	}
	return nil
}

// InputBounds returns the bounds of the input axis.
func (r Range) InputBounds() (lo, hi float64) {
	if r.Output == AxisY {
		return float64(r.MinX), float64(r.MaxX)
	}
	return float64(r.MinY), float64(r.MaxY)
}

// OutputBounds returns the bounds of the output axis.
func (r Range) OutputBounds() (lo, hi float64) {
	if r.Output == AxisY {
		return float64(r.MinY), float64(r.MaxY)
	}
	return float64(r.MinX), float64(r.MaxX)
}

// Constraint restricts a formula to tiles whose neighbours belong, or do not
// belong, to given groups.
type Constraint struct {
	require map[tilemap.Orientation]mapset.Set[string]
	forbid  map[tilemap.Orientation]mapset.Set[string]
}

func NewConstraint() *Constraint {
	return &Constraint{
		require: make(map[tilemap.Orientation]mapset.Set[string]),
		forbid:  make(map[tilemap.Orientation]mapset.Set[string]),
	}
}

// Require adds groups allowed on the neighbour. Once set, any other group
// fails the check.
func (c *Constraint) Require(o tilemap.Orientation, groups ...string) *Constraint {
	addGroups(c.require, o, groups)
	return c
}

// Forbid adds groups the neighbour must not belong to.
func (c *Constraint) Forbid(o tilemap.Orientation, groups ...string) *Constraint {
	addGroups(c.forbid, o, groups)
	return c
}

func addGroups(m map[tilemap.Orientation]mapset.Set[string], o tilemap.Orientation, groups []string) {
	if len(groups) == 0 {
		return
	}
	set, ok := m[o]
	if !ok {
		set = mapset.New[string]()
		m[o] = set
	}
	for _, g := range groups {
		set.Put(g)
	}
}

// Check reports whether a neighbour of the given group satisfies the
// constraint in that direction. Directions without entries always pass.
func (c *Constraint) Check(o tilemap.Orientation, group string) bool {
	if c == nil {
		return true
	}
	if set, ok := c.forbid[o]; ok && set.Has(group) {
		return false
	}
	if set, ok := c.require[o]; ok && set.Size() > 0 && !set.Has(group) {
		return false
	}
	return true
}

// Required returns the sorted required groups in a direction.
func (c *Constraint) Required(o tilemap.Orientation) []string {
	return sortedSet(c.require[o])
}

// Forbidden returns the sorted forbidden groups in a direction.
func (c *Constraint) Forbidden(o tilemap.Orientation) []string {
	return sortedSet(c.forbid[o])
}

// IsEmpty reports a constraint without any entry.
func (c *Constraint) IsEmpty() bool {
	return c == nil || (len(c.require) == 0 && len(c.forbid) == 0)
}

// Formula is an immutable surface description shared by all tiles of the
// collision groups that list it.
type Formula struct {
	Name       string
	Range      Range
	Function   Function
	Constraint *Constraint
}

// NewFormula validates the range and returns a formula. A nil constraint is
// replaced by an empty one.
func NewFormula(name string, r Range, fn Function, c *Constraint) (*Formula, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("formula %s: %w", name, err)
	}
	if fn == nil {
		return nil, fmt.Errorf("formula %s: %w", name, ErrMissingFunction)
	}
	if c == nil {
		c = NewConstraint()
	}
	return &Formula{Name: name, Range: r, Function: fn, Constraint: c}, nil
}

// Surface evaluates the formula at an input coordinate relative to the tile.
// ok is false when the input is outside the range. The output is clamped to
// the range.
func (f *Formula) Surface(input float64) (output float64, ok bool) {
	lo, hi := f.Range.InputBounds()
	if input < lo || input > hi {
		return 0, false
	}
	olo, ohi := f.Range.OutputBounds()
	return gamemath.Clamp(f.Function.Compute(input), olo, ohi), true
}
