package generator

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
)

// Preference is one step of map preparation. Lower priorities run first.
type Preference interface {
	Priority() int
	Apply(m *tilemap.MapTile, groups *tilegroup.Model, rng *rand.Rand) error
}

const (
	prioritySize = iota
	priorityFill
	priorityRegion
)

// PrefMapSize creates the map.
type PrefMapSize struct {
	TileWidth  int
	TileHeight int
	Width      int // tiles
	Height     int // tiles
}

func (p PrefMapSize) Priority() int { return prioritySize }

func (p PrefMapSize) Apply(m *tilemap.MapTile, _ *tilegroup.Model, _ *rand.Rand) error {
	return m.Create(p.TileWidth, p.TileHeight, p.Width, p.Height)
}

// PrefMapFill covers every cell with one tile.
type PrefMapFill struct {
	Tile tilemap.TileRef
}

func (p PrefMapFill) Priority() int { return priorityFill }

func (p PrefMapFill) Apply(m *tilemap.MapTile, groups *tilegroup.Model, _ *rand.Rand) error {
	if !m.IsCreated() {
		return ErrNoSize
	}
	for y := 0; y < m.InTileHeight; y++ {
		for x := 0; x < m.InTileWidth; x++ {
			if err := paint(m, groups, p.Tile, x, y); err != nil {
				return err
			}
		}
	}
	return nil
}

// PrefMapRegion paints Number square brushes of side Size at random places
// of Area. Brushes stay inside the area; a brush as large as the area
// covers it whole.
type PrefMapRegion struct {
	Tile   tilemap.TileRef
	Area   tilemap.TileArea
	Size   int
	Number int
}

func (p PrefMapRegion) Priority() int { return priorityRegion }

func (p PrefMapRegion) Validate() error {
	if err := p.Area.Validate(); err != nil {
		return err
	}
	if p.Size < 1 || p.Number < 0 {
		return fmt.Errorf("region brush %d x%d: %w", p.Size, p.Number, ErrInvalidRegion)
	}
	return nil
}

func (p PrefMapRegion) Apply(m *tilemap.MapTile, groups *tilegroup.Model, rng *rand.Rand) error {
	if !m.IsCreated() {
		return ErrNoSize
	}
	if err := p.Validate(); err != nil {
		return err
	}
	area, ok := p.Area.Clip(m.InTileWidth, m.InTileHeight)
	if !ok {
		return nil
	}
	for i := 0; i < p.Number; i++ {
		bx := area.X + rng.Intn(max(1, area.W-p.Size+1))
		by := area.Y + rng.Intn(max(1, area.H-p.Size+1))
		for y := by; y < by+p.Size; y++ {
			for x := bx; x < bx+p.Size; x++ {
				if !area.Contains(x, y) {
					continue
				}
				if err := paint(m, groups, p.Tile, x, y); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func paint(m *tilemap.MapTile, groups *tilegroup.Model, ref tilemap.TileRef, x, y int) error {
	t := m.CreateTile(ref, x, y)
	t.Group = groups.Group(ref)
	return m.SetTile(t)
}

// Parameters collects preferences and the seed of a generation.
type Parameters struct {
	Seed  int64
	prefs []Preference
}

func NewParameters() *Parameters {
	return &Parameters{Seed: config.Generator.Seed}
}

// Add appends a preference.
func (p *Parameters) Add(pref Preference) *Parameters {
	p.prefs = append(p.prefs, pref)
	return p
}

// Preferences returns preferences in run order: size, fill, then regions in
// the order they were added.
func (p *Parameters) Preferences() []Preference {
	prefs := append([]Preference(nil), p.prefs...)
	sort.SliceStable(prefs, func(i, j int) bool {
		return prefs[i].Priority() < prefs[j].Priority()
	})
	return prefs
}

// Apply runs every preference on m.
func (p *Parameters) Apply(m *tilemap.MapTile, groups *tilegroup.Model, rng *rand.Rand) error {
	for _, pref := range p.Preferences() {
		if err := pref.Apply(m, groups, rng); err != nil {
			return fmt.Errorf("apply %T: %w", pref, err)
		}
	}
	return nil
}
