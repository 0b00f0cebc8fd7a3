package tilemap

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotCreated         = errors.New("map not created")
	ErrAlreadyCreated     = errors.New("map already created")
	ErrInvalidSize        = errors.New("invalid map size")
	ErrInvalidArea        = errors.New("invalid tile area")
	ErrOutOfBounds        = errors.New("tile out of bounds")
	ErrUnknownSheet       = errors.New("unknown sheet")
	ErrUnknownOrientation = errors.New("unknown orientation")
)

// TileSetListener is called after a tile has been placed on the map.
type TileSetListener func(t *Tile)

// MapTile is a fixed size grid of tiles. Cells may be empty.
type MapTile struct {
	TileWidth    int // pixels
	TileHeight   int // pixels
	InTileWidth  int // tiles
	InTileHeight int // tiles

	tiles     [][]*Tile // [y][x]
	sheets    map[int]Sheet
	listeners []TileSetListener
}

func New() *MapTile {
	return &MapTile{sheets: make(map[int]Sheet)}
}

// Create allocates an empty grid. The size cannot change until Clear.
func (m *MapTile) Create(tileWidth, tileHeight, widthInTiles, heightInTiles int) error {
	if m.IsCreated() {
		return ErrAlreadyCreated
	}
	if tileWidth <= 0 || tileHeight <= 0 || widthInTiles <= 0 || heightInTiles <= 0 {
		return fmt.Errorf("%dx%d tiles of %dx%d: %w",
			widthInTiles, heightInTiles, tileWidth, tileHeight, ErrInvalidSize)
	}
	m.TileWidth, m.TileHeight = tileWidth, tileHeight
	m.InTileWidth, m.InTileHeight = widthInTiles, heightInTiles
	m.tiles = make([][]*Tile, heightInTiles)
	for y := range m.tiles {
		m.tiles[y] = make([]*Tile, widthInTiles)
	}
	return nil
}

// Clear drops every tile and the map size. Listeners and sheets are kept.
func (m *MapTile) Clear() {
	m.tiles = nil
	m.TileWidth, m.TileHeight = 0, 0
	m.InTileWidth, m.InTileHeight = 0, 0
}

func (m *MapTile) IsCreated() bool {
	return m.tiles != nil
}

// Width in pixels.
func (m *MapTile) Width() int { return m.InTileWidth * m.TileWidth }

// Height in pixels.
func (m *MapTile) Height() int { return m.InTileHeight * m.TileHeight }

// LoadSheets registers the sheets tiles may refer to.
func (m *MapTile) LoadSheets(sheets []Sheet) {
	m.sheets = make(map[int]Sheet, len(sheets))
	for _, s := range sheets {
		m.sheets[s.ID] = s
	}
}

// Sheet returns a registered sheet.
func (m *MapTile) Sheet(id int) (Sheet, bool) {
	s, ok := m.sheets[id]
	return s, ok
}

// HasSheets reports whether any sheet was registered. Maps without sheets
// accept any ref.
func (m *MapTile) HasSheets() bool {
	return len(m.sheets) > 0
}

func (m *MapTile) InBounds(tx, ty int) bool {
	return m.IsCreated() && tx >= 0 && ty >= 0 && tx < m.InTileWidth && ty < m.InTileHeight
}

// CreateTile builds a tile for this map without placing it.
func (m *MapTile) CreateTile(ref TileRef, tx, ty int) *Tile {
	return &Tile{Ref: ref, X: tx, Y: ty}
}

// SetTile places the tile at its own position, replacing any previous one,
// then notifies listeners.
func (m *MapTile) SetTile(t *Tile) error {
	if !m.IsCreated() {
		return ErrNotCreated
	}
	if !m.InBounds(t.X, t.Y) {
		return fmt.Errorf("tile %d,%d: %w", t.X, t.Y, ErrOutOfBounds)
	}
	if m.HasSheets() {
		if _, ok := m.sheets[t.Ref.Sheet]; !ok {
			return fmt.Errorf("tile %d,%d sheet %d: %w", t.X, t.Y, t.Ref.Sheet, ErrUnknownSheet)
		}
	}
	m.tiles[t.Y][t.X] = t
	for _, l := range m.listeners {
		l(t)
	}
	return nil
}

// Tile returns the tile at a tile position, nil when empty or outside.
func (m *MapTile) Tile(tx, ty int) *Tile {
	if !m.InBounds(tx, ty) {
		return nil
	}
	return m.tiles[ty][tx]
}

// TileAt returns the tile under a pixel position.
func (m *MapTile) TileAt(px, py float64) *Tile {
	if !m.IsCreated() {
		return nil
	}
	tx := int(math.Floor(px / float64(m.TileWidth)))
	ty := int(math.Floor(py / float64(m.TileHeight)))
	return m.Tile(tx, ty)
}

// Neighbor returns the tile next to t in the given direction.
func (m *MapTile) Neighbor(t *Tile, o Orientation) *Tile {
	dx, dy := o.Offset()
	return m.Tile(t.X+dx, t.Y+dy)
}

// Each visits every placed tile, row by row.
func (m *MapTile) Each(fn func(t *Tile)) {
	for _, row := range m.tiles {
		for _, t := range row {
			if t != nil {
				fn(t)
			}
		}
	}
}

// Count returns the number of placed tiles.
func (m *MapTile) Count() int {
	n := 0
	m.Each(func(*Tile) { n++ })
	return n
}

func (m *MapTile) AddListener(l TileSetListener) {
	m.listeners = append(m.listeners, l)
}
