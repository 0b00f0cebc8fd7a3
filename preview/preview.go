// Package preview draws tile maps on a terminal, one cell per tile: terrain
// as a glyph of its group, transition and circuit art as line glyphs of
// their shape.
package preview

import (
	"fmt"

	"github.com/automoto/tileforge/circuit"
	cfg "github.com/automoto/tileforge/config"
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/automoto/tileforge/tilegroup"
	"github.com/automoto/tileforge/transition"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var terrainGlyphs = []rune{'~', '.', ',', '"', '^', '#', '%', '&', '*', '+'}

var groupColors = []tcell.Color{
	tcell.ColorBlue,
	tcell.ColorGreen,
	tcell.ColorYellow,
	tcell.ColorOlive,
	tcell.ColorGray,
	tcell.ColorMaroon,
	tcell.ColorTeal,
	tcell.ColorPurple,
}

var transitionGlyphs = map[transition.Type]rune{
	transition.UpLeft:          '┌',
	transition.Up:              '─',
	transition.UpRight:         '┐',
	transition.Left:            '│',
	transition.Right:           '│',
	transition.DownLeft:        '└',
	transition.Down:            '─',
	transition.DownRight:       '┘',
	transition.CornerUpLeft:    '┘',
	transition.CornerUpRight:   '└',
	transition.CornerDownLeft:  '┐',
	transition.CornerDownRight: '┌',
}

var circuitGlyphs = map[circuit.Type]rune{
	circuit.None:                                                                '○',
	circuit.SideNorth:                                                           '╵',
	circuit.SideEast:                                                            '╶',
	circuit.SideSouth:                                                           '╷',
	circuit.SideWest:                                                            '╴',
	circuit.SideNorth | circuit.SideSouth:                                       '║',
	circuit.SideEast | circuit.SideWest:                                         '═',
	circuit.SideEast | circuit.SideSouth:                                        '╔',
	circuit.SideSouth | circuit.SideWest:                                        '╗',
	circuit.SideNorth | circuit.SideEast:                                        '╚',
	circuit.SideNorth | circuit.SideWest:                                        '╝',
	circuit.SideNorth | circuit.SideEast | circuit.SideSouth:                    '╠',
	circuit.SideNorth | circuit.SideWest | circuit.SideSouth:                    '╣',
	circuit.SideEast | circuit.SideSouth | circuit.SideWest:                     '╦',
	circuit.SideNorth | circuit.SideEast | circuit.SideWest:                     '╩',
	circuit.SideNorth | circuit.SideEast | circuit.SideSouth | circuit.SideWest: '╬',
}

// Renderer draws maps onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	groups *tilegroup.Model

	transitions map[tilemap.TileRef]transition.Type
	circuits    map[tilemap.TileRef]circuit.Type
}

// NewRenderer creates a Renderer. Catalogs may be nil; art they do not
// describe is drawn as terrain.
func NewRenderer(screen tcell.Screen, groups *tilegroup.Model, transitions transition.Catalog, circuits circuit.Catalog) *Renderer {
	r := &Renderer{
		screen:      screen,
		groups:      groups,
		transitions: make(map[tilemap.TileRef]transition.Type),
		circuits:    make(map[tilemap.TileRef]circuit.Type),
	}
	for _, tr := range transitions.Transitions() {
		if tr.Type == transition.Center {
			continue
		}
		for _, ref := range transitions.Refs(tr) {
			if _, ok := r.transitions[ref]; !ok {
				r.transitions[ref] = tr.Type
			}
		}
	}
	for _, c := range circuits.Circuits() {
		for _, ref := range circuits.Refs(c) {
			if _, ok := r.circuits[ref]; !ok {
				r.circuits[ref] = c.Type
			}
		}
	}
	return r
}

// Glyph returns the rune and style of a tile.
func (r *Renderer) Glyph(t *tilemap.Tile) (rune, tcell.Style) {
	group := t.Group
	if group == "" {
		group = r.groups.Group(t.Ref)
	}
	style := tcell.StyleDefault.Foreground(r.color(group)).Background(tcell.ColorBlack)

	if typ, ok := r.circuits[t.Ref]; ok {
		return circuitGlyphs[typ], style.Foreground(tcell.ColorWhite)
	}
	if typ, ok := r.transitions[t.Ref]; ok {
		return transitionGlyphs[typ], style
	}
	return r.terrainGlyph(group), style
}

func (r *Renderer) terrainGlyph(group string) rune {
	i := r.groups.Priority(group)
	if i < 0 {
		return '?'
	}
	return terrainGlyphs[i%len(terrainGlyphs)]
}

func (r *Renderer) color(group string) tcell.Color {
	i := r.groups.Priority(group)
	if i < 0 {
		return tcell.ColorRed
	}
	return groupColors[i%len(groupColors)]
}

// Draw renders the part of m that fits the screen, starting at tile
// offX, offY, and the legend below it.
func (r *Renderer) Draw(m *tilemap.MapTile, offX, offY int) {
	r.screen.Clear()
	w, h := r.screen.Size()
	viewH := h - cfg.Preview.LegendRows
	for sy := 0; sy < viewH; sy++ {
		for sx := 0; sx < w; sx++ {
			t := m.Tile(sx+offX, sy+offY)
			if t == nil {
				continue
			}
			glyph, style := r.Glyph(t)
			r.screen.SetContent(sx, sy, glyph, nil, style)
		}
	}
	if cfg.Preview.LegendRows > 0 && viewH >= 0 {
		r.drawLegend(viewH)
	}
	r.screen.Show()
}

// drawLegend lists terrain groups with their glyph, wrapping to the next
// legend row when the screen is too narrow.
func (r *Renderer) drawLegend(y int) {
	w, h := r.screen.Size()
	x := 0
	for _, g := range r.groups.Groups() {
		if !r.groups.IsTerrain(g) {
			continue
		}
		entry := fmt.Sprintf("%c %s  ", r.terrainGlyph(g), g)
		width := runewidth.StringWidth(entry)
		if x > 0 && x+width > w {
			x, y = 0, y+1
		}
		if y >= h {
			return
		}
		r.drawText(x, y, entry, tcell.StyleDefault.Foreground(r.color(g)))
		x += width
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += runewidth.RuneWidth(ch)
	}
}
