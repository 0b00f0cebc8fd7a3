package preview

import (
	"github.com/automoto/tileforge/shared/tilemap"
	"github.com/gdamore/tcell/v2"
)

// View scrolls a map across the screen.
type View struct {
	renderer   *Renderer
	m          *tilemap.MapTile
	offX, offY int
}

func NewView(r *Renderer, m *tilemap.MapTile) *View {
	return &View{renderer: r, m: m}
}

// Offset returns the tile drawn at the top left corner.
func (v *View) Offset() (int, int) { return v.offX, v.offY }

// Scroll moves the view, keeping it over the map.
func (v *View) Scroll(dx, dy int) {
	v.offX = max(0, min(v.offX+dx, v.m.InTileWidth-1))
	v.offY = max(0, min(v.offY+dy, v.m.InTileHeight-1))
}

func (v *View) Draw() {
	v.renderer.Draw(v.m, v.offX, v.offY)
}

// HandleKey applies a key press. It returns false when the view should close.
func (v *View) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		v.Scroll(0, -1)
	case tcell.KeyDown:
		v.Scroll(0, 1)
	case tcell.KeyLeft:
		v.Scroll(-1, 0)
	case tcell.KeyRight:
		v.Scroll(1, 0)
	case tcell.KeyEscape:
		return false
	}
	switch ev.Rune() {
	case 'k':
		v.Scroll(0, -1)
	case 'j':
		v.Scroll(0, 1)
	case 'h':
		v.Scroll(-1, 0)
	case 'l':
		v.Scroll(1, 0)
	case 'q', 'Q':
		return false
	}
	return true
}

// Run draws the map and blocks on the screen until the user quits.
func (v *View) Run() {
	screen := v.renderer.screen
	for {
		v.Draw()
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return
			}
		}
	}
}
