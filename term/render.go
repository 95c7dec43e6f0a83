package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/tilecore"
)

// Default glyphs.
const (
	RuneSolid      = '█'
	RuneBackground = '░'
	RuneEmpty      = ' '
)

type sprite struct {
	obj   tilecore.Positioned
	r     rune
	style tcell.Style
	show  func() bool
}

// Renderer draws a tile grid and actors onto a tcell screen. Each cell covers
// one tile; actors fill every cell their box overlaps.
type Renderer struct {
	screen  tcell.Screen
	grid    *tilecore.TileGrid
	sprites []sprite
	status  func() string

	SolidStyle      tcell.Style
	BackgroundStyle tcell.Style
}

// NewRenderer creates a renderer for grid on screen.
func NewRenderer(screen tcell.Screen, grid *tilecore.TileGrid) *Renderer {
	return &Renderer{
		screen:          screen,
		grid:            grid,
		SolidStyle:      tcell.StyleDefault.Foreground(tcell.ColorGreen),
		BackgroundStyle: tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

// AddSprite draws obj with r. Sprites are drawn in the order added.
func (r *Renderer) AddSprite(obj tilecore.Positioned, ch rune, style tcell.Style) {
	r.sprites = append(r.sprites, sprite{obj: obj, r: ch, style: style})
}

// AddSpriteIf draws obj only while show returns true, e.g. a closed door.
func (r *Renderer) AddSpriteIf(obj tilecore.Positioned, ch rune, style tcell.Style, show func() bool) {
	r.sprites = append(r.sprites, sprite{obj: obj, r: ch, style: style, show: show})
}

// SetStatus sets a function whose result is printed on the row below the map.
func (r *Renderer) SetStatus(f func() string) { r.status = f }

// Render draws one frame and shows it.
func (r *Renderer) Render() {
	r.screen.Clear()
	r.drawGrid()
	for _, s := range r.sprites {
		if s.show != nil && !s.show() {
			continue
		}
		r.drawBox(s.obj, s.r, s.style)
	}
	if r.status != nil {
		r.drawText(0, r.grid.Rows(), r.status(), tcell.StyleDefault)
	}
	r.screen.Show()
}

func (r *Renderer) drawGrid() {
	bg, fg := r.grid.Background(), r.grid.Platform()
	for row := 0; row < r.grid.Rows(); row++ {
		for col := 0; col < r.grid.Cols(); col++ {
			switch {
			case r.grid.IsSolid(col, row):
				r.screen.SetContent(col, row, RuneSolid, nil, r.SolidStyle)
			case fg.At(col, row) != tilecore.EmptyTile, bg.At(col, row) != tilecore.EmptyTile:
				r.screen.SetContent(col, row, RuneBackground, nil, r.BackgroundStyle)
			}
		}
	}
}

// drawBox fills the cells overlapped by obj. Boxes partly off the map are
// clipped to the screen.
func (r *Renderer) drawBox(obj tilecore.Positioned, ch rune, style tcell.Style) {
	ts := float32(r.grid.TileSize())
	pos := obj.Position()
	w, h := obj.Size()
	c0, r0 := int(pos.X/ts), int(pos.Y/ts)
	c1, r1 := int((pos.X+float32(w)-1)/ts), int((pos.Y+float32(h)-1)/ts)

	sw, sh := r.screen.Size()
	for row := max(r0, 0); row <= r1 && row < sh; row++ {
		for col := max(c0, 0); col <= c1 && col < sw; col++ {
			r.screen.SetContent(col, row, ch, nil, style)
		}
	}
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for i, ch := range []rune(s) {
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}

// PlayerStatus formats the usual status line for p.
func PlayerStatus(p *tilecore.Player, paused bool) string {
	pos := p.Position()
	s := fmt.Sprintf("x=%4.0f y=%4.0f element=%-5s", pos.X, pos.Y, p.Element())
	if p.OnGround() {
		s += " grounded"
	}
	if paused {
		s += "  [PAUSED]"
	}
	return s
}
