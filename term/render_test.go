package term

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/tilecore"
)

type box struct {
	pos  tilecore.Vector2D
	w, h int
}

func (b box) Position() tilecore.Vector2D { return b.pos }
func (b box) Size() (int, int)            { return b.w, b.h }

func testGrid(t *testing.T) *tilecore.TileGrid {
	t.Helper()
	tiles := tilecore.NewTileSet()
	tiles.Register(1, tilecore.Tile{Solid: true})
	tiles.Register(2, tilecore.Tile{})
	grid := tilecore.NewTileGrid(16, tiles)
	bg, err := tilecore.NewLayer([][]int{
		{2, -1, -1, -1},
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
	})
	if err != nil {
		t.Fatal(err)
	}
	fg, err := tilecore.NewLayer([][]int{
		{-1, -1, -1, -1},
		{-1, -1, -1, -1},
		{1, 1, 1, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := grid.SetLayers(bg, fg); err != nil {
		t.Fatal(err)
	}
	return grid
}

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(20, 5)
	t.Cleanup(screen.Fini)
	return screen
}

func cell(screen tcell.Screen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func TestRenderGrid(t *testing.T) {
	screen := simScreen(t)
	r := NewRenderer(screen, testGrid(t))
	r.Render()

	for col := 0; col < 4; col++ {
		if got := cell(screen, col, 2); got != RuneSolid {
			t.Errorf("floor cell %d = %q, want solid", col, got)
		}
	}
	if got := cell(screen, 0, 0); got != RuneBackground {
		t.Errorf("background cell = %q", got)
	}
	if got := cell(screen, 1, 0); got != RuneEmpty {
		t.Errorf("empty cell = %q", got)
	}
}

func TestRenderSprites(t *testing.T) {
	screen := simScreen(t)
	r := NewRenderer(screen, testGrid(t))
	// 20x20 at (8, 4) covers columns 0..1 and rows 0..1.
	r.AddSprite(box{tilecore.Vec(8, 4), 20, 20}, '@', tcell.StyleDefault)
	open := false
	r.AddSpriteIf(box{tilecore.Vec(48, 0), 16, 16}, '#', tcell.StyleDefault, func() bool { return !open })
	r.Render()

	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if got := cell(screen, p[0], p[1]); got != '@' {
			t.Errorf("cell %v = %q, want @", p, got)
		}
	}
	if got := cell(screen, 2, 0); got == '@' {
		t.Error("sprite drawn past its box")
	}
	if got := cell(screen, 3, 0); got != '#' {
		t.Errorf("closed door cell = %q", got)
	}

	open = true
	r.Render()
	if got := cell(screen, 3, 0); got == '#' {
		t.Error("open door still drawn")
	}
}

func TestRenderStatus(t *testing.T) {
	screen := simScreen(t)
	r := NewRenderer(screen, testGrid(t))
	r.SetStatus(func() string { return "hi" })
	r.Render()
	if cell(screen, 0, 3) != 'h' || cell(screen, 1, 3) != 'i' {
		t.Error("status line not drawn below the map")
	}
}

func TestPlayerStatus(t *testing.T) {
	p := tilecore.NewPlayer(tilecore.PlayerConfig{Position: tilecore.Vec(10, 20)})
	p.SetElement(tilecore.ElementAir)
	s := PlayerStatus(p, true)
	if !strings.Contains(s, "element=air") || !strings.HasSuffix(s, "[PAUSED]") {
		t.Errorf("status = %q", s)
	}
}
