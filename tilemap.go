package tilecore

import (
	"errors"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// TileGrid is the tile-based world: a background layer and a platform layer
// of tile ids over the same rectangular grid. Only the platform layer takes
// part in collision. The grid is built during setup and is read-only while
// the simulation runs.
type TileGrid struct {
	tileSize   int
	tiles      *TileSet
	background *Layer
	platform   *Layer
}

// NewTileGrid creates an empty grid whose cells are tileSize pixels square.
// A nil tile set is replaced with an empty one.
func NewTileGrid(tileSize int, tiles *TileSet) *TileGrid {
	if tiles == nil {
		tiles = NewTileSet()
	}
	return &TileGrid{tileSize: tileSize, tiles: tiles}
}

// Tiles returns the tile set used to resolve cell ids.
func (g *TileGrid) Tiles() *TileSet {
	return g.tiles
}

// SetLayers installs already-built layers. Either may be nil. A background
// whose shape differs from the platform layer is rejected and dropped.
func (g *TileGrid) SetLayers(background, platform *Layer) error {
	g.platform = platform
	g.background = background
	if background != nil && platform != nil && !background.sameShape(platform) {
		g.background = nil
		return ErrLayerShape
	}
	return nil
}

// LoadMap loads both layers from fsys. Each layer loads independently: a layer
// that fails to load is logged, left unusable (not drawn, not solid) and its
// error is included in the returned error, while the other layer is kept.
func (g *TileGrid) LoadMap(fsys fs.FS, backgroundPath, platformPath string) error {
	var errs []error

	bg, err := LoadLayer(fsys, backgroundPath)
	if err != nil {
		Log.WithError(err).WithField("layer", backgroundPath).Error("background layer unusable")
		errs = append(errs, err)
	}
	pl, err := LoadLayer(fsys, platformPath)
	if err != nil {
		Log.WithError(err).WithField("layer", platformPath).Error("platform layer unusable; nothing inside the map is solid")
		errs = append(errs, err)
	}
	if err := g.SetLayers(bg, pl); err != nil {
		Log.WithError(err).WithField("layer", backgroundPath).Error("background layer dropped")
		errs = append(errs, err)
	}

	Log.WithFields(logrus.Fields{
		"cols": g.Cols(),
		"rows": g.Rows(),
	}).Info("multi-layer map loaded")
	return errors.Join(errs...)
}

// dims returns the layer that defines the grid dimensions.
func (g *TileGrid) dims() *Layer {
	if g.platform != nil {
		return g.platform
	}
	return g.background
}

// Cols returns the map width in tiles, or 0 when no layer is loaded.
func (g *TileGrid) Cols() int {
	if l := g.dims(); l != nil {
		return l.cols
	}
	return 0
}

// Rows returns the map height in tiles, or 0 when no layer is loaded.
func (g *TileGrid) Rows() int {
	if l := g.dims(); l != nil {
		return l.rows
	}
	return 0
}

// TileSize returns the edge length of one cell in pixels.
func (g *TileGrid) TileSize() int {
	return g.tileSize
}

// PixelWidth returns the map width in pixels.
func (g *TileGrid) PixelWidth() int {
	return g.Cols() * g.tileSize
}

// PixelHeight returns the map height in pixels.
func (g *TileGrid) PixelHeight() int {
	return g.Rows() * g.tileSize
}

// CellAt converts a world position in pixels to grid coordinates by integer
// division. Nothing is cached; call it again whenever the position changes.
func (g *TileGrid) CellAt(x, y float32) (col, row int) {
	if g.tileSize <= 0 {
		return 0, 0
	}
	return int(x) / g.tileSize, int(y) / g.tileSize
}

// Platform returns the platform layer, or nil if it failed to load.
func (g *TileGrid) Platform() *Layer {
	return g.platform
}

// Background returns the background layer, or nil if it failed to load.
func (g *TileGrid) Background() *Layer {
	return g.background
}

// IsSolid reports whether the cell at (col, row) blocks movement.
//
// Columns outside the map are walls and always solid. Rows above and below
// the map are open: an actor may jump above the top or fall out of the
// bottom. Empty cells (-1), unknown ids and a missing platform layer are
// never solid.
func (g *TileGrid) IsSolid(col, row int) bool {
	cols := g.Cols()
	if cols > 0 && (col < 0 || col >= cols) {
		return true
	}
	if row < 0 || row >= g.Rows() {
		return false
	}
	if g.platform == nil {
		return false
	}
	id := g.platform.At(col, row)
	if id == EmptyTile {
		return false
	}
	t, ok := g.tiles.Lookup(id)
	return ok && t.Solid
}

// Draw renders the background layer, then the platform layer on top.
// Empty cells and tiles without an image are skipped.
func (g *TileGrid) Draw(target *ebiten.Image) {
	g.drawLayer(target, g.background)
	g.drawLayer(target, g.platform)
}

func (g *TileGrid) drawLayer(target *ebiten.Image, l *Layer) {
	if target == nil {
		return
	}
	ts := float64(g.tileSize)
	var op ebiten.DrawImageOptions
	g.eachDrawable(l, func(col, row int, img *ebiten.Image) {
		b := img.Bounds()
		op.GeoM.Reset()
		op.GeoM.Scale(ts/float64(b.Dx()), ts/float64(b.Dy()))
		op.GeoM.Translate(float64(col)*ts, float64(row)*ts)
		target.DrawImage(img, &op)
	})
}

// eachDrawable calls fn in row-major order for every cell of l holding a
// registered tile with a non-empty image.
func (g *TileGrid) eachDrawable(l *Layer, fn func(col, row int, img *ebiten.Image)) {
	if l == nil {
		return
	}
	for row := 0; row < l.rows; row++ {
		for col := 0; col < l.cols; col++ {
			id := l.cells[row*l.cols+col]
			if id == EmptyTile {
				continue
			}
			t, ok := g.tiles.Lookup(id)
			if !ok || t.Image == nil {
				continue
			}
			if b := t.Image.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
				continue
			}
			fn(col, row, t.Image)
		}
	}
}
