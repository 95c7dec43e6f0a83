package tilecore

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"
)

// SpriteSheet slices an image into a grid of equally sized frames.
type SpriteSheet struct {
	image         *ebiten.Image
	frameW        int
	frameH        int
	columns, rows int
}

// NewSpriteSheet wraps img as a sheet of frameW x frameH cells. Partial cells
// at the right and bottom edges are ignored.
func NewSpriteSheet(img *ebiten.Image, frameW, frameH int) (*SpriteSheet, error) {
	if img == nil {
		return nil, fmt.Errorf("sprite sheet: nil image")
	}
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("sprite sheet: invalid frame size %dx%d", frameW, frameH)
	}
	b := img.Bounds()
	return &SpriteSheet{
		image:   img,
		frameW:  frameW,
		frameH:  frameH,
		columns: b.Dx() / frameW,
		rows:    b.Dy() / frameH,
	}, nil
}

// LoadImage decodes an image file from fsys.
func LoadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadSpriteSheet loads an image from fsys and slices it into frames.
func LoadSpriteSheet(fsys fs.FS, path string, frameW, frameH int) (*SpriteSheet, error) {
	img, err := LoadImage(fsys, path)
	if err != nil {
		return nil, err
	}
	return NewSpriteSheet(img, frameW, frameH)
}

// Columns returns the number of whole frames per row.
func (s *SpriteSheet) Columns() int { return s.columns }

// Rows returns the number of whole frame rows.
func (s *SpriteSheet) Rows() int { return s.rows }

// FrameSize returns the size of one frame in pixels.
func (s *SpriteSheet) FrameSize() (w, h int) { return s.frameW, s.frameH }

// Frame returns the frame at (col, row), or nil outside the sheet.
func (s *SpriteSheet) Frame(col, row int) *ebiten.Image {
	if col < 0 || col >= s.columns || row < 0 || row >= s.rows {
		return nil
	}
	x, y := col*s.frameW, row*s.frameH
	r := image.Rect(x, y, x+s.frameW, y+s.frameH).Add(s.image.Bounds().Min)
	return s.image.SubImage(r).(*ebiten.Image)
}

// Row returns the first n frames of row. n <= 0 returns the whole row.
func (s *SpriteSheet) Row(row, n int) []*ebiten.Image {
	if n <= 0 || n > s.columns {
		n = s.columns
	}
	if row < 0 || row >= s.rows {
		return nil
	}
	frames := make([]*ebiten.Image, n)
	for i := range frames {
		frames[i] = s.Frame(i, row)
	}
	return frames
}

// WalkFrames returns n frames from each of the first four rows, indexed by
// Direction.SheetRow, ready for PlayerConfig.Frames.
func (s *SpriteSheet) WalkFrames(n int) [][]*ebiten.Image {
	out := make([][]*ebiten.Image, 0, 4)
	for row := 0; row < 4 && row < s.rows; row++ {
		out = append(out, s.Row(row, n))
	}
	return out
}

// LoadTilesFromSheet registers one tile per definition, carving each visual
// out of sheet. A definition pointing outside the sheet still registers its
// solidity, without an image, and is logged.
func LoadTilesFromSheet(set *TileSet, sheet *SpriteSheet, defs []TileDefinition) {
	for _, d := range defs {
		var img *ebiten.Image
		if sheet != nil {
			img = sheet.Frame(d.Column, d.Row)
		}
		if img == nil {
			Log.WithFields(logrus.Fields{
				"tile":   d.ID,
				"column": d.Column,
				"row":    d.Row,
			}).Warn("tile outside sheet, registered without image")
		}
		set.Register(d.ID, Tile{Image: img, Solid: d.Solid})
	}
	Log.WithField("tiles", len(defs)).Debug("tiles loaded from sheet")
}

// LoadSingleTile registers a tile whose visual is a whole image file. A load
// failure registers the tile without an image and returns the error.
func LoadSingleTile(set *TileSet, fsys fs.FS, id int, path string, solid bool) error {
	img, err := LoadImage(fsys, path)
	if err != nil {
		Log.WithError(err).WithField("tile", id).Error("tile image unusable")
	}
	set.Register(id, Tile{Image: img, Solid: solid})
	return err
}
