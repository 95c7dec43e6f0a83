package tilecore

import "github.com/hajimehoshi/ebiten/v2"

// EmptyTile is the cell value for "nothing here": not solid, not drawn.
const EmptyTile = -1

// TileDefinition describes how to carve one tile out of a sheet and whether
// it blocks movement. Definitions are static configuration and never change
// after world setup.
type TileDefinition struct {
	ID     int
	Column int // sheet column
	Row    int // sheet row
	Solid  bool
}

// Tile is a registered tile: its visual and its solidity. A nil Image draws
// nothing but does not affect Solid.
type Tile struct {
	Image *ebiten.Image
	Solid bool
}

// TileSet maps tile ids to tiles.
type TileSet struct {
	tiles map[int]Tile
}

// NewTileSet creates an empty tile set.
func NewTileSet() *TileSet {
	return &TileSet{tiles: make(map[int]Tile)}
}

// Register stores t under id, replacing any previous tile with that id.
func (s *TileSet) Register(id int, t Tile) {
	s.tiles[id] = t
}

// RegisterImage is shorthand for Register(id, Tile{Image: img, Solid: solid}).
func (s *TileSet) RegisterImage(id int, img *ebiten.Image, solid bool) {
	s.tiles[id] = Tile{Image: img, Solid: solid}
}

// Lookup returns the tile registered under id.
func (s *TileSet) Lookup(id int) (Tile, bool) {
	if s == nil {
		return Tile{}, false
	}
	t, ok := s.tiles[id]
	return t, ok
}

// Len returns the number of registered tiles.
func (s *TileSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.tiles)
}
