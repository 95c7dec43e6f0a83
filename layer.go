package tilecore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strconv"
	"strings"
)

var (
	// ErrEmptyLayer is returned when a layer description has no rows.
	ErrEmptyLayer = errors.New("tilecore: empty layer")
	// ErrMalformedLayer is returned for non-numeric tokens and ragged rows.
	ErrMalformedLayer = errors.New("tilecore: malformed layer")
	// ErrLayerShape is returned when the background and platform layers
	// differ in size.
	ErrLayerShape = errors.New("tilecore: layer shape mismatch")
)

// Layer is one full grid of tile ids covering the map, stored row-major.
type Layer struct {
	cols, rows int
	cells      []int
}

// NewLayer builds a layer from rows of tile ids. Every row must have the same
// length as the first.
func NewLayer(rows [][]int) (*Layer, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyLayer
	}
	cols := len(rows[0])
	l := &Layer{cols: cols, rows: len(rows), cells: make([]int, 0, cols*len(rows))}
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedLayer, r, len(row), cols)
		}
		l.cells = append(l.cells, row...)
	}
	return l, nil
}

// ParseLayer reads a comma-separated layer description: one row per line,
// integer tile ids, -1 for empty cells. The column count comes from the first
// row and the row count from the number of non-empty lines. Any malformed
// token or short/long row fails the whole layer.
func ParseLayer(r io.Reader) (*Layer, error) {
	var (
		l    Layer
		line int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		tokens := strings.Split(text, ",")
		if l.rows == 0 {
			l.cols = len(tokens)
		} else if len(tokens) != l.cols {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrMalformedLayer, line, len(tokens), l.cols)
		}
		for col, tok := range tokens {
			id, err := strconv.Atoi(strings.TrimSpace(tok))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %q", ErrMalformedLayer, line, col, tok)
			}
			l.cells = append(l.cells, id)
		}
		l.rows++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read layer: %w", err)
	}
	if l.rows == 0 {
		return nil, ErrEmptyLayer
	}
	return &l, nil
}

// LoadLayer opens path in fsys and parses it with ParseLayer.
func LoadLayer(fsys fs.FS, path string) (*Layer, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open layer %s: %w", path, err)
	}
	defer f.Close()

	l, err := ParseLayer(f)
	if err != nil {
		return nil, fmt.Errorf("load layer %s: %w", path, err)
	}
	return l, nil
}

// Cols returns the layer width in tiles.
func (l *Layer) Cols() int { return l.cols }

// Rows returns the layer height in tiles.
func (l *Layer) Rows() int { return l.rows }

// At returns the tile id at (col, row), or EmptyTile outside the layer.
func (l *Layer) At(col, row int) int {
	if l == nil || col < 0 || col >= l.cols || row < 0 || row >= l.rows {
		return EmptyTile
	}
	return l.cells[row*l.cols+col]
}

// Set overwrites the tile id at (col, row). Out-of-range writes are ignored.
func (l *Layer) Set(col, row, id int) {
	if l == nil || col < 0 || col >= l.cols || row < 0 || row >= l.rows {
		return
	}
	l.cells[row*l.cols+col] = id
}

func (l *Layer) sameShape(o *Layer) bool {
	return l.cols == o.cols && l.rows == o.rows
}
