package tilecore

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
)

func TestParseLayer(t *testing.T) {
	src := "0,1,-1\n\n2, 3 ,4\n"
	l, err := ParseLayer(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseLayer: %v", err)
	}
	if l.Cols() != 3 || l.Rows() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", l.Cols(), l.Rows())
	}
	want := [][]int{{0, 1, -1}, {2, 3, 4}}
	for r, row := range want {
		for c, id := range row {
			if got := l.At(c, r); got != id {
				t.Errorf("At(%d,%d) = %d, want %d", c, r, got, id)
			}
		}
	}
}

func TestParseLayerErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrEmptyLayer},
		{"blank lines", "\n  \n", ErrEmptyLayer},
		{"bad token", "0,1\n0,x\n", ErrMalformedLayer},
		{"short row", "0,1,2\n0,1\n", ErrMalformedLayer},
		{"long row", "0\n0,1\n", ErrMalformedLayer},
		{"float token", "0,1.5\n", ErrMalformedLayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := ParseLayer(strings.NewReader(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if l != nil {
				t.Error("layer returned alongside error")
			}
		})
	}
}

func TestLayerAtOutOfRange(t *testing.T) {
	l, err := NewLayer([][]int{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		if got := l.At(p[0], p[1]); got != EmptyTile {
			t.Errorf("At(%d,%d) = %d, want EmptyTile", p[0], p[1], got)
		}
	}
	var nilLayer *Layer
	if got := nilLayer.At(0, 0); got != EmptyTile {
		t.Errorf("nil layer At = %d, want EmptyTile", got)
	}
}

func TestNewLayerRagged(t *testing.T) {
	if _, err := NewLayer([][]int{{1, 2}, {3}}); !errors.Is(err, ErrMalformedLayer) {
		t.Errorf("err = %v, want ErrMalformedLayer", err)
	}
	if _, err := NewLayer(nil); !errors.Is(err, ErrEmptyLayer) {
		t.Errorf("err = %v, want ErrEmptyLayer", err)
	}
}

func TestLoadLayer(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/platform.txt": {Data: []byte("-1,-1\n0,0\n")},
	}
	l, err := LoadLayer(fsys, "maps/platform.txt")
	if err != nil {
		t.Fatalf("LoadLayer: %v", err)
	}
	if l.At(0, 1) != 0 || l.At(0, 0) != EmptyTile {
		t.Errorf("unexpected cells: %d %d", l.At(0, 1), l.At(0, 0))
	}
	if _, err := LoadLayer(fsys, "maps/missing.txt"); err == nil {
		t.Error("missing file: want error")
	}
}
