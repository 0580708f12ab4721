package tile

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-heist/internal/config"
)

func testPalette() *Palette {
	return NewPalette(64, config.DefaultTiles())
}

func TestPaletteGet(t *testing.T) {
	p := testPalette()

	wall, ok := p.Get(1)
	if !ok || !wall.Collision {
		t.Errorf("Get(1) = %+v, %v, expected solid wall", wall, ok)
	}
	if wall.Width != 64 || wall.Height != 64 {
		t.Errorf("wall size = %dx%d, expected 64x64", wall.Width, wall.Height)
	}
	if p.Solid(config.TileDeath) {
		t.Error("death tile should not block")
	}
	if p.Solid(Empty) || p.Solid(12345) {
		t.Error("empty and unknown ids should be free")
	}
}

func TestGridAtAndBounds(t *testing.T) {
	g := GridFrom([][]int{
		{1, 1, 1},
		{0, 0},
	})

	if g.Rows() != 2 || g.Cols() != 3 {
		t.Fatalf("size = %dx%d, expected 2x3", g.Rows(), g.Cols())
	}
	if id, ok := g.At(1, 2); !ok || id != Empty {
		t.Errorf("At(1,2) = %d, %v, expected padded 0", id, ok)
	}
	if _, ok := g.At(-1, 0); ok {
		t.Error("At(-1,0) should be out of bounds")
	}
	g.Set(5, 5, 1) // ignored
	g.Set(1, 0, 2)
	if id, _ := g.At(1, 0); id != 2 {
		t.Errorf("At(1,0) = %d, expected 2", id)
	}
}

func TestGridValidate(t *testing.T) {
	p := testPalette()

	if err := GridFrom([][]int{{0, 1, 99}, {9, 100, 2}}).Validate(p); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}

	err := GridFrom([][]int{{0, 42}}).Validate(p)
	if !errors.Is(err, ErrUnknownTile) {
		t.Errorf("Validate() = %v, expected ErrUnknownTile", err)
	}

	err = GridFrom([][]int{{MarkerBox.Code()}}).Validate(p)
	if !errors.Is(err, ErrUnknownTile) {
		t.Errorf("Validate() with unresolved marker = %v, expected ErrUnknownTile", err)
	}
}

func TestMarkerCodes(t *testing.T) {
	seen := map[int]bool{}
	for _, m := range markerOrder {
		code := m.Code()
		if code >= 0 {
			t.Errorf("%v.Code() = %d, expected negative", m, code)
		}
		if seen[code] {
			t.Errorf("duplicate code %d", code)
		}
		seen[code] = true

		back, ok := MarkerFromCode(code)
		if !ok || back != m {
			t.Errorf("MarkerFromCode(%d) = %q, expected %q", code, back, m)
		}
	}
	if Marker('z').Valid() {
		t.Error("'z' should not be a marker")
	}
	if _, ok := MarkerFromCode(1); ok {
		t.Error("positive codes are tile ids, not markers")
	}
}
