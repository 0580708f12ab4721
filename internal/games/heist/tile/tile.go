// Package tile holds the tile palette and the live room grid.
package tile

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-heist/internal/config"
)

// ErrUnknownTile is returned when a grid cell references an id missing from the palette.
var ErrUnknownTile = errors.New("unknown tile id")

// Empty is the id of a free cell.
const Empty = 0

// Tile is an immutable palette entry.
type Tile struct {
	ID        int
	Name      string
	Collision bool
	Width     int
	Height    int
}

// Palette maps tile ids to their properties.
type Palette struct {
	tiles map[int]Tile
	size  int
}

// NewPalette builds a palette of square tiles from config entries.
func NewPalette(size int, entries []config.TileConfig) *Palette {
	p := &Palette{
		tiles: make(map[int]Tile, len(entries)),
		size:  size,
	}
	for _, e := range entries {
		p.tiles[e.ID] = Tile{
			ID:        e.ID,
			Name:      e.Name,
			Collision: e.Collision,
			Width:     size,
			Height:    size,
		}
	}
	return p
}

// Get returns the tile with the given id.
func (p *Palette) Get(id int) (Tile, bool) {
	t, ok := p.tiles[id]
	return t, ok
}

// Solid reports whether id names a tile with collision. Empty and unknown ids are free.
func (p *Palette) Solid(id int) bool {
	return p.tiles[id].Collision
}

// Size returns the edge length of every tile in pixels.
func (p *Palette) Size() int {
	return p.size
}

// Grid is a rows x cols array of tile ids.
type Grid struct {
	cells [][]int
	rows  int
	cols  int
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	cells := make([][]int, rows)
	for r := range cells {
		cells[r] = make([]int, cols)
	}
	return &Grid{cells: cells, rows: rows, cols: cols}
}

// GridFrom copies rows into a new grid. Short rows are padded with Empty.
func GridFrom(rows [][]int) *Grid {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	g := NewGrid(len(rows), cols)
	for r, row := range rows {
		copy(g.cells[r], row)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) is a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the id at (row, col); ok is false outside the grid.
func (g *Grid) At(row, col int) (id int, ok bool) {
	if !g.InBounds(row, col) {
		return Empty, false
	}
	return g.cells[row][col], true
}

// Set writes an id. Writes outside the grid are ignored.
func (g *Grid) Set(row, col, id int) {
	if g.InBounds(row, col) {
		g.cells[row][col] = id
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(row, col, id int)) {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			fn(r, c, g.cells[r][c])
		}
	}
}

// Validate checks that every cell is Empty or a palette id.
func (g *Grid) Validate(p *Palette) error {
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			id := g.cells[r][c]
			if id == Empty {
				continue
			}
			if _, ok := p.Get(id); !ok {
				return fmt.Errorf("cell (%d,%d) = %d: %w", r, c, id, ErrUnknownTile)
			}
		}
	}
	return nil
}
