// Package collision tests entity rectangles against the live tile grid.
//
// Every probe samples four evenly spaced points along each edge of the
// entity's hit-box, corners included, and maps each point to a grid cell by
// floor division. The result depends only on the grid and the rectangle.
package collision

import (
	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

// SamplesPerEdge is the number of probe points on each hit-box edge.
const SamplesPerEdge = 4

// Trigger is a set of special tiles touched by a probe.
type Trigger uint8

const (
	TriggerDeath Trigger = 1 << iota
	TriggerCheckpoint
	TriggerExtraction
)

// Has reports whether every flag in f is set.
func (t Trigger) Has(f Trigger) bool {
	return t&f == f
}

// Result is the outcome of one probe.
type Result struct {
	Blocked  bool
	Triggers Trigger
}

// HitBox is an inclusive pixel box.
type HitBox struct {
	Left, Top, Right, Bottom int
}

// Detector probes rectangles against a grid. It holds no per-entity state.
type Detector struct {
	grid     *tile.Grid
	palette  *tile.Palette
	inset    int
	oobSolid bool
}

// NewDetector creates a detector for the given grid.
// inset shrinks the hit-box on the left, right and top; the bottom stays flush.
func NewDetector(grid *tile.Grid, palette *tile.Palette, inset int, outOfBoundsSolid bool) *Detector {
	return &Detector{
		grid:     grid,
		palette:  palette,
		inset:    inset,
		oobSolid: outOfBoundsSolid,
	}
}

// TileSize returns the pixel size of a grid cell.
func (d *Detector) TileSize() int {
	return d.palette.Size()
}

// Grid returns the grid being probed.
func (d *Detector) Grid() *tile.Grid {
	return d.grid
}

// HitBox returns the inclusive collision box for r.
func (d *Detector) HitBox(r core.Rect) HitBox {
	return HitBox{
		Left:   r.X + d.inset,
		Top:    r.Y + d.inset,
		Right:  r.Right() - 1 - d.inset,
		Bottom: r.Bottom() - 1,
	}
}

// Probe samples the edges of r and reports blocking and special tiles.
func (d *Detector) Probe(r core.Rect) Result {
	var res Result
	hb := d.HitBox(r)

	for i := 0; i < SamplesPerEdge; i++ {
		x := lerp(hb.Left, hb.Right, i)
		y := lerp(hb.Top, hb.Bottom, i)
		d.sample(&res, x, hb.Top)
		d.sample(&res, x, hb.Bottom)
		d.sample(&res, hb.Left, y)
		d.sample(&res, hb.Right, y)
	}
	return res
}

// Test reports whether r moved to (x, y) would be blocked.
func (d *Detector) Test(r core.Rect, x, y int) bool {
	return d.Probe(r.At(x, y)).Blocked
}

// TileAt returns the tile id at a pixel; ok is false outside the grid.
func (d *Detector) TileAt(px, py int) (id int, ok bool) {
	size := d.palette.Size()
	return d.grid.At(floorDiv(py, size), floorDiv(px, size))
}

// SolidAt reports whether the pixel lies in a colliding tile.
func (d *Detector) SolidAt(px, py int) bool {
	id, ok := d.TileAt(px, py)
	if !ok {
		return d.oobSolid
	}
	return d.palette.Solid(id)
}

func (d *Detector) sample(res *Result, x, y int) {
	id, ok := d.TileAt(x, y)
	if !ok {
		if d.oobSolid {
			res.Blocked = true
		}
		return
	}
	if d.palette.Solid(id) {
		res.Blocked = true
	}
	switch id {
	case config.TileDeath:
		res.Triggers |= TriggerDeath
	case config.TileCheckpoint:
		res.Triggers |= TriggerCheckpoint
	case config.TileExtraction:
		res.Triggers |= TriggerExtraction
	}
}

func lerp(a, b, i int) int {
	return a + (b-a)*i/(SamplesPerEdge-1)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
