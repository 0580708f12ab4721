package world

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/enemy"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

// RoomInfo describes a room node of the world graph.
type RoomInfo struct {
	Row, Col     int
	Type         RoomType
	Index        int
	Open         bool
	TutorialText string
}

// Spawn places a marker on tile (X, Y).
type Spawn struct {
	Marker tile.Marker
	X, Y   int
}

// Layout is a parsed room: tile ids, possibly with negative marker codes, plus spawns.
type Layout struct {
	Grid   [][]int
	Spawns []Spawn
}

// LayoutSource provides the world graph and room layouts.
type LayoutSource interface {
	Rooms() []RoomInfo
	Start() (row, col int)
	Layout(row, col int) (Layout, error)
}

// populated is the result of turning a layout into live state.
type populated struct {
	grid           *tile.Grid
	objects        []*object.Object
	drones, dogs   []*enemy.Enemy
	startX, startY int
	hasStart       bool
}

// populate resolves marker codes, validates the grid and instantiates the
// room's objects and enemies.
func populate(cfg config.HeistConfig, palette *tile.Palette, l Layout) (*populated, error) {
	wc := cfg.World
	grid := tile.GridFrom(l.Grid)
	if grid.Rows() != wc.ScreenRows || grid.Cols() != wc.ScreenCols {
		return nil, fmt.Errorf("grid is %dx%d, expected %dx%d", grid.Rows(), grid.Cols(), wc.ScreenRows, wc.ScreenCols)
	}

	spawns := append([]Spawn(nil), l.Spawns...)
	var markerErr error
	grid.Each(func(r, c, id int) {
		if id >= 0 {
			return
		}
		m, ok := tile.MarkerFromCode(id)
		if !ok {
			if markerErr == nil {
				markerErr = fmt.Errorf("cell (%d,%d) = %d: %w", r, c, id, tile.ErrUnknownTile)
			}
			return
		}
		spawns = append(spawns, Spawn{Marker: m, X: c, Y: r})
		grid.Set(r, c, tile.Empty)
	})
	if markerErr != nil {
		return nil, markerErr
	}
	if err := grid.Validate(palette); err != nil {
		return nil, err
	}

	ts := wc.TileSize
	p := &populated{grid: grid}
	ladders := map[int][]int{}

	for _, s := range spawns {
		if !grid.InBounds(s.Y, s.X) {
			return nil, fmt.Errorf("spawn %s at (%d,%d) outside the room", s.Marker, s.X, s.Y)
		}
		switch s.Marker {
		case tile.MarkerDrone:
			p.drones = append(p.drones, enemy.New(enemy.Drone, cfg.Drone, cfg.Physics, ts,
				s.X*ts, (s.Y+1)*ts-cfg.Drone.Height))
		case tile.MarkerDog:
			p.dogs = append(p.dogs, enemy.New(enemy.Dog, cfg.Dog, cfg.Physics, ts,
				s.X*ts, (s.Y+1)*ts-cfg.Dog.Height))
		case tile.MarkerPlayer:
			p.startX, p.startY, p.hasStart = s.X*ts, (s.Y+1)*ts-cfg.Player.Height, true
		case tile.MarkerLadder:
			ladders[s.X] = append(ladders[s.X], s.Y)
		default:
			k, ok := object.KindFromMarker(s.Marker)
			if !ok {
				return nil, fmt.Errorf("spawn marker %q: %w", rune(s.Marker), tile.ErrUnknownTile)
			}
			p.objects = append(p.objects, object.Spawn(k, s.X, s.Y, ts, cfg.Interaction))
		}
	}

	p.objects = append(p.objects, mergeLadders(ladders, ts)...)
	return p, nil
}

// mergeLadders joins vertically adjacent ladder cells of a column into one ladder.
func mergeLadders(cells map[int][]int, ts int) []*object.Object {
	cols := make([]int, 0, len(cells))
	for c := range cells {
		cols = append(cols, c)
	}
	sort.Ints(cols)

	var out []*object.Object
	for _, c := range cols {
		rows := cells[c]
		sort.Ints(rows)
		start := rows[0]
		for i := 1; i <= len(rows); i++ {
			if i < len(rows) && rows[i] <= rows[i-1]+1 {
				continue
			}
			end := rows[i-1]
			id := fmt.Sprintf("%s@%d,%d", object.KindLadder, c, start)
			rect := core.NewRect(c*ts, start*ts, ts, (end-start+1)*ts)
			out = append(out, object.New(id, object.KindLadder, rect, 0))
			if i < len(rows) {
				start = rows[i]
			}
		}
	}
	return out
}
