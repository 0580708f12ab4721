package world

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/enemy"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

const ts = 64

type cell struct{ r, c, id int }

func mark(r, c int, m tile.Marker) cell { return cell{r, c, m.Code()} }

// floorRoom is a 12x16 grid with solid rows 10 and 11 and open sides.
func floorRoom(extra ...cell) [][]int {
	g := make([][]int, 12)
	for r := range g {
		g[r] = make([]int, 16)
	}
	for c := 0; c < 16; c++ {
		g[10][c], g[11][c] = 1, 1
	}
	for _, e := range extra {
		g[e.r][e.c] = e.id
	}
	return g
}

func emptyRoom(extra ...cell) [][]int {
	g := make([][]int, 12)
	for r := range g {
		g[r] = make([]int, 16)
	}
	for _, e := range extra {
		g[e.r][e.c] = e.id
	}
	return g
}

type mapSource struct {
	infos   []RoomInfo
	layouts map[[2]int]Layout
	start   [2]int
	broken  map[[2]int]bool
}

func newSource(startRow, startCol int) *mapSource {
	return &mapSource{
		layouts: map[[2]int]Layout{},
		start:   [2]int{startRow, startCol},
		broken:  map[[2]int]bool{},
	}
}

func (m *mapSource) add(row, col int, open bool, grid [][]int, spawns ...Spawn) *mapSource {
	m.infos = append(m.infos, RoomInfo{Row: row, Col: col, Type: RoomLevel, Index: len(m.infos), Open: open})
	m.layouts[[2]int{row, col}] = Layout{Grid: grid, Spawns: spawns}
	return m
}

func (m *mapSource) Rooms() []RoomInfo { return m.infos }
func (m *mapSource) Start() (int, int) { return m.start[0], m.start[1] }

func (m *mapSource) Layout(row, col int) (Layout, error) {
	if m.broken[[2]int{row, col}] {
		return Layout{}, fmt.Errorf("layout file for (%d,%d) unreadable", row, col)
	}
	l, ok := m.layouts[[2]int{row, col}]
	if !ok {
		return Layout{}, fmt.Errorf("no layout for (%d,%d)", row, col)
	}
	return l, nil
}

func newSim(t *testing.T, src LayoutSource) *Simulation {
	t.Helper()
	s, err := NewSimulation(config.DefaultHeistConfig(), src, Options{Seed: 1})
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	return s
}

func (s *Simulation) steps(n int, actions ...core.Action) {
	for i := 0; i < n; i++ {
		s.Step(core.FrameOf(actions...))
	}
}

func TestNewWorldRejectsBadGraph(t *testing.T) {
	if _, err := NewWorld([]RoomInfo{{Row: 5, Col: 0}}); err == nil {
		t.Error("NewWorld() should reject a room outside the 5x8 grid")
	}
	if _, err := NewWorld([]RoomInfo{{Row: 1, Col: 1}, {Row: 1, Col: 1}}); err == nil {
		t.Error("NewWorld() should reject duplicate rooms")
	}
}

func TestWorldMoves(t *testing.T) {
	w, err := NewWorld([]RoomInfo{
		{Row: 2, Col: 2, Open: true},
		{Row: 2, Col: 3, Open: true},
		{Row: 1, Col: 2, Open: false},
		{Row: 3, Col: 2, Open: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.SetPosition(2, 2); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		move    func() bool
		want    bool
		row     int
		col     int
		visited bool
	}{
		{"left into nothing", w.MoveLeft, false, 2, 2, false},
		{"up into closed room", w.MoveUp, false, 2, 2, false},
		{"right into open room", w.MoveRight, true, 2, 3, true},
		{"right off the world", w.MoveRight, false, 2, 3, false},
		{"back left", w.MoveLeft, true, 2, 2, true},
		{"down", w.MoveDown, true, 3, 2, true},
	}

	for _, tt := range tests {
		before := w.Current()
		got := tt.move()
		if got != tt.want {
			t.Errorf("%s: moved = %v, expected %v", tt.name, got, tt.want)
		}
		row, col := w.Position()
		if row != tt.row || col != tt.col {
			t.Errorf("%s: position = (%d,%d), expected (%d,%d)", tt.name, row, col, tt.row, tt.col)
		}
		if tt.visited && !before.IsVisited {
			t.Errorf("%s: departing room should be marked visited", tt.name)
		}
	}

	if err := w.Move(0, 1); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Move() = %v, expected ErrInvalidTransition", err)
	}
}

func TestPopulateResolvesMarkers(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	palette := tile.NewPalette(ts, cfg.Tiles)
	grid := floorRoom(
		mark(9, 2, tile.MarkerBox),
		mark(9, 5, tile.MarkerDrone),
		mark(9, 8, tile.MarkerPlayer),
		mark(5, 3, tile.MarkerLadder), mark(6, 3, tile.MarkerLadder),
		mark(7, 3, tile.MarkerLadder), mark(8, 3, tile.MarkerLadder), mark(9, 3, tile.MarkerLadder),
	)

	p, err := populate(cfg, palette, Layout{
		Grid:   grid,
		Spawns: []Spawn{{Marker: tile.MarkerDog, X: 12, Y: 9}, {Marker: tile.MarkerMetalLocker, X: 14, Y: 9}},
	})
	if err != nil {
		t.Fatalf("populate() error = %v", err)
	}

	p.grid.Each(func(r, c, id int) {
		if id < 0 {
			t.Errorf("cell (%d,%d) still holds marker code %d", r, c, id)
		}
	})
	if len(p.drones) != 1 || len(p.dogs) != 1 {
		t.Errorf("drones %d, dogs %d, expected 1 each", len(p.drones), len(p.dogs))
	}
	if p.drones[0].Y != 10*ts-cfg.Drone.Height {
		t.Errorf("drone Y = %d, expected standing on row 10", p.drones[0].Y)
	}
	if !p.hasStart || p.startX != 8*ts || p.startY != 10*ts-cfg.Player.Height {
		t.Errorf("start = (%d,%d,%v), expected (%d,%d)", p.startX, p.startY, p.hasStart, 8*ts, 10*ts-cfg.Player.Height)
	}

	var ladders, lockers int
	for _, o := range p.objects {
		switch o.Kind {
		case object.KindLadder:
			ladders++
			if o.Rect != core.NewRect(3*ts, 5*ts, ts, 5*ts) {
				t.Errorf("ladder rect = %+v, expected one merged 5-tile ladder", o.Rect)
			}
		case object.KindMetalLocker:
			lockers++
			if o.Rect.Bottom() != 10*ts {
				t.Errorf("locker bottom = %d, expected %d", o.Rect.Bottom(), 10*ts)
			}
		}
	}
	if ladders != 1 || lockers != 1 || len(p.objects) != 3 {
		t.Errorf("objects = %d (ladders %d, lockers %d), expected box, ladder, locker", len(p.objects), ladders, lockers)
	}
}

func TestPopulateErrors(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	palette := tile.NewPalette(ts, cfg.Tiles)

	if _, err := populate(cfg, palette, Layout{Grid: floorRoom(cell{3, 3, 42})}); !errors.Is(err, tile.ErrUnknownTile) {
		t.Errorf("unknown id: err = %v, expected ErrUnknownTile", err)
	}
	if _, err := populate(cfg, palette, Layout{Grid: floorRoom(cell{3, 3, -99})}); !errors.Is(err, tile.ErrUnknownTile) {
		t.Errorf("unknown marker: err = %v, expected ErrUnknownTile", err)
	}
	if _, err := populate(cfg, palette, Layout{Grid: [][]int{{1}}}); err == nil {
		t.Error("a grid of the wrong size should be rejected")
	}
	out := Layout{Grid: floorRoom(), Spawns: []Spawn{{Marker: tile.MarkerBox, X: 20, Y: 2}}}
	if _, err := populate(cfg, palette, out); err == nil {
		t.Error("a spawn outside the room should be rejected")
	}
}

func TestNewSimulationMissingAsset(t *testing.T) {
	cfg := config.DefaultHeistConfig()

	src := newSource(4, 0).add(4, 0, true, floorRoom()).add(4, 1, true, floorRoom())
	src.broken[[2]int{4, 1}] = true
	if _, err := NewSimulation(cfg, src, Options{}); !errors.Is(err, ErrMissingLevelAsset) {
		t.Errorf("broken room: err = %v, expected ErrMissingLevelAsset", err)
	}

	bad := newSource(4, 0).add(4, 0, true, floorRoom(cell{2, 2, 77}))
	_, err := NewSimulation(cfg, bad, Options{})
	if !errors.Is(err, ErrMissingLevelAsset) || !errors.Is(err, tile.ErrUnknownTile) {
		t.Errorf("unknown tile: err = %v, expected ErrMissingLevelAsset wrapping ErrUnknownTile", err)
	}

	noStart := newSource(0, 0).add(4, 0, true, floorRoom())
	if _, err := NewSimulation(cfg, noStart, Options{}); !errors.Is(err, ErrMissingLevelAsset) {
		t.Errorf("missing start room: err = %v, expected ErrMissingLevelAsset", err)
	}
}

func TestTransitionRight(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(mark(9, 14, tile.MarkerPlayer))).
		add(4, 1, true, floorRoom())
	s := newSim(t, src)

	var changes []string
	s.Bus().Subscribe(func(e event.Event) {
		if e.Kind == event.LevelChanged {
			changes = append(changes, e.Payload)
		}
	})

	s.Step(core.NewInputFrame())
	for i := 0; i < 40; i++ {
		s.Step(core.FrameOf(core.ActionRight))
		if _, col := s.World().Position(); col == 1 {
			break
		}
	}

	row, col := s.World().Position()
	if row != 4 || col != 1 {
		t.Fatalf("position = (%d,%d), expected (4,1)", row, col)
	}
	if s.Player().X != s.Config().World.TransitionMargin {
		t.Errorf("X = %d, expected left margin %d", s.Player().X, s.Config().World.TransitionMargin)
	}
	if !s.World().Room(4, 0).IsVisited {
		t.Error("departing room should be visited")
	}
	if len(changes) != 2 || changes[1] != "4,1" {
		t.Errorf("level-changed payloads = %v, expected initial load then 4,1", changes)
	}
}

func TestTransitionIntoNothingClamps(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(mark(9, 1, tile.MarkerPlayer))).
		add(4, 1, false, floorRoom())
	s := newSim(t, src)
	sw := s.Config().World.ScreenWidth()

	for i := 0; i < 100; i++ {
		s.Step(core.FrameOf(core.ActionLeft))
		if s.Player().X < 0 {
			t.Fatalf("tick %d: X = %d left the room", i, s.Player().X)
		}
	}
	for i := 0; i < 300; i++ {
		s.Step(core.FrameOf(core.ActionRight))
		if s.Player().Bounds().Right() > sw {
			t.Fatalf("tick %d: right edge %d left the room", i, s.Player().Bounds().Right())
		}
	}

	if row, col := s.World().Position(); row != 4 || col != 0 {
		t.Errorf("position = (%d,%d), expected to stay in (4,0)", row, col)
	}
}

func TestTransitionLoadFailureRestoresCursor(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(mark(9, 14, tile.MarkerPlayer))).
		add(4, 1, true, floorRoom())
	s := newSim(t, src)
	src.broken[[2]int{4, 1}] = true

	s.steps(40, core.ActionRight)

	if row, col := s.World().Position(); row != 4 || col != 0 {
		t.Errorf("position = (%d,%d), expected cursor restored to (4,0)", row, col)
	}
	if s.Player().Bounds().Right() > s.Config().World.ScreenWidth() {
		t.Error("player should be clamped inside the room")
	}
	if s.World().Room(4, 0).IsVisited {
		t.Error("a failed transition should not mark the room visited")
	}
	if s.World().Room(4, 1).IsVisited {
		t.Error("the unreachable room should not be visited")
	}
}

func TestTransitionUnloadsDepartingRoom(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(
			mark(9, 1, tile.MarkerPlayer),
			mark(9, 4, tile.MarkerBox),
			mark(9, 8, tile.MarkerDrone),
			mark(9, 12, tile.MarkerDog),
		)).
		add(4, 1, true, floorRoom(mark(9, 6, tile.MarkerBox)))
	s := newSim(t, src)
	s.steps(2)

	old := s.World().Room(4, 0)
	if len(old.Objects) != 1 || len(old.Drones) != 1 || len(old.Dogs) != 1 {
		t.Fatalf("live room lists = %d/%d/%d, expected 1 each", len(old.Objects), len(old.Drones), len(old.Dogs))
	}

	if err := s.enter(0, 1); err != nil {
		t.Fatal(err)
	}

	if len(old.Objects) != 0 || len(old.Drones) != 0 || len(old.Dogs) != 0 {
		t.Errorf("departed room lists = %d/%d/%d, expected all empty", len(old.Objects), len(old.Drones), len(old.Dogs))
	}
	if got := len(s.Room().Objects); got != 1 {
		t.Errorf("current room objects = %d, expected 1", got)
	}
	if !old.IsVisited {
		t.Error("departed room should be visited")
	}

	if err := s.enter(0, -1); err != nil {
		t.Fatal(err)
	}
	if n := len(s.World().Room(4, 1).Objects); n != 0 {
		t.Errorf("room (4,1) objects = %d after leaving, expected 0", n)
	}
	if len(s.Room().Drones) != 1 || len(s.Room().Dogs) != 1 {
		t.Error("returning should rebuild the room's enemies")
	}
}

func TestFallIntoRoomBelow(t *testing.T) {
	src := newSource(3, 0).
		add(3, 0, true, emptyRoom(mark(2, 4, tile.MarkerPlayer))).
		add(4, 0, true, floorRoom())
	s := newSim(t, src)

	for i := 0; i < 200; i++ {
		s.Step(core.NewInputFrame())
		if row, _ := s.World().Position(); row == 4 {
			break
		}
	}
	if row, _ := s.World().Position(); row != 4 {
		t.Fatal("expected to fall into the room below")
	}
	if s.Player().Y != s.Config().World.TransitionMargin {
		t.Errorf("Y = %d, expected top margin", s.Player().Y)
	}

	s.steps(120)
	if !s.Player().OnGround || s.Player().Y != 10*ts-s.Config().Player.Height {
		t.Errorf("Y = %d, expected to land on the floor below", s.Player().Y)
	}
}

func TestConsumedObjectsSurviveReload(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(mark(9, 1, tile.MarkerPlayer), mark(9, 2, tile.MarkerBox), mark(9, 10, tile.MarkerDrone))).
		add(4, 1, true, floorRoom())
	s := newSim(t, src)

	s.steps(s.Config().Interaction.BoxTicks+1, core.ActionInteract)
	box := s.Room().Objects[0]
	if !box.Consumed() {
		t.Fatal("box should be opened")
	}
	s.steps(30)
	droneX := s.Room().Drones[0].X

	if err := s.enter(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := s.enter(0, -1); err != nil {
		t.Fatal(err)
	}

	reloaded := s.Room().Objects[0]
	if reloaded == box {
		t.Fatal("objects should be recreated on reload")
	}
	if !reloaded.Completed || !reloaded.Consumed() {
		t.Error("opened box should come back completed")
	}
	if s.Room().Drones[0].X == droneX {
		t.Error("enemies should be recreated fresh, not restored")
	}
}

func TestEnemyCatchAndRespawnInCheckpointRoom(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(mark(9, 1, tile.MarkerPlayer))).
		add(4, 1, true, floorRoom(mark(9, 6, tile.MarkerDrone)))
	s := newSim(t, src)
	s.steps(2)

	if err := s.enter(0, 1); err != nil {
		t.Fatal(err)
	}
	p := s.Player()
	p.Place(6*ts, 10*ts-p.H)

	s.Step(core.NewInputFrame())
	if !p.GameOver {
		t.Fatal("drone contact should kill the player")
	}

	s.steps(s.Config().Player.RespawnDelayTicks + 1)
	if p.GameOver {
		t.Fatal("player should have respawned")
	}
	if row, col := s.World().Position(); row != 4 || col != 0 {
		t.Errorf("position = (%d,%d), expected checkpoint room (4,0)", row, col)
	}
	if p.X != ts {
		t.Errorf("X = %d, expected start checkpoint %d", p.X, ts)
	}
	if n := len(s.World().Room(4, 1).Drones); n != 0 {
		t.Errorf("room of death still holds %d drones, expected it unloaded", n)
	}
}

func TestDisableCommands(t *testing.T) {
	src := newSource(4, 0).
		add(4, 0, true, floorRoom(mark(9, 1, tile.MarkerPlayer), mark(9, 6, tile.MarkerDrone), mark(9, 10, tile.MarkerDog)))
	s := newSim(t, src)

	var kinds []event.Kind
	s.Bus().Subscribe(func(e event.Event) { kinds = append(kinds, e.Kind) })

	s.apply(s.Room(), object.CommandDisableDrones)
	s.Step(core.NewInputFrame())

	if !s.Room().Drones[0].Disabled || s.Room().Dogs[0].Disabled {
		t.Error("only drones should be disabled")
	}
	if s.Room().Drones[0].State != enemy.StateDisabled {
		t.Errorf("drone state = %v, expected disabled", s.Room().Drones[0].State)
	}
	found := false
	for _, k := range kinds {
		found = found || k == event.DronesDisabled
	}
	if !found {
		t.Error("drones-disabled event not delivered")
	}
}

func TestStepDeliversEventsAfterTick(t *testing.T) {
	src := newSource(4, 0).add(4, 0, true, floorRoom(mark(9, 1, tile.MarkerPlayer)))
	s := newSim(t, src)

	if s.Bus().Pending() != 1 {
		t.Errorf("Pending() = %d, expected the initial level-changed", s.Bus().Pending())
	}
	var got []event.Event
	s.Bus().Subscribe(func(e event.Event) { got = append(got, e) })

	s.Step(core.NewInputFrame())
	s.Step(core.FrameOf(core.ActionJump))
	if s.Bus().Pending() != 0 {
		t.Error("Step() should flush the queue")
	}
	if len(got) != 2 || got[0].Kind != event.LevelChanged || got[1].Kind != event.PlayerJumped {
		t.Errorf("events = %+v, expected level-changed then player-jumped", got)
	}
	if got[1].Tick != 2 {
		t.Errorf("jump tick = %d, expected 2", got[1].Tick)
	}
}
