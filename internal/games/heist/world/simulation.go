package world

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/collision"
	"github.com/vovakirdan/tui-heist/internal/games/heist/enemy"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
	"github.com/vovakirdan/tui-heist/internal/games/heist/player"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

// Options configures a Simulation.
type Options struct {
	Seed   int64
	Logger *log.Logger // nil discards
}

// Simulation runs the heist one tick at a time. It is not safe for
// concurrent use; a single goroutine calls Step.
type Simulation struct {
	cfg     config.HeistConfig
	source  LayoutSource
	palette *tile.Palette
	world   *World
	grid    *tile.Grid
	det     *collision.Detector
	player  *player.Player
	bus     *event.Bus
	rng     *rand.Rand
	logger  *log.Logger
	tick    uint64

	cpRow, cpCol int
}

// NewSimulation builds the world from source and loads the start room.
// Every room layout is checked up front; a broken one fails with ErrMissingLevelAsset.
func NewSimulation(cfg config.HeistConfig, source LayoutSource, opts Options) (*Simulation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w, err := NewWorld(source.Rooms())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingLevelAsset, err)
	}

	s := &Simulation{
		cfg:     cfg,
		source:  source,
		palette: tile.NewPalette(cfg.World.TileSize, cfg.Tiles),
		world:   w,
		bus:     event.NewBus(),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		logger:  logger,
	}

	if err := Check(cfg, source); err != nil {
		return nil, err
	}

	row, col := source.Start()
	if err := w.SetPosition(row, col); err != nil {
		return nil, fmt.Errorf("start room: %w: %w", ErrMissingLevelAsset, err)
	}
	p, err := s.load()
	if err != nil {
		return nil, err
	}

	x, y := cfg.World.TileSize, 0
	if p.hasStart {
		x, y = p.startX, p.startY
	}
	s.player = player.New(cfg, x, y)
	s.cpRow, s.cpCol = row, col

	logger.Info("simulation ready", "room", fmt.Sprintf("%d,%d", row, col), "seed", opts.Seed)
	return s, nil
}

// Check loads every room of source and reports the first broken layout.
func Check(cfg config.HeistConfig, source LayoutSource) error {
	palette := tile.NewPalette(cfg.World.TileSize, cfg.Tiles)
	for _, info := range source.Rooms() {
		if _, err := loadLayout(cfg, palette, source, info.Row, info.Col); err != nil {
			return err
		}
	}
	return nil
}

func loadLayout(cfg config.HeistConfig, palette *tile.Palette, source LayoutSource, row, col int) (*populated, error) {
	l, err := source.Layout(row, col)
	if err != nil {
		return nil, fmt.Errorf("room (%d,%d): %w: %w", row, col, ErrMissingLevelAsset, err)
	}
	p, err := populate(cfg, palette, l)
	if err != nil {
		return nil, fmt.Errorf("room (%d,%d): %w: %w", row, col, ErrMissingLevelAsset, err)
	}
	return p, nil
}

// load replaces the live grid and the current room's lists with a fresh
// instance of the current room's layout. Unloading the room that was live
// before is up to the caller.
func (s *Simulation) load() (*populated, error) {
	row, col := s.world.Position()
	p, err := loadLayout(s.cfg, s.palette, s.source, row, col)
	if err != nil {
		return nil, err
	}

	room := s.world.Current()
	room.Drones = p.drones
	room.Dogs = p.dogs
	room.Objects = p.objects
	for _, o := range room.Objects {
		if room.Consumed(o.ID) {
			o.MarkConsumed()
		}
	}

	s.grid = p.grid
	s.det = collision.NewDetector(p.grid, s.palette, s.cfg.Physics.HitboxInset, s.cfg.World.OutOfBoundsSolid)
	s.bus.Emit(event.Event{Kind: event.LevelChanged, Payload: fmt.Sprintf("%d,%d", row, col)})
	s.logger.Debug("room loaded", "room", fmt.Sprintf("%d,%d", row, col), "type", room.Type,
		"objects", len(room.Objects), "drones", len(room.Drones), "dogs", len(room.Dogs))
	return p, nil
}

// Step advances the simulation by one tick and delivers the tick's events.
func (s *Simulation) Step(in core.InputFrame) {
	s.tick++
	s.bus.SetTick(s.tick)

	room := s.world.Current()
	out := s.player.Update(in, player.Env{
		Detector: s.det,
		Objects:  room.Objects,
		Sink:     s.bus,
		Rng:      s.rng,
	})
	room.remember()

	if out.CheckpointSet {
		s.cpRow, s.cpCol = s.world.Position()
	}
	if out.Died {
		s.logger.Info("player died", "tick", s.tick, "deaths", s.player.Deaths)
	}
	if out.Respawned {
		s.respawnRoom()
		room = s.world.Current()
	}
	if out.Extracted {
		s.logger.Info("player extracted", "tick", s.tick, "score", s.player.Inventory.Score())
	}

	s.updateEnemies(room)

	for _, cmd := range out.Commands {
		s.apply(room, cmd)
	}

	s.transition(in)
	s.bus.Flush()
}

func (s *Simulation) updateEnemies(room *Room) {
	p := s.player
	env := enemy.Env{
		Detector: s.det,
		Sink:     s.bus,
	}
	for _, e := range room.Enemies() {
		env.Player = p.Bounds()
		env.PlayerAlive = !p.GameOver && !p.Extracted
		if e.Update(env).Caught && p.Kill(s.bus) {
			s.logger.Info("player caught", "by", e.Variant, "tick", s.tick)
		}
	}
}

func (s *Simulation) apply(room *Room, cmd object.Command) {
	switch cmd {
	case object.CommandDisableDrones:
		for _, d := range room.Drones {
			d.Disable()
		}
		s.bus.Emit(event.Event{Kind: event.DronesDisabled})
	case object.CommandDisableDogs:
		for _, d := range room.Dogs {
			d.Disable()
		}
		s.bus.Emit(event.Event{Kind: event.DogsDisabled})
	}
	s.logger.Debug("room command", "command", cmd)
}

// respawnRoom returns to the checkpoint's room if the player died elsewhere.
func (s *Simulation) respawnRoom() {
	row, col := s.world.Position()
	if row == s.cpRow && col == s.cpCol {
		return
	}
	from := s.world.Current()
	if err := s.world.SetPosition(s.cpRow, s.cpCol); err != nil {
		s.logger.Error("respawn room", "err", err)
		return
	}
	if _, err := s.load(); err != nil {
		s.logger.Error("respawn room load failed", "err", err)
		s.world.row, s.world.col = row, col
		return
	}
	from.leave()
	s.logger.Debug("respawned in checkpoint room", "room", fmt.Sprintf("%d,%d", s.cpRow, s.cpCol))
}
