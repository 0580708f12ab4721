package world

import (
	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/player"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

// Player returns the player.
func (s *Simulation) Player() *player.Player { return s.player }

// World returns the room graph.
func (s *Simulation) World() *World { return s.world }

// Room returns the current room.
func (s *Simulation) Room() *Room { return s.world.Current() }

// Grid returns the live tile grid of the current room.
func (s *Simulation) Grid() *tile.Grid { return s.grid }

// Palette returns the tile palette.
func (s *Simulation) Palette() *tile.Palette { return s.palette }

// Bus returns the event bus. Subscribers receive events after each Step.
func (s *Simulation) Bus() *event.Bus { return s.bus }

// Config returns the simulation constants.
func (s *Simulation) Config() config.HeistConfig { return s.cfg }

// Tick returns the number of completed steps.
func (s *Simulation) Tick() uint64 { return s.tick }

// Checkpoint returns the room holding the last checkpoint.
func (s *Simulation) Checkpoint() (row, col int) { return s.cpRow, s.cpCol }
