// Package heist adapts the room-based simulation to the platform's Game
// interface: it loads config and world, feeds input frames to the
// simulation and draws the current room into a terminal screen.
package heist

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/levels"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
	"github.com/vovakirdan/tui-heist/internal/games/heist/text"
	"github.com/vovakirdan/tui-heist/internal/games/heist/world"
	"github.com/vovakirdan/tui-heist/internal/registry"
)

// Mode ids.
const (
	ModeHeist    = "heist"
	ModeTutorial = "heist_tutorial"
)

// hintTicks is how long a hint stays on the status line.
const hintTicks = 90

// configPath and worldPath store the custom paths set via CLI.
var (
	configPath       string
	worldPath        string
	difficultyPreset config.DifficultyPreset
	logger           *log.Logger
	observers        []event.Handler
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetWorldPath sets the world file used instead of the embedded one.
func SetWorldPath(path string) {
	worldPath = path
}

// SetDifficultyPreset sets the difficulty preset applied on every Reset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// SetLogger sets the logger handed to new simulations. nil discards.
func SetLogger(l *log.Logger) {
	logger = l
}

// Observe registers a handler subscribed to the event bus of every new
// simulation. Call it before games are created.
func Observe(h event.Handler) {
	observers = append(observers, h)
}

// Game implements registry.Game for the heist modes.
type Game struct {
	id       string
	title    string
	tutorial bool

	cfg     config.HeistConfig
	sim     *world.Simulation
	catalog *text.Catalog
	logger  *log.Logger
	err     error

	paused bool
	prev   core.InputFrame
	hint   string
	hintIn int

	// extracted and endTick freeze the run clock at the first extraction.
	extracted bool
	endTick   uint64
}

// New creates the full heist.
func New() *Game {
	return &Game{id: ModeHeist, title: "Heist"}
}

// NewTutorial creates the training mode limited to tutorial rooms.
func NewTutorial() *Game {
	return &Game{id: ModeTutorial, title: "Heist: Training", tutorial: true}
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	return g.title
}

// Reset loads config and world and starts a new run.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if g.sim != nil && !g.extracted {
		g.logRun("run abandoned")
	}
	g.logger = logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.catalog = text.Default()
	g.paused = false
	g.extracted, g.endTick = false, 0
	g.prev = core.NewInputFrame()
	g.hint, g.hintIn = "", 0
	g.sim, g.err = nil, nil

	cfg, err := config.LoadHeist(configPath)
	if err != nil {
		g.logger.Warn("using default config", "err", err)
		cfg = config.DefaultHeistConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	src, err := g.loadWorld()
	if err != nil {
		g.err = err
		g.logger.Error("failed to load world", "err", err)
		return
	}

	sim, err := world.NewSimulation(cfg, src, world.Options{Seed: rt.Seed, Logger: g.logger})
	if err != nil {
		g.err = err
		g.logger.Error("failed to start simulation", "err", err)
		return
	}
	for _, h := range observers {
		sim.Bus().Subscribe(h)
	}
	sim.Bus().Subscribe(g.onEvent)
	g.sim = sim
}

func (g *Game) loadWorld() (*levels.Source, error) {
	var (
		src *levels.Source
		err error
	)
	if worldPath != "" {
		src, err = levels.Load(worldPath)
	} else {
		src, err = levels.Default()
	}
	if err != nil {
		return nil, err
	}
	if g.tutorial {
		src = src.Only(world.RoomTutorial)
	}
	return src, nil
}

// Step advances the simulation by one tick. The simulation keeps running
// after extraction so subscribers see player-extracted every tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	defer func() { g.prev = in.Clone() }()

	if g.sim == nil {
		return core.StepResult{State: g.State()}
	}
	if in.Pressed(g.prev, core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.sim.Step(in)
	if g.hintIn > 0 {
		g.hintIn--
	}
	if in.Has(core.ActionInteract) {
		g.explainBlockedInteraction()
	}
	return core.StepResult{State: g.State()}
}

// onEvent turns notable events into status-line hints.
func (g *Game) onEvent(e event.Event) {
	switch e.Kind {
	case event.RareCardFound, event.CommonCardFound:
		g.showHint(g.catalog.Get("hint.card_found", e.Payload))
	case event.CardTaken:
		g.showHint(g.catalog.Get("hint.key_card"))
	case event.CheckpointSet:
		g.showHint(g.catalog.Get("hint.checkpoint"))
	case event.DronesDisabled:
		g.showHint(g.catalog.Get("hint.drones_off"))
	case event.DogsDisabled:
		g.showHint(g.catalog.Get("hint.dogs_off"))
	case event.PlayerExtracted:
		if !g.extracted {
			g.extracted, g.endTick = true, g.sim.Tick()
			g.logRun("run extracted")
		}
	}
}

// logRun logs the bus counters of the current run.
func (g *Game) logRun(msg string) {
	st := g.sim.Bus().Stats()
	g.logger.Debug(msg,
		"mode", g.id,
		"ticks", g.sim.Tick(),
		"events", st.Emitted,
		"delivered", st.Delivered,
		"pending", st.Pending,
	)
}

// explainBlockedInteraction shows why nothing happens when interact is held
// next to an object that is not a candidate.
func (g *Game) explainBlockedInteraction() {
	p := g.sim.Player()
	if p.Current != nil || p.GameOver || p.Extracted {
		return
	}
	reach := g.cfg.Player.InteractRange
	for _, o := range g.sim.Room().Objects {
		if !o.Interactable || o.Completed || o.Candidate(p.Inventory) {
			continue
		}
		if o.Rect.CenterDistance(p.Bounds()) >= reach {
			continue
		}
		switch o.Kind {
		case object.KindComputer:
			g.showHint(g.catalog.Get("hint.needs_card"))
		case object.KindCard:
			g.showHint(g.catalog.Get("hint.key_card_full"))
		default:
			g.showHint(g.catalog.Get("hint.cards_full"))
		}
		return
	}
}

func (g *Game) showHint(s string) {
	g.hint, g.hintIn = s, hintTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{Paused: g.paused}
	}
	p := g.sim.Player()
	ticks := g.sim.Tick()
	if g.extracted {
		ticks = g.endTick
	}
	return core.GameState{
		Score:    p.Inventory.Score(),
		GameOver: p.Extracted,
		Paused:   g.paused,
		Cards:    len(p.Inventory.Cards()),
		Deaths:   p.Deaths,
		Ticks:    ticks,
	}
}

// Simulation exposes the running simulation, or nil if Reset failed.
func (g *Game) Simulation() *world.Simulation {
	return g.sim
}

// Err returns the error of the last Reset.
func (g *Game) Err() error {
	return g.err
}

// Register the modes with the registry
func init() {
	registry.Register(ModeHeist, func() registry.Game {
		return New()
	})
	registry.Register(ModeTutorial, func() registry.Game {
		return NewTutorial()
	})
}
