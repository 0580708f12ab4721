package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/registry"
	"github.com/vovakirdan/tui-heist/internal/storage"
)

// RunHooks observe the life of a run. Either field may be nil.
type RunHooks struct {
	Started func(mode string)
	Ended   func(mode string, st core.GameState)
}

func (h RunHooks) start(mode string) {
	if h.Started != nil {
		h.Started(mode)
	}
}

func (h RunHooks) end(mode string, st core.GameState) {
	if h.Ended != nil {
		h.Ended(mode, st)
	}
}

// GameModel is the Bubble Tea model for running a mode: it converts key
// presses into held actions, steps the game at a fixed rate and records
// the run once the player extracts.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	holds      *HoldTracker
	keyMapper  *KeyMapper
	help       help.Model
	hooks      RunHooks
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	runSaved   bool
	runOpen    *bool
}

// NewGameModel creates a new game model.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, hooks RunHooks) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	open := false
	return GameModel{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:     store,
		config:    cfg,
		holds:     NewHoldTracker(cfg.TickRate),
		keyMapper: NewKeyMapper(),
		help:      help.New(),
		hooks:     hooks,
		runOpen:   &open,
	}
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.startRun()
	return tickCmd(m.config.TickRate)
}

func (m GameModel) startRun() {
	*m.runOpen = true
	m.hooks.start(m.game.ID())
}

// endRun reports the end of the current run once.
func (m GameModel) endRun() {
	if !*m.runOpen {
		return
	}
	*m.runOpen = false
	m.hooks.end(m.game.ID(), m.gameState)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The renderer scales the room to the screen, so the run survives a resize.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.endRun()
		return m, tea.Quit
	}

	// Back leaves to the menu once the run is over or paused; otherwise it
	// belongs to the game (closing the computer menu).
	if action == core.ActionBack && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		m.endRun()
		return m, nil
	}

	m.holds.Press(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	frame := m.holds.Frame()

	// Check for restart
	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.holds.Reset()
		m.startRun()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State
	m.holds.Advance()

	// Record the run on extraction (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
		m.endRun()
	}

	return m, tickCmd(m.config.TickRate)
}

func (m GameModel) saveRun() {
	if m.store == nil {
		return
	}
	st := m.gameState
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveRun(storage.Run{
		Mode:      m.game.ID(),
		Score:     st.Score,
		Cards:     st.Cards,
		Deaths:    st.Deaths,
		Ticks:     int64(st.Ticks),
		Extracted: st.GameOver,
	})
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".heist", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)
	if m.gameState.Paused {
		out += "\n" + m.help.FullHelpView(m.keyMapper.Keys.FullHelp())
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last reported game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program for a single mode.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg, RunHooks{})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
