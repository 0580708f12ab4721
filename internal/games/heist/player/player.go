// Package player implements the player controller: movement, ladders,
// interaction with room objects, death with a tick-counted respawn, and
// extraction.
package player

import (
	"math/rand"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/body"
	"github.com/vovakirdan/tui-heist/internal/games/heist/collision"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/item"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
)

// State is the controller state derived from the player's flags.
type State int

const (
	StateGrounded State = iota
	StateAirborne
	StateClimbing
	StateInteracting
	StateDead
	StateExtracted
)

func (s State) String() string {
	switch s {
	case StateGrounded:
		return "grounded"
	case StateAirborne:
		return "airborne"
	case StateClimbing:
		return "climbing"
	case StateInteracting:
		return "interacting"
	case StateDead:
		return "dead"
	case StateExtracted:
		return "extracted"
	default:
		return "unknown"
	}
}

// Env is the room context borrowed for one update.
type Env struct {
	Detector *collision.Detector
	Objects  []*object.Object
	Sink     event.Sink
	Rng      *rand.Rand
}

// Outcome reports what an update did that the world has to act on.
type Outcome struct {
	Commands      []object.Command
	Died          bool
	Respawned     bool
	CheckpointSet bool
	Extracted     bool
}

// Player is the controlled character.
type Player struct {
	body.Body

	Jumping   bool // airborne, rising or falling
	Climbing  bool
	GameOver  bool
	Extracted bool

	CheckpointX, CheckpointY int

	Current   *object.Object
	Inventory *item.Inventory
	Deaths    int

	cfg          config.PlayerConfig
	phys         config.PhysicsConfig
	respawnTimer int
	notified     bool
	moving       bool
	onCheckpoint bool
	prev         core.InputFrame
}

// New creates a player at (x, y). The start position is the first checkpoint.
func New(cfg config.HeistConfig, x, y int) *Player {
	return &Player{
		Body:        body.New(x, y, cfg.Player.Width, cfg.Player.Height),
		Jumping:     true,
		CheckpointX: x,
		CheckpointY: y,
		Inventory:   item.NewInventory(cfg.Inventory.CardSlots, cfg.Inventory.ComputerCardSlots),
		cfg:         cfg.Player,
		phys:        cfg.Physics,
	}
}

// State returns the current controller state.
func (p *Player) State() State {
	switch {
	case p.Extracted:
		return StateExtracted
	case p.GameOver:
		return StateDead
	case p.Climbing:
		return StateClimbing
	case p.Current != nil && p.Current.State() == object.StateHolding:
		return StateInteracting
	case p.OnGround:
		return StateGrounded
	default:
		return StateAirborne
	}
}

// RespawnIn returns the ticks left before a dead player respawns.
func (p *Player) RespawnIn() int {
	return p.respawnTimer
}

// Kill marks the player dead, emits player-died and arms the respawn countdown.
// It returns false if the player was already dead or has been extracted.
func (p *Player) Kill(sink event.Sink) bool {
	if p.notified || p.Extracted {
		return false
	}
	p.GameOver = true
	p.notified = true
	p.respawnTimer = p.cfg.RespawnDelayTicks
	p.Deaths++
	p.VS = 0
	p.Climbing = false
	p.moving = false
	p.release()
	sink.Emit(event.Event{Kind: event.PlayerDied, X: p.X, Y: p.Y})
	return true
}

// Place moves the player, as after a room transition.
func (p *Player) Place(x, y int) {
	p.X, p.Y = x, y
}

// Update advances the player by one tick.
func (p *Player) Update(in core.InputFrame, env Env) Outcome {
	var out Outcome
	defer func() { p.prev = in.Clone() }()

	if p.GameOver {
		if !p.notified {
			out.Died = p.Kill(env.Sink)
			return out
		}
		if p.respawnTimer > 0 {
			p.respawnTimer--
		}
		if p.respawnTimer == 0 {
			p.respawn(env.Sink)
			out.Respawned = true
		}
		return out
	}

	if p.Extracted {
		env.Sink.Emit(event.Event{Kind: event.PlayerExtracted, X: p.X, Y: p.Y})
		return out
	}

	if p.menuOpen() {
		if cmd := p.navigateMenu(in); cmd != object.CommandNone {
			out.Commands = append(out.Commands, cmd)
		}
		return out
	}

	p.moveVertical(in, env)
	p.moveHorizontal(in, env)

	if in.Has(core.ActionJump) && !p.Climbing && p.Jump(p.cfg.JumpImpulse) {
		p.Jumping = true
		env.Sink.Emit(event.Event{Kind: event.PlayerJumped, X: p.X, Y: p.Y})
	}

	p.applyTriggers(env, &out)
	if p.GameOver {
		return out
	}

	p.interact(in, env)
	return out
}

func (p *Player) moveVertical(in core.InputFrame, env Env) {
	ladder := p.nearestLadder(env.Objects)
	up, down := in.Has(core.ActionUp), in.Has(core.ActionDown)

	switch {
	case ladder == nil, in.Has(core.ActionJump):
		p.Climbing = false
	case up || down:
		p.Climbing = true
	}

	if p.Climbing {
		p.climb(ladder, up, down, env.Detector)
		return
	}

	p.ApplyGravity(env.Detector, p.phys.Gravity, p.phys.MaxFallSpeed)
	p.Jumping = !p.OnGround
}

func (p *Player) moveHorizontal(in core.InputFrame, env Env) {
	dx := 0
	if in.Has(core.ActionLeft) {
		dx -= p.cfg.Speed
	}
	if in.Has(core.ActionRight) {
		dx += p.cfg.Speed
	}

	moved := p.MoveHorizontal(env.Detector, dx)
	if moved && !p.moving {
		env.Sink.Emit(event.Event{Kind: event.PlayerMoved, Payload: p.Dir.String(), X: p.X, Y: p.Y})
	}
	p.moving = moved
}

func (p *Player) applyTriggers(env Env, out *Outcome) {
	res := env.Detector.Probe(p.Bounds())

	if res.Triggers.Has(collision.TriggerDeath) {
		out.Died = p.Kill(env.Sink)
		return
	}

	onCheckpoint := res.Triggers.Has(collision.TriggerCheckpoint)
	if onCheckpoint {
		p.CheckpointX, p.CheckpointY = p.X, p.Y
		if !p.onCheckpoint {
			out.CheckpointSet = true
			env.Sink.Emit(event.Event{Kind: event.CheckpointSet, X: p.X, Y: p.Y})
		}
	}
	p.onCheckpoint = onCheckpoint

	if res.Triggers.Has(collision.TriggerExtraction) && !p.Extracted {
		p.Extracted = true
		p.release()
		out.Extracted = true
		env.Sink.Emit(event.Event{Kind: event.PlayerExtracted, X: p.X, Y: p.Y})
	}
}

func (p *Player) respawn(sink event.Sink) {
	p.X, p.Y = p.CheckpointX, p.CheckpointY
	p.VS = 0
	p.OnGround = false
	p.Jumping = true
	p.GameOver = false
	p.notified = false
	sink.Emit(event.Event{Kind: event.PlayerRespawned, X: p.X, Y: p.Y})
}

func (p *Player) release() {
	if p.Current != nil {
		p.Current.Release()
		p.Current.MenuClose()
		p.Current = nil
	}
}
