// Package enemy implements the drone and dog guards: a patrol/chase state
// machine driven by look-ahead probing of the tile grid.
package enemy

import (
	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/body"
	"github.com/vovakirdan/tui-heist/internal/games/heist/collision"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
)

// Variant selects the enemy type.
type Variant int

const (
	Drone Variant = iota
	Dog
)

func (v Variant) String() string {
	if v == Dog {
		return "dog"
	}
	return "drone"
}

// waits reports whether the variant pauses after hitting an obstacle.
// Drones turn around on the spot.
func (v Variant) waits() bool {
	return v == Dog
}

func (v Variant) movingEvent() event.Kind {
	if v == Dog {
		return event.DogMoving
	}
	return event.DroneMoving
}

// State is the AI state.
type State int

const (
	StateIdle State = iota
	StatePatrolling
	StateChasing
	StateWaiting
	StateDisabled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrolling:
		return "patrolling"
	case StateChasing:
		return "chasing"
	case StateWaiting:
		return "waiting"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// Env is the per-tick context of an enemy update.
type Env struct {
	Detector    *collision.Detector
	Player      core.Rect
	PlayerAlive bool
	Sink        event.Sink
}

// Outcome reports the effect of an update on the player.
type Outcome struct {
	Caught bool
}

// Enemy is one guard.
type Enemy struct {
	body.Body

	Variant        Variant
	State          State
	PatrolPosition int // pixels travelled from the patrol origin, within [0, PatrolRange]
	PatrolRange    int // pixels
	ChaseRange     int // pixels
	Disabled       bool

	cfg    config.EnemyConfig
	phys   config.PhysicsConfig
	wait   int
	moving bool
}

// New creates an enemy at (x, y) facing right. Ranges are converted from tiles to pixels.
func New(v Variant, cfg config.EnemyConfig, phys config.PhysicsConfig, tileSize, x, y int) *Enemy {
	e := &Enemy{
		Body:        body.New(x, y, cfg.Width, cfg.Height),
		Variant:     v,
		State:       StatePatrolling,
		PatrolRange: cfg.PatrolRangeTiles * tileSize,
		ChaseRange:  cfg.ChaseRangeTiles * tileSize,
		cfg:         cfg,
		phys:        phys,
	}
	if e.PatrolRange == 0 {
		e.State = StateIdle
	}
	return e
}

// Disable stops the enemy until its room is reloaded.
func (e *Enemy) Disable() {
	e.Disabled = true
	e.State = StateDisabled
	e.moving = false
}

// WaitLeft returns the remaining ticks of a Waiting state.
func (e *Enemy) WaitLeft() int {
	return e.wait
}

// Update advances the enemy by one tick.
func (e *Enemy) Update(env Env) Outcome {
	var out Outcome
	if e.Disabled {
		e.State = StateDisabled
		return out
	}

	det := env.Detector
	e.ApplyGravity(det, e.phys.Gravity, e.phys.MaxFallSpeed)

	if env.PlayerAlive && hitBoxRect(det, e.Bounds()).Intersects(hitBoxRect(det, env.Player)) {
		out.Caught = true
	}

	if e.State == StateWaiting {
		e.wait--
		if e.wait > 0 {
			return out
		}
		e.State = StatePatrolling
	}

	if !e.OnGround {
		e.moving = false
		return out
	}

	speed := e.cfg.Speed
	switch {
	case env.PlayerAlive && e.spots(env.Player):
		e.State = StateChasing
		speed = int(float64(speed) * e.cfg.ChaseMultiplier)
	case e.PatrolRange == 0:
		e.State = StateIdle
		e.moving = false
		return out
	default:
		e.State = StatePatrolling
	}

	step := speed * e.Dir.Sign()
	if !e.canAdvance(det, step) || !e.MoveHorizontal(det, step) {
		e.blocked()
		return out
	}

	if !e.moving {
		env.Sink.Emit(event.Event{Kind: e.Variant.movingEvent(), Payload: e.Dir.String(), X: e.X, Y: e.Y})
	}
	e.moving = true
	e.trackPatrol(step)
	return out
}

// spots reports whether the player is on the same level, ahead in the facing
// direction and within chase range of the leading edge.
func (e *Enemy) spots(player core.Rect) bool {
	r := e.Bounds()
	_, ey := r.Center()
	px, py := player.Center()
	ex, _ := r.Center()

	if core.Abs(ey-py) >= e.cfg.SameLevelThreshold {
		return false
	}

	sign := e.Dir.Sign()
	if (px-ex)*sign <= 0 {
		return false
	}

	var gap int
	if sign > 0 {
		gap = player.X - r.Right()
	} else {
		gap = r.X - player.Right()
	}
	return gap <= e.ChaseRange
}

// canAdvance probes the tile under the leading bottom corner after the step
// and the tile at mid-height in the leading column.
func (e *Enemy) canAdvance(det *collision.Detector, step int) bool {
	r := e.Bounds()
	var lead int
	if step > 0 {
		lead = r.Right() - 1 + step
	} else {
		lead = r.X + step
	}

	ground := det.SolidAt(lead, r.Bottom())
	wall := det.SolidAt(lead, r.Y+r.H/2)
	return ground && !wall
}

func (e *Enemy) blocked() {
	e.Dir = e.Dir.Opposite()
	e.moving = false
	if e.Variant.waits() && e.cfg.WaitTicks > 0 {
		e.State = StateWaiting
		e.wait = e.cfg.WaitTicks
	}
}

// trackPatrol moves the patrol counter with the entity and turns around at
// both ends of the range.
func (e *Enemy) trackPatrol(step int) {
	e.PatrolPosition = core.Clamp(e.PatrolPosition+step, 0, e.PatrolRange)
	if e.State != StatePatrolling {
		return
	}
	switch {
	case step > 0 && e.PatrolPosition == e.PatrolRange:
		e.Dir = body.Left
	case step < 0 && e.PatrolPosition == 0:
		e.Dir = body.Right
	}
}

func hitBoxRect(det *collision.Detector, r core.Rect) core.Rect {
	hb := det.HitBox(r)
	return core.NewRect(hb.Left, hb.Top, hb.Right-hb.Left+1, hb.Bottom-hb.Top+1)
}
