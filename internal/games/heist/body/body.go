// Package body implements the motion shared by the player and enemies:
// gravity integration, horizontal steps and jumping against the tile grid.
package body

import "github.com/vovakirdan/tui-heist/internal/core"

// Direction is the facing of an entity.
type Direction int

const (
	Right Direction = iota
	Left
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "right"
	}
}

// Sign returns -1 for Left, 1 for Right and 0 otherwise.
func (d Direction) Sign() int {
	switch d {
	case Left:
		return -1
	case Right:
		return 1
	default:
		return 0
	}
}

// Opposite returns the reversed horizontal direction.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

// Collider answers whether a rectangle moved to (x, y) would be blocked.
type Collider interface {
	Test(r core.Rect, x, y int) bool
}

// Collidable is anything with pixel bounds.
type Collidable interface {
	Bounds() core.Rect
}

// Movable is a collidable entity with a facing.
type Movable interface {
	Collidable
	Facing() Direction
}

// Motion reports what a gravity step did.
type Motion int

const (
	MotionRising Motion = iota
	MotionFalling
	MotionLanded
	MotionBumped // hit a ceiling
)

// Body is the position and vertical state of one entity.
type Body struct {
	X, Y     int
	W, H     int
	Dir      Direction
	VS       int // vertical speed, positive is down
	OnGround bool
}

// New creates a body at (x, y) facing right.
func New(x, y, w, h int) Body {
	return Body{X: x, Y: y, W: w, H: h, Dir: Right}
}

// Bounds returns the body's rectangle.
func (b *Body) Bounds() core.Rect {
	return core.NewRect(b.X, b.Y, b.W, b.H)
}

// Facing returns the current direction.
func (b *Body) Facing() Direction {
	return b.Dir
}

// ApplyGravity integrates one tick of vertical motion.
// When the step is blocked the body settles flush against the obstacle and
// its vertical speed is zeroed; only a downward contact grounds it.
func (b *Body) ApplyGravity(c Collider, gravity, maxFall int) Motion {
	b.VS = min(b.VS+gravity, maxFall)
	r := b.Bounds()

	if !c.Test(r, b.X, b.Y+b.VS) {
		b.Y += b.VS
		b.OnGround = false
		if b.VS < 0 {
			return MotionRising
		}
		return MotionFalling
	}

	step := core.Sign(b.VS)
	for i := 0; i < core.Abs(b.VS); i++ {
		if c.Test(r, b.X, b.Y+step) {
			break
		}
		b.Y += step
	}

	landed := b.VS > 0
	b.VS = 0
	b.OnGround = landed
	if landed {
		return MotionLanded
	}
	return MotionBumped
}

// MoveHorizontal attempts a dx step and turns to face it.
// It returns false and holds position when the step is blocked.
func (b *Body) MoveHorizontal(c Collider, dx int) bool {
	if dx == 0 {
		return false
	}
	if dx < 0 {
		b.Dir = Left
	} else {
		b.Dir = Right
	}
	if c.Test(b.Bounds(), b.X+dx, b.Y) {
		return false
	}
	b.X += dx
	return true
}

// Jump launches a grounded body upward. Airborne bodies cannot jump.
func (b *Body) Jump(impulse int) bool {
	if !b.OnGround {
		return false
	}
	b.VS = -impulse
	b.OnGround = false
	return true
}
