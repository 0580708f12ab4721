package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/body"
)

// transition moves to a neighbouring room when the player's leading edge is
// within the margin of a screen boundary and moving toward it.
func (s *Simulation) transition(in core.InputFrame) {
	p := s.player
	if p.GameOver || p.Extracted {
		return
	}

	wc := s.cfg.World
	m := wc.TransitionMargin
	b := p.Bounds()
	w, h := wc.ScreenWidth(), wc.ScreenHeight()

	var dr, dc int
	switch {
	case in.Has(core.ActionLeft) && b.X <= m:
		dc = -1
	case in.Has(core.ActionRight) && b.Right() >= w-m:
		dc = 1
	case b.Y <= m && (p.VS < 0 || (p.Climbing && in.Has(core.ActionUp))):
		dr = -1
	case b.Bottom() >= h-m && (p.VS > 0 || (p.Climbing && in.Has(core.ActionDown))):
		dr = 1
	default:
		return
	}

	if err := s.enter(dr, dc); err != nil {
		if !errors.Is(err, ErrInvalidTransition) {
			s.logger.Error("room transition failed", "err", err)
		}
		s.clampPlayer()
		return
	}

	switch {
	case dc > 0:
		p.Place(m, p.Y)
		p.Dir = body.Right
	case dc < 0:
		p.Place(w-m-p.W, p.Y)
		p.Dir = body.Left
	case dr > 0:
		p.Place(p.X, m)
	case dr < 0:
		p.Place(p.X, h-m-p.H)
	}
}

// enter moves the cursor and loads the new room. The departing room is
// unloaded only once the new one is live; a failed load leaves the world as
// it was.
func (s *Simulation) enter(dr, dc int) error {
	row, col := s.world.Position()
	from := s.world.Current()
	visited := from.IsVisited
	if err := s.world.Move(dr, dc); err != nil {
		return err
	}
	if _, err := s.load(); err != nil {
		s.world.row, s.world.col = row, col
		from.IsVisited = visited
		return fmt.Errorf("enter room: %w", err)
	}
	from.leave()
	s.logger.Debug("room changed", "from", fmt.Sprintf("%d,%d", row, col), "to", fmt.Sprintf("%d,%d", row+dr, col+dc))
	return nil
}

func (s *Simulation) clampPlayer() {
	wc := s.cfg.World
	p := s.player
	p.X = core.Clamp(p.X, 0, wc.ScreenWidth()-p.W)
	p.Y = core.Clamp(p.Y, 0, wc.ScreenHeight()-p.H)
}
