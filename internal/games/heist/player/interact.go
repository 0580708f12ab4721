package player

import (
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/collision"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
)

// nearestLadder returns a ladder the player overlaps horizontally and whose
// vertical extent is within the ladder tolerance of the player's.
func (p *Player) nearestLadder(objects []*object.Object) *object.Object {
	r := p.Bounds()
	tol := p.cfg.LadderTolerance
	for _, o := range objects {
		if o.Kind != object.KindLadder || !r.OverlapsX(o.Rect) {
			continue
		}
		if r.Bottom() >= o.Rect.Y-tol && r.Y <= o.Rect.Bottom()+tol {
			return o
		}
	}
	return nil
}

// climb moves along the ladder at climb speed, clamped so the player's feet
// stay between the ladder top and bottom.
func (p *Player) climb(ladder *object.Object, up, down bool, det *collision.Detector) {
	p.VS = 0
	p.OnGround = false
	p.Jumping = false

	dy := 0
	if up {
		dy -= p.cfg.ClimbSpeed
	}
	if down {
		dy += p.cfg.ClimbSpeed
	}
	if dy == 0 {
		return
	}

	// Center on the ladder so narrow shafts can be climbed.
	if x := ladder.Rect.X + (ladder.Rect.W-p.W)/2; x != p.X && !det.Test(p.Bounds(), x, p.Y) {
		p.X = x
	}

	top := ladder.Rect.Y - p.H
	bottom := ladder.Rect.Bottom() - p.H
	y := core.Clamp(p.Y+dy, top, max(top, bottom))
	if y != p.Y && !det.Test(p.Bounds(), p.X, y) {
		p.Y = y
	}
}

func (p *Player) menuOpen() bool {
	return p.Current != nil && p.Current.Kind == object.KindComputer && p.Current.MenuOpen()
}

// navigateMenu routes press edges to the computer menu. It returns the
// selected command, or CommandNone.
func (p *Player) navigateMenu(in core.InputFrame) object.Command {
	pc := p.Current
	switch {
	case in.Pressed(p.prev, core.ActionBack):
		pc.MenuClose()
	case in.Pressed(p.prev, core.ActionConfirm):
		return pc.MenuSelect()
	case in.Pressed(p.prev, core.ActionUp):
		pc.MenuMove(-1)
	case in.Pressed(p.prev, core.ActionDown):
		pc.MenuMove(1)
	}
	return object.CommandNone
}

// interact forwards the interact input to the nearest candidate object.
func (p *Player) interact(in core.InputFrame, env Env) {
	target := p.selectTarget(env.Objects)
	if target != p.Current {
		if p.Current != nil {
			p.Current.Release()
		}
		p.Current = target
	}
	if target == nil {
		return
	}

	if target.Hold(in.Has(core.ActionInteract)) {
		for _, e := range target.Open(p.Inventory, env.Rng) {
			env.Sink.Emit(e)
		}
	}
}

func (p *Player) selectTarget(objects []*object.Object) *object.Object {
	if p.menuOpen() {
		return p.Current
	}

	r := p.Bounds()
	var best *object.Object
	bestDist := p.cfg.InteractRange
	for _, o := range objects {
		if !o.Candidate(p.Inventory) {
			continue
		}
		if d := r.CenterDistance(o.Rect); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}
