package player

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/collision"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/item"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

const ts = 64

// floorY is the resting y of a default-sized player on the floor at row 10.
const floorY = 10*ts - 56

type recorder struct {
	events []event.Event
}

func (r *recorder) Emit(e event.Event) { r.events = append(r.events, e) }

func (r *recorder) count(k event.Kind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

type fixture struct {
	cfg     config.HeistConfig
	player  *Player
	env     Env
	rec     *recorder
	objects []*object.Object
}

// newFixture builds a 12x16 room with a solid floor on row 10 and the given extra cells.
func newFixture(cells map[[2]int]int, objects ...*object.Object) *fixture {
	cfg := config.DefaultHeistConfig()
	grid := tile.NewGrid(12, 16)
	for c := 0; c < 16; c++ {
		grid.Set(10, c, 1)
	}
	for rc, id := range cells {
		grid.Set(rc[0], rc[1], id)
	}
	det := collision.NewDetector(grid, tile.NewPalette(ts, cfg.Tiles), cfg.Physics.HitboxInset, false)
	rec := &recorder{}

	return &fixture{
		cfg:     cfg,
		player:  New(cfg, ts, floorY),
		rec:     rec,
		objects: objects,
		env: Env{
			Detector: det,
			Objects:  objects,
			Sink:     rec,
			Rng:      rand.New(rand.NewSource(1)),
		},
	}
}

func (f *fixture) step(actions ...core.Action) Outcome {
	return f.player.Update(core.FrameOf(actions...), f.env)
}

func (f *fixture) steps(n int, actions ...core.Action) {
	for i := 0; i < n; i++ {
		f.step(actions...)
	}
}

func TestFallAndLandOnRow(t *testing.T) {
	cfg := config.DefaultHeistConfig()
	grid := tile.NewGrid(12, 16)
	for c := 0; c < 16; c++ {
		grid.Set(5, c, 1)
	}
	det := collision.NewDetector(grid, tile.NewPalette(ts, cfg.Tiles), cfg.Physics.HitboxInset, false)
	p := New(cfg, 2*ts, 0)
	env := Env{Detector: det, Sink: event.Discard, Rng: rand.New(rand.NewSource(1))}

	for i := 0; i < 120; i++ {
		p.Update(core.NewInputFrame(), env)
		exclusive := 0
		for _, b := range []bool{p.OnGround, p.Jumping, p.Climbing} {
			if b {
				exclusive++
			}
		}
		if exclusive != 1 {
			t.Fatalf("tick %d: grounded=%v jumping=%v climbing=%v, expected exactly one",
				i, p.OnGround, p.Jumping, p.Climbing)
		}
	}

	if p.Y != 5*ts-cfg.Player.Height {
		t.Errorf("Y = %d, expected %d", p.Y, 5*ts-cfg.Player.Height)
	}
	if !p.OnGround || p.VS != 0 {
		t.Errorf("OnGround = %v, VS = %d, expected grounded at rest", p.OnGround, p.VS)
	}
	if p.State() != StateGrounded {
		t.Errorf("State() = %v, expected grounded", p.State())
	}
}

func TestJump(t *testing.T) {
	f := newFixture(nil)
	f.step()

	f.step(core.ActionJump)
	if f.player.VS != -f.cfg.Player.JumpImpulse {
		t.Errorf("VS = %d, expected %d", f.player.VS, -f.cfg.Player.JumpImpulse)
	}
	if f.rec.count(event.PlayerJumped) != 1 {
		t.Errorf("player-jumped emitted %d times, expected 1", f.rec.count(event.PlayerJumped))
	}

	f.step(core.ActionJump)
	if f.rec.count(event.PlayerJumped) != 1 {
		t.Error("double jump should be impossible")
	}
	if f.player.Y >= floorY || f.player.State() != StateAirborne {
		t.Errorf("Y = %d, state %v, expected airborne above the floor", f.player.Y, f.player.State())
	}

	f.steps(60)
	if f.player.Y != floorY || !f.player.OnGround {
		t.Errorf("Y = %d, expected to land back at %d", f.player.Y, floorY)
	}
}

func TestHorizontalMovement(t *testing.T) {
	f := newFixture(map[[2]int]int{{9, 4}: 1})
	f.step()

	f.steps(5, core.ActionRight)
	if f.player.X != ts+5*f.cfg.Player.Speed {
		t.Errorf("X = %d, expected %d", f.player.X, ts+5*f.cfg.Player.Speed)
	}
	if f.rec.count(event.PlayerMoved) != 1 {
		t.Errorf("player-moved emitted %d times, expected once on start", f.rec.count(event.PlayerMoved))
	}

	// Walk into the wall at column 4 and stop flush against the inset hit-box.
	f.steps(100, core.ActionRight)
	hb := f.env.Detector.HitBox(f.player.Bounds())
	if hb.Right >= 4*ts || hb.Right < 4*ts-f.cfg.Player.Speed {
		t.Errorf("hit-box right = %d, expected just left of %d", hb.Right, 4*ts)
	}

	x := f.player.X
	f.step(core.ActionLeft, core.ActionRight)
	if f.player.X != x {
		t.Error("opposite inputs should cancel")
	}
}

func TestDeathAndRespawn(t *testing.T) {
	f := newFixture(map[[2]int]int{{9, 5}: config.TileDeath})
	f.step()
	f.player.Place(5*ts, floorY)

	out := f.step()
	if !out.Died || !f.player.GameOver {
		t.Fatalf("Died = %v, GameOver = %v, expected death on the spike tile", out.Died, f.player.GameOver)
	}

	delay := f.cfg.Player.RespawnDelayTicks
	for i := 1; i < delay; i++ {
		out = f.step(core.ActionLeft)
		if out.Respawned {
			t.Fatalf("respawned after %d ticks, expected %d", i, delay)
		}
		if f.player.X != 5*ts {
			t.Fatal("movement must be suppressed while dead")
		}
	}
	if f.rec.count(event.PlayerDied) != 1 {
		t.Errorf("player-died emitted %d times, expected 1", f.rec.count(event.PlayerDied))
	}

	out = f.step()
	if !out.Respawned || f.player.GameOver {
		t.Fatalf("Respawned = %v, GameOver = %v after %d ticks", out.Respawned, f.player.GameOver, delay)
	}
	if f.player.X != ts || f.player.Y != floorY {
		t.Errorf("respawn at (%d,%d), expected checkpoint (%d,%d)", f.player.X, f.player.Y, ts, floorY)
	}
	if f.player.Deaths != 1 {
		t.Errorf("Deaths = %d, expected 1", f.player.Deaths)
	}
}

func TestKillOnce(t *testing.T) {
	f := newFixture(nil)
	if !f.player.Kill(f.rec) {
		t.Fatal("Kill() = false on a live player")
	}
	if f.player.Kill(f.rec) {
		t.Error("Kill() should be a no-op on a dead player")
	}
	out := f.step()
	if out.Died {
		t.Error("Died should not be reported twice")
	}
	if f.rec.count(event.PlayerDied) != 1 {
		t.Errorf("player-died emitted %d times, expected 1", f.rec.count(event.PlayerDied))
	}
}

func TestExternalGameOverNotifies(t *testing.T) {
	f := newFixture(nil)
	f.player.GameOver = true

	out := f.step()
	if !out.Died || f.rec.count(event.PlayerDied) != 1 {
		t.Error("a GameOver set outside the player should still emit player-died once")
	}
}

func TestCheckpoint(t *testing.T) {
	f := newFixture(map[[2]int]int{{9, 3}: config.TileCheckpoint})
	f.step()
	f.player.Place(3*ts, floorY)

	out := f.step()
	if !out.CheckpointSet {
		t.Error("CheckpointSet = false on the checkpoint tile")
	}
	f.step()
	if f.rec.count(event.CheckpointSet) != 1 {
		t.Errorf("checkpoint-set emitted %d times, expected once per visit", f.rec.count(event.CheckpointSet))
	}
	if f.player.CheckpointX != 3*ts || f.player.CheckpointY != floorY {
		t.Errorf("checkpoint = (%d,%d), expected (%d,%d)", f.player.CheckpointX, f.player.CheckpointY, 3*ts, floorY)
	}
}

func TestExtraction(t *testing.T) {
	f := newFixture(map[[2]int]int{{9, 7}: config.TileExtraction})
	f.step()
	f.player.Place(7*ts, floorY)

	out := f.step()
	if !out.Extracted || !f.player.Extracted {
		t.Fatal("expected extraction on the extraction tile")
	}

	f.steps(3, core.ActionRight)
	if got := f.rec.count(event.PlayerExtracted); got != 4 {
		t.Errorf("player-extracted emitted %d times, expected every tick (4)", got)
	}
	if f.player.X != 7*ts {
		t.Error("an extracted player should not move")
	}
	if f.player.Kill(f.rec) {
		t.Error("Kill() should not affect an extracted player")
	}
	if f.player.State() != StateExtracted {
		t.Errorf("State() = %v, expected extracted", f.player.State())
	}
}

func TestExtractionBlockedWhileDead(t *testing.T) {
	f := newFixture(map[[2]int]int{{9, 7}: config.TileExtraction})
	f.step()
	f.player.Kill(f.rec)
	f.player.Place(7*ts, floorY)

	f.steps(10)
	if f.player.Extracted {
		t.Error("a dead player must not reach extraction")
	}
	if f.rec.count(event.PlayerExtracted) != 0 {
		t.Error("player-extracted emitted while dead")
	}
}

func TestInteractOpensBox(t *testing.T) {
	box := object.New("box", object.KindBox, core.NewRect(3*ts, 9*ts, ts, ts), 90)
	f := newFixture(nil, box)
	f.step()
	f.player.Place(3*ts-32, floorY)

	f.steps(89, core.ActionInteract)
	if f.player.State() != StateInteracting {
		t.Errorf("State() = %v, expected interacting", f.player.State())
	}
	if box.Completed {
		t.Fatal("completed before the required time")
	}

	f.step(core.ActionInteract)
	if !box.Completed {
		t.Fatal("box should complete on tick 90")
	}
	if len(f.player.Inventory.Cards()) != 1 {
		t.Errorf("inventory holds %d cards, expected 1", len(f.player.Inventory.Cards()))
	}
	f.steps(30, core.ActionInteract)
	if f.rec.count(event.BoxOpened) != 1 {
		t.Errorf("box-opened emitted %d times, expected 1", f.rec.count(event.BoxOpened))
	}
	found := f.rec.count(event.RareCardFound) + f.rec.count(event.CommonCardFound)
	if found != 1 {
		t.Errorf("card found events = %d, expected 1", found)
	}
}

func TestInteractReleaseResets(t *testing.T) {
	box := object.New("box", object.KindBox, core.NewRect(3*ts, 9*ts, ts, ts), 90)
	f := newFixture(nil, box)
	f.step()
	f.player.Place(3*ts-32, floorY)

	f.steps(60, core.ActionInteract)
	f.step()
	if box.Progress != 0 {
		t.Errorf("Progress = %d after release, expected 0", box.Progress)
	}
}

func TestSwitchingTargetReleases(t *testing.T) {
	a := object.New("a", object.KindBox, core.NewRect(2*ts, 9*ts, ts, ts), 90)
	b := object.New("b", object.KindBox, core.NewRect(8*ts, 9*ts, ts, ts), 90)
	f := newFixture(nil, a, b)
	f.step()
	f.player.Place(2*ts, floorY)

	f.steps(30, core.ActionInteract)
	if f.player.Current != a || a.Progress != 30 {
		t.Fatalf("target %v progress %d, expected a at 30", f.player.Current, a.Progress)
	}

	f.player.Place(8*ts, floorY)
	f.step(core.ActionInteract)
	if f.player.Current != b {
		t.Error("target should switch to the nearer box")
	}
	if a.Progress != 0 {
		t.Errorf("old target progress = %d, expected reset to 0", a.Progress)
	}
}

func TestFullInventoryExcludesContainers(t *testing.T) {
	box := object.New("box", object.KindBox, core.NewRect(3*ts, 9*ts, ts, ts), 90)
	f := newFixture(nil, box)
	for i := 0; i < f.cfg.Inventory.CardSlots; i++ {
		f.player.Inventory.AddCard(item.Card{Rank: 2})
	}
	f.step()
	f.player.Place(3*ts-32, floorY)

	f.steps(100, core.ActionInteract)
	if f.player.Current != nil || box.Progress != 0 {
		t.Error("a full inventory should keep containers out of reach")
	}
}

func TestLadderClimb(t *testing.T) {
	ladder := object.New("ladder", object.KindLadder, core.NewRect(3*ts, 6*ts, ts, 4*ts), 0)
	f := newFixture(nil, ladder)
	f.step()
	f.player.Place(3*ts, floorY)

	f.step(core.ActionUp)
	if !f.player.Climbing || f.player.Y != floorY-f.cfg.Player.ClimbSpeed {
		t.Fatalf("Climbing = %v, Y = %d, expected climb of %d px", f.player.Climbing, f.player.Y, f.cfg.Player.ClimbSpeed)
	}

	f.steps(200, core.ActionUp)
	top := 6*ts - f.cfg.Player.Height
	if f.player.Y != top {
		t.Errorf("Y = %d, expected clamp at ladder top %d", f.player.Y, top)
	}

	// Holding still on the ladder bypasses gravity.
	f.steps(20)
	if f.player.Y != top || f.player.State() != StateClimbing {
		t.Errorf("Y = %d, state %v, expected to hang at %d", f.player.Y, f.player.State(), top)
	}

	f.steps(200, core.ActionDown)
	if f.player.Y != floorY {
		t.Errorf("Y = %d, expected clamp at ladder bottom %d", f.player.Y, floorY)
	}

	f.steps(10, core.ActionUp)
	f.step(core.ActionJump)
	if f.player.Climbing {
		t.Error("jump should detach from the ladder")
	}
}

func TestComputerMenu(t *testing.T) {
	pc := object.New("pc", object.KindComputer, core.NewRect(3*ts, 9*ts, ts, ts), 60)
	f := newFixture(nil, pc)
	f.player.Inventory.AddComputerCard()
	f.step()
	f.player.Place(3*ts-32, floorY)

	f.steps(60, core.ActionInteract)
	if !pc.MenuOpen() {
		t.Fatal("computer menu should open on completion")
	}
	if f.player.Inventory.HasComputerCard() {
		t.Error("unlocking should consume the computer card")
	}

	x := f.player.X
	f.step(core.ActionLeft)
	if f.player.X != x {
		t.Error("movement must be suppressed while the menu is open")
	}

	f.step(core.ActionDown)
	f.step(core.ActionDown) // held, not a new press
	if pc.MenuCursor() != 1 {
		t.Errorf("MenuCursor() = %d, expected 1", pc.MenuCursor())
	}

	out := f.step(core.ActionConfirm)
	if len(out.Commands) != 1 || out.Commands[0] != object.CommandDisableDogs {
		t.Errorf("Commands = %v, expected [DisableDogs]", out.Commands)
	}
	if pc.MenuOpen() {
		t.Error("menu should close after a selection")
	}
	if f.rec.count(event.ComputerUnlocked) != 1 {
		t.Errorf("computer-unlocked emitted %d times, expected 1", f.rec.count(event.ComputerUnlocked))
	}
}

func TestComputerMenuBack(t *testing.T) {
	pc := object.New("pc", object.KindComputer, core.NewRect(3*ts, 9*ts, ts, ts), 1)
	f := newFixture(nil, pc)
	f.player.Inventory.AddComputerCard()
	f.step()
	f.player.Place(3*ts-32, floorY)

	f.step(core.ActionInteract)
	out := f.step(core.ActionBack)
	if pc.MenuOpen() || len(out.Commands) != 0 {
		t.Error("Back should close the menu without a command")
	}
}

func TestComputerNeedsCard(t *testing.T) {
	pc := object.New("pc", object.KindComputer, core.NewRect(3*ts, 9*ts, ts, ts), 1)
	f := newFixture(nil, pc)
	f.step()
	f.player.Place(3*ts-32, floorY)

	f.steps(5, core.ActionInteract)
	if pc.Completed || f.player.Current != nil {
		t.Error("computer without a computer card should not be a target")
	}
}
