package heist

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/enemy"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
	"github.com/vovakirdan/tui-heist/internal/games/heist/player"
)

// Visual characters for rendering
const (
	PlayerChar    = '@'
	DroneChar     = 'D'
	DogChar       = 'G'
	LadderChar    = 'H'
	BoxChar       = '▣'
	LockerChar    = '▤'
	CardChar      = '▭'
	ComputerChar  = '▦'
	OpenedChar    = '·'
	UnknownChar   = '?'
	hudRows       = 1
	statusRows    = 1
	minTileCells  = 1
	menuMinWidth  = 24
	progressWidth = 10
)

type glyph struct {
	r rune
	c core.Color
}

// tileGlyphs is keyed by palette name so custom palettes keep their look.
var tileGlyphs = map[string]glyph{
	"wall":       {'█', core.ColorGray},
	"floor":      {'▀', core.ColorWhite},
	"platform":   {'═', core.ColorYellow},
	"crate":      {'▒', core.ColorOrange},
	"backdrop":   {'░', core.ColorGray},
	"spikes":     {'^', core.ColorRed},
	"checkpoint": {'⚑', core.ColorGreen},
	"extraction": {'▚', core.ColorGreen},
}

// viewport maps room pixels to screen cells. The room is scaled to whole
// cells per tile and centered horizontally below the HUD line.
type viewport struct {
	ox, oy     int
	cw, ch     int // cells per tile
	tileSize   int
	cols, rows int // tiles
}

func newViewport(dst *core.Screen, wc config.WorldConfig) viewport {
	cw := max(minTileCells, dst.Width()/wc.ScreenCols)
	ch := max(minTileCells, (dst.Height()-hudRows-statusRows)/wc.ScreenRows)
	return viewport{
		ox:       max(0, (dst.Width()-cw*wc.ScreenCols)/2),
		oy:       hudRows,
		cw:       cw,
		ch:       ch,
		tileSize: wc.TileSize,
		cols:     wc.ScreenCols,
		rows:     wc.ScreenRows,
	}
}

// cell converts a pixel position to a screen cell.
func (v viewport) cell(px, py int) (int, int) {
	return v.ox + px*v.cw/v.tileSize, v.oy + py*v.ch/v.tileSize
}

// rect converts a pixel rectangle to a screen rectangle of at least one cell.
func (v viewport) rect(r core.Rect) core.Rect {
	x0, y0 := v.cell(r.X, r.Y)
	x1, y1 := v.cell(r.Right(), r.Bottom())
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

func fill(dst *core.Screen, r core.Rect, g glyph) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			dst.SetColor(x, y, g.r, g.c)
		}
	}
}

// Render draws the current room, its entities and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.sim == nil {
		g.drawCenteredMessage(dst, "NO WORLD", errorLine(g.err))
		return
	}

	v := newViewport(dst, g.cfg.World)
	g.drawTiles(dst, v)
	g.drawObjects(dst, v)
	g.drawEnemies(dst, v)
	g.drawPlayer(dst, v)
	g.drawHUD(dst)
	g.drawStatus(dst)

	p := g.sim.Player()
	switch {
	case p.Extracted:
		g.drawCenteredMessage(dst, "EXTRACTED",
			g.catalog.Get("hud.extracted", p.Inventory.Score())+"  |  R to restart")
	case g.paused:
		g.drawCenteredMessage(dst, strings.ToUpper(g.catalog.Get("hud.paused")), "Press P to resume")
	case p.Current != nil && p.Current.MenuOpen():
		g.drawMenu(dst, p.Current)
	}
}

func (g *Game) drawTiles(dst *core.Screen, v viewport) {
	palette := g.sim.Palette()
	g.sim.Grid().Each(func(row, col, id int) {
		if id == 0 {
			return
		}
		gl := glyph{UnknownChar, core.ColorMagenta}
		if t, ok := palette.Get(id); ok {
			if tg, ok := tileGlyphs[t.Name]; ok {
				gl = tg
			}
		}
		fill(dst, core.NewRect(v.ox+col*v.cw, v.oy+row*v.ch, v.cw, v.ch), gl)
	})
}

func (g *Game) drawObjects(dst *core.Screen, v viewport) {
	// Ladders first so other objects stay visible in front of them.
	for _, o := range g.sim.Room().Objects {
		if o.Kind == object.KindLadder {
			fill(dst, v.rect(o.Rect), glyph{LadderChar, core.ColorYellow})
		}
	}
	for _, o := range g.sim.Room().Objects {
		if o.Kind == object.KindLadder {
			continue
		}
		fill(dst, v.rect(o.Rect), objectGlyph(o))
	}
}

func objectGlyph(o *object.Object) glyph {
	if o.Completed && !o.MenuOpen() {
		return glyph{OpenedChar, core.ColorGray}
	}
	switch o.Kind {
	case object.KindBox:
		return glyph{BoxChar, core.ColorOrange}
	case object.KindRedBox:
		return glyph{BoxChar, core.ColorRed}
	case object.KindMetalLocker:
		return glyph{LockerChar, core.ColorCyan}
	case object.KindWoodLocker:
		return glyph{LockerChar, core.ColorOrange}
	case object.KindCard:
		return glyph{CardChar, core.ColorYellow}
	case object.KindComputer:
		return glyph{ComputerChar, core.ColorBlue}
	default:
		return glyph{UnknownChar, core.ColorMagenta}
	}
}

func (g *Game) drawEnemies(dst *core.Screen, v viewport) {
	room := g.sim.Room()
	for _, e := range room.Enemies() {
		gl := glyph{DroneChar, core.ColorRed}
		if e.Variant == enemy.Dog {
			gl.r = DogChar
		}
		switch e.State {
		case enemy.StateDisabled:
			gl.c = core.ColorGray
		case enemy.StateChasing:
			gl.c = core.ColorMagenta
		}
		fill(dst, v.rect(e.Bounds()), gl)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v viewport) {
	p := g.sim.Player()
	gl := glyph{PlayerChar, core.ColorCyan}
	switch p.State() {
	case player.StateDead:
		gl = glyph{'x', core.ColorRed}
	case player.StateExtracted:
		gl.c = core.ColorGreen
	case player.StateInteracting:
		gl.c = core.ColorYellow
	}
	fill(dst, v.rect(p.Bounds()), gl)
}

// drawHUD renders the top line: room, score, cards and deaths.
func (g *Game) drawHUD(dst *core.Screen) {
	p := g.sim.Player()
	inv := p.Inventory
	row, col := g.sim.World().Position()

	parts := []string{
		g.catalog.Get("hud.room", row, col),
		g.catalog.Get("hud.score", inv.Score()),
		g.catalog.Get("hud.cards", len(inv.Cards()), g.cfg.Inventory.CardSlots),
	}
	if inv.HasComputerCard() {
		parts = append(parts, g.catalog.Get("hud.computer_card"))
	}
	if p.Deaths > 0 {
		parts = append(parts, g.catalog.Get("hud.deaths", p.Deaths))
	}
	dst.DrawTextColor(1, 0, " "+strings.Join(parts, "  ")+" ", core.ColorWhite)

	if cards := inv.Cards(); len(cards) > 0 {
		names := make([]string, len(cards))
		for i, c := range cards {
			names[i] = c.String()
		}
		line := strings.Join(names, " ")
		dst.DrawTextColor(dst.Width()-len([]rune(line))-2, 0, line, core.ColorYellow)
	}
}

// drawStatus renders the bottom line: respawn countdown, interaction
// progress, the latest hint or the room's tutorial text.
func (g *Game) drawStatus(dst *core.Screen) {
	p := g.sim.Player()
	y := dst.Height() - 1

	switch {
	case p.GameOver:
		secs := (p.RespawnIn() + 59) / 60
		dst.DrawTextColor(1, y, g.catalog.Get("hud.respawn", secs), core.ColorRed)
	case p.State() == player.StateInteracting:
		o := p.Current
		pct := 0
		if o.RequiredTime > 0 {
			pct = o.Progress * 100 / o.RequiredTime
		}
		label := g.catalog.Get("hud.holding", o.Kind.String(), pct)
		dst.DrawTextColor(1, y, label+" "+progressBar(pct), core.ColorYellow)
	case g.hintIn > 0:
		dst.DrawTextColor(1, y, g.hint, core.ColorGreen)
	default:
		if key := g.sim.Room().TutorialText; key != "" {
			dst.DrawTextColor(1, y, g.catalog.Get(key), core.ColorGray)
		}
	}
}

func progressBar(pct int) string {
	n := core.Clamp(pct*progressWidth/100, 0, progressWidth)
	return "[" + strings.Repeat("█", n) + strings.Repeat(" ", progressWidth-n) + "]"
}

// drawMenu renders the computer menu with the cursor on the highlighted entry.
func (g *Game) drawMenu(dst *core.Screen, pc *object.Object) {
	title := g.catalog.Get("menu.title")
	footer := g.catalog.Get("menu.footer")

	lines := make([]string, len(object.MenuOptions))
	for i, cmd := range object.MenuOptions {
		prefix := "  "
		if i == pc.MenuCursor() {
			prefix = "> "
		}
		lines[i] = prefix + g.catalog.Get(menuKey(cmd))
	}

	boxW := max(menuMinWidth, len([]rune(title)), len([]rune(footer))) + 4
	boxH := len(lines) + 6
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2
	r := core.NewRect(boxX, boxY, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawTextColor(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorCyan)
	for i, line := range lines {
		c := core.ColorWhite
		if i == pc.MenuCursor() {
			c = core.ColorYellow
		}
		dst.DrawTextColor(boxX+2, boxY+3+i, line, c)
	}
	dst.DrawTextColor(boxX+(boxW-len([]rune(footer)))/2, boxY+boxH-2, footer, core.ColorGray)
}

// menuKey returns the catalog key of a computer command, e.g. "menu.disable-drones".
func menuKey(cmd object.Command) string {
	return "menu." + strings.ReplaceAll(strings.ToLower(cmd.String()), " ", "-")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

func errorLine(err error) string {
	if err == nil {
		return "world not loaded"
	}
	return fmt.Sprint(err)
}
