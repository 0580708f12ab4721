package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-heist/internal/core"
)

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "Room")
	s.SetColor(5, 1, '@', core.ColorCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() has %d lines, expected 2", len(lines))
	}
	if lines[0] != "Room  " {
		t.Errorf("default-colored row = %q, expected it unstyled", lines[0])
	}
	if !strings.Contains(lines[1], "@") {
		t.Errorf("row 1 = %q, expected the player glyph", lines[1])
	}
	if !strings.HasPrefix(lines[1], "     ") {
		t.Errorf("row 1 = %q, expected blank cells first", lines[1])
	}
}

func TestColorStylesCoverPalette(t *testing.T) {
	colors := []core.Color{
		core.ColorRed, core.ColorGreen, core.ColorYellow, core.ColorBlue, core.ColorMagenta,
		core.ColorCyan, core.ColorWhite, core.ColorOrange, core.ColorGray,
	}
	for _, c := range colors {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("no style for color %d", c)
		}
	}
	if _, ok := colorStyles[core.ColorDefault]; ok {
		t.Error("ColorDefault should render without a style")
	}
}
