package text

import "testing"

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	tests := []struct {
		key  string
		vars []any
		want string
	}{
		{"hud.score", []any{42}, "Score 42"},
		{"hud.cards", []any{2, 5}, "Cards 2/5"},
		{"hud.holding", []any{"box", 50}, "Opening box 50%"},
		{"menu.disable-dogs", nil, "Disable dogs"},
		{"Mind the gap", nil, "Mind the gap"},
		{"", nil, ""},
	}

	for _, tt := range tests {
		if got := c.Get(tt.key, tt.vars...); got != tt.want {
			t.Errorf("Get(%q) = %q, expected %q", tt.key, got, tt.want)
		}
	}
}

func TestTutorialKeysPresent(t *testing.T) {
	c := Default()
	for _, key := range []string{"tutorial.move", "tutorial.interact", "tutorial.ladder", "tutorial.extract"} {
		if !c.Has(key) {
			t.Errorf("Has(%q) = false, expected true", key)
		}
	}
	if c.Has("tutorial.missing") {
		t.Error("Has(tutorial.missing) = true, expected false")
	}
}

func TestParseOverride(t *testing.T) {
	c := Parse([]byte("msgid \"hud.paused\"\nmsgstr \"Pausa\"\n"))
	if got := c.Get("hud.paused"); got != "Pausa" {
		t.Errorf("Get(hud.paused) = %q, expected Pausa", got)
	}
}
