// Package text holds the player-facing strings: tutorial hints, HUD labels
// and the computer menu. Rooms refer to tutorial text by key.
package text

import (
	_ "embed"

	"github.com/leonelquinteros/gotext"
)

//go:embed locale/en.po
var englishPO []byte

// Catalog resolves message keys. Unknown keys are returned unchanged, so a
// room may also carry literal tutorial text.
type Catalog struct {
	po *gotext.Po
}

// Default returns the embedded English catalog.
func Default() *Catalog {
	return Parse(englishPO)
}

// Parse builds a catalog from the contents of a .po file.
func Parse(data []byte) *Catalog {
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{po: po}
}

// Get returns the message for key, formatted with vars when given.
func (c *Catalog) Get(key string, vars ...any) string {
	if key == "" {
		return ""
	}
	return c.po.Get(key, vars...)
}

// Has reports whether key has a translation.
func (c *Catalog) Has(key string) bool {
	return key != "" && c.po.Get(key) != key
}
