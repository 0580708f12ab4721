// Package object implements the interactable objects placed in rooms and the
// hold-to-complete interaction protocol they share.
package object

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/core"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/games/heist/item"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
)

// Kind is the variant tag of an object.
type Kind int

const (
	KindBox Kind = iota
	KindRedBox
	KindMetalLocker
	KindWoodLocker
	KindCard
	KindLadder
	KindComputer
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindRedBox:
		return "red box"
	case KindMetalLocker:
		return "metal locker"
	case KindWoodLocker:
		return "wood locker"
	case KindCard:
		return "card"
	case KindLadder:
		return "ladder"
	case KindComputer:
		return "computer"
	default:
		return "unknown"
	}
}

// KindFromMarker maps a spawn marker to an object kind.
func KindFromMarker(m tile.Marker) (Kind, bool) {
	switch m {
	case tile.MarkerBox:
		return KindBox, true
	case tile.MarkerRedBox:
		return KindRedBox, true
	case tile.MarkerMetalLocker:
		return KindMetalLocker, true
	case tile.MarkerWoodLocker:
		return KindWoodLocker, true
	case tile.MarkerCard:
		return KindCard, true
	case tile.MarkerLadder:
		return KindLadder, true
	case tile.MarkerComputer:
		return KindComputer, true
	}
	return 0, false
}

// State is the interaction protocol state.
type State int

const (
	StateIdle State = iota
	StateHolding
	StateCompleted
)

// Object is one interactable placed in a room.
type Object struct {
	ID   string // stable within a room, used to remember consumed objects
	Kind Kind
	Rect core.Rect

	Progress     int
	RequiredTime int
	Completed    bool
	Interactable bool

	opened bool
	loot   *item.Card
	menu   menu
}

// Footprint returns the object size in pixels for a tile size.
// Lockers stand two tiles tall.
func Footprint(k Kind, tileSize int) (w, h int) {
	switch k {
	case KindMetalLocker, KindWoodLocker:
		return tileSize, 2 * tileSize
	default:
		return tileSize, tileSize
	}
}

// RequiredTicks returns the hold duration for a kind. Ladders need none.
func RequiredTicks(k Kind, cfg config.InteractionConfig) int {
	switch k {
	case KindBox:
		return cfg.BoxTicks
	case KindRedBox:
		return cfg.RedBoxTicks
	case KindMetalLocker:
		return cfg.MetalLockerTicks
	case KindWoodLocker:
		return cfg.WoodLockerTicks
	case KindCard:
		return cfg.CardTicks
	case KindComputer:
		return cfg.ComputerTicks
	default:
		return 0
	}
}

// New creates an object with the given bounds.
func New(id string, k Kind, rect core.Rect, requiredTime int) *Object {
	return &Object{
		ID:           id,
		Kind:         k,
		Rect:         rect,
		RequiredTime: requiredTime,
		Interactable: k != KindLadder,
	}
}

// Spawn creates an object standing on the bottom of tile (col, row) using the
// configured footprint and duration.
func Spawn(k Kind, col, row, tileSize int, cfg config.InteractionConfig) *Object {
	w, h := Footprint(k, tileSize)
	id := fmt.Sprintf("%s@%d,%d", k, col, row)
	rect := core.NewRect(col*tileSize, (row+1)*tileSize-h, w, h)
	return New(id, k, rect, RequiredTicks(k, cfg))
}

// State returns the protocol state.
func (o *Object) State() State {
	switch {
	case o.Completed:
		return StateCompleted
	case o.Progress > 0:
		return StateHolding
	default:
		return StateIdle
	}
}

// Hold advances the protocol by one tick. held is the interact input state.
// It returns true on the tick the object completes.
func (o *Object) Hold(held bool) bool {
	if !o.Interactable || o.Completed {
		return false
	}
	if !held {
		o.Progress = 0
		return false
	}
	o.Progress++
	if o.Progress >= o.RequiredTime {
		o.Progress = o.RequiredTime
		o.Completed = true
		o.Interactable = false
		return true
	}
	return false
}

// Release drops partial progress, as when the player walks to another target.
func (o *Object) Release() {
	if !o.Completed {
		o.Progress = 0
	}
}

// Candidate reports whether the object may be targeted by a player carrying inv.
func (o *Object) Candidate(inv *item.Inventory) bool {
	if o.Kind == KindComputer && o.MenuOpen() {
		return true
	}
	if !o.Interactable || o.Completed {
		return false
	}
	switch o.Kind {
	case KindBox, KindRedBox, KindMetalLocker, KindWoodLocker:
		return !inv.CardsFull()
	case KindCard:
		return !inv.ComputerCardsFull()
	case KindComputer:
		return inv.HasComputerCard()
	default:
		return false
	}
}

// Open applies the one-shot effect of a completed object and returns the
// events it produced. Calls after the first are no-ops.
func (o *Object) Open(inv *item.Inventory, rng *rand.Rand) []event.Event {
	if !o.Completed || o.opened {
		return nil
	}
	o.opened = true

	at := func(k event.Kind, payload string) event.Event {
		return event.Event{Kind: k, Payload: payload, X: o.Rect.X, Y: o.Rect.Y}
	}

	switch o.Kind {
	case KindBox:
		return o.drawLoot(inv, rng, item.OddsCommon, at(event.BoxOpened, event.PayloadPaper))
	case KindRedBox:
		return o.drawLoot(inv, rng, item.OddsAce, at(event.BoxOpened, event.PayloadRed))
	case KindMetalLocker:
		return o.drawLoot(inv, rng, item.OddsFace, at(event.LockerOpened, event.PayloadMetal))
	case KindWoodLocker:
		return o.drawLoot(inv, rng, item.OddsFace, at(event.LockerOpened, event.PayloadWood))
	case KindCard:
		inv.AddComputerCard()
		return []event.Event{at(event.CardTaken, "")}
	case KindComputer:
		if !inv.UseComputerCard() {
			return nil
		}
		o.menu = menu{open: true}
		return []event.Event{at(event.ComputerUnlocked, "")}
	}
	return nil
}

func (o *Object) drawLoot(inv *item.Inventory, rng *rand.Rand, odds item.Odds, opened event.Event) []event.Event {
	card := item.Draw(rng, odds)
	if !inv.AddCard(card) {
		return []event.Event{opened}
	}
	o.loot = &card

	found := event.Event{Kind: event.CommonCardFound, Payload: card.String(), X: opened.X, Y: opened.Y}
	if card.Rare() {
		found.Kind = event.RareCardFound
	}
	return []event.Event{opened, found}
}

// Loot returns the card drawn from this object, if any.
func (o *Object) Loot() (item.Card, bool) {
	if o.loot == nil {
		return item.Card{}, false
	}
	return *o.loot, true
}

// Consumed reports whether the one-shot effect already fired.
func (o *Object) Consumed() bool {
	return o.opened
}

// MarkConsumed restores an object whose effect fired on an earlier visit.
func (o *Object) MarkConsumed() {
	if o.Kind == KindLadder {
		return
	}
	o.Progress = o.RequiredTime
	o.Completed = true
	o.Interactable = false
	o.opened = true
}
