// Package world owns the room graph and runs the simulation tick.
package world

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-heist/internal/games/heist/enemy"
	"github.com/vovakirdan/tui-heist/internal/games/heist/object"
)

var (
	// ErrInvalidTransition is returned when the neighbouring cell has no open room.
	ErrInvalidTransition = errors.New("invalid room transition")
	// ErrMissingLevelAsset is returned when a room layout cannot be loaded.
	ErrMissingLevelAsset = errors.New("missing level asset")
)

// RoomType classifies rooms.
type RoomType int

const (
	RoomTutorial RoomType = iota
	RoomLevel
	RoomElevator
	RoomExtraction
	RoomGround
)

func (t RoomType) String() string {
	switch t {
	case RoomTutorial:
		return "tutorial"
	case RoomLevel:
		return "level"
	case RoomElevator:
		return "elevator"
	case RoomExtraction:
		return "extraction"
	case RoomGround:
		return "ground"
	default:
		return "unknown"
	}
}

// ParseRoomType converts a layout file name into a RoomType.
func ParseRoomType(s string) (RoomType, error) {
	for t := RoomTutorial; t <= RoomGround; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown room type %q", s)
}

// Room is one screen of the world. Its object and enemy lists are rebuilt
// each time the room is loaded.
type Room struct {
	Type         RoomType
	Index        int
	Row, Col     int
	IsOpen       bool
	IsVisited    bool
	TutorialText string

	Objects []*object.Object
	Drones  []*enemy.Enemy
	Dogs    []*enemy.Enemy

	consumed mapset.Set[string]
}

// NewRoom creates an unloaded room.
func NewRoom(info RoomInfo) *Room {
	return &Room{
		Type:         info.Type,
		Index:        info.Index,
		Row:          info.Row,
		Col:          info.Col,
		IsOpen:       info.Open,
		TutorialText: info.TutorialText,
		consumed:     mapset.New[string](),
	}
}

// Enemies returns drones followed by dogs.
func (r *Room) Enemies() []*enemy.Enemy {
	out := make([]*enemy.Enemy, 0, len(r.Drones)+len(r.Dogs))
	out = append(out, r.Drones...)
	return append(out, r.Dogs...)
}

// Consumed reports whether the object with id fired its effect on an earlier visit.
func (r *Room) Consumed(id string) bool {
	return r.consumed.Has(id)
}

func (r *Room) remember() {
	for _, o := range r.Objects {
		if o.Consumed() {
			r.consumed.Put(o.ID)
		}
	}
}

func (r *Room) unload() {
	r.Objects = nil
	r.Drones = nil
	r.Dogs = nil
}

// leave records consumed objects and drops the room's live lists.
func (r *Room) leave() {
	r.remember()
	r.unload()
}
