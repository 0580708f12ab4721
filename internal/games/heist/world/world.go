package world

import (
	"fmt"

	"github.com/vovakirdan/tui-heist/internal/config"
)

// World is the fixed grid of rooms with a cursor on the current one.
type World struct {
	rooms    [config.WorldRows][config.WorldCols]*Room
	row, col int
}

// NewWorld creates a world from room descriptions.
func NewWorld(infos []RoomInfo) (*World, error) {
	w := &World{}
	for _, info := range infos {
		if !inGrid(info.Row, info.Col) {
			return nil, fmt.Errorf("room (%d,%d) outside the %dx%d world", info.Row, info.Col, config.WorldRows, config.WorldCols)
		}
		if w.rooms[info.Row][info.Col] != nil {
			return nil, fmt.Errorf("room (%d,%d) defined twice", info.Row, info.Col)
		}
		w.rooms[info.Row][info.Col] = NewRoom(info)
	}
	return w, nil
}

func inGrid(row, col int) bool {
	return row >= 0 && row < config.WorldRows && col >= 0 && col < config.WorldCols
}

// Room returns the room at (row, col) or nil.
func (w *World) Room(row, col int) *Room {
	if !inGrid(row, col) {
		return nil
	}
	return w.rooms[row][col]
}

// Current returns the room under the cursor.
func (w *World) Current() *Room {
	return w.rooms[w.row][w.col]
}

// Position returns the cursor.
func (w *World) Position() (row, col int) {
	return w.row, w.col
}

// SetPosition moves the cursor without graph rules, as for the start room or a respawn.
func (w *World) SetPosition(row, col int) error {
	if w.Room(row, col) == nil {
		return fmt.Errorf("set position (%d,%d): %w", row, col, ErrInvalidTransition)
	}
	w.row, w.col = row, col
	return nil
}

// Move steps the cursor by (dr, dc) if the target room exists and is open.
// The departing room is marked visited.
func (w *World) Move(dr, dc int) error {
	target := w.Room(w.row+dr, w.col+dc)
	if target == nil || !target.IsOpen {
		return fmt.Errorf("move (%d,%d) from (%d,%d): %w", dr, dc, w.row, w.col, ErrInvalidTransition)
	}
	w.Current().IsVisited = true
	w.row += dr
	w.col += dc
	return nil
}

// MoveLeft moves to the western neighbour.
func (w *World) MoveLeft() bool { return w.Move(0, -1) == nil }

// MoveRight moves to the eastern neighbour.
func (w *World) MoveRight() bool { return w.Move(0, 1) == nil }

// MoveUp moves to the northern neighbour.
func (w *World) MoveUp() bool { return w.Move(-1, 0) == nil }

// MoveDown moves to the southern neighbour.
func (w *World) MoveDown() bool { return w.Move(1, 0) == nil }

// Each calls fn for every existing room in row-major order.
func (w *World) Each(fn func(r *Room)) {
	for row := range w.rooms {
		for _, r := range w.rooms[row] {
			if r != nil {
				fn(r)
			}
		}
	}
}
