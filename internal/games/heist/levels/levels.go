// Package levels loads world files: the room graph plus one ASCII tile map
// per room. It implements world.LayoutSource.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-heist/internal/config"
	"github.com/vovakirdan/tui-heist/internal/games/heist/tile"
	"github.com/vovakirdan/tui-heist/internal/games/heist/world"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// ErrNoLayout is returned by Layout for a cell without a room.
var ErrNoLayout = errors.New("no layout for room")

// Tile characters of the ASCII maps. Marker characters are stored as their
// negative marker codes.
var tileChars = map[rune]int{
	'.': tile.Empty,
	' ': tile.Empty,
	'#': 1,
	'=': 2,
	'-': 3,
	'+': 4,
	':': 5,
	'^': config.TileDeath,
	'*': config.TileCheckpoint,
	'X': config.TileExtraction,
}

// File is the YAML shape of a world file.
type File struct {
	Name  string     `yaml:"name"`
	Start Position   `yaml:"start"`
	Rooms []RoomFile `yaml:"rooms"`
}

// Position is a cell of the world grid.
type Position struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// RoomFile describes one room.
type RoomFile struct {
	Row      int         `yaml:"row"`
	Col      int         `yaml:"col"`
	Type     string      `yaml:"type"`
	Index    int         `yaml:"index"`
	Open     *bool       `yaml:"open"` // Defaults to true
	Tutorial string      `yaml:"tutorial"`
	Tiles    []string    `yaml:"tiles"`
	Spawns   []SpawnFile `yaml:"spawns"`
}

// SpawnFile places a marker on a tile without drawing it into the map.
type SpawnFile struct {
	Marker string `yaml:"marker"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
}

// Source is a parsed world file.
type Source struct {
	name    string
	start   Position
	rooms   []world.RoomInfo
	layouts map[Position]world.Layout
}

// Default returns the embedded world.
func Default() (*Source, error) {
	return Parse(defaultWorldYAML)
}

// Load reads a world file from disk.
func Load(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world %s: %w", path, err)
	}
	src, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse world %s: %w", path, err)
	}
	return src, nil
}

// Parse decodes a world file. Room geometry is checked later against the
// simulation config by world.Check.
func Parse(data []byte) (*Source, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Rooms) == 0 {
		return nil, errors.New("world has no rooms")
	}

	s := &Source{
		name:    f.Name,
		start:   f.Start,
		layouts: make(map[Position]world.Layout, len(f.Rooms)),
	}
	counts := map[world.RoomType]int{}

	for _, rf := range f.Rooms {
		pos := Position{Row: rf.Row, Col: rf.Col}
		if _, dup := s.layouts[pos]; dup {
			return nil, fmt.Errorf("room (%d,%d) defined twice", rf.Row, rf.Col)
		}
		typ, err := world.ParseRoomType(rf.Type)
		if err != nil {
			return nil, fmt.Errorf("room (%d,%d): %w", rf.Row, rf.Col, err)
		}
		layout, err := decodeRoom(rf)
		if err != nil {
			return nil, fmt.Errorf("room (%d,%d): %w", rf.Row, rf.Col, err)
		}

		counts[typ]++
		index := rf.Index
		if index == 0 {
			index = counts[typ]
		}
		open := true
		if rf.Open != nil {
			open = *rf.Open
		}

		s.rooms = append(s.rooms, world.RoomInfo{
			Row:          rf.Row,
			Col:          rf.Col,
			Type:         typ,
			Index:        index,
			Open:         open,
			TutorialText: rf.Tutorial,
		})
		s.layouts[pos] = layout
	}
	return s, nil
}

func decodeRoom(rf RoomFile) (world.Layout, error) {
	var l world.Layout
	for r, line := range rf.Tiles {
		row, err := DecodeRow(line)
		if err != nil {
			return world.Layout{}, fmt.Errorf("row %d: %w", r, err)
		}
		l.Grid = append(l.Grid, row)
	}
	for _, sp := range rf.Spawns {
		runes := []rune(sp.Marker)
		if len(runes) != 1 || !tile.Marker(runes[0]).Valid() {
			return world.Layout{}, fmt.Errorf("spawn marker %q: %w", sp.Marker, tile.ErrUnknownTile)
		}
		l.Spawns = append(l.Spawns, world.Spawn{Marker: tile.Marker(runes[0]), X: sp.X, Y: sp.Y})
	}
	return l, nil
}

// DecodeRow converts one ASCII map row into tile ids and marker codes.
func DecodeRow(line string) ([]int, error) {
	row := make([]int, 0, len(line))
	for i, ch := range line {
		if id, ok := tileChars[ch]; ok {
			row = append(row, id)
			continue
		}
		if m := tile.Marker(ch); m.Valid() {
			row = append(row, m.Code())
			continue
		}
		return nil, fmt.Errorf("column %d: character %q: %w", i, ch, tile.ErrUnknownTile)
	}
	return row, nil
}

// EncodeRow is the inverse of DecodeRow. Unknown ids render as '?'.
func EncodeRow(row []int) string {
	var b strings.Builder
	for _, id := range row {
		b.WriteRune(charFor(id))
	}
	return b.String()
}

func charFor(id int) rune {
	if id < 0 {
		if m, ok := tile.MarkerFromCode(id); ok {
			return rune(m)
		}
		return '?'
	}
	if id == tile.Empty {
		return '.'
	}
	for ch, v := range tileChars {
		if v == id && ch != ' ' {
			return ch
		}
	}
	return '?'
}

// Name returns the world's display name.
func (s *Source) Name() string { return s.name }

// Rooms implements world.LayoutSource.
func (s *Source) Rooms() []world.RoomInfo {
	return slices.Clone(s.rooms)
}

// Start implements world.LayoutSource.
func (s *Source) Start() (row, col int) {
	return s.start.Row, s.start.Col
}

// Layout implements world.LayoutSource. The returned grid is a copy.
func (s *Source) Layout(row, col int) (world.Layout, error) {
	l, ok := s.layouts[Position{Row: row, Col: col}]
	if !ok {
		return world.Layout{}, fmt.Errorf("%w (%d,%d)", ErrNoLayout, row, col)
	}
	out := world.Layout{Spawns: slices.Clone(l.Spawns)}
	for _, r := range l.Grid {
		out.Grid = append(out.Grid, slices.Clone(r))
	}
	return out, nil
}

// Only returns a copy of the world restricted to rooms of the given types.
// Layouts of dropped rooms are removed too, so transitions into them fail.
func (s *Source) Only(types ...world.RoomType) *Source {
	out := &Source{
		name:    s.name,
		start:   s.start,
		layouts: make(map[Position]world.Layout),
	}
	for _, info := range s.rooms {
		if !slices.Contains(types, info.Type) {
			continue
		}
		pos := Position{Row: info.Row, Col: info.Col}
		out.rooms = append(out.rooms, info)
		out.layouts[pos] = s.layouts[pos]
	}
	return out
}
