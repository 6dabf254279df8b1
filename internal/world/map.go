package world

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"wolfcast/internal/texture"
)

// ErrMalformedMap is returned for grids that are empty, ragged or contain
// unusable tile codes.
var ErrMalformedMap = errors.New("malformed map")

// TileCode identifies the kind of a grid cell. TileEmpty is passable.
type TileCode int

const TileEmpty TileCode = 0

// Map is a rectangular tile grid indexed content[x][y]. A Map is never
// modified after construction; edits produce a new Map.
type Map struct {
	content [][]TileCode
	width   int
	height  int
	atlas   Atlas
}

// NewMap validates and copies content. Every column must have the same
// length and every code must be non-negative.
func NewMap(content [][]int, atlas Atlas) (*Map, error) {
	if len(content) == 0 || len(content[0]) == 0 {
		return nil, fmt.Errorf("%w: grid is empty", ErrMalformedMap)
	}

	width := len(content)
	height := len(content[0])
	grid := make([][]TileCode, width)
	for x, column := range content {
		if len(column) != height {
			return nil, fmt.Errorf("%w: column %d has inconsistent length: expected %d, got %d",
				ErrMalformedMap, x, height, len(column))
		}
		grid[x] = make([]TileCode, height)
		for y, code := range column {
			if code < 0 {
				return nil, fmt.Errorf("%w: negative tile code %d at (%d, %d)", ErrMalformedMap, code, x, y)
			}
			grid[x][y] = TileCode(code)
		}
	}

	return &Map{content: grid, width: width, height: height, atlas: atlas}, nil
}

// MustNewMap is NewMap that panics on malformed input. Intended for built-in
// maps and tests.
func MustNewMap(content [][]int, atlas Atlas) *Map {
	m, err := NewMap(content, atlas)
	if err != nil {
		panic(err)
	}
	return m
}

// Width is the number of columns (x extent).
func (m *Map) Width() int { return m.width }

// Height is the number of rows (y extent).
func (m *Map) Height() int { return m.height }

// Atlas returns the texture atlas the map resolves tiles with.
func (m *Map) Atlas() Atlas { return m.atlas }

// IsOutOf reports whether (x, y) lies outside the grid.
func (m *Map) IsOutOf(x, y int) bool {
	return x < 0 || x >= m.width || y < 0 || y >= m.height
}

// Collide reports whether (x, y) holds a solid tile. Cells outside the grid
// never collide; callers that must not walk off the grid check IsOutOf too.
func (m *Map) Collide(x, y int) bool {
	if m.IsOutOf(x, y) {
		return false
	}
	return m.content[x][y] != TileEmpty
}

// Walkable reports whether a mover may enter (x, y): inside the grid and
// not solid.
func (m *Map) Walkable(x, y int) bool {
	return !m.IsOutOf(x, y) && !m.Collide(x, y)
}

// TileAt returns the code at (x, y); ok is false outside the grid.
func (m *Map) TileAt(x, y int) (code TileCode, ok bool) {
	if m.IsOutOf(x, y) {
		return TileEmpty, false
	}
	return m.content[x][y], true
}

// BlockAt resolves the texture of the tile at (x, y). Empty and off-grid
// cells resolve to nil.
func (m *Map) BlockAt(x, y int) *texture.Texture {
	code, ok := m.TileAt(x, y)
	if !ok {
		return nil
	}
	return m.atlas.Resolve(code)
}

// Textures lists the distinct textures the map can resolve to.
func (m *Map) Textures() []*texture.Texture {
	seen := make(map[*texture.Texture]bool)
	var out []*texture.Texture
	add := func(t *texture.Texture) {
		if t != nil && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for _, column := range m.content {
		for _, code := range column {
			if code != TileEmpty {
				add(m.atlas.Resolve(code))
			}
		}
	}
	return out
}

// String renders the grid in the map text format: one comma separated line
// per x column.
func (m *Map) String() string {
	var sb strings.Builder
	for x, column := range m.content {
		if x > 0 {
			sb.WriteByte('\n')
		}
		for y, code := range column {
			if y > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(int(code)))
		}
	}
	return sb.String()
}
