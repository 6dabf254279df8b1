package world

import (
	"errors"
	"image/color"
	"testing"

	"wolfcast/internal/texture"
)

func TestMapBounds(t *testing.T) {
	m := MustNewMap(DefaultContent(), Atlas{})

	tests := []struct {
		x, y     int
		out      bool
		collide  bool
		walkable bool
	}{
		{0, 0, false, true, false},
		{1, 1, false, false, true},
		{7, 7, false, true, false},
		{4, 9, false, false, true}, // opening in the ring
		{-1, 5, true, false, false},
		{5, -1, true, false, false},
		{10, 5, true, false, false},
		{5, 10, true, false, false},
	}

	for _, tc := range tests {
		if got := m.IsOutOf(tc.x, tc.y); got != tc.out {
			t.Errorf("IsOutOf(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.out)
		}
		if got := m.Collide(tc.x, tc.y); got != tc.collide {
			t.Errorf("Collide(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.collide)
		}
		if got := m.Walkable(tc.x, tc.y); got != tc.walkable {
			t.Errorf("Walkable(%d,%d) = %v, want %v", tc.x, tc.y, got, tc.walkable)
		}
	}
}

func TestNewMapRequiresRectangularGrid(t *testing.T) {
	_, err := NewMap([][]int{{1, 1, 1}, {1, 0}, {1, 1, 1}}, Atlas{})
	if !errors.Is(err, ErrMalformedMap) {
		t.Fatalf("ragged grid: err = %v, want ErrMalformedMap", err)
	}

	_, err = NewMap(nil, Atlas{})
	if !errors.Is(err, ErrMalformedMap) {
		t.Fatalf("empty grid: err = %v, want ErrMalformedMap", err)
	}
}

func TestNewMapCopiesInput(t *testing.T) {
	content := [][]int{{1, 1}, {1, 0}}
	m := MustNewMap(content, Atlas{})

	content[1][1] = 1
	if m.Collide(1, 1) {
		t.Error("map must not alias the caller's grid")
	}
}

func TestBlockAtResolvesThroughAtlas(t *testing.T) {
	brick := texture.FromImage("brick", texture.Placeholder(8))
	stone := texture.FromImage("stone", texture.Checker(8, 2, color.RGBA{A: 255}, color.RGBA{R: 255, A: 255}))
	atlas := NewAtlas(map[TileCode]*texture.Texture{
		1: brick,
		0: stone, // ignored: empty tiles never carry a texture
	}, stone)

	m := MustNewMap([][]int{{1, 3}, {0, 1}}, atlas)

	if got := m.BlockAt(0, 0); got != brick {
		t.Errorf("code 1 resolved to %v", got)
	}
	if got := m.BlockAt(0, 1); got != stone {
		t.Errorf("unknown code should use the fallback, got %v", got)
	}
	if got := m.BlockAt(1, 0); got != nil {
		t.Errorf("empty tile resolved to %v", got)
	}
	if got := m.BlockAt(5, 5); got != nil {
		t.Errorf("off-grid tile resolved to %v", got)
	}

	if got := len(m.Textures()); got != 2 {
		t.Errorf("Textures() returned %d textures, want 2", got)
	}
}

func TestAtlasTextures(t *testing.T) {
	a := texture.FromImage("a", texture.Placeholder(4))
	b := texture.FromImage("b", texture.Placeholder(4))
	fallback := texture.FromImage("fallback", texture.Placeholder(4))

	got := NewAtlas(map[TileCode]*texture.Texture{2: b, 1: a}, fallback).Textures()
	want := []*texture.Texture{a, b, fallback}
	if len(got) != len(want) {
		t.Fatalf("Textures() returned %d textures, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("texture %d = %s, want %s", i, got[i].Name(), want[i].Name())
		}
	}

	if n := len((Atlas{}).Textures()); n != 0 {
		t.Errorf("empty atlas lists %d textures", n)
	}
}
