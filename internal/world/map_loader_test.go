package world

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseMapRoundTrip(t *testing.T) {
	m := MustNewMap(DefaultContent(), Atlas{})

	parsed, err := ParseMapString(m.String(), Atlas{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.String() != m.String() {
		t.Errorf("round trip changed the map:\n%s\nvs\n%s", parsed, m)
	}
	if code, _ := parsed.TileAt(3, 9); code != 2 {
		t.Errorf("TileAt(3,9) = %d, want 2", code)
	}
}

func TestParseMapSkipsCommentsAndBlankLines(t *testing.T) {
	text := "# a tiny room\n1,1,1\n\n1, 0 ,1\n1,1,1\n"

	m, err := ParseMapString(text, Atlas{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Width() != 3 || m.Height() != 3 {
		t.Errorf("size = %dx%d, want 3x3", m.Width(), m.Height())
	}
	if m.Collide(1, 1) {
		t.Error("centre should be empty")
	}
}

func TestParseMapRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"ragged", "1,1,1\n1,0\n1,1,1"},
		{"not a number", "1,x,1\n1,0,1"},
		{"negative code", "1,-1\n1,1"},
		{"empty", "# nothing\n\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseMapString(tc.text, Atlas{})
			if !errors.Is(err, ErrMalformedMap) {
				t.Fatalf("err = %v, want ErrMalformedMap", err)
			}
		})
	}
}

func TestLoadMapFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "room.map")
	if err := os.WriteFile(path, []byte("1,1\n1,1\n"), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	m, err := LoadMap(path, Atlas{})
	if err != nil {
		t.Fatalf("load map: %v", err)
	}
	if m.Width() != 2 || !m.Collide(1, 1) {
		t.Errorf("unexpected map %v", m)
	}

	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.map"), Atlas{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}
