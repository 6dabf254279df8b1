package config

import (
	"errors"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"wolfcast/internal/camera"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if c.GetStartCamera() != camera.Default() {
		t.Errorf("default start camera = %v, want %v", c.GetStartCamera(), camera.Default())
	}
	if c.GetSpeeds() != camera.DefaultSpeeds() {
		t.Errorf("default speeds = %+v", c.GetSpeeds())
	}
	if got := c.GetFloorColor(); got != (color.RGBA{0x57, 0x57, 0x57, 255}) {
		t.Errorf("floor colour = %v", got)
	}
	if got := c.GetCeilingColor(); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("ceiling colour = %v", got)
	}
	if c.Display.StartPaused {
		t.Error("engine should start unpaused by default")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  screen_width: 640
  fps: 60
movement:
  move_speed: 0.1
graphics:
  floor_color: "#123"
  workers: 4
textures:
  default: textures/wall.png
  tiles:
    1: textures/brick.png
    2: textures/wood.png
`)

	c, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if c.GetScreenWidth() != 640 {
		t.Errorf("width = %d, want 640", c.GetScreenWidth())
	}
	if c.GetScreenHeight() != 200 {
		t.Errorf("height = %d, want default 200", c.GetScreenHeight())
	}
	if got := c.GetSpeeds(); got != (camera.Speeds{Move: 0.1, Rotation: 0.25}) {
		t.Errorf("speeds = %+v", got)
	}
	if c.GetTickInterval() != time.Second/60 {
		t.Errorf("tick interval = %v", c.GetTickInterval())
	}
	if got := c.GetFloorColor(); got != (color.RGBA{0x11, 0x22, 0x33, 255}) {
		t.Errorf("short hex floor colour = %v", got)
	}
	if c.Graphics.Workers != 4 {
		t.Errorf("workers = %d", c.Graphics.Workers)
	}
	if c.Textures.Tiles[2] != "textures/wood.png" {
		t.Errorf("tile 2 texture = %q", c.Textures.Tiles[2])
	}

	want := filepath.Join(filepath.Dir(path), "textures", "brick.png")
	if got := c.ResolvePath(c.Textures.Tiles[1]); got != want {
		t.Errorf("ResolvePath = %q, want %q", got, want)
	}
	if got := c.ResolvePath("/abs/wall.png"); got != "/abs/wall.png" {
		t.Errorf("absolute path rewritten to %q", got)
	}
	if got := c.ResolvePath(""); got != "" {
		t.Errorf("empty path resolved to %q", got)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad yaml", "display: [", "parsing config"},
		{"bad colour", "graphics:\n  ceiling_color: \"#zzzzzz\"\n", "ceiling_color"},
		{"zero size", "display:\n  screen_width: 0\n", "display size"},
		{"zero fps", "display:\n  fps: 0\n", "fps"},
		{"negative speed", "movement:\n  move_speed: -1\n", "speeds"},
		{"zero direction", "camera:\n  direction: [0, 0]\n", "direction"},
		{"zero bump frequency", "audio:\n  enabled: true\n  bump_frequency: 0\n", "bump_frequency"},
		{"bump above nyquist", "audio:\n  enabled: true\n  bump_frequency: 30000\n", "bump_frequency"},
		{"negative bump length", "audio:\n  enabled: true\n  bump_millis: -5\n", "bump_millis"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func TestMustLoadConfigPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustLoadConfig did not panic")
		}
		if msg, ok := r.(string); !ok || !strings.HasPrefix(msg, "Failed to load config: ") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#575757", color.RGBA{0x57, 0x57, 0x57, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"575757", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tc := range tests {
		got, err := ParseHexColor(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseHexColor(%q) error = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRepositoryConfigLoads(t *testing.T) {
	c, err := LoadConfig(filepath.Join("..", "..", "config.yaml"))
	if err != nil {
		t.Fatalf("bundled config.yaml: %v", err)
	}
	if c.Map.File == "" {
		t.Error("bundled config should name a map file")
	}
}
