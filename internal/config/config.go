package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"wolfcast/internal/camera"
	"wolfcast/internal/mathutil"
)

// Config holds all engine configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Map      MapConfig      `yaml:"map"`
	Textures TexturesConfig `yaml:"textures"`
	Sprite   SpriteConfig   `yaml:"sprite"`
	Audio    AudioConfig    `yaml:"audio"`

	// dir is the directory relative paths are resolved against.
	dir string
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Scale        int    `yaml:"scale"` // window pixels per frame pixel
	FPS          int    `yaml:"fps"`
	StartPaused  bool   `yaml:"start_paused"`
	ShowStats    bool   `yaml:"show_stats"`
}

type MovementConfig struct {
	MoveSpeed     float64 `yaml:"move_speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	// KeyRepeatDelay and KeyRepeatInterval are in ticks.
	KeyRepeatDelay    int `yaml:"key_repeat_delay"`
	KeyRepeatInterval int `yaml:"key_repeat_interval"`
}

type CameraConfig struct {
	Position  [2]float64 `yaml:"position"`
	Direction [2]float64 `yaml:"direction"`
	Plane     [2]float64 `yaml:"plane"`
}

type GraphicsConfig struct {
	CeilingColor string `yaml:"ceiling_color"`
	FloorColor   string `yaml:"floor_color"`
	// Workers is the size of the column casting pool; 0 means one per CPU
	// and a negative value casts on the render goroutine.
	Workers      int  `yaml:"workers"`
	DoubleBuffer bool `yaml:"double_buffer"`
}

type MapConfig struct {
	File string `yaml:"file"`
}

type TexturesConfig struct {
	Default string         `yaml:"default"`
	Tiles   map[int]string `yaml:"tiles"`
}

type SpriteConfig struct {
	Enabled       bool       `yaml:"enabled"`
	Sheet         string     `yaml:"sheet"`
	Position      [2]float64 `yaml:"position"`
	Animation     string     `yaml:"animation"`
	TicksPerFrame int        `yaml:"ticks_per_frame"`
}

// maxBumpFrequency is the Nyquist limit of the 44.1 kHz output.
const maxBumpFrequency = 22050

type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	BumpFrequency float64 `yaml:"bump_frequency"`
	BumpMillis    int     `yaml:"bump_millis"`
}

// Default returns the configuration used when no file is given. It matches
// the bundled config.yaml.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  300,
			ScreenHeight: 200,
			WindowTitle:  "wolfcast",
			Scale:        3,
			FPS:          30,
			ShowStats:    true,
		},
		Movement: MovementConfig{
			MoveSpeed:         0.25,
			RotationSpeed:     0.25,
			KeyRepeatDelay:    1,
			KeyRepeatInterval: 3,
		},
		Camera: CameraConfig{
			Position:  [2]float64{1.5, 1.5},
			Direction: [2]float64{1, 0},
			Plane:     [2]float64{0, 0.66},
		},
		Graphics: GraphicsConfig{
			CeilingColor: "#000000",
			FloorColor:   "#575757",
		},
		Sprite: SpriteConfig{
			Enabled:       true,
			Position:      [2]float64{5.5, 5.5},
			Animation:     "RUNNING_045",
			TicksPerFrame: 6,
		},
		Audio: AudioConfig{
			BumpFrequency: 110,
			BumpMillis:    60,
		},
	}
}

// LoadConfig loads the configuration from a YAML file. Keys missing from the
// file keep their Default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", filename, err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", filename, err)
	}
	config.dir = filepath.Dir(filename)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", filename, err)
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate checks values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		errs = append(errs, fmt.Errorf("display size %dx%d must be positive", c.Display.ScreenWidth, c.Display.ScreenHeight))
	}
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.Display.FPS))
	}
	if c.Movement.MoveSpeed < 0 || c.Movement.RotationSpeed < 0 {
		errs = append(errs, errors.New("movement speeds must not be negative"))
	}
	if c.Camera.Direction == [2]float64{} || c.Camera.Plane == [2]float64{} {
		errs = append(errs, errors.New("camera direction and plane must be non-zero"))
	}
	if _, err := ParseHexColor(c.Graphics.CeilingColor); err != nil {
		errs = append(errs, fmt.Errorf("ceiling_color: %w", err))
	}
	if _, err := ParseHexColor(c.Graphics.FloorColor); err != nil {
		errs = append(errs, fmt.Errorf("floor_color: %w", err))
	}
	if c.Audio.Enabled {
		if c.Audio.BumpFrequency <= 0 || c.Audio.BumpFrequency >= maxBumpFrequency {
			errs = append(errs, fmt.Errorf("audio bump_frequency %g must be in (0, %g)", c.Audio.BumpFrequency, float64(maxBumpFrequency)))
		}
		if c.Audio.BumpMillis <= 0 {
			errs = append(errs, fmt.Errorf("audio bump_millis %d must be positive", c.Audio.BumpMillis))
		}
	}
	return errors.Join(errs...)
}

// ParseHexColor parses "#rrggbb" or "#rgb" into an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

// ResolvePath interprets p relative to the config file's directory. Empty
// paths stay empty.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetSpeeds() camera.Speeds {
	return camera.Speeds{Move: c.Movement.MoveSpeed, Rotation: c.Movement.RotationSpeed}
}

// GetTickInterval is the time between frames at the configured rate.
func (c *Config) GetTickInterval() time.Duration {
	if c.Display.FPS <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.Display.FPS)
}

func (c *Config) GetStartCamera() camera.Camera {
	return camera.Camera{
		Position:  mathutil.Vec(c.Camera.Position[0], c.Camera.Position[1]),
		Direction: mathutil.Vec(c.Camera.Direction[0], c.Camera.Direction[1]),
		Plane:     mathutil.Vec(c.Camera.Plane[0], c.Camera.Plane[1]),
	}
}

// GetCeilingColor returns the ceiling colour; Validate has already checked it.
func (c *Config) GetCeilingColor() color.RGBA {
	col, _ := ParseHexColor(c.Graphics.CeilingColor)
	return col
}

func (c *Config) GetFloorColor() color.RGBA {
	col, _ := ParseHexColor(c.Graphics.FloorColor)
	return col
}

func (c *Config) GetBumpDuration() time.Duration {
	return time.Duration(c.Audio.BumpMillis) * time.Millisecond
}
