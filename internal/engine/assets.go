package engine

import (
	"fmt"
	"image/color"

	"wolfcast/internal/config"
	"wolfcast/internal/mathutil"
	"wolfcast/internal/texture"
	"wolfcast/internal/world"
)

// Built-in wall textures used when the configuration names none.
var (
	brickA = color.RGBA{150, 60, 40, 255}
	brickB = color.RGBA{90, 30, 20, 255}
	stoneA = color.RGBA{120, 120, 140, 255}
	stoneB = color.RGBA{40, 40, 60, 255}
)

// BuiltinAtlas is the atlas of the demo map: procedural textures for codes 1
// and 2 and the missing-texture checkerboard for anything else.
func BuiltinAtlas() world.Atlas {
	return world.NewAtlas(map[world.TileCode]*texture.Texture{
		1: texture.FromImage("builtin:brick", texture.Checker(texture.DefaultPlaceholderSize, 16, brickA, brickB)),
		2: texture.FromImage("builtin:stone", texture.Gradient(texture.DefaultPlaceholderSize, texture.DefaultPlaceholderSize, stoneA, stoneB)),
	}, texture.FromImage("builtin:missing", texture.Placeholder(texture.DefaultPlaceholderSize)))
}

// LoadAtlas starts loading the textures named in cfg. Loading continues in
// the background; see Renderer.WaitReady.
func LoadAtlas(cfg *config.Config) world.Atlas {
	builtin := BuiltinAtlas()
	if cfg.Textures.Default == "" && len(cfg.Textures.Tiles) == 0 {
		return builtin
	}

	fallback := builtin.Fallback()
	if cfg.Textures.Default != "" {
		fallback = texture.Load(cfg.ResolvePath(cfg.Textures.Default))
	}

	tiles := make(map[world.TileCode]*texture.Texture, len(cfg.Textures.Tiles))
	for code, path := range cfg.Textures.Tiles {
		tiles[world.TileCode(code)] = texture.Load(cfg.ResolvePath(path))
	}
	return world.NewAtlas(tiles, fallback)
}

// LoadWorld returns the configured map, or the built-in room when no map
// file is set.
func LoadWorld(cfg *config.Config, atlas world.Atlas) (*world.Map, error) {
	if cfg.Map.File == "" {
		return world.MustNewMap(world.DefaultContent(), atlas), nil
	}
	m, err := world.LoadMap(cfg.ResolvePath(cfg.Map.File), atlas)
	if err != nil {
		return nil, fmt.Errorf("loading world: %w", err)
	}
	return m, nil
}

// LoadSprites returns the configured sprites.
func LoadSprites(cfg *config.Config) []Sprite {
	if !cfg.Sprite.Enabled {
		return nil
	}

	var sheet *texture.SpriteSheet
	if cfg.Sprite.Sheet == "" {
		sheet = texture.NewSpriteSheet(
			texture.FromImage("builtin:dog", texture.PlaceholderSheet(texture.DogFrames())),
			texture.DogFrames(), texture.DogAnimations())
	} else {
		sheet = texture.LoadSheet(cfg.ResolvePath(cfg.Sprite.Sheet), texture.DogFrames(), texture.DogAnimations())
	}

	return []Sprite{{
		Position:      mathutil.Vec(cfg.Sprite.Position[0], cfg.Sprite.Position[1]),
		Sheet:         sheet,
		Animation:     cfg.Sprite.Animation,
		TicksPerFrame: cfg.Sprite.TicksPerFrame,
	}}
}
