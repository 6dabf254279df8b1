package world

import (
	"slices"

	"wolfcast/internal/texture"
)

// Atlas maps tile codes to wall textures. TileEmpty always resolves to nil;
// codes without an entry resolve to the fallback texture.
type Atlas struct {
	tiles    map[TileCode]*texture.Texture
	fallback *texture.Texture
}

// NewAtlas builds an atlas from tiles with fallback as the default texture.
// The map is copied.
func NewAtlas(tiles map[TileCode]*texture.Texture, fallback *texture.Texture) Atlas {
	copied := make(map[TileCode]*texture.Texture, len(tiles))
	for code, tex := range tiles {
		if code == TileEmpty {
			continue
		}
		copied[code] = tex
	}
	return Atlas{tiles: copied, fallback: fallback}
}

// Resolve returns the texture for code.
func (a Atlas) Resolve(code TileCode) *texture.Texture {
	if code == TileEmpty {
		return nil
	}
	if tex, ok := a.tiles[code]; ok && tex != nil {
		return tex
	}
	return a.fallback
}

// Fallback returns the default texture.
func (a Atlas) Fallback() *texture.Texture {
	return a.fallback
}

// Textures lists every texture in the atlas, fallback last.
func (a Atlas) Textures() []*texture.Texture {
	codes := make([]TileCode, 0, len(a.tiles))
	for code := range a.tiles {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]*texture.Texture, 0, len(codes)+1)
	for _, code := range codes {
		if t := a.tiles[code]; t != nil {
			out = append(out, t)
		}
	}
	if a.fallback != nil {
		out = append(out, a.fallback)
	}
	return out
}
