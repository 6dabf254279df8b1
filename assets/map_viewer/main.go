package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"wolfcast/internal/camera"
	"wolfcast/internal/config"
	"wolfcast/internal/engine"
	"wolfcast/internal/texture"
	"wolfcast/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1000
	windowHeight = 700
	sidebarWidth = 260
)

type mapInfo struct {
	Name string
	Path string
	Map  *world.Map
	Err  error
}

type viewer struct {
	maps       []mapInfo
	mapIndex   int
	sidebarTab int
	atlas      world.Atlas
	dir        string
	start      camera.Camera
	sprite     [2]float64
	showSprite bool
	colors     map[world.TileCode]color.RGBA
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()
	ensureRuntimeCWD(*configPath)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Printf("Warning: %v; using built-in defaults", err)
		cfg = config.Default()
	}

	atlas := engine.LoadAtlas(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := texture.WaitAll(ctx, atlas.Textures()...); err != nil {
		log.Printf("Warning: textures not loaded: %v", err)
	}
	cancel()

	dir := "assets/maps"
	if cfg.Map.File != "" {
		dir = filepath.Dir(cfg.ResolvePath(cfg.Map.File))
	}

	v := &viewer{
		atlas:      atlas,
		dir:        dir,
		start:      cfg.GetStartCamera(),
		sprite:     cfg.Sprite.Position,
		showSprite: cfg.Sprite.Enabled,
	}
	v.reload()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("wolfcast map viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) reload() {
	maps, err := loadMaps(v.dir, v.atlas)
	if err != nil {
		log.Printf("Warning: %v", err)
	}
	v.maps = maps
	v.colors = tileColors(v.atlas, maps)
	if v.mapIndex >= len(v.maps) {
		v.mapIndex = 0
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.reload()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if len(v.maps) > 0 {
			v.mapIndex = (v.mapIndex + 1) % len(v.maps)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if len(v.maps) > 0 {
			v.mapIndex--
			if v.mapIndex < 0 {
				v.mapIndex = len(v.maps) - 1
			}
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.maps) == 0 {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("no maps in %s", v.dir), 16, 16)
		return
	}

	m := v.maps[v.mapIndex]
	if m.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s failed to load:\n%v", m.Name, m.Err), 16, 16)
		return
	}

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	mapArea := image.Rect(padding, padding, screenW-sidebarWidth-padding*2, screenH-padding)
	sidebarX := mapArea.Max.X + padding

	v.drawMapPanel(screen, m, mapArea)
	drawSidebar(screen, m, sidebarX, padding, sidebarWidth, mapArea.Dy(), v.sidebarTab, v.colors)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// cellLayout fits a w x h grid into area with square cells and returns the
// cell size and the grid's top-left corner.
func cellLayout(area image.Rectangle, w, h int) (size int, origin image.Point) {
	size = area.Dx() / w
	if alt := area.Dy() / h; alt < size {
		size = alt
	}
	if size < 2 {
		size = 2
	}
	origin = image.Pt(area.Min.X+(area.Dx()-w*size)/2, area.Min.Y+(area.Dy()-h*size)/2)
	return size, origin
}

func (v *viewer) drawMapPanel(screen *ebiten.Image, m mapInfo, area image.Rectangle) {
	drawFilledRect(screen, area.Min.X, area.Min.Y, area.Dx(), area.Dy(), color.RGBA{20, 20, 35, 255})
	drawRectBorder(screen, area.Min.X, area.Min.Y, area.Dx(), area.Dy(), 2, color.RGBA{70, 70, 90, 255})

	header := image.Rect(area.Min.X, area.Min.Y+40, area.Max.X, area.Max.Y)
	size, origin := cellLayout(header, m.Map.Width(), m.Map.Height())

	// The grid is indexed [x][y]; x runs right and y down.
	for x := 0; x < m.Map.Width(); x++ {
		for y := 0; y < m.Map.Height(); y++ {
			code, _ := m.Map.TileAt(x, y)
			c := color.RGBA{35, 35, 45, 255}
			if code != world.TileEmpty {
				c = v.colors[code]
			}
			vector.DrawFilledRect(screen,
				float32(origin.X+x*size), float32(origin.Y+y*size),
				float32(size-1), float32(size-1), c, false)
		}
	}

	v.drawCamera(screen, origin, size)
	if v.showSprite {
		sx := float32(origin.X) + float32(v.sprite[0])*float32(size)
		sy := float32(origin.Y) + float32(v.sprite[1])*float32(size)
		vector.DrawFilledCircle(screen, sx, sy, float32(size)*0.25, color.RGBA{230, 80, 80, 255}, true)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s (%d/%d)", m.Name, v.mapIndex+1, len(v.maps)), area.Min.X+12, area.Min.Y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right switch maps, R reload, Tab legend, Esc quit", area.Min.X+12, area.Min.Y+24)
}

// drawCamera marks the start position with its view direction and the two
// edges of the field of view.
func (v *viewer) drawCamera(screen *ebiten.Image, origin image.Point, size int) {
	toScreen := func(x, y float64) (float32, float32) {
		return float32(origin.X) + float32(x)*float32(size), float32(origin.Y) + float32(y)*float32(size)
	}
	cam := v.start
	px, py := toScreen(cam.Position.X, cam.Position.Y)

	for _, edge := range []struct{ x, y float64 }{
		{cam.Direction.X - cam.Plane.X, cam.Direction.Y - cam.Plane.Y},
		{cam.Direction.X + cam.Plane.X, cam.Direction.Y + cam.Plane.Y},
	} {
		ex, ey := toScreen(cam.Position.X+edge.x*2, cam.Position.Y+edge.y*2)
		vector.StrokeLine(screen, px, py, ex, ey, 1, color.RGBA{50, 200, 255, 120}, true)
	}
	dx, dy := toScreen(cam.Position.X+cam.Direction.X, cam.Position.Y+cam.Direction.Y)
	vector.StrokeLine(screen, px, py, dx, dy, 2, color.RGBA{50, 200, 255, 255}, true)
	vector.DrawFilledCircle(screen, px, py, float32(size)*0.3, color.RGBA{50, 200, 255, 255}, true)
	vector.StrokeCircle(screen, px, py, float32(size)*0.3, 1, color.RGBA{255, 255, 255, 255}, true)
}

func drawSidebar(screen *ebiten.Image, m mapInfo, x, y, w, h int, tab int, colors map[world.TileCode]color.RGBA) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	counts := tileCounts(m.Map)
	if tab == tabLegend {
		for _, code := range sortedCodes(counts) {
			if code != world.TileEmpty {
				drawFilledRect(screen, x+12, row+2, 10, 10, colors[code])
			}
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%3d  x%d", code, counts[code]), x+28, row)
			row += 16
		}
		return
	}

	stats := []string{
		fmt.Sprintf("Size: %dx%d", m.Map.Width(), m.Map.Height()),
		fmt.Sprintf("Open cells: %d", counts[world.TileEmpty]),
		fmt.Sprintf("Tile codes: %d", len(counts)),
		fmt.Sprintf("File: %s", filepath.Base(m.Path)),
	}
	for _, line := range stats {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}

	row += 8
	ebitenutil.DebugPrintAt(screen, "Cyan: start and view", x+12, row)
	row += 16
	ebitenutil.DebugPrintAt(screen, "Red: sprite", x+12, row)
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend", x+tabW+10, y+6)
}

// loadMaps parses every .map file in dir. Files that fail to parse are kept
// with their error so the viewer can show it.
func loadMaps(dir string, atlas world.Atlas) ([]mapInfo, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.map"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .map files in %s", dir)
	}
	sort.Strings(paths)

	maps := make([]mapInfo, 0, len(paths))
	for _, p := range paths {
		m, err := world.LoadMap(p, atlas)
		maps = append(maps, mapInfo{Name: filepath.Base(p), Path: p, Map: m, Err: err})
	}
	return maps, nil
}

func tileCounts(m *world.Map) map[world.TileCode]int {
	counts := make(map[world.TileCode]int)
	for x := 0; x < m.Width(); x++ {
		for y := 0; y < m.Height(); y++ {
			code, _ := m.TileAt(x, y)
			counts[code]++
		}
	}
	return counts
}

func sortedCodes(counts map[world.TileCode]int) []world.TileCode {
	codes := make([]world.TileCode, 0, len(counts))
	for code := range counts {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// tileColors gives every code used by maps the mean colour of its texture.
func tileColors(atlas world.Atlas, maps []mapInfo) map[world.TileCode]color.RGBA {
	colors := make(map[world.TileCode]color.RGBA)
	for _, info := range maps {
		if info.Map == nil {
			continue
		}
		for code := range tileCounts(info.Map) {
			if _, done := colors[code]; done || code == world.TileEmpty {
				continue
			}
			colors[code] = averageColor(atlas.Resolve(code))
		}
	}
	return colors
}

// averageColor is the mean of a texture's pixels, or grey if it has none.
func averageColor(t *texture.Texture) color.RGBA {
	fallback := color.RGBA{90, 90, 100, 255}
	if t == nil || !t.IsReady() || t.Image() == nil {
		return fallback
	}
	img := t.Image()
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return fallback
	}
	var r, g, bl int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			r += int(c.R)
			g += int(c.G)
			bl += int(c.B)
		}
	}
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(bl / n), 255}
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

// ensureRuntimeCWD moves to the executable's directory when the config file
// is not reachable from the current one.
func ensureRuntimeCWD(configPath string) {
	if _, err := os.Stat(configPath); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	_ = os.Chdir(filepath.Dir(exe))
}
