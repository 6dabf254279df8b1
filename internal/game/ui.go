package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"wolfcast/internal/threading/monitoring"
)

var (
	UIColorOverlayBackground = color.RGBA{0, 0, 0, 160}
	UIColorOverlayText       = color.RGBA{230, 230, 230, 255}
	UIColorPaused            = color.RGBA{255, 200, 0, 255}
)

const (
	UIRowHeight = 13
	UIPadding   = 3
)

// UISystem draws the statistics overlay
type UISystem struct {
	game *Game
}

// NewUISystem creates the overlay renderer
func NewUISystem(game *Game) *UISystem {
	return &UISystem{game: game}
}

// Draw draws the overlay on top of the frame.
func (ui *UISystem) Draw(screen *ebiten.Image) {
	g := ui.game
	if g.state.Paused() {
		ui.drawLines(screen, []string{"PAUSED (p)"}, UIColorPaused, g.config.GetScreenHeight()-UIRowHeight-2*UIPadding)
	}
	if !g.showStats {
		return
	}
	ui.drawLines(screen, StatsLines(g.renderer.Monitor().GetSnapshot()), UIColorOverlayText, 0)
}

func (ui *UISystem) drawLines(screen *ebiten.Image, lines []string, clr color.Color, top int) {
	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		width = max(width, len(l)*face.Advance)
	}
	height := len(lines)*UIRowHeight + 2*UIPadding
	vector.DrawFilledRect(screen, 0, float32(top), float32(width+2*UIPadding), float32(height), UIColorOverlayBackground, false)

	for i, l := range lines {
		baseline := top + UIPadding + (i+1)*UIRowHeight - face.Descent
		ebitext.Draw(screen, l, face, UIPadding, baseline, clr)
	}
}

// StatsLines formats render statistics for the overlay.
func StatsLines(s monitoring.Snapshot) []string {
	return []string{
		fmt.Sprintf("render %s", formatMillis(s.LastFrame)),
		fmt.Sprintf("avg%d %s", monitoring.HistorySize, formatMillis(s.AverageFrame)),
		fmt.Sprintf("walls %s sprites %s", formatMillis(s.Raycast), formatMillis(s.SpriteRender)),
		fmt.Sprintf("fps %.0f", ebiten.ActualFPS()),
	}
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
}
