package terminal

import (
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"wolfcast/internal/threading/monitoring"
)

// StatusStyle derives the status line colours from the floor colour: the
// background is the floor darkened in HCL space, the text is whichever of
// black or white sits further from it.
func StatusStyle(floor color.RGBA) tcell.Style {
	base, ok := colorful.MakeColor(floor)
	if !ok {
		base = colorful.Color{}
	}
	bg := base.BlendHcl(colorful.Color{}, 0.6).Clamped()
	fg := colorful.Color{R: 1, G: 1, B: 1}
	if bg.DistanceLab(fg) < bg.DistanceLab(colorful.Color{}) {
		fg = colorful.Color{}
	}
	return tcell.StyleDefault.
		Background(toTcell(bg)).
		Foreground(toTcell(fg))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// StatusText formats the monitor counters for the status line.
func StatusText(s monitoring.Snapshot, paused bool) string {
	if paused {
		return "paused  p resume  r reload  esc quit"
	}
	ms := func(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
	return fmt.Sprintf("render %.2fms  avg100 %.2fms  walls %.2fms  sprites %.2fms",
		ms(s.LastFrame), ms(s.AverageFrame), ms(s.Raycast), ms(s.SpriteRender))
}

// drawText writes text on row y, padding with spaces to width.
func drawText(cells Cells, y, width int, style tcell.Style, text string) {
	runes := []rune(text)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		cells.SetContent(x, y, r, nil, style)
	}
}
