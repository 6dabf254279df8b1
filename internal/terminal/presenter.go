// Package terminal is the text-mode frontend. Each character cell shows two
// vertically stacked pixels with the upper half block glyph: the foreground
// colour is the top pixel and the background the bottom one.
package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// upperHalf is the glyph whose foreground covers the top half of the cell.
const upperHalf = '▀'

// Cells is the part of tcell.Screen the presenter writes to.
type Cells interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// FrameSize returns the frame, in pixels, that fits a cols x rows terminal
// with statusRows rows kept for text.
func FrameSize(cols, rows, statusRows int) (width, height int) {
	return max(cols, 1), max(rows-statusRows, 1) * 2
}

// Presenter copies RGBA frames into character cells starting at row top.
type Presenter struct {
	cells Cells
	top   int
	dirty map[image.Point]struct{}
}

// NewPresenter returns a presenter drawing from row top downwards.
func NewPresenter(cells Cells, top int) *Presenter {
	return &Presenter{cells: cells, top: top, dirty: make(map[image.Point]struct{})}
}

// DrawFrame writes every cell of frame.
func (p *Presenter) DrawFrame(frame *image.RGBA) int {
	b := frame.Bounds()
	n := 0
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.drawCell(frame, x, y)
			n++
		}
	}
	return n
}

// MarkPixel records that pixel (x, y) changed; FlushDirty redraws the
// affected cells.
func (p *Presenter) MarkPixel(x, y int, _ color.RGBA) {
	p.dirty[image.Pt(x, y-y%2)] = struct{}{}
}

// FlushDirty redraws the cells marked since the last flush from frame and
// returns how many were written.
func (p *Presenter) FlushDirty(frame *image.RGBA) int {
	n := len(p.dirty)
	for pt := range p.dirty {
		p.drawCell(frame, pt.X, pt.Y)
		delete(p.dirty, pt)
	}
	return n
}

func (p *Presenter) drawCell(frame *image.RGBA, x, y int) {
	top := frame.RGBAAt(x, y)
	bottom := top
	if y+1 < frame.Bounds().Max.Y {
		bottom = frame.RGBAAt(x, y+1)
	}
	p.cells.SetContent(x, p.top+y/2, upperHalf, nil, CellStyle(top, bottom))
}

// CellStyle is the style of a cell showing top over bottom.
func CellStyle(top, bottom color.RGBA) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
		Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
}
