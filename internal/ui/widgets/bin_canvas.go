// Package widgets provides custom Fyne widgets for the BinStack UI.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/piwi3910/BinStack/internal/model"
)

// Item colors — cycle through these for visual distinction.
var itemColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

var cartonFill = color.NRGBA{R: 222, G: 206, B: 180, A: 255}
var itemOutline = color.NRGBA{R: 30, G: 30, B: 30, A: 255}

// BinView selects which projection of the carton a canvas shows.
type BinView int

const (
	// ViewTop looks down into the carton: width across, depth up.
	ViewTop BinView = iota
	// ViewFront looks at the carton's front: width across, height up.
	ViewFront
)

func (v BinView) String() string {
	if v == ViewFront {
		return "Front"
	}
	return "Top"
}

// NewBinCanvas renders one projection of a packed carton as a fixed-size
// diagram. Items are drawn in placement order with cycling colors; the
// vertical axis is flipped so the carton origin sits bottom-left.
func NewBinCanvas(bin model.BinResult, view BinView, maxW, maxH float32) fyne.CanvasObject {
	cartonW, cartonH := projectionExtents(bin.Carton, view)
	if cartonW <= 0 || cartonH <= 0 {
		return container.NewWithoutLayout()
	}

	scale := maxW / float32(cartonW)
	if s := maxH / float32(cartonH); s < scale {
		scale = s
	}
	canvasW := float32(cartonW) * scale
	canvasH := float32(cartonH) * scale

	objects := make([]fyne.CanvasObject, 0, 2*len(bin.Placements)+1)

	background := canvas.NewRectangle(cartonFill)
	background.StrokeColor = itemOutline
	background.StrokeWidth = 1
	background.Move(fyne.NewPos(0, 0))
	background.Resize(fyne.NewSize(canvasW, canvasH))
	objects = append(objects, background)

	for i, p := range bin.Placements {
		rx, ry, rw, rh := projectionRect(p, view)

		rect := canvas.NewRectangle(itemColors[i%len(itemColors)])
		rect.StrokeColor = itemOutline
		rect.StrokeWidth = 1

		w := float32(rw) * scale
		h := float32(rh) * scale
		x := float32(rx) * scale
		y := canvasH - float32(ry)*scale - h // flip vertical axis

		rect.Move(fyne.NewPos(x, y))
		rect.Resize(fyne.NewSize(w, h))
		objects = append(objects, rect)

		if w > 18 && h > 10 {
			label := canvas.NewText(fmt.Sprintf("%d", i+1), itemOutline)
			label.TextSize = 9
			label.Move(fyne.NewPos(x+w/2-3, y+h/2-6))
			objects = append(objects, label)
		}
	}

	diagram := container.NewWithoutLayout(objects...)
	diagram.Resize(fyne.NewSize(canvasW, canvasH))
	// GridWrap pins the diagram to its computed size; a bare layout-less
	// container reports a zero MinSize and would collapse inside wrappers.
	return container.NewGridWrap(fyne.NewSize(canvasW, canvasH), diagram)
}

// projectionExtents returns the carton extents on the view's two axes.
func projectionExtents(c model.Carton, view BinView) (int, int) {
	if view == ViewTop {
		return c.Width, c.Depth
	}
	return c.Width, c.Height
}

// projectionRect returns a placement's rectangle on the view's two axes.
func projectionRect(p model.Placement, view BinView) (x, y, w, h int) {
	if view == ViewTop {
		return p.Space.BottomLeft.X, p.Space.BottomLeft.Z, p.Space.Width(), p.Space.Depth()
	}
	return p.Space.BottomLeft.X, p.Space.BottomLeft.Y, p.Space.Width(), p.Space.Height()
}
