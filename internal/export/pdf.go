// Package export provides functionality for exporting packing results to
// various file formats: a PDF packing manifest, QR-coded carton labels, and
// a DXF wireframe drawing.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BinStack/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors mirrors the color scheme used in the UI carton canvas widget.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 26.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	viewGap      = 12.0 // horizontal gap between the two projections
)

// ExportPDF generates a PDF packing manifest. Each carton is rendered on its
// own page with top and front projections of its contents, followed by a
// summary page with overall statistics.
func ExportPDF(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no cartons to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, bin := range result.Bins {
		pdf.AddPage()
		renderCartonPage(pdf, bin, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderCartonPage draws a single carton's contents on the current PDF page.
func renderCartonPage(pdf *fpdf.Fpdf, bin model.BinResult, cartonNum int) {
	carton := bin.Carton

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Carton %d: %s (%d x %d x %d mm)", cartonNum, carton.Label,
		carton.Width, carton.Depth, carton.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used volume: %d cubic mm | Carton volume: %d cubic mm | Fill: %.1f%%",
		len(bin.Placements), bin.UsedVolume(), bin.TotalVolume(), bin.Utilization())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Two projections side by side: top view (x/z) and front view (x/y).
	drawWidth := (pageWidth - marginLeft - marginRight - viewGap) / 2
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	renderProjection(pdf, bin, projectionTop, marginLeft, drawAreaTop, drawWidth, drawHeight)
	renderProjection(pdf, bin, projectionFront, marginLeft+drawWidth+viewGap, drawAreaTop, drawWidth, drawHeight)

	drawItemLegend(pdf, bin, drawAreaTop+drawHeight+4)
}

// projectionKind selects which two axes of the carton a diagram shows.
type projectionKind int

const (
	projectionTop   projectionKind = iota // looking down: x across, z up the page
	projectionFront                       // looking at the front: x across, y up the page
)

func (k projectionKind) title() string {
	if k == projectionTop {
		return "Top view (width x depth)"
	}
	return "Front view (width x height)"
}

// extents returns the carton extents on the projection's two axes.
func (k projectionKind) extents(c model.Carton) (w, h int) {
	if k == projectionTop {
		return c.Width, c.Depth
	}
	return c.Width, c.Height
}

// rect returns a placement's rectangle on the projection's two axes.
func (k projectionKind) rect(p model.Placement) (x, y, w, h int) {
	if k == projectionTop {
		return p.Space.BottomLeft.X, p.Space.BottomLeft.Z, p.Space.Width(), p.Space.Depth()
	}
	return p.Space.BottomLeft.X, p.Space.BottomLeft.Y, p.Space.Width(), p.Space.Height()
}

// renderProjection draws one 2D projection of the carton into the given page
// area, flipping the vertical axis so the carton origin sits bottom-left.
func renderProjection(pdf *fpdf.Fpdf, bin model.BinResult, kind projectionKind, areaX, areaY, areaW, areaH float64) {
	cartonW, cartonH := kind.extents(bin.Carton)
	if cartonW <= 0 || cartonH <= 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(areaX, areaY)
	pdf.CellFormat(areaW, 5, kind.title(), "", 0, "L", false, 0, "")

	diagramTop := areaY + 7
	diagramH := areaH - 7

	scale := math.Min(areaW/float64(cartonW), diagramH/float64(cartonH))
	canvasW := float64(cartonW) * scale
	canvasH := float64(cartonH) * scale
	offsetX := areaX + (areaW-canvasW)/2
	offsetY := diagramTop + (diagramH-canvasH)/2

	// Carton outline (cardboard color)
	pdf.SetFillColor(222, 206, 180)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range bin.Placements {
		col := itemColors[i%len(itemColors)]
		rx, ry, rw, rh := kind.rect(p)

		px := offsetX + float64(rx)*scale
		pw := float64(rw) * scale
		ph := float64(rh) * scale
		// Flip vertically: PDF y grows downward, carton axes grow upward.
		py := offsetY + canvasH - float64(ry)*scale - ph

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 12 && ph > 6 {
			pdf.SetFont("Helvetica", "", 6)
			pdf.SetTextColor(0, 0, 0)
			label := fmt.Sprintf("%d", i+1)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(px+(pw-labelW)/2, py+ph/2-1.5)
			pdf.CellFormat(labelW, 3, label, "", 0, "C", false, 0, "")
		}
	}
}

// drawItemLegend lists the placements with their numbers, labels, placed
// dimensions, and positions.
func drawItemLegend(pdf *fpdf.Fpdf, bin model.BinResult, y float64) {
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetTextColor(60, 60, 60)

	const columns = 3
	colWidth := (pageWidth - marginLeft - marginRight) / columns
	lineHeight := 3.4
	maxRows := int(legendHeight / lineHeight)

	for i, p := range bin.Placements {
		col := i / maxRows
		row := i % maxRows
		if col >= columns {
			pdf.SetXY(marginLeft, y+float64(maxRows-1)*lineHeight)
			pdf.CellFormat(colWidth, lineHeight, "...", "", 0, "L", false, 0, "")
			break
		}
		entry := fmt.Sprintf("%d. %s %dx%dx%d @ (%d,%d,%d)",
			i+1, p.Item.Label,
			p.PlacedWidth(), p.PlacedDepth(), p.PlacedHeight(),
			p.Space.BottomLeft.X, p.Space.BottomLeft.Y, p.Space.BottomLeft.Z)
		pdf.SetXY(marginLeft+float64(col)*colWidth, y+float64(row)*lineHeight)
		pdf.CellFormat(colWidth, lineHeight, entry, "", 0, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws overall statistics for the whole packing.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	y := marginTop + headerHeight + 8

	lines := []string{
		fmt.Sprintf("Cartons used: %d", result.NumBins()),
		fmt.Sprintf("Items packed: %d", result.TotalItems()),
		fmt.Sprintf("Overall fill: %.1f%%", result.TotalUtilization()),
		fmt.Sprintf("Least-loaded carton: %d cubic mm", result.LeastLoad()),
	}
	for _, line := range lines {
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 6, line, "", 0, "L", false, 0, "")
		y += 7
	}

	// Per-carton table
	y += 4
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(20, 6, "Carton", "B", 0, "L", false, 0, "")
	pdf.CellFormat(80, 6, "Label", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 6, "Items", "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, 6, "Fill %", "B", 0, "R", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "", 10)
	for i, bin := range result.Bins {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(20, 5.5, fmt.Sprintf("%d", i+1), "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 5.5, bin.Carton.Label, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 5.5, fmt.Sprintf("%d", len(bin.Placements)), "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 5.5, fmt.Sprintf("%.1f", bin.Utilization()), "", 0, "R", false, 0, "")
		y += 5.5
	}
}
