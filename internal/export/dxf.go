package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/BinStack/internal/geometry"
	"github.com/piwi3910/BinStack/internal/model"
)

// cartonSpacing is the gap between cartons in the exported drawing, in mm.
const cartonSpacing = 100.0

// itemLayerColors cycles through DXF color numbers for item wireframes.
var itemLayerColors = []dxfcolor.ColorNumber{
	dxfcolor.Green,
	dxfcolor.Cyan,
	dxfcolor.Magenta,
	dxfcolor.Yellow,
	dxfcolor.Blue,
	dxfcolor.Red,
}

// ExportDXF writes the packing result as a 3D wireframe DXF drawing. Each
// carton is drawn as a box outline on the CARTONS layer, with its items as
// wireframes on per-carton item layers; cartons are laid out side by side
// along the x axis.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no cartons to export")
	}

	drawing := dxf.NewDrawing()
	drawing.Header().LtScale = 1.0

	if _, err := drawing.AddLayer("CARTONS", dxfcolor.White, table.LT_CONTINUOUS, true); err != nil {
		return fmt.Errorf("failed to create carton layer: %w", err)
	}

	offsetX := 0.0
	for i, bin := range result.Bins {
		if err := drawing.ChangeLayer("CARTONS"); err != nil {
			return fmt.Errorf("failed to switch layer: %w", err)
		}
		cartonSpace := geometry.SpaceAt(geometry.Point{}, bin.Carton.Cuboid())
		drawWireframe(drawing, cartonSpace, offsetX)

		layerName := fmt.Sprintf("CARTON_%d_ITEMS", i+1)
		layerColor := itemLayerColors[i%len(itemLayerColors)]
		if _, err := drawing.AddLayer(layerName, layerColor, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("failed to create item layer: %w", err)
		}
		for _, p := range bin.Placements {
			drawWireframe(drawing, p.Space, offsetX)
		}

		offsetX += float64(bin.Carton.Width) + cartonSpacing
	}

	if err := drawing.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

// drawWireframe draws the twelve edges of an axis-aligned box, shifted along
// x by offsetX.
func drawWireframe(drawing *dxf.Drawing, s geometry.Space, offsetX float64) {
	x0 := float64(s.BottomLeft.X) + offsetX
	y0 := float64(s.BottomLeft.Y)
	z0 := float64(s.BottomLeft.Z)
	x1 := float64(s.UpperRight.X) + offsetX
	y1 := float64(s.UpperRight.Y)
	z1 := float64(s.UpperRight.Z)

	// Bottom face
	drawing.Line(x0, y0, z0, x1, y0, z0)
	drawing.Line(x1, y0, z0, x1, y0, z1)
	drawing.Line(x1, y0, z1, x0, y0, z1)
	drawing.Line(x0, y0, z1, x0, y0, z0)

	// Top face
	drawing.Line(x0, y1, z0, x1, y1, z0)
	drawing.Line(x1, y1, z0, x1, y1, z1)
	drawing.Line(x1, y1, z1, x0, y1, z1)
	drawing.Line(x0, y1, z1, x0, y1, z0)

	// Vertical edges
	drawing.Line(x0, y0, z0, x0, y1, z0)
	drawing.Line(x1, y0, z0, x1, y1, z0)
	drawing.Line(x1, y0, z1, x1, y1, z1)
	drawing.Line(x0, y0, z1, x0, y1, z1)
}
