package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/BinStack/internal/geometry"
	"github.com/piwi3910/BinStack/internal/model"
)

// buildTestResult creates a realistic packing result for testing.
func buildTestResult() model.PackResult {
	carton := model.Carton{ID: "c1", Label: "EUR Half 600x400x400", Width: 600, Depth: 400, Height: 400}

	place := func(label string, w, d, h, x, y, z int) model.Placement {
		return model.Placement{
			Item:  model.Item{ID: label, Label: label, Width: w, Depth: d, Height: h, Quantity: 1},
			Space: geometry.SpaceAt(geometry.Point{X: x, Y: y, Z: z}, geometry.NewCuboid(w, d, h)),
		}
	}

	return model.PackResult{
		Bins: []model.BinResult{
			{
				Carton: carton,
				Placements: []model.Placement{
					place("Books", 300, 400, 200, 0, 0, 0),
					place("Kettle", 300, 200, 250, 300, 0, 0),
					place("Lamp", 200, 200, 150, 300, 0, 200),
				},
			},
			{
				Carton: carton,
				Placements: []model.Placement{
					place("Blanket", 600, 400, 150, 0, 0, 0),
				},
			},
		},
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.pdf")

	require.NoError(t, ExportPDF(path, buildTestResult()))

	info, err := os.Stat(path)
	require.NoError(t, err, "PDF file was not created")
	// A valid PDF with 3 pages (2 cartons + summary) should be a reasonable size
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := ExportPDF(path, model.PackResult{})
	assert.Error(t, err)
}

func TestExportPDF_ManyItemsOverflowLegend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.pdf")

	carton := model.NewCarton("Carton", 1000, 1000, 1000)
	bin := model.BinResult{Carton: carton}
	for x := 0; x < 10; x++ {
		for z := 0; z < 5; z++ {
			bin.Placements = append(bin.Placements, model.Placement{
				Item:  model.NewItem("Unit", 100, 200, 1000, 1),
				Space: geometry.SpaceAt(geometry.Point{X: x * 100, Z: z * 200}, geometry.NewCuboid(100, 200, 1000)),
			})
		}
	}

	require.NoError(t, ExportPDF(path, model.PackResult{Bins: []model.BinResult{bin}}))
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, buildTestResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	assert.Error(t, ExportLabels(path, model.PackResult{}))
}

func TestExportLabels_ManyItemsSpanPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	carton := model.NewCarton("Carton", 1000, 1000, 1000)
	bin := model.BinResult{Carton: carton}
	for i := 0; i < 35; i++ { // more than one 30-label page
		bin.Placements = append(bin.Placements, model.Placement{
			Item:  model.NewItem("Unit", 100, 100, 100, 1),
			Space: geometry.SpaceAt(geometry.Point{X: (i % 10) * 100, Z: (i / 10) * 100}, geometry.NewCuboid(100, 100, 100)),
		})
	}

	require.NoError(t, ExportLabels(path, model.PackResult{Bins: []model.BinResult{bin}}))
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResult())

	require.Len(t, labels, 4)
	assert.Equal(t, "Books", labels[0].ItemLabel)
	assert.Equal(t, 1, labels[0].CartonIndex)
	assert.Equal(t, "EUR Half 600x400x400", labels[0].CartonLabel)
	assert.Equal(t, 2, labels[3].CartonIndex)
	assert.Equal(t, 300, labels[1].X)
	assert.False(t, labels[0].Rotated)
}

func TestLabelInfoJSONRoundTrip(t *testing.T) {
	info := LabelInfo{
		ItemLabel:   "Books",
		Width:       300,
		Depth:       400,
		Height:      200,
		CartonIndex: 1,
		CartonLabel: "EUR Half",
		Rotated:     true,
		X:           10, Y: 20, Z: 30,
	}

	data, err := json.Marshal(info)
	require.NoError(t, err)

	var got LabelInfo
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, info, got)
}

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "packing.dxf")

	require.NoError(t, ExportDXF(path, buildTestResult()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "CARTONS")
	assert.Contains(t, content, "CARTON_1_ITEMS")
	assert.Contains(t, content, "CARTON_2_ITEMS")
	assert.Contains(t, content, "LINE")
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	assert.Error(t, ExportDXF(path, model.PackResult{}))
}
