// BinStack — 3D Carton Packing Optimizer
//
// A cross-platform desktop application for packing rectangular items into
// the fewest possible identical cartons, with PDF manifest, QR label, and
// DXF wireframe export.
//
// Build:
//   go build -o binstack ./cmd/binstack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o binstack.exe ./cmd/binstack
//   GOOS=darwin  GOARCH=amd64 go build -o binstack-darwin ./cmd/binstack
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/BinStack/internal/ui"
)

func main() {
	application := app.NewWithID("com.piwi3910.binstack")

	window := application.NewWindow("BinStack — 3D Carton Packing Optimizer")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 760))
	window.CenterOnScreen()
	window.ShowAndRun()
}
