package ui

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/BinStack/internal/engine"
	"github.com/piwi3910/BinStack/internal/export"
	"github.com/piwi3910/BinStack/internal/geometry"
	itemimporter "github.com/piwi3910/BinStack/internal/importer"
	"github.com/piwi3910/BinStack/internal/model"
	"github.com/piwi3910/BinStack/internal/project"
	"github.com/piwi3910/BinStack/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	app     fyne.App
	window  fyne.Window
	project model.Project
	config  model.AppConfig

	// Carton inventory
	inventory     model.Inventory
	inventoryPath string

	// UI references for dynamic updates
	itemList        *widget.List
	statusLabel     *widget.Label
	resultContainer *fyne.Container
	cartonSelector  *widget.Select
	viewSelector    *widget.RadioGroup
	selectedBinIdx  int
	selectedBinView widgets.BinView
}

// NewApp creates the application state, loading config and inventory from disk.
func NewApp(application fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		cfg = model.DefaultAppConfig()
	}

	proj := model.NewProject()
	cfg.ApplyToSettings(&proj.Settings)

	a := &App{
		app:     application,
		window:  window,
		project: proj,
		config:  cfg,
	}
	a.loadInventory()
	a.applyTheme()
	return a
}

// applyTheme sets the compact BinStack theme with the appropriate light/dark variant.
func (a *App) applyTheme() {
	var variant fyne.ThemeVariant
	switch a.config.Theme {
	case "light":
		variant = theme.VariantLight
	case "dark":
		variant = theme.VariantDark
	default:
		variant = theme.VariantDark // default to system (use dark as fallback)
	}
	a.app.Settings().SetTheme(newAppTheme(variant))
}

// loadInventory loads the carton inventory from the default path.
func (a *App) loadInventory() {
	inv, path, err := project.LoadOrCreateInventory()
	if err != nil {
		fmt.Printf("Warning: could not load inventory: %v\n", err)
		a.inventory = model.DefaultInventory()
		return
	}
	a.inventory = inv
	a.inventoryPath = path
}

// SetupMenus configures the native menu bar.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Project...", a.openProject),
		fyne.NewMenuItem("Save Project...", a.saveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Items (CSV)...", func() { a.importItems(".csv") }),
		fyne.NewMenuItem("Import Items (Excel)...", func() { a.importItems(".xlsx") }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Manifest (PDF)...", a.exportPDF),
		fyne.NewMenuItem("Export Labels (PDF)...", a.exportLabels),
		fyne.NewMenuItem("Export Wireframe (DXF)...", a.exportDXF),
	)
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Compare Settings...", a.showCompareDialog),
		fyne.NewMenuItem("Purchase Estimate...", a.showEstimateDialog),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, toolsMenu))
}

// Build assembles the main window content.
func (a *App) Build() fyne.CanvasObject {
	left := a.buildItemsPanel()
	center := a.buildResultsPanel()
	right := a.buildSettingsPanel()

	split := container.NewHSplit(left, container.NewHSplit(center, right))
	split.SetOffset(0.25)

	a.statusLabel = widget.NewLabel("No packing yet")
	optimizeBtn := widget.NewButtonWithIcon("Pack", theme.MediaPlayIcon(), a.runOptimize)
	statusBar := container.NewHBox(
		widget.NewLabelWithStyle("BinStack", fyne.TextAlignLeading, fyne.TextStyle{Italic: true}),
		layout.NewSpacer(),
		a.statusLabel,
		layout.NewSpacer(),
		optimizeBtn,
	)

	return container.NewBorder(nil, statusBar, nil, nil, split)
}

// ─── Left Panel: Items ─────────────────────────────

func (a *App) buildItemsPanel() fyne.CanvasObject {
	a.itemList = widget.NewList(
		func() int { return len(a.project.Items) },
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewLabel("item"),
				layout.NewSpacer(),
				widget.NewButtonWithIcon("", theme.DeleteIcon(), nil),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(a.project.Items) {
				return
			}
			it := a.project.Items[id]
			row := obj.(*fyne.Container)
			label := row.Objects[0].(*widget.Label)
			label.SetText(fmt.Sprintf("%s  %dx%dx%d  x%d", it.Label, it.Width, it.Depth, it.Height, it.Quantity))
			del := row.Objects[2].(*widget.Button)
			del.OnTapped = func() {
				a.project.Items = append(a.project.Items[:id], a.project.Items[id+1:]...)
				a.itemList.Refresh()
			}
		},
	)

	addBtn := widget.NewButtonWithIcon("Add Item", theme.ContentAddIcon(), a.showAddItemDialog)
	importBtn := widget.NewButtonWithIcon("Import CSV", theme.FolderOpenIcon(), func() { a.importItems(".csv") })

	header := widget.NewLabelWithStyle("Items", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	buttons := container.NewHBox(addBtn, importBtn)
	return container.NewBorder(header, buttons, nil, nil, a.itemList)
}

func (a *App) showAddItemDialog() {
	labelEntry := widget.NewEntry()
	labelEntry.SetPlaceHolder("Label")
	widthEntry := widget.NewEntry()
	depthEntry := widget.NewEntry()
	heightEntry := widget.NewEntry()
	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("1")

	form := []*widget.FormItem{
		widget.NewFormItem("Label", labelEntry),
		widget.NewFormItem("Width (mm)", widthEntry),
		widget.NewFormItem("Depth (mm)", depthEntry),
		widget.NewFormItem("Height (mm)", heightEntry),
		widget.NewFormItem("Quantity", qtyEntry),
	}

	dialog.ShowForm("Add Item", "Add", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		w, errW := strconv.Atoi(strings.TrimSpace(widthEntry.Text))
		d, errD := strconv.Atoi(strings.TrimSpace(depthEntry.Text))
		h, errH := strconv.Atoi(strings.TrimSpace(heightEntry.Text))
		q, errQ := strconv.Atoi(strings.TrimSpace(qtyEntry.Text))
		if errW != nil || errD != nil || errH != nil || errQ != nil ||
			w <= 0 || d <= 0 || h <= 0 || q <= 0 {
			dialog.ShowError(fmt.Errorf("dimensions and quantity must be positive integers"), a.window)
			return
		}
		label := strings.TrimSpace(labelEntry.Text)
		if label == "" {
			label = fmt.Sprintf("Item %d", len(a.project.Items)+1)
		}
		a.project.Items = append(a.project.Items, model.NewItem(label, w, d, h, q))
		a.itemList.Refresh()
	}, a.window)
}

// ─── Right Panel: Carton and Settings ─────────────────────────────

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	s := &a.project.Settings

	cartonSelect := widget.NewSelect(a.inventory.CartonNames(), func(name string) {
		if preset := a.inventory.FindCartonByName(name); preset != nil {
			a.project.Carton = preset.ToCarton()
		}
	})
	if len(a.inventory.Cartons) > 0 {
		cartonSelect.SetSelectedIndex(0)
	}

	rotationSelect := widget.NewSelect([]string{"Free (3D)", "Upright only (2D)"}, func(choice string) {
		if strings.HasPrefix(choice, "Upright") {
			s.BoxRotation = geometry.TwoDimension
		} else {
			s.BoxRotation = geometry.ThreeDimension
		}
	})
	rotationSelect.SetSelectedIndex(0)

	popEntry := widget.NewEntry()
	popEntry.SetText(strconv.Itoa(s.PopulationFactor))
	popEntry.OnChanged = func(v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.PopulationFactor = n
		}
	}

	genEntry := widget.NewEntry()
	genEntry.SetText(strconv.Itoa(s.MaxGenerations))
	genEntry.OnChanged = func(v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxGenerations = n
		}
	}

	stagnationEntry := widget.NewEntry()
	stagnationEntry.SetText(strconv.Itoa(s.MaxGenerationsNoImprovement))
	stagnationEntry.OnChanged = func(v string) {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.MaxGenerationsNoImprovement = n
		}
	}

	workersEntry := widget.NewEntry()
	workersEntry.SetText(strconv.Itoa(s.Workers))
	workersEntry.OnChanged = func(v string) {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			s.Workers = n
		}
	}

	form := widget.NewForm(
		widget.NewFormItem("Carton", cartonSelect),
		widget.NewFormItem("Rotation", rotationSelect),
		widget.NewFormItem("Population factor", popEntry),
		widget.NewFormItem("Max generations", genEntry),
		widget.NewFormItem("Stagnation cap", stagnationEntry),
		widget.NewFormItem("Workers", workersEntry),
	)

	header := widget.NewLabelWithStyle("Settings", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewVBox(header, form)
}

// ─── Center Panel: Results ─────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(widget.NewLabel("Run the packer to see results"))

	a.cartonSelector = widget.NewSelect(nil, func(string) {
		a.selectedBinIdx = a.cartonSelector.SelectedIndex()
		a.refreshResultCanvas()
	})
	a.viewSelector = widget.NewRadioGroup([]string{"Top", "Front"}, func(choice string) {
		if choice == "Front" {
			a.selectedBinView = widgets.ViewFront
		} else {
			a.selectedBinView = widgets.ViewTop
		}
		a.refreshResultCanvas()
	})
	a.viewSelector.Horizontal = true
	a.viewSelector.SetSelected("Top")

	controls := container.NewHBox(a.cartonSelector, a.viewSelector)
	return container.NewBorder(controls, nil, nil, nil, a.resultContainer)
}

func (a *App) refreshCartonSelector() {
	if a.project.Result == nil {
		a.cartonSelector.Options = nil
		a.cartonSelector.Refresh()
		return
	}
	options := make([]string, len(a.project.Result.Bins))
	for i, bin := range a.project.Result.Bins {
		options[i] = fmt.Sprintf("Carton %d (%.0f%% full)", i+1, bin.Utilization())
	}
	a.cartonSelector.Options = options
	if a.selectedBinIdx >= len(options) {
		a.selectedBinIdx = 0
	}
	a.cartonSelector.SetSelectedIndex(a.selectedBinIdx)
	a.cartonSelector.Refresh()
}

func (a *App) refreshResultCanvas() {
	if a.resultContainer == nil || a.project.Result == nil || len(a.project.Result.Bins) == 0 {
		return
	}
	if a.selectedBinIdx >= len(a.project.Result.Bins) {
		a.selectedBinIdx = 0
	}
	bin := a.project.Result.Bins[a.selectedBinIdx]
	diagram := widgets.NewBinCanvas(bin, a.selectedBinView, 520, 420)
	a.resultContainer.Objects = []fyne.CanvasObject{container.NewCenter(diagram)}
	a.resultContainer.Refresh()
}

// runOptimize packs the current item list in the background and refreshes
// the result views when done.
func (a *App) runOptimize() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to pack", "Add items first.", a.window)
		return
	}
	a.statusLabel.SetText("Packing...")

	items := a.project.Items
	carton := a.project.Carton
	settings := a.project.Settings

	go func() {
		result, err := engine.Pack(settings, carton, items)
		if err != nil {
			a.statusLabel.SetText("Packing failed")
			dialog.ShowError(err, a.window)
			return
		}

		a.project.Result = &result
		a.statusLabel.SetText(fmt.Sprintf("%d items in %d cartons, %.1f%% full",
			result.TotalItems(), result.NumBins(), result.TotalUtilization()))
		a.refreshCartonSelector()
		a.refreshResultCanvas()
	}()
}

// ─── Dialogs ─────────────────────────────

func (a *App) showCompareDialog() {
	if len(a.project.Items) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add items first.", a.window)
		return
	}

	scenarios := engine.BuildDefaultScenarios(a.project.Settings)
	results := engine.CompareScenarios(scenarios, a.project.Carton, a.project.Items)

	var sb strings.Builder
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(&sb, "%s: error: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Fprintf(&sb, "%s: %d cartons, %.1f%% full\n",
			r.Scenario.Name, r.CartonsUsed, r.Utilization)
	}
	dialog.ShowInformation("Scenario Comparison", sb.String(), a.window)
}

func (a *App) showEstimateDialog() {
	est := model.CalculatePurchaseEstimate(a.project.Items, a.project.Carton, 20, 0)
	msg := fmt.Sprintf(
		"Total item volume: %.1f L\nVolume lower bound: %d cartons\nRecommended (20%% slack): %d cartons",
		est.TotalLiters, est.CartonsNeededMin, est.CartonsWithSlack)
	dialog.ShowInformation("Purchase Estimate", msg, a.window)
}

// ─── File operations ─────────────────────────────

func (a *App) importItems(ext string) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		var result itemimporter.ImportResult
		if ext == ".xlsx" {
			result = itemimporter.ImportExcel(path)
		} else {
			result = itemimporter.ImportCSV(path)
		}

		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("import problems:\n%s", strings.Join(result.Errors, "\n")), a.window)
		}
		if len(result.Items) > 0 {
			a.project.Items = append(a.project.Items, result.Items...)
			a.itemList.Refresh()
			a.statusLabel.SetText(fmt.Sprintf("Imported %d item types", len(result.Items)))
		}
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

func (a *App) openProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		proj, err := project.Load(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.project = proj
		a.rememberProject(path)
		a.itemList.Refresh()
		a.refreshCartonSelector()
		a.refreshResultCanvas()
	}, a.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	d.Show()
}

func (a *App) saveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := project.Save(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.rememberProject(path)
	}, a.window)
	d.SetFileName(a.project.Name + ".json")
	d.Show()
}

// rememberProject records the path in the recent-projects list and persists
// the updated config.
func (a *App) rememberProject(path string) {
	a.config.RememberProject(path)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
		fmt.Printf("Warning: could not save config: %v\n", err)
	}
}

func (a *App) exportPDF() {
	a.exportResult("manifest.pdf", func(path string, result model.PackResult) error {
		return export.ExportPDF(path, result)
	})
}

func (a *App) exportLabels() {
	a.exportResult("labels.pdf", export.ExportLabels)
}

func (a *App) exportDXF() {
	a.exportResult("packing.dxf", export.ExportDXF)
}

func (a *App) exportResult(defaultName string, exportFn func(string, model.PackResult) error) {
	if a.project.Result == nil {
		dialog.ShowInformation("Nothing to export", "Run the packer first.", a.window)
		return
	}
	result := *a.project.Result

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()

		if err := exportFn(path, result); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.statusLabel.SetText("Exported " + path)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}
