// Package ui builds the zonegrid desktop shell: a preset browser on the
// left and the interactive zone editor canvas on the right. All layout
// logic lives in the engine; this package only renders snapshots and
// forwards input.
package ui

import (
	"context"
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/mjanssen/zonegrid/internal/engine"
	"github.com/mjanssen/zonegrid/internal/export"
	"github.com/mjanssen/zonegrid/internal/importer"
	"github.com/mjanssen/zonegrid/internal/model"
	"github.com/mjanssen/zonegrid/internal/project"
	"github.com/mjanssen/zonegrid/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	fyneApp fyne.App
	window  fyne.Window

	cfg   project.EditorConfig
	store model.PresetStore

	presetList *widget.List
	canvas     *widgets.ZoneCanvas
	selected   int

	// Editing session; replaced whenever another preset is opened.
	events  chan engine.Event
	cancel  context.CancelFunc
	session *engine.Session
	watcher *project.PresetWatcher
}

// NewApp loads persisted state and creates the shell.
func NewApp(fyneApp fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadEditorConfig(project.DefaultConfigPath())
	if err != nil {
		log.Printf("config load failed, using defaults: %v", err)
		cfg = project.DefaultEditorConfig()
	}
	store, err := project.LoadDefaultPresets()
	if err != nil {
		log.Printf("preset load failed, starting empty: %v", err)
		store = model.NewPresetStore()
	}
	if len(store.Presets) == 0 {
		store.Add(model.NewPreset("Halves", []model.Schema{
			model.NewSchema(0, 0, 0.5, 1),
			model.NewSchema(0.5, 0, 0.5, 1),
		}))
	}
	return &App{
		fyneApp:  fyneApp,
		window:   window,
		cfg:      cfg,
		store:    store,
		selected: -1,
	}
}

// Build assembles the window content.
func (a *App) Build() fyne.CanvasObject {
	a.events = make(chan engine.Event, 64)
	a.canvas = widgets.NewZoneCanvas(a.events)

	a.presetList = widget.NewList(
		func() int { return len(a.store.Presets) },
		func() fyne.CanvasObject { return widget.NewLabel("preset") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			p := a.store.Presets[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%s (%d zones)", p.Name, len(p.Schemas)))
		},
	)
	a.presetList.OnSelected = func(i widget.ListItemID) {
		a.selected = i
		a.openPreset(a.store.Presets[i])
	}

	side := container.NewBorder(
		widget.NewLabel("Presets"), nil, nil, nil,
		a.presetList,
	)
	split := container.NewHSplit(side, a.canvas)
	split.SetOffset(0.25)

	a.startWatcher()
	if len(a.store.Presets) > 0 {
		a.presetList.Select(0)
	}
	return split
}

// SetupMenus creates the native menu bar.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Preset", func() { a.savePreset() }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Zones from CSV...", func() { a.importWith(importer.ImportCSV) }),
		fyne.NewMenuItem("Import Zones from Excel...", func() { a.importWith(importer.ImportExcel) }),
		fyne.NewMenuItem("Import Zones from DXF...", func() { a.importWith(importer.ImportDXF) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Layout PDF...", func() {
			a.exportWith(func(path string) error { return export.ExportPDF(path, a.store.Presets) })
		}),
		fyne.NewMenuItem("Export QR Share Cards...", func() {
			a.exportWith(func(path string) error { return export.ExportShareCards(path, a.store.Presets) })
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Toggle Divider Axis", func() { a.send(engine.AxisToggled{}) }),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu))
}

// openPreset tears down any running session and starts editing the
// given preset.
func (a *App) openPreset(preset model.Preset) {
	if a.cancel != nil {
		a.cancel()
	}

	c, err := engine.NewContainer(a.cfg.EngineConfig(), preset.Schemas)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	size := a.canvas.Size()
	ref := model.Rect{Width: float64(size.Width), Height: float64(size.Height)}
	if ref.Width <= 0 || ref.Height <= 0 {
		ref = model.Rect{Width: 1280, Height: 720}
	}
	if err := c.SetAllocation(ref); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	session, err := engine.NewSession(c)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	session.OnChange = func() {
		// Runs on the engine goroutine: capture a snapshot there and
		// hand only the copy to the Fyne thread.
		snap := session.Snapshot()
		fyne.Do(func() { a.canvas.SetSnapshot(snap) })
	}

	// First paint before the engine goroutine takes ownership.
	a.canvas.SetSnapshot(session.Snapshot())

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.session = session
	go session.Run(ctx, a.events)
}

// send marshals an event to the running session, if any.
func (a *App) send(ev engine.Event) {
	if a.session == nil {
		return
	}
	select {
	case a.events <- ev:
	default:
	}
}

// savePreset writes the edited layout back into the store. Normalized
// schemas are re-derived from the canvas's latest snapshot so saved
// presets always carry resolution-independent fractions.
func (a *App) savePreset() {
	if a.selected < 0 || a.session == nil {
		return
	}
	snap := a.canvas.Snapshot()
	if snap.Allocation.Width <= 0 || snap.Allocation.Height <= 0 {
		return
	}
	schemas := make([]model.Schema, 0, len(snap.Zones))
	for _, z := range snap.Zones {
		n, err := z.Normalized(snap.Allocation)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		schemas = append(schemas, n)
	}
	a.store.Presets[a.selected].Schemas = schemas
	if err := project.SaveDefaultPresets(a.store); err != nil {
		dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
		return
	}
	a.presetList.Refresh()
}

// importWith runs an importer against a picked file and adds the result
// as a new preset.
func (a *App) importWith(run func(string) importer.ImportResult) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		result := run(path)
		if len(result.Errors) > 0 {
			dialog.ShowError(fmt.Errorf("%s", strings.Join(result.Errors, "\n")), a.window)
			return
		}
		if len(result.Warnings) > 0 {
			dialog.ShowInformation("Import warnings", strings.Join(result.Warnings, "\n"), a.window)
		}
		name := fmt.Sprintf("Imported %d", len(a.store.Presets)+1)
		a.store.Add(model.NewPreset(name, result.Schemas))
		if err := project.SaveDefaultPresets(a.store); err != nil {
			dialog.ShowError(fmt.Errorf("failed to save presets: %w", err), a.window)
			return
		}
		a.presetList.Refresh()
	}, a.window)
	fd.Show()
}

// exportWith runs an exporter against a picked target path.
func (a *App) exportWith(run func(string) error) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := run(path); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	fd.Show()
}

// startWatcher hot-reloads the preset store when the file changes on
// disk. The reload callback runs on the watcher goroutine; everything it
// touches is marshaled onto the right thread.
func (a *App) startWatcher() {
	watcher, err := project.WatchPresets(project.DefaultPresetsPath(), func(store model.PresetStore) {
		fyne.Do(func() {
			a.store = store
			a.presetList.Refresh()
			if a.selected >= 0 && a.selected < len(store.Presets) {
				a.send(engine.PresetLoaded{Schemas: store.Presets[a.selected].Schemas})
			}
		})
	})
	if err != nil {
		log.Printf("preset watcher unavailable: %v", err)
		return
	}
	a.watcher = watcher
}
