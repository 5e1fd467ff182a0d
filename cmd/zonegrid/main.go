// zonegrid is a desktop editor for rectangular screen-zone layouts:
// presets of normalized rectangles that exactly tile a work area, with
// interactive boundary dragging and zone division.
//
// Build:
//   go build -o zonegrid ./cmd/zonegrid
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o zonegrid.exe ./cmd/zonegrid
//   GOOS=darwin  GOARCH=amd64 go build -o zonegrid-darwin ./cmd/zonegrid

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/mjanssen/zonegrid/internal/ui"
)

func main() {
	application := app.NewWithID("com.mjanssen.zonegrid")

	window := application.NewWindow("ZoneGrid")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1280, 760))
	window.CenterOnScreen()

	window.ShowAndRun()
}
