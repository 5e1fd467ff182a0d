// Package widgets contains custom Fyne widgets for zone rendering.
package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/mjanssen/zonegrid/internal/engine"
	"github.com/mjanssen/zonegrid/internal/model"
)

// Zone colors — cycle through these for visual distinction.
var zoneColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 160},  // green
	{R: 33, G: 150, B: 243, A: 160}, // blue
	{R: 255, G: 152, B: 0, A: 160},  // orange
	{R: 156, G: 39, B: 176, A: 160}, // purple
	{R: 0, G: 188, B: 212, A: 160},  // cyan
	{R: 244, G: 67, B: 54, A: 160},  // red
	{R: 255, G: 235, B: 59, A: 160}, // yellow
	{R: 121, G: 85, B: 72, A: 160},  // brown
}

// ZoneCanvas renders the current zone layout and forwards pointer input
// to the editing session. It never touches engine state directly: every
// interaction becomes an event on the session's channel, and redraws
// happen from snapshots the session hands back.
type ZoneCanvas struct {
	widget.BaseWidget

	events   chan<- engine.Event
	snapshot engine.Snapshot
	lastSize fyne.Size
}

// NewZoneCanvas creates a canvas sending input events into the given
// channel.
func NewZoneCanvas(events chan<- engine.Event) *ZoneCanvas {
	zc := &ZoneCanvas{events: events}
	zc.ExtendBaseWidget(zc)
	return zc
}

// SetSnapshot installs a new engine snapshot and redraws. Call on the
// Fyne goroutine.
func (zc *ZoneCanvas) SetSnapshot(snap engine.Snapshot) {
	zc.snapshot = snap
	zc.Refresh()
}

// Snapshot returns the last snapshot installed. Call on the Fyne
// goroutine.
func (zc *ZoneCanvas) Snapshot() engine.Snapshot {
	return zc.snapshot
}

// Resize reallocates the engine's work area to match the widget.
func (zc *ZoneCanvas) Resize(size fyne.Size) {
	zc.BaseWidget.Resize(size)
	if size == zc.lastSize || size.Width <= 0 || size.Height <= 0 {
		return
	}
	zc.lastSize = size
	zc.send(engine.AllocationChanged{
		Ref: model.Rect{Width: float64(size.Width), Height: float64(size.Height)},
	})
}

func (zc *ZoneCanvas) send(ev engine.Event) {
	select {
	case zc.events <- ev:
	default:
		// Drop events rather than block the UI thread; the next motion
		// event supersedes a lost one.
	}
}

// MouseIn implements desktop.Hoverable.
func (zc *ZoneCanvas) MouseIn(ev *desktop.MouseEvent) {
	zc.MouseMoved(ev)
}

// MouseMoved implements desktop.Hoverable.
func (zc *ZoneCanvas) MouseMoved(ev *desktop.MouseEvent) {
	zc.send(engine.PointerMoved{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
}

// MouseOut implements desktop.Hoverable.
func (zc *ZoneCanvas) MouseOut() {}

// MouseDown implements desktop.Mouseable.
func (zc *ZoneCanvas) MouseDown(ev *desktop.MouseEvent) {
	zc.send(engine.ButtonPressed{
		X:       float64(ev.Position.X),
		Y:       float64(ev.Position.Y),
		Primary: ev.Button == desktop.MouseButtonPrimary,
	})
}

// MouseUp implements desktop.Mouseable.
func (zc *ZoneCanvas) MouseUp(ev *desktop.MouseEvent) {
	zc.send(engine.ButtonReleased{X: float64(ev.Position.X), Y: float64(ev.Position.Y)})
}

func (zc *ZoneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &zoneCanvasRenderer{zc: zc}
}

type zoneCanvasRenderer struct {
	zc      *ZoneCanvas
	objects []fyne.CanvasObject
}

func (r *zoneCanvasRenderer) rebuild() {
	r.objects = nil
	snap := r.zc.snapshot

	for i, zone := range snap.Zones {
		col := zoneColors[i%len(zoneColors)]
		w := float32(zone.Width)
		h := float32(zone.Height)
		x := float32(zone.X)
		y := float32(zone.Y)

		rect := canvas.NewRectangle(col)
		rect.StrokeColor = color.NRGBA{R: 40, G: 40, B: 40, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(w, h))
		rect.Move(fyne.NewPos(x, y))
		r.objects = append(r.objects, rect)

		if w > 40 && h > 24 {
			label := canvas.NewText(fmt.Sprintf("%d", i+1), color.White)
			label.TextSize = 22
			label.Move(fyne.NewPos(x+w/2-6, y+h/2-14))
			r.objects = append(r.objects, label)
		}
	}

	for _, pos := range snap.Boundaries {
		r.objects = append(r.objects, boundaryLine(pos, color.NRGBA{R: 230, G: 230, B: 230, A: 220}, 2))
	}
	if snap.Active != nil {
		r.objects = append(r.objects, boundaryLine(*snap.Active, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 4))
	}
	if snap.Divider != nil && snap.Active == nil {
		div := *snap.Divider
		line := canvas.NewLine(color.NRGBA{R: 20, G: 20, B: 20, A: 255})
		line.StrokeWidth = 1.5
		line.Position1 = fyne.NewPos(float32(div.X1), float32(div.Y1))
		line.Position2 = fyne.NewPos(float32(div.X2), float32(div.Y2))
		r.objects = append(r.objects, line)
	}
}

func boundaryLine(pos model.Segment, col color.NRGBA, stroke float32) *canvas.Line {
	line := canvas.NewLine(col)
	line.StrokeWidth = stroke
	line.Position1 = fyne.NewPos(float32(pos.X1), float32(pos.Y1))
	line.Position2 = fyne.NewPos(float32(pos.X2), float32(pos.Y2))
	return line
}

func (r *zoneCanvasRenderer) Layout(fyne.Size) {}

func (r *zoneCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(320, 180)
}

func (r *zoneCanvasRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.zc)
}

func (r *zoneCanvasRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *zoneCanvasRenderer) Destroy() {}
