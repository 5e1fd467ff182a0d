// Package export writes zone presets to shareable file formats: PDF
// layout diagrams and QR-coded share cards.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/mjanssen/zonegrid/internal/model"
)

// zoneColor represents an RGB fill for a drawn zone.
type zoneColor struct {
	R, G, B int
}

// zoneColors cycle through for visual distinction; mirrors the scheme
// used by the UI zone canvas.
var zoneColors = []zoneColor{
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
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF with one layout-diagram page per preset.
// Zones are drawn to scale within a 16:9 reference frame.
func ExportPDF(path string, presets []model.Preset) error {
	if len(presets) == 0 {
		return fmt.Errorf("no presets to export")
	}
	for _, p := range presets {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, preset := range presets {
		pdf.AddPage()
		renderPresetPage(pdf, preset)
	}
	return pdf.OutputFileAndClose(path)
}

// renderPresetPage draws one preset on the current page.
func renderPresetPage(pdf *fpdf.Fpdf, preset model.Preset) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%d zones)", preset.Name, len(preset.Schemas))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Reference frame: 16:9, scaled to fit the drawing area.
	const refW, refH = 1600.0, 900.0
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom
	scale := math.Min(drawWidth/refW, drawHeight/refH)
	frameW, frameH := refW*scale, refH*scale
	originX := marginLeft + (drawWidth-frameW)/2
	originY := drawAreaTop

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.4)
	pdf.Rect(originX, originY, frameW, frameH, "D")

	pdf.SetFont("Helvetica", "", 9)
	for i, schema := range preset.Schemas {
		c := zoneColors[i%len(zoneColors)]
		x := originX + schema.X*frameW
		y := originY + schema.Y*frameH
		w := schema.Width * frameW
		h := schema.Height * frameH

		pdf.SetFillColor(c.R, c.G, c.B)
		pdf.SetDrawColor(60, 60, 60)
		pdf.SetLineWidth(0.2)
		pdf.Rect(x, y, w, h, "FD")

		pdf.SetTextColor(255, 255, 255)
		pdf.SetXY(x, y+h/2-2)
		pdf.CellFormat(w, 4, fmt.Sprintf("%d", i+1), "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}
