package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/mjanssen/zonegrid/internal/model"
)

// ShareCard holds the data encoded into a preset's QR code: the
// normalized rectangle list, so another machine can import the exact
// layout by scanning it.
type ShareCard struct {
	Name    string         `json:"name"`
	Schemas []model.Schema `json:"schemas"`
}

// Card layout constants (A4 portrait in mm, 2 columns x 4 rows).
const (
	cardPageWidth  = 210.0
	cardPageHeight = 297.0
	cardMarginTop  = 12.0
	cardMarginLeft = 10.0
	cardWidth      = 95.0
	cardHeight     = 68.0
	cardCols       = 2
	cardRows       = 4
	cardsPerPage   = cardCols * cardRows
	cardQRSize     = 55.0
	cardPadding    = 3.0
)

// ExportShareCards generates a PDF of QR share cards, one per preset.
// Each card shows the preset name and a QR code carrying the preset's
// normalized schema list as JSON.
func ExportShareCards(path string, presets []model.Preset) error {
	if len(presets) == 0 {
		return fmt.Errorf("no presets to generate share cards for")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, preset := range presets {
		if i%cardsPerPage == 0 {
			pdf.AddPage()
		}
		posOnPage := i % cardsPerPage
		col := posOnPage % cardCols
		row := posOnPage / cardCols

		x := cardMarginLeft + float64(col)*cardWidth
		y := cardMarginTop + float64(row)*cardHeight
		if err := renderShareCard(pdf, x, y, preset); err != nil {
			return fmt.Errorf("failed to render share card for %q: %w", preset.Name, err)
		}
	}
	return pdf.OutputFileAndClose(path)
}

// renderShareCard draws a single card at the given position.
func renderShareCard(pdf *fpdf.Fpdf, x, y float64, preset model.Preset) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, cardWidth, cardHeight, "D")

	card := ShareCard{Name: preset.Name, Schemas: preset.Schemas}
	data, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal share card: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(data), qrcode.Medium, 512)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s", preset.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := x + (cardWidth-cardQRSize)/2
	qrY := y + cardPadding
	pdf.ImageOptions(imgName, qrX, qrY, cardQRSize, cardQRSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(x+cardPadding, y+cardHeight-cardPadding-6)
	text := fmt.Sprintf("%s (%d zones)", preset.Name, len(preset.Schemas))
	pdf.CellFormat(cardWidth-2*cardPadding, 6, text, "", 0, "C", false, 0, "")
	return nil
}
