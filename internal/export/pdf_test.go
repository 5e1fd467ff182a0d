package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mjanssen/zonegrid/internal/model"
)

func testPresets() []model.Preset {
	return []model.Preset{
		model.NewPreset("Halves", []model.Schema{
			{ID: "l", X: 0, Y: 0, Width: 0.5, Height: 1},
			{ID: "r", X: 0.5, Y: 0, Width: 0.5, Height: 1},
		}),
		model.NewPreset("Quadrants", []model.Schema{
			{ID: "tl", X: 0, Y: 0, Width: 0.5, Height: 0.5},
			{ID: "tr", X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
			{ID: "bl", X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
			{ID: "br", X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
		}),
	}
}

func TestExportPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.pdf")

	if err := ExportPDF(path, testPresets()); err != nil {
		t.Fatalf("export: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestExportPDF_NoPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.pdf")
	if err := ExportPDF(path, nil); err == nil {
		t.Error("expected error for empty preset list")
	}
}

func TestExportPDF_RejectsInvalidPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.pdf")
	bad := []model.Preset{{Name: "Broken"}}
	if err := ExportPDF(path, bad); err == nil {
		t.Error("expected validation error")
	}
}
