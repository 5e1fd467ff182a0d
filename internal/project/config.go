package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/mjanssen/zonegrid/internal/engine"
)

// EditorConfig holds the user-tunable editing parameters. It is loaded
// once at startup and passed by value into the engine; nothing in the
// geometry code reads it ambiently.
type EditorConfig struct {
	// BoundaryBufferPx is the hit-test margin around boundary lines.
	BoundaryBufferPx float64 `json:"boundary_buffer_px"`
	// MinZoneGapPx is the smallest distance a drag may bring a boundary
	// to the far edge of an adjacent zone.
	MinZoneGapPx float64 `json:"min_zone_gap_px"`
}

// DefaultEditorConfig returns the shipped defaults.
func DefaultEditorConfig() EditorConfig {
	return EditorConfig{
		BoundaryBufferPx: 40,
		MinZoneGapPx:     40,
	}
}

// EngineConfig converts the editor configuration into the engine's
// explicit parameter struct.
func (c EditorConfig) EngineConfig() engine.Config {
	return engine.Config{
		BufferPx: c.BoundaryBufferPx,
		MinGapPx: c.MinZoneGapPx,
	}
}

// DefaultConfigPath returns the default path of the config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveEditorConfig persists the configuration as JSON.
func SaveEditorConfig(path string, config EditorConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadEditorConfig reads the configuration. A missing file yields the
// defaults with no error; non-positive values fall back to defaults.
func LoadEditorConfig(path string) (EditorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultEditorConfig(), nil
		}
		return EditorConfig{}, err
	}
	var config EditorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return EditorConfig{}, err
	}
	defaults := DefaultEditorConfig()
	if config.BoundaryBufferPx <= 0 {
		config.BoundaryBufferPx = defaults.BoundaryBufferPx
	}
	if config.MinZoneGapPx <= 0 {
		config.MinZoneGapPx = defaults.MinZoneGapPx
	}
	return config, nil
}
