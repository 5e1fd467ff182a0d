// Package project handles on-disk persistence for zonegrid: the preset
// store, the editor configuration, and a file watcher for hot reload.
// Everything lives as JSON under ~/.zonegrid/.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mjanssen/zonegrid/internal/model"
)

// DefaultConfigDir returns the directory for application files,
// ~/.zonegrid on all platforms.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".zonegrid")
}

// DefaultPresetsPath returns the default path of the preset store.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset store to a JSON file, creating parent
// directories as needed.
func SavePresets(path string, store model.PresetStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads a preset store from a JSON file. A missing file
// yields an empty store. Malformed or non-normalized presets are
// rejected here so the engine never receives partial data; schemas
// without ids get generated ones.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.NewPresetStore(), nil
		}
		return model.PresetStore{}, err
	}
	var store model.PresetStore
	if err := json.Unmarshal(data, &store); err != nil {
		return model.PresetStore{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if store.Presets == nil {
		store.Presets = []model.Preset{}
	}
	for i := range store.Presets {
		for j, s := range store.Presets[i].Schemas {
			store.Presets[i].Schemas[j] = model.NewSchemaFrom(s)
		}
	}
	if err := store.Validate(); err != nil {
		return model.PresetStore{}, fmt.Errorf("load %s: %w", path, err)
	}
	return store, nil
}

// LoadDefaultPresets loads the store from the default path.
func LoadDefaultPresets() (model.PresetStore, error) {
	return LoadPresets(DefaultPresetsPath())
}

// SaveDefaultPresets saves the store to the default path.
func SaveDefaultPresets(store model.PresetStore) error {
	return SavePresets(DefaultPresetsPath(), store)
}
