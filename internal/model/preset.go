package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Preset is a named zone layout: an ordered list of normalized schemas
// that together tile the whole work area.
type Preset struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Schemas   []Schema `json:"schemas"`
}

// NewPreset creates a preset from the given schemas. Schemas without ids
// get generated ones.
func NewPreset(name string, schemas []Schema) Preset {
	now := time.Now().UTC().Format(time.RFC3339)
	copied := make([]Schema, len(schemas))
	for i, s := range schemas {
		copied[i] = NewSchemaFrom(s)
	}
	return Preset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Schemas:   copied,
	}
}

// Validate checks that the preset holds a well-formed normalized layout:
// at least one schema, every schema with positive size, and every
// component within [0,1]. Persistence rejects presets failing this before
// the engine ever sees them.
func (p Preset) Validate() error {
	if len(p.Schemas) == 0 {
		return fmt.Errorf("preset %q: no schemas", p.Name)
	}
	for i, s := range p.Schemas {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("preset %q: schema %d has non-positive size", p.Name, i)
		}
		if !s.IsNormal() {
			return fmt.Errorf("preset %q: schema %d is not normalized", p.Name, i)
		}
		if s.X+s.Width > 1+1e-9 || s.Y+s.Height > 1+1e-9 {
			return fmt.Errorf("preset %q: schema %d extends past the reference area", p.Name, i)
		}
	}
	return nil
}

// PresetStore holds a collection of presets.
type PresetStore struct {
	Presets []Preset `json:"presets"`
}

// NewPresetStore creates an empty store.
func NewPresetStore() PresetStore {
	return PresetStore{Presets: []Preset{}}
}

// Add appends a preset to the store.
func (ps *PresetStore) Add(p Preset) {
	ps.Presets = append(ps.Presets, p)
}

// Remove removes a preset by id. Returns true if found and removed.
func (ps *PresetStore) Remove(id string) bool {
	for i, p := range ps.Presets {
		if p.ID == id {
			ps.Presets = append(ps.Presets[:i], ps.Presets[i+1:]...)
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the preset with the given id, or nil.
func (ps *PresetStore) FindByID(id string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].ID == id {
			return &ps.Presets[i]
		}
	}
	return nil
}

// FindByName returns a pointer to the first preset with the given name, or nil.
func (ps *PresetStore) FindByName(name string) *Preset {
	for i := range ps.Presets {
		if ps.Presets[i].Name == name {
			return &ps.Presets[i]
		}
	}
	return nil
}

// Names returns the preset names for UI lists.
func (ps *PresetStore) Names() []string {
	names := make([]string, len(ps.Presets))
	for i, p := range ps.Presets {
		names[i] = p.Name
	}
	return names
}

// Validate checks every preset in the store.
func (ps *PresetStore) Validate() error {
	for _, p := range ps.Presets {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
