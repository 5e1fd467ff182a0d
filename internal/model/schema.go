// Package model defines the core data types for zone layouts: the Schema
// rectangle, its sides and axes, and named presets of schemas.
package model

import (
	"math"

	"github.com/google/uuid"
)

// PrecisionDigits is the number of decimal digits kept on normalized
// coordinates. Truncating deterministically keeps repeated
// normalize/scale cycles from drifting.
const PrecisionDigits = 10

// Rect is a plain reference rectangle in pixel coordinates, used as the
// target area for scaling and normalizing schemas.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Schema represents one zone rectangle. Coordinates are either normalized
// (all four values in [0,1], fractions of a reference area) or pixel
// values. The ID survives scale/normalize round trips.
type Schema struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSchema creates a Schema with a fresh id.
func NewSchema(x, y, w, h float64) Schema {
	return Schema{
		ID:     uuid.New().String()[:8],
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
	}
}

// NewSchemaFrom copies bounds from another schema. An empty id on the
// source gets a fresh generated one.
func NewSchemaFrom(other Schema) Schema {
	s := other
	if s.ID == "" {
		s.ID = uuid.New().String()[:8]
	}
	return s
}

// Copy returns a value copy. The id is preserved.
func (s Schema) Copy() Schema {
	return s
}

// IsNormal reports whether the schema is in normalized form: all four
// components within [0,1].
func (s Schema) IsNormal() bool {
	for _, v := range []float64{s.X, s.Y, s.Width, s.Height} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// Area returns width*height in the schema's current coordinate mode.
func (s Schema) Area() float64 {
	return s.Width * s.Height
}

// Contains reports whether the point lies inside the schema. The left and
// top edges are inclusive, the right and bottom exclusive, so adjacent
// schemas never both claim a shared border point.
func (s Schema) Contains(x, y float64) bool {
	return s.X <= x && x < s.X+s.Width && s.Y <= y && y < s.Y+s.Height
}

// Scaled converts a normalized schema to pixel coordinates relative to the
// reference rectangle. The id is preserved. Returns a ScalingError if
// either resulting dimension rounds below one pixel.
func (s Schema) Scaled(ref Rect) (Schema, error) {
	scaled := Schema{
		ID:     s.ID,
		X:      ref.X + ref.Width*s.X,
		Y:      ref.Y + ref.Height*s.Y,
		Width:  ref.Width * s.Width,
		Height: ref.Height * s.Height,
	}
	if math.Round(scaled.Width) < 1 || math.Round(scaled.Height) < 1 {
		return Schema{}, &ScalingError{ID: s.ID, Width: scaled.Width, Height: scaled.Height}
	}
	return scaled, nil
}

// Normalized converts a pixel schema to normalized form relative to the
// reference rectangle, truncating each component to PrecisionDigits. The
// id is preserved. The reference must have positive dimensions; a result
// outside [0,1] means the caller passed an inconsistent reference and
// yields a NormalizationError.
func (s Schema) Normalized(ref Rect) (Schema, error) {
	if ref.Width <= 0 || ref.Height <= 0 {
		return Schema{}, &NormalizationError{ID: s.ID, Reason: "reference area has zero or negative size"}
	}
	norm := Schema{
		ID:     s.ID,
		X:      Truncate((s.X - ref.X) / ref.Width),
		Y:      Truncate((s.Y - ref.Y) / ref.Height),
		Width:  Truncate(s.Width / ref.Width),
		Height: Truncate(s.Height / ref.Height),
	}
	if !norm.IsNormal() {
		return Schema{}, &NormalizationError{ID: s.ID, Reason: "normalized component outside [0,1]"}
	}
	return norm, nil
}

// Truncate cuts a value to PrecisionDigits decimal digits without rounding.
func Truncate(v float64) float64 {
	shift := math.Pow(10, PrecisionDigits)
	return math.Trunc(v*shift) / shift
}
