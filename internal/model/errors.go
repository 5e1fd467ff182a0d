package model

import "fmt"

// ScalingError reports a scale operation that produced a degenerate
// rectangle (a dimension rounding below one pixel).
type ScalingError struct {
	ID     string
	Width  float64
	Height float64
}

func (e *ScalingError) Error() string {
	return fmt.Sprintf("schema %s: scaled size %.3fx%.3f is degenerate", e.ID, e.Width, e.Height)
}

// NormalizationError reports a normalize operation whose result fell
// outside [0,1], or a reference area that cannot normalize anything.
type NormalizationError struct {
	ID     string
	Reason string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("schema %s: normalization failed: %s", e.ID, e.Reason)
}
