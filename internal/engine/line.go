package engine

import (
	"fmt"

	"github.com/mjanssen/zonegrid/internal/model"
)

// Line is a strictly horizontal or vertical dividing line. A vertical
// line (constant x) carries AxisY, a horizontal one AxisX, matching the
// axis of the boundary a divide along it would create.
type Line struct {
	X1, Y1 float64
	X2, Y2 float64
	axis   model.Axis
}

// NewLine builds a dividing line. The two points must share an x or a y
// coordinate.
func NewLine(x1, y1, x2, y2 float64) (Line, error) {
	if x1 != x2 && y1 != y2 {
		return Line{}, fmt.Errorf("line (%.1f,%.1f)-(%.1f,%.1f) is not axis-aligned", x1, y1, x2, y2)
	}
	axis := model.AxisX
	if x1 == x2 {
		axis = model.AxisY
	}
	return Line{X1: x1, Y1: y1, X2: x2, Y2: y2, axis: axis}, nil
}

// Axis returns the line's axis.
func (l Line) Axis() model.Axis {
	return l.axis
}

// Midpoint returns the center of the line.
func (l Line) Midpoint() model.Point {
	return model.Point{X: (l.X1 + l.X2) / 2, Y: (l.Y1 + l.Y2) / 2}
}
