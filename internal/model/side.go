package model

// Side identifies one side of a schema rectangle.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "Top"
	case SideBottom:
		return "Bottom"
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Axis classifies boundaries and the edges forming them. Top/Bottom edges
// lie on horizontal lines and carry AxisX: the boundaries they form move
// vertically. Left/Right edges lie on vertical lines and carry AxisY:
// their boundaries move horizontally.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "X"
	}
	return "Y"
}

// Axis returns the axis an edge on this side belongs to.
func (s Side) Axis() Axis {
	if s == SideTop || s == SideBottom {
		return AxisX
	}
	return AxisY
}

// Point is a 2D pixel coordinate.
type Point struct {
	X float64
	Y float64
}

// Segment is an axis-aligned line segment between two points.
type Segment struct {
	X1, Y1 float64
	X2, Y2 float64
}

// Bounds returns the segment's bounding box as (minX, minY, maxX, maxY).
func (g Segment) Bounds() (minX, minY, maxX, maxY float64) {
	minX, maxX = g.X1, g.X2
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY = g.Y1, g.Y2
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return minX, minY, maxX, maxY
}

// Midpoint returns the center of the segment's bounding box.
func (g Segment) Midpoint() Point {
	minX, minY, maxX, maxY := g.Bounds()
	return Point{X: (minX + maxX) / 2, Y: (minY + maxY) / 2}
}

// SideSegment returns the line segment bounding one side of a schema.
func SideSegment(s Schema, side Side) Segment {
	switch side {
	case SideTop:
		return Segment{X1: s.X, Y1: s.Y, X2: s.X + s.Width, Y2: s.Y}
	case SideBottom:
		return Segment{X1: s.X, Y1: s.Y + s.Height, X2: s.X + s.Width, Y2: s.Y + s.Height}
	case SideLeft:
		return Segment{X1: s.X, Y1: s.Y, X2: s.X, Y2: s.Y + s.Height}
	default:
		return Segment{X1: s.X + s.Width, Y1: s.Y, X2: s.X + s.Width, Y2: s.Y + s.Height}
	}
}
