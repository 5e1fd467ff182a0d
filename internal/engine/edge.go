package engine

import "github.com/mjanssen/zonegrid/internal/model"

// Edge identifies one side of one zone. It holds the zone's id rather
// than a pointer, so edges stay valid handles into the container arena
// and staleness is caught through the generation counter instead of
// silently reading moved rectangles.
type Edge struct {
	ZoneID string
	Side   model.Side
}

// Axis returns the axis this edge belongs to: AxisX for Top/Bottom,
// AxisY for Left/Right.
func (e Edge) Axis() model.Axis {
	return e.Side.Axis()
}

// segment returns the edge's current line segment from the container's
// pixel allocations.
func (e Edge) segment(c *Container) model.Segment {
	zone, _ := c.zoneByID(e.ZoneID)
	if zone == nil {
		return model.Segment{}
	}
	return model.SideSegment(zone.Alloc, e.Side)
}
