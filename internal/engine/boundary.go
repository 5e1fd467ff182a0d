package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/mjanssen/zonegrid/internal/model"
)

// Boundary is a movable internal boundary of the tiling: a maximal set
// of collinear, mutually touching zone edges sharing one axis. Moving
// the boundary resizes every adjacent zone on both sides atomically, so
// the tiling never shows a gap or overlap between moves.
type Boundary struct {
	c     *Container
	gen   uint64
	axis  model.Axis
	edges []Edge

	position model.Segment
	center   model.Point
}

// newBoundary builds a boundary from one connected component of the side
// graph. All member edges must share one axis; mixed axes are a
// programmer error in the graph builder, not a user-recoverable state.
func newBoundary(c *Container, edges []Edge) (*Boundary, error) {
	if len(edges) == 0 {
		return nil, fmt.Errorf("boundary needs at least one edge")
	}
	axis := edges[0].Axis()
	for _, e := range edges[1:] {
		if e.Axis() != axis {
			panic("boundary must only contain edges of one axis: (Left,Right) or (Top,Bottom)")
		}
	}
	b := &Boundary{c: c, gen: c.gen, axis: axis, edges: edges}
	b.refresh()
	return b, nil
}

// refresh recomputes the cached position and center from the current
// zone allocations. Called after every move.
func (b *Boundary) refresh() {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range b.edges {
		x1, y1, x2, y2 := e.segment(b.c).Bounds()
		minX, minY = math.Min(minX, x1), math.Min(minY, y1)
		maxX, maxY = math.Max(maxX, x2), math.Max(maxY, y2)
	}
	b.position = model.Segment{X1: minX, Y1: minY, X2: maxX, Y2: maxY}
	b.center = b.position.Midpoint()
}

// Axis returns the boundary's axis: AxisY boundaries are vertical lines
// moved horizontally, AxisX boundaries horizontal lines moved vertically.
func (b *Boundary) Axis() model.Axis {
	return b.axis
}

// Position returns the minimal segment covering all member edges.
func (b *Boundary) Position() model.Segment {
	return b.position
}

// Center returns the midpoint of the boundary's position.
func (b *Boundary) Center() model.Point {
	return b.center
}

// Edges returns the member edges.
func (b *Boundary) Edges() []Edge {
	return b.edges
}

// InBuffer reports whether a point falls inside the boundary's hit-test
// region: the position segment expanded by margin on both sides, minus a
// disc of the same radius around each endpoint, so proximity to the two
// ends does not register as boundary proximity.
func (b *Boundary) InBuffer(p model.Point, margin float64) bool {
	minX, minY, maxX, maxY := b.position.Bounds()

	var along, alongMin, alongMax, perp float64
	if b.axis == model.AxisY {
		along, alongMin, alongMax = p.Y, minY, maxY
		perp = math.Abs(p.X - minX)
	} else {
		along, alongMin, alongMax = p.X, minX, maxX
		perp = math.Abs(p.Y - minY)
	}
	if perp > margin || along < alongMin || along > alongMax {
		return false
	}
	if dist(p, model.Point{X: b.position.X1, Y: b.position.Y1}) <= margin {
		return false
	}
	if dist(p, model.Point{X: b.position.X2, Y: b.position.Y2}) <= margin {
		return false
	}
	return true
}

// IsAligned reports whether the point's perpendicular distance from the
// boundary's center line is within margin. Used to snap a new dividing
// line onto an existing boundary.
func (b *Boundary) IsAligned(p model.Point, margin float64) bool {
	var spread float64
	if b.axis == model.AxisX {
		spread = math.Abs(p.Y - b.center.Y)
	} else {
		spread = math.Abs(p.X - b.center.X)
	}
	return spread <= margin
}

// DistanceTo returns the distance from a point to the boundary's
// position segment.
func (b *Boundary) DistanceTo(p model.Point) float64 {
	return pointSegmentDistance(p, b.position)
}

// MoveHorizontal moves a vertical boundary to a new x position, resizing
// every adjacent zone. Zones whose Left edge is a member keep their right
// edge fixed and move their leading coordinate; zones contributing a
// Right edge keep their leading coordinate and resize. No-op on a
// horizontal boundary.
func (b *Boundary) MoveHorizontal(x float64) error {
	if b.axis != model.AxisY {
		return nil
	}
	if err := b.checkFresh(); err != nil {
		return err
	}
	for _, e := range b.edges {
		zone, _ := b.c.zoneByID(e.ZoneID)
		if e.Side == model.SideLeft {
			zone.Alloc.Width = zone.Alloc.X + zone.Alloc.Width - x
			zone.Alloc.X = x
		} else {
			zone.Alloc.Width = x - zone.Alloc.X
		}
	}
	b.refresh()
	return nil
}

// MoveVertical moves a horizontal boundary to a new y position. No-op on
// a vertical boundary.
func (b *Boundary) MoveVertical(y float64) error {
	if b.axis != model.AxisX {
		return nil
	}
	if err := b.checkFresh(); err != nil {
		return err
	}
	for _, e := range b.edges {
		zone, _ := b.c.zoneByID(e.ZoneID)
		if e.Side == model.SideTop {
			zone.Alloc.Height = zone.Alloc.Y + zone.Alloc.Height - y
			zone.Alloc.Y = y
		} else {
			zone.Alloc.Height = y - zone.Alloc.Y
		}
	}
	b.refresh()
	return nil
}

// Range returns the interval of valid positions for this boundary: from
// the furthest trailing edge of the zones on its lower side plus the
// configured minimum gap, to the nearest leading edge of the zones on
// its upper side minus the gap. Callers clamp drag positions to this
// range before calling MoveHorizontal/MoveVertical.
func (b *Boundary) Range() (lower, upper float64, err error) {
	if err := b.checkFresh(); err != nil {
		return 0, 0, err
	}
	gap := b.c.cfg.MinGapPx
	lower, upper = math.Inf(-1), math.Inf(1)

	// For a vertical boundary the zones to its left contribute Right
	// edges; their own left edge bounds the move from below.
	lowerSide := model.SideRight
	if b.axis == model.AxisX {
		lowerSide = model.SideBottom
	}
	for _, e := range b.edges {
		zone, _ := b.c.zoneByID(e.ZoneID)
		var lead, trail float64
		if b.axis == model.AxisY {
			lead, trail = zone.Alloc.X, zone.Alloc.X+zone.Alloc.Width
		} else {
			lead, trail = zone.Alloc.Y, zone.Alloc.Y+zone.Alloc.Height
		}
		if e.Side == lowerSide {
			lower = math.Max(lower, lead)
		} else {
			upper = math.Min(upper, trail)
		}
	}
	return lower + gap, upper - gap, nil
}

// checkFresh verifies the boundary was built against the container's
// current generation.
func (b *Boundary) checkFresh() error {
	if b.gen != b.c.gen {
		return ErrStaleBoundary
	}
	return nil
}

// sortBoundaries orders boundaries by axis, then center, for
// deterministic rebuilds.
func sortBoundaries(bs []*Boundary) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].axis != bs[j].axis {
			return bs[i].axis < bs[j].axis
		}
		if bs[i].center.X != bs[j].center.X {
			return bs[i].center.X < bs[j].center.X
		}
		return bs[i].center.Y < bs[j].center.Y
	})
}

func dist(a, b model.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// pointSegmentDistance returns the distance from p to the closest point
// of the segment.
func pointSegmentDistance(p model.Point, g model.Segment) float64 {
	dx, dy := g.X2-g.X1, g.Y2-g.Y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return dist(p, model.Point{X: g.X1, Y: g.Y1})
	}
	t := ((p.X-g.X1)*dx + (p.Y-g.Y1)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return dist(p, model.Point{X: g.X1 + t*dx, Y: g.Y1 + t*dy})
}
