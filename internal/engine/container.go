// Package engine implements the zone tiling engine: a container of
// rectangles that always tile a work area, the side graph discovering the
// movable boundaries between them, and the interactive editing session.
//
// The engine is single-threaded: every operation completes before
// returning, and nothing here is safe for concurrent use. Input sources
// running on their own threads marshal events through Session.Run.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/mjanssen/zonegrid/internal/model"
)

// Config carries the editing parameters the engine needs. It is passed in
// explicitly; the engine reads no global state.
type Config struct {
	// BufferPx is the hit-test margin around a boundary line.
	BufferPx float64
	// MinGapPx is the minimum distance a boundary keeps from the far
	// edges of its adjacent zones during a drag.
	MinGapPx float64
}

// ErrNotAllocated is returned for operations that need a pixel allocation
// before the container has been given one.
var ErrNotAllocated = errors.New("container has no allocation")

// ErrStaleBoundary is returned when a boundary built against an older
// container generation is asked to operate after a structural change.
var ErrStaleBoundary = errors.New("boundary is stale: container changed since it was built")

// Zone is one rectangle of the tiling, held in the container's arena.
// Schema is the normalized (persisted) form, Alloc the current pixel
// allocation; both carry the same id.
type Zone struct {
	Schema model.Schema
	Alloc  model.Schema
}

// Container owns the set of zones that together exactly tile its
// allocated area. Structural changes bump the generation counter, which
// invalidates previously built boundaries.
type Container struct {
	cfg   Config
	ref   model.Rect
	zones []*Zone
	gen   uint64
}

// NewContainer creates a container from a list of normalized schemas.
// Schemas without ids get generated ones. The container has no pixel
// allocation yet; call SetAllocation before using geometry operations.
func NewContainer(cfg Config, schemas []model.Schema) (*Container, error) {
	if len(schemas) == 0 {
		return nil, fmt.Errorf("container needs at least one schema")
	}
	c := &Container{cfg: cfg}
	for i, s := range schemas {
		if !s.IsNormal() {
			return nil, fmt.Errorf("schema %d (%s) is not normalized", i, s.ID)
		}
		z := &Zone{Schema: model.NewSchemaFrom(s)}
		c.zones = append(c.zones, z)
	}
	return c, nil
}

// Config returns the editing parameters the container was built with.
func (c *Container) Config() Config {
	return c.cfg
}

// Generation returns the structural-change counter. Boundaries remember
// the generation they were built against.
func (c *Container) Generation() uint64 {
	return c.gen
}

// Allocated reports whether the container has a nonzero pixel allocation.
func (c *Container) Allocated() bool {
	return c.ref.Width > 0 && c.ref.Height > 0
}

// Allocation returns the container's current pixel allocation.
func (c *Container) Allocation() model.Rect {
	return c.ref
}

// SetAllocation scales every zone's normalized schema into pixel
// coordinates relative to ref. All zones are scaled before any is
// updated, so a degenerate result leaves the container untouched.
// Counts as a structural change.
func (c *Container) SetAllocation(ref model.Rect) error {
	if ref.Width <= 0 || ref.Height <= 0 {
		return fmt.Errorf("allocation must have positive size, got %.0fx%.0f", ref.Width, ref.Height)
	}
	scaled := make([]model.Schema, len(c.zones))
	for i, z := range c.zones {
		s, err := z.Schema.Scaled(ref)
		if err != nil {
			return err
		}
		scaled[i] = s
	}
	for i, z := range c.zones {
		z.Alloc = scaled[i]
	}
	c.ref = ref
	c.gen++
	return nil
}

// Zones returns the container's zones in insertion order. The slice is
// shared; callers must not mutate it.
func (c *Container) Zones() []*Zone {
	return c.zones
}

// Schemas re-derives the normalized form of every zone from its current
// pixel allocation, so persisted presets always reflect
// resolution-independent fractions.
func (c *Container) Schemas() ([]model.Schema, error) {
	if !c.Allocated() {
		return nil, ErrNotAllocated
	}
	out := make([]model.Schema, len(c.zones))
	for i, z := range c.zones {
		n, err := z.Alloc.Normalized(c.ref)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// ZoneAt returns the zone whose allocation contains the point, or nil if
// the point falls outside every zone.
func (c *Container) ZoneAt(x, y float64) (*Zone, error) {
	if !c.Allocated() {
		return nil, ErrNotAllocated
	}
	for _, z := range c.zones {
		if z.Alloc.Contains(x, y) {
			return z, nil
		}
	}
	return nil, nil
}

// zoneByID returns the zone with the given id and its index.
func (c *Container) zoneByID(id string) (*Zone, int) {
	for i, z := range c.zones {
		if z.Alloc.ID == id || z.Schema.ID == id {
			return z, i
		}
	}
	return nil, -1
}

// Divide splits the zone with the given id into two fresh zones along an
// axis-aligned line. A vertical line splits by x into left/right halves,
// a horizontal line by y into top/bottom. Both halves get fresh ids. The
// container renormalizes every zone afterwards. Nothing is mutated on
// failure.
func (c *Container) Divide(zoneID string, line Line) (model.Schema, model.Schema, error) {
	if !c.Allocated() {
		return model.Schema{}, model.Schema{}, ErrNotAllocated
	}
	zone, idx := c.zoneByID(zoneID)
	if zone == nil {
		return model.Schema{}, model.Schema{}, fmt.Errorf("zone %s is not a member of this container", zoneID)
	}

	// Each half gets a fresh id; neither inherits the original's identity.
	alloc := zone.Alloc
	a := model.NewSchema(alloc.X, alloc.Y, alloc.Width, alloc.Height)
	b := model.NewSchema(alloc.X, alloc.Y, alloc.Width, alloc.Height)

	if line.Axis() == model.AxisY {
		x := math.Round(line.X1)
		if x <= alloc.X || x >= alloc.X+alloc.Width {
			return model.Schema{}, model.Schema{}, fmt.Errorf("divide line x=%.0f falls outside zone %s", x, zoneID)
		}
		b.X = x
		b.Width = alloc.X + alloc.Width - x
		a.Width -= b.Width
	} else {
		y := math.Round(line.Y1)
		if y <= alloc.Y || y >= alloc.Y+alloc.Height {
			return model.Schema{}, model.Schema{}, fmt.Errorf("divide line y=%.0f falls outside zone %s", y, zoneID)
		}
		b.Y = y
		b.Height = alloc.Y + alloc.Height - y
		a.Height -= b.Height
	}

	normA, err := a.Normalized(c.ref)
	if err != nil {
		return model.Schema{}, model.Schema{}, err
	}
	normB, err := b.Normalized(c.ref)
	if err != nil {
		return model.Schema{}, model.Schema{}, err
	}

	c.zones = append(c.zones[:idx], c.zones[idx+1:]...)
	c.zones = append(c.zones, &Zone{Schema: normA, Alloc: a}, &Zone{Schema: normB, Alloc: b})
	c.renormalize()
	c.gen++
	return a, b, nil
}

// renormalize refreshes every zone's normalized schema from its current
// allocation. Allocation errors cannot occur here: every alloc lies
// within the reference by construction.
func (c *Container) renormalize() {
	for _, z := range c.zones {
		if n, err := z.Alloc.Normalized(c.ref); err == nil {
			z.Schema = n
		}
	}
}

// Boundaries rebuilds the side graph over the current zone set and
// returns one movable boundary per connected component. Results are
// ordered by axis, then by center position, so rebuilds are
// deterministic.
func (c *Container) Boundaries() ([]*Boundary, error) {
	if !c.Allocated() {
		return nil, ErrNotAllocated
	}
	graph := buildSideGraph(c)
	components := graph.components()

	boundaries := make([]*Boundary, 0, len(components))
	for _, comp := range components {
		b, err := newBoundary(c, comp)
		if err != nil {
			return nil, err
		}
		boundaries = append(boundaries, b)
	}
	sortBoundaries(boundaries)
	return boundaries, nil
}
