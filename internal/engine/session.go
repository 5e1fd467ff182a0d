package engine

import (
	"context"
	"math"

	"github.com/mjanssen/zonegrid/internal/model"
)

// Event is an input event marshaled onto the engine's thread. Input
// hooks run on their own capture threads and must never call the engine
// directly; they send events into the channel consumed by Session.Run.
type Event interface {
	isEvent()
}

// PointerMoved reports the pointer at a new position.
type PointerMoved struct {
	X, Y float64
}

// ButtonPressed reports a button press at a position.
type ButtonPressed struct {
	X, Y    float64
	Primary bool
}

// ButtonReleased reports the press ending. Releasing the pointer is the
// only way a drag ends; there is no timeout.
type ButtonReleased struct {
	X, Y float64
}

// AxisToggled flips the dividing line between horizontal and vertical.
type AxisToggled struct{}

// PresetLoaded replaces the container's zone set with a new normalized
// layout. Forces a full graph rebuild.
type PresetLoaded struct {
	Schemas []model.Schema
}

// AllocationChanged rescales the container to a new work area. Forces a
// full graph rebuild.
type AllocationChanged struct {
	Ref model.Rect
}

func (PointerMoved) isEvent()      {}
func (ButtonPressed) isEvent()     {}
func (ButtonReleased) isEvent()    {}
func (AxisToggled) isEvent()       {}
func (PresetLoaded) isEvent()      {}
func (AllocationChanged) isEvent() {}

// SessionState is the interactive editing state.
type SessionState int

const (
	// StateIdle: no boundary is being dragged. Hovering inside a
	// boundary's buffer highlights it; a primary click outside every
	// buffer divides the zone under the cursor along the divider.
	StateIdle SessionState = iota
	// StateDragging: the active boundary follows the pointer, clamped
	// to its valid range, until the button is released.
	StateDragging
)

// Session drives interactive editing of a container: boundary hover and
// drag, and zone division along a movable divider line. It owns the
// rectangle and boundary state and must only run on one goroutine.
type Session struct {
	c           *Container
	boundaries  []*Boundary
	active      *Boundary
	state       SessionState
	dragLow     float64
	dragHigh    float64
	divider     Line
	dividerAxis model.Axis

	// OnChange, when set, is called after every mutation of the zone
	// set (move or divide) and after reloads. Renderers refresh here.
	OnChange func()
}

// NewSession creates a session over an allocated container.
func NewSession(c *Container) (*Session, error) {
	s := &Session{c: c, dividerAxis: model.AxisY}
	if err := s.rebuild(); err != nil {
		return nil, err
	}
	return s, nil
}

// Container returns the container this session edits.
func (s *Session) Container() *Container {
	return s.c
}

// State returns the current editing state.
func (s *Session) State() SessionState {
	return s.state
}

// ActiveBoundary returns the boundary currently highlighted or dragged,
// or nil. Only one boundary is active at a time.
func (s *Session) ActiveBoundary() *Boundary {
	return s.active
}

// Boundaries returns the current boundary set.
func (s *Session) Boundaries() []*Boundary {
	return s.boundaries
}

// Divider returns the current dividing line.
func (s *Session) Divider() Line {
	return s.divider
}

// Run consumes events until the context is canceled or the channel
// closes. It is the single consumer side of the event channel: all
// engine state is touched only from here.
func (s *Session) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.Handle(ev)
		}
	}
}

// Handle processes one event synchronously. Exposed for callers that are
// already on the engine's goroutine (and for tests).
func (s *Session) Handle(ev Event) {
	switch e := ev.(type) {
	case PointerMoved:
		s.onPointerMoved(e.X, e.Y)
	case ButtonPressed:
		s.onButtonPressed(e.X, e.Y, e.Primary)
	case ButtonReleased:
		s.onButtonReleased()
	case AxisToggled:
		s.onAxisToggled()
	case PresetLoaded:
		s.onPresetLoaded(e.Schemas)
	case AllocationChanged:
		s.onAllocationChanged(e.Ref)
	}
}

func (s *Session) onAllocationChanged(ref model.Rect) {
	if err := s.c.SetAllocation(ref); err != nil {
		return
	}
	_ = s.rebuild()
	s.notify()
}

// rebuild recomputes the boundary set from the container. Required after
// every structural change; incremental boundary moves mutate in place
// and do not need it.
func (s *Session) rebuild() error {
	bs, err := s.c.Boundaries()
	if err != nil {
		return err
	}
	s.boundaries = bs
	s.active = nil
	s.state = StateIdle
	return nil
}

func (s *Session) onPointerMoved(x, y float64) {
	p := model.Point{X: x, Y: y}

	if s.state == StateDragging && s.active != nil {
		pos := x
		if s.active.Axis() == model.AxisX {
			pos = y
		}
		pos = math.Max(s.dragLow, math.Min(s.dragHigh, pos))
		if s.active.Axis() == model.AxisY {
			_ = s.active.MoveHorizontal(pos)
		} else {
			_ = s.active.MoveVertical(pos)
		}
		s.notify()
		return
	}

	// Hover: acquire the boundary whose buffer contains the pointer,
	// releasing any previously highlighted one.
	s.active = nil
	if b := s.nearestBoundary(p, nil); b != nil && b.InBuffer(p, s.c.cfg.BufferPx) {
		s.active = b
	}
	if s.active == nil {
		s.placeDivider(p, s.dividerAxis)
	}
}

func (s *Session) onButtonPressed(x, y float64, primary bool) {
	if !primary {
		return
	}
	p := model.Point{X: x, Y: y}

	if s.active != nil && s.active.InBuffer(p, s.c.cfg.BufferPx) {
		low, high, err := s.active.Range()
		if err != nil {
			return
		}
		s.dragLow, s.dragHigh = low, high
		s.state = StateDragging
		return
	}

	// Click outside every boundary buffer: divide the zone under the
	// cursor along the divider.
	zone, err := s.c.ZoneAt(x, y)
	if err != nil || zone == nil {
		return
	}
	if _, _, err := s.c.Divide(zone.Alloc.ID, s.divider); err != nil {
		return
	}
	_ = s.rebuild()
	s.notify()
}

func (s *Session) onButtonReleased() {
	if s.state != StateDragging {
		return
	}
	s.state = StateIdle
	s.notify()
}

func (s *Session) onAxisToggled() {
	if s.dividerAxis == model.AxisY {
		s.dividerAxis = model.AxisX
	} else {
		s.dividerAxis = model.AxisY
	}
	mid := s.divider.Midpoint()
	s.placeDivider(mid, s.dividerAxis)
}

func (s *Session) onPresetLoaded(schemas []model.Schema) {
	ref := s.c.Allocation()
	fresh, err := NewContainer(s.c.cfg, schemas)
	if err != nil {
		return
	}
	if err := fresh.SetAllocation(ref); err != nil {
		return
	}
	s.c.zones = fresh.zones
	s.c.gen++
	_ = s.rebuild()
	s.notify()
}

// placeDivider positions the dividing line through the zone under the
// point, snapping onto the nearest same-axis boundary's center when the
// point is aligned with it.
func (s *Session) placeDivider(p model.Point, axis model.Axis) {
	zone, err := s.c.ZoneAt(p.X, p.Y)
	if err != nil || zone == nil {
		return
	}
	pos := p
	if b := s.nearestBoundary(p, &axis); b != nil && b.IsAligned(p, s.c.cfg.BufferPx) {
		pos = b.Center()
	}

	alloc := zone.Alloc
	var line Line
	if axis == model.AxisX {
		line, err = NewLine(alloc.X, pos.Y, alloc.X+alloc.Width, pos.Y)
	} else {
		line, err = NewLine(pos.X, alloc.Y, pos.X, alloc.Y+alloc.Height)
	}
	if err == nil {
		s.divider = line
		s.dividerAxis = axis
	}
}

// nearestBoundary returns the boundary closest to the point, optionally
// restricted to one axis. Nil when no boundary qualifies.
func (s *Session) nearestBoundary(p model.Point, axis *model.Axis) *Boundary {
	var best *Boundary
	bestDist := math.Inf(1)
	for _, b := range s.boundaries {
		if axis != nil && b.Axis() != *axis {
			continue
		}
		if d := b.DistanceTo(p); d < bestDist {
			best, bestDist = b, d
		}
	}
	return best
}

func (s *Session) notify() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// Snapshot is an immutable view of the session for renderers. It is
// built on the engine's goroutine and can be handed across threads.
type Snapshot struct {
	Allocation model.Rect
	Zones      []model.Schema
	Boundaries []model.Segment
	Active     *model.Segment
	Divider    *Line
	Dragging   bool
}

// Snapshot captures the current state. Call from the engine's goroutine
// only (typically inside OnChange).
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Allocation: s.c.Allocation(),
		Dragging:   s.state == StateDragging,
	}
	for _, z := range s.c.Zones() {
		snap.Zones = append(snap.Zones, z.Alloc)
	}
	for _, b := range s.boundaries {
		snap.Boundaries = append(snap.Boundaries, b.Position())
	}
	if s.active != nil {
		pos := s.active.Position()
		snap.Active = &pos
	}
	if s.divider.X1 != s.divider.X2 || s.divider.Y1 != s.divider.Y2 {
		div := s.divider
		snap.Divider = &div
	}
	return snap
}
