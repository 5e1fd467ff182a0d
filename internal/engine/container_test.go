package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mjanssen/zonegrid/internal/model"
)

func TestNewContainer_Validation(t *testing.T) {
	_, err := NewContainer(testConfig(), nil)
	assert.Error(t, err, "empty schema list")

	_, err = NewContainer(testConfig(), []model.Schema{
		{ID: "px", X: 0, Y: 0, Width: 640, Height: 480},
	})
	assert.Error(t, err, "pixel schemas are rejected")
}

func TestNewContainer_AssignsMissingIDs(t *testing.T) {
	c, err := NewContainer(testConfig(), []model.Schema{
		{X: 0, Y: 0, Width: 0.5, Height: 1},
		{ID: "keep", X: 0.5, Y: 0, Width: 0.5, Height: 1},
	})
	require.NoError(t, err)

	zones := c.Zones()
	assert.NotEmpty(t, zones[0].Schema.ID)
	assert.Equal(t, "keep", zones[1].Schema.ID)
}

func TestSetAllocation(t *testing.T) {
	c, err := NewContainer(testConfig(), []model.Schema{
		{ID: "l", X: 0, Y: 0, Width: 0.5, Height: 1},
		{ID: "r", X: 0.5, Y: 0, Width: 0.5, Height: 1},
	})
	require.NoError(t, err)
	assert.False(t, c.Allocated())

	gen := c.Generation()
	require.NoError(t, c.SetAllocation(model.Rect{Width: 1280, Height: 720}))
	assert.True(t, c.Allocated())
	assert.Greater(t, c.Generation(), gen, "reallocation is a structural change")

	l := c.Zones()[0].Alloc
	assert.Equal(t, 640.0, l.Width)
	assert.Equal(t, 720.0, l.Height)
	assert.Equal(t, "l", l.ID)

	assert.Error(t, c.SetAllocation(model.Rect{Width: 0, Height: 720}))
}

func TestSetAllocation_DegenerateLeavesContainerUntouched(t *testing.T) {
	c := newTestContainer(t, model.Rect{Width: 1000, Height: 1000},
		model.Schema{ID: "thin", X: 0, Y: 0, Width: 0.001, Height: 1},
		model.Schema{ID: "rest", X: 0.001, Y: 0, Width: 0.999, Height: 1},
	)

	// At 100px wide the thin zone would round below one pixel.
	err := c.SetAllocation(model.Rect{Width: 100, Height: 100})
	require.Error(t, err)
	var scaleErr *model.ScalingError
	assert.ErrorAs(t, err, &scaleErr)

	assert.Equal(t, model.Rect{Width: 1000, Height: 1000}, c.Allocation(), "failed reallocation keeps the old one")
	assert.Equal(t, 1.0, c.Zones()[0].Alloc.Width, "old pixel allocation intact")
}

func TestZoneAt(t *testing.T) {
	c := grid2x2(t)

	z, err := c.ZoneAt(50, 50)
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, "tl", z.Alloc.ID)

	// Shared border belongs to the zone whose leading edge it is.
	z, err = c.ZoneAt(200, 100)
	require.NoError(t, err)
	require.NotNil(t, z)
	assert.Equal(t, "tr", z.Alloc.ID)

	z, err = c.ZoneAt(500, 500)
	require.NoError(t, err)
	assert.Nil(t, z)
}

func TestDivide_Vertical(t *testing.T) {
	c := grid2x2(t)
	gen := c.Generation()

	line, err := NewLine(100, 0, 100, 200)
	require.NoError(t, err)
	a, b, err := c.Divide("tl", line)
	require.NoError(t, err)

	assert.Equal(t, 100.0, a.Width)
	assert.Equal(t, 100.0, b.X)
	assert.Equal(t, 100.0, b.Width)
	assert.Equal(t, a.Y, b.Y)
	assert.InDelta(t, 200.0*200.0, a.Area()+b.Area(), 1e-9, "halves cover the original")

	assert.NotEqual(t, "tl", a.ID, "halves get fresh ids")
	assert.NotEqual(t, "tl", b.ID)
	assert.NotEqual(t, a.ID, b.ID)

	assert.Len(t, c.Zones(), 5)
	assert.Greater(t, c.Generation(), gen)
	assert.InDelta(t, 400.0*400.0, totalArea(c), 1e-9, "tiling still covers the full area")

	z, _ := c.zoneByID("tl")
	assert.Nil(t, z, "the divided zone is gone")
}

func TestDivide_Horizontal(t *testing.T) {
	c := grid2x2(t)

	line, err := NewLine(200, 150, 400, 150)
	require.NoError(t, err)
	a, b, err := c.Divide("tr", line)
	require.NoError(t, err)

	assert.Equal(t, 150.0, a.Height)
	assert.Equal(t, 150.0, b.Y)
	assert.Equal(t, 50.0, b.Height)
}

func TestDivide_RoundsLineCoordinate(t *testing.T) {
	c := grid2x2(t)

	line, err := NewLine(99.6, 0, 99.6, 200)
	require.NoError(t, err)
	a, _, err := c.Divide("tl", line)
	require.NoError(t, err)
	assert.Equal(t, 100.0, a.Width, "line snaps to whole pixels")
}

func TestDivide_Errors(t *testing.T) {
	c := grid2x2(t)

	line, err := NewLine(100, 0, 100, 200)
	require.NoError(t, err)

	_, _, err = c.Divide("missing", line)
	assert.Error(t, err, "unknown zone id")

	outside, err := NewLine(300, 0, 300, 200)
	require.NoError(t, err)
	_, _, err = c.Divide("tl", outside)
	assert.Error(t, err, "line outside the zone")
	assert.Len(t, c.Zones(), 4, "failed divide mutates nothing")

	onEdge, err := NewLine(200, 0, 200, 200)
	require.NoError(t, err)
	_, _, err = c.Divide("tl", onEdge)
	assert.Error(t, err, "line on the zone border")
}

func TestDivide_RequiresAllocation(t *testing.T) {
	c, err := NewContainer(testConfig(), []model.Schema{
		{ID: "z", X: 0, Y: 0, Width: 1, Height: 1},
	})
	require.NoError(t, err)

	line, err := NewLine(10, 0, 10, 10)
	require.NoError(t, err)
	_, _, err = c.Divide("z", line)
	assert.ErrorIs(t, err, ErrNotAllocated)
}

func TestSchemas_RenormalizesFromAllocation(t *testing.T) {
	c := grid2x2(t)
	_, vertical := boundariesByAxis(t, c)
	require.NoError(t, vertical.MoveHorizontal(100))

	schemas, err := c.Schemas()
	require.NoError(t, err)
	byID := map[string]model.Schema{}
	for _, s := range schemas {
		byID[s.ID] = s
	}
	assert.InDelta(t, 0.25, byID["tl"].Width, 1e-9)
	assert.InDelta(t, 0.25, byID["tr"].X, 1e-9)
	assert.InDelta(t, 0.75, byID["tr"].Width, 1e-9)
	assert.True(t, byID["tr"].IsNormal())
}

func TestNewLine(t *testing.T) {
	v, err := NewLine(100, 0, 100, 400)
	require.NoError(t, err)
	assert.Equal(t, model.AxisY, v.Axis())

	h, err := NewLine(0, 50, 300, 50)
	require.NoError(t, err)
	assert.Equal(t, model.AxisX, h.Axis())
	assert.Equal(t, model.Point{X: 150, Y: 50}, h.Midpoint())

	_, err = NewLine(0, 0, 100, 100)
	assert.Error(t, err, "diagonal lines are rejected")
}
