package model

import "testing"

func TestSideAxis(t *testing.T) {
	if SideTop.Axis() != AxisX || SideBottom.Axis() != AxisX {
		t.Error("top and bottom edges belong to horizontal boundaries")
	}
	if SideLeft.Axis() != AxisY || SideRight.Axis() != AxisY {
		t.Error("left and right edges belong to vertical boundaries")
	}
}

func TestSideSegment(t *testing.T) {
	s := Schema{X: 10, Y: 20, Width: 100, Height: 50}

	cases := []struct {
		side Side
		want Segment
	}{
		{SideTop, Segment{X1: 10, Y1: 20, X2: 110, Y2: 20}},
		{SideBottom, Segment{X1: 10, Y1: 70, X2: 110, Y2: 70}},
		{SideLeft, Segment{X1: 10, Y1: 20, X2: 10, Y2: 70}},
		{SideRight, Segment{X1: 110, Y1: 20, X2: 110, Y2: 70}},
	}
	for _, tc := range cases {
		if got := SideSegment(s, tc.side); got != tc.want {
			t.Errorf("%s: got %+v, want %+v", tc.side, got, tc.want)
		}
	}
}

func TestSegmentBoundsOrdersCoordinates(t *testing.T) {
	g := Segment{X1: 100, Y1: 80, X2: 20, Y2: 10}
	minX, minY, maxX, maxY := g.Bounds()
	if minX != 20 || minY != 10 || maxX != 100 || maxY != 80 {
		t.Errorf("got (%v,%v,%v,%v)", minX, minY, maxX, maxY)
	}
}

func TestSegmentMidpoint(t *testing.T) {
	g := Segment{X1: 0, Y1: 0, X2: 100, Y2: 40}
	mid := g.Midpoint()
	if mid.X != 50 || mid.Y != 20 {
		t.Errorf("got (%v,%v)", mid.X, mid.Y)
	}
}
