package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/mjanssen/zonegrid/internal/model"
)

// dxfRect is an axis-aligned rectangle recovered from DXF entities.
type dxfRect struct {
	minX, minY float64
	maxX, maxY float64
}

// ImportDXF imports a zone layout from a DXF drawing. Each closed
// axis-aligned rectangle (LWPOLYLINE, or four chained LINEs) becomes one
// zone; the layout is normalized against the combined bounding box of
// all rectangles. Non-rectangular shapes are skipped with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var rects []dxfRect
	var lines []model.Segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			r, ok := lwPolylineToRect(e)
			if ok {
				rects = append(rects, r)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE that is not an axis-aligned rectangle")
			}
		case *entity.Line:
			lines = append(lines, model.Segment{
				X1: e.Start[0], Y1: e.Start[1],
				X2: e.End[0], Y2: e.End[1],
			})
		default:
			// Unsupported entity types are silently skipped
		}
	}

	rects = append(rects, chainLinesToRects(lines, 0.01)...)

	if len(rects) == 0 {
		result.Errors = append(result.Errors, "No closed rectangles found in DXF file")
		return result
	}

	for _, r := range rects {
		w, h := r.maxX-r.minX, r.maxY-r.minY
		if w < 0.01 || h < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate rectangle (%.2f x %.2f)", w, h))
			continue
		}
		result.Schemas = append(result.Schemas, model.NewSchema(r.minX, r.minY, w, h))
	}

	result.Schemas = normalizeImported(result.Schemas, &result)
	return result
}

// lwPolylineToRect recognizes an LWPOLYLINE describing an axis-aligned
// rectangle: four (or five, closing) vertices, no bulges, alternating
// horizontal and vertical sides.
func lwPolylineToRect(lw *entity.LwPolyline) (dxfRect, bool) {
	pts := make([][2]float64, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		pts = append(pts, [2]float64{v[0], v[1]})
	}
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return dxfRect{}, false
		}
	}
	// Drop an explicit closing vertex.
	if len(pts) == 5 && pts[0] == pts[4] {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return dxfRect{}, false
	}
	for i := range pts {
		next := pts[(i+1)%4]
		if pts[i][0] != next[0] && pts[i][1] != next[1] {
			return dxfRect{}, false
		}
	}
	return boundsOf(pts), true
}

// chainLinesToRects groups axis-aligned line segments into rectangles:
// any four segments whose endpoints close a loop within tol.
func chainLinesToRects(lines []model.Segment, tol float64) []dxfRect {
	var rects []dxfRect
	used := make([]bool, len(lines))

	for i := range lines {
		if used[i] {
			continue
		}
		loop := []int{i}
		current := lines[i]
		for len(loop) < 4 {
			found := -1
			for j := range lines {
				if used[j] || containsIndex(loop, j) {
					continue
				}
				if near(current.X2, current.Y2, lines[j].X1, lines[j].Y1, tol) {
					found = j
					current = lines[j]
					break
				}
				if near(current.X2, current.Y2, lines[j].X2, lines[j].Y2, tol) {
					found = j
					// Reverse the segment so the chain keeps direction.
					current = model.Segment{X1: lines[j].X2, Y1: lines[j].Y2, X2: lines[j].X1, Y2: lines[j].Y1}
					break
				}
			}
			if found == -1 {
				break
			}
			loop = append(loop, found)
		}
		if len(loop) != 4 {
			continue
		}
		start := lines[loop[0]]
		if !near(current.X2, current.Y2, start.X1, start.Y1, tol) {
			continue
		}
		for _, idx := range loop {
			used[idx] = true
		}
		var pts [][2]float64
		for _, idx := range loop {
			pts = append(pts, [2]float64{lines[idx].X1, lines[idx].Y1}, [2]float64{lines[idx].X2, lines[idx].Y2})
		}
		rects = append(rects, boundsOf(pts))
	}
	return rects
}

func boundsOf(pts [][2]float64) dxfRect {
	r := dxfRect{minX: pts[0][0], minY: pts[0][1], maxX: pts[0][0], maxY: pts[0][1]}
	for _, p := range pts[1:] {
		r.minX = math.Min(r.minX, p[0])
		r.minY = math.Min(r.minY, p[1])
		r.maxX = math.Max(r.maxX, p[0])
		r.maxY = math.Max(r.maxY, p[1])
	}
	return r
}

func near(x1, y1, x2, y2, tol float64) bool {
	return math.Abs(x1-x2) <= tol && math.Abs(y1-y2) <= tol
}

func containsIndex(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
