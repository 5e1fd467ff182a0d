package engine

import (
	"sort"

	"github.com/mjanssen/zonegrid/internal/model"
)

// sideGraph relates zone edges that together form internal boundaries.
// Nodes are edges of the container's zones; a graph edge connects two
// zone edges that are collinear and touching. Each connected component
// is one boundary.
type sideGraph struct {
	nodes []Edge
	adj   map[Edge][]Edge
}

// buildSideGraph generates the graph for the container's current zone
// set:
//
//  1. Every zone contributes its four sides. Left/Right sides can only
//     join vertical boundaries, Top/Bottom only horizontal ones, so the
//     two sets are processed independently.
//  2. Within each set, edges are sorted by (perpendicular coordinate,
//     primary coordinate) and grouped by equal perpendicular coordinate;
//     each group is a maximal run of collinear edges.
//  3. The first and last group are the container's own perimeter and are
//     dropped.
//  4. Consecutive members of a remaining group are connected when their
//     segments touch or overlap. Consecutive-only comparison suffices
//     because the group is sorted along the primary axis; a gap between
//     consecutive members means the group holds two disjoint boundaries.
//  5. Edges that connected to nothing are removed.
func buildSideGraph(c *Container) *sideGraph {
	g := &sideGraph{adj: make(map[Edge][]Edge)}

	var vertical, horizontal []Edge
	for _, z := range c.zones {
		id := z.Alloc.ID
		vertical = append(vertical, Edge{ZoneID: id, Side: model.SideLeft}, Edge{ZoneID: id, Side: model.SideRight})
		horizontal = append(horizontal, Edge{ZoneID: id, Side: model.SideTop}, Edge{ZoneID: id, Side: model.SideBottom})
	}

	for _, set := range [][]Edge{vertical, horizontal} {
		groups := sortAndGroup(c, set)
		if len(groups) <= 2 {
			continue
		}
		for _, group := range groups[1 : len(groups)-1] {
			g.connectConsecutive(c, group)
		}
	}
	return g
}

// edgeKeys returns the sort keys for an edge: its perpendicular-axis
// coordinate (the line it lies on) and its primary-axis start.
func edgeKeys(c *Container, e Edge) (perp, primary float64) {
	minX, minY, _, _ := e.segment(c).Bounds()
	if e.Axis() == model.AxisY {
		// Vertical edge: lies on a constant-x line, runs along y.
		return minX, minY
	}
	return minY, minX
}

// sortAndGroup sorts one candidate set by (perpendicular, primary) and
// splits it into groups of equal perpendicular coordinate. Grouping uses
// exact float equality: edges on the same boundary line share the exact
// same coordinate because they came from the same scaled allocation.
func sortAndGroup(c *Container, set []Edge) [][]Edge {
	sort.SliceStable(set, func(i, j int) bool {
		pi, qi := edgeKeys(c, set[i])
		pj, qj := edgeKeys(c, set[j])
		if pi != pj {
			return pi < pj
		}
		return qi < qj
	})

	var groups [][]Edge
	for i := 0; i < len(set); {
		perp, _ := edgeKeys(c, set[i])
		j := i + 1
		for j < len(set) {
			p, _ := edgeKeys(c, set[j])
			if p != perp {
				break
			}
			j++
		}
		groups = append(groups, set[i:j])
		i = j
	}
	return groups
}

// connectConsecutive adds graph edges between consecutive group members
// whose segments touch or overlap along the primary axis. The test is an
// exact 1D interval comparison: the segments are collinear, so a generic
// 2D intersection adds nothing but float surprises.
func (g *sideGraph) connectConsecutive(c *Container, group []Edge) {
	for i := 0; i+1 < len(group); i++ {
		u, v := group[i], group[i+1]
		if segmentsTouch(c, u, v) {
			g.connect(u, v)
		}
	}
}

// segmentsTouch reports whether two collinear same-axis edges touch or
// overlap: endpoint-to-endpoint contact counts, differing lengths
// (T-junctions) are fine.
func segmentsTouch(c *Container, u, v Edge) bool {
	var uMin, uMax, vMin, vMax float64
	if u.Axis() == model.AxisY {
		_, uMin, _, uMax = u.segment(c).Bounds()
		_, vMin, _, vMax = v.segment(c).Bounds()
	} else {
		uMin, _, uMax, _ = u.segment(c).Bounds()
		vMin, _, vMax, _ = v.segment(c).Bounds()
	}
	return uMax >= vMin && vMax >= uMin
}

func (g *sideGraph) connect(u, v Edge) {
	if _, seen := g.adj[u]; !seen {
		g.nodes = append(g.nodes, u)
	}
	if _, seen := g.adj[v]; !seen {
		g.nodes = append(g.nodes, v)
	}
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
}

// components returns the connected components of the graph. Isolated
// edges never entered the adjacency map, so every component has at least
// two members. Component order and member order follow the deterministic
// node insertion order.
func (g *sideGraph) components() [][]Edge {
	visited := make(map[Edge]bool, len(g.nodes))
	var comps [][]Edge
	for _, start := range g.nodes {
		if visited[start] {
			continue
		}
		var comp []Edge
		stack := []Edge{start}
		visited[start] = true
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, n)
			for _, m := range g.adj[n] {
				if !visited[m] {
					visited[m] = true
					stack = append(stack, m)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
