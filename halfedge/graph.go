package halfedge

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/faultclosure/lonlat"
	"github.com/katalvlaran/faultclosure/matcher"
)

// Graph is an immutable half-edge graph over matched vertices.
type Graph struct {
	vertices []lonlat.Point
	edges    []HalfEdge
	bearing  []float64 // per half-edge, radians in (-π, π]
	length   []float64 // per half-edge, degrees
	outgoing [][]int   // per vertex, counter-clockwise
	slot     []int     // per half-edge, its index in outgoing[Origin]
	overlaps []int     // segments running along another one, ascending
}

// Build creates the half-edge graph for every non-degenerate segment of t.
//
// Steps:
//  1. Emit a twin pair per valid segment, forward edge first.
//  2. Record each half-edge's bearing and append it to its origin's list.
//  3. Sort every vertex list counter-clockwise and cache the slots.
//  4. Record segments that leave a vertex along another segment but end
//     elsewhere (collinear overlaps).
func Build(t *matcher.Table) (*Graph, error) {
	if t == nil {
		return nil, ErrNilTable
	}

	nv := len(t.Vertices)
	g := &Graph{
		vertices: t.Vertices,
		outgoing: make([][]int, nv),
	}

	// 1) Twin pairs in input order.
	for i, e := range t.Edges {
		if e.V1 == matcher.Unmatched {
			continue
		}
		if e.V1 < 0 || e.V1 >= nv || e.V2 < 0 || e.V2 >= nv {
			return nil, fmt.Errorf("%w: segment %d (%d, %d)", ErrBadVertex, i, e.V1, e.V2)
		}
		h := len(g.edges)
		g.edges = append(g.edges,
			HalfEdge{Origin: e.V1, Dest: e.V2, Segment: i, Twin: h + 1, Forward: true},
			HalfEdge{Origin: e.V2, Dest: e.V1, Segment: i, Twin: h, Forward: false},
		)
	}

	// 2) Bearings and per-vertex membership.
	g.bearing = make([]float64, len(g.edges))
	g.length = make([]float64, len(g.edges))
	for h, he := range g.edges {
		g.bearing[h] = lonlat.Bearing(g.vertices[he.Origin], g.vertices[he.Dest])
		g.length[h] = lonlat.PlanarDistance(g.vertices[he.Origin], g.vertices[he.Dest])
		g.outgoing[he.Origin] = append(g.outgoing[he.Origin], h)
	}

	// 3) Angular order, computed once.
	g.slot = make([]int, len(g.edges))
	for v := range g.outgoing {
		out := g.outgoing[v]
		sort.Slice(out, func(a, b int) bool {
			ha, hb := out[a], out[b]
			if g.bearing[ha] != g.bearing[hb] {
				return g.bearing[ha] < g.bearing[hb]
			}
			return g.coincidentLess(ha, hb)
		})
		for i, h := range out {
			g.slot[h] = i
		}
	}

	// 4) Same bearing, different destination: one leg lies along the other.
	overlap := make(map[int]struct{})
	for _, out := range g.outgoing {
		for i := 1; i < len(out); i++ {
			a, b := out[i-1], out[i]
			if g.bearing[a] == g.bearing[b] && g.edges[a].Dest != g.edges[b].Dest {
				overlap[g.edges[a].Segment] = struct{}{}
				overlap[g.edges[b].Segment] = struct{}{}
			}
		}
	}
	for s := range overlap {
		g.overlaps = append(g.overlaps, s)
	}
	sort.Ints(g.overlaps)

	return g, nil
}

// coincidentLess orders two half-edges leaving the same vertex with the same
// bearing: shorter legs first. Duplicate segments (same two vertices) must
// appear in mirrored order at their two ends, as if drawn infinitesimally
// apart, so among them the order is ascending by segment at the lower-id end
// and descending at the other.
func (g *Graph) coincidentLess(a, b int) bool {
	ea, eb := g.edges[a], g.edges[b]
	if g.length[a] != g.length[b] {
		return g.length[a] < g.length[b]
	}
	if ea.Dest != eb.Dest || ea.Segment == eb.Segment {
		return a < b
	}
	if ea.Origin < ea.Dest {
		return ea.Segment < eb.Segment
	}

	return ea.Segment > eb.Segment
}

// NumVertices returns the number of vertices, including isolated ones.
func (g *Graph) NumVertices() int { return len(g.vertices) }

// NumEdges returns the number of half-edges (twice the valid segments).
func (g *Graph) NumEdges() int { return len(g.edges) }

// Point returns the coordinates of vertex v.
func (g *Graph) Point(v int) lonlat.Point { return g.vertices[v] }

// Edge returns half-edge h.
func (g *Graph) Edge(h int) HalfEdge { return g.edges[h] }

// Twin returns the twin of half-edge h.
func (g *Graph) Twin(h int) int { return g.edges[h].Twin }

// Bearing returns the planar bearing of half-edge h in radians.
func (g *Graph) Bearing(h int) float64 { return g.bearing[h] }

// Degree returns the number of half-edges leaving v.
func (g *Graph) Degree(v int) int { return len(g.outgoing[v]) }

// Outgoing returns a copy of v's outgoing half-edges in counter-clockwise order.
func (g *Graph) Outgoing(v int) []int {
	out := make([]int, len(g.outgoing[v]))
	copy(out, g.outgoing[v])

	return out
}

// Slot returns the position of h in the counter-clockwise list of its origin.
func (g *Graph) Slot(h int) int { return g.slot[h] }

// Next returns the half-edge that continues the face to the left of h.
func (g *Graph) Next(h int) int { return g.NextLive(h, nil) }

// NextLive is Next over the half-edges with live[h] set; a nil mask keeps
// every half-edge. From Dest(h) it turns clockwise from the twin of h to the
// first live half-edge, falling back to the twin itself (a U-turn). The twin
// of h must be live.
func (g *Graph) NextLive(h int, live []bool) int {
	t := g.edges[h].Twin
	out := g.outgoing[g.edges[h].Dest]
	n := len(out)
	for k := 1; k < n; k++ {
		c := out[(g.slot[t]-k+n)%n]
		if live == nil || live[c] {
			return c
		}
	}

	return t
}

// Overlaps returns, ascending, the segments that run along another segment
// from a shared vertex without ending at the same vertex. Such a pair is not
// a planar subdivision: a vertex of one lies on the other.
func (g *Graph) Overlaps() []int {
	out := make([]int, len(g.overlaps))
	copy(out, g.overlaps)

	return out
}

// Components returns the connected components of the network as sorted
// vertex-id lists, ordered by their smallest vertex. Isolated vertices (left
// behind by degenerate segments) are not reported.
func (g *Graph) Components() [][]int {
	seen := make([]bool, len(g.vertices))
	var comps [][]int

	for v0 := range g.vertices {
		if seen[v0] || len(g.outgoing[v0]) == 0 {
			continue
		}
		// BFS to collect component
		queue := []int{v0}
		seen[v0] = true
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			for _, h := range g.outgoing[u] {
				w := g.edges[h].Dest
				if !seen[w] {
					seen[w] = true
					queue = append(queue, w)
				}
			}
		}
		sort.Ints(queue)
		comps = append(comps, queue)
	}

	return comps
}
