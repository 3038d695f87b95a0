package trace

import (
	"sort"

	"github.com/katalvlaran/faultclosure/halfedge"
	"github.com/katalvlaran/faultclosure/lonlat"
)

// Trace walks every face of g and returns the closed polygons together with
// the half-edges that could not be closed.
func Trace(g *halfedge.Graph, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if g == nil {
		return nil, ErrNilGraph
	}

	ne := g.NumEdges()
	res := &Result{EdgePolygon: make([]int, ne)}
	for h := range res.EdgePolygon {
		res.EdgePolygon[h] = None
	}

	// 1) Set overlapping segments aside, then remove dangling chains.
	live := make([]bool, ne)
	for h := range live {
		live[h] = true
	}
	res.Overlaps = g.Overlaps()
	overlap := make(map[int]struct{}, len(res.Overlaps))
	for _, s := range res.Overlaps {
		overlap[s] = struct{}{}
	}
	for h := range live {
		if _, ok := overlap[g.Edge(h).Segment]; ok {
			live[h] = false
		}
	}
	res.Pruned = prune(g, live)

	// 2) Walks never exceed the live half-edge count.
	maxSteps := o.MaxSteps
	if maxSteps == 0 {
		for _, ok := range live {
			if ok {
				maxSteps++
			}
		}
	}

	// 3) Walk faces from the lowest unvisited live half-edge.
	visited := make([]bool, ne)
	for h0 := 0; h0 < ne; h0++ {
		if !live[h0] || visited[h0] {
			continue
		}

		walk, closed := walkFace(g, live, h0, visited, maxSteps)
		if !closed {
			o.OnUnresolved(walk)
			continue
		}

		p, ok := newPolygon(g, walk)
		if !ok {
			o.OnUnresolved(walk)
			continue
		}
		idx := len(res.Polygons)
		for _, h := range walk {
			res.EdgePolygon[h] = idx
		}
		res.Polygons = append(res.Polygons, p)
		o.OnPolygon(idx, &res.Polygons[idx])
	}

	// 4) Collect diagnostics.
	seen := make(map[int]struct{})
	for h, pi := range res.EdgePolygon {
		if pi != None {
			continue
		}
		res.Unresolved = append(res.Unresolved, h)
		s := g.Edge(h).Segment
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			res.UnresolvedSegments = append(res.UnresolvedSegments, s)
		}
	}
	sort.Ints(res.UnresolvedSegments)

	return res, nil
}

// prune repeatedly deletes the single remaining segment at degree-1
// vertices and returns the number of half-edges removed.
func prune(g *halfedge.Graph, live []bool) int {
	deg := make([]int, g.NumVertices())
	var queue []int
	for v := range deg {
		for _, h := range g.Outgoing(v) {
			if live[h] {
				deg[v]++
			}
		}
		if deg[v] == 1 {
			queue = append(queue, v)
		}
	}

	removed := 0
	for qi := 0; qi < len(queue); qi++ {
		v := queue[qi]
		if deg[v] != 1 {
			continue
		}
		for _, h := range g.Outgoing(v) {
			if !live[h] {
				continue
			}
			live[h], live[g.Twin(h)] = false, false
			removed += 2
			w := g.Edge(h).Dest
			deg[v]--
			deg[w]--
			if deg[w] == 1 {
				queue = append(queue, w)
			}
			break
		}
	}

	return removed
}

// walkFace follows Graph.NextLive from h0, marking edges visited. It reports
// false when the walk hits an already consumed edge or exceeds maxSteps
// before returning.
func walkFace(g *halfedge.Graph, live []bool, h0 int, visited []bool, maxSteps int) ([]int, bool) {
	var path []int
	h := h0
	for {
		if visited[h] || len(path) >= maxSteps {
			return path, false
		}
		visited[h] = true
		path = append(path, h)

		h = g.NextLive(h, live)
		if h == h0 {
			return path, true
		}
	}
}

func newPolygon(g *halfedge.Graph, walk []int) (Polygon, bool) {
	p := Polygon{
		Vertices:  make([]int, len(walk)),
		HalfEdges: walk,
		Segments:  make([]int, len(walk)),
	}
	pts := make([]lonlat.Point, len(walk))
	for i, h := range walk {
		e := g.Edge(h)
		p.Vertices[i] = e.Origin
		p.Segments[i] = e.Segment
		pts[i] = g.Point(e.Origin)
	}

	ring, err := lonlat.Ring(pts)
	if err != nil {
		return Polygon{}, false
	}
	p.Ring = ring

	return p, true
}
