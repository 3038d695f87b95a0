package matcher

import (
	"fmt"

	"github.com/peterstace/simplefeatures/rtree"

	"github.com/katalvlaran/faultclosure/lonlat"
)

// Match deduplicates the endpoints of segs into a vertex table.
//
// Steps:
//  1. Validate options and every coordinate (fail fast on malformed input).
//  2. Normalize every endpoint longitude and bulk-load the endpoints into an
//     R-tree. In endpoint order, look up earlier vertices within the
//     tolerance; reuse the lowest id, otherwise create one.
//  3. Flag segments whose endpoints share a vertex as degenerate.
//
// Complexity: O(n log n) expected for n segments.
func Match(segs []Segment, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(segs) == 0 {
		return nil, ErrNoSegments
	}

	// 1) Reject malformed coordinates before building anything.
	for i, s := range segs {
		if err := checkPoint(s.P1); err != nil {
			return nil, fmt.Errorf("matcher: segment %d endpoint 1: %w", i, err)
		}
		if err := checkPoint(s.P2); err != nil {
			return nil, fmt.Errorf("matcher: segment %d endpoint 2: %w", i, err)
		}
	}

	// 2) Index every endpoint at once, then merge them in endpoint order.
	pts := make([]lonlat.Point, 0, 2*len(segs))
	for _, s := range segs {
		pts = append(pts, s.P1.Normalized(), s.P2.Normalized())
	}
	idx := newVertexIndex(o.Tolerance, pts)
	t := &Table{
		Edges:     make([]Edge, len(segs)),
		Tolerance: o.Tolerance,
	}
	for i := range segs {
		v1 := idx.vertexOf[2*i]
		v2 := idx.vertexOf[2*i+1]

		// 3) Zero-length segment: keep its slot, but leave it unmatched.
		if v1 == v2 {
			t.Edges[i] = Edge{V1: Unmatched, V2: Unmatched}
			t.Degenerate = append(t.Degenerate, i)
			continue
		}
		t.Edges[i] = Edge{V1: v1, V2: v2}
	}
	t.Vertices = idx.vertices

	return t, nil
}

func checkPoint(p lonlat.Point) error {
	if !lonlat.Finite(p) {
		return ErrNonFinite
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w (%v)", ErrBadLatitude, p.Lat)
	}

	return nil
}

// vertexIndex assigns a vertex to every endpoint. Endpoint k joins the
// lowest vertex created by an earlier endpoint within tolerance, or founds a
// new vertex at its own position.
type vertexIndex struct {
	tol      float64
	tree     *rtree.RTree
	pts      []lonlat.Point
	vertexOf []int
	founder  []bool
	vertices []lonlat.Point
}

func newVertexIndex(tol float64, pts []lonlat.Point) *vertexIndex {
	items := make([]rtree.BulkItem, len(pts))
	for k, p := range pts {
		items[k] = rtree.BulkItem{
			Box:      rtree.Box{MinX: p.Lon, MinY: p.Lat, MaxX: p.Lon, MaxY: p.Lat},
			RecordID: k,
		}
	}
	vi := &vertexIndex{
		tol:      tol,
		tree:     rtree.BulkLoad(items),
		pts:      pts,
		vertexOf: make([]int, len(pts)),
		founder:  make([]bool, len(pts)),
	}
	for k := range pts {
		vi.vertexOf[k] = vi.merge(k)
	}

	return vi
}

// merge returns the vertex of endpoint k (longitude already in [0, 360)).
func (vi *vertexIndex) merge(k int) int {
	p := vi.pts[k]
	best := -1
	visit := func(j int) error {
		// Only earlier founders carry a vertex position.
		if j >= k || !vi.founder[j] {
			return nil
		}
		v := vi.vertexOf[j]
		if best != -1 && v > best {
			return nil
		}
		if lonlat.PlanarDistance(vi.pts[j], p) <= vi.tol {
			best = v
		}
		return nil
	}

	// Query the box around p, plus its images across the seam when the box
	// pokes out of [0, 360).
	for _, shift := range vi.shifts(p.Lon) {
		box := rtree.Box{
			MinX: p.Lon + shift - vi.tol,
			MinY: p.Lat - vi.tol,
			MaxX: p.Lon + shift + vi.tol,
			MaxY: p.Lat + vi.tol,
		}
		_ = vi.tree.RangeSearch(box, visit) // visit never fails
	}
	if best != -1 {
		return best
	}

	vi.founder[k] = true
	vi.vertices = append(vi.vertices, p)

	return len(vi.vertices) - 1
}

func (vi *vertexIndex) shifts(lon float64) []float64 {
	shifts := []float64{0}
	if lon-vi.tol < 0 {
		shifts = append(shifts, 360)
	}
	if lon+vi.tol >= 360 {
		shifts = append(shifts, -360)
	}

	return shifts
}
