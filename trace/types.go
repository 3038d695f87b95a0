// Package trace extracts closed face boundaries (candidate block polygons)
// from a half-edge graph.
//
// What:
//
//   - Segments that overlap another one (halfedge.Graph.Overlaps) are set
//     aside as unresolved; they do not bound a planar face.
//   - Dangling ends are pruned next: a vertex left with a single incident
//     segment cannot bound a face, so that segment's half-edges are marked
//     unresolved and its other endpoint is re-examined (a whole dangling
//     chain disappears, one segment at a time).
//   - The remaining half-edges are walked with the "always turn the same
//     way" rule: arriving at a vertex, continue with the live outgoing edge
//     immediately clockwise of the reverse direction. The face on the left of
//     every walked edge is the same face, so each walk is one polygon.
//   - Walks start at the lowest unvisited half-edge, making polygon order a
//     pure function of the input order.
//   - Each polygon carries an unwrapped lon/lat ring (continuous across the
//     0/360 meridian, closed through a pole when the face contains one).
//
// Unresolved half-edges are a diagnostic, never a failure: the rest of the
// network is still traced and the caller decides what to do with the list.
//
// Complexity:
//
//   - Time:   O(V + E·d) after the half-edge graph is built, d the
//     maximum vertex degree.
//   - Memory: O(V + E).
//
// Errors:
//
//	ErrNilGraph        - Trace received a nil graph.
//	ErrOptionViolation - an invalid Option was supplied.
package trace

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Sentinel errors for polygon tracing.
var (
	// ErrNilGraph indicates Trace was called with a nil graph.
	ErrNilGraph = errors.New("trace: graph is nil")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("trace: invalid option supplied")
)

// None marks a half-edge that belongs to no polygon.
const None = -1

// Polygon is one traced closed loop.
//
// Vertices[i] is the origin of HalfEdges[i]; the destination of the last
// half-edge is Vertices[0]. Segments[i] is the input segment of HalfEdges[i].
type Polygon struct {
	Vertices  []int
	HalfEdges []int
	Segments  []int

	// Ring is the closed planar ring in unwrapped degrees (X = lon, Y = lat).
	Ring orb.Ring
}

// Len returns the number of edges of the polygon.
func (p *Polygon) Len() int { return len(p.HalfEdges) }

// Result is the outcome of Trace.
type Result struct {
	// Polygons in discovery order.
	Polygons []Polygon

	// EdgePolygon maps every half-edge to its polygon index, or None.
	EdgePolygon []int

	// Unresolved lists, ascending, the half-edges left out of every polygon.
	Unresolved []int

	// UnresolvedSegments lists, ascending and unique, the input segments
	// owning an unresolved half-edge.
	UnresolvedSegments []int

	// Overlaps lists, ascending, the segments set aside because they overlap
	// another segment.
	Overlaps []int

	// Pruned counts half-edges removed as dangling ends.
	Pruned int
}

// Option configures Trace.
type Option func(*Options)

// Options holds tracing parameters and hooks.
type Options struct {
	// MaxSteps bounds the length of a single walk; 0 means "number of live
	// half-edges", which no valid walk can exceed.
	MaxSteps int

	// OnPolygon is called once for each polygon, in discovery order.
	OnPolygon func(idx int, p *Polygon)

	// OnUnresolved is called for each walk abandoned without closing, with
	// the half-edges it had visited.
	OnUnresolved func(halfEdges []int)

	err error
}

// DefaultOptions returns Options with no step cap and no-op hooks.
func DefaultOptions() Options {
	return Options{
		MaxSteps:     0,
		OnPolygon:    func(int, *Polygon) {},
		OnUnresolved: func([]int) {},
	}
}

// WithMaxSteps caps the length of a single walk.
//
//	n > 0:  cap at n half-edges
//	n == 0: explicit default (live half-edge count)
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithOnPolygon registers a callback run for every traced polygon.
func WithOnPolygon(fn func(idx int, p *Polygon)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPolygon = fn
		}
	}
}

// WithOnUnresolved registers a callback run for every abandoned walk.
func WithOnUnresolved(fn func(halfEdges []int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnUnresolved = fn
		}
	}
}
