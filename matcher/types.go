// Package matcher deduplicates fault-segment endpoints into unique vertices.
//
// What:
//
//   - Every endpoint is normalized to the [0, 360) longitude convention, so
//     inputs mixing (-180, 180] and [0, 360) agree.
//   - Two endpoints closer than the tolerance (planar degrees, periodic in
//     longitude) share one vertex id. The first vertex created wins: its
//     coordinates are never moved by later merges.
//   - A segment whose two endpoints land on the same vertex is degenerate; it
//     is listed in Table.Degenerate and kept out of graph construction.
//
// Candidate vertices are found with an R-tree over the vertex positions, so
// matching is O(n log n) instead of the quadratic all-pairs comparison.
//
// Errors:
//
//	ErrNoSegments      - the segment list is empty.
//	ErrNonFinite       - an endpoint has a NaN or infinite coordinate.
//	ErrBadLatitude     - an endpoint latitude lies outside [-90, 90].
//	ErrOptionViolation - an invalid Option was supplied.
package matcher

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/faultclosure/lonlat"
)

// Sentinel errors for endpoint matching.
var (
	// ErrNoSegments is returned when Match receives no segments.
	ErrNoSegments = errors.New("matcher: no segments")

	// ErrNonFinite is returned for NaN or infinite coordinates.
	ErrNonFinite = errors.New("matcher: non-finite coordinate")

	// ErrBadLatitude is returned for latitudes outside [-90, 90].
	ErrBadLatitude = errors.New("matcher: latitude out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("matcher: invalid option supplied")
)

// DefaultTolerance is the default merge distance in degrees.
// It is far below any mapped fault feature and well above float64 noise on
// coordinates that went through a text round trip.
const DefaultTolerance = 1e-6

// Unmatched marks the vertex ids of a degenerate segment.
const Unmatched = -1

// Segment is one input fault trace.
type Segment struct {
	P1 lonlat.Point
	P2 lonlat.Point
}

// Edge is a matched segment: the vertex ids of its two endpoints, in input
// order. Degenerate segments hold Unmatched in both fields.
type Edge struct {
	V1 int
	V2 int
}

// Table is the result of Match.
type Table struct {
	// Vertices holds the unique endpoints, longitude in [0, 360).
	Vertices []lonlat.Point

	// Edges has one entry per input segment, index-aligned with the input.
	Edges []Edge

	// Degenerate lists, in increasing order, the input indices of
	// zero-length segments.
	Degenerate []int

	// Tolerance is the merge distance the table was built with.
	Tolerance float64
}

// Valid reports whether segment i took part in matching as a proper edge.
func (t *Table) Valid(i int) bool {
	if i < 0 || i >= len(t.Edges) {
		return false
	}

	return t.Edges[i].V1 != Unmatched
}

// Option configures Match.
type Option func(*Options)

// Options holds matcher parameters.
type Options struct {
	// Tolerance is the merge distance in degrees. Zero requests exact
	// coordinate equality after normalization.
	Tolerance float64

	err error
}

// DefaultOptions returns Options with Tolerance = DefaultTolerance.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// WithTolerance sets the merge distance in degrees.
//
//	tol >= 0 and finite: accepted
//	otherwise:           ErrOptionViolation
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: tolerance must be finite and non-negative (%v)", ErrOptionViolation, tol)
			return
		}
		o.Tolerance = tol
	}
}
