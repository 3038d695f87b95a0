// Package halfedge builds the directed half-edge graph of a matched fault
// network.
//
// What:
//
//   - Each valid segment k (in input order among valid segments) yields the
//     half-edges 2k (endpoint 1 → endpoint 2, Forward) and 2k+1 (reverse).
//     They are twins: Twin(h) == h^1.
//   - Half-edges live in an arena ([]HalfEdge) and refer to each other by
//     index only; there are no pointers between records.
//   - Every vertex caches its outgoing half-edges sorted counter-clockwise by
//     planar bearing, and every half-edge caches its slot in that list, so
//     Next is O(1). Legs sharing a bearing are ordered shortest first.
//     Duplicate segments are ordered by segment index, ascending at the
//     lower-id vertex and descending at the higher one, which keeps them
//     from crossing each other.
//   - Legs sharing a bearing but ending at different vertices overlap: a
//     vertex of one lies on the other. Overlaps reports their segments so
//     later stages can leave them unresolved.
//   - Parallel segments joining the same two vertices stay distinct
//     half-edge pairs; multiplicity is never collapsed.
//
// Next follows the "face on the left" rule: arriving at v along h, the
// continuation is the outgoing edge immediately clockwise of Twin(h).
// NextLive applies the same rule to a subset of the half-edges.
//
// Complexity:
//
//   - Build: O(E log d) for E half-edges and maximum vertex degree d.
//   - Next, Twin, Degree: O(1). NextLive: O(d). Components: O(V + E).
//
// Errors:
//
//	ErrNilTable  - Build received a nil table.
//	ErrBadVertex - a segment refers to a vertex id outside the table.
package halfedge

import "errors"

// Sentinel errors for graph construction.
var (
	// ErrNilTable indicates Build was called with a nil matcher.Table.
	ErrNilTable = errors.New("halfedge: table is nil")

	// ErrBadVertex indicates a segment refers to a vertex id the table lacks.
	ErrBadVertex = errors.New("halfedge: segment references unknown vertex")
)

// None is the null half-edge / vertex index.
const None = -1

// HalfEdge is one directed traversal of an input segment.
type HalfEdge struct {
	// Origin and Dest are vertex ids.
	Origin int
	Dest   int

	// Segment is the index of the input segment this half-edge came from.
	Segment int

	// Twin is the oppositely directed half-edge of the same segment.
	Twin int

	// Forward is true when Origin is the segment's first endpoint.
	Forward bool
}
