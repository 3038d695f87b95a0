// Package label turns traced polygons into block labels and gives every
// input segment its (west, east) block pair.
//
// What:
//
//   - Every interior polygon becomes one block. Labels are 0..n-1 in the
//     chosen Order: polygon discovery order (default) or by centroid
//     longitude, then latitude.
//   - Each half-edge has its face on the left. The west block of a segment is
//     the face left of the direction endpoint 1 → endpoint 2 (the forward
//     half-edge); the east block is the face left of the reverse half-edge.
//     Swapping a segment's endpoints therefore swaps its labels.
//   - A side facing the unbounded region gets the Exterior sentinel, unless
//     WithExteriorBlock keeps the exterior as an ordinary block with the
//     last label.
//   - The outer side of an island gets the label of the block around it.
//   - Slivers, the zero-width faces between duplicate segments, are not
//     blocks. A side facing one gets the label of the face beyond it, so
//     duplicates carry the same labels as the segment they repeat.
//   - A side whose half-edge was never traced (dangling end, gap, degenerate
//     segment) gets the Unresolved sentinel. Such segments are listed in
//     Labels.Unresolved so callers can refuse to use them.
//
// Errors:
//
//	ErrNilInput        - a required input is nil.
//	ErrMismatch        - inputs disagree in size.
//	ErrOptionViolation - an invalid Option was supplied.
package label

import (
	"errors"
	"fmt"
)

// Sentinel errors for labeling.
var (
	// ErrNilInput indicates a nil trace result, classification or graph.
	ErrNilInput = errors.New("label: nil input")

	// ErrMismatch indicates inputs that do not describe the same network.
	ErrMismatch = errors.New("label: inputs do not match")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("label: invalid option supplied")
)

// Sentinel labels. Valid block labels are non-negative.
const (
	// Unresolved marks a segment side, or a query point, with no block.
	Unresolved = -1

	// Exterior marks a segment side facing the unbounded exterior face.
	Exterior = -2
)

// Order selects how interior polygons are numbered.
type Order int

const (
	// OrderDiscovery numbers blocks in polygon discovery order.
	OrderDiscovery Order = iota

	// OrderCentroid numbers blocks by increasing centroid longitude in
	// [0, 360), then latitude, then discovery order.
	OrderCentroid
)

// Pair is the (west, east) block labels of one segment.
type Pair struct {
	West int
	East int
}

// Resolved reports whether neither side is Unresolved.
func (p Pair) Resolved() bool {
	return p.West != Unresolved && p.East != Unresolved
}

// Swap returns the pair seen from the reversed segment.
func (p Pair) Swap() Pair {
	return Pair{West: p.East, East: p.West}
}

// Labels is the result of Assign.
type Labels struct {
	// Pairs has one entry per input segment.
	Pairs []Pair

	// BlockPolygon maps a block label to its polygon index.
	BlockPolygon []int

	// PolygonBlock maps a polygon index to its block label: for an island,
	// the label of the face around it; Exterior for the unbounded face;
	// Unresolved for a sliver.
	PolygonBlock []int

	// ExteriorLabel is the exterior's block label when it is kept as a
	// block, Exterior otherwise.
	ExteriorLabel int

	// Unresolved lists, ascending, segments with an Unresolved side.
	Unresolved []int
}

// NumBlocks returns the number of block labels in use.
func (l *Labels) NumBlocks() int { return len(l.BlockPolygon) }

// Option configures Assign.
type Option func(*Options)

// Options holds labeling parameters.
type Options struct {
	// Order selects the block numbering.
	Order Order

	// ExteriorBlock keeps the exterior face as the last block.
	ExteriorBlock bool

	err error
}

// DefaultOptions returns Options numbering blocks in discovery order with the
// exterior left out.
func DefaultOptions() Options {
	return Options{Order: OrderDiscovery}
}

// WithOrder selects the block numbering.
func WithOrder(order Order) Option {
	return func(o *Options) {
		switch order {
		case OrderDiscovery, OrderCentroid:
			o.Order = order
		default:
			o.err = fmt.Errorf("%w: unknown block order %d", ErrOptionViolation, order)
		}
	}
}

// WithExteriorBlock keeps the exterior face as an ordinary block whose label
// follows every interior block.
func WithExteriorBlock() Option {
	return func(o *Options) { o.ExteriorBlock = true }
}
