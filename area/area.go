// Package area computes planar (plate-carrée) polygon areas and decides which
// traced polygon is the unbounded exterior face.
//
// Rings are unwrapped lon/lat degrees, so areas are in square degrees; they
// are only compared with each other, never converted to physical units.
//
// Exterior rule:
//
//   - A ring with |area| at most the sliver tolerance is a Sliver: the
//     zero-width face between duplicate segments. It is never a block and
//     never the exterior (unless every ring is a sliver).
//   - Interior faces are traced counter-clockwise (positive signed area).
//     Every clockwise ring is the outer boundary of a connected piece of the
//     network and is Outer. An Outer ring lying inside a counter-clockwise
//     face of another piece is an island: its Parent is the smallest such
//     face, and it faces that face rather than the unbounded region.
//   - Among the Outer rings with no parent, the one with the largest |area|
//     is the Exterior; ties go to the lowest index, since they all border
//     the same unbounded region.
//   - When every clockwise ring has a parent (a network that wraps the
//     globe, every face closed through a pole), there is no unbounded face;
//     the counter-clockwise ring with the largest |area| is designated
//     Exterior instead. Two rings tying for that role is an error
//     (ErrExteriorTie): the choice would be arbitrary.
package area

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Sentinel errors for exterior detection.
var (
	// ErrNoPolygons indicates Classify received no rings.
	ErrNoPolygons = errors.New("area: no polygons to classify")

	// ErrExteriorTie indicates two rings tie for the largest area with no
	// orientation to break the tie.
	ErrExteriorTie = errors.New("area: exterior polygon is ambiguous (largest areas tie)")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("area: invalid option supplied")
)

const (
	// DefaultTieTolerance is the relative difference under which two areas tie.
	DefaultTieTolerance = 1e-9

	// DefaultSliverTolerance is the |area|, in square degrees, at or below
	// which a ring is a Sliver.
	DefaultSliverTolerance = 1e-12
)

// Kind classifies a traced polygon.
type Kind int

const (
	// Interior is a bounded face: one block.
	Interior Kind = iota
	// Exterior is the designated unbounded face.
	Exterior
	// Outer is the outer boundary of an additional disconnected piece of the
	// network. It faces its Parent, or the unbounded region when it has none.
	Outer
	// Sliver is a zero-area face between duplicate segments.
	Sliver
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case Interior:
		return "interior"
	case Exterior:
		return "exterior"
	case Outer:
		return "outer"
	case Sliver:
		return "sliver"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Signed returns the shoelace area of a closed ring: positive when
// counter-clockwise, negative when clockwise.
func Signed(r orb.Ring) float64 {
	return float64(r.Orientation()) * Abs(r)
}

// Abs returns the unsigned area of a closed ring. It does not depend on the
// starting vertex or on the traversal direction.
func Abs(r orb.Ring) float64 {
	if len(r) < 4 {
		return 0
	}

	return math.Abs(planar.Area(r))
}

// Centroid returns the area centroid of a closed ring.
func Centroid(r orb.Ring) orb.Point {
	c, _ := planar.CentroidArea(orb.Polygon{r})

	return c
}

// Classification is the result of Classify, index-aligned with its input.
type Classification struct {
	// Areas holds the signed area of every ring.
	Areas []float64

	// Kinds holds the classification of every ring.
	Kinds []Kind

	// Exterior is the index of the designated exterior ring.
	Exterior int

	// Parent holds, for an island's Outer ring, the index of the
	// counter-clockwise ring surrounding it; -1 everywhere else.
	Parent []int

	// Shift is the longitude offset carrying an island's ring into the
	// unwrapped frame of its parent; 0 everywhere else.
	Shift []float64
}

// Interior returns the indices of the interior rings, ascending.
func (c *Classification) Interior() []int {
	var idx []int
	for i, k := range c.Kinds {
		if k == Interior {
			idx = append(idx, i)
		}
	}

	return idx
}

// Holes returns, ascending, the islands whose parent is ring i.
func (c *Classification) Holes(i int) []int {
	var idx []int
	for j, p := range c.Parent {
		if p == i {
			idx = append(idx, j)
		}
	}

	return idx
}

// Slivers returns the indices of the sliver rings, ascending.
func (c *Classification) Slivers() []int {
	var idx []int
	for i, k := range c.Kinds {
		if k == Sliver {
			idx = append(idx, i)
		}
	}

	return idx
}

// Polygon returns ring i followed by the rings of its islands, shifted into
// the frame of ring i. rings must be the slice given to Classify.
func (c *Classification) Polygon(rings []orb.Ring, i int) orb.Polygon {
	poly := orb.Polygon{rings[i]}
	for _, h := range c.Holes(i) {
		hole := make(orb.Ring, len(rings[h]))
		for k, pt := range rings[h] {
			hole[k] = orb.Point{pt[0] + c.Shift[h], pt[1]}
		}
		poly = append(poly, hole)
	}

	return poly
}

// Option configures Classify.
type Option func(*Options)

// Options holds exterior-detection parameters.
type Options struct {
	// TieTolerance is the relative area difference treated as a tie.
	TieTolerance float64

	// SliverTolerance is the |area| at or below which a ring is a Sliver.
	SliverTolerance float64

	err error
}

// DefaultOptions returns Options with the default tie and sliver tolerances.
func DefaultOptions() Options {
	return Options{
		TieTolerance:    DefaultTieTolerance,
		SliverTolerance: DefaultSliverTolerance,
	}
}

// WithTieTolerance sets the relative tie tolerance; it must be in [0, 1).
func WithTieTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || tol >= 1 || math.IsNaN(tol) {
			o.err = fmt.Errorf("%w: tie tolerance must be in [0, 1) (%v)", ErrOptionViolation, tol)
			return
		}
		o.TieTolerance = tol
	}
}

// WithSliverTolerance sets the sliver area threshold in square degrees; it
// must be finite and non-negative.
func WithSliverTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || math.IsNaN(tol) || math.IsInf(tol, 0) {
			o.err = fmt.Errorf("%w: sliver tolerance must be finite and >= 0 (%v)", ErrOptionViolation, tol)
			return
		}
		o.SliverTolerance = tol
	}
}

// Classify computes every ring's signed area, finds slivers and islands and
// designates exactly one Exterior ring.
//
// Steps:
//  1. Signed areas; slivers, clockwise and counter-clockwise rings apart.
//  2. Give every clockwise ring inside a counter-clockwise face a parent.
//  3. The largest clockwise ring without a parent is the Exterior.
//  4. Failing that, the largest counter-clockwise ring is, and must win
//     clearly.
//
// Complexity: O(C · A · L) for C clockwise rings, A counter-clockwise rings
// and ring length L; islands are rare, so C is usually 1.
func Classify(rings []orb.Ring, opts ...Option) (*Classification, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(rings) == 0 {
		return nil, ErrNoPolygons
	}

	c := &Classification{
		Areas:  make([]float64, len(rings)),
		Kinds:  make([]Kind, len(rings)),
		Parent: make([]int, len(rings)),
		Shift:  make([]float64, len(rings)),
	}

	// 1) Areas and orientation.
	var clockwise, counter []int
	for i, r := range rings {
		c.Areas[i] = Signed(r)
		c.Parent[i] = -1
		switch {
		case math.Abs(c.Areas[i]) <= o.SliverTolerance:
			c.Kinds[i] = Sliver
		case c.Areas[i] < 0:
			c.Kinds[i] = Outer
			clockwise = append(clockwise, i)
		default:
			counter = append(counter, i)
		}
	}
	if len(clockwise)+len(counter) == 0 {
		c.Kinds[0] = Exterior
		return c, nil
	}

	// 2) Islands.
	var free []int
	for _, i := range clockwise {
		if p, shift := enclosing(rings, c.Areas, counter, i, o.TieTolerance); p != -1 {
			c.Parent[i], c.Shift[i] = p, shift
			continue
		}
		free = append(free, i)
	}

	// 3) Orientation decides whenever some ring faces the unbounded region.
	if len(free) > 0 {
		ext := free[0]
		for _, i := range free[1:] {
			if -c.Areas[i] > -c.Areas[ext] {
				ext = i
			}
		}
		c.Kinds[ext] = Exterior
		c.Exterior = ext

		return c, nil
	}

	// 4) Otherwise the largest ring wins, and must win clearly.
	ext, runnerUp := counter[0], -1
	for _, i := range counter[1:] {
		switch {
		case c.Areas[i] > c.Areas[ext]:
			ext, runnerUp = i, ext
		case runnerUp == -1 || c.Areas[i] > c.Areas[runnerUp]:
			runnerUp = i
		}
	}
	if runnerUp != -1 && tie(c.Areas[ext], c.Areas[runnerUp], o.TieTolerance) {
		return nil, fmt.Errorf("%w: polygons %d and %d (area %g)",
			ErrExteriorTie, ext, runnerUp, c.Areas[ext])
	}
	c.Kinds[ext] = Exterior
	c.Exterior = ext

	return c, nil
}

// enclosing returns the smallest counter-clockwise ring, strictly larger
// than clockwise ring i, that contains the first vertex of ring i at some
// longitude image, with the offset of that image; -1 when none does.
func enclosing(rings []orb.Ring, areas []float64, counter []int, i int, tol float64) (int, float64) {
	own := -areas[i]
	pt := rings[i][0]
	best, shift := -1, 0.0
	for _, j := range counter {
		if areas[j] <= own || tie(areas[j], own, tol) {
			continue
		}
		if best != -1 && areas[j] >= areas[best] {
			continue
		}
		b := rings[j].Bound()
		for _, s := range [...]float64{0, 360, -360} {
			q := orb.Point{pt[0] + s, pt[1]}
			if b.Contains(q) && planar.RingContains(rings[j], q) {
				best, shift = j, s
				break
			}
		}
	}

	return best, shift
}

func tie(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol*math.Max(math.Abs(a), math.Abs(b))
}
