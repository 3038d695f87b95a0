package locate

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/peterstace/simplefeatures/rtree"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/faultclosure/lonlat"
)

// Locator is an immutable point-in-block index. It is safe for concurrent use.
type Locator struct {
	polys  []orb.Polygon
	labels []int
	tree   *rtree.RTree
	opts   Options
}

// New indexes polys, where polys[i] is block labels[i]: its outer ring
// followed by the rings of the islands it surrounds.
//
// Complexity: O(n log n) for n polygons.
func New(polys []orb.Polygon, labels []int, opts ...Option) (*Locator, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if len(polys) != len(labels) {
		return nil, fmt.Errorf("%w: %d polygons, %d labels", ErrMismatch, len(polys), len(labels))
	}

	items := make([]rtree.BulkItem, 0, len(polys))
	for i, p := range polys {
		if labels[i] < 0 {
			return nil, fmt.Errorf("%w: polygon %d has label %d", ErrBadLabel, i, labels[i])
		}
		if len(p) == 0 || len(p[0]) == 0 {
			continue
		}
		b := p[0].Bound()
		items = append(items, rtree.BulkItem{
			Box:      rtree.Box{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]},
			RecordID: i,
		})
	}

	return &Locator{polys: polys, labels: labels, tree: rtree.BulkLoad(items), opts: o}, nil
}

// Fallback returns the label given to points inside no block.
func (l *Locator) Fallback() int { return l.opts.Fallback }

// Locate returns the label of the block containing p, or the fallback label.
func (l *Locator) Locate(p lonlat.Point) int {
	if !lonlat.Finite(p) {
		return l.opts.Fallback
	}

	best := -1
	lon := lonlat.Wrap360(p.Lon)
	for _, x := range [...]float64{lon, lon + 360, lon - 360} {
		q := orb.Point{x, p.Lat}
		box := rtree.Box{MinX: x, MinY: p.Lat, MaxX: x, MaxY: p.Lat}
		_ = l.tree.RangeSearch(box, func(id int) error {
			lbl := l.labels[id]
			if best != -1 && lbl >= best {
				return nil
			}
			if planar.PolygonContains(l.polys[id], q) {
				best = lbl
			}
			return nil
		})
	}
	if best == -1 {
		return l.opts.Fallback
	}

	return best
}

// LocateAll locates every point of pts. Chunks of points run concurrently,
// at most Workers at a time. The only error is ctx's.
func (l *Locator) LocateAll(ctx context.Context, pts []lonlat.Point) ([]int, error) {
	out := make([]int, len(pts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Workers)

	for start := 0; start < len(pts); start += l.opts.ChunkSize {
		start, end := start, min(start+l.opts.ChunkSize, len(pts))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				out[i] = l.Locate(pts[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("locate: LocateAll: %w", err)
	}

	return out, nil
}
