package closure

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/katalvlaran/faultclosure/area"
	"github.com/katalvlaran/faultclosure/lonlat"
)

// NumBlocks returns the number of block labels.
func (r *Result) NumBlocks() int { return len(r.Blocks) }

// Locate returns the block label of p, or the fallback label when p lies in
// no block.
func (r *Result) Locate(p lonlat.Point) int { return r.locator.Locate(p) }

// AssignPoints returns the block label of every point (stations, SAR
// pixels, Mogi sources). Points in no block get label.Unresolved, or the
// exterior label with WithExteriorBlock.
func (r *Result) AssignPoints(ctx context.Context, pts []lonlat.Point) ([]int, error) {
	labels, err := r.locator.LocateAll(ctx, pts)
	if err != nil {
		return nil, fmt.Errorf("closure: AssignPoints: %w", err)
	}
	if miss := countMisses(labels, r.locator.Fallback()); miss > 0 {
		r.log.Debug("points outside every block",
			zap.Int("count", miss),
			zap.Int("points", len(pts)))
	}

	return labels, nil
}

// MatchMarkers pairs every block with the one marker inside it and returns,
// per block label, the index of that marker in markers. Each block must
// hold exactly one marker and each marker must fall in a block; otherwise
// ErrMarkerMismatch names the first offender.
func (r *Result) MatchMarkers(ctx context.Context, markers []lonlat.Point) ([]int, error) {
	labels, err := r.locator.LocateAll(ctx, markers)
	if err != nil {
		return nil, fmt.Errorf("closure: MatchMarkers: %w", err)
	}

	owner := make([]int, r.NumBlocks())
	for b := range owner {
		owner[b] = -1
	}
	for i, b := range labels {
		if b < 0 || b >= len(owner) {
			return nil, fmt.Errorf("%w: marker %d lies in no block", ErrMarkerMismatch, i)
		}
		if owner[b] != -1 {
			return nil, fmt.Errorf("%w: block %d holds markers %d and %d", ErrMarkerMismatch, b, owner[b], i)
		}
		owner[b] = i
	}
	for b, m := range owner {
		if m == -1 {
			return nil, fmt.Errorf("%w: block %d holds no marker", ErrMarkerMismatch, b)
		}
	}

	return owner, nil
}

// BlockCentroid estimates the center of block b as the mean of the
// endpoints of its bordering segments, each weighted by the great-circle
// length of its segment. Longitudes are averaged around the first endpoint,
// so blocks straddling 0/360 come out right.
func (r *Result) BlockCentroid(b int) (lonlat.Point, error) {
	if err := r.checkBlock(b); err != nil {
		return lonlat.Point{}, err
	}

	var (
		ref                float64
		first              = true
		sumW, sumLon       float64
		sumLat             float64
		plainLon, plainLat float64
		nEndpoints         int
	)
	for i, p := range r.Labels {
		if p.West != b && p.East != b {
			continue
		}
		s := r.segments[i]
		if first {
			ref, first = lonlat.Wrap360(s.P1.Lon), false
		}
		w := lonlat.LengthKm(s.P1, s.P2)
		for _, e := range [2]lonlat.Point{s.P1, s.P2} {
			lon := lonlat.Near(e.Lon, ref)
			sumLon += w * lon
			sumLat += w * e.Lat
			plainLon += lon
			plainLat += e.Lat
			nEndpoints++
		}
		sumW += 2 * w
	}
	if nEndpoints == 0 {
		// Only a kept exterior with no bordering segment can get here.
		c := area.Centroid(r.Polygons[r.Blocks[b]].Ring)
		return lonlat.Point{Lon: lonlat.Wrap360(c[0]), Lat: c[1]}, nil
	}
	if sumW == 0 {
		return lonlat.Point{Lon: lonlat.Wrap360(plainLon / float64(nEndpoints)), Lat: plainLat / float64(nEndpoints)}, nil
	}

	return lonlat.Point{Lon: lonlat.Wrap360(sumLon / sumW), Lat: sumLat / sumW}, nil
}

// BlockArea returns the plate-carrée area of block b in square degrees,
// islands inside it excluded.
func (r *Result) BlockArea(b int) (float64, error) {
	if err := r.checkBlock(b); err != nil {
		return 0, err
	}

	return r.blockArea(b), nil
}

// BlockShape returns block b as a polygon: its outer ring followed by the
// rings of the islands it surrounds, in unwrapped degrees.
func (r *Result) BlockShape(b int) (orb.Polygon, error) {
	if err := r.checkBlock(b); err != nil {
		return nil, err
	}

	return r.shape(b), nil
}

// BlockRing returns the closed ring of block b in unwrapped degrees.
func (r *Result) BlockRing(b int) (orb.Ring, error) {
	if err := r.checkBlock(b); err != nil {
		return nil, err
	}

	return r.Polygons[r.Blocks[b]].Ring, nil
}

// UnresolvedPoints returns the midpoint of every unresolved segment, in the
// order of Result.Unresolved, for pointing users at the gaps.
func (r *Result) UnresolvedPoints() []lonlat.Point {
	pts := make([]lonlat.Point, len(r.Unresolved))
	for k, i := range r.Unresolved {
		s := r.segments[i]
		pts[k] = lonlat.Midpoint(s.P1, s.P2)
	}

	return pts
}

// FeatureCollection returns the blocks as GeoJSON polygons with their
// islands as holes, in label order, each carrying "label", "area" and "kind"
// properties.
func (r *Result) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for b, pi := range r.Blocks {
		f := geojson.NewFeature(r.shape(b))
		f.Properties["label"] = b
		f.Properties["area"] = r.blockArea(b)
		f.Properties["kind"] = r.Polygons[pi].Kind.String()
		fc.Append(f)
	}

	return fc
}

// Diagnostics returns the counts of r.
func (r *Result) Diagnostics() Diagnostics {
	var islands, slivers int
	for _, p := range r.Polygons {
		if p.Parent >= 0 {
			islands++
		}
		if p.Kind == area.Sliver {
			slivers++
		}
	}

	return Diagnostics{
		Segments:   len(r.Labels),
		Vertices:   len(r.Vertices),
		Polygons:   len(r.Polygons),
		Blocks:     len(r.Blocks),
		Degenerate: len(r.Degenerate),
		Unresolved: len(r.Unresolved),
		Pruned:     r.pruned,
		Components: len(r.Components),
		Islands:    islands,
		Slivers:    slivers,
		Overlaps:   len(r.Overlaps),
	}
}

func (r *Result) shape(b int) orb.Polygon {
	p := r.Polygons[r.Blocks[b]]

	return append(orb.Polygon{p.Ring}, p.Holes...)
}

func (r *Result) blockArea(b int) float64 {
	p := r.Polygons[r.Blocks[b]]
	a := area.Abs(p.Ring)
	for _, h := range p.Holes {
		a -= area.Abs(h)
	}

	return a
}

func (r *Result) checkBlock(b int) error {
	if b < 0 || b >= len(r.Blocks) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrBadBlock, b, len(r.Blocks))
	}

	return nil
}

func countMisses(labels []int, fallback int) int {
	n := 0
	for _, l := range labels {
		if l == fallback {
			n++
		}
	}

	return n
}
