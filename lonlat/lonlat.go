package lonlat

import (
	"errors"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean Earth radius used for great-circle lengths.
const EarthRadiusKm = 6371.0

// ErrWinding indicates a ring wraps around the globe more than once and has
// no planar representation.
var ErrWinding = errors.New("lonlat: ring winds around the globe more than once")

// Point is a (longitude, latitude) pair in degrees.
type Point struct {
	Lon float64
	Lat float64
}

// Normalized returns p with its longitude wrapped into [0, 360).
func (p Point) Normalized() Point {
	return Point{Lon: Wrap360(p.Lon), Lat: p.Lat}
}

// Orb converts p into an orb.Point (X = lon, Y = lat).
func (p Point) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// LatLng converts p into an s2.LatLng.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// Finite reports whether both coordinates are finite numbers.
func Finite(p Point) bool {
	return !math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0) &&
		!math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0)
}

// Wrap360 normalizes a longitude into [0, 360).
func Wrap360(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	// -tiny + 360 rounds up to exactly 360
	if lon >= 360 {
		lon -= 360
	}

	return lon
}

// Delta returns the periodic longitude difference to−from in (-180, 180].
func Delta(from, to float64) float64 {
	d := math.Mod(to-from, 360)
	if d > 180 {
		d -= 360
	} else if d <= -180 {
		d += 360
	}

	return d
}

// Near returns the representative of lon (modulo 360) closest to ref.
func Near(lon, ref float64) float64 {
	return ref + Delta(ref, lon)
}

// Sub returns the planar vector a−b in degrees, taking the short way around
// in longitude.
func Sub(a, b Point) r2.Point {
	return r2.Point{X: Delta(b.Lon, a.Lon), Y: a.Lat - b.Lat}
}

// Bearing returns the planar direction of the leg from→to in radians,
// measured counter-clockwise from east, in (-π, π].
func Bearing(from, to Point) float64 {
	v := Sub(to, from)

	return math.Atan2(v.Y, v.X)
}

// PlanarDistance is the Euclidean distance in degrees between a and b with
// periodic longitude.
func PlanarDistance(a, b Point) float64 {
	return Sub(a, b).Norm()
}

// UnwrapRing lays the vertex cycle pts out with continuous longitudes,
// starting at pts[0]. The returned ring ends with the image of pts[0] reached
// after walking the whole cycle, so it is closed when winding is zero.
// winding is the net number of eastward turns around the globe.
func UnwrapRing(pts []Point) (orb.Ring, int) {
	if len(pts) == 0 {
		return nil, 0
	}

	ring := make(orb.Ring, 0, len(pts)+4)
	lon := pts[0].Lon
	ring = append(ring, orb.Point{lon, pts[0].Lat})
	for i := 1; i < len(pts); i++ {
		lon += Delta(pts[i-1].Lon, pts[i].Lon)
		ring = append(ring, orb.Point{lon, pts[i].Lat})
	}
	lon += Delta(pts[len(pts)-1].Lon, pts[0].Lon)
	ring = append(ring, orb.Point{lon, pts[0].Lat})

	winding := int(math.Round((lon - pts[0].Lon) / 360))

	return ring, winding
}

// CloseRing closes an unwrapped ring whose walk circled the globe once.
// An eastward walk keeps the region to its left, so it is closed through the
// north pole; a westward walk is closed through the south pole.
// Rings with zero winding are returned unchanged.
func CloseRing(ring orb.Ring, winding int) (orb.Ring, error) {
	switch winding {
	case 0:
		return ring, nil
	case 1, -1:
	default:
		return nil, ErrWinding
	}
	if len(ring) == 0 {
		return ring, nil
	}

	pole := 90.0
	if winding < 0 {
		pole = -90.0
	}
	start, end := ring[0], ring[len(ring)-1]
	ring = append(ring,
		orb.Point{end[0], pole},
		orb.Point{start[0], pole},
		start,
	)

	return ring, nil
}

// Ring unwraps and, when needed, pole-closes the vertex cycle pts.
func Ring(pts []Point) (orb.Ring, error) {
	ring, winding := UnwrapRing(pts)

	return CloseRing(ring, winding)
}

// Distance returns the great-circle angle between a and b.
func Distance(a, b Point) s1.Angle {
	return a.LatLng().Distance(b.LatLng())
}

// LengthKm returns the great-circle distance between a and b in kilometres.
func LengthKm(a, b Point) float64 {
	return Distance(a, b).Radians() * EarthRadiusKm
}

// OrderWestFirst returns the endpoints with the western one first.
// a is western when the z component of a×b (unit vectors on the sphere) is
// non-negative; this works for both longitude conventions.
func OrderWestFirst(a, b Point) (Point, Point, bool) {
	pa := s2.PointFromLatLng(a.LatLng())
	pb := s2.PointFromLatLng(b.LatLng())
	if pa.Vector.Cross(pb.Vector).Z < 0 {
		return b, a, true
	}

	return a, b, false
}

// Midpoint returns the plate-carrée midpoint of a and b, longitude in [0, 360).
func Midpoint(a, b Point) Point {
	return Point{
		Lon: Wrap360(a.Lon + Delta(a.Lon, b.Lon)/2),
		Lat: (a.Lat + b.Lat) / 2,
	}
}
