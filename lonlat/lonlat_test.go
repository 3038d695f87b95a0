package lonlat_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/faultclosure/lonlat"
)

func TestWrap360(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{-10, 350},
		{-370, 350},
		{725, 5},
		{-1e-17, 0},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, lonlat.Wrap360(c.in), 1e-12, "Wrap360(%v)", c.in)
	}
}

func TestDelta_Periodic(t *testing.T) {
	assert.InDelta(t, 2.0, lonlat.Delta(359, 1), 1e-12)
	assert.InDelta(t, -2.0, lonlat.Delta(1, 359), 1e-12)
	assert.InDelta(t, 180.0, lonlat.Delta(0, 180), 1e-12)
	assert.InDelta(t, 180.0, lonlat.Delta(180, 0), 1e-12) // (-180, 180]
	assert.InDelta(t, 10.0, lonlat.Delta(-175, -165), 1e-12)
	assert.InDelta(t, 1.0, lonlat.Delta(-0.5, 360.5), 1e-12)
}

func TestNear(t *testing.T) {
	assert.InDelta(t, 361.0, lonlat.Near(1, 359), 1e-12)
	assert.InDelta(t, -1.0, lonlat.Near(359, 2), 1e-12)
	assert.InDelta(t, 10.0, lonlat.Near(10, 12), 1e-12)
}

func TestBearing_AcrossMeridian(t *testing.T) {
	// 359 → 1 is a short eastward leg.
	b := lonlat.Bearing(lonlat.Point{Lon: 359}, lonlat.Point{Lon: 1})
	assert.InDelta(t, 0.0, b, 1e-12)

	b = lonlat.Bearing(lonlat.Point{Lon: 1}, lonlat.Point{Lon: 359})
	assert.InDelta(t, math.Pi, b, 1e-12)

	b = lonlat.Bearing(lonlat.Point{Lon: 5, Lat: 0}, lonlat.Point{Lon: 5, Lat: 1})
	assert.InDelta(t, math.Pi/2, b, 1e-12)
}

func TestUnwrapRing_Continuous(t *testing.T) {
	pts := []lonlat.Point{{Lon: 359, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 359, Lat: 1}}
	ring, winding := lonlat.UnwrapRing(pts)
	assert.Equal(t, 0, winding)
	require.Len(t, ring, 5)
	assert.Equal(t, orb.Point{359, 0}, ring[0])
	assert.Equal(t, orb.Point{361, 0}, ring[1])
	assert.Equal(t, orb.Point{361, 1}, ring[2])
	assert.Equal(t, orb.Point{359, 1}, ring[3])
	assert.Equal(t, ring[0], ring[4])
}

func TestRing_PolarCapClosure(t *testing.T) {
	// Four legs of 90° walking east along the equator: north cap.
	east := []lonlat.Point{{Lon: 0}, {Lon: 90}, {Lon: 180.0 - 1e-9}, {Lon: 270}}
	ring, winding := lonlat.UnwrapRing(east)
	assert.Equal(t, 1, winding)

	closed, err := lonlat.CloseRing(ring, winding)
	require.NoError(t, err)
	assert.Equal(t, closed[0], closed[len(closed)-1])
	assert.Equal(t, orb.CCW, closed.Orientation())
	assert.Equal(t, 90.0, closed[len(closed)-2][1])

	// Reversed walk is westward: south cap, still counter-clockwise.
	west := []lonlat.Point{{Lon: 270}, {Lon: 180.0 - 1e-9}, {Lon: 90}, {Lon: 0}}
	closed, err = lonlat.Ring(west)
	require.NoError(t, err)
	assert.Equal(t, orb.CCW, closed.Orientation())
	assert.Equal(t, -90.0, closed[len(closed)-2][1])
}

func TestCloseRing_RejectsDoubleWinding(t *testing.T) {
	_, err := lonlat.CloseRing(orb.Ring{{0, 0}, {720, 0}}, 2)
	assert.ErrorIs(t, err, lonlat.ErrWinding)
}

func TestLengthKm(t *testing.T) {
	// One degree of arc along the equator.
	km := lonlat.LengthKm(lonlat.Point{Lon: 0}, lonlat.Point{Lon: 1})
	assert.InDelta(t, lonlat.EarthRadiusKm*math.Pi/180, km, 1e-6)

	// Same leg written across the seam.
	km = lonlat.LengthKm(lonlat.Point{Lon: 359.5}, lonlat.Point{Lon: -179.5 + 180})
	assert.InDelta(t, lonlat.EarthRadiusKm*math.Pi/180, km, 1e-6)
}

func TestOrderWestFirst(t *testing.T) {
	a := lonlat.Point{Lon: 10, Lat: 5}
	b := lonlat.Point{Lon: 20, Lat: 6}

	w, e, swapped := lonlat.OrderWestFirst(b, a)
	assert.True(t, swapped)
	assert.Equal(t, a, w)
	assert.Equal(t, b, e)

	// Mixed conventions across the seam: 359 is west of 1.
	w, _, swapped = lonlat.OrderWestFirst(lonlat.Point{Lon: 1}, lonlat.Point{Lon: -1})
	assert.True(t, swapped)
	assert.Equal(t, -1.0, w.Lon)
}

func TestMidpoint(t *testing.T) {
	m := lonlat.Midpoint(lonlat.Point{Lon: 359, Lat: 0}, lonlat.Point{Lon: 1, Lat: 2})
	assert.InDelta(t, 0.0, m.Lon, 1e-12)
	assert.InDelta(t, 1.0, m.Lat, 1e-12)
}

func TestFinite(t *testing.T) {
	assert.True(t, lonlat.Finite(lonlat.Point{Lon: 1, Lat: 2}))
	assert.False(t, lonlat.Finite(lonlat.Point{Lon: math.NaN()}))
	assert.False(t, lonlat.Finite(lonlat.Point{Lat: math.Inf(1)}))
}
