package locate_test

import (
	"context"
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/faultclosure/label"
	"github.com/katalvlaran/faultclosure/locate"
	"github.com/katalvlaran/faultclosure/lonlat"
)

func box(x0, y0, x1, y1 float64) orb.Ring {
	return orb.Ring{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
}

// shapes turns plain rings into hole-free block polygons.
func shapes(rings ...orb.Ring) []orb.Polygon {
	polys := make([]orb.Polygon, len(rings))
	for i, r := range rings {
		polys[i] = orb.Polygon{r}
	}

	return polys
}

func newLocator(t *testing.T, rings []orb.Ring, labels []int, opts ...locate.Option) *locate.Locator {
	t.Helper()
	l, err := locate.New(shapes(rings...), labels, opts...)
	require.NoError(t, err)

	return l
}

func TestLocate_InsideAndOutside(t *testing.T) {
	l := newLocator(t, []orb.Ring{box(0, 0, 1, 1), box(1, 0, 2, 1)}, []int{0, 1})

	assert.Equal(t, 0, l.Locate(lonlat.Point{Lon: 0.5, Lat: 0.5}))
	assert.Equal(t, 1, l.Locate(lonlat.Point{Lon: 1.5, Lat: 0.5}))
	assert.Equal(t, label.Unresolved, l.Locate(lonlat.Point{Lon: 50, Lat: 50}))
	assert.Equal(t, label.Unresolved, l.Fallback())
}

func TestLocate_SharedBoundaryGoesToLowestLabel(t *testing.T) {
	// Labels deliberately out of ring order.
	l := newLocator(t, []orb.Ring{box(1, 0, 2, 1), box(0, 0, 1, 1)}, []int{3, 2})

	assert.Equal(t, 2, l.Locate(lonlat.Point{Lon: 1, Lat: 0.5}))
	assert.Equal(t, 2, l.Locate(lonlat.Point{Lon: 1, Lat: 1}))
	assert.Equal(t, 3, l.Locate(lonlat.Point{Lon: 2, Lat: 0.5}))
}

func TestLocate_LongitudeConventions(t *testing.T) {
	// Block straddling the prime meridian, stored unwrapped in [359.5, 360.5].
	l := newLocator(t, []orb.Ring{box(359.5, 0, 360.5, 1)}, []int{0})

	for _, lon := range []float64{359.8, -0.2, 0.2, 360.2, -359.8} {
		assert.Equal(t, 0, l.Locate(lonlat.Point{Lon: lon, Lat: 0.5}), "lon %v", lon)
	}
	assert.Equal(t, label.Unresolved, l.Locate(lonlat.Point{Lon: 1, Lat: 0.5}))
}

func TestLocate_PolarCap(t *testing.T) {
	// Northern cap closed through the pole.
	polar := orb.Ring{{0, 60}, {120, 60}, {240, 60}, {360, 60}, {360, 90}, {0, 90}, {0, 60}}
	l := newLocator(t, []orb.Ring{polar}, []int{0})

	assert.Equal(t, 0, l.Locate(lonlat.Point{Lon: -170, Lat: 80}))
	assert.Equal(t, 0, l.Locate(lonlat.Point{Lon: 10, Lat: 89}))
	assert.Equal(t, label.Unresolved, l.Locate(lonlat.Point{Lon: 10, Lat: 10}))
}

func TestLocate_IslandIsCutOut(t *testing.T) {
	// Block 0 surrounds block 1; a point in the island belongs to the island
	// even though block 0 has the lower label.
	polys := []orb.Polygon{
		{box(0, 0, 10, 10), box(4, 4, 6, 6)},
		{box(4, 4, 6, 6)},
	}
	l, err := locate.New(polys, []int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, 1, l.Locate(lonlat.Point{Lon: 5, Lat: 5}))
	assert.Equal(t, 1, l.Locate(lonlat.Point{Lon: 4, Lat: 5}))
	assert.Equal(t, 0, l.Locate(lonlat.Point{Lon: 2, Lat: 2}))
	assert.Equal(t, 0, l.Locate(lonlat.Point{Lon: 7, Lat: 5}))

	// Without the island block the hole locates nowhere.
	l, err = locate.New(polys[:1], []int{0})
	require.NoError(t, err)
	assert.Equal(t, label.Unresolved, l.Locate(lonlat.Point{Lon: 5, Lat: 5}))
}

func TestLocate_NonFiniteAndFallback(t *testing.T) {
	l := newLocator(t, []orb.Ring{box(0, 0, 1, 1)}, []int{0}, locate.WithFallback(9))

	assert.Equal(t, 9, l.Locate(lonlat.Point{Lon: math.NaN(), Lat: 0.5}))
	assert.Equal(t, 9, l.Locate(lonlat.Point{Lon: 0.5, Lat: math.Inf(1)}))
	assert.Equal(t, 9, l.Locate(lonlat.Point{Lon: 5, Lat: 5}))
}

func TestLocate_Empty(t *testing.T) {
	l := newLocator(t, nil, nil)
	assert.Equal(t, label.Unresolved, l.Locate(lonlat.Point{Lon: 0, Lat: 0}))
}

func TestLocateAll_MatchesSerial(t *testing.T) {
	var rings []orb.Ring
	var labels []int
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			rings = append(rings, box(float64(i), float64(j), float64(i+1), float64(j+1)))
			labels = append(labels, len(labels))
		}
	}
	l := newLocator(t, rings, labels, locate.WithWorkers(4), locate.WithChunkSize(7))

	var pts []lonlat.Point
	for k := 0; k < 500; k++ {
		pts = append(pts, lonlat.Point{Lon: float64(k%120) * 0.1, Lat: float64(k%97) * 0.11})
	}

	got, err := l.LocateAll(context.Background(), pts)
	require.NoError(t, err)
	require.Len(t, got, len(pts))
	for i, p := range pts {
		assert.Equal(t, l.Locate(p), got[i], "point %d", i)
	}
}

func TestLocateAll_Cancelled(t *testing.T) {
	l := newLocator(t, []orb.Ring{box(0, 0, 1, 1)}, []int{0}, locate.WithChunkSize(1))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.LocateAll(ctx, make([]lonlat.Point, 10))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_Errors(t *testing.T) {
	_, err := locate.New(shapes(box(0, 0, 1, 1)), nil)
	assert.ErrorIs(t, err, locate.ErrMismatch)

	_, err = locate.New(shapes(box(0, 0, 1, 1)), []int{-1})
	assert.ErrorIs(t, err, locate.ErrBadLabel)

	_, err = locate.New(nil, nil, locate.WithWorkers(0))
	assert.ErrorIs(t, err, locate.ErrOptionViolation)

	_, err = locate.New(nil, nil, locate.WithChunkSize(-3))
	assert.ErrorIs(t, err, locate.ErrOptionViolation)
}

func BenchmarkLocate(b *testing.B) {
	var rings []orb.Ring
	var labels []int
	for i := 0; i < 60; i++ {
		for j := 0; j < 30; j++ {
			rings = append(rings, box(float64(i*6), float64(j*6-90), float64(i*6+6), float64(j*6-84)))
			labels = append(labels, len(labels))
		}
	}
	l, err := locate.New(shapes(rings...), labels)
	if err != nil {
		b.Fatal(err)
	}
	p := lonlat.Point{Lon: 123.4, Lat: 12.3}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = l.Locate(p)
	}
}
