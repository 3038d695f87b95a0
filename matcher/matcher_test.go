package matcher_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/faultclosure/lonlat"
	"github.com/katalvlaran/faultclosure/matcher"
)

func seg(lon1, lat1, lon2, lat2 float64) matcher.Segment {
	return matcher.Segment{
		P1: lonlat.Point{Lon: lon1, Lat: lat1},
		P2: lonlat.Point{Lon: lon2, Lat: lat2},
	}
}

func TestMatch_SharedEndpointsWithNoise(t *testing.T) {
	segs := []matcher.Segment{
		seg(0, 0, 1, 0),
		seg(1+1e-9, 0-1e-9, 1, 1),
		seg(1, 1, 0, 1),
		seg(0, 1, 0, 1e-10),
	}
	tab, err := matcher.Match(segs)
	require.NoError(t, err)

	assert.Len(t, tab.Vertices, 4)
	assert.Empty(t, tab.Degenerate)
	assert.Equal(t, tab.Edges[0].V2, tab.Edges[1].V1)
	assert.Equal(t, tab.Edges[1].V2, tab.Edges[2].V1)
	assert.Equal(t, tab.Edges[2].V2, tab.Edges[3].V1)
	assert.Equal(t, tab.Edges[3].V2, tab.Edges[0].V1)
}

func TestMatch_FirstVertexKeepsCoordinates(t *testing.T) {
	tab, err := matcher.Match([]matcher.Segment{
		seg(10, 10, 20, 10),
		seg(10+5e-7, 10, 10, 20),
	})
	require.NoError(t, err)
	require.Len(t, tab.Vertices, 3)
	assert.Equal(t, lonlat.Point{Lon: 10, Lat: 10}, tab.Vertices[tab.Edges[1].V1])
}

func TestMatch_MixedLongitudeConventions(t *testing.T) {
	// -10 and 350 are the same meridian.
	tab, err := matcher.Match([]matcher.Segment{
		seg(-10, 0, 10, 0),
		seg(350, 0, 350, 5),
	})
	require.NoError(t, err)
	assert.Len(t, tab.Vertices, 3)
	assert.Equal(t, tab.Edges[0].V1, tab.Edges[1].V1)
	assert.Equal(t, 350.0, tab.Vertices[tab.Edges[0].V1].Lon)
}

func TestMatch_AcrossSeam(t *testing.T) {
	// 359.9999999 and 0.0000001 differ by 2e-7 degrees through the seam.
	tab, err := matcher.Match([]matcher.Segment{
		seg(359.9999999, 0, 359, 0),
		seg(0.0000001, 0, 1, 0),
	})
	require.NoError(t, err)
	assert.Len(t, tab.Vertices, 3)
	assert.Equal(t, tab.Edges[0].V1, tab.Edges[1].V1)
}

func TestMatch_DegenerateSegment(t *testing.T) {
	tab, err := matcher.Match([]matcher.Segment{
		seg(0, 0, 1, 0),
		seg(5, 5, 5+1e-8, 5),
		seg(1, 0, 0, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1}, tab.Degenerate)
	assert.False(t, tab.Valid(1))
	assert.True(t, tab.Valid(0))
	assert.False(t, tab.Valid(7))
	assert.Equal(t, matcher.Edge{V1: matcher.Unmatched, V2: matcher.Unmatched}, tab.Edges[1])
}

func TestMatch_ZeroToleranceIsExact(t *testing.T) {
	tab, err := matcher.Match([]matcher.Segment{
		seg(0, 0, 1, 0),
		seg(1+1e-12, 0, 2, 0),
	}, matcher.WithTolerance(0))
	require.NoError(t, err)
	assert.Len(t, tab.Vertices, 4)
	assert.Equal(t, 0.0, tab.Tolerance)
}

func TestMatch_NoChaining(t *testing.T) {
	// 0.8 joins the vertex at 0; 1.6 is within tolerance of 0.8 but not of
	// the vertex, so it founds its own.
	tab, err := matcher.Match([]matcher.Segment{
		seg(0, 0, 10, 0),
		seg(0.8, 0, 20, 0),
		seg(1.6, 0, 30, 0),
	}, matcher.WithTolerance(1))
	require.NoError(t, err)

	assert.Len(t, tab.Vertices, 5)
	assert.Equal(t, tab.Edges[0].V1, tab.Edges[1].V1)
	assert.NotEqual(t, tab.Edges[0].V1, tab.Edges[2].V1)
	assert.Equal(t, lonlat.Point{Lon: 1.6, Lat: 0}, tab.Vertices[tab.Edges[2].V1])
}

func TestMatch_LowestVertexWins(t *testing.T) {
	tab, err := matcher.Match([]matcher.Segment{
		seg(0, 0, 5, 5),
		seg(1, 0, 6, 6),
		seg(0.5, 0, 7, 7),
	}, matcher.WithTolerance(0.6))
	require.NoError(t, err)

	require.NotEqual(t, tab.Edges[0].V1, tab.Edges[1].V1)
	assert.Equal(t, tab.Edges[0].V1, tab.Edges[2].V1)
}

func TestMatch_Errors(t *testing.T) {
	_, err := matcher.Match(nil)
	assert.ErrorIs(t, err, matcher.ErrNoSegments)

	_, err = matcher.Match([]matcher.Segment{seg(math.NaN(), 0, 1, 1)})
	assert.ErrorIs(t, err, matcher.ErrNonFinite)

	_, err = matcher.Match([]matcher.Segment{seg(0, 0, 1, 91)})
	assert.ErrorIs(t, err, matcher.ErrBadLatitude)

	_, err = matcher.Match([]matcher.Segment{seg(0, 0, 1, 1)}, matcher.WithTolerance(-1))
	assert.ErrorIs(t, err, matcher.ErrOptionViolation)
}
