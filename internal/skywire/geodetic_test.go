package skywire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUTMRoundTrip exercises spec.md §8 S11: converting to UTM and
// back should recover the original latitude/longitude to within
// coordconv's own precision.
func TestUTMRoundTrip(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{34.052235, -118.243683},
		{51.507351, -0.127758},
		{-33.868820, 151.209290},
	}

	for _, c := range cases {
		utm, err := ToUTM(c.lat, c.lon)
		require.NoError(t, err)

		lat, lon, err := FromUTM(utm)
		require.NoError(t, err)

		// 1e-5 degrees is at most about 1.1 m.
		assert.InDelta(t, c.lat, lat, 1e-5)
		assert.InDelta(t, c.lon, lon, 1e-5)
	}
}
