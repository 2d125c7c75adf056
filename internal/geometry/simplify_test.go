package geometry

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimplifyRing(t *testing.T) {
	t.Run("removes collinear interior points", func(t *testing.T) {
		ring := orb.Ring{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {3, 3}, {0, 3}, {0, 0}}

		out := SimplifyRing(ring)

		assert.Equal(t, orb.Ring{{0, 0}, {3, 0}, {3, 3}, {0, 3}, {0, 0}}, out)
	})

	t.Run("keeps non-collinear rings intact", func(t *testing.T) {
		ring := orb.Ring{{0, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0}}

		assert.Equal(t, ring, SimplifyRing(ring))
	})

	t.Run("minimal ring is returned as-is", func(t *testing.T) {
		ring := orb.Ring{{0, 0}, {1, 0}, {0, 1}, {0, 0}}

		assert.Equal(t, ring, SimplifyRing(ring))
	})
}

func TestLimitRingPoints(t *testing.T) {
	t.Run("ring under the cap is untouched", func(t *testing.T) {
		ring := orb.Ring{{0, 0}, {1, 0}, {1, 1}, {0, 0}}

		assert.Equal(t, ring, LimitRingPoints(ring, MaxRingPoints))
	})

	t.Run("oversized ring is sampled uniformly", func(t *testing.T) {
		ring := make(orb.Ring, 1001)
		for i := range ring {
			ring[i] = orb.Point{float64(i), float64(i % 7)}
		}
		ring[1000] = ring[0] // замкнутое кольцо

		out := LimitRingPoints(ring, MaxRingPoints)

		assert.LessOrEqual(t, len(out), MaxRingPoints)
		assert.Equal(t, ring[0], out[0])
		// последняя точка сохраняется, кольцо остаётся замкнутым
		assert.Equal(t, ring[1000], out[len(out)-1])
	})

	t.Run("sampling keeps every step-th point", func(t *testing.T) {
		ring := make(orb.Ring, 1000)
		for i := range ring {
			ring[i] = orb.Point{float64(i), 0}
		}

		out := LimitRingPoints(ring, 500)

		require.NotEmpty(t, out)
		assert.Equal(t, orb.Point{0, 0}, out[0])
		assert.Equal(t, orb.Point{2, 0}, out[1])
	})
}
