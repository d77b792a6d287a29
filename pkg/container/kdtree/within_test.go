package kdtree

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithinRadiusScenario(t *testing.T) {
	t.Parallel()
	tree, err := Build[Coords[float64], float64](scenario())
	require.NoError(t, err)
	found := tree.WithinRadius(Coords[float64]{2, 1.5, 2.5}, 1.5)
	assert.ElementsMatch(t, []Coords[float64]{{1, 2, 3}, {3, 1, 2}}, found)
}

func TestWithinBox(t *testing.T) {
	t.Parallel()
	wp := []Coords[float64]{{2, 3}, {5, 4}, {9, 6}, {4, 7}, {8, 1}, {7, 2}}
	tree, err := Build[Coords[float64], float64](cloneCoords(wp))
	require.NoError(t, err)

	tests := []struct {
		name     string
		lo, hi   Coords[float64]
		expected []Coords[float64]
	}{
		{name: "everything", lo: Coords[float64]{0, 0}, hi: Coords[float64]{10, 10}, expected: wp},
		{name: "upper_right", lo: Coords[float64]{3, 4}, hi: Coords[float64]{10, 10}, expected: []Coords[float64]{{5, 4}, {4, 7}, {9, 6}}},
		{name: "lower_left", lo: Coords[float64]{0, 0}, hi: Coords[float64]{6, 5}, expected: []Coords[float64]{{2, 3}, {5, 4}}},
		{name: "closed_bounds", lo: Coords[float64]{2, 3}, hi: Coords[float64]{9, 6}, expected: []Coords[float64]{{2, 3}, {5, 4}, {9, 6}}},
		{name: "degenerate", lo: Coords[float64]{7, 2}, hi: Coords[float64]{7, 2}, expected: []Coords[float64]{{7, 2}}},
		{name: "reversed", lo: Coords[float64]{10, 0}, hi: Coords[float64]{0, 10}, expected: nil},
		{name: "outside", lo: Coords[float64]{20, 20}, hi: Coords[float64]{30, 30}, expected: nil},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.ElementsMatch(t, test.expected, tree.WithinBox(test.lo, test.hi))
		})
	}
}

func TestWithinBoxTies(t *testing.T) {
	t.Parallel()
	var points []Coords[int]
	for i := 0; i < 200; i++ {
		points = append(points, Coords[int]{i % 4, i % 5})
	}
	tree, err := Build[Coords[int], int](points)
	require.NoError(t, err)
	found := tree.WithinBox(Coords[int]{1, 2}, Coords[int]{2, 2})
	assert.Len(t, found, 20)
	for _, p := range found {
		assert.Contains(t, []int{1, 2}, p[0])
		assert.Equal(t, 2, p[1])
	}
}

func TestWithinMatchesBruteForce(t *testing.T) {
	t.Parallel()
	rnd := rand.New(rand.NewSource(9))
	points := randomCoords(rnd, 3000, 3)
	tree, err := BuildParallel[Coords[float64], float64](cloneCoords(points), WithCutoff(100))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		a, b := randomCoords(rnd, 1, 3)[0], randomCoords(rnd, 1, 3)[0]
		lo, hi := make(Coords[float64], 3), make(Coords[float64], 3)
		for k := range a {
			lo[k], hi[k] = math.Min(a[k], b[k]), math.Max(a[k], b[k])
		}
		assert.Len(t, tree.WithinBox(lo, hi), bruteBox(lo, hi, points))

		r := rnd.Float64() * 0.3
		assert.Len(t, tree.WithinRadius(a, r), bruteRadius(a, r, points))
	}
}

func TestWithinRadiusBoundary(t *testing.T) {
	t.Parallel()
	tree, err := Build[Coords[int], int]([]Coords[int]{{0, 0}, {3, 4}, {1, 1}, {-3, 0}})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Coords[int]{{0, 0}, {1, 1}}, tree.WithinRadius(Coords[int]{0, 0}, 3))
	assert.ElementsMatch(t, []Coords[int]{{0, 0}, {1, 1}, {-3, 0}}, tree.WithinRadius(Coords[int]{0, 0}, 4))
	assert.Empty(t, tree.WithinRadius(Coords[int]{0, 0}, 0))
	assert.Empty(t, tree.WithinRadius(Coords[int]{0, 0}, -5))

	manhattan := tree.WithMetric(Manhattan[int]{})
	assert.ElementsMatch(t, []Coords[int]{{0, 0}, {1, 1}}, manhattan.WithinRadius(Coords[int]{0, 0}, 3))
}

func TestWithinRadiusNearIntegerLimits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		points   []Coords[int8]
		center   Coords[int8]
		expected []Coords[int8]
	}{
		{
			name:     "upper",
			points:   []Coords[int8]{{90}, {100}, {120}, {127}, {60}},
			center:   Coords[int8]{110},
			expected: []Coords[int8]{{100}, {120}, {127}},
		},
		{
			name:     "lower",
			points:   []Coords[int8]{{-90}, {-100}, {-120}, {-128}, {-60}},
			center:   Coords[int8]{-110},
			expected: []Coords[int8]{{-100}, {-120}, {-128}},
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			tree, err := Build[Coords[int8], int8](test.points)
			require.NoError(t, err)
			found := tree.WithMetric(Manhattan[int8]{}).WithinRadius(test.center, 20)
			assert.ElementsMatch(t, test.expected, found)
		})
	}
}

func TestWithinNonFinite(t *testing.T) {
	t.Parallel()
	nan := math.NaN()
	points := []Coords[float64]{{0, 0}, {nan, 1}, {2, 2}, {1, nan}}
	tree, err := Build[Coords[float64], float64](points)
	require.NoError(t, err)

	assert.Empty(t, tree.WithinRadius(Coords[float64]{0, 0}, nan))
	assert.Len(t, tree.WithinRadius(Coords[float64]{0, 0}, math.Inf(1)), 2)
	assert.ElementsMatch(t, []Coords[float64]{{0, 0}, {2, 2}}, tree.WithinBox(Coords[float64]{-1, -1}, Coords[float64]{3, 3}))
	assert.NotPanics(t, func() {
		tree.WithinBox(Coords[float64]{nan, 0}, Coords[float64]{1, nan})
	})
}

func TestWithinFunc(t *testing.T) {
	t.Parallel()
	tree, err := Build[Coords[int], int]([]Coords[int]{{1, 9}, {2, 8}, {3, 7}, {4, 6}, {5, 5}})
	require.NoError(t, err)
	// x in [2, 4], any y, even x only
	found := tree.WithinFunc(func(v int, axis int) int {
		if axis == 0 {
			switch {
			case v < 2:
				return -1
			case v > 4:
				return 1
			}
		}
		return 0
	}, func(p Coords[int]) bool { return p[0]%2 == 0 })
	assert.ElementsMatch(t, []Coords[int]{{2, 8}, {4, 6}}, found)
}
