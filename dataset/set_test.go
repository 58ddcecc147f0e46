package dataset

import (
	"math"
	"sort"
	"testing"

	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, rows [][]float64, labels []bool, types []feature.Type, minSplitSize int) *PointSet {
	ps, err := New(rows, labels, types, minSplitSize)
	require.NoError(t, err)
	return ps
}

func column(values ...float64) [][]float64 {
	rows := make([][]float64, len(values))
	for i, v := range values {
		rows[i] = []float64{v}
	}
	return rows
}

func TestNewPreconditions(t *testing.T) {
	types := []feature.Type{feature.Continuous}
	cases := map[string]struct {
		rows         [][]float64
		labels       []bool
		types        []feature.Type
		minSplitSize int
		err          error
	}{
		"empty":          {nil, nil, types, 1, ErrEmptySet},
		"labels":         {column(1, 2), []bool{true}, types, 1, ErrLabelCount},
		"row length":     {[][]float64{{1}, {1, 2}}, []bool{true, false}, types, 1, ErrRowLength},
		"min split size": {column(1), []bool{true}, types, 0, ErrMinSplitSize},
		"no features":    {[][]float64{{}}, []bool{true}, nil, 1, ErrNoFeatures},
	}
	for name, c := range cases {
		_, err := New(c.rows, c.labels, c.types, c.minSplitSize)
		assert.Equal(t, c.err, err, name)
	}
}

func TestGini(t *testing.T) {
	ps := mustNew(t, column(0, 0, 0, 0), []bool{false, true, true, true}, []feature.Type{feature.Boolean}, 1)
	assert.InDelta(t, 0.375, ps.Gini(), 1e-12)

	swapped := mustNew(t, column(0, 0, 0, 0), []bool{true, false, false, false}, []feature.Type{feature.Boolean}, 1)
	assert.InDelta(t, ps.Gini(), swapped.Gini(), 1e-12)

	pure := mustNew(t, column(0, 1, 2), []bool{true, true, true}, []feature.Type{feature.Continuous}, 1)
	assert.Equal(t, 0.0, pure.Gini())

	half := mustNew(t, column(0, 1), []bool{true, false}, []feature.Type{feature.Continuous}, 1)
	assert.Equal(t, 0.5, half.Gini())
}

func TestPureSetHasNoSplit(t *testing.T) {
	ps := mustNew(t, [][]float64{{0, 1, 3}, {1, 2, 4}, {0, 3, 5}}, []bool{false, false, false},
		[]feature.Type{feature.Boolean, feature.Categorical, feature.Continuous}, 1)
	s := ps.BestSplit()
	assert.False(t, s.Usable())
	assert.Equal(t, -1, s.FeatureIndex)
	assert.Equal(t, 0.0, s.Gain)
	_, err := ps.Rule()
	assert.Equal(t, ErrNoUsableSplit, err)
}

func TestRuleBeforeSearch(t *testing.T) {
	ps := mustNew(t, column(0, 1), []bool{false, true}, []feature.Type{feature.Boolean}, 1)
	_, err := ps.Rule()
	assert.Equal(t, ErrSplitNotSearched, err)
	ps.BestSplit()
	r, err := ps.Rule()
	require.NoError(t, err)
	assert.Equal(t, feature.NewBooleanRule(), r)
}

func TestBooleanSplit(t *testing.T) {
	ps := mustNew(t, column(0, 0, 1, 1), []bool{false, false, true, true}, []feature.Type{feature.Boolean}, 1)
	i, gain := ps.BestGain()
	assert.Equal(t, 0, i)
	assert.Equal(t, 0.5, gain)

	// non-zero values other than 1 are still true
	ps = mustNew(t, column(0, 0, 7, -2), []bool{false, false, true, true}, []feature.Type{feature.Boolean}, 1)
	assert.Equal(t, 0.5, ps.BestSplit().Gain)
}

func TestCategoricalSplitFirstAppearanceWinsTies(t *testing.T) {
	ps := mustNew(t, column(1, 1, 0, 0), []bool{false, false, true, true}, []feature.Type{feature.Categorical}, 1)
	s := ps.BestSplit()
	assert.Equal(t, 0, s.FeatureIndex)
	assert.Equal(t, 0.5, s.Gain)
	k, ok := s.Rule.Category()
	require.True(t, ok)
	assert.Equal(t, 1.0, k)
}

func TestCategoricalSplitPicksBestCategory(t *testing.T) {
	ps := mustNew(t, column(0, 1, 2, 2, 1, 0), []bool{false, false, true, true, false, true}, []feature.Type{feature.Categorical}, 1)
	s := ps.BestSplit()
	k, ok := s.Rule.Category()
	require.True(t, ok)
	assert.Equal(t, 1.0, k)
	assert.InDelta(t, 0.5-(4*gini(1, 3))/6, s.Gain, 1e-12)
}

func TestContinuousSplit(t *testing.T) {
	ps := mustNew(t, column(4, 1, 3, 2), []bool{true, false, true, false}, []feature.Type{feature.Continuous}, 1)
	s := ps.BestSplit()
	assert.Equal(t, 0.5, s.Gain)
	th, ok := s.Rule.Threshold()
	require.True(t, ok)
	assert.Equal(t, 2.5, th)
}

func TestContinuousSplitSkipsEqualValues(t *testing.T) {
	ps := mustNew(t, column(1, 1, 1, 2), []bool{false, true, false, true}, []feature.Type{feature.Continuous}, 1)
	var thresholds []float64
	ps.scan(0, func(c candidate) {
		th, _ := c.rule.Threshold()
		thresholds = append(thresholds, th)
	})
	assert.Equal(t, []float64{1.5}, thresholds)
}

func TestMinSplitSizeRejection(t *testing.T) {
	rows := column(1, 2, 3, 4)
	labels := []bool{false, false, true, true}
	types := []feature.Type{feature.Continuous}
	assert.True(t, mustNew(t, rows, labels, types, 2).BestSplit().Usable())
	assert.False(t, mustNew(t, rows, labels, types, 3).BestSplit().Usable())
}

func TestMinSplitSizeMonotonicity(t *testing.T) {
	rows := [][]float64{
		{0, 2, 0.5}, {1, 0, 1.5}, {0, 1, 1.5}, {1, 2, 3},
		{1, 1, 4}, {0, 0, 2.5}, {1, 2, 0.1}, {0, 3, 9},
	}
	labels := []bool{true, false, true, false, true, true, false, false}
	types := []feature.Type{feature.Boolean, feature.Categorical, feature.Continuous}
	previous := make([]int, len(types))
	for m := 1; m <= len(rows); m++ {
		ps := mustNew(t, rows, labels, types, m)
		for j := range types {
			var count int
			ps.scan(j, func(candidate) { count++ })
			if m > 1 {
				assert.LessOrEqual(t, count, previous[j], "feature %d min split size %d", j, m)
			}
			previous[j] = count
		}
	}
}

func TestTieKeepsFirstFeature(t *testing.T) {
	ps := mustNew(t, [][]float64{{0, 0}, {0, 0}, {1, 1}, {1, 1}}, []bool{false, false, true, true},
		[]feature.Type{feature.Boolean, feature.Boolean}, 1)
	i, _ := ps.BestGain()
	assert.Equal(t, 0, i)
}

func TestBestAcrossFeatures(t *testing.T) {
	ps := mustNew(t, [][]float64{{0, 1}, {1, 2}, {0, 3}, {1, 4}}, []bool{false, false, true, true},
		[]feature.Type{feature.Boolean, feature.Continuous}, 1)
	s := ps.BestSplit()
	assert.Equal(t, 1, s.FeatureIndex)
	assert.Equal(t, feature.NewContinuousRule(2.5), s.Rule)
}

// bruteForceGains recomputes the partition of every threshold from scratch.
func bruteForceGains(values []float64, labels []bool, minSplitSize int) []float64 {
	distinct := append([]float64(nil), values...)
	sort.Float64s(distinct)
	g := gini(countLabels(labels))
	var gains []float64
	for i := 0; i < len(distinct)-1; i++ {
		if distinct[i] == distinct[i+1] {
			continue
		}
		threshold := (distinct[i] + distinct[i+1]) / 2
		var below, above []bool
		for k, v := range values {
			if v < threshold {
				below = append(below, labels[k])
			} else {
				above = append(above, labels[k])
			}
		}
		if len(below) < minSplitSize || len(above) < minSplitSize {
			continue
		}
		b0, b1 := countLabels(below)
		a0, a1 := countLabels(above)
		weighted := (float64(len(below))*gini(b0, b1) + float64(len(above))*gini(a0, a1)) / float64(len(values))
		gains = append(gains, g-weighted)
	}
	return gains
}

func countLabels(labels []bool) (n0, n1 int) {
	for _, l := range labels {
		if l {
			n1++
		} else {
			n0++
		}
	}
	return
}

func TestContinuousSweepMatchesBruteForce(t *testing.T) {
	values := []float64{3, 1, 2, 2, 5, 4, 4, 1, 6, 6, 6, 0.5}
	labels := []bool{true, false, false, true, true, true, false, false, true, false, true, false}
	for m := 1; m <= 4; m++ {
		ps := mustNew(t, column(values...), labels, []feature.Type{feature.Continuous}, m)
		var gains []float64
		ps.scan(0, func(c candidate) {
			gains = append(gains, c.gain(ps.Gini(), ps.Count()))
		})
		expected := bruteForceGains(values, labels, m)
		require.Len(t, gains, len(expected), "min split size %d", m)
		for i := range gains {
			assert.InDelta(t, expected[i], gains[i], 1e-12)
		}
	}
}

func TestContinuousSplitExtremeValues(t *testing.T) {
	cases := [][2]float64{
		{-1e308, 1e308},
		{-math.MaxFloat64, math.MaxFloat64},
		{math.Inf(-1), 1},
		{-1, math.Inf(1)},
		{math.Inf(-1), math.Inf(1)},
		{1, math.Nextafter(1, 2)},
	}
	for _, c := range cases {
		ps := mustNew(t, column(c[1], c[0]), []bool{true, false}, []feature.Type{feature.Continuous}, 1)
		s := ps.BestSplit()
		require.True(t, s.Usable(), "%v", c)
		assert.Equal(t, 0.5, s.Gain, "%v", c)
		th, ok := s.Rule.Threshold()
		require.True(t, ok)
		assert.True(t, c[0] < th && th <= c[1], "threshold %v for %v", th, c)
		left, right, err := ps.Partition(0, s.Rule)
		require.NoError(t, err, "%v", c)
		assert.Equal(t, []bool{false}, left.Labels())
		assert.Equal(t, []bool{true}, right.Labels())
	}
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 2.5, midpoint(2, 3))
	assert.Equal(t, 0.0, midpoint(-1e308, 1e308))
	assert.Equal(t, 1.0, midpoint(math.Inf(-1), 1))
	assert.Equal(t, math.Inf(1), midpoint(math.Inf(-1), math.Inf(1)))
	next := math.Nextafter(1, 2)
	assert.Equal(t, next, midpoint(1, next))
}

func TestPartition(t *testing.T) {
	types := []feature.Type{feature.Categorical, feature.Continuous}
	ps := mustNew(t, [][]float64{{0, 1}, {1, 2}, {2, 3}, {1, 4}}, []bool{false, true, false, true}, types, 2)
	left, right, err := ps.Partition(0, feature.NewCategoricalRule(1))
	require.NoError(t, err)
	assert.Equal(t, 2, left.Count())
	assert.Equal(t, []bool{true, true}, left.Labels())
	assert.Equal(t, []float64{1, 4}, left.Row(1))
	assert.Equal(t, 2, right.Count())
	assert.Equal(t, []float64{2, 3}, right.Row(1))
	assert.Equal(t, 2, right.MinSplitSize())
	assert.True(t, &types[0] == &left.Types()[0])
	assert.True(t, &types[0] == &right.Types()[0])

	_, _, err = ps.Partition(1, feature.NewContinuousRule(10))
	assert.Equal(t, ErrEmptyPartition, err)
	_, _, err = ps.Partition(2, feature.NewContinuousRule(10))
	assert.Equal(t, ErrFeatureIndex, err)
}
