package dataset

import (
	"math"

	"github.com/pbanos/sapling/feature"
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/mat"
)

/*
Split is the result of searching the best split of a point set: the index of
the feature to split on, the rule to route points on that feature and the
Gini impurity gain it yields. A FeatureIndex of -1 means no split was found.
*/
type Split struct {
	FeatureIndex int
	Gain         float64
	Rule         feature.Rule
}

// NoSplit is the result of a search that found no usable split
var NoSplit = Split{FeatureIndex: -1}

// Usable returns whether the split can be used to partition a point set
func (s Split) Usable() bool {
	return s.FeatureIndex >= 0
}

// candidate holds the label counts on each side of a candidate split.
type candidate struct {
	rule                         feature.Rule
	left0, left1, right0, right1 int
}

func (c *candidate) moveLeft(label bool) {
	if label {
		c.left1++
		c.right1--
	} else {
		c.left0++
		c.right0--
	}
}

func (c *candidate) accepted(minSplitSize int) bool {
	return c.left0+c.left1 >= minSplitSize && c.right0+c.right1 >= minSplitSize
}

func (c *candidate) gain(g float64, n int) float64 {
	nl := float64(c.left0 + c.left1)
	nr := float64(c.right0 + c.right1)
	return g - (nl*gini(c.left0, c.left1)+nr*gini(c.right0, c.right1))/float64(n)
}

/*
BestSplit searches every feature, in index order, for the split with the
greatest Gini impurity gain among those leaving at least MinSplitSize points on
each side. Only splits with a strictly positive gain are considered, and on
equal gains the first split found wins. The result is memoized.
*/
func (ps *PointSet) BestSplit() Split {
	if ps.best != nil {
		return *ps.best
	}
	g := ps.Gini()
	n := ps.Count()
	best := NoSplit
	for j := range ps.types {
		ps.scan(j, func(c candidate) {
			if gain := c.gain(g, n); gain > best.Gain {
				best = Split{FeatureIndex: j, Gain: gain, Rule: c.rule}
			}
		})
	}
	ps.best = &best
	return best
}

/*
BestGain returns the feature index and gain of the best split, searching for
it if needed. The index is -1 if there is no usable split.
*/
func (ps *PointSet) BestGain() (int, float64) {
	s := ps.BestSplit()
	return s.FeatureIndex, s.Gain
}

/*
Rule returns the rule of the best split. It fails with ErrSplitNotSearched if
BestSplit has not been called yet, and with ErrNoUsableSplit if the search
found no split.
*/
func (ps *PointSet) Rule() (feature.Rule, error) {
	if ps.best == nil {
		return feature.Rule{}, ErrSplitNotSearched
	}
	if !ps.best.Usable() {
		return feature.Rule{}, ErrNoUsableSplit
	}
	return ps.best.Rule, nil
}

// scan calls visit with every accepted candidate split on feature j.
func (ps *PointSet) scan(j int, visit func(candidate)) {
	switch ps.types[j] {
	case feature.Boolean:
		ps.scanBoolean(j, visit)
	case feature.Categorical:
		ps.scanCategorical(j, visit)
	default:
		ps.scanContinuous(j, visit)
	}
}

func (ps *PointSet) scanBoolean(j int, visit func(candidate)) {
	c := candidate{rule: feature.NewBooleanRule()}
	c.right0, c.right1 = ps.CountLabels()
	for i, l := range ps.labels {
		if ps.features.At(i, j) == 0 {
			c.moveLeft(l)
		}
	}
	if c.accepted(ps.minSplitSize) {
		visit(c)
	}
}

func (ps *PointSet) scanCategorical(j int, visit func(candidate)) {
	var order []float64
	counts := make(map[float64]*[2]int)
	for i, l := range ps.labels {
		v := ps.features.At(i, j)
		cnt, ok := counts[v]
		if !ok {
			cnt = &[2]int{}
			counts[v] = cnt
			order = append(order, v)
		}
		if l {
			cnt[1]++
		} else {
			cnt[0]++
		}
	}
	n0, n1 := ps.CountLabels()
	for _, v := range order {
		cnt := counts[v]
		c := candidate{
			rule:   feature.NewCategoricalRule(v),
			left0:  cnt[0],
			left1:  cnt[1],
			right0: n0 - cnt[0],
			right1: n1 - cnt[1],
		}
		if c.accepted(ps.minSplitSize) {
			visit(c)
		}
	}
}

func (ps *PointSet) scanContinuous(j int, visit func(candidate)) {
	values := mat.Col(nil, j, ps.features)
	labels := append([]bool(nil), ps.labels...)
	essentials.VoodooSort(values, func(a, b int) bool {
		return values[a] < values[b]
	}, labels)
	c := candidate{}
	c.right0, c.right1 = ps.CountLabels()
	for i := 0; i < len(values)-1; i++ {
		c.moveLeft(labels[i])
		if values[i] == values[i+1] {
			continue
		}
		if !c.accepted(ps.minSplitSize) {
			continue
		}
		c.rule = feature.NewContinuousRule(midpoint(values[i], values[i+1]))
		visit(c)
	}
}

/*
midpoint returns a threshold t with a < t <= b, so that a routes left and b
routes right under v < t. It is the midpoint of a and b when that can be
represented, and b otherwise (adjacent floats, infinite values).
*/
func midpoint(a, b float64) float64 {
	t := a/2 + b/2
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= a || t > b {
		return b
	}
	return t
}
