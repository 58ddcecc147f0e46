package npy

import (
	"bytes"
	"testing"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	features := []feature.Feature{feature.NewBooleanFeature("smoker"), feature.NewContinuousFeature("age")}
	tbl := dataset.NewTable("sick", features)
	require.NoError(t, tbl.Add([]float64{1, 62.5}, true))
	require.NoError(t, tbl.Add([]float64{0, 18}, false))
	require.NoError(t, tbl.Add([]float64{1, 33}, false))

	fbuf, lbuf := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, WriteTable(fbuf, lbuf, tbl))
	fdata, ldata := fbuf.Bytes(), lbuf.Bytes()

	read, err := ReadTable(bytes.NewReader(fdata), bytes.NewReader(ldata), "sick", features)
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, read.Rows)
	assert.Equal(t, tbl.Labels, read.Labels)

	anonymous, err := ReadTable(bytes.NewReader(fdata), bytes.NewReader(ldata), "y", nil)
	require.NoError(t, err)
	assert.Equal(t, []feature.Type{feature.Continuous, feature.Continuous}, feature.Types(anonymous.Features))

	ps, err := ReadPointSet(bytes.NewReader(fdata), bytes.NewReader(ldata), feature.Types(features), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, ps.Count())
	assert.Equal(t, []float64{0, 18}, ps.Row(1))
	assert.True(t, ps.BestSplit().Usable())
}

func TestReadTableRejectsWrongWidth(t *testing.T) {
	tbl := dataset.NewTable("y", []feature.Feature{feature.NewContinuousFeature("a")})
	require.NoError(t, tbl.Add([]float64{1}, true))
	fbuf, lbuf := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, WriteTable(fbuf, lbuf, tbl))
	_, err := ReadTable(fbuf, lbuf, "y", []feature.Feature{feature.NewContinuousFeature("a"), feature.NewContinuousFeature("b")})
	assert.Equal(t, dataset.ErrRowLength, err)
}
