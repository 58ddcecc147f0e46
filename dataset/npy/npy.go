/*
Package npy reads and writes tables of labeled points as a pair of NumPy
.npy files: a 2-D array of feature values with a row per point, and an
array with a label per point where 0 means false and any other value true.
*/
package npy

import (
	"io"
	"os"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

/*
ReadMatrix takes an io.Reader with a 2-D .npy array and returns it as a
matrix, plus the labels read from another io.Reader with a .npy array holding
one value per row.
*/
func ReadMatrix(features, labels io.Reader) (*mat.Dense, []bool, error) {
	r, err := npyio.NewReader(features)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading features npy header")
	}
	m := &mat.Dense{}
	err = r.Read(m)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading features npy data")
	}
	var raw []float64
	err = npyio.Read(labels, &raw)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading labels npy")
	}
	rows, _ := m.Dims()
	if rows != len(raw) {
		return nil, nil, dataset.ErrLabelCount
	}
	ls := make([]bool, len(raw))
	for i, v := range raw {
		ls[i] = v != 0
	}
	return m, ls, nil
}

/*
ReadPointSet is like ReadMatrix but returns a point set backed by the read
matrix, for features of the given types, and the given minimum split size.
*/
func ReadPointSet(features, labels io.Reader, types []feature.Type, minSplitSize int) (*dataset.PointSet, error) {
	m, ls, err := ReadMatrix(features, labels)
	if err != nil {
		return nil, err
	}
	return dataset.NewFromDense(m, ls, types, minSplitSize)
}

/*
ReadTable is like ReadMatrix but returns a table with the given label name and
features. If features is nil, the table gets continuous features named x0, x1
and so on.
*/
func ReadTable(featuresReader, labelsReader io.Reader, label string, features []feature.Feature) (*dataset.Table, error) {
	m, ls, err := ReadMatrix(featuresReader, labelsReader)
	if err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	if features == nil {
		types := make([]feature.Type, cols)
		for j := range types {
			types[j] = feature.Continuous
		}
		features, err = feature.Anonymous(types)
		if err != nil {
			return nil, err
		}
	}
	if cols != len(features) {
		return nil, dataset.ErrRowLength
	}
	t := dataset.NewTable(label, features)
	for i := 0; i < rows; i++ {
		err = t.Add(mat.Row(nil, i, m), ls[i])
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

/*
ReadTableFromFilePaths takes the paths of the features and labels .npy files,
a label name and the features and returns the table read from them.
*/
func ReadTableFromFilePaths(featuresPath, labelsPath, label string, features []feature.Feature) (*dataset.Table, error) {
	ff, err := os.Open(featuresPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening features npy file")
	}
	defer ff.Close()
	lf, err := os.Open(labelsPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening labels npy file")
	}
	defer lf.Close()
	return ReadTable(ff, lf, label, features)
}

/*
WriteTable takes writers for the features and labels .npy files and a table,
and writes the table's feature values as a 2-D float64 array and its labels
as a 1-D array of 0s and 1s.
*/
func WriteTable(featuresWriter, labelsWriter io.Writer, t *dataset.Table) error {
	if t.Count() == 0 || len(t.Features) == 0 {
		return dataset.ErrEmptySet
	}
	m := mat.NewDense(t.Count(), len(t.Features), nil)
	for i, row := range t.Rows {
		m.SetRow(i, row)
	}
	err := npyio.Write(featuresWriter, m)
	if err != nil {
		return errors.Wrap(err, "writing features npy")
	}
	ls := make([]float64, len(t.Labels))
	for i, l := range t.Labels {
		if l {
			ls[i] = 1
		}
	}
	return errors.Wrap(npyio.Write(labelsWriter, ls), "writing labels npy")
}
