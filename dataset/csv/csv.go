/*
Package csv reads and writes tables of labeled points as CSV.
*/
package csv

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

// MissingValue is the value some CSV files use for undefined cells,
// which are rejected.
const MissingValue = "?"

type csvWriter struct {
	count    int
	features []feature.Feature
	w        *csv.Writer
}

/*
ReadTable takes an io.Reader for a CSV stream, the name of the label column and
a slice of features and returns a dataset.Table with the rows parsed from the
reader or an error.

The header or first row of the CSV content is expected to contain the names of
all the features in the given slice and the label column, in any order. Other
columns are ignored. The rest of the rows should consist of valid values for
all those columns.
*/
func ReadTable(reader io.Reader, label string, features []feature.Feature) (*dataset.Table, error) {
	t := dataset.NewTable(label, features)
	err := ReadTableByRow(reader, label, features, func(_ int, row []float64, l bool) (bool, error) {
		return true, t.Add(row, l)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

/*
ReadTableByRow takes an io.Reader for a CSV stream, the name of the label
column, a slice of features and a lambda function on an integer, a feature
vector and a label that returns a boolean value. It parses the rows from the
reader and for each it calls the lambda function with the row index, the
feature vector and the label as parameters. If the lambda function returns
true, it will continue processing the next row, otherwise it will stop. An
error is returned if something goes wrong when reading the stream or parsing
a row.
*/
func ReadTableByRow(reader io.Reader, label string, features []feature.Feature, lambda func(int, []float64, bool) (bool, error)) error {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return errors.Wrap(err, "reading header")
	}
	columns, labelColumn, err := parseHeader(header, label, features)
	if err != nil {
		return err
	}
	values := make([]string, len(features))
	for l := 2; ; l++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "reading body")
		}
		for j, c := range columns {
			if record[c] == MissingValue {
				return fmt.Errorf("parsing line %d: missing value for feature %s", l, features[j].Name())
			}
			values[j] = record[c]
		}
		row, err := dataset.ParseRow(features, values)
		if err != nil {
			return errors.Wrapf(err, "parsing line %d", l)
		}
		lv, err := dataset.ParseLabel(record[labelColumn])
		if err != nil {
			return errors.Wrapf(err, "parsing line %d", l)
		}
		ok, err := lambda(l-2, row, lv)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return nil
}

/*
ReadTableFromFilePath takes a filepath string, the name of the label column and
a slice of features, opens the file to which the filepath points to and uses
ReadTable to return the table read from it or an error. If the filepath is ""
os.Stdin is read instead.
*/
func ReadTableFromFilePath(filepath, label string, features []feature.Feature) (*dataset.Table, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, errors.Wrap(err, "reading table")
		}
		defer f.Close()
	}
	t, err := ReadTable(f, label, features)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing CSV file %s", filepath)
	}
	return t, nil
}

/*
NewWriter takes an io.Writer, the name of the label column and a slice of
feature.Features and returns a dataset.Writer that will write rows on the
io.Writer after a header with the feature names followed by the label.
*/
func NewWriter(writer io.Writer, label string, features []feature.Feature) (dataset.Writer, error) {
	w := csv.NewWriter(writer)
	record := make([]string, 0, len(features)+1)
	for _, f := range features {
		record = append(record, f.Name())
	}
	record = append(record, label)
	err := w.Write(record)
	if err != nil {
		return nil, errors.Wrap(err, "writing CSV header")
	}
	return &csvWriter{features: features, w: w}, nil
}

/*
WriteTable takes a context, a writer and a dataset.Table and dumps the table to
the writer in CSV format. It returns an error if something went wrong when
writing to the writer.
*/
func WriteTable(ctx context.Context, writer io.Writer, t *dataset.Table) error {
	cw, err := NewWriter(writer, t.Label, t.Features)
	if err != nil {
		return err
	}
	return dataset.WriteTable(ctx, cw, t)
}

func parseHeader(header []string, label string, features []feature.Feature) ([]int, int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}
	columns := make([]int, len(features))
	for j, f := range features {
		c, ok := positions[f.Name()]
		if !ok {
			return nil, 0, fmt.Errorf("parsing header: no column for feature %s", f.Name())
		}
		columns[j] = c
	}
	labelColumn, ok := positions[label]
	if !ok {
		return nil, 0, fmt.Errorf("parsing header: no column for label %s", label)
	}
	return columns, labelColumn, nil
}

func (cw *csvWriter) Count() int {
	return cw.count
}

func (cw *csvWriter) Write(ctx context.Context, rows [][]float64, labels []bool) (int, error) {
	if len(rows) != len(labels) {
		return 0, dataset.ErrLabelCount
	}
	for n, row := range rows {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		err := cw.writeRow(row, labels[n])
		if err != nil {
			return n, err
		}
	}
	return len(rows), nil
}

func (cw *csvWriter) writeRow(row []float64, label bool) error {
	if len(row) != len(cw.features) {
		return dataset.ErrRowLength
	}
	record := make([]string, 0, len(cw.features)+1)
	for j, f := range cw.features {
		record = append(record, f.Format(row[j]))
	}
	record = append(record, dataset.FormatLabel(label))
	err := cw.w.Write(record)
	if err != nil {
		return errors.Wrapf(err, "writing CSV row %d", cw.count+1)
	}
	cw.count++
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
