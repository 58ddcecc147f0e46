package dataset

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pbanos/sapling/feature"
)

/*
Table is a set of labeled points as loaded from a data source: the features
describing its columns, the name of the label column, the rows of feature
values and the label of each row.
*/
type Table struct {
	Label    string
	Features []feature.Feature
	Rows     [][]float64
	Labels   []bool
}

// NewTable returns an empty table with the given label name and features
func NewTable(label string, features []feature.Feature) *Table {
	return &Table{Label: label, Features: features}
}

/*
Add takes a row of feature values and its label and appends them to the
table, or returns ErrRowLength if the row does not have a value per feature.
*/
func (t *Table) Add(row []float64, label bool) error {
	if len(row) != len(t.Features) {
		return ErrRowLength
	}
	t.Rows = append(t.Rows, row)
	t.Labels = append(t.Labels, label)
	return nil
}

/*
AddRaw takes the raw textual values of a row, in the order of the table's
features, and its raw label, parses them and adds the row to the table.
*/
func (t *Table) AddRaw(values []string, label string) error {
	if len(values) != len(t.Features) {
		return ErrRowLength
	}
	row, err := ParseRow(t.Features, values)
	if err != nil {
		return err
	}
	l, err := ParseLabel(label)
	if err != nil {
		return err
	}
	return t.Add(row, l)
}

// Count returns the number of rows in the table
func (t *Table) Count() int {
	return len(t.Rows)
}

/*
PointSet returns a point set with the table's rows and labels, the types of
its features and the given minimum split size, or an error.
*/
func (t *Table) PointSet(minSplitSize int) (*PointSet, error) {
	return New(t.Rows, t.Labels, feature.Types(t.Features), minSplitSize)
}

/*
FormatRow takes the index of a row and returns its values formatted by the
table's features.
*/
func (t *Table) FormatRow(i int) []string {
	values := make([]string, len(t.Features))
	for j, f := range t.Features {
		values[j] = f.Format(t.Rows[i][j])
	}
	return values
}

/*
ParseRow takes a slice of features and the raw values for each of them and
returns the parsed feature vector or an error.
*/
func ParseRow(features []feature.Feature, values []string) ([]float64, error) {
	row := make([]float64, len(features))
	for j, f := range features {
		v, err := f.Parse(strings.TrimSpace(values[j]))
		if err != nil {
			return nil, err
		}
		row[j] = v
	}
	return row, nil
}

/*
ParseLabel takes a raw label value and returns it as a boolean. It accepts the
values understood by strconv.ParseBool plus "yes" and "no".
*/
func ParseLabel(s string) (bool, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	l, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid label value %q", s)
	}
	return l, nil
}

// FormatLabel returns the textual representation of a label
func FormatLabel(l bool) string {
	return strconv.FormatBool(l)
}

/*
Writer is an interface for a destination to which the rows of a table
can be written to.
*/
type Writer interface {
	// Write will attempt to write the given rows with their labels
	// and will return the actually written number of rows and an
	// error (if not all rows could be written)
	Write(ctx context.Context, rows [][]float64, labels []bool) (int, error)
	// Count returns the total number of rows written
	// to the writer
	Count() int
	// Flush ensures any pending written operations finish
	// before returning. It returns an error if that cannot
	// be ensured.
	Flush() error
}

/*
WriteTable takes a context, a Writer and a table, writes all the rows of the
table onto the writer and flushes it.
*/
func WriteTable(ctx context.Context, w Writer, t *Table) error {
	_, err := w.Write(ctx, t.Rows, t.Labels)
	if err != nil {
		return err
	}
	return w.Flush()
}
