package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
)

// MaxRowInsertionsPerStatement is the maximum number
// of rows that are inserted with a single insert command
// by a Writer. Writing more will result in making more
// insertion commands.
const MaxRowInsertionsPerStatement = 10

/*
Adapter is an interface for the SQL dialect specifics of a database.
*/
type Adapter interface {
	// DB returns the database handle to run statements on
	DB() *sql.DB
	// Placeholder returns the placeholder for the i-th (starting at 1)
	// argument of a statement
	Placeholder(i int) string
	// ColumnType returns the SQL type of the column for a feature type
	ColumnType(feature.Type) string
	// LabelColumnType returns the SQL type of the label column
	LabelColumnType() string
	// Close closes the database handle
	Close() error
}

/*
QuoteIdentifier takes a table or column name and returns it quoted to be used
in a statement, or an error if the name cannot be used.
*/
func QuoteIdentifier(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty identifier")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`identifier '%s' contains invalid character '"'`, name)
	}
	return fmt.Sprintf(`"%s"`, name), nil
}

func quoteColumns(label string, features []feature.Feature) ([]string, error) {
	columns := make([]string, 0, len(features)+1)
	for _, f := range features {
		if f.Name() == label {
			return nil, fmt.Errorf("label %s cannot be a feature", label)
		}
		c, err := QuoteIdentifier(f.Name())
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
	}
	c, err := QuoteIdentifier(label)
	if err != nil {
		return nil, err
	}
	return append(columns, c), nil
}

/*
ReadTable takes a context, an Adapter, the name of a database table, the name
of the label column and the features, and returns a dataset.Table with all the
rows in the database table, or an error. NULL values are rejected.
*/
func ReadTable(ctx context.Context, a Adapter, table, label string, features []feature.Feature) (*dataset.Table, error) {
	qtable, err := QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	columns, err := quoteColumns(label, features)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), qtable)
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "querying table %s", table)
	}
	defer rows.Close()
	t := dataset.NewTable(label, features)
	cells := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range cells {
		dest[i] = &cells[i]
	}
	values := make([]string, len(features))
	for n := 1; rows.Next(); n++ {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning row %d of table %s", n, table)
		}
		for j, c := range cells {
			if !c.Valid {
				return nil, fmt.Errorf("row %d of table %s has a NULL value in column %s", n, table, columns[j])
			}
		}
		for j := range features {
			values[j] = cells[j].String
		}
		err = t.AddRaw(values, cells[len(features)].String)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing row %d of table %s", n, table)
		}
	}
	err = rows.Err()
	if err != nil {
		return nil, errors.Wrapf(err, "reading table %s", table)
	}
	return t, nil
}

type writer struct {
	a        Adapter
	table    string
	columns  []string
	features []feature.Feature
	count    int
}

/*
NewWriter takes a context, an Adapter, the name of a database table, the name
of the label column and the features, ensures the database table exists and
returns a dataset.Writer that inserts rows into it.
*/
func NewWriter(ctx context.Context, a Adapter, table, label string, features []feature.Feature) (dataset.Writer, error) {
	qtable, err := QuoteIdentifier(table)
	if err != nil {
		return nil, err
	}
	columns, err := quoteColumns(label, features)
	if err != nil {
		return nil, err
	}
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (", qtable))
	for j, f := range features {
		createStmtBuf.WriteString(fmt.Sprintf("%s %s NOT NULL, ", columns[j], a.ColumnType(f.Type())))
	}
	createStmtBuf.WriteString(fmt.Sprintf("%s %s NOT NULL)", columns[len(features)], a.LabelColumnType()))
	_, err = a.DB().ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return nil, errors.Wrapf(err, "ensuring table %s exists", table)
	}
	return &writer{a: a, table: qtable, columns: columns, features: features}, nil
}

func (w *writer) Write(ctx context.Context, rows [][]float64, labels []bool) (int, error) {
	if len(rows) != len(labels) {
		return 0, dataset.ErrLabelCount
	}
	var written int
	for start := 0; start < len(rows); start += MaxRowInsertionsPerStatement {
		end := start + MaxRowInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		err := w.insert(ctx, rows[start:end], labels[start:end])
		if err != nil {
			return written, err
		}
		written += end - start
		w.count += end - start
	}
	return written, nil
}

func (w *writer) insert(ctx context.Context, rows [][]float64, labels []bool) error {
	var insertStmtBuf bytes.Buffer
	insertStmtBuf.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", w.table, strings.Join(w.columns, ", ")))
	args := make([]interface{}, 0, len(rows)*len(w.columns))
	for i, row := range rows {
		if len(row) != len(w.features) {
			return dataset.ErrRowLength
		}
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString("(")
		for j, f := range w.features {
			if j > 0 {
				insertStmtBuf.WriteString(", ")
			}
			args = append(args, cellValue(f, row[j]))
			insertStmtBuf.WriteString(w.a.Placeholder(len(args)))
		}
		var l int
		if labels[i] {
			l = 1
		}
		args = append(args, l)
		insertStmtBuf.WriteString(fmt.Sprintf(", %s)", w.a.Placeholder(len(args))))
	}
	_, err := w.a.DB().ExecContext(ctx, insertStmtBuf.String(), args...)
	if err != nil {
		return errors.Wrapf(err, "inserting %d rows into %s", len(rows), w.table)
	}
	return nil
}

func cellValue(f feature.Feature, v float64) interface{} {
	switch f.Type() {
	case feature.Boolean:
		if v == 0 {
			return 0
		}
		return 1
	case feature.Categorical:
		return f.Format(v)
	default:
		return v
	}
}

func (w *writer) Count() int {
	return w.count
}

func (w *writer) Flush() error {
	return nil
}
