/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/feature"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a PostgreSQL database connection URL and a maximum number of open
connections (0 for no limit) and returns an Adapter that works on the database
or an error if it fails to open it.
*/
func New(url string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxConns)
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Placeholder(i int) string {
	return fmt.Sprintf("$%d", i)
}

func (a *adapter) ColumnType(t feature.Type) string {
	switch t {
	case feature.Boolean:
		return "INTEGER"
	case feature.Categorical:
		return "TEXT"
	default:
		return "DOUBLE PRECISION"
	}
}

func (a *adapter) LabelColumnType() string {
	return "INTEGER"
}

func (a *adapter) Close() error {
	return a.db.Close()
}
