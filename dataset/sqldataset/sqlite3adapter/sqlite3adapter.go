/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"

	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/feature"

	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes the path to a SQLite3 database file and returns an Adapter that
works on the database or an error if it fails to open it. The file is created
if it does not exist.
*/
func New(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite3 does not allow concurrent writers
	db.SetMaxOpenConns(1)
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) Placeholder(i int) string {
	return "?"
}

func (a *adapter) ColumnType(t feature.Type) string {
	switch t {
	case feature.Boolean:
		return "INTEGER"
	case feature.Categorical:
		return "TEXT"
	default:
		return "REAL"
	}
}

func (a *adapter) LabelColumnType() string {
	return "INTEGER"
}

func (a *adapter) Close() error {
	return a.db.Close()
}
