package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/dataset/csv"
	"github.com/pbanos/sapling/dataset/mongodataset"
	"github.com/pbanos/sapling/dataset/npy"
	"github.com/pbanos/sapling/dataset/sqldataset"
	"github.com/pbanos/sapling/dataset/sqldataset/pgadapter"
	"github.com/pbanos/sapling/dataset/sqldataset/sqlite3adapter"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/feature/yaml"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
)

const mongoDialTimeout = 10 * time.Second

// sourceKind identifies where a table is read from or written to
type sourceKind int

const (
	csvSource sourceKind = iota
	sqlite3Source
	postgreSQLSource
	mongoSource
	npySource
)

func sourceKindFor(location string) sourceKind {
	switch {
	case strings.HasPrefix(location, "postgresql://"), strings.HasPrefix(location, "postgres://"):
		return postgreSQLSource
	case strings.HasPrefix(location, "mongodb://"):
		return mongoSource
	case strings.HasSuffix(location, ".db"):
		return sqlite3Source
	case strings.HasSuffix(location, ".npy"):
		return npySource
	}
	return csvSource
}

const locationHelp = "a CSV (.csv) file, a SQLite3 (.db) file, a PostgreSQL DB connection URL, a MongoDB connection URL or a NumPy (.npy) features file"

/*
readMetadata reads the features from the YML metadata file at the given path
and returns them with the label name, taken from labelFlag if set or from the
metadata otherwise.
*/
func (rcc *rootCmdConfig) readMetadata(path, labelFlag string) (string, []feature.Feature, error) {
	rcc.Logf("Reading features from metadata at %s...", path)
	md, err := yaml.ReadFeaturesFromFile(path)
	if err != nil {
		return "", nil, err
	}
	label := md.Label
	if labelFlag != "" {
		label = labelFlag
	}
	if label == "" {
		return "", nil, fmt.Errorf("required label flag was not set and metadata declares no label")
	}
	for _, f := range md.Features {
		if f.Name() == label {
			return "", nil, fmt.Errorf("label %s cannot be a feature", label)
		}
	}
	rcc.Logf("Features from metadata read")
	return label, md.Features, nil
}

/*
readTable reads a table from the given location. An empty location is
STDIN interpreted as CSV. NumPy tables need the labels file path.
*/
func (rcc *rootCmdConfig) readTable(ctx context.Context, location, labelsLocation, label string, features []feature.Feature) (*dataset.Table, error) {
	switch sourceKindFor(location) {
	case postgreSQLSource:
		rcc.Logf("Creating PostgreSQL adapter for url %s to read table %s...", location, rcc.env.SQLTable)
		adapter, err := pgadapter.New(location, 0)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.ReadTable(ctx, adapter, rcc.env.SQLTable, label, features)
	case sqlite3Source:
		rcc.Logf("Creating SQLite3 adapter for file %s to read table %s...", location, rcc.env.SQLTable)
		adapter, err := sqlite3adapter.New(location)
		if err != nil {
			return nil, err
		}
		defer adapter.Close()
		return sqldataset.ReadTable(ctx, adapter, rcc.env.SQLTable, label, features)
	case mongoSource:
		c, closer, err := rcc.openMongoCollection(location, label, features)
		if err != nil {
			return nil, err
		}
		defer closer()
		return c.ReadTable(ctx)
	case npySource:
		if labelsLocation == "" {
			return nil, fmt.Errorf("required labels flag was not set for NumPy input %s", location)
		}
		rcc.Logf("Reading NumPy features from %s and labels from %s...", location, labelsLocation)
		return npy.ReadTableFromFilePaths(location, labelsLocation, label, features)
	}
	if location == "" {
		rcc.Logf("Reading CSV table from STDIN...")
	} else {
		rcc.Logf("Opening %s to read CSV table...", location)
	}
	return csv.ReadTableFromFilePath(location, label, features)
}

/*
writeTable writes a table to the given location. An empty location is
STDOUT written as CSV. NumPy tables need the labels file path.
*/
func (rcc *rootCmdConfig) writeTable(ctx context.Context, location, labelsLocation string, t *dataset.Table) error {
	switch sourceKindFor(location) {
	case postgreSQLSource:
		rcc.Logf("Creating PostgreSQL adapter for url %s to dump table %s...", location, rcc.env.SQLTable)
		adapter, err := pgadapter.New(location, 0)
		if err != nil {
			return err
		}
		defer adapter.Close()
		return rcc.writeSQLTable(ctx, adapter, t)
	case sqlite3Source:
		rcc.Logf("Creating SQLite3 adapter for file %s to dump table %s...", location, rcc.env.SQLTable)
		adapter, err := sqlite3adapter.New(location)
		if err != nil {
			return err
		}
		defer adapter.Close()
		return rcc.writeSQLTable(ctx, adapter, t)
	case mongoSource:
		c, closer, err := rcc.openMongoCollection(location, t.Label, t.Features)
		if err != nil {
			return err
		}
		defer closer()
		return dataset.WriteTable(ctx, c, t)
	case npySource:
		if labelsLocation == "" {
			return fmt.Errorf("required labels output flag was not set for NumPy output %s", location)
		}
		return writeNpyTable(location, labelsLocation, t)
	}
	f := os.Stdout
	if location != "" {
		rcc.Logf("Creating %s to dump CSV table...", location)
		var err error
		f, err = os.Create(location)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return csv.WriteTable(ctx, f, t)
}

func (rcc *rootCmdConfig) writeSQLTable(ctx context.Context, adapter sqldataset.Adapter, t *dataset.Table) error {
	w, err := sqldataset.NewWriter(ctx, adapter, rcc.env.SQLTable, t.Label, t.Features)
	if err != nil {
		return err
	}
	return dataset.WriteTable(ctx, w, t)
}

func (rcc *rootCmdConfig) openMongoCollection(location, label string, features []feature.Feature) (*mongodataset.Collection, func(), error) {
	rcc.Logf("Connecting to MongoDB at %s to use collection %s...", location, rcc.env.MongoCollection)
	session, err := mgo.DialWithTimeout(location, mongoDialTimeout)
	if err != nil {
		return nil, nil, errors.Wrap(err, "connecting to MongoDB")
	}
	c, err := mongodataset.Open(session, rcc.env.MongoCollection, label, features)
	if err != nil {
		session.Close()
		return nil, nil, err
	}
	return c, session.Close, nil
}

func writeNpyTable(featuresPath, labelsPath string, t *dataset.Table) error {
	ff, err := os.Create(featuresPath)
	if err != nil {
		return err
	}
	defer ff.Close()
	lf, err := os.Create(labelsPath)
	if err != nil {
		return err
	}
	defer lf.Close()
	return npy.WriteTable(ff, lf, t)
}
