/*
Package mongodataset reads and writes tables of labeled points from and to a
MongoDB collection, with a document per point holding a field per feature
plus one for the label.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// DefaultCollection is the collection used when none is given
const DefaultCollection = "points"

/*
Collection is a MongoDB collection of labeled points. It can be read into a
dataset.Table and it is a dataset.Writer.
*/
type Collection struct {
	session  *mgo.Session
	name     string
	label    string
	features []feature.Feature
	count    int
}

/*
Open takes a MongoDB database session, the name of a collection on the
session's default database, the name of the label field and the features,
and returns a Collection that works on it, or an error if the fields cannot
be used or the indexes on them cannot be ensured.
*/
func Open(session *mgo.Session, collection, label string, features []feature.Feature) (*Collection, error) {
	if collection == "" {
		collection = DefaultCollection
	}
	c := &Collection{session: session, name: collection, label: label, features: features}
	err := c.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return c, nil
}

/*
ReadTable reads every document in the collection and returns a dataset.Table
with them. Documents missing a feature or the label are rejected.
*/
func (c *Collection) ReadTable(ctx context.Context) (*dataset.Table, error) {
	t := dataset.NewTable(c.label, c.features)
	iter := c.collection().Find(nil).Iter()
	defer iter.Close()
	var doc bson.M
	values := make([]string, len(c.features))
	for n := 1; iter.Next(&doc); n++ {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}
		for j, f := range c.features {
			v, ok := doc[f.Name()]
			if !ok || v == nil {
				return nil, fmt.Errorf("document %d has no value for feature %s", n, f.Name())
			}
			values[j] = fmt.Sprintf("%v", v)
		}
		l, ok := doc[c.label]
		if !ok || l == nil {
			return nil, fmt.Errorf("document %d has no label %s", n, c.label)
		}
		err = t.AddRaw(values, fmt.Sprintf("%v", l))
		if err != nil {
			return nil, errors.Wrapf(err, "parsing document %d", n)
		}
		doc = nil
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", c.name)
	}
	return t, nil
}

/*
Write inserts a document per row into the collection. Boolean feature values
and labels are stored as booleans, categorical values as their text and
continuous values as numbers.
*/
func (c *Collection) Write(ctx context.Context, rows [][]float64, labels []bool) (int, error) {
	if len(rows) != len(labels) {
		return 0, dataset.ErrLabelCount
	}
	if len(rows) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(c.features) {
			return 0, dataset.ErrRowLength
		}
		doc := make(bson.M, len(row)+1)
		for j, f := range c.features {
			doc[f.Name()] = fieldValue(f, row[j])
		}
		doc[c.label] = labels[i]
		docs = append(docs, doc)
	}
	err := ctx.Err()
	if err != nil {
		return 0, err
	}
	err = c.collection().Insert(docs...)
	if err != nil {
		return 0, errors.Wrapf(err, "inserting %d documents into %s", len(docs), c.name)
	}
	c.count += len(docs)
	return len(docs), nil
}

func fieldValue(f feature.Feature, v float64) interface{} {
	switch f.Type() {
	case feature.Boolean:
		return v != 0
	case feature.Categorical:
		return f.Format(v)
	default:
		return v
	}
}

// Count returns the number of documents written
func (c *Collection) Count() int {
	return c.count
}

// Flush is a no-op, as documents are inserted on Write
func (c *Collection) Flush() error {
	return nil
}

func (c *Collection) ensureIndexes() error {
	for _, f := range c.features {
		if f.Name() == c.label {
			return fmt.Errorf("label %s cannot be a feature", c.label)
		}
	}
	for _, name := range append(fieldNames(c.features), c.label) {
		err := validateFieldName(name)
		if err != nil {
			return err
		}
	}
	index := mgo.Index{
		Key:        []string{c.label},
		Background: true,
	}
	return c.collection().EnsureIndex(index)
}

func fieldNames(features []feature.Feature) []string {
	names := make([]string, len(features))
	for i, f := range features {
		names[i] = f.Name()
	}
	return names
}

func validateFieldName(name string) error {
	if name == "_id" {
		return fmt.Errorf("invalid field name %q: reserved collection field", "_id")
	}
	if name == "" {
		return fmt.Errorf("empty field name")
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid field name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

func (c *Collection) collection() *mgo.Collection {
	return c.session.DB("").C(c.name)
}
