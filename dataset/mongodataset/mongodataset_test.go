package mongodataset

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mgo "gopkg.in/mgo.v2"
)

func TestValidateFieldName(t *testing.T) {
	assert.NoError(t, validateFieldName("age"))
	assert.Error(t, validateFieldName("_id"))
	assert.Error(t, validateFieldName("a.b"))
	assert.Error(t, validateFieldName("$age"))
	assert.Error(t, validateFieldName(""))
}

func TestFieldValue(t *testing.T) {
	zone := feature.NewCategoricalFeature("zone", []string{"north", "south"})
	assert.Equal(t, true, fieldValue(feature.NewBooleanFeature("smoker"), 1))
	assert.Equal(t, false, fieldValue(feature.NewBooleanFeature("smoker"), 0))
	assert.Equal(t, "south", fieldValue(zone, 1))
	assert.Equal(t, 2.5, fieldValue(feature.NewContinuousFeature("age"), 2.5))
}

func TestWriteAndReadTable(t *testing.T) {
	url := os.Getenv("SAPLING_TEST_MONGO_URL")
	if url == "" {
		t.Skip("SAPLING_TEST_MONGO_URL not set")
	}
	session, err := mgo.DialWithTimeout(url, 5*time.Second)
	require.NoError(t, err)
	defer session.Close()
	ctx := context.Background()
	features := []feature.Feature{
		feature.NewBooleanFeature("smoker"),
		feature.NewCategoricalFeature("zone", []string{"north", "south"}),
		feature.NewContinuousFeature("age"),
	}
	name := fmt.Sprintf("points_%d", time.Now().UnixNano())
	c, err := Open(session, name, "sick", features)
	require.NoError(t, err)
	defer session.DB("").C(name).DropCollection()

	table := dataset.NewTable("sick", features)
	require.NoError(t, table.Add([]float64{1, 0, 45}, true))
	require.NoError(t, table.Add([]float64{0, 1, 30.5}, false))
	require.NoError(t, dataset.WriteTable(ctx, c, table))
	assert.Equal(t, 2, c.Count())

	read, err := c.ReadTable(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, table.Rows, read.Rows)
	assert.ElementsMatch(t, table.Labels, read.Labels)
}

func TestOpenRejectsLabelAsFeature(t *testing.T) {
	_, err := Open(nil, "", "age", []feature.Feature{feature.NewContinuousFeature("age")})
	assert.Error(t, err)
}
