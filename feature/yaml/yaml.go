/*
Package yaml provides methods to parse feature.Feature declarations
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"io/ioutil"

	"github.com/pbanos/sapling/feature"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata holds the features described in a metadata document, in the order
they were declared, and the name of the label column if one was given.
*/
type Metadata struct {
	Label    string
	Features []feature.Feature
}

/*
ReadFeatures takes a slice of bytes with feature declarations in YML and
returns the metadata parsed from it or an error.
The YML is expected to be an object containing a features property. The value for this
should be an object with a property for each feature with its name and either
  - the string 'continuous' for continuous features,
  - the string 'boolean' for boolean features,
  - the string 'categorical' for categorical features with numeric codes,
  - or a list of valid values for categorical features.
An optional label property names the column holding the boolean labels.
The order of the features is preserved.
*/
func ReadFeatures(md []byte) (*Metadata, error) {
	metadata := struct {
		Label    string
		Features yaml.MapSlice
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml features")
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata file has no feature information")
	}
	features := make([]feature.Feature, 0, len(metadata.Features))
	for _, item := range metadata.Features {
		fn := fmt.Sprintf("%v", item.Key)
		if fn == metadata.Label {
			return nil, fmt.Errorf("label %s cannot be declared as a feature", fn)
		}
		switch values := item.Value.(type) {
		case string:
			t, err := feature.ParseType(values)
			if err != nil {
				return nil, errors.Wrapf(err, "feature %s", fn)
			}
			f, err := feature.New(fn, t)
			if err != nil {
				return nil, err
			}
			features = append(features, f)
		case []interface{}:
			stringVs := make([]string, 0, len(values))
			for _, v := range values {
				stringVs = append(stringVs, fmt.Sprintf("%v", v))
			}
			features = append(features, feature.NewCategoricalFeature(fn, stringVs))
		default:
			return nil, fmt.Errorf("invalid declaration of type %T for feature %s", item.Value, fn)
		}
	}
	return &Metadata{Label: metadata.Label, Features: features}, nil
}

/*
ReadFeaturesFromFile takes a filepath string, reads its contents and uses
ReadFeatures to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadFeaturesFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading features yml file %s", filepath)
	}
	metadata, err := ReadFeatures(md)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing features yml file %s", filepath)
	}
	return metadata, nil
}
