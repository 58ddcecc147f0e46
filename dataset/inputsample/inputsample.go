/*
Package inputsample provides a way to read a feature vector interactively from
an io.Reader, one value per line.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pbanos/sapling/feature"
)

/*
FeatureValueRequester represents a way to ask
for feature values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(feature.Feature) error
	RejectValueFor(feature.Feature, string) error
}

/*
Reader reads feature vectors from an io.Reader, requesting each value to a
FeatureValueRequester before reading it.
*/
type Reader struct {
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	features              []feature.Feature
}

/*
New takes an io.Reader, a slice of features and a FeatureValueRequester and
returns a Reader.

The parsing expects each value to be presented ending with the
'\n' character, that is in new lines. For every feature, lines
will be read until one holding a valid value for the feature is
found. Non accepted values will be rejected with the
FeatureValueRequester's RejectValueFor method.
*/
func New(r io.Reader, features []feature.Feature, featureValueRequester FeatureValueRequester) *Reader {
	return &Reader{bufio.NewScanner(r), featureValueRequester, features}
}

/*
Read returns the next feature vector, with a value per feature, or an error.
It returns io.EOF if the reader ends before the first value is given.
*/
func (rs *Reader) Read() ([]float64, error) {
	x := make([]float64, len(rs.features))
	for j, f := range rs.features {
		v, err := rs.readValue(f)
		if err == io.EOF && j > 0 {
			err = fmt.Errorf("EOF when requesting value for %s", f.Name())
		}
		if err != nil {
			return nil, err
		}
		x[j] = v
	}
	return x, nil
}

func (rs *Reader) readValue(f feature.Feature) (float64, error) {
	err := rs.featureValueRequester.RequestValueFor(f)
	if err != nil {
		return 0, err
	}
	for rs.scanner.Scan() {
		line := strings.TrimSpace(rs.scanner.Text())
		value, perr := f.Parse(line)
		if perr == nil {
			return value, nil
		}
		err = rs.featureValueRequester.RejectValueFor(f, line)
		if err != nil {
			return 0, err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return 0, err
	}
	return 0, io.EOF
}
