package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pbanos/sapling/dataset/inputsample"
	"github.com/pbanos/sapling/feature"
	"github.com/spf13/cobra"
)

type predictCmdConfig struct {
	*rootCmdConfig
	treeInput string
	repeat    bool
}

type stdoutFeatureValueRequester struct{}

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the label of a point answering questions",
		Long:  `Use the loaded tree to predict the label of a point answering questions about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := config.Context()
			t, err := loadTree(ctx, config.treeInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			r := inputsample.New(os.Stdin, t.Features, stdoutFeatureValueRequester{})
			for {
				x, err := r.Read()
				if err == io.EOF {
					return
				}
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				leaf, err := t.Leaf(ctx, x)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
				config.logger.WithField("node", leaf.ID).Debug("Reached leaf")
				fmt.Printf("Predicted %s is %v, %.4f of the training points at its leaf are true\n", t.Label, leaf.Prediction.Decision(), leaf.Prediction.Probability())
				if !config.repeat {
					return
				}
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to predict with will be read and parsed as JSON (required)")
	cmd.PersistentFlags().BoolVarP(&(config.repeat), "repeat", "r", false, "keep asking for points until STDIN ends")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	if pcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	fmt.Printf("Please provide the point's %s:\n(%s)\n", f.Name(), validValues(f))
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	fmt.Printf("%q is not a valid value for the point's %s. Please provide %s.\n", value, f.Name(), validValues(f))
	return nil
}

func validValues(f feature.Feature) string {
	switch f := f.(type) {
	case *feature.CategoricalFeature:
		if len(f.AvailableValues()) > 0 {
			return fmt.Sprintf("one of %v", f.AvailableValues())
		}
		return "a numeric category code"
	case *feature.BooleanFeature:
		return "true or false"
	}
	return "a real number"
}
