package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pbanos/sapling/dataset"
	"github.com/spf13/cobra"
)

type splitCmdConfig struct {
	*setCmdConfig
	splitOutput       string
	splitLabelsOutput string
	splitProbability  int
	seed              int64
}

func splitCmd(setConfig *setCmdConfig) *cobra.Command {
	config := &splitCmdConfig{setCmdConfig: setConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Split a set into an output set and a split set, sending each point to the split set with a given probability`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			label, features, err := config.readMetadata(config.metadataInput, config.label)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			ctx := config.Context()
			t, err := config.readTable(ctx, config.setInput, config.labelsInput, label, features)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading input set: %v\n", err)
				os.Exit(3)
			}
			output, split := splitTable(t, config.splitProbability, rand.New(rand.NewSource(config.seed)))
			config.Logf("Dumping %d points into output set and %d into split set...", output.Count(), split.Count())
			err = config.writeTable(ctx, config.setOutput, config.labelsOutput, output)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing output set: %v\n", err)
				os.Exit(4)
			}
			err = config.writeTable(ctx, config.splitOutput, config.splitLabelsOutput, split)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing split set: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", fmt.Sprintf("location of the split set: %s (required)", locationHelp))
	cmd.Flags().StringVar(&(config.splitLabelsOutput), "split-labels", "", "path to a NumPy (.npy) file for the labels when the split set is a NumPy features file")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a point of the input set is sent to the split set")
	cmd.Flags().Int64Var(&(config.seed), "seed", time.Now().UnixNano(), "seed for the random choice of points")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	err := scc.setCmdConfig.Validate()
	if err != nil {
		return err
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability < 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability must be between 0 and 100, got %d", scc.splitProbability)
	}
	return nil
}

// splitTable sends each row of t to split with probability percent/100.
func splitTable(t *dataset.Table, percent int, r *rand.Rand) (*dataset.Table, *dataset.Table) {
	output := dataset.NewTable(t.Label, t.Features)
	split := dataset.NewTable(t.Label, t.Features)
	for i, row := range t.Rows {
		if r.Intn(100) < percent {
			split.Add(row, t.Labels[i])
		} else {
			output.Add(row, t.Labels[i])
		}
	}
	return output, split
}
