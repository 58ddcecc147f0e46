package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pbanos/sapling/tree"
	"github.com/pbanos/sapling/tree/json"
	"github.com/spf13/cobra"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInput   string
	dataInput   string
	labelsInput string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of a tree",
		Long:  `Test the performance of a tree against a test data set, reporting its accuracy, precision, recall and F1 score`,
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
			testingSet, err := config.readTable(ctx, config.dataInput, config.labelsInput, t.Label, t.Features)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading testing set: %v\n", err)
				os.Exit(3)
			}
			config.Logf("Testing tree against testing set with %d points...", testingSet.Count())
			report, err := t.Test(ctx, testingSet.Rows, testingSet.Labels)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
			fmt.Println(report)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", fmt.Sprintf("location of the data to test the tree against: %s (defaults to STDIN, interpreted as CSV)", locationHelp))
	cmd.PersistentFlags().StringVarP(&(config.labelsInput), "labels", "l", "", "path to a NumPy (.npy) file with the labels when the input is a NumPy features file")
	cmd.PersistentFlags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to test will be read and parsed as JSON (required)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}

func loadTree(ctx context.Context, filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := json.ReadJSONTree(ctx, tree.NewMemoryNodeStore(), f)
	if err != nil {
		err = fmt.Errorf("parsing tree in JSON from %s: %v", filepath, err)
	}
	return t, err
}
