package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	labelsInput   string
	metadataInput string
	label         string
	setOutput     string
	labelsOutput  string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Manage sets of data",
		Long:  `Convert sets of labeled data between CSV, SQLite3, PostgreSQL, MongoDB and NumPy`,
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
			config.Logf("Dumping %d points into output set...", t.Count())
			err = config.writeTable(ctx, config.setOutput, config.labelsOutput, t)
			if err != nil {
				fmt.Fprintf(os.Stderr, "writing output set: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", fmt.Sprintf("location of the input set: %s (defaults to STDIN, interpreted as CSV)", locationHelp))
	cmd.PersistentFlags().StringVarP(&(config.labelsInput), "labels", "l", "", "path to a NumPy (.npy) file with the labels when the input is a NumPy features file")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.label), "label", "c", "", "name of the boolean label column (defaults to the label in the metadata)")
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", fmt.Sprintf("location of the output set: %s (defaults to STDOUT in CSV)", locationHelp))
	cmd.PersistentFlags().StringVar(&(config.labelsOutput), "output-labels", "", "path to a NumPy (.npy) file for the labels when the output is a NumPy features file")
	cmd.AddCommand(splitCmd(config))
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
