package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling/tree/graphviz"
	"github.com/spf13/cobra"
)

type treeCmdConfig struct {
	*rootCmdConfig
	treeInput string
	format    string
	output    string
}

func treeCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &treeCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show a tree",
		Long:  `Show a tree as indented text or render it with graphviz`,
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
			f := os.Stdout
			if config.output != "" {
				f, err = os.Create(config.output)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(3)
				}
				defer f.Close()
			}
			if config.format == "text" {
				fmt.Fprint(f, t)
				return
			}
			format, err := graphviz.ParseFormat(config.format)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			config.Logf("Rendering tree in %s format...", config.format)
			err = graphviz.Render(ctx, t, format, f)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			config.Logf("Done")
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "path to a file from which the tree to show will be read and parsed as JSON (required)")
	cmd.Flags().StringVarP(&(config.format), "format", "f", "text", "output format: text, dot, svg, png or jpg")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "path to the file the tree will be written to (defaults to STDOUT)")
	return cmd
}

func (tcc *treeCmdConfig) Validate() error {
	if tcc.treeInput == "" {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
