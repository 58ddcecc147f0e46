package main

import (
	"fmt"
	"os"

	"github.com/pbanos/sapling"
	"github.com/pbanos/sapling/feature"
	"github.com/pbanos/sapling/tree"
	"github.com/pbanos/sapling/tree/json"
	"github.com/pbanos/sapling/tree/redisstore"
	"github.com/spf13/cobra"
	redis "gopkg.in/redis.v5"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput     string
	labelsInput   string
	metadataInput string
	output        string
	label         string
	maxHeight     int
	minSplitSize  int
	workers       int
	store         string
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a binary decision tree from a set of labeled data to predict its label.`,
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
			trainingSet, err := config.readTable(ctx, config.dataInput, config.labelsInput, label, features)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reading training set: %v\n", err)
				os.Exit(3)
			}
			ns, err := config.nodeStore(features)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(4)
			}
			defer ns.Close(ctx)
			gp := &sapling.GrowthPolicy{MaxHeight: config.maxHeight, MinSplitSize: config.minSplitSize}
			opts := &sapling.GrowOptions{
				Workers:   config.workerCount(),
				NodeStore: ns,
				Logger:    config.logger,
			}
			config.Logf("Growing tree from a set with %d points and %d features to predict %s with %d workers...", trainingSet.Count(), len(features), label, opts.Workers)
			t, err := sapling.Grow(ctx, label, features, trainingSet.Rows, trainingSet.Labels, gp, opts)
			if err != nil {
				fmt.Fprintf(os.Stderr, "growing the tree: %v\n", err)
				os.Exit(5)
			}
			config.Logf("Done")
			config.logger.Debugf("%v", t)
			err = config.outputTree(t)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.dataInput), "input", "i", "", fmt.Sprintf("location of the data to grow the tree from: %s (defaults to STDIN, interpreted as CSV)", locationHelp))
	cmd.PersistentFlags().StringVarP(&(config.labelsInput), "labels", "l", "", "path to a NumPy (.npy) file with the labels when the input is a NumPy features file")
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", "path to a YML file with metadata describing the features available on the input (required)")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the generated tree will be written in JSON format (defaults to STDOUT)")
	cmd.PersistentFlags().StringVarP(&(config.label), "label", "c", "", "name of the boolean label the generated tree should predict (defaults to the label in the metadata)")
	cmd.PersistentFlags().IntVar(&(config.maxHeight), "max-height", sapling.DefaultGrowthPolicy().MaxHeight, "maximum height of the tree nodes, 0 grows a single leaf")
	cmd.PersistentFlags().IntVar(&(config.minSplitSize), "min-split-size", sapling.DefaultGrowthPolicy().MinSplitSize, "minimum number of points on each side of a split")
	cmd.PersistentFlags().IntVarP(&(config.workers), "workers", "w", 0, "number of nodes resolved concurrently (defaults to SAPLING_WORKERS or 1)")
	cmd.PersistentFlags().StringVar(&(config.store), "store", "memory", "node store for the tree being grown: memory or redis (configured with SAPLING_REDIS_* variables)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if gcc.store != "memory" && gcc.store != "redis" {
		return fmt.Errorf("unknown node store %s, valid ones are memory and redis", gcc.store)
	}
	return (&sapling.GrowthPolicy{MaxHeight: gcc.maxHeight, MinSplitSize: gcc.minSplitSize}).Validate()
}

func (gcc *growCmdConfig) workerCount() int {
	if gcc.workers > 0 {
		return gcc.workers
	}
	if gcc.env.Workers > 0 {
		return gcc.env.Workers
	}
	return 1
}

func (gcc *growCmdConfig) nodeStore(features []feature.Feature) (tree.NodeStore, error) {
	if gcc.store != "redis" {
		return tree.NewMemoryNodeStore(), nil
	}
	gcc.Logf("Connecting to Redis at %s to store nodes with prefix %s...", gcc.env.RedisAddr, gcc.env.RedisPrefix)
	rc := redis.NewClient(&redis.Options{
		Addr:     gcc.env.RedisAddr,
		Password: gcc.env.RedisPassword,
		DB:       gcc.env.RedisDB,
	})
	err := rc.Ping().Err()
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to Redis at %s: %v", gcc.env.RedisAddr, err)
	}
	return redisstore.New(rc, gcc.env.RedisPrefix, features), nil
}

func (gcc *growCmdConfig) outputTree(t *tree.Tree) error {
	f := os.Stdout
	if gcc.output != "" {
		var err error
		f, err = os.Create(gcc.output)
		if err != nil {
			return err
		}
		defer f.Close()
	}
	return json.WriteJSONTree(gcc.Context(), t, f)
}
