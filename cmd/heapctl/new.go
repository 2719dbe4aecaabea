package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronicleforge/yendors-curse-sub005/heap"
)

var newCapacity int

func init() {
	cmd := newNewCmd()
	cmd.Flags().IntVar(&newCapacity, "capacity", 0, "Region capacity in bytes (0 = default)")
	rootCmd.AddCommand(cmd)
}

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <snapshot>",
		Short: "Create an empty heap snapshot",
		Long: `The new command creates a snapshot of a freshly initialized, empty heap.
Useful for bootstrapping test fixtures and for exercising a load path
without a prior engine run.

Example:
  heapctl new empty.yheap
  heapctl new empty.yheap --capacity 8388608`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNew(args)
		},
	}
	return cmd
}

func runNew(args []string) error {
	path := args[0]

	ctx, err := heap.New(heap.Options{Strategy: heap.StrategyZone, Capacity: newCapacity})
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}
	defer func() { _ = ctx.Release() }()

	if err := ctx.SaveFile(path); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	printInfo("Created empty snapshot: %s\n", path)
	return nil
}
