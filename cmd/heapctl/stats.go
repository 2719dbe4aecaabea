package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chronicleforge/yendors-curse-sub005/heap/verify"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <snapshot>",
		Short: "Show block usage statistics",
		Long: `The stats command walks a snapshot's block chain and reports usage:
live and free block counts, byte totals, overhead, and fragmentation.

Example:
  heapctl stats save.yheap
  heapctl stats save.yheap --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	path := args[0]

	printVerbose("Reading snapshot: %s\n", path)

	info, contents, err := readSnapshot(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := verify.Blocks(contents, int(info.Used)); err != nil {
		return fmt.Errorf("snapshot structure invalid: %w", err)
	}

	census := verify.TakeCensus(contents, int(info.Used))

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":         path,
			"used":         info.Used,
			"live_blocks":  census.LiveBlocks,
			"live_bytes":   census.LiveBytes,
			"free_blocks":  census.FreeBlocks,
			"free_bytes":   census.FreeBytes,
			"largest_free": census.LargestFree,
		})
	}

	p := message.NewPrinter(language.English)
	printInfo("\nSnapshot Statistics:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Used: %s\n", p.Sprintf("%d bytes", info.Used))
	printInfo("  Live blocks: %s\n", p.Sprintf("%d (%d bytes)", census.LiveBlocks, census.LiveBytes))
	printInfo("  Free blocks: %s\n", p.Sprintf("%d (%d bytes)", census.FreeBlocks, census.FreeBytes))
	printInfo("  Largest free block: %s\n", p.Sprintf("%d bytes", census.LargestFree))
	if info.Used > 0 {
		frag := float64(census.FreeBytes) / float64(info.Used) * 100
		printInfo("  Fragmentation: %.1f%%\n", frag)
	}

	return nil
}
