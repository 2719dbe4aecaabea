package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronicleforge/yendors-curse-sub005/heap/snapshot"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <snapshot>",
		Short: "Decode a snapshot header and report its metadata",
		Long: `The info command decodes a snapshot file's header and displays its
metadata: the saved base address, address stability, used bytes, live
allocation count, and checksum.

Example:
  heapctl info save.yheap
  heapctl info save.yheap --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]

	printVerbose("Reading snapshot header: %s\n", path)

	info, err := snapshot.ReadInfoFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":        path,
			"stable_base": info.StableBase,
			"base":        fmt.Sprintf("0x%X", info.Base),
			"used":        info.Used,
			"live_allocs": info.LiveAllocs,
			"checksum":    fmt.Sprintf("0x%016X", info.Checksum),
		})
	}

	printInfo("\nSnapshot Information:\n")
	printInfo("  File: %s\n", path)
	if stat, err := os.Stat(path); err == nil {
		printInfo("  File size: %d bytes\n", stat.Size())
	}
	printInfo("  Base address: 0x%X\n", info.Base)
	printInfo("  Stable base: %t\n", info.StableBase)
	printInfo("  Used: %d bytes\n", info.Used)
	printInfo("  Live allocations: %d\n", info.LiveAllocs)
	printInfo("  Checksum: 0x%016X\n", info.Checksum)

	return nil
}
