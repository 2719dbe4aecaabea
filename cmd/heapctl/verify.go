package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronicleforge/yendors-curse-sub005/heap/snapshot"
	"github.com/chronicleforge/yendors-curse-sub005/heap/verify"
)

func init() {
	rootCmd.AddCommand(newVerifyCmd())
}

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <snapshot>",
		Short: "Validate snapshot structure and checksum",
		Long: `The verify command reads a snapshot file and checks it end to end:
header decoding, content checksum, the block chain walk, and the live
allocation count against the header.

Example:
  heapctl verify save.yheap
  heapctl verify save.yheap --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	return cmd
}

func runVerify(args []string) error {
	path := args[0]

	printVerbose("Verifying snapshot: %s\n", path)

	info, contents, err := readSnapshot(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	checksumOK := snapshot.Checksum(contents) == info.Checksum
	chainErr := verify.Blocks(contents, int(info.Used))

	liveOK := false
	if chainErr == nil {
		census := verify.TakeCensus(contents, int(info.Used))
		liveOK = uint64(census.LiveBlocks) == info.LiveAllocs
	}

	result := map[string]interface{}{
		"file":        path,
		"checksum_ok": checksumOK,
		"chain_ok":    chainErr == nil,
		"live_ok":     liveOK,
		"valid":       checksumOK && chainErr == nil && liveOK,
	}
	if chainErr != nil {
		result["chain_error"] = chainErr.Error()
	}

	if jsonOut {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		printInfo("\nVerifying %s...\n\n", path)
		printInfo("  Checksum: %s\n", okString(checksumOK))
		if chainErr != nil {
			printInfo("  Block chain: FAIL (%v)\n", chainErr)
		} else {
			printInfo("  Block chain: ok\n")
			printInfo("  Live count: %s\n", okString(liveOK))
		}
	}

	if chainErr != nil {
		return fmt.Errorf("snapshot structure invalid: %w", chainErr)
	}
	if !checksumOK {
		return fmt.Errorf("checksum mismatch")
	}
	if !liveOK {
		return fmt.Errorf("live allocation count disagrees with header")
	}
	return nil
}

func okString(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}
