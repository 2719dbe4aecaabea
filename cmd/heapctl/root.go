package main

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/chronicleforge/yendors-curse-sub005/heap/snapshot"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Inspect and validate saved-heap snapshot files",
	Long: `heapctl is a tool for inspecting saved-heap snapshot files produced by
the game engine's persistent allocator. It decodes snapshot headers, walks
the saved block chain, verifies checksums, and reports usage statistics
without needing a running engine.`,
	Version: "0.1.0",
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// readSnapshot reads a snapshot file's header and contents.
func readSnapshot(path string) (snapshot.Info, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return snapshot.Info{}, nil, err
	}
	defer f.Close()

	info, err := snapshot.ReadInfo(f)
	if err != nil {
		return snapshot.Info{}, nil, err
	}
	contents := make([]byte, info.Used)
	if _, err := io.ReadFull(f, contents); err != nil {
		return snapshot.Info{}, nil, fmt.Errorf("reading %d content bytes: %w", info.Used, err)
	}
	return info, contents, nil
}
