package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/binsect/accessor"
)

var (
	// Global flags
	verbose  bool
	quiet    bool
	jsonOut  bool
	bigEnd   bool
	basePath string
)

var rootCmd = &cobra.Command{
	Use:   "binsect",
	Short: "Inspect and carve binary files",
	Long: `binsect is a tool for inspecting binary files through offset windows.
It hex-dumps regions, carves sub-windows out into new files, and scans for
embedded strings, with byte order and window bounds under explicit control.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&bigEnd, "big-endian", false, "Interpret multi-byte fields big-endian")
	rootCmd.PersistentFlags().StringVar(&basePath, "base", "", "Base directory for relative file arguments")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openWindow opens the named file through the shared --base/--big-endian
// flags. size may be accessor.UntilEnd.
func openWindow(path string, offset, size int) (*accessor.Accessor, error) {
	a, err := accessor.OpenFile(basePath, path, 0, offset, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	order := accessor.Little
	if bigEnd {
		order = accessor.Big
	}
	if err := a.SetEndianness(order); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
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
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
