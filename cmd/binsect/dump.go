package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/binsect/accessor"
)

var (
	dumpOffset int
	dumpSize   int
	dumpWidth  int
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpOffset, "offset", 0, "Window start within the file")
	cmd.Flags().IntVar(&dumpSize, "size", accessor.UntilEnd, "Window size (-1 = to end of file)")
	cmd.Flags().IntVar(&dumpWidth, "width", 16, "Bytes per output line")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Hex dump of a file window",
		Long: `The dump command hex-dumps a window of a binary file.

Example:
  binsect dump firmware.bin
  binsect dump firmware.bin --offset 512 --size 256
  binsect dump firmware.bin --width 8 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]
	if dumpWidth < 1 {
		return fmt.Errorf("invalid width %d", dumpWidth)
	}

	printVerbose("Opening window: %s offset=%d size=%d\n", path, dumpOffset, dumpSize)

	a, err := openWindow(path, dumpOffset, dumpSize)
	if err != nil {
		return err
	}
	defer a.Close()

	if jsonOut {
		data, err := io.ReadAll(a)
		if err != nil {
			return fmt.Errorf("failed to read window: %w", err)
		}
		return printJSON(map[string]interface{}{
			"file":   path,
			"offset": a.RootWindowOffset(),
			"size":   a.Size(),
			"data":   hex.EncodeToString(data),
		})
	}

	line := make([]byte, dumpWidth)
	for a.Available() > 0 {
		off := a.RootWindowOffset() + int64(a.Cursor())
		n, err := a.Read(line)
		if err != nil {
			return fmt.Errorf("failed to read window: %w", err)
		}
		printInfo("%08x  %-*s  %s\n",
			off, 3*dumpWidth, formatHex(line[:n]), formatASCII(line[:n]))
	}
	return nil
}

func formatHex(p []byte) string {
	out := make([]byte, 0, 3*len(p))
	for i, b := range p {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hex.EncodeToString([]byte{b})...)
	}
	return string(out)
}

func formatASCII(p []byte) string {
	out := make([]byte, len(p))
	for i, b := range p {
		if b >= 0x20 && b < 0x7f {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
