package main

import (
	"github.com/spf13/cobra"

	"github.com/binsect/accessor"
)

var (
	stringsOffset int
	stringsSize   int
	stringsMin    int
	stringsGaps   bool
)

func init() {
	cmd := newStringsCmd()
	cmd.Flags().IntVar(&stringsOffset, "offset", 0, "Window start within the file")
	cmd.Flags().IntVar(&stringsSize, "size", accessor.UntilEnd, "Window size (-1 = to end of file)")
	cmd.Flags().IntVar(&stringsMin, "min", 4, "Minimum string length to report")
	cmd.Flags().BoolVar(&stringsGaps, "gaps", false, "Report the window regions no string covers")
	rootCmd.AddCommand(cmd)
}

func newStringsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strings <file>",
		Short: "Find printable strings in a file window",
		Long: `The strings command scans a window of a binary file for runs of
printable ASCII characters.

Example:
  binsect strings firmware.bin
  binsect strings firmware.bin --min 8 --offset 4096
  binsect strings firmware.bin --gaps
  binsect strings firmware.bin --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrings(args)
		},
	}
	return cmd
}

type foundString struct {
	Offset int64  `json:"offset"`
	Text   string `json:"text"`
}

func runStrings(args []string) error {
	path := args[0]

	a, err := openWindow(path, stringsOffset, stringsSize)
	if err != nil {
		return err
	}
	defer a.Close()

	var found []foundString
	for a.Available() > 0 {
		rem := a.Remaining()
		n := 0
		for n < len(rem) && rem[n] >= 0x20 && rem[n] < 0x7f {
			n++
		}
		if n >= stringsMin {
			found = append(found, foundString{
				Offset: a.RootWindowOffset() + int64(a.Cursor()),
				Text:   string(rem[:n]),
			})
			if stringsGaps {
				// Mark the span so the gap report sees it as covered.
				a.AddCoverageRecord(a.Cursor(), n, 0, nil, true)
			}
		}
		// Skip the run and the byte that ended it.
		skip := n + 1
		if skip > a.Available() {
			skip = a.Available()
		}
		if _, err := a.Next(skip); err != nil {
			return err
		}
	}

	printVerbose("Scanned %d bytes, found %d strings\n", a.Size(), len(found))

	var gaps []gapSpan
	if stringsGaps {
		gaps = coverageGaps(a)
	}

	if jsonOut {
		out := map[string]interface{}{
			"file":    path,
			"strings": found,
		}
		if stringsGaps {
			out["gaps"] = gaps
		}
		return printJSON(out)
	}
	for _, s := range found {
		printInfo("%08x  %s\n", s.Offset, s.Text)
	}
	if stringsGaps {
		printInfo("\nUncovered regions:\n")
		for _, g := range gaps {
			printInfo("%08x  %d bytes\n", g.Offset, g.Size)
		}
	}
	return nil
}

type gapSpan struct {
	Offset int64 `json:"offset"`
	Size   int   `json:"size"`
}

// coverageGaps consolidates the accessor's coverage log and returns the
// window stretches no record covers, in file offsets.
func coverageGaps(a *accessor.Accessor) []gapSpan {
	a.SummarizeCoverage(nil, nil)

	var gaps []gapSpan
	pos := 0
	for _, r := range a.CoverageRecords() {
		if r.Offset > pos {
			gaps = append(gaps, gapSpan{
				Offset: a.RootWindowOffset() + int64(pos),
				Size:   r.Offset - pos,
			})
		}
		if r.End() > pos {
			pos = r.End()
		}
	}
	if pos < a.Size() {
		gaps = append(gaps, gapSpan{
			Offset: a.RootWindowOffset() + int64(pos),
			Size:   a.Size() - pos,
		})
	}
	return gaps
}
