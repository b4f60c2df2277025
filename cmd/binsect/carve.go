package main

import (
	"github.com/spf13/cobra"

	"github.com/binsect/accessor"
	"github.com/binsect/accessor/pathres"
)

var (
	carveOffset int
	carveSize   int
	carveDirs   bool
)

func init() {
	cmd := newCarveCmd()
	cmd.Flags().IntVar(&carveOffset, "offset", 0, "Start of the region to carve")
	cmd.Flags().IntVar(&carveSize, "size", accessor.UntilEnd, "Size of the region (-1 = to end of file)")
	cmd.Flags().BoolVar(&carveDirs, "create-dirs", false, "Create missing directories for the output path")
	rootCmd.AddCommand(cmd)
}

func newCarveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carve <file> <output>",
		Short: "Copy a file window into a new file",
		Long: `The carve command copies a window of a binary file into a new file.

Example:
  binsect carve disk.img partition1.bin --offset 1048576 --size 8388608
  binsect carve firmware.bin tail.bin --offset 4096
  binsect carve disk.img out/boot/mbr.bin --size 512 --create-dirs`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCarve(args)
		},
	}
	return cmd
}

func runCarve(args []string) error {
	src, dst := args[0], args[1]

	printVerbose("Carving %s offset=%d size=%d into %s\n", src, carveOffset, carveSize, dst)

	a, err := openWindow(src, carveOffset, carveSize)
	if err != nil {
		return err
	}
	defer a.Close()

	var opts pathres.Options
	if carveDirs {
		opts |= pathres.CreatePath
	}
	if err := a.WriteToFile(basePath, dst, opts, 0o644, 0, accessor.UntilEnd); err != nil {
		return err
	}

	printInfo("Carved %d bytes from %s@%d into %s\n", a.Size(), src, carveOffset, dst)
	return nil
}
