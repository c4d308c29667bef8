// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/split"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Split a PDF into new PDFs by page range",
	Long: `Split writes one new PDF per page-range specification, containing
exactly the requested pages in the requested order.

Specifications come from a YAML plan file (--plan), from "<range>: <filename>"
lines (--ranges, repeatable), or from a comma-separated range list paired with
--names ("1-3,7" with "a.pdf,b.pdf"). With --zip, several outputs are written
as one split_pdfs.zip archive.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().String("plan", "", "YAML plan file listing outputs (pages, filename)")
	splitCmd.Flags().StringArray("ranges", nil, `"<range>: <filename>" spec, or a comma-separated range list with --names`)
	splitCmd.Flags().StringSlice("names", nil, "output file names paired with the parts of --ranges")
	splitCmd.Flags().String("out-dir", ".", "directory for the outputs")
	splitCmd.Flags().Bool("zip", false, "bundle several outputs into split_pdfs.zip")

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	specs, err := splitSpecsFromFlags(cmd)
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}
	in := inputs[0]

	files, err := split.Split(context.Background(), in.Name, in.Data, specs)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("out-dir")
	if zip, _ := cmd.Flags().GetBool("zip"); zip {
		art, err := split.Bundle(files)
		if err != nil {
			return err
		}
		files = []types.Artifact{art}
	}

	for _, f := range files {
		path := filepath.Join(outDir, f.Name)
		if err := writeOutput(path, f.Data); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "wrote: %s\n", path)
	}
	return nil
}

// splitSpecsFromFlags resolves the outputs from --plan, or from --ranges
// and --names.
func splitSpecsFromFlags(cmd *cobra.Command) ([]types.SplitSpec, error) {
	planFile, _ := cmd.Flags().GetString("plan")
	ranges, _ := cmd.Flags().GetStringArray("ranges")
	names, _ := cmd.Flags().GetStringSlice("names")

	switch {
	case planFile != "":
		return split.LoadPlanFile(planFile)
	case len(ranges) == 0:
		return nil, fmt.Errorf("provide --plan or --ranges")
	case len(names) > 0:
		return split.PairRanges(strings.Join(ranges, ","), names)
	}

	plan, err := split.ParsePlan(strings.Join(ranges, "\n"))
	if err != nil {
		return nil, err
	}
	for _, line := range plan.Skipped {
		fmt.Fprintf(os.Stderr, "Skipping invalid line: %s\n", line)
	}
	return plan.Specs, nil
}
