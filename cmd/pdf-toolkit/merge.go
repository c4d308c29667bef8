// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/merge"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [files...]",
	Short: "Merge PDFs and images into one PDF with a table of contents",
	Long: `Merge appends the pages of every input in order. PNG and JPEG images
become one letter-size page each. The result gets an outline with one
bookmark per input, titled with the file name and pointing at its first page.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "output file (default T1_Docs_<client>_2024.pdf)")
	mergeCmd.Flags().String("client", "", "client name used in the default output name")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF or image files to merge")
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		client, _ := cmd.Flags().GetString("client")
		output = merge.DefaultOutputName(client)
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}
	res, err := merge.Merge(context.Background(), inputs)
	if err != nil {
		return err
	}
	output = types.EnsurePDFExt(output)
	if err := writeOutput(output, res.PDF); err != nil {
		return err
	}

	for _, e := range res.TOC {
		fmt.Fprintf(os.Stdout, "  p.%-4d %s\n", e.Page, e.Title)
	}
	fmt.Fprintf(os.Stdout, "merged %d file(s), %d page(s) -> %s\n", len(inputs), res.Pages, output)
	return nil
}
