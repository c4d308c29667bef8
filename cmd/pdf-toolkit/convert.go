// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/convert"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [images...]",
	Short: "Convert PNG and JPEG images to letter-size PDF pages",
	Long: `Convert scales each image to fit an 8.5x11 inch page at 300 DPI,
keeping its aspect ratio and centering it on a white background. All images
go into one PDF in argument order. With --each, every image becomes its own
PDF in --out-dir and existing outputs are skipped.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file (default <first image>.pdf)")
	convertCmd.Flags().Bool("each", false, "write one PDF per image instead of a combined PDF")
	convertCmd.Flags().String("out-dir", ".", "output directory for --each")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PNG or JPEG images")
	}
	images, err := readInputs(args)
	if err != nil {
		return err
	}

	if each, _ := cmd.Flags().GetBool("each"); each {
		outDir, _ := cmd.Flags().GetString("out-dir")
		result := convert.ConvertEach(context.Background(), images, outDir, os.Stdout)
		if result.HasFailures() {
			return fmt.Errorf("%d image(s) failed conversion", result.Failed)
		}
		return nil
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = convert.OutputName(images[0].Name)
	}
	pdf, err := convert.ImagesToPDF(context.Background(), images)
	if err != nil {
		return err
	}
	output = types.EnsurePDFExt(output)
	if err := writeOutput(output, pdf); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "converted %d image(s) -> %s\n", len(images), output)
	return nil
}
