// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf-toolkit/internal/rotate"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate [file]",
	Short: "Rotate every page of a PDF",
	Long: `Rotate turns every page by 90, 180 or 270 degrees, clockwise (cw,
right) or counterclockwise (ccw, left). The angle is added to each page's
existing rotation; page content is not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runRotate,
}

func init() {
	rotateCmd.Flags().IntP("degrees", "d", 90, "rotation in degrees: 90, 180 or 270")
	rotateCmd.Flags().String("direction", "cw", "cw (right) or ccw (left)")
	rotateCmd.Flags().StringP("output", "o", "", "output file (default <name>_rotated.pdf next to the input)")

	rootCmd.AddCommand(rotateCmd)
}

func runRotate(cmd *cobra.Command, args []string) error {
	degrees, _ := cmd.Flags().GetInt("degrees")
	dirFlag, _ := cmd.Flags().GetString("direction")
	dir, err := types.ParseDirection(dirFlag)
	if err != nil {
		return err
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}
	in := inputs[0]

	res, err := rotate.Rotate(context.Background(), in.Name, in.Data, degrees, dir)
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = filepath.Join(filepath.Dir(args[0]), rotate.OutputName(in.Name))
	}
	output = types.EnsurePDFExt(output)
	if err := writeOutput(output, res.PDF); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d page(s) rotated %d degrees %s -> %s\n", res.Pages, degrees, dir, output)
	return nil
}
