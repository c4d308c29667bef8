// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf-toolkit/internal/pdfio"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "Show page count, rotation, sizes and outline of PDFs",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("format", "text", "output format: text, json or yaml")
	inspectCmd.Flags().Bool("json", false, "shorthand for --format json")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more PDF files")
	}
	format, _ := cmd.Flags().GetString("format")
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		format = "json"
	}

	inputs, err := readInputs(args)
	if err != nil {
		return err
	}
	infos := make([]pdfio.Info, 0, len(inputs))
	for _, in := range inputs {
		info, err := pdfio.Inspect(in.Name, in.Data)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(infos)
	case "text", "":
		for _, info := range infos {
			printInfo(info)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
}

func printInfo(info pdfio.Info) {
	fmt.Fprintf(os.Stdout, "%s: %d page(s)\n", info.Name, info.Pages)
	for i, size := range info.Sizes {
		fmt.Fprintf(os.Stdout, "  page %-4d %7.1f x %-7.1f pt  rotate %d\n",
			i+1, size.Width, size.Height, info.Rotations[i])
	}
	if len(info.Outline) > 0 {
		fmt.Fprintln(os.Stdout, "  outline:")
		for _, e := range info.Outline {
			fmt.Fprintf(os.Stdout, "    p.%-4d %s\n", e.Page, e.Title)
		}
	}
}
