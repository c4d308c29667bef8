// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders raster images as US Letter PDF pages, one image
// per page, each image fitted onto a 300 DPI canvas.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/pdf-toolkit/internal/imaging"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

const (
	// pageWidth and pageHeight are US Letter in PDF points.
	pageWidth  = 612.0
	pageHeight = 792.0

	producer = "pdf-toolkit"
)

// epoch is stamped as creation and modification date so that identical
// inputs produce identical bytes.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ImagesToPDF decodes each image, fits it onto a letter canvas and returns
// a PDF with one page per image, in input order.
func ImagesToPDF(ctx context.Context, images []types.Input) ([]byte, error) {
	if len(images) == 0 {
		return nil, types.Errorf(types.KindInvalidInput, "", "no images to convert")
	}

	doc := newDocument()
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		canvas, err := imaging.RenderLetterPNG(img)
		if err != nil {
			return nil, err
		}
		if err := addCanvasPage(doc, i, canvas); err != nil {
			return nil, fmt.Errorf("adding page for %s: %w", img.Name, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ImagePage converts a single image into a one-page PDF.
func ImagePage(ctx context.Context, img types.Input) ([]byte, error) {
	return ImagesToPDF(ctx, []types.Input{img})
}

// OutputName derives the default PDF name for an image: the image's base
// name with a .pdf extension.
func OutputName(imageName string) string {
	base := types.BaseName(imageName)
	if base == "" || base == "." {
		base = "converted"
	}
	return base + ".pdf"
}

func newDocument() *fpdf.Fpdf {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "Letter",
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(true)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(epoch)
	doc.SetModificationDate(epoch)
	doc.SetProducer(producer, false)
	return doc
}

func addCanvasPage(doc *fpdf.Fpdf, index int, canvas []byte) error {
	name := fmt.Sprintf("canvas-%04d", index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}

	doc.AddPage()
	doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(canvas))
	doc.ImageOptions(name, 0, 0, pageWidth, pageHeight, false, opts, 0, "")
	if doc.Err() {
		return doc.Error()
	}
	return nil
}

// BatchResult holds the outcome of converting images to separate PDFs.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of images processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any image failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertEach writes one PDF per image into outDir, named by OutputName.
// Existing outputs are skipped. Per-file status goes to w.
func ConvertEach(ctx context.Context, images []types.Input, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", outDir, err)
		result.Failed = len(images)
		return result
	}

	for _, img := range images {
		outPath := filepath.Join(outDir, OutputName(img.Name))
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", outPath)
			result.Skipped++
			continue
		}

		data, err := ImagePage(ctx, img)
		if err == nil {
			err = os.WriteFile(outPath, data, 0o644)
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", img.Name, err)
			result.Failed++
			continue
		}

		fmt.Fprintf(w, "converted: %s -> %s\n", img.Name, outPath)
		result.Converted++
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}
