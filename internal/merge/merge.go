// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge concatenates PDFs and images into one document and adds an
// outline with one bookmark per source file.
package merge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/pdiddy/pdf-toolkit/internal/convert"
	"github.com/pdiddy/pdf-toolkit/internal/imaging"
	"github.com/pdiddy/pdf-toolkit/internal/pdfio"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Result is a merged document and the outline that was written into it.
type Result struct {
	PDF   []byte
	TOC   []types.TOCEntry
	Pages int
}

// part is one input normalized to PDF.
type part struct {
	name  string
	data  []byte
	pages int
}

// Merge appends every input in order: PDF pages as they are, each image as
// one letter page. The outline of the result has one entry per input,
// titled with its name and pointing at its first page; outlines already
// present in the inputs are replaced.
func Merge(ctx context.Context, inputs []types.Input) (Result, error) {
	if len(inputs) == 0 {
		return Result{}, types.Errorf(types.KindInvalidInput, "", "no files to merge")
	}

	parts := make([]part, 0, len(inputs))
	toc := make([]types.TOCEntry, 0, len(inputs))
	next := 1
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		p, err := normalize(ctx, in)
		if err != nil {
			return Result{}, err
		}
		toc = append(toc, types.TOCEntry{Title: in.Name, Page: next})
		next += p.pages
		parts = append(parts, p)
	}

	merged, err := concat(parts)
	if err != nil {
		return Result{}, err
	}

	out, err := writeOutline(merged, toc)
	if err != nil {
		return Result{}, err
	}
	return Result{PDF: out, TOC: toc, Pages: next - 1}, nil
}

// normalize turns an input into a PDF part, rendering images to a page.
func normalize(ctx context.Context, in types.Input) (part, error) {
	kind := imaging.Detect(in.Data)
	switch {
	case kind == imaging.KindPDF:
		n, err := pdfio.PageCount(in.Name, in.Data)
		if err != nil {
			return part{}, err
		}
		if n == 0 {
			return part{}, types.Errorf(types.KindInvalidInput, in.Name, "%s has no pages", in.Name)
		}
		return part{name: in.Name, data: in.Data, pages: n}, nil
	case kind.IsImage():
		data, err := convert.ImagePage(ctx, in)
		if err != nil {
			return part{}, err
		}
		return part{name: in.Name, data: data, pages: 1}, nil
	}
	return part{}, types.Errorf(types.KindInvalidInput, in.Name,
		"%s is not a PDF or supported image (pdf, png, jpg, jpeg)", in.Name)
}

func concat(parts []part) ([]byte, error) {
	if len(parts) == 1 {
		return parts[0].data, nil
	}
	readers := make([]io.ReadSeeker, len(parts))
	names := make([]string, len(parts))
	for i, p := range parts {
		readers[i] = bytes.NewReader(p.data)
		names[i] = p.name
	}
	var buf bytes.Buffer
	if err := api.MergeRaw(readers, &buf, false, pdfio.Config()); err != nil {
		return nil, fmt.Errorf("merging %s: %w", strings.Join(names, ", "), err)
	}
	return buf.Bytes(), nil
}

func writeOutline(doc []byte, toc []types.TOCEntry) ([]byte, error) {
	bms := make([]pdfcpu.Bookmark, len(toc))
	for i, e := range toc {
		bms[i] = pdfcpu.Bookmark{Title: e.Title, PageFrom: e.Page}
	}
	var buf bytes.Buffer
	if err := api.AddBookmarks(bytes.NewReader(doc), &buf, bms, true, pdfio.Config()); err != nil {
		return nil, fmt.Errorf("writing outline: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultOutputName is the download name offered when the user gives none:
// T1_Docs_<client>_2024.pdf, or T1_Docs_2024.pdf without a client.
func DefaultOutputName(client string) string {
	client = strings.TrimSpace(client)
	if client == "" {
		return "T1_Docs_2024.pdf"
	}
	return fmt.Sprintf("T1_Docs_%s_2024.pdf", client)
}
