// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio wraps the pdfcpu calls shared by every operation: library
// configuration, parsing with input-error classification, and read-only
// inspection of page count, outline, rotation and page size.
//
// Documents rewritten by pdfcpu (merge, split, rotate) are not
// byte-identical across runs: every write stamps a fresh ModDate and file ID.
package pdfio

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

var disableConfigDir sync.Once

// Config returns a fresh pdfcpu configuration. Validation is relaxed so
// slightly non-conforming real-world files are still accepted. pdfcpu's
// on-disk config directory is disabled so the process stays stateless.
func Config() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Open parses and validates data as a PDF. Parse failures are reported as
// InvalidInput naming the input.
func Open(name string, data []byte) (*model.Context, error) {
	if len(data) == 0 {
		return nil, types.Errorf(types.KindInvalidInput, name, "%s is empty", name)
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), Config())
	if err != nil {
		return nil, types.WrapInvalid(name, err)
	}
	return ctx, nil
}

// PageCount returns the number of pages of the PDF in data.
func PageCount(name string, data []byte) (int, error) {
	ctx, err := Open(name, data)
	if err != nil {
		return 0, err
	}
	return ctx.PageCount, nil
}

// Write serializes ctx.
func Write(ctx *model.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Outline returns the document outline flattened depth-first into TOC
// entries. A document without an outline yields an empty slice.
func Outline(data []byte) ([]types.TOCEntry, error) {
	entries := []types.TOCEntry{}
	ctx, err := Open("document", data)
	if err != nil {
		return nil, err
	}
	cat, err := ctx.XRefTable.Catalog()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if _, ok := cat["Outlines"]; !ok {
		return entries, nil
	}

	bms, err := api.Bookmarks(bytes.NewReader(data), Config())
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	var walk func([]pdfcpu.Bookmark)
	walk = func(list []pdfcpu.Bookmark) {
		for _, bm := range list {
			entries = append(entries, types.TOCEntry{Title: bm.Title, Page: bm.PageFrom})
			walk(bm.Kids)
		}
	}
	walk(bms)
	return entries, nil
}

// Rotations returns the /Rotate value of every page, in page order,
// normalized into [0, 360).
func Rotations(name string, data []byte) ([]int, error) {
	ctx, err := Open(name, data)
	if err != nil {
		return nil, err
	}
	rots := make([]int, 0, ctx.PageCount)
	for i := 1; i <= ctx.PageCount; i++ {
		d, _, inh, err := ctx.PageDict(i, false)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		rot := 0
		if inh != nil {
			rot = inh.Rotate
		}
		if r := d.IntEntry("Rotate"); r != nil {
			rot = *r
		}
		rots = append(rots, ((rot%360)+360)%360)
	}
	return rots, nil
}

// PageSize is the media box size of one page in PDF points.
type PageSize struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// PageSizes returns the dimensions of every page, in page order.
func PageSizes(data []byte) ([]PageSize, error) {
	dims, err := api.PageDims(bytes.NewReader(data), Config())
	if err != nil {
		return nil, fmt.Errorf("reading page dimensions: %w", err)
	}
	sizes := make([]PageSize, len(dims))
	for i, d := range dims {
		sizes[i] = PageSize{Width: d.Width, Height: d.Height}
	}
	return sizes, nil
}

// Info summarizes a document for the inspect command.
type Info struct {
	Name      string           `json:"name" yaml:"name"`
	Pages     int              `json:"pages" yaml:"pages"`
	Rotations []int            `json:"rotations" yaml:"rotations"`
	Sizes     []PageSize       `json:"sizes" yaml:"sizes"`
	Outline   []types.TOCEntry `json:"outline" yaml:"outline"`
}

// Inspect gathers page count, rotations, sizes and outline of data.
func Inspect(name string, data []byte) (Info, error) {
	rots, err := Rotations(name, data)
	if err != nil {
		return Info{}, err
	}
	sizes, err := PageSizes(data)
	if err != nil {
		return Info{}, err
	}
	outline, err := Outline(data)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name:      name,
		Pages:     len(rots),
		Rotations: rots,
		Sizes:     sizes,
		Outline:   outline,
	}, nil
}
