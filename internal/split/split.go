// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split extracts named page selections from a PDF into new PDFs
// and bundles several results into one ZIP archive.
package split

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"

	"github.com/pdiddy/pdf-toolkit/internal/pdfio"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ArchiveName is the download name of a multi-file split.
const ArchiveName = "split_pdfs.zip"

// archiveTime is the modification time stored for every archive entry.
var archiveTime = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// selection is a parsed SplitSpec.
type selection struct {
	filename string
	ranges   []types.PageRange
}

// Split builds one PDF per spec containing exactly the requested pages in
// the requested order. All specs are parsed before the document is read,
// so syntax errors surface first; every range is then checked against the
// page count before any output is produced.
func Split(ctx context.Context, name string, src []byte, specs []types.SplitSpec) ([]types.Artifact, error) {
	sels, err := parseSpecs(specs)
	if err != nil {
		return nil, err
	}

	doc, err := pdfio.Open(name, src)
	if err != nil {
		return nil, err
	}
	for _, s := range sels {
		if err := Validate(s.ranges, doc.PageCount); err != nil {
			return nil, fmt.Errorf("%s: %w", s.filename, err)
		}
	}

	out := make([]types.Artifact, 0, len(sels))
	for _, s := range sels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		part, err := pdfcpu.ExtractPages(doc, Expand(s.ranges), false)
		if err != nil {
			return nil, fmt.Errorf("extracting pages for %s: %w", s.filename, err)
		}
		data, err := pdfio.Write(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.filename, err)
		}
		out = append(out, types.Artifact{Name: s.filename, ContentType: types.ContentTypePDF, Data: data})
	}
	return out, nil
}

func parseSpecs(specs []types.SplitSpec) ([]selection, error) {
	if len(specs) == 0 {
		return nil, types.Errorf(types.KindMalformedRange, "", "no page ranges given")
	}
	seen := make(map[string]bool, len(specs))
	sels := make([]selection, 0, len(specs))
	for _, spec := range specs {
		filename, err := outputName(spec.Filename)
		if err != nil {
			return nil, err
		}
		if seen[strings.ToLower(filename)] {
			return nil, types.Errorf(types.KindInvalidInput, filename, "output name %s is used twice", filename)
		}
		seen[strings.ToLower(filename)] = true

		ranges, err := ParsePages(spec.Pages)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		sels = append(sels, selection{filename: filename, ranges: ranges})
	}
	return sels, nil
}

// outputName cleans a user-supplied file name so it is safe as an archive
// entry: directories are stripped and .pdf is appended when missing.
func outputName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, `\`, "/"))
	base := path.Base(name)
	if name == "" || base == "." || base == "/" || base == ".." {
		return "", types.Errorf(types.KindInvalidInput, name, "output file name %q is not usable", name)
	}
	return types.EnsurePDFExt(base), nil
}

// Bundle returns the single PDF when there is one output and a ZIP of all
// outputs, each stored under its name, otherwise.
func Bundle(files []types.Artifact) (types.Artifact, error) {
	switch len(files) {
	case 0:
		return types.Artifact{}, types.Errorf(types.KindInvalidInput, "", "nothing to bundle")
	case 1:
		return files[0], nil
	}
	data, err := Archive(files)
	if err != nil {
		return types.Artifact{}, err
	}
	return types.Artifact{Name: ArchiveName, ContentType: types.ContentTypeZIP, Data: data}, nil
}

// Archive writes files into a deflated ZIP in the given order.
func Archive(files []types.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range files {
		hdr := &zip.FileHeader{Name: f.Name, Method: zip.Deflate, Modified: archiveTime}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("adding %s to archive: %w", f.Name, err)
		}
		if _, err := w.Write(f.Data); err != nil {
			return nil, fmt.Errorf("writing %s to archive: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing archive: %w", err)
	}
	return buf.Bytes(), nil
}
