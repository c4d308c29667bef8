// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Content types of produced artifacts.
const (
	ContentTypePDF = "application/pdf"
	ContentTypeZIP = "application/zip"
)

// Input is one uploaded buffer together with the name the user gave it.
// An ordered []Input is the input document set of a request.
type Input struct {
	// Name is the display name, usually the uploaded file name.
	Name string `json:"name" yaml:"name"`

	// Data is the raw file content.
	Data []byte `json:"-" yaml:"-"`
}

// PageRange is an inclusive, 1-based range of pages with Start <= End.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// String renders r the way it is written in a range specification.
func (r PageRange) String() string {
	if r.Start == r.End {
		return fmt.Sprintf("%d", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// Len returns the number of pages r covers.
func (r PageRange) Len() int {
	return r.End - r.Start + 1
}

// SplitSpec names one output of a split: the pages to take and the file
// name to store them under.
type SplitSpec struct {
	// Pages is a comma-separated range specification such as "1-3,5,7-9".
	Pages string `json:"pages" yaml:"pages"`

	// Filename is the name of the resulting PDF.
	Filename string `json:"filename" yaml:"filename"`
}

// TOCEntry is one outline bookmark of a merged document.
type TOCEntry struct {
	Title string `json:"title" yaml:"title"`
	Page  int    `json:"page" yaml:"page"`
}

// Artifact is a produced file: a PDF or a ZIP of PDFs.
type Artifact struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"content_type" yaml:"content_type"`
	Data        []byte `json:"-" yaml:"-"`
}

// Direction is the sense of a page rotation.
type Direction string

const (
	Clockwise        Direction = "cw"
	CounterClockwise Direction = "ccw"
)

// ParseDirection accepts cw/ccw and the spelled-out and left/right aliases
// used by the web form.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cw", "right", "clockwise":
		return Clockwise, nil
	case "ccw", "left", "counterclockwise", "counter-clockwise", "anticlockwise":
		return CounterClockwise, nil
	}
	return "", Errorf(KindInvalidInput, s, "unknown rotation direction %q (use cw or ccw)", s)
}

// EnsurePDFExt appends ".pdf" to name unless it already ends with it
// (case-insensitively).
func EnsurePDFExt(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}

// BaseName returns name without directory and extension.
func BaseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
