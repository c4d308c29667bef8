// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds fixture documents and images for tests. Page i of
// a generated document is PageWidth(i) points wide, so page order survives
// every operation and can be checked through page sizes alone.
package pdftest

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

// PageHeight is the height of every generated page.
const PageHeight = 500.0

// PageWidth returns the width in points of page i (1-based) of a document
// generated by Document.
func PageWidth(i int) float64 {
	return 200 + float64(i)*10
}

// Document returns an n-page PDF whose page i is labeled "Page i" and
// PageWidth(i) points wide.
func Document(t testing.TB, n int) []byte {
	t.Helper()
	return DocumentWithWidths(t, widths(n)...)
}

// DocumentWithWidths returns a PDF with one page per width.
func DocumentWithWidths(t testing.TB, pageWidths ...float64) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetCreationDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.SetModificationDate(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	doc.SetFont("Helvetica", "", 24)
	for i, w := range pageWidths {
		doc.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: PageHeight})
		doc.Text(20, 60, fmt.Sprintf("Page %d", i+1))
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))
	return buf.Bytes()
}

// Widths returns the page widths Document(n) produces, in order.
func Widths(pages ...int) []float64 {
	out := make([]float64, len(pages))
	for i, p := range pages {
		out[i] = PageWidth(p)
	}
	return out
}

func widths(n int) []float64 {
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return Widths(pages...)
}

// PNG returns a w x h PNG filled with c.
func PNG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, fill(w, h, c)))
	return buf.Bytes()
}

// JPEG returns a w x h JPEG filled with c.
func JPEG(t testing.TB, w, h int, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, fill(w, h, c), &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func fill(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}
