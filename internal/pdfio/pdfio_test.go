// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/internal/pdftest"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

func TestOpen_Invalid(t *testing.T) {
	tests := map[string][]byte{
		"empty":     nil,
		"text":      []byte("hello world"),
		"truncated": pdftest.Document(t, 1)[:64],
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Open("in.pdf", data)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidInput)
			assert.Contains(t, err.Error(), "in.pdf")
		})
	}
}

func TestPageCount(t *testing.T) {
	n, err := PageCount("doc.pdf", pdftest.Document(t, 4))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestWrite_RoundTrip(t *testing.T) {
	ctx, err := Open("doc.pdf", pdftest.Document(t, 3))
	require.NoError(t, err)

	out, err := Write(ctx)
	require.NoError(t, err)

	n, err := PageCount("out.pdf", out)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOutline_NoneIsEmpty(t *testing.T) {
	entries, err := Outline(pdftest.Document(t, 2))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRotations_Unrotated(t *testing.T) {
	rots, err := Rotations("doc.pdf", pdftest.Document(t, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, rots)
}

func TestPageSizes_InOrder(t *testing.T) {
	sizes, err := PageSizes(pdftest.Document(t, 3))
	require.NoError(t, err)
	require.Len(t, sizes, 3)
	for i, s := range sizes {
		assert.InDelta(t, pdftest.PageWidth(i+1), s.Width, 0.5, "page %d", i+1)
		assert.InDelta(t, pdftest.PageHeight, s.Height, 0.5, "page %d", i+1)
	}
}

func TestInspect(t *testing.T) {
	info, err := Inspect("doc.pdf", pdftest.Document(t, 2))
	require.NoError(t, err)
	assert.Equal(t, "doc.pdf", info.Name)
	assert.Equal(t, 2, info.Pages)
	assert.Len(t, info.Sizes, 2)
	assert.Equal(t, []int{0, 0}, info.Rotations)
	assert.Empty(t, info.Outline)
}
