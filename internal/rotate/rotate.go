// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rotate turns every page of a PDF by a multiple of 90 degrees.
package rotate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/pdf-toolkit/internal/pdfio"
	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// Result is the rotated document and the number of pages turned.
type Result struct {
	PDF   []byte
	Pages int
}

// Request carries the user's rotation parameters.
type Request struct {
	Degrees   int             `validate:"oneof=0 90 180 270"`
	Direction types.Direction `validate:"oneof=cw ccw"`
}

// ClockwiseAngle converts degrees in direction dir into the equivalent
// clockwise angle in [0, 360).
func ClockwiseAngle(degrees int, dir types.Direction) int {
	angle := ((degrees % 360) + 360) % 360
	if dir == types.CounterClockwise {
		angle = (360 - angle) % 360
	}
	return angle
}

// Rotate adds the rotation to every page's existing /Rotate value, modulo
// 360. Degrees must be 0, 90, 180 or 270; page content is not touched.
func Rotate(ctx context.Context, name string, src []byte, degrees int, dir types.Direction) (Result, error) {
	if err := validateRequest(Request{Degrees: degrees, Direction: dir}); err != nil {
		return Result{}, err
	}

	pages, err := pdfio.PageCount(name, src)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	var buf bytes.Buffer
	angle := ClockwiseAngle(degrees, dir)
	if err := api.Rotate(bytes.NewReader(src), &buf, angle, nil, pdfio.Config()); err != nil {
		return Result{}, fmt.Errorf("rotating %s by %d: %w", name, angle, err)
	}
	return Result{PDF: buf.Bytes(), Pages: pages}, nil
}

// OutputName derives the default name of a rotated document.
func OutputName(inputName string) string {
	base := types.BaseName(inputName)
	if base == "" || base == "." {
		base = "document"
	}
	return base + "_rotated.pdf"
}
