// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"strconv"
	"strings"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

// ParsePages parses a range specification such as "1-3,5,7-9" into page
// ranges, in the order written. Each comma-separated part is a page number
// or an inclusive "a-b" range with a <= b; page numbers start at 1.
func ParsePages(spec string) ([]types.PageRange, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, types.Errorf(types.KindMalformedRange, spec, "empty page range")
	}

	parts := strings.Split(spec, ",")
	ranges := make([]types.PageRange, 0, len(parts))
	for _, raw := range parts {
		r, err := parseRange(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseRange(s string) (types.PageRange, error) {
	if s == "" {
		return types.PageRange{}, types.Errorf(types.KindMalformedRange, s, "empty part in page range")
	}

	startStr, endStr, isRange := strings.Cut(s, "-")
	start, err := parsePage(startStr, s)
	if err != nil {
		return types.PageRange{}, err
	}
	if !isRange {
		return types.PageRange{Start: start, End: start}, nil
	}

	end, err := parsePage(endStr, s)
	if err != nil {
		return types.PageRange{}, err
	}
	if end < start {
		return types.PageRange{}, types.Errorf(types.KindMalformedRange, s,
			"page range %q is inverted (%d > %d)", s, start, end)
	}
	return types.PageRange{Start: start, End: end}, nil
}

func parsePage(s, part string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, types.Errorf(types.KindMalformedRange, part, "page range %q: %q is not a page number", part, s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, types.Errorf(types.KindMalformedRange, part, "page range %q: %q is not a page number", part, s)
	}
	if n < 1 {
		return 0, types.Errorf(types.KindMalformedRange, part, "page range %q: pages are numbered from 1", part)
	}
	return n, nil
}

// Expand lists every page the ranges cover, in order. Overlapping ranges
// repeat pages.
func Expand(ranges []types.PageRange) []int {
	n := 0
	for _, r := range ranges {
		n += r.Len()
	}
	pages := make([]int, 0, n)
	for _, r := range ranges {
		for p := r.Start; p <= r.End; p++ {
			pages = append(pages, p)
		}
	}
	return pages
}

// Validate checks that every range lies within [1, pageCount] and names the
// first one that does not.
func Validate(ranges []types.PageRange, pageCount int) error {
	for _, r := range ranges {
		if r.Start < 1 || r.End > pageCount {
			return types.Errorf(types.KindOutOfRange, r.String(),
				"page range %s is outside the document (pages 1-%d)", r, pageCount)
		}
	}
	return nil
}
