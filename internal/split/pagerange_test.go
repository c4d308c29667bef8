// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-toolkit/pkg/types"
)

func TestParsePages(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want []int
	}{
		{"single page", "5", []int{5}},
		{"inclusive range", "2-4", []int{2, 3, 4}},
		{"degenerate range", "3-3", []int{3}},
		{"mixed", "1-3,5,7-9", []int{1, 2, 3, 5, 7, 8, 9}},
		{"requested order kept", "7,1-2", []int{7, 1, 2}},
		{"whitespace", " 1 - 2 , 4 ", []int{1, 2, 4}},
		{"overlap repeats", "1-2,2", []int{1, 2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, err := ParsePages(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Expand(ranges))
		})
	}
}

func TestParsePages_InclusiveSequenceProperty(t *testing.T) {
	for a := 1; a <= 12; a++ {
		for b := a; b <= 12; b++ {
			ranges, err := ParsePages(types.PageRange{Start: a, End: b}.String())
			require.NoError(t, err)

			want := make([]int, 0, b-a+1)
			for p := a; p <= b; p++ {
				want = append(want, p)
			}
			assert.Equal(t, want, Expand(ranges), "range %d-%d", a, b)
		}
	}
}

func TestParsePages_Malformed(t *testing.T) {
	for _, spec := range []string{
		"",
		"   ",
		"a",
		"1-b",
		"5-3",
		"0",
		"0-2",
		"-1",
		"1,,2",
		"1-2-3",
		"1.5",
		"+3",
		"1-+3",
		"2 - +4",
	} {
		t.Run(spec, func(t *testing.T) {
			_, err := ParsePages(spec)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrMalformedRange)
			assert.Equal(t, types.KindMalformedRange, types.KindOf(err))
		})
	}
}

func TestValidate(t *testing.T) {
	ranges, err := ParsePages("1-3,7")
	require.NoError(t, err)

	assert.NoError(t, Validate(ranges, 7))
	assert.NoError(t, Validate(ranges, 10))

	err = Validate(ranges, 6)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrOutOfRange)
	assert.Contains(t, err.Error(), "7")
	assert.Contains(t, err.Error(), "1-6")

	ranges, err = ParsePages("2-12")
	require.NoError(t, err)
	err = Validate(ranges, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2-12")
}
