package service

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPageRanges(t *testing.T) {
	cases := []struct {
		name  string
		pages []int
		want  string
	}{
		{"empty", nil, ""},
		{"single", []int{3}, "3"},
		{"run", []int{1, 2, 3}, "1-3"},
		{"mixed", []int{1, 2, 3, 5, 7, 8, 9}, "1-3,5,7-9"},
		{"unsorted input", []int{9, 1, 8, 3, 2, 7, 5}, "1-3,5,7-9"},
		{"two adjacent singles", []int{4, 6}, "4,6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, FormatPageRanges(tc.pages))
		})
	}
}

func TestParsePageRanges(t *testing.T) {
	pages, err := ParsePageRanges("1-3,5,7-9")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 5, 7, 8, 9}, pages)

	pages, err = ParsePageRanges("")
	require.NoError(t, err)
	require.Empty(t, pages)

	_, err = ParsePageRanges("5-3")
	require.Error(t, err)

	_, err = ParsePageRanges("a,2")
	require.Error(t, err)
}

func TestPageRangesRoundTrip(t *testing.T) {
	sets := [][]int{
		{1},
		{1, 2, 3, 4, 5},
		{2, 4, 6, 8},
		{1, 2, 4, 5, 9, 10, 11, 30},
	}
	for _, pages := range sets {
		decoded, err := ParsePageRanges(FormatPageRanges(pages))
		require.NoError(t, err)
		require.Equal(t, pages, decoded)
	}
}
