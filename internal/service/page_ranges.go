package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FormatPageRanges encodes a set of page numbers as a comma-separated list
// of runs, e.g. {1,2,3,5,7,8,9} -> "1-3,5,7-9". Empty input yields "".
func FormatPageRanges(pages []int) string {
	if len(pages) == 0 {
		return ""
	}
	sorted := make([]int, len(pages))
	copy(sorted, pages)
	sort.Ints(sorted)

	var tokens []string
	start, end := sorted[0], sorted[0]
	flush := func() {
		if start == end {
			tokens = append(tokens, strconv.Itoa(start))
		} else {
			tokens = append(tokens, fmt.Sprintf("%d-%d", start, end))
		}
	}
	for _, page := range sorted[1:] {
		if page == end+1 {
			end = page
			continue
		}
		flush()
		start, end = page, page
	}
	flush()
	return strings.Join(tokens, ",")
}

// ParsePageRanges decodes the run-length format produced by
// FormatPageRanges. An empty string yields an empty set.
func ParsePageRanges(encoded string) ([]int, error) {
	if encoded == "" {
		return []int{}, nil
	}
	pages := make([]int, 0)
	for _, token := range strings.Split(encoded, ",") {
		if lo, hi, found := strings.Cut(token, "-"); found {
			start, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("invalid range token %q", token)
			}
			end, err := strconv.Atoi(hi)
			if err != nil || end <= start {
				return nil, fmt.Errorf("invalid range token %q", token)
			}
			for page := start; page <= end; page++ {
				pages = append(pages, page)
			}
			continue
		}
		page, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid page token %q", token)
		}
		pages = append(pages, page)
	}
	return pages, nil
}
