package models

import "time"

// StagedFile describes an uploaded document held in temporary custody until
// its order is confirmed or the retention sweeper reclaims it.
type StagedFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	SizeBytes int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Analysis is the per-document classification outcome: a partition of pages
// 1..N into color and grayscale sets, plus their range encodings.
type Analysis struct {
	ColorPages     []int
	BwPages        []int
	ColorRange     string
	GrayscaleRange string
}

// PageCount returns the total number of classified pages.
func (a Analysis) PageCount() int {
	return len(a.ColorPages) + len(a.BwPages)
}
