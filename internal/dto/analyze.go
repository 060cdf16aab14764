package dto

// AnalyzeResponse reports the classification outcome and the staging handle
// the client must present back when confirming the order.
type AnalyzeResponse struct {
	ColorPages   int                 `json:"colorPages"`
	BwPages      int                 `json:"bwPages"`
	Details      AnalyzeRangeDetails `json:"details"`
	TempFilename string              `json:"tempFilename"`
	OriginalName string              `json:"originalName"`
}

// AnalyzeRangeDetails carries the run-length encoded page sets.
type AnalyzeRangeDetails struct {
	ColorPageRange     string `json:"colorPageRange"`
	GrayscalePageRange string `json:"grayscalePageRange"`
}
