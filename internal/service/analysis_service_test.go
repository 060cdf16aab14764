package service

import (
	"context"
	"errors"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nitiprint/nitiprint-api/internal/rasterize"
	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
)

type stubRasterizer struct {
	pages []rasterize.Page
	err   error
}

func (s *stubRasterizer) Render(context.Context, []byte) ([]rasterize.Page, error) {
	return s.pages, s.err
}

type stubStager struct {
	handles  []string
	contents [][]byte
	err      error
}

func (s *stubStager) Stage(content []byte, filename string, _ time.Time) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	handle := "2025-03-10/" + filename
	s.handles = append(s.handles, handle)
	s.contents = append(s.contents, content)
	return handle, nil
}

func colorPage(n int) rasterize.Page {
	return rasterize.Page{Number: n, Image: solidImage(50, 50, color.RGBA{R: 200, G: 30, B: 30, A: 255})}
}

func grayPage(n int) rasterize.Page {
	return rasterize.Page{Number: n, Image: solidImage(50, 50, color.RGBA{R: 100, G: 100, B: 100, A: 255})}
}

func TestAnalyzePartitionsPages(t *testing.T) {
	rasterizer := &stubRasterizer{pages: []rasterize.Page{
		colorPage(1), grayPage(2), grayPage(3), colorPage(4), colorPage(5), grayPage(6),
	}}
	stager := &stubStager{}
	svc := NewAnalysisService(rasterizer, nil, stager, nil, nil)

	result, err := svc.Analyze(context.Background(), []byte("%PDF"), "my report.pdf")
	require.NoError(t, err)

	require.Equal(t, 3, result.ColorPages)
	require.Equal(t, 3, result.BwPages)
	require.Equal(t, "1,4-5", result.Details.ColorPageRange)
	require.Equal(t, "2-3,6", result.Details.GrayscalePageRange)

	// Every page lands in exactly one bucket.
	require.Equal(t, len(rasterizer.pages), result.ColorPages+result.BwPages)

	// The sanitized original name survives, the staging handle is unique.
	require.Equal(t, "my_report.pdf", result.OriginalName)
	require.True(t, strings.HasSuffix(result.TempFilename, "-my_report.pdf"))
	require.Len(t, stager.handles, 1)
	require.Equal(t, []byte("%PDF"), stager.contents[0])
}

func TestAnalyzeUndecodablePageFallsBackToGrayscale(t *testing.T) {
	rasterizer := &stubRasterizer{pages: []rasterize.Page{
		colorPage(1),
		{Number: 2, Image: nil, DecodeErr: errors.New("bad png")},
	}}
	svc := NewAnalysisService(rasterizer, nil, &stubStager{}, nil, nil)

	result, err := svc.Analyze(context.Background(), []byte("%PDF"), "doc.pdf")
	require.NoError(t, err)
	require.Equal(t, 1, result.ColorPages)
	require.Equal(t, 1, result.BwPages)
	require.Equal(t, "2", result.Details.GrayscalePageRange)
}

func TestAnalyzeRenderFailureIsFatal(t *testing.T) {
	rasterizer := &stubRasterizer{err: errors.New("pdftoppm exploded")}
	svc := NewAnalysisService(rasterizer, nil, &stubStager{}, nil, nil)

	_, err := svc.Analyze(context.Background(), []byte("not a pdf"), "doc.pdf")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	require.Equal(t, appErrors.ErrRenderFailed.Code, appErr.Code)
}

func TestAnalyzeEmptyRangesForUniformDocument(t *testing.T) {
	rasterizer := &stubRasterizer{pages: []rasterize.Page{grayPage(1), grayPage(2)}}
	svc := NewAnalysisService(rasterizer, nil, &stubStager{}, nil, nil)

	result, err := svc.Analyze(context.Background(), []byte("%PDF"), "doc.pdf")
	require.NoError(t, err)
	require.Zero(t, result.ColorPages)
	require.Equal(t, "", result.Details.ColorPageRange)
	require.Equal(t, "1-2", result.Details.GrayscalePageRange)
}

func TestSanitizeFilename(t *testing.T) {
	require.Equal(t, "laporan_akhir_v2_.pdf", SanitizeFilename("laporan akhir(v2).pdf"))
	require.Equal(t, "plain-name_ok.pdf", SanitizeFilename("plain-name_ok.pdf"))
	require.Equal(t, "___", SanitizeFilename("日本語"))
}
