package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nitiprint/nitiprint-api/internal/dto"
	"github.com/nitiprint/nitiprint-api/internal/rasterize"
	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
)

type analysisStager interface {
	Stage(content []byte, filename string, now time.Time) (string, error)
}

// AnalysisService rasterizes an uploaded document, classifies every page as
// color or grayscale, and stages the original bytes for later promotion.
type AnalysisService struct {
	rasterizer rasterize.Rasterizer
	classifier *PageClassifier
	stager     analysisStager
	metrics    *MetricsService
	logger     *zap.Logger
	now        func() time.Time
}

// NewAnalysisService constructs the service.
func NewAnalysisService(rasterizer rasterize.Rasterizer, classifier *PageClassifier, stager analysisStager, metrics *MetricsService, logger *zap.Logger) *AnalysisService {
	if classifier == nil {
		classifier = NewPageClassifier()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		rasterizer: rasterizer,
		classifier: classifier,
		stager:     stager,
		metrics:    metrics,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Analyze renders the document, classifies pages in page order, and stages
// the original under a fresh unique name. Converter failure is fatal to the
// request; an undecodable page falls back to grayscale and is only logged.
func (s *AnalysisService) Analyze(ctx context.Context, content []byte, originalName string) (*dto.AnalyzeResponse, error) {
	pages, err := s.rasterizer.Render(ctx, content)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrRenderFailed.Code, appErrors.ErrRenderFailed.Status, appErrors.ErrRenderFailed.Message)
	}

	colorPages := make([]int, 0, len(pages))
	bwPages := make([]int, 0, len(pages))
	for _, page := range pages {
		if page.DecodeErr != nil {
			s.logger.Warn("page image undecodable, classified grayscale",
				zap.Int("page", page.Number), zap.Error(page.DecodeErr))
		}
		isColor := s.classifier.Classify(page.Image)
		s.metrics.ObservePageClassified(isColor)
		if isColor {
			colorPages = append(colorPages, page.Number)
		} else {
			bwPages = append(bwPages, page.Number)
		}
	}

	clean := SanitizeFilename(originalName)
	unique := uuid.NewString() + "-" + clean
	handle, err := s.stager.Stage(content, unique, s.now())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stage uploaded document")
	}

	return &dto.AnalyzeResponse{
		ColorPages: len(colorPages),
		BwPages:    len(bwPages),
		Details: dto.AnalyzeRangeDetails{
			ColorPageRange:     FormatPageRanges(colorPages),
			GrayscalePageRange: FormatPageRanges(bwPages),
		},
		TempFilename: handle,
		OriginalName: clean,
	}, nil
}

// SanitizeFilename replaces every character outside [a-zA-Z0-9.-_] with an
// underscore so client-supplied names are safe as path components.
func SanitizeFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
