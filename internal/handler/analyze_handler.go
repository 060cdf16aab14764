package handler

import (
	"context"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nitiprint/nitiprint-api/internal/dto"
	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
	"github.com/nitiprint/nitiprint-api/pkg/response"
)

type analyzeService interface {
	Analyze(ctx context.Context, content []byte, originalName string) (*dto.AnalyzeResponse, error)
}

// AnalyzeHandler exposes document color analysis.
type AnalyzeHandler struct {
	service        analyzeService
	maxUploadBytes int64
}

// NewAnalyzeHandler constructs the handler.
func NewAnalyzeHandler(service analyzeService, maxUploadBytes int64) *AnalyzeHandler {
	return &AnalyzeHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// Analyze godoc
// @Summary Analyze a PDF for color and grayscale pages
// @Tags Analysis
// @Accept multipart/form-data
// @Produce json
// @Param pdfFile formData file true "PDF document"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analyze-pdf [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "analysis service not configured"))
		return
	}
	fileHeader, err := c.FormFile("pdfFile")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pdfFile is required"))
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "only PDF files are accepted"))
		return
	}
	if h.maxUploadBytes > 0 && fileHeader.Size > h.maxUploadBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file exceeds the upload size limit"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer file"))
		return
	}

	result, err := h.service.Analyze(c.Request.Context(), content, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
