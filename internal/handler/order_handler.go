package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nitiprint/nitiprint-api/internal/dto"
	"github.com/nitiprint/nitiprint-api/internal/service"
	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
	"github.com/nitiprint/nitiprint-api/pkg/response"
)

type orderConfirmService interface {
	Confirm(ctx context.Context, req dto.ConfirmOrderRequest, proof service.ProofUpload) (*dto.ConfirmOrderResponse, error)
	Download(ctx context.Context, orderID string) (*service.OrderDownload, error)
}

// OrderHandler exposes the customer-facing order endpoints.
type OrderHandler struct {
	service orderConfirmService
}

// NewOrderHandler constructs the handler.
func NewOrderHandler(service orderConfirmService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Confirm godoc
// @Summary Confirm an order from a staged analysis
// @Tags Orders
// @Accept multipart/form-data
// @Produce json
// @Param orderId formData string true "Order ID"
// @Param totalAmount formData string true "Gross amount"
// @Param customerName formData string true "Customer name"
// @Param customerPhone formData string true "Customer phone"
// @Param colorPages formData int true "Color page count"
// @Param bwPages formData int true "Grayscale page count"
// @Param copies formData int true "Copies"
// @Param paymentMethod formData string true "Payment method"
// @Param tempFilename formData string true "Staged document handle"
// @Param originalName formData string true "Original filename"
// @Param pickupLocation formData string true "Pickup branch"
// @Param printMode formData string false "color or grayscale"
// @Param paymentProof formData file true "Payment proof image"
// @Success 201 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /confirm-order [post]
func (h *OrderHandler) Confirm(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "order service not configured"))
		return
	}
	var req dto.ConfirmOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid order payload"))
		return
	}

	fileHeader, err := c.FormFile("paymentProof")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "payment proof is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open payment proof"))
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to buffer payment proof"))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" {
		ext = ".jpg"
	}

	result, err := h.service.Confirm(c.Request.Context(), req, service.ProofUpload{Content: content, Ext: ext})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Download godoc
// @Summary Download an order's document
// @Tags Orders
// @Produce application/octet-stream
// @Param orderId path string true "Order ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /orders/{orderId}/file [get]
func (h *OrderHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "order service not configured"))
		return
	}
	download, err := h.service.Download(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.OriginalName))
	c.DataFromReader(http.StatusOK, download.SizeBytes, "application/octet-stream", download.File, nil)
}
