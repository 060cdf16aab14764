package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitiprint/nitiprint-api/internal/dto"
	"github.com/nitiprint/nitiprint-api/internal/models"
	appErrors "github.com/nitiprint/nitiprint-api/pkg/errors"
	"github.com/nitiprint/nitiprint-api/pkg/response"
)

type adminOrderService interface {
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	BulkDelete(ctx context.Context, orderIDs []string) (*dto.BulkDeleteResponse, error)
	Receipt(ctx context.Context, orderID string) ([]byte, error)
}

type stagingAdminStore interface {
	ListStaged() ([]models.StagedFile, error)
	DeleteStaged(relPaths []string) (int, []string)
}

// AdminHandler exposes the back-office order and staging endpoints.
type AdminHandler struct {
	orders  adminOrderService
	staging stagingAdminStore
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(orders adminOrderService, staging stagingAdminStore) *AdminHandler {
	return &AdminHandler{orders: orders, staging: staging}
}

// ListOrders godoc
// @Summary List orders
// @Tags Admin
// @Produce json
// @Param pickupLocation query string false "Filter by pickup branch"
// @Success 200 {object} response.Envelope
// @Security BasicAuth
// @Router /admin/orders [get]
func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter := models.OrderFilter{PickupLocation: c.Query("pickupLocation")}
	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, orders, nil)
}

// UpdateStatus godoc
// @Summary Update an order's status
// @Tags Admin
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param payload body dto.UpdateStatusRequest true "New status"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BasicAuth
// @Router /admin/orders/{orderId}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "status is required"))
		return
	}
	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("orderId"), req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"orderId": c.Param("orderId"), "status": req.Status}, nil)
}

// BulkDelete godoc
// @Summary Delete orders and their files
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.BulkDeleteRequest true "Order IDs"
// @Success 200 {object} response.Envelope
// @Security BasicAuth
// @Router /admin/orders/bulk-delete [post]
func (h *AdminHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.OrderIDs) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "orderIds is required"))
		return
	}
	result, err := h.orders.BulkDelete(c.Request.Context(), req.OrderIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Receipt godoc
// @Summary Render an order receipt PDF
// @Tags Admin
// @Produce application/pdf
// @Param orderId path string true "Order ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Security BasicAuth
// @Router /admin/orders/{orderId}/receipt [get]
func (h *AdminHandler) Receipt(c *gin.Context) {
	pdf, err := h.orders.Receipt(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.Param("orderId")+"-receipt.pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListTempFiles godoc
// @Summary List staged uploads awaiting confirmation
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BasicAuth
// @Router /admin/temp-files [get]
func (h *AdminHandler) ListTempFiles(c *gin.Context) {
	files, err := h.staging.ListStaged()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staged uploads"))
		return
	}
	response.JSON(c, http.StatusOK, files, nil)
}

// DeleteTempFiles godoc
// @Summary Delete staged uploads
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.DeleteTempFilesRequest true "Staged file handles"
// @Success 200 {object} response.Envelope
// @Security BasicAuth
// @Router /admin/temp-files/delete [post]
func (h *AdminHandler) DeleteTempFiles(c *gin.Context) {
	var req dto.DeleteTempFilesRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.FilePaths) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filePaths is required"))
		return
	}
	deleted, errs := h.staging.DeleteStaged(req.FilePaths)
	response.JSON(c, http.StatusOK, dto.DeleteTempFilesResponse{Deleted: deleted, Errors: errs}, nil)
}
