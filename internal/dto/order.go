package dto

import "time"

// ConfirmOrderRequest is the multipart form submitted together with the
// payment proof image.
type ConfirmOrderRequest struct {
	OrderID        string `form:"orderId" binding:"required"`
	TotalAmount    string `form:"totalAmount" binding:"required"`
	CustomerName   string `form:"customerName" binding:"required"`
	CustomerPhone  string `form:"customerPhone" binding:"required"`
	ColorPages     int    `form:"colorPages"`
	BwPages        int    `form:"bwPages"`
	Copies         int    `form:"copies" binding:"required,min=1"`
	PaymentMethod  string `form:"paymentMethod" binding:"required"`
	TempFilename   string `form:"tempFilename" binding:"required"`
	OriginalName   string `form:"originalName" binding:"required"`
	ColorPageRange string `form:"colorPageRange"`
	BwPageRange    string `form:"grayscalePageRange"`
	PickupLocation string `form:"pickupLocation"`
	PrintMode      string `form:"printMode" binding:"omitempty,printmode"`
}

// ConfirmOrderResponse echoes the final billed order back to the customer.
type ConfirmOrderResponse struct {
	OrderID         string    `json:"orderId"`
	ColorPages      int       `json:"colorPages"`
	BwPages         int       `json:"bwPages"`
	Copies          int       `json:"copies"`
	GrossAmount     int64     `json:"grossAmount"`
	TransactionTime time.Time `json:"transactionTime"`
	OriginalName    string    `json:"originalName"`
	CustomerName    string    `json:"customerName"`
}

// UpdateStatusRequest mutates an order's status from the admin surface.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BulkDeleteRequest names the orders to remove, records and files alike.
type BulkDeleteRequest struct {
	OrderIDs []string `json:"orderIds" binding:"required,min=1"`
}

// BulkDeleteResponse reports partial success explicitly.
type BulkDeleteResponse struct {
	DeletedOrders int `json:"deletedOrders"`
	FailedFiles   int `json:"failedFiles"`
}

// DeleteTempFilesRequest names staged artifacts to remove, as relative paths
// inside the staging root.
type DeleteTempFilesRequest struct {
	FilePaths []string `json:"filePaths" binding:"required,min=1"`
}

// DeleteTempFilesResponse reports per-path outcomes.
type DeleteTempFilesResponse struct {
	Deleted int      `json:"deleted"`
	Errors  []string `json:"errors,omitempty"`
}
