package models

import "time"

// PrintMode selects how a confirmed order is billed. When grayscale, pages
// analyzed as color are billed as black & white at confirmation time.
type PrintMode string

const (
	PrintModeColor     PrintMode = "color"
	PrintModeGrayscale PrintMode = "grayscale"
)

// OrderStatus values produced by this service or the admin surface. Arbitrary
// strings are tolerated on update for compatibility with older admin clients.
type OrderStatus string

const (
	StatusPendingVerification OrderStatus = "pending_verification"
	StatusProcessing          OrderStatus = "processing"
	StatusReady               OrderStatus = "ready"
	StatusCompleted           OrderStatus = "completed"
	StatusCancelled           OrderStatus = "cancelled"
)

// KnownStatus reports whether the status is one this service understands.
func KnownStatus(s OrderStatus) bool {
	switch s {
	case StatusPendingVerification, StatusProcessing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order is the permanent record of a confirmed print order. FilePath and
// ProofPath reference files that must exist until the order is deleted.
type Order struct {
	OrderID         string      `db:"order_id" json:"orderId"`
	CustomerName    string      `db:"customer_name" json:"customerName"`
	CustomerPhone   string      `db:"customer_phone" json:"customerPhone"`
	TransactionTime time.Time   `db:"transaction_time" json:"transactionTime"`
	PaymentMethod   string      `db:"payment_method" json:"paymentMethod"`
	Status          OrderStatus `db:"status" json:"status"`
	GrossAmount     int64       `db:"gross_amount" json:"grossAmount"`
	ColorPages      int         `db:"color_pages" json:"colorPages"`
	BwPages         int         `db:"bw_pages" json:"bwPages"`
	Copies          int         `db:"copies" json:"copies"`
	ColorPageRange  string      `db:"color_page_range" json:"colorPageRange"`
	BwPageRange     string      `db:"bw_page_range" json:"grayscalePageRange"`
	OriginalName    string      `db:"original_name" json:"originalName"`
	FilePath        string      `db:"file_path" json:"filePath"`
	ProofPath       string      `db:"proof_path" json:"proofPath"`
	PickupLocation  string      `db:"pickup_location" json:"pickupLocation"`
	PrintMode       PrintMode   `db:"print_mode" json:"printMode"`
}

// OrderFilter narrows order listing queries.
type OrderFilter struct {
	PickupLocation string
}

// OrderFiles pairs the two on-disk artifacts belonging to one order.
type OrderFiles struct {
	OrderID   string `db:"order_id"`
	FilePath  string `db:"file_path"`
	ProofPath string `db:"proof_path"`
}
