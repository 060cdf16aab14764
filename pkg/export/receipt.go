package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptData holds the fields rendered onto an order receipt.
type ReceiptData struct {
	OrderID         string
	CustomerName    string
	CustomerPhone   string
	TransactionTime string
	PickupLocation  string
	PaymentMethod   string
	Status          string
	PrintMode       string
	ColorPages      int
	BwPages         int
	Copies          int
	ColorRange      string
	GrayscaleRange  string
	GrossAmount     int64
	OriginalName    string
}

// ReceiptRenderer renders order receipts as single-page PDFs.
type ReceiptRenderer struct{}

// NewReceiptRenderer constructs a receipt renderer.
func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{}
}

// Render produces the receipt PDF bytes.
func (r *ReceiptRenderer) Render(data ReceiptData) ([]byte, error) {
	if data.OrderID == "" {
		return nil, fmt.Errorf("receipt requires an order id")
	}
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "NITIPRINT ORDER RECEIPT", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	rows := [][2]string{
		{"Order ID", data.OrderID},
		{"Customer", data.CustomerName},
		{"Phone", data.CustomerPhone},
		{"Time", data.TransactionTime},
		{"Pickup", data.PickupLocation},
		{"Payment", strings.ToUpper(data.PaymentMethod)},
		{"Status", data.Status},
		{"Print mode", data.PrintMode},
		{"Color pages", fmt.Sprintf("%d (%s)", data.ColorPages, orDash(data.ColorRange))},
		{"B/W pages", fmt.Sprintf("%d (%s)", data.BwPages, orDash(data.GrayscaleRange))},
		{"Copies", fmt.Sprintf("%dx", data.Copies)},
		{"Total", fmt.Sprintf("Rp %d", data.GrossAmount)},
		{"File", data.OriginalName},
	}

	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(38, 7, row[0], "1", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, row[1], "1", 1, "", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(rangeStr string) string {
	if rangeStr == "" {
		return "-"
	}
	return rangeStr
}
