package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OrderSummary carries the fields included in the confirmation message.
type OrderSummary struct {
	OrderID        string
	CustomerName   string
	CustomerPhone  string
	PickupLocation string
	PrintMode      string
	ColorPages     int
	BwPages        int
	Copies         int
	GrossAmount    int64
	PaymentMethod  string
	Filename       string
}

// Notifier delivers an order summary to the shop operator. Failures must
// never affect the order confirmation outcome.
type Notifier interface {
	Notify(ctx context.Context, summary OrderSummary) error
}

// FonnteConfig configures the Fonnte WhatsApp gateway client.
type FonnteConfig struct {
	URL     string
	Token   string
	Target  string
	Timeout time.Duration
}

// FonnteNotifier sends WhatsApp messages through the Fonnte REST API.
type FonnteNotifier struct {
	cfg    FonnteConfig
	client *http.Client
}

// NewFonnteNotifier constructs the notifier with sane defaults.
func NewFonnteNotifier(cfg FonnteConfig) *FonnteNotifier {
	if cfg.URL == "" {
		cfg.URL = "https://api.fonnte.com/send"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &FonnteNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Notify posts the formatted order message to the configured admin number.
func (n *FonnteNotifier) Notify(ctx context.Context, summary OrderSummary) error {
	if n.cfg.Token == "" || n.cfg.Target == "" {
		return fmt.Errorf("fonnte notifier not configured")
	}

	payload, err := json.Marshal(map[string]string{
		"target":  n.cfg.Target,
		"message": formatMessage(summary),
	})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build notification request: %w", err)
	}
	req.Header.Set("Authorization", n.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("fonnte responded %d", resp.StatusCode)
	}
	return nil
}

func formatMessage(s OrderSummary) string {
	mode := "Normal"
	if s.PrintMode == "grayscale" {
		mode = "All black & white"
	}
	return fmt.Sprintf(
		"New order (manual transfer)\n\nPickup: %s\nPrint mode: %s\n\nOrder ID: %s\nName: %s\nPhone: %s\n\nFinal counts:\n- Color: %d pages\n- B/W: %d pages\n- Copies: %dx\n\nTotal: %d\nMethod: %s\n\nFile: %s\n\nPlease verify the payment proof and process the order.",
		s.PickupLocation, mode, s.OrderID, s.CustomerName, s.CustomerPhone,
		s.ColorPages, s.BwPages, s.Copies, s.GrossAmount, s.PaymentMethod, s.Filename,
	)
}

// NopNotifier is used when notification delivery is disabled.
type NopNotifier struct{}

// Notify implements Notifier as a no-op.
func (NopNotifier) Notify(context.Context, OrderSummary) error { return nil }
