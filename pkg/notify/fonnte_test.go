package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleSummary() OrderSummary {
	return OrderSummary{
		OrderID:        "NP-1001",
		CustomerName:   "Budi",
		CustomerPhone:  "0812000111",
		PickupLocation: "kampus-a",
		PrintMode:      "grayscale",
		ColorPages:     0,
		BwPages:        5,
		Copies:         2,
		GrossAmount:    15000,
		PaymentMethod:  "qris",
		Filename:       "NP-1001-doc.pdf",
	}
}

func TestNotifySendsMessage(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewFonnteNotifier(FonnteConfig{URL: server.URL, Token: "tok-123", Target: "628120001111"})
	require.NoError(t, notifier.Notify(context.Background(), sampleSummary()))

	require.Equal(t, "tok-123", gotAuth)
	require.Equal(t, "628120001111", gotBody["target"])
	require.Contains(t, gotBody["message"], "NP-1001")
	require.Contains(t, gotBody["message"], "All black & white")
	require.Contains(t, gotBody["message"], "kampus-a")
}

func TestNotifyGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewFonnteNotifier(FonnteConfig{URL: server.URL, Token: "tok", Target: "628"})
	err := notifier.Notify(context.Background(), sampleSummary())
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestNotifyRequiresConfiguration(t *testing.T) {
	notifier := NewFonnteNotifier(FonnteConfig{})
	require.Error(t, notifier.Notify(context.Background(), sampleSummary()))
}

func TestNopNotifier(t *testing.T) {
	require.NoError(t, NopNotifier{}.Notify(context.Background(), sampleSummary()))
}
