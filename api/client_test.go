// ABOUTME: Tests for the marketplace API client
// ABOUTME: Covers payload normalization, request shaping, and error mapping
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/harperreed/haggle/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&Config{
		BaseURL:        server.URL,
		Token:          "test-token",
		TimeoutSeconds: 5,
	})
}

func TestFetchNegotiation(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/negotiation/neg-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		if r.Header.Get("X-Haggle-Session") == "" {
			t.Error("expected session header")
		}

		_, _ = w.Write([]byte(`{
			"negotiation_id": "neg-1",
			"negotiation_status": "negotiation_countered",
			"pending_response_from": "buyer",
			"current_amount": 45000000,
			"buy_offer": 40000000,
			"inspection_date": "2025-12-15",
			"inspection_time": "10:00 AM",
			"client_data": {"name": "Ada Obi"},
			"property_data": {"type": "Duplex", "location": "Lekki Phase 1"},
			"created_at": "2025-12-01T09:30:00Z"
		}`))
	})

	n, err := client.FetchNegotiation(context.Background(), "neg-1")
	if err != nil {
		t.Fatalf("FetchNegotiation failed: %v", err)
	}

	if n.Status != models.StatusCountered {
		t.Errorf("expected countered status, got %s", n.Status)
	}
	if n.PendingResponseFrom != models.PartyBuyer {
		t.Errorf("expected buyer turn, got %s", n.PendingResponseFrom)
	}
	if n.ListPrice != 45000000 || n.BuyOffer != 40000000 {
		t.Errorf("amounts not normalized: list=%d offer=%d", n.ListPrice, n.BuyOffer)
	}
	if n.InspectionSlot.Date != "2025-12-15" || n.InspectionSlot.Time != "10:00 AM" {
		t.Errorf("slot not normalized: %+v", n.InspectionSlot)
	}
	if n.IsLOI() {
		t.Error("absent letter should not classify as LOI")
	}
	if n.CreatedAt.IsZero() {
		t.Error("created_at was not parsed")
	}
}

func TestFetchNegotiationRejectsUnknownStatus(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"negotiation_id": "neg-1", "negotiation_status": "weird"}`))
	})

	if _, err := client.FetchNegotiation(context.Background(), "neg-1"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestRespondToOfferSendsTypedBody(t *testing.T) {
	var body RespondRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/negotiation/neg-1/respond" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		_, _ = w.Write([]byte(`{"status": "negotiation_countered", "pending_response_from": "seller", "buy_offer": 42000000}`))
	})

	update, err := client.RespondToOffer(context.Background(), "neg-1", RespondRequest{
		Decision: DecisionCounter,
		Amount:   42000000,
	})
	if err != nil {
		t.Fatalf("RespondToOffer failed: %v", err)
	}

	if body.Decision != DecisionCounter || body.Amount != 42000000 {
		t.Errorf("wire body mismatch: %+v", body)
	}
	if update.PendingResponseFrom != models.PartySeller {
		t.Errorf("expected flipped turn, got %s", update.PendingResponseFrom)
	}
}

func TestRespondToOfferValidatesBeforeWire(t *testing.T) {
	called := false
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.RespondToOffer(context.Background(), "neg-1", RespondRequest{
		Decision: DecisionCounter,
		Amount:   0,
	})
	if err == nil {
		t.Fatal("expected validation error for zero counter amount")
	}
	if called {
		t.Error("no request may be sent for an invalid payload")
	}
}

func TestSubmitInspectionValidatesSlotPairing(t *testing.T) {
	called := false
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := client.SubmitInspection(context.Background(), "neg-1", InspectionRequest{
		Status: Available,
		Date:   "2025-12-16",
	})
	if err == nil {
		t.Fatal("expected error for date without time")
	}
	if called {
		t.Error("no request may be sent for an invalid payload")
	}
}

func TestStatusErrorCarriesServerMessage(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message": "not your turn"}`))
	})

	_, err := client.SubmitInspection(context.Background(), "neg-1", InspectionRequest{Status: Unavailable})
	if err == nil {
		t.Fatal("expected error")
	}

	statusErr, ok := err.(*StatusError)
	if !ok {
		t.Fatalf("expected StatusError, got %T", err)
	}
	if statusErr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", statusErr.Code)
	}
	if statusErr.Message != "not your turn" {
		t.Errorf("expected server message, got %q", statusErr.Message)
	}
}

func TestFetchProperty(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/properties/prop-9" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id": "prop-9", "type": "Bungalow", "location": "Gwarinpa", "price": 30000000}`))
	})

	prop, err := client.FetchProperty(context.Background(), "prop-9")
	if err != nil {
		t.Fatalf("FetchProperty failed: %v", err)
	}
	if prop.Type != "Bungalow" || prop.Price != 30000000 {
		t.Errorf("property not decoded: %+v", prop)
	}
}
