// ABOUTME: HTTP client for the marketplace negotiation API
// ABOUTME: Maps each controller action to exactly one REST request
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/harperreed/haggle/models"
)

// StatusError is a non-2xx reply from the marketplace API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: server returned %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api: server returned %d", e.Code)
}

// Client talks to the marketplace backend. It never retries: each action
// maps to exactly one request, and the caller decides whether to re-trigger.
type Client struct {
	baseURL   string
	token     string
	sessionID string
	http      *http.Client
}

// NewClient creates a marketplace API client from config.
func NewClient(cfg *Config) *Client {
	return &Client{
		baseURL:   cfg.BaseURL,
		token:     cfg.Token,
		sessionID: NewSessionID(),
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// FetchNegotiation retrieves one negotiation thread snapshot by ID.
func (c *Client) FetchNegotiation(ctx context.Context, id string) (*models.Negotiation, error) {
	var payload negotiationPayload
	if err := c.do(ctx, http.MethodGet, "/negotiation/"+id, nil, &payload); err != nil {
		return nil, err
	}
	return normalizeNegotiation(&payload)
}

// RespondToOffer submits an accept/reject/counter decision.
func (c *Client) RespondToOffer(ctx context.Context, id string, req RespondRequest) (*NegotiationUpdate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var update NegotiationUpdate
	if err := c.do(ctx, http.MethodPost, "/negotiation/"+id+"/respond", req, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// SubmitInspection submits the availability decision, with the
// counter-proposed slot when one exists.
func (c *Client) SubmitInspection(ctx context.Context, id string, req InspectionRequest) (*NegotiationUpdate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var update NegotiationUpdate
	if err := c.do(ctx, http.MethodPost, "/negotiation/"+id+"/inspection", req, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// FetchProperty retrieves a property for display. Opaque data source, not
// part of the negotiation contract.
func (c *Client) FetchProperty(ctx context.Context, id string) (*Property, error) {
	var prop Property
	if err := c.do(ctx, http.MethodGet, "/properties/"+id, nil, &prop); err != nil {
		return nil, err
	}
	return &prop, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Haggle-Session", c.sessionID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return &StatusError{Code: resp.StatusCode, Message: readServerMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// readServerMessage extracts the error message the backend wraps in
// {"message": "..."} or {"error": "..."} envelopes.
func readServerMessage(r io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Message != "" {
		return envelope.Message
	}
	return envelope.Err
}

func normalizeNegotiation(p *negotiationPayload) (*models.Negotiation, error) {
	if p.NegotiationID == "" {
		return nil, fmt.Errorf("negotiation payload missing id")
	}
	if !models.ValidStatus(p.NegotiationStatus) {
		return nil, fmt.Errorf("unknown negotiation status %q", p.NegotiationStatus)
	}

	n := &models.Negotiation{
		ID:                  p.NegotiationID,
		Status:              p.NegotiationStatus,
		PendingResponseFrom: p.PendingResponseFrom,
		ListPrice:           p.CurrentAmount,
		BuyOffer:            p.BuyOffer,
		LetterOfIntention:   p.LetterOfIntention,
		InspectionSlot: models.InspectionSlot{
			Date: p.InspectionDate,
			Time: p.InspectionTime,
		},
		Client:   models.ClientSnapshot{Name: p.ClientData.Name},
		Property: models.PropertySnapshot{Type: p.PropertyData.Type, Location: p.PropertyData.Location},
	}

	if p.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", p.CreatedAt, err)
		}
		n.CreatedAt = createdAt
	}

	return n, nil
}
