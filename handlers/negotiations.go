// ABOUTME: Negotiation MCP tool handlers
// ABOUTME: Implements get_negotiation, respond_to_offer, and submit_inspection_response tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
)

// Marketplace is the server surface the tools need. Satisfied by
// api.Client.
type Marketplace interface {
	FetchNegotiation(ctx context.Context, id string) (*models.Negotiation, error)
	RespondToOffer(ctx context.Context, id string, req api.RespondRequest) (*api.NegotiationUpdate, error)
	SubmitInspection(ctx context.Context, id string, req api.InspectionRequest) (*api.NegotiationUpdate, error)
	FetchProperty(ctx context.Context, id string) (*api.Property, error)
}

type NegotiationHandlers struct {
	market Marketplace
	db     *sql.DB
	viewer models.Party
}

func NewNegotiationHandlers(market Marketplace, database *sql.DB, viewer models.Party) *NegotiationHandlers {
	return &NegotiationHandlers{market: market, db: database, viewer: viewer}
}

type GetNegotiationInput struct {
	NegotiationID string `json:"negotiation_id" jsonschema:"Negotiation thread ID (required)"`
}

type NegotiationOutput struct {
	ID                  string  `json:"id"`
	Status              string  `json:"status"`
	PendingResponseFrom string  `json:"pending_response_from"`
	ListPrice           int64   `json:"list_price"`
	BuyOffer            int64   `json:"buy_offer"`
	LetterOfIntention   *string `json:"letter_of_intention,omitempty"`
	InspectionDate      string  `json:"inspection_date,omitempty"`
	InspectionTime      string  `json:"inspection_time,omitempty"`
	ClientName          string  `json:"client_name"`
	PropertyType        string  `json:"property_type"`
	PropertyLocation    string  `json:"property_location"`
	CreatedAt           string  `json:"created_at"`
}

func negotiationToOutput(n *models.Negotiation) NegotiationOutput {
	return NegotiationOutput{
		ID:                  n.ID,
		Status:              n.Status,
		PendingResponseFrom: string(n.PendingResponseFrom),
		ListPrice:           n.ListPrice,
		BuyOffer:            n.BuyOffer,
		LetterOfIntention:   n.LetterOfIntention,
		InspectionDate:      n.InspectionSlot.Date,
		InspectionTime:      n.InspectionSlot.Time,
		ClientName:          n.Client.Name,
		PropertyType:        n.Property.Type,
		PropertyLocation:    n.Property.Location,
		CreatedAt:           n.CreatedAt.Format(time.RFC3339),
	}
}

func (h *NegotiationHandlers) GetNegotiation(ctx context.Context, request *mcp.CallToolRequest, input GetNegotiationInput) (*mcp.CallToolResult, NegotiationOutput, error) {
	if input.NegotiationID == "" {
		return nil, NegotiationOutput{}, fmt.Errorf("negotiation_id is required")
	}

	n, err := h.market.FetchNegotiation(ctx, input.NegotiationID)
	if err != nil {
		return nil, NegotiationOutput{}, fmt.Errorf("failed to fetch negotiation: %w", err)
	}

	if h.db != nil {
		_ = db.SaveSnapshot(h.db, n)
		_, _ = db.LogActivity(h.db, n.ID, h.viewer, db.VerbFetched, "")
	}

	return nil, negotiationToOutput(n), nil
}

type RespondToOfferInput struct {
	NegotiationID string `json:"negotiation_id" jsonschema:"Negotiation thread ID (required)"`
	Decision      string `json:"decision" jsonschema:"Response to the offer: accept, reject, or counter"`
	Amount        int64  `json:"amount,omitempty" jsonschema:"Counter amount, required when decision is counter"`
}

type UpdateOutput struct {
	Status              string `json:"status,omitempty"`
	PendingResponseFrom string `json:"pending_response_from,omitempty"`
	BuyOffer            int64  `json:"buy_offer,omitempty"`
	InspectionDate      string `json:"inspection_date,omitempty"`
	InspectionTime      string `json:"inspection_time,omitempty"`
}

func updateToOutput(update *api.NegotiationUpdate) UpdateOutput {
	if update == nil {
		return UpdateOutput{}
	}
	return UpdateOutput{
		Status:              update.Status,
		PendingResponseFrom: string(update.PendingResponseFrom),
		BuyOffer:            update.BuyOffer,
		InspectionDate:      update.InspectionSlot.Date,
		InspectionTime:      update.InspectionSlot.Time,
	}
}

func (h *NegotiationHandlers) RespondToOffer(ctx context.Context, request *mcp.CallToolRequest, input RespondToOfferInput) (*mcp.CallToolResult, UpdateOutput, error) {
	if input.NegotiationID == "" {
		return nil, UpdateOutput{}, fmt.Errorf("negotiation_id is required")
	}

	req := api.RespondRequest{Decision: api.Decision(input.Decision), Amount: input.Amount}
	if err := req.Validate(); err != nil {
		return nil, UpdateOutput{}, err
	}

	update, err := h.market.RespondToOffer(ctx, input.NegotiationID, req)
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to respond to offer: %w", err)
	}

	if h.db != nil {
		verb := db.VerbDecisionSubmitted
		detail := ""
		switch req.Decision {
		case api.DecisionAccept:
			verb = db.VerbAccepted
		case api.DecisionReject:
			verb = db.VerbRejected
		case api.DecisionCounter:
			verb = db.VerbCountered
			detail = fmt.Sprintf("countered at %d", input.Amount)
		}
		_, _ = db.LogActivity(h.db, input.NegotiationID, h.viewer, verb, detail)
	}

	return nil, updateToOutput(update), nil
}

type SubmitInspectionInput struct {
	NegotiationID string `json:"negotiation_id" jsonschema:"Negotiation thread ID (required)"`
	Status        string `json:"status" jsonschema:"Inspection availability: available or unavailable"`
	Date          string `json:"date,omitempty" jsonschema:"Counter-proposed inspection date (YYYY-MM-DD)"`
	Time          string `json:"time,omitempty" jsonschema:"Counter-proposed inspection time (for example 2:00 PM)"`
}

func (h *NegotiationHandlers) SubmitInspectionResponse(ctx context.Context, request *mcp.CallToolRequest, input SubmitInspectionInput) (*mcp.CallToolResult, UpdateOutput, error) {
	if input.NegotiationID == "" {
		return nil, UpdateOutput{}, fmt.Errorf("negotiation_id is required")
	}

	req := api.InspectionRequest{Status: api.Availability(input.Status), Date: input.Date, Time: input.Time}
	if err := req.Validate(); err != nil {
		return nil, UpdateOutput{}, err
	}

	update, err := h.market.SubmitInspection(ctx, input.NegotiationID, req)
	if err != nil {
		return nil, UpdateOutput{}, fmt.Errorf("failed to submit inspection response: %w", err)
	}

	if h.db != nil {
		_, _ = db.LogActivity(h.db, input.NegotiationID, h.viewer, db.VerbAvailabilitySubmitted, input.Status)
	}

	return nil, updateToOutput(update), nil
}

type GetPropertyInput struct {
	PropertyID string `json:"property_id" jsonschema:"Property listing ID (required)"`
}

type PropertyOutput struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Price    int64  `json:"price"`
	Title    string `json:"title"`
}

func (h *NegotiationHandlers) GetProperty(ctx context.Context, request *mcp.CallToolRequest, input GetPropertyInput) (*mcp.CallToolResult, PropertyOutput, error) {
	if input.PropertyID == "" {
		return nil, PropertyOutput{}, fmt.Errorf("property_id is required")
	}

	p, err := h.market.FetchProperty(ctx, input.PropertyID)
	if err != nil {
		return nil, PropertyOutput{}, fmt.Errorf("failed to fetch property: %w", err)
	}

	return nil, PropertyOutput{
		ID:       p.ID,
		Type:     p.Type,
		Location: p.Location,
		Price:    p.Price,
		Title:    p.Title,
	}, nil
}
