// ABOUTME: Typed request/response contracts for the marketplace API
// ABOUTME: Defines respond/inspection payloads and the negotiation update envelope
package api

import (
	"fmt"

	"github.com/harperreed/haggle/models"
)

// Decision is the buyer/seller response to an offer.
type Decision string

const (
	DecisionAccept  Decision = "accept"
	DecisionReject  Decision = "reject"
	DecisionCounter Decision = "counter"
)

// Availability is the seller's answer to a proposed inspection slot.
type Availability string

const (
	Available   Availability = "available"
	Unavailable Availability = "unavailable"
)

// RespondRequest is the body of POST /negotiation/{id}/respond.
// Amount is only meaningful for counter decisions.
type RespondRequest struct {
	Decision Decision `json:"decision"`
	Amount   int64    `json:"amount,omitempty"`
}

// Validate checks the request before it leaves the client.
func (r RespondRequest) Validate() error {
	switch r.Decision {
	case DecisionAccept, DecisionReject:
		return nil
	case DecisionCounter:
		if r.Amount <= 0 {
			return fmt.Errorf("counter decision requires a positive amount")
		}
		return nil
	}
	return fmt.Errorf("unknown decision %q", r.Decision)
}

// InspectionRequest is the body of POST /negotiation/{id}/inspection.
// Date and Time carry a counter-proposed slot when present.
type InspectionRequest struct {
	Status Availability `json:"status"`
	Date   string       `json:"date,omitempty"`
	Time   string       `json:"time,omitempty"`
}

// Validate checks the request before it leaves the client.
func (r InspectionRequest) Validate() error {
	if r.Status != Available && r.Status != Unavailable {
		return fmt.Errorf("unknown availability %q", r.Status)
	}
	if (r.Date == "") != (r.Time == "") {
		return fmt.Errorf("counter slot requires both date and time")
	}
	return nil
}

// NegotiationUpdate is the server's reply to a mutating call. The caller
// folds it back into the local record; the server's values win.
type NegotiationUpdate struct {
	Status              string                `json:"status"`
	PendingResponseFrom models.Party          `json:"pending_response_from"`
	BuyOffer            int64                 `json:"buy_offer,omitempty"`
	InspectionSlot      models.InspectionSlot `json:"inspection_slot"`
}

// negotiationPayload is the wire shape of GET /negotiation/{id}. The
// backend's field names differ from the local model in a few places, so
// the adapter normalizes at the boundary.
type negotiationPayload struct {
	NegotiationID       string       `json:"negotiation_id"`
	NegotiationStatus   string       `json:"negotiation_status"`
	PendingResponseFrom models.Party `json:"pending_response_from"`
	CurrentAmount       int64        `json:"current_amount"`
	BuyOffer            int64        `json:"buy_offer"`
	LetterOfIntention   *string      `json:"letter_of_intention"`
	InspectionDate      string       `json:"inspection_date"`
	InspectionTime      string       `json:"inspection_time"`
	ClientData          struct {
		Name string `json:"name"`
	} `json:"client_data"`
	PropertyData struct {
		Type     string `json:"type"`
		Location string `json:"location"`
	} `json:"property_data"`
	CreatedAt string `json:"created_at"`
}

// Property is the read-only property lookup used for display.
type Property struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Location string `json:"location"`
	Price    int64  `json:"price"`
	Title    string `json:"title"`
}
