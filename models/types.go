// ABOUTME: Data models for marketplace negotiation threads
// ABOUTME: Defines Negotiation, InspectionSlot, and party/status constants
package models

import (
	"time"
)

// Party identifies one side of a negotiation thread.
type Party string

const (
	PartyBuyer  Party = "buyer"
	PartySeller Party = "seller"
)

// Other returns the opposite party.
func (p Party) Other() Party {
	if p == PartyBuyer {
		return PartySeller
	}
	return PartyBuyer
}

// Display returns the capitalized party name for user-facing text.
func (p Party) Display() string {
	switch p {
	case PartyBuyer:
		return "Buyer"
	case PartySeller:
		return "Seller"
	}
	return string(p)
}

// Negotiation status constants, mirroring the marketplace backend.
const (
	StatusPendingInspection = "pending_inspection"
	StatusCountered         = "negotiation_countered"
	StatusAccepted          = "negotiation_accepted"
	StatusOfferRejected     = "offer_rejected"
	StatusCompleted         = "completed"
	StatusCancelled         = "cancelled"
)

// InspectionSlot is one proposed inspection appointment.
// Date is "2006-01-02", Time is a clock label like "10:00 AM".
type InspectionSlot struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// IsZero reports whether no slot has been proposed.
func (s InspectionSlot) IsZero() bool {
	return s.Date == "" && s.Time == ""
}

// Equal reports whether two slots name the same date and time.
// A counter-proposal equal to the original is treated as no counter.
func (s InspectionSlot) Equal(o InspectionSlot) bool {
	return s.Date == o.Date && s.Time == o.Time
}

// ClientSnapshot is the buyer identity captured on the thread for display.
type ClientSnapshot struct {
	Name string `json:"name"`
}

// PropertySnapshot is the denormalized property info captured on the thread.
type PropertySnapshot struct {
	Type     string `json:"type"`
	Location string `json:"location"`
}

// Negotiation is one buyer/seller thread over a single property and
// inspection request. The server owns this record; the local copy is a
// cache refreshed per session, never a source of truth.
type Negotiation struct {
	ID                  string           `json:"id"`
	Status              string           `json:"status"`
	PendingResponseFrom Party            `json:"pending_response_from"`
	ListPrice           int64            `json:"list_price"` // cents, immutable reference point
	BuyOffer            int64            `json:"buy_offer"`  // cents, 0 when not set (LOI-only flows)
	LetterOfIntention   *string          `json:"letter_of_intention,omitempty"`
	InspectionSlot      InspectionSlot   `json:"inspection_slot"`
	Client              ClientSnapshot   `json:"client"`
	Property            PropertySnapshot `json:"property"`
	CreatedAt           time.Time        `json:"created_at"`
}

// IsLOI reports whether this thread negotiates a Letter of Intention
// document rather than a numeric price. The document link may be empty
// while the thread is still LOI-typed.
func (n *Negotiation) IsLOI() bool {
	return n.LetterOfIntention != nil
}

// IsTerminal reports whether the thread has reached a final state.
func (n *Negotiation) IsTerminal() bool {
	return n.Status == StatusCompleted || n.Status == StatusCancelled
}

// ValidStatus reports whether s is a known negotiation status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPendingInspection, StatusCountered, StatusAccepted,
		StatusOfferRejected, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
