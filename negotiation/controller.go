// ABOUTME: Negotiation state controller, one instance per thread
// ABOUTME: Single authority for allowed actions and their transitions
package negotiation

import (
	"context"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/models"
)

// Backend is the slice of the marketplace API the controller needs.
// *api.Client satisfies it; tests inject fakes.
type Backend interface {
	FetchNegotiation(ctx context.Context, id string) (*models.Negotiation, error)
	RespondToOffer(ctx context.Context, id string, req api.RespondRequest) (*api.NegotiationUpdate, error)
	SubmitInspection(ctx context.Context, id string, req api.InspectionRequest) (*api.NegotiationUpdate, error)
}

// Decision is the viewer's recorded response to the active offer. It is a
// local echo used to pick the next action buttons; it is finalized on the
// server only when the inspection response is submitted.
type Decision string

const (
	DecisionNone   Decision = "none"
	DecisionAccept Decision = "accept"
	DecisionReject Decision = "reject"
)

// DateStatus tracks whether the inspection slot has been counter-proposed
// in the current session.
type DateStatus string

const (
	DateOriginal  DateStatus = "none"
	DateCountered DateStatus = "countered"
)

// Controller owns the state vector for one negotiation thread. All
// mutation flows through it; views only capture intent. Not safe for
// concurrent use: one controller serves one UI event loop.
type Controller struct {
	backend Backend
	viewer  models.Party

	record  *models.Negotiation
	shadow  models.Negotiation // last server-confirmed snapshot, rollback target
	loadErr error

	tracker     Screen
	decision    Decision
	dateStatus  DateStatus
	counterSlot models.InspectionSlot
	submitting  bool
}

// New creates a controller for one negotiation thread viewed as role.
func New(backend Backend, viewer models.Party) *Controller {
	return &Controller{
		backend:    backend,
		viewer:     viewer,
		tracker:    ScreenNegotiation,
		decision:   DecisionNone,
		dateStatus: DateOriginal,
	}
}

// Initialize fetches the thread and derives the starting screen and
// decision echo from the server's status. A failed fetch is terminal for
// the session; the caller must start over to retry.
func (c *Controller) Initialize(ctx context.Context, id string) error {
	n, err := c.backend.FetchNegotiation(ctx, id)
	if err != nil {
		c.loadErr = err
		return &FetchError{Err: err}
	}

	// A good fetch supersedes any earlier failed one.
	c.loadErr = nil
	c.record = n
	c.shadow = *n

	switch {
	case n.Status == models.StatusAccepted ||
		n.Status == models.StatusPendingInspection ||
		n.Status == models.StatusOfferRejected ||
		n.BuyOffer == 0:
		// The offer phase is already settled (or there was never a numeric
		// offer), so the session opens on the inspection screen.
		c.tracker = ScreenConfirmDate
		if n.Status == models.StatusAccepted || n.Status == models.StatusPendingInspection {
			c.decision = DecisionAccept
		} else {
			c.decision = DecisionReject
		}
	case n.Status == models.StatusCountered || n.IsLOI():
		// Countered threads always re-enter the negotiation screen, even
		// when the counter has since been answered; matches the marketplace
		// web client.
		c.tracker = ScreenNegotiation
	default:
		c.tracker = ScreenNegotiation
	}

	return nil
}

// Record returns the current thread snapshot, nil before Initialize.
func (c *Controller) Record() *models.Negotiation {
	return c.record
}

// Viewer returns the role this session acts as.
func (c *Controller) Viewer() models.Party {
	return c.viewer
}

// Decision returns the locally recorded offer response.
func (c *Controller) Decision() Decision {
	return c.decision
}

// DateStatus reports whether the slot has been counter-proposed this
// session.
func (c *Controller) DateStatus() DateStatus {
	return c.dateStatus
}

// Submitting reports whether a mutating call is in flight.
func (c *Controller) Submitting() bool {
	return c.submitting
}

// Blocked reports whether the turn-taking gate disables the viewer's
// mutating actions. Advisory: the server is the authority, but the client
// must not submit obviously-invalid actions.
func (c *Controller) Blocked() bool {
	if c.record == nil {
		return true
	}
	return (c.viewer == models.PartySeller && c.record.PendingResponseFrom == models.PartyBuyer) ||
		(c.viewer == models.PartyBuyer && c.record.PendingResponseFrom == models.PartySeller)
}

// WaitingMessage is the text shown in place of enabled controls while the
// other party holds the turn.
func (c *Controller) WaitingMessage() string {
	other := c.viewer.Other()
	if c.record != nil {
		other = c.record.PendingResponseFrom
	}
	return "Awaiting " + other.Display() + " response on this request."
}

// OfferLabel says whose offer the active amount is, for display.
func (c *Controller) OfferLabel() string {
	owner := models.PartyBuyer // the original offer is always the buyer's
	if c.record != nil && c.record.Status == models.StatusCountered {
		// A countered thread's active offer belongs to whichever party is
		// not the one expected to respond.
		owner = c.record.PendingResponseFrom.Other()
	}
	if owner == c.viewer {
		return "Your Offer"
	}
	return owner.Display() + "'s Offer"
}

// guard rejects mutating actions before load, after a terminal state, and
// while the other party holds the turn.
func (c *Controller) guard() error {
	if c.record == nil {
		return ErrNotLoaded
	}
	if c.record.IsTerminal() {
		return ErrThreadClosed
	}
	if c.Blocked() {
		return ErrAwaitingResponse
	}
	return nil
}

// AcceptOffer records acceptance and advances to the inspection screen.
// No remote call happens here; the decision is finalized when the
// inspection response is submitted.
func (c *Controller) AcceptOffer() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.decision = DecisionAccept
	c.tracker = ScreenConfirmDate
	return nil
}

// RejectOffer records rejection and advances the same way.
func (c *Controller) RejectOffer() error {
	if err := c.guard(); err != nil {
		return err
	}
	c.decision = DecisionReject
	c.tracker = ScreenConfirmDate
	return nil
}

// CounterOffer submits a counter amount. A non-positive amount is refused
// with a validation message before any request is built.
func (c *Controller) CounterOffer(ctx context.Context, amount int64) error {
	if err := c.guard(); err != nil {
		return err
	}
	if c.record.IsLOI() {
		return &ValidationError{Reason: "Letter of Intention offers cannot be countered"}
	}
	if amount <= 0 {
		return &ValidationError{Reason: "Counter offer must be a positive amount"}
	}
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	defer func() { c.submitting = false }()

	c.shadow = *c.record
	c.record.BuyOffer = amount
	c.record.Status = models.StatusCountered
	c.record.PendingResponseFrom = c.viewer.Other()

	update, err := c.backend.RespondToOffer(ctx, c.record.ID, api.RespondRequest{
		Decision: api.DecisionCounter,
		Amount:   amount,
	})
	if err != nil {
		*c.record = c.shadow
		return &SubmitError{Action: "counter offer", Err: err}
	}

	c.applyUpdate(update)
	return nil
}

// ProposeCounterDate records a counter-proposed inspection slot. A slot
// equal to the original is treated as no counter: the status stays
// DateOriginal and the submit affordance remains disabled.
func (c *Controller) ProposeCounterDate(date, clock string) error {
	if err := c.guard(); err != nil {
		return err
	}

	proposed := models.InspectionSlot{Date: date, Time: clock}
	if proposed.Equal(c.record.InspectionSlot) {
		c.counterSlot = models.InspectionSlot{}
		c.dateStatus = DateOriginal
		return nil
	}

	c.counterSlot = proposed
	c.dateStatus = DateCountered
	return nil
}

// ResetCounterDate discards the counter-proposal and restores the original
// slot. Idempotent: resetting an already-original slot changes nothing.
func (c *Controller) ResetCounterDate() {
	c.counterSlot = models.InspectionSlot{}
	c.dateStatus = DateOriginal
}

// CounterSlot returns the counter-proposed slot, if one is recorded.
func (c *Controller) CounterSlot() (models.InspectionSlot, bool) {
	return c.counterSlot, c.dateStatus == DateCountered
}

// DisplaySlot is the slot to show: the counter-proposal always takes
// precedence over the original while one exists.
func (c *Controller) DisplaySlot() models.InspectionSlot {
	if c.dateStatus == DateCountered {
		return c.counterSlot
	}
	if c.record != nil {
		return c.record.InspectionSlot
	}
	return models.InspectionSlot{}
}

// SubmitAvailability sends the availability decision, carrying the
// counter-proposed slot when present. On failure nothing is kept: the
// record rolls back to the last confirmed snapshot and the user may retry.
func (c *Controller) SubmitAvailability(ctx context.Context, availability api.Availability) error {
	if err := c.guard(); err != nil {
		return err
	}
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	defer func() { c.submitting = false }()

	req := api.InspectionRequest{Status: availability}
	if c.dateStatus == DateCountered {
		req.Date = c.counterSlot.Date
		req.Time = c.counterSlot.Time
	}

	c.shadow = *c.record
	c.record.PendingResponseFrom = c.viewer.Other()
	if c.dateStatus == DateCountered {
		c.record.InspectionSlot = c.counterSlot
	}

	update, err := c.backend.SubmitInspection(ctx, c.record.ID, req)
	if err != nil {
		*c.record = c.shadow
		return &SubmitError{Action: "inspection response", Err: err}
	}

	c.applyUpdate(update)
	c.counterSlot = models.InspectionSlot{}
	c.dateStatus = DateOriginal
	return nil
}

// SubmitDecision finalizes the recorded accept/reject with the backend.
// Called when the viewer proceeds from the inspection screen.
func (c *Controller) SubmitDecision(ctx context.Context) error {
	if err := c.guard(); err != nil {
		return err
	}
	if c.decision != DecisionAccept && c.decision != DecisionReject {
		return &ValidationError{Reason: "No decision recorded for this offer"}
	}
	if c.submitting {
		return ErrSubmitInFlight
	}
	c.submitting = true
	defer func() { c.submitting = false }()

	req := api.RespondRequest{Decision: api.DecisionAccept}
	optimistic := models.StatusAccepted
	if c.decision == DecisionReject {
		req.Decision = api.DecisionReject
		optimistic = models.StatusOfferRejected
	}

	c.shadow = *c.record
	c.record.Status = optimistic
	c.record.PendingResponseFrom = c.viewer.Other()

	update, err := c.backend.RespondToOffer(ctx, c.record.ID, req)
	if err != nil {
		*c.record = c.shadow
		return &SubmitError{Action: "offer response", Err: err}
	}

	c.applyUpdate(update)
	return nil
}

// applyUpdate folds a server reply into the record. The server's values
// win over the optimistic ones; the confirmed snapshot advances with them.
func (c *Controller) applyUpdate(update *api.NegotiationUpdate) {
	if update == nil {
		c.shadow = *c.record
		return
	}
	if update.Status != "" && models.ValidStatus(update.Status) {
		c.record.Status = update.Status
	}
	if update.PendingResponseFrom != "" {
		c.record.PendingResponseFrom = update.PendingResponseFrom
	}
	if update.BuyOffer != 0 {
		c.record.BuyOffer = update.BuyOffer
	}
	if !update.InspectionSlot.IsZero() {
		c.record.InspectionSlot = update.InspectionSlot
	}
	c.shadow = *c.record
}
