// ABOUTME: Screen selection state machine for a negotiation session
// ABOUTME: Terminal states short-circuit the tracker on every resolve
package negotiation

import (
	"github.com/harperreed/haggle/models"
)

// Screen identifies which negotiation screen is active.
type Screen int

const (
	// ScreenNegotiation shows the offer (price or LOI) with
	// accept/reject/counter actions.
	ScreenNegotiation Screen = iota

	// ScreenConfirmDate shows the inspection slot with availability and
	// counter-date actions.
	ScreenConfirmDate

	// ScreenSummary is the terminal view of a completed thread.
	ScreenSummary

	// ScreenCancelledSummary is the terminal view of a cancelled thread.
	ScreenCancelledSummary

	// ScreenLoadFailed is the terminal view after a failed initial fetch.
	ScreenLoadFailed
)

// String names the screen for logs and tests.
func (s Screen) String() string {
	switch s {
	case ScreenNegotiation:
		return "Negotiation"
	case ScreenConfirmDate:
		return "Confirm Inspection Date"
	case ScreenSummary:
		return "Summary"
	case ScreenCancelledSummary:
		return "Cancelled Summary"
	case ScreenLoadFailed:
		return "Load Failed"
	}
	return "Unknown"
}

// ResolveScreen picks the screen to render. Terminal states are checked
// before the tracker, so a completed or cancelled thread shows its summary
// no matter where the tracker points. The tracker itself only ever
// advances Negotiation -> Confirm Inspection Date; whatever comes after a
// submission is decided by the server on the next fetch.
func (c *Controller) ResolveScreen() Screen {
	if c.loadErr != nil {
		return ScreenLoadFailed
	}
	if c.record == nil {
		return ScreenLoadFailed
	}
	switch c.record.Status {
	case models.StatusCompleted:
		return ScreenSummary
	case models.StatusCancelled:
		return ScreenCancelledSummary
	}
	return c.tracker
}
