// ABOUTME: Tests for screen resolution
// ABOUTME: Terminal states must win over whatever the tracker holds
package negotiation

import (
	"errors"
	"testing"

	"github.com/harperreed/haggle/models"
)

func TestResolveScreenTerminalWinsOverTracker(t *testing.T) {
	tests := []struct {
		status  string
		tracker Screen
		want    Screen
	}{
		{models.StatusCompleted, ScreenNegotiation, ScreenSummary},
		{models.StatusCompleted, ScreenConfirmDate, ScreenSummary},
		{models.StatusCancelled, ScreenNegotiation, ScreenCancelledSummary},
		{models.StatusCancelled, ScreenConfirmDate, ScreenCancelledSummary},
		{models.StatusCountered, ScreenNegotiation, ScreenNegotiation},
		{models.StatusAccepted, ScreenConfirmDate, ScreenConfirmDate},
	}

	for _, tt := range tests {
		t.Run(tt.status+"_"+tt.tracker.String(), func(t *testing.T) {
			record := baseRecord()
			record.Status = tt.status
			c := &Controller{record: record, tracker: tt.tracker}
			if got := c.ResolveScreen(); got != tt.want {
				t.Errorf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestResolveScreenLoadFailures(t *testing.T) {
	c := &Controller{loadErr: errors.New("boom")}
	if got := c.ResolveScreen(); got != ScreenLoadFailed {
		t.Errorf("load error: want %v, got %v", ScreenLoadFailed, got)
	}

	c = &Controller{}
	if got := c.ResolveScreen(); got != ScreenLoadFailed {
		t.Errorf("nil record: want %v, got %v", ScreenLoadFailed, got)
	}
}

func TestScreenString(t *testing.T) {
	tests := []struct {
		screen Screen
		want   string
	}{
		{ScreenNegotiation, "Negotiation"},
		{ScreenConfirmDate, "Confirm Inspection Date"},
		{ScreenSummary, "Summary"},
		{ScreenCancelledSummary, "Cancelled Summary"},
		{ScreenLoadFailed, "Load Failed"},
		{Screen(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.screen.String(); got != tt.want {
			t.Errorf("Screen(%d): want %q, got %q", tt.screen, tt.want, got)
		}
	}
}
