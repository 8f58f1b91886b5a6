// ABOUTME: Google Calendar export for confirmed inspection slots
// ABOUTME: Creates calendar events from negotiation inspection dates
package sync

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/harperreed/haggle/models"
	"github.com/harperreed/haggle/negotiation"
)

const inspectionDuration = time.Hour

// NewCalendarClient creates a Google Calendar API service from an OAuth token.
func NewCalendarClient(token *oauth2.Token) (*calendar.Service, error) {
	if token == nil {
		return nil, fmt.Errorf("token cannot be nil")
	}

	ctx := context.Background()
	config := NewOAuthConfig()
	client := config.Client(ctx, token)

	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return service, nil
}

// BuildInspectionEvent shapes a calendar event from a negotiation's
// inspection slot. Split from the insert call so it can be tested without
// a live service.
func BuildInspectionEvent(n *models.Negotiation, loc *time.Location) (*calendar.Event, error) {
	if n.InspectionSlot.IsZero() {
		return nil, fmt.Errorf("negotiation %s has no inspection slot", n.ID)
	}

	start, err := negotiation.SlotStart(n.InspectionSlot.Date, n.InspectionSlot.Time, loc)
	if err != nil {
		return nil, err
	}
	end := start.Add(inspectionDuration)

	return &calendar.Event{
		Summary:     fmt.Sprintf("Property inspection: %s, %s", n.Property.Type, n.Property.Location),
		Description: fmt.Sprintf("Inspection with %s for negotiation %s", n.Client.Name, n.ID),
		Location:    n.Property.Location,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: loc.String(),
		},
	}, nil
}

// AddInspectionEvent inserts the inspection slot into the primary calendar.
func AddInspectionEvent(service *calendar.Service, n *models.Negotiation, loc *time.Location) (*calendar.Event, error) {
	event, err := BuildInspectionEvent(n, loc)
	if err != nil {
		return nil, err
	}

	created, err := service.Events.Insert("primary", event).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar event: %w", err)
	}

	return created, nil
}
