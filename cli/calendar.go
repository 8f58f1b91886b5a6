// ABOUTME: Calendar CLI commands
// ABOUTME: Exports confirmed inspection slots to Google Calendar
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"time"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
	"github.com/harperreed/haggle/sync"
)

// CalendarExportCommand creates a calendar event for a thread's inspection
// slot. Reads the cached snapshot unless --fetch forces a fresh pull.
func CalendarExportCommand(client *api.Client, database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	id := fs.String("id", "", "Negotiation ID (required)")
	fetch := fs.Bool("fetch", false, "Fetch fresh state instead of using the cache")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	var n *models.Negotiation
	if *fetch {
		fresh, err := client.FetchNegotiation(context.Background(), *id)
		if err != nil {
			return fmt.Errorf("failed to fetch negotiation: %w", err)
		}
		n = fresh
		if database != nil {
			_ = db.SaveSnapshot(database, n)
		}
	} else {
		snap, err := db.GetSnapshot(database, *id)
		if err != nil {
			return fmt.Errorf("failed to read cache: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("negotiation %s is not cached, run with --fetch", *id)
		}
		n = &snap.Negotiation
	}

	if n.InspectionSlot.IsZero() {
		return fmt.Errorf("negotiation %s has no inspection slot to export", *id)
	}

	token, err := sync.LoadToken()
	if err != nil {
		return fmt.Errorf("not authenticated with Google, run 'haggle auth google' first: %w", err)
	}

	service, err := sync.NewCalendarClient(token)
	if err != nil {
		return err
	}

	event, err := sync.AddInspectionEvent(service, n, time.Local)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Calendar event created: %s\n", event.Summary)
	fmt.Printf("  %s at %s\n", n.InspectionSlot.Date, n.InspectionSlot.Time)
	if event.HtmlLink != "" {
		fmt.Printf("  %s\n", event.HtmlLink)
	}
	return nil
}
