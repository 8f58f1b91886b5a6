// ABOUTME: Negotiation CLI commands
// ABOUTME: Human-friendly commands for inspecting and acting on threads
package cli

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
	"github.com/harperreed/haggle/negotiation"
)

// ShowNegotiationCommand fetches and prints one thread.
func ShowNegotiationCommand(client *api.Client, database *sql.DB, viewer models.Party, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	id := fs.String("id", "", "Negotiation ID (required)")
	cached := fs.Bool("cached", false, "Print the local snapshot without fetching")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	if *cached {
		snap, err := db.GetSnapshot(database, *id)
		if err != nil {
			return fmt.Errorf("failed to read local snapshot: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("no local snapshot for %s, run without --cached to fetch", *id)
		}
		printNegotiation(&snap.Negotiation)
		fmt.Printf("\n(cached %s, the server copy may have moved on)\n", snap.FetchedAt.Format("2006-01-02 15:04"))
		return nil
	}

	n, err := client.FetchNegotiation(context.Background(), *id)
	if err != nil {
		return fmt.Errorf("failed to fetch negotiation: %w", err)
	}

	if database != nil {
		_ = db.SaveSnapshot(database, n)
		_, _ = db.LogActivity(database, n.ID, viewer, db.VerbFetched, "")
	}

	printNegotiation(n)
	return nil
}

func printNegotiation(n *models.Negotiation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "ID\t%s\n", n.ID)
	_, _ = fmt.Fprintf(w, "Status\t%s\n", n.Status)
	_, _ = fmt.Fprintf(w, "Pending response\t%s\n", n.PendingResponseFrom.Display())
	_, _ = fmt.Fprintf(w, "Property\t%s, %s\n", n.Property.Type, n.Property.Location)
	_, _ = fmt.Fprintf(w, "Client\t%s\n", n.Client.Name)
	_, _ = fmt.Fprintf(w, "List price\t%d\n", n.ListPrice)
	if n.IsLOI() {
		doc := *n.LetterOfIntention
		if doc == "" {
			doc = "(pending upload)"
		}
		_, _ = fmt.Fprintf(w, "Letter of Intention\t%s\n", doc)
	} else {
		_, _ = fmt.Fprintf(w, "Buy offer\t%d\n", n.BuyOffer)
	}
	if !n.InspectionSlot.IsZero() {
		_, _ = fmt.Fprintf(w, "Inspection\t%s at %s\n", n.InspectionSlot.Date, n.InspectionSlot.Time)
	}
	_, _ = fmt.Fprintf(w, "Respond within\t%s\n", negotiation.CountdownLabel(n.CreatedAt, time.Now()))
	_ = w.Flush()
}

// RespondCommand submits an accept, reject, or counter decision.
func RespondCommand(client *api.Client, database *sql.DB, viewer models.Party, args []string) error {
	fs := flag.NewFlagSet("respond", flag.ExitOnError)
	id := fs.String("id", "", "Negotiation ID (required)")
	decision := fs.String("decision", "", "accept, reject, or counter (required)")
	amount := fs.Int64("amount", 0, "Counter amount (required with counter)")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	req := api.RespondRequest{Decision: api.Decision(*decision), Amount: *amount}
	if err := req.Validate(); err != nil {
		return err
	}

	update, err := client.RespondToOffer(context.Background(), *id, req)
	if err != nil {
		return fmt.Errorf("failed to respond: %w", err)
	}

	if database != nil {
		verb := db.VerbDecisionSubmitted
		detail := ""
		switch req.Decision {
		case api.DecisionAccept:
			verb = db.VerbAccepted
		case api.DecisionReject:
			verb = db.VerbRejected
		case api.DecisionCounter:
			verb = db.VerbCountered
			detail = fmt.Sprintf("countered at %d", *amount)
		}
		_, _ = db.LogActivity(database, *id, viewer, verb, detail)
	}

	fmt.Printf("✓ Response sent: %s\n", *decision)
	printUpdate(update)
	return nil
}

// InspectionCommand submits an availability answer, optionally with a
// counter-proposed slot.
func InspectionCommand(client *api.Client, database *sql.DB, viewer models.Party, args []string) error {
	fs := flag.NewFlagSet("inspection", flag.ExitOnError)
	id := fs.String("id", "", "Negotiation ID (required)")
	status := fs.String("status", "", "available or unavailable (required)")
	date := fs.String("date", "", "Counter date (YYYY-MM-DD)")
	slot := fs.String("time", "", "Counter time (for example '2:00 PM')")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	req := api.InspectionRequest{Status: api.Availability(*status), Date: *date, Time: *slot}
	if err := req.Validate(); err != nil {
		return err
	}

	update, err := client.SubmitInspection(context.Background(), *id, req)
	if err != nil {
		return fmt.Errorf("failed to submit inspection response: %w", err)
	}

	if database != nil {
		_, _ = db.LogActivity(database, *id, viewer, db.VerbAvailabilitySubmitted, *status)
	}

	fmt.Printf("✓ Inspection response sent: %s\n", *status)
	printUpdate(update)
	return nil
}

func printUpdate(update *api.NegotiationUpdate) {
	if update == nil {
		return
	}
	if update.Status != "" {
		fmt.Printf("  Status: %s\n", update.Status)
	}
	if update.PendingResponseFrom != "" {
		fmt.Printf("  Awaiting: %s\n", update.PendingResponseFrom.Display())
	}
	if update.BuyOffer != 0 {
		fmt.Printf("  Offer: %d\n", update.BuyOffer)
	}
	if !update.InspectionSlot.IsZero() {
		fmt.Printf("  Inspection: %s at %s\n", update.InspectionSlot.Date, update.InspectionSlot.Time)
	}
}

// SlotsCommand prints the selectable inspection days and times.
func SlotsCommand(args []string) error {
	fs := flag.NewFlagSet("slots", flag.ExitOnError)
	_ = fs.Parse(args)

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "DATE\tDAY\tTIMES")

	for _, day := range negotiation.UpcomingInspectionDays(now) {
		times := negotiation.SlotTimesFor(day, now)
		if len(times) == 0 {
			_, _ = fmt.Fprintf(w, "%s\t%s\t(none left)\n", day.Format(negotiation.DateLayout), day.Weekday())
			continue
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s to %s\n", day.Format(negotiation.DateLayout), day.Weekday(), times[0], times[len(times)-1])
	}

	return w.Flush()
}

// ActivityCommand prints the local activity log for a thread.
func ActivityCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("activity", flag.ExitOnError)
	id := fs.String("id", "", "Negotiation ID (required)")
	limit := fs.Int("limit", 50, "Maximum entries")
	_ = fs.Parse(args)

	if *id == "" {
		return fmt.Errorf("--id is required")
	}

	activities, err := db.ListActivity(database, *id, *limit)
	if err != nil {
		return fmt.Errorf("failed to list activity: %w", err)
	}

	if len(activities) == 0 {
		fmt.Println("No local activity recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "WHEN\tACTOR\tACTION\tDETAIL")
	for _, a := range activities {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.CreatedAt.Format("2006-01-02 15:04"), a.Actor.Display(), a.Verb, a.Detail)
	}
	return w.Flush()
}

// ListCommand prints locally cached threads.
func ListCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Maximum threads")
	_ = fs.Parse(args)

	snaps, err := db.ListSnapshots(database, *limit)
	if err != nil {
		return fmt.Errorf("failed to list cached negotiations: %w", err)
	}

	if len(snaps) == 0 {
		fmt.Println("No cached negotiations. Fetch one with 'haggle nego show --id <id>'")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tOFFER\tPROPERTY\tFETCHED")
	for _, snap := range snaps {
		n := snap.Negotiation
		offer := fmt.Sprintf("%d", n.BuyOffer)
		if n.IsLOI() {
			offer = "LOI"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s, %s\t%s\n", n.ID, n.Status, offer, n.Property.Type, n.Property.Location, snap.FetchedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}
