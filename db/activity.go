// ABOUTME: Local activity log operations
// ABOUTME: Records every negotiation action taken from this machine
package db

import (
	"database/sql"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/haggle/models"
)

// Verb names the action recorded in the activity log.
type Verb string

const (
	VerbFetched               Verb = "fetched"
	VerbAccepted              Verb = "accepted"
	VerbRejected              Verb = "rejected"
	VerbCountered             Verb = "countered"
	VerbDateCountered         Verb = "date_countered"
	VerbDateReset             Verb = "date_reset"
	VerbAvailabilitySubmitted Verb = "availability_submitted"
	VerbDecisionSubmitted     Verb = "decision_submitted"
)

// Activity is one logged action against a negotiation thread.
type Activity struct {
	ID            string
	NegotiationID string
	Actor         models.Party
	Verb          Verb
	Detail        string
	CreatedAt     time.Time
}

// newActivityID generates a lexically sortable ULID so the log orders by
// insertion even when timestamps collide.
func newActivityID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// LogActivity appends one entry to the local log.
func LogActivity(db *sql.DB, negotiationID string, actor models.Party, verb Verb, detail string) (*Activity, error) {
	activity := &Activity{
		ID:            newActivityID(),
		NegotiationID: negotiationID,
		Actor:         actor,
		Verb:          verb,
		Detail:        detail,
		CreatedAt:     time.Now(),
	}

	_, err := db.Exec(`
		INSERT INTO activity_log (id, negotiation_id, actor, verb, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, activity.ID, activity.NegotiationID, string(activity.Actor), string(activity.Verb), activity.Detail, activity.CreatedAt)
	if err != nil {
		return nil, err
	}

	return activity, nil
}

// ListActivity returns the log for one negotiation, newest first.
func ListActivity(db *sql.DB, negotiationID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, negotiation_id, actor, verb, detail, created_at
		FROM activity_log
		WHERE negotiation_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, negotiationID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		var a Activity
		var actor, verb string
		if err := rows.Scan(&a.ID, &a.NegotiationID, &actor, &verb, &a.Detail, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Actor = models.Party(actor)
		a.Verb = Verb(verb)
		activities = append(activities, a)
	}

	return activities, rows.Err()
}
