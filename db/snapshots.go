// ABOUTME: Negotiation snapshot cache operations
// ABOUTME: Mirrors the last fetched server state for offline display
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/haggle/models"
)

// Snapshot pairs a cached negotiation with the moment it was fetched.
type Snapshot struct {
	Negotiation models.Negotiation
	FetchedAt   time.Time
}

// SaveSnapshot upserts the latest fetched state for a negotiation.
func SaveSnapshot(db *sql.DB, n *models.Negotiation) error {
	_, err := db.Exec(`
		INSERT INTO negotiation_snapshots (id, status, pending_response_from, list_price, buy_offer, letter_of_intention, inspection_date, inspection_time, client_name, property_type, property_location, thread_created_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			pending_response_from = excluded.pending_response_from,
			list_price = excluded.list_price,
			buy_offer = excluded.buy_offer,
			letter_of_intention = excluded.letter_of_intention,
			inspection_date = excluded.inspection_date,
			inspection_time = excluded.inspection_time,
			client_name = excluded.client_name,
			property_type = excluded.property_type,
			property_location = excluded.property_location,
			thread_created_at = excluded.thread_created_at,
			fetched_at = excluded.fetched_at
	`, n.ID, n.Status, string(n.PendingResponseFrom), n.ListPrice, n.BuyOffer, n.LetterOfIntention,
		n.InspectionSlot.Date, n.InspectionSlot.Time, n.Client.Name, n.Property.Type,
		n.Property.Location, n.CreatedAt, time.Now())

	return err
}

// GetSnapshot loads the cached state for a negotiation, or nil when the
// thread has never been fetched on this machine.
func GetSnapshot(db *sql.DB, id string) (*Snapshot, error) {
	snap := &Snapshot{}
	n := &snap.Negotiation
	var loi sql.NullString
	var pending string

	err := db.QueryRow(`
		SELECT id, status, pending_response_from, list_price, buy_offer, letter_of_intention, inspection_date, inspection_time, client_name, property_type, property_location, thread_created_at, fetched_at
		FROM negotiation_snapshots WHERE id = ?
	`, id).Scan(
		&n.ID,
		&n.Status,
		&pending,
		&n.ListPrice,
		&n.BuyOffer,
		&loi,
		&n.InspectionSlot.Date,
		&n.InspectionSlot.Time,
		&n.Client.Name,
		&n.Property.Type,
		&n.Property.Location,
		&n.CreatedAt,
		&snap.FetchedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	n.PendingResponseFrom = models.Party(pending)
	if loi.Valid {
		n.LetterOfIntention = &loi.String
	}

	return snap, nil
}

// ListSnapshots returns cached negotiations, most recently fetched first.
func ListSnapshots(db *sql.DB, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := db.Query(`
		SELECT id, status, pending_response_from, list_price, buy_offer, letter_of_intention, inspection_date, inspection_time, client_name, property_type, property_location, thread_created_at, fetched_at
		FROM negotiation_snapshots
		ORDER BY fetched_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		n := &snap.Negotiation
		var loi sql.NullString
		var pending string

		if err := rows.Scan(&n.ID, &n.Status, &pending, &n.ListPrice, &n.BuyOffer, &loi,
			&n.InspectionSlot.Date, &n.InspectionSlot.Time, &n.Client.Name, &n.Property.Type,
			&n.Property.Location, &n.CreatedAt, &snap.FetchedAt); err != nil {
			return nil, err
		}

		n.PendingResponseFrom = models.Party(pending)
		if loi.Valid {
			s := loi.String
			n.LetterOfIntention = &s
		}

		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}
