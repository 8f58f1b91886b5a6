// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

// The local database is a cache and audit trail, never an authority: the
// marketplace server owns negotiation state and the snapshot table only
// mirrors the last fetch.
const schema = `
CREATE TABLE IF NOT EXISTS negotiation_snapshots (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL CHECK(status IN ('pending_inspection', 'negotiation_countered', 'negotiation_accepted', 'offer_rejected', 'completed', 'cancelled')),
	pending_response_from TEXT NOT NULL CHECK(pending_response_from IN ('buyer', 'seller')),
	list_price INTEGER NOT NULL,
	buy_offer INTEGER NOT NULL,
	letter_of_intention TEXT,
	inspection_date TEXT,
	inspection_time TEXT,
	client_name TEXT,
	property_type TEXT,
	property_location TEXT,
	thread_created_at DATETIME NOT NULL,
	fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_status ON negotiation_snapshots(status);
CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON negotiation_snapshots(fetched_at DESC);

CREATE TABLE IF NOT EXISTS activity_log (
	id TEXT PRIMARY KEY,
	negotiation_id TEXT NOT NULL,
	actor TEXT NOT NULL CHECK(actor IN ('buyer', 'seller')),
	verb TEXT NOT NULL CHECK(verb IN ('fetched', 'accepted', 'rejected', 'countered', 'date_countered', 'date_reset', 'availability_submitted', 'decision_submitted')),
	detail TEXT,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activity_negotiation ON activity_log(negotiation_id);
CREATE INDEX IF NOT EXISTS idx_activity_created_at ON activity_log(created_at DESC);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
