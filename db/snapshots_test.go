package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/haggle/models"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenDatabase(dbPath)
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testNegotiation(id string) *models.Negotiation {
	return &models.Negotiation{
		ID:                  id,
		Status:              models.StatusCountered,
		PendingResponseFrom: models.PartySeller,
		ListPrice:           45000000,
		BuyOffer:            40000000,
		InspectionSlot:      models.InspectionSlot{Date: "2025-12-15", Time: "10:00 AM"},
		Client:              models.ClientSnapshot{Name: "Ada Obi"},
		Property:            models.PropertySnapshot{Type: "Duplex", Location: "Lekki Phase 1"},
		CreatedAt:           time.Date(2025, 12, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestSaveAndGetSnapshot(t *testing.T) {
	db := testDB(t)

	n := testNegotiation("neg-1")
	if err := SaveSnapshot(db, n); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snap, err := GetSnapshot(db, "neg-1")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap == nil {
		t.Fatal("Expected a snapshot, got nil")
	}

	got := snap.Negotiation
	if got.Status != models.StatusCountered {
		t.Errorf("Status: want %s, got %s", models.StatusCountered, got.Status)
	}
	if got.PendingResponseFrom != models.PartySeller {
		t.Errorf("PendingResponseFrom: want seller, got %s", got.PendingResponseFrom)
	}
	if got.BuyOffer != 40000000 {
		t.Errorf("BuyOffer: want 40000000, got %d", got.BuyOffer)
	}
	if got.LetterOfIntention != nil {
		t.Errorf("LetterOfIntention: want nil, got %q", *got.LetterOfIntention)
	}
	if got.InspectionSlot.Date != "2025-12-15" || got.InspectionSlot.Time != "10:00 AM" {
		t.Errorf("InspectionSlot: got %+v", got.InspectionSlot)
	}
	if got.Client.Name != "Ada Obi" {
		t.Errorf("Client name: got %q", got.Client.Name)
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt should be recorded")
	}
}

func TestSaveSnapshotUpsert(t *testing.T) {
	db := testDB(t)

	n := testNegotiation("neg-1")
	if err := SaveSnapshot(db, n); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	n.Status = models.StatusAccepted
	n.BuyOffer = 42000000
	if err := SaveSnapshot(db, n); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	snap, err := GetSnapshot(db, "neg-1")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap.Negotiation.Status != models.StatusAccepted {
		t.Errorf("Status after upsert: want %s, got %s", models.StatusAccepted, snap.Negotiation.Status)
	}
	if snap.Negotiation.BuyOffer != 42000000 {
		t.Errorf("BuyOffer after upsert: want 42000000, got %d", snap.Negotiation.BuyOffer)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM negotiation_snapshots").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Upsert should keep a single row, got %d", count)
	}
}

func TestSaveSnapshotPreservesLOI(t *testing.T) {
	db := testDB(t)

	doc := "https://cdn.example.com/loi.pdf"
	n := testNegotiation("neg-loi")
	n.LetterOfIntention = &doc

	if err := SaveSnapshot(db, n); err != nil {
		t.Fatalf("SaveSnapshot failed: %v", err)
	}

	snap, err := GetSnapshot(db, "neg-loi")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap.Negotiation.LetterOfIntention == nil {
		t.Fatal("LetterOfIntention should round-trip")
	}
	if *snap.Negotiation.LetterOfIntention != doc {
		t.Errorf("LetterOfIntention: want %q, got %q", doc, *snap.Negotiation.LetterOfIntention)
	}
}

func TestGetSnapshotMissing(t *testing.T) {
	db := testDB(t)

	snap, err := GetSnapshot(db, "never-fetched")
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if snap != nil {
		t.Error("Expected nil for an unknown negotiation")
	}
}

func TestListSnapshotsOrder(t *testing.T) {
	db := testDB(t)

	for _, id := range []string{"neg-a", "neg-b", "neg-c"} {
		if err := SaveSnapshot(db, testNegotiation(id)); err != nil {
			t.Fatalf("SaveSnapshot(%s) failed: %v", id, err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	snaps, err := ListSnapshots(db, 0)
	if err != nil {
		t.Fatalf("ListSnapshots failed: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("Expected 3 snapshots, got %d", len(snaps))
	}
	if snaps[0].Negotiation.ID != "neg-c" {
		t.Errorf("Most recently fetched should come first, got %s", snaps[0].Negotiation.ID)
	}

	limited, err := ListSnapshots(db, 2)
	if err != nil {
		t.Fatalf("ListSnapshots with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 snapshots with limit, got %d", len(limited))
	}
}
