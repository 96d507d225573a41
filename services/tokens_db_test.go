package services

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"

	"eventplanner-api/config"
	"eventplanner-api/models"
)

// These tests run the Postgres-backed token store against a real database,
// since the supersession and claim-once guarantees live in its transactions.
// Set TEST_DATABASE_URL to a throwaway database to enable them.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping test database: %v", err)
	}
	if err := config.RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// seedGuest creates an event and one guest; the event cascade cleans both up
// along with any tokens.
func seedGuest(t *testing.T, db *sql.DB) (guestID, eventID string) {
	t.Helper()

	var userID string
	err := db.QueryRow(`
		INSERT INTO events (user_id, name, date, type)
		VALUES (uuid_generate_v4(), 'Store Test', CURRENT_DATE, 'physical')
		RETURNING id, user_id
	`).Scan(&eventID, &userID)
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM events WHERE id = $1`, eventID)
	})

	err = db.QueryRow(`
		INSERT INTO guests (user_id, event_id, name, email)
		VALUES ($1, $2, 'Ada', 'ada@example.com')
		RETURNING id
	`, userID, eventID).Scan(&guestID)
	if err != nil {
		t.Fatalf("seed guest: %v", err)
	}
	return guestID, eventID
}

func TestStoreConcurrentIssueLeavesOneLiveBatch(t *testing.T) {
	db := openTestDB(t)
	store := NewRSVPTokenStore(db)
	guestID, _ := seedGuest(t, db)
	ctx := context.Background()

	// Overlapping sends for the same guest must serialize on the guest
	// row: exactly one batch may survive, never two.
	const senders = 4
	var wg sync.WaitGroup
	errs := make(chan error, senders)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.IssueBatch(ctx, models.NewTokenBatch(guestID))
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("IssueBatch: %v", err)
		}
	}

	var total, live, maxGen int
	err := db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE NOT superseded AND redeemed_at IS NULL),
		       MAX(generation)
		FROM rsvp_tokens
		WHERE guest_id = $1
	`, guestID).Scan(&total, &live, &maxGen)
	if err != nil {
		t.Fatalf("count tokens: %v", err)
	}

	if total != senders*3 {
		t.Errorf("stored %d tokens, want %d", total, senders*3)
	}
	if live != 3 {
		t.Errorf("%d live tokens after concurrent issues, want 3", live)
	}
	if maxGen != senders {
		t.Errorf("max generation = %d, want %d", maxGen, senders)
	}

	// Only the latest generation is still redeemable.
	var liveGen int
	err = db.QueryRow(`
		SELECT DISTINCT generation FROM rsvp_tokens
		WHERE guest_id = $1 AND NOT superseded AND redeemed_at IS NULL
	`, guestID).Scan(&liveGen)
	if err != nil {
		t.Fatalf("live generation: %v", err)
	}
	if liveGen != maxGen {
		t.Errorf("live batch is generation %d, want %d", liveGen, maxGen)
	}
}

func TestStoreIssueBatchUnknownGuest(t *testing.T) {
	db := openTestDB(t)
	store := NewRSVPTokenStore(db)

	err := store.IssueBatch(context.Background(), models.NewTokenBatch("00000000-0000-0000-0000-000000000000"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("IssueBatch for unknown guest: %v, want ErrNotFound", err)
	}
}

func TestStoreRedeemClaimsOnceAndUpdatesGuest(t *testing.T) {
	db := openTestDB(t)
	store := NewRSVPTokenStore(db)
	guestID, eventID := seedGuest(t, db)
	ctx := context.Background()

	batch := models.NewTokenBatch(guestID)
	if err := store.IssueBatch(ctx, batch); err != nil {
		t.Fatalf("IssueBatch: %v", err)
	}

	red, err := store.Redeem(ctx, batch.Accept)
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if red.GuestID != guestID || red.EventID != eventID || red.Status != models.RSVPAccepted {
		t.Errorf("redemption = %+v", red)
	}

	var status string
	var respondedAt sql.NullTime
	err = db.QueryRow(`
		SELECT rsvp_status, responded_at FROM guests WHERE id = $1
	`, guestID).Scan(&status, &respondedAt)
	if err != nil {
		t.Fatalf("read guest: %v", err)
	}
	if status != string(models.RSVPAccepted) || !respondedAt.Valid {
		t.Errorf("guest after redemption: status=%s responded=%v", status, respondedAt.Valid)
	}

	// The claimed token is spent and its siblings died with the claim.
	if _, err := store.Redeem(ctx, batch.Accept); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("second redeem of same token: %v", err)
	}
	if _, err := store.Redeem(ctx, batch.Decline); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("sibling token still redeemable: %v", err)
	}
	if _, err := store.Redeem(ctx, batch.Maybe); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("sibling token still redeemable: %v", err)
	}
}

func TestStoreReissueRejectsStaleLinks(t *testing.T) {
	db := openTestDB(t)
	store := NewRSVPTokenStore(db)
	guestID, _ := seedGuest(t, db)
	ctx := context.Background()

	first := models.NewTokenBatch(guestID)
	if err := store.IssueBatch(ctx, first); err != nil {
		t.Fatalf("IssueBatch: %v", err)
	}
	second := models.NewTokenBatch(guestID)
	if err := store.IssueBatch(ctx, second); err != nil {
		t.Fatalf("IssueBatch: %v", err)
	}

	if _, err := store.Redeem(ctx, first.Accept); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("stale link redeemed: %v", err)
	}

	red, err := store.Redeem(ctx, second.Maybe)
	if err != nil {
		t.Fatalf("Redeem current batch: %v", err)
	}
	if red.Status != models.RSVPMaybe {
		t.Errorf("status = %s, want maybe", red.Status)
	}
}
