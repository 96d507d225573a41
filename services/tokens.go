package services

import (
	"context"
	"database/sql"
	"fmt"

	"eventplanner-api/models"
	"eventplanner-api/utils"
)

// RSVPTokenStore is the Postgres-backed token store. Batch supersession and
// redemption both run inside a single transaction so that concurrent clicks
// on two links from the same batch can never both succeed.
type RSVPTokenStore struct {
	db *sql.DB
}

func NewRSVPTokenStore(db *sql.DB) *RSVPTokenStore {
	return &RSVPTokenStore{db: db}
}

func (s *RSVPTokenStore) IssueBatch(ctx context.Context, batch models.TokenBatch) error {
	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		// Issuance serializes on the guest row. Without the lock two
		// overlapping sends can both read the same max generation and both
		// miss each other's uncommitted rows in the supersede UPDATE,
		// leaving two live batches.
		var guestID string
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM guests WHERE id = $1 FOR UPDATE
		`, batch.GuestID).Scan(&guestID)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock guest: %w", err)
		}

		var generation int
		err = tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(generation), 0) + 1
			FROM rsvp_tokens
			WHERE guest_id = $1
		`, batch.GuestID).Scan(&generation)
		if err != nil {
			return fmt.Errorf("next token generation: %w", err)
		}

		// Last write wins: any earlier unredeemed batch stops being valid
		// the moment a new one is issued.
		_, err = tx.ExecContext(ctx, `
			UPDATE rsvp_tokens
			SET superseded = TRUE
			WHERE guest_id = $1 AND redeemed_at IS NULL
		`, batch.GuestID)
		if err != nil {
			return fmt.Errorf("supersede prior tokens: %w", err)
		}

		for _, t := range batch.Tokens() {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO rsvp_tokens (guest_id, token, status, generation)
				VALUES ($1, $2, $3, $4)
			`, t.GuestID, t.Token, t.Status, generation)
			if err != nil {
				return fmt.Errorf("insert %s token: %w", t.Status, err)
			}
		}

		return nil
	})
}

func (s *RSVPTokenStore) Redeem(ctx context.Context, token string) (*models.RSVPRedemption, error) {
	var redemption models.RSVPRedemption

	err := utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		// Claim-if-unclaimed: the UPDATE matches at most once per token
		// lifetime, so a concurrent redemption of the same or a sibling
		// token loses the race cleanly.
		var guestID string
		var status models.RSVPStatus
		err := tx.QueryRowContext(ctx, `
			UPDATE rsvp_tokens
			SET redeemed_at = NOW()
			WHERE token = $1 AND redeemed_at IS NULL AND NOT superseded
			RETURNING guest_id, status
		`, token).Scan(&guestID, &status)
		if err == sql.ErrNoRows {
			return ErrInvalidToken
		}
		if err != nil {
			return fmt.Errorf("claim token: %w", err)
		}

		// One answer per invitation round: the two unused siblings die with
		// the claim.
		_, err = tx.ExecContext(ctx, `
			UPDATE rsvp_tokens
			SET superseded = TRUE
			WHERE guest_id = $1 AND redeemed_at IS NULL
		`, guestID)
		if err != nil {
			return fmt.Errorf("invalidate batch: %w", err)
		}

		var eventID string
		err = tx.QueryRowContext(ctx, `
			UPDATE guests
			SET rsvp_status = $1, responded_at = NOW()
			WHERE id = $2
			RETURNING event_id
		`, status, guestID).Scan(&eventID)
		if err != nil {
			return fmt.Errorf("update guest rsvp: %w", err)
		}

		redemption = models.RSVPRedemption{
			GuestID: guestID,
			EventID: eventID,
			Status:  status,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &redemption, nil
}
