package services

import (
	"context"
	"database/sql"

	"eventplanner-api/models"
)

// GuestService reads guest records for server-side workflows (invitation
// issuance runs unscoped; request handlers enforce ownership themselves).
type GuestService struct {
	db *sql.DB
}

func NewGuestService(db *sql.DB) *GuestService {
	return &GuestService{db: db}
}

func (s *GuestService) GuestByID(ctx context.Context, id string) (*models.Guest, error) {
	var g models.Guest
	var phone, notes sql.NullString
	var respondedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, event_id, name, email, phone, category, rsvp_status,
		       invited_at, responded_at, notes
		FROM guests
		WHERE id = $1
	`, id).Scan(
		&g.ID, &g.UserID, &g.EventID, &g.Name, &g.Email, &phone,
		&g.Category, &g.RSVPStatus, &g.InvitedAt, &respondedAt, &notes,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	g.Phone = phone.String
	g.Notes = notes.String
	if respondedAt.Valid {
		g.RespondedAt = &respondedAt.Time
	}

	return &g, nil
}
