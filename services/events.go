package services

import (
	"context"
	"database/sql"

	"eventplanner-api/models"
)

// EventService reads event records for server-side workflows.
type EventService struct {
	db *sql.DB
}

func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

func (s *EventService) EventByID(ctx context.Context, id string) (*models.Event, error) {
	var e models.Event
	var coverImage sql.NullString

	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, date, time, location, type,
		       theme, cover_image, budget, status, created_at, updated_at
		FROM events
		WHERE id = $1
	`, id).Scan(
		&e.ID, &e.UserID, &e.Name, &e.Description, &e.Date, &e.Time,
		&e.Location, &e.Type, &e.Theme, &coverImage, &e.Budget, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	e.CoverImage = coverImage.String
	return &e, nil
}
