package services

import (
	"context"
	"fmt"
	"log"

	"eventplanner-api/models"
	"eventplanner-api/utils"
)

// Collaborator contracts for the issuer. The storage and mail services
// behind them are external concerns; the issuer only needs these narrow
// views of them.
type GuestReader interface {
	GuestByID(ctx context.Context, id string) (*models.Guest, error)
}

type EventReader interface {
	EventByID(ctx context.Context, id string) (*models.Event, error)
}

type TokenStore interface {
	// IssueBatch persists a fresh batch and supersedes every unredeemed
	// token of earlier batches for the same guest, atomically.
	IssueBatch(ctx context.Context, batch models.TokenBatch) error

	// Redeem atomically claims an unclaimed, live token, invalidates its
	// batch siblings and applies the bound status to the guest. Unknown,
	// claimed or superseded tokens yield ErrInvalidToken with no guest
	// mutation.
	Redeem(ctx context.Context, token string) (*models.RSVPRedemption, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// InvitationService mints RSVP token batches and dispatches invitation
// emails. Issue runs three phases in strict order: lookup, token
// persistence, email dispatch. A failure aborts the remaining phases.
type InvitationService struct {
	guests  GuestReader
	events  EventReader
	tokens  TokenStore
	mailer  Mailer
	baseURL string
}

func NewInvitationService(guests GuestReader, events EventReader, tokens TokenStore, mailer Mailer, baseURL string) *InvitationService {
	return &InvitationService{
		guests:  guests,
		events:  events,
		tokens:  tokens,
		mailer:  mailer,
		baseURL: baseURL,
	}
}

// Issue generates a three-token batch for the guest (accept/decline/maybe),
// stores it, and emails the guest three response links. Re-issuing for the
// same guest supersedes any earlier unredeemed batch: last write wins, and
// stale links stop redeeming.
func (s *InvitationService) Issue(ctx context.Context, guestID, eventID string) error {
	guest, err := s.guests.GuestByID(ctx, guestID)
	if err != nil {
		return &IssueError{Phase: PhaseLookup, Err: fmt.Errorf("guest %s: %w", guestID, err)}
	}

	event, err := s.events.EventByID(ctx, eventID)
	if err != nil {
		return &IssueError{Phase: PhaseLookup, Err: fmt.Errorf("event %s: %w", eventID, err)}
	}

	batch := models.NewTokenBatch(guest.ID)

	// Tokens minted but not stored must never reach an inbox.
	if err := s.tokens.IssueBatch(ctx, batch); err != nil {
		return &IssueError{Phase: PhasePersist, Err: err}
	}

	htmlBody, textBody, err := RenderInvitation(event, batch, s.baseURL)
	if err != nil {
		return &IssueError{Phase: PhaseDispatch, Err: err}
	}

	subject := fmt.Sprintf("You're invited to %s!", event.Name)
	if err := s.mailer.Send(ctx, guest.Email, subject, htmlBody, textBody); err != nil {
		return &IssueError{Phase: PhaseDispatch, Err: err}
	}

	log.Printf("📧 Invitation sent to %s for event %s", utils.MaskEmail(guest.Email), event.Name)
	return nil
}

// Redeem resolves a response link token to an RSVP update. Terminal per
// request: a failed redemption is never retried with the same token.
func (s *InvitationService) Redeem(ctx context.Context, token string) (*models.RSVPRedemption, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.tokens.Redeem(ctx, token)
}
