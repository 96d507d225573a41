package models

import (
	"time"

	"github.com/google/uuid"
)

// RSVPToken binds an opaque single-use token to a guest and the response it
// encodes. Exactly three tokens form a batch (one per response status), all
// sharing a generation number. Re-issuing an invitation supersedes every
// unredeemed token of earlier generations for that guest.
type RSVPToken struct {
	ID         string     `json:"id"`
	GuestID    string     `json:"guest_id"`
	Token      string     `json:"token"`
	Status     RSVPStatus `json:"status"`
	Generation int        `json:"generation"`
	Superseded bool       `json:"superseded"`
	RedeemedAt *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TokenBatch is one invitation round: accept, decline and maybe tokens
// minted together for a single guest.
type TokenBatch struct {
	GuestID string
	Accept  string
	Decline string
	Maybe   string
}

// NewTokenBatch mints three fresh opaque tokens for a guest. Tokens are
// random v4 UUIDs, same as the ids everywhere else.
func NewTokenBatch(guestID string) TokenBatch {
	return TokenBatch{
		GuestID: guestID,
		Accept:  uuid.New().String(),
		Decline: uuid.New().String(),
		Maybe:   uuid.New().String(),
	}
}

// Tokens returns the batch as token/status pairs, in insert order.
func (b TokenBatch) Tokens() []RSVPToken {
	return []RSVPToken{
		{GuestID: b.GuestID, Token: b.Accept, Status: RSVPAccepted},
		{GuestID: b.GuestID, Token: b.Decline, Status: RSVPDeclined},
		{GuestID: b.GuestID, Token: b.Maybe, Status: RSVPMaybe},
	}
}

// TokenFor returns the batch token bound to the given response status.
func (b TokenBatch) TokenFor(status RSVPStatus) string {
	switch status {
	case RSVPAccepted:
		return b.Accept
	case RSVPDeclined:
		return b.Decline
	case RSVPMaybe:
		return b.Maybe
	default:
		return ""
	}
}

// RSVPRedemption is the outcome of a successful token redemption.
type RSVPRedemption struct {
	GuestID string     `json:"guest_id"`
	EventID string     `json:"event_id"`
	Status  RSVPStatus `json:"status"`
}
