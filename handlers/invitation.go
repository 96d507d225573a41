package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"eventplanner-api/middleware"
	"eventplanner-api/models"
	"eventplanner-api/services"
	"eventplanner-api/utils"
)

type InvitationHandler struct {
	DB      *sql.DB
	Service *services.InvitationService
	WS      *WSHandler
}

type sendInvitationRequest struct {
	GuestID string `json:"guest_id" binding:"required"`
	EventID string `json:"event_id" binding:"required"`
}

// SendInvitation mints a fresh RSVP token batch for a guest and emails the
// three response links. Safe to retry: each call supersedes the previous
// batch.
func (h *InvitationHandler) SendInvitation(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req sendInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The guest must belong to this user's event before any tokens exist.
	var owned bool
	err := h.DB.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM guests
			WHERE id = $1 AND event_id = $2 AND user_id = $3
		)
	`, req.GuestID, req.EventID, userID).Scan(&owned)

	if err != nil || !owned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if err := h.Service.Issue(c.Request.Context(), req.GuestID, req.EventID); err != nil {
		var issueErr *services.IssueError
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Guest or event not found"})
		case errors.As(err, &issueErr) && issueErr.Phase == services.PhaseDispatch:
			log.Printf("❌ Invitation dispatch failed for guest %s: %v", utils.MaskID(req.GuestID), err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send invitation email"})
		default:
			log.Printf("❌ Invitation issue failed for guest %s: %v", utils.MaskID(req.GuestID), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create invitation"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invitation sent successfully"})
}

// RSVPResponse is the public redemption endpoint the email links point at.
// It renders a small HTML outcome page rather than JSON since guests land
// here from their mail client.
func (h *InvitationHandler) RSVPResponse(c *gin.Context) {
	token := c.Query("token")

	redemption, err := h.Service.Redeem(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.Data(http.StatusGone, "text/html; charset=utf-8", responsePage(
				"Link no longer valid",
				"This invitation link is invalid or has expired. If you think this is a mistake, please contact the event organizer.",
			))
			return
		}
		log.Printf("❌ Token redemption failed: %v", err)
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8", responsePage(
			"Something went wrong",
			"We couldn't record your response. Please try again later.",
		))
		return
	}

	h.WS.BroadcastEventUpdate(redemption.EventID, "rsvp_updated", redemption.GuestID)

	var headline, detail string
	switch redemption.Status {
	case models.RSVPAccepted:
		headline = "See you there! 🎉"
		detail = "Your attendance is confirmed. The organizer has been notified."
	case models.RSVPDeclined:
		headline = "Sorry you can't make it"
		detail = "Your response has been recorded. The organizer has been notified."
	case models.RSVPMaybe:
		headline = "Thanks for letting us know"
		detail = "You're marked as a maybe. You can respond again if the organizer re-sends the invitation."
	default:
		headline = "Response recorded"
		detail = "Thank you for responding."
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", responsePage(headline, detail))
}

func responsePage(headline, detail string) []byte {
	return []byte(fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Event Invitation</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background: #f9fafb; margin: 0; padding: 40px 20px; }
        .card { max-width: 480px; margin: 0 auto; background: white; border-radius: 12px; padding: 40px; text-align: center; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
        h1 { color: #1f2937; font-size: 24px; margin: 0 0 16px 0; }
        p { color: #6b7280; font-size: 16px; line-height: 1.6; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>`, headline, detail))
}
