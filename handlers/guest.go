package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventplanner-api/middleware"
	"eventplanner-api/models"
)

type GuestHandler struct {
	DB *sql.DB
	WS *WSHandler
}

// CreateGuest adds a guest to one of the user's events. The invited_at
// timestamp is set at creation; rsvp_status starts as pending.
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.GuestCategoryGeneral
	if req.Category != "" {
		category = models.GuestCategory(req.Category)
		if !category.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest category"})
			return
		}
	}

	// Guests can only be attached to the caller's own events.
	var owned bool
	err := h.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM events WHERE id = $1 AND user_id = $2)
	`, req.EventID, userID).Scan(&owned)
	if err != nil || !owned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	guest := models.Guest{
		UserID:     userID,
		EventID:    req.EventID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Category:   category,
		RSVPStatus: models.RSVPPending,
		Notes:      req.Notes,
	}

	err = h.DB.QueryRow(`
		INSERT INTO guests (user_id, event_id, name, email, phone, category, rsvp_status, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, NULLIF($8, ''))
		RETURNING id, invited_at
	`, userID, req.EventID, req.Name, req.Email, req.Phone, category,
		models.RSVPPending, req.Notes,
	).Scan(&guest.ID, &guest.InvitedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest"})
		return
	}

	h.WS.BroadcastEventUpdate(guest.EventID, "guest_created", guest.ID)

	c.JSON(http.StatusCreated, guest)
}

// GetGuests returns the user's guests, optionally limited to one event via
// ?event_id=.
func (h *GuestHandler) GetGuests(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := `
		SELECT id, user_id, event_id, name, email, COALESCE(phone, ''),
		       category, rsvp_status, invited_at, responded_at, COALESCE(notes, '')
		FROM guests
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if eventID := c.Query("event_id"); eventID != "" {
		query += " AND event_id = $2"
		args = append(args, eventID)
	}
	query += " ORDER BY invited_at DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guests"})
		return
	}
	defer rows.Close()

	guests := []models.Guest{}
	for rows.Next() {
		var g models.Guest
		var respondedAt sql.NullTime
		err := rows.Scan(&g.ID, &g.UserID, &g.EventID, &g.Name, &g.Email,
			&g.Phone, &g.Category, &g.RSVPStatus, &g.InvitedAt,
			&respondedAt, &g.Notes)
		if err != nil {
			continue
		}
		if respondedAt.Valid {
			g.RespondedAt = &respondedAt.Time
		}
		guests = append(guests, g)
	}

	c.JSON(http.StatusOK, guests)
}

// UpdateGuest patches the provided fields of a guest. A manual rsvp_status
// change also stamps responded_at, the same as a token redemption would.
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	guestID := c.Param("id")

	var req models.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sets := []string{}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if req.Name != nil {
		sets = append(sets, "name = "+arg(*req.Name))
	}
	if req.Email != nil {
		sets = append(sets, "email = "+arg(*req.Email))
	}
	if req.Phone != nil {
		sets = append(sets, "phone = NULLIF("+arg(*req.Phone)+", '')")
	}
	if req.Category != nil {
		if !models.GuestCategory(*req.Category).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid guest category"})
			return
		}
		sets = append(sets, "category = "+arg(*req.Category))
	}
	if req.RSVPStatus != nil {
		status := models.RSVPStatus(*req.RSVPStatus)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid RSVP status"})
			return
		}
		sets = append(sets, "rsvp_status = "+arg(status))
		if status == models.RSVPPending {
			sets = append(sets, "responded_at = NULL")
		} else {
			sets = append(sets, "responded_at = "+arg(time.Now()))
		}
	}
	if req.Notes != nil {
		sets = append(sets, "notes = NULLIF("+arg(*req.Notes)+", '')")
	}

	if len(sets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	query := "UPDATE guests SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = " + arg(guestID) + " AND user_id = " + arg(userID) + " RETURNING event_id"

	var eventID string
	err := h.DB.QueryRow(query, args...).Scan(&eventID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update guest"})
		return
	}

	h.WS.BroadcastEventUpdate(eventID, "guest_updated", guestID)

	c.JSON(http.StatusOK, gin.H{"message": "Guest updated successfully"})
}

// DeleteGuest removes a guest; its RSVP tokens cascade in the database.
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	userID := middleware.GetUserID(c)
	guestID := c.Param("id")

	var eventID string
	err := h.DB.QueryRow(`
		DELETE FROM guests
		WHERE id = $1 AND user_id = $2
		RETURNING event_id
	`, guestID, userID).Scan(&eventID)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Guest not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete guest"})
		return
	}

	h.WS.BroadcastEventUpdate(eventID, "guest_deleted", guestID)

	c.JSON(http.StatusOK, gin.H{"message": "Guest deleted successfully"})
}
