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

type EventHandler struct {
	DB *sql.DB
}

const dateLayout = "2006-01-02"

// CreateEvent creates a new event owned by the authenticated user.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eventType := models.EventType(req.Type)
	if !eventType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event type"})
		return
	}

	status := models.EventStatusPlanning
	if req.Status != "" {
		status = models.EventStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event status"})
			return
		}
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	event := models.Event{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    req.Location,
		Type:        eventType,
		Theme:       req.Theme,
		CoverImage:  req.CoverImage,
		Budget:      req.Budget,
		Status:      status,
	}

	err = h.DB.QueryRow(`
		INSERT INTO events (user_id, name, description, date, time, location, type, theme, cover_image, budget, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)
		RETURNING id, created_at, updated_at
	`, userID, req.Name, req.Description, date, req.Time, req.Location,
		eventType, req.Theme, req.CoverImage, req.Budget, status,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// GetEvents returns all events owned by the user, newest first.
func (h *EventHandler) GetEvents(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, user_id, name, description, date, time, location, type,
		       theme, COALESCE(cover_image, ''), budget, status, created_at, updated_at
		FROM events
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var e models.Event
		err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Description, &e.Date,
			&e.Time, &e.Location, &e.Type, &e.Theme, &e.CoverImage,
			&e.Budget, &e.Status, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			continue
		}
		events = append(events, e)
	}

	c.JSON(http.StatusOK, events)
}

// GetEvent returns a single event owned by the user.
func (h *EventHandler) GetEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	eventID := c.Param("id")

	var e models.Event
	err := h.DB.QueryRow(`
		SELECT id, user_id, name, description, date, time, location, type,
		       theme, COALESCE(cover_image, ''), budget, status, created_at, updated_at
		FROM events
		WHERE id = $1 AND user_id = $2
	`, eventID, userID).Scan(&e.ID, &e.UserID, &e.Name, &e.Description,
		&e.Date, &e.Time, &e.Location, &e.Type, &e.Theme, &e.CoverImage,
		&e.Budget, &e.Status, &e.CreatedAt, &e.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
		return
	}

	c.JSON(http.StatusOK, e)
}

// UpdateEvent patches the provided fields of an event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	eventID := c.Param("id")

	var req models.UpdateEventRequest
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
	if req.Description != nil {
		sets = append(sets, "description = "+arg(*req.Description))
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		sets = append(sets, "date = "+arg(date))
	}
	if req.Time != nil {
		sets = append(sets, "time = "+arg(*req.Time))
	}
	if req.Location != nil {
		sets = append(sets, "location = "+arg(*req.Location))
	}
	if req.Type != nil {
		if !models.EventType(*req.Type).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event type"})
			return
		}
		sets = append(sets, "type = "+arg(*req.Type))
	}
	if req.Theme != nil {
		sets = append(sets, "theme = "+arg(*req.Theme))
	}
	if req.CoverImage != nil {
		sets = append(sets, "cover_image = NULLIF("+arg(*req.CoverImage)+", '')")
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Budget must be non-negative"})
			return
		}
		sets = append(sets, "budget = "+arg(*req.Budget))
	}
	if req.Status != nil {
		if !models.EventStatus(*req.Status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event status"})
			return
		}
		sets = append(sets, "status = "+arg(*req.Status))
	}

	if len(sets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	sets = append(sets, "updated_at = NOW()")

	query := "UPDATE events SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = " + arg(eventID) + " AND user_id = " + arg(userID)

	result, err := h.DB.Exec(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

// DeleteEvent removes an event; tasks, guests and expenses cascade in the
// database.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	eventID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM events
		WHERE id = $1 AND user_id = $2
	`, eventID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
