package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
)

// WSHandler pushes change signals to clients watching a single event, so
// dashboards can refetch and recompute their statistics instead of polling.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive configuration for cloud hosting behind proxies.
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		eventID, _ := s.Get("event_id")
		log.Printf("🔌 Client disconnected from event: %v", eventID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request and binds the session to one event.
func (h *WSHandler) HandleWS(c *gin.Context) {
	eventID := c.Param("id")

	err := h.M.HandleRequestWithKeys(c.Writer, c.Request, map[string]interface{}{
		"event_id": eventID,
	})
	if err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// BroadcastEventUpdate signals every client watching the event that one of
// its collections changed.
func (h *WSHandler) BroadcastEventUpdate(eventID, updateType, entityID string) {
	msg, err := json.Marshal(gin.H{
		"type":      updateType,
		"entity_id": entityID,
	})
	if err != nil {
		return
	}

	err = h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("event_id")
		return exists && id == eventID
	})

	if err != nil {
		log.Printf("⚠️ Error broadcasting to event %s: %v", eventID, err)
	}
}
