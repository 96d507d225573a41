package routes

import (
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"

	"eventplanner-api/handlers"
	"eventplanner-api/services"
)

// SetupEventRoutes sets up protected event CRUD routes.
func SetupEventRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.EventHandler{DB: db}

	rg.GET("/events", h.GetEvents)
	rg.POST("/events", h.CreateEvent)
	rg.GET("/events/:id", h.GetEvent)
	rg.PUT("/events/:id", h.UpdateEvent)
	rg.DELETE("/events/:id", h.DeleteEvent)
}

// SetupGuestRoutes sets up protected guest CRUD routes.
func SetupGuestRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := &handlers.GuestHandler{DB: db, WS: ws}

	rg.GET("/guests", h.GetGuests)
	rg.POST("/guests", h.CreateGuest)
	rg.PUT("/guests/:id", h.UpdateGuest)
	rg.DELETE("/guests/:id", h.DeleteGuest)
}

// SetupTaskRoutes sets up protected task CRUD routes.
func SetupTaskRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.TaskHandler{DB: db}

	rg.GET("/tasks", h.GetTasks)
	rg.POST("/tasks", h.CreateTask)
	rg.PUT("/tasks/:id", h.UpdateTask)
	rg.DELETE("/tasks/:id", h.DeleteTask)
}

// SetupExpenseRoutes sets up protected expense CRUD routes.
func SetupExpenseRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := &handlers.ExpenseHandler{DB: db, WS: ws}

	rg.GET("/expenses", h.GetExpenses)
	rg.POST("/expenses", h.CreateExpense)
	rg.PUT("/expenses/:id", h.UpdateExpense)
	rg.DELETE("/expenses/:id", h.DeleteExpense)
	rg.GET("/events/:id/spending", h.GetEventSpending)
}

// SetupAnalyticsRoutes sets up the protected analytics route.
func SetupAnalyticsRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.AnalyticsHandler{Service: services.NewAnalyticsService(db)}

	rg.GET("/analytics", h.GetAnalytics)
}

// SetupInvitationRoutes wires the invitation issuer and its public
// redemption endpoint. The redemption route lives on the bare router since
// guests reach it from email links without a session.
func SetupInvitationRoutes(router *gin.Engine, protected *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	emailService := services.NewEmailService(os.Getenv("RESEND_API_KEY"), os.Getenv("FROM_EMAIL"))
	invitationService := services.NewInvitationService(
		services.NewGuestService(db),
		services.NewEventService(db),
		services.NewRSVPTokenStore(db),
		emailService,
		baseURL,
	)

	h := &handlers.InvitationHandler{DB: db, Service: invitationService, WS: ws}

	protected.POST("/invitations/send", h.SendInvitation)
	router.GET("/rsvp-response", h.RSVPResponse)
}
