package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventplanner-api/middleware"
	"eventplanner-api/models"
	"eventplanner-api/utils"
)

type ExpenseHandler struct {
	DB *sql.DB
	WS *WSHandler
}

// CreateExpense records a budget line item against one of the user's
// events.
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.ExpenseStatusPending
	if req.Status != "" {
		status = models.ExpenseStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense status"})
			return
		}
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var owned bool
	err = h.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM events WHERE id = $1 AND user_id = $2)
	`, req.EventID, userID).Scan(&owned)
	if err != nil || !owned {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	expense := models.Expense{
		UserID:   userID,
		EventID:  req.EventID,
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Vendor:   req.Vendor,
		Date:     date,
		Status:   status,
		Receipt:  req.Receipt,
		Notes:    req.Notes,
	}

	err = h.DB.QueryRow(`
		INSERT INTO expenses (user_id, event_id, title, amount, category, vendor, date, status, receipt, notes)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, NULLIF($9, ''), NULLIF($10, ''))
		RETURNING id
	`, userID, req.EventID, req.Title, req.Amount, req.Category, req.Vendor,
		date, status, req.Receipt, req.Notes,
	).Scan(&expense.ID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create expense"})
		return
	}

	h.WS.BroadcastEventUpdate(expense.EventID, "expense_created", expense.ID)

	c.JSON(http.StatusCreated, expense)
}

// GetExpenses returns the user's expenses, optionally limited to one event
// via ?event_id=.
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := `
		SELECT id, user_id, event_id, title, amount, category,
		       COALESCE(vendor, ''), date, status, COALESCE(receipt, ''),
		       COALESCE(notes, '')
		FROM expenses
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if eventID := c.Query("event_id"); eventID != "" {
		query += " AND event_id = $2"
		args = append(args, eventID)
	}
	query += " ORDER BY date DESC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var x models.Expense
		err := rows.Scan(&x.ID, &x.UserID, &x.EventID, &x.Title, &x.Amount,
			&x.Category, &x.Vendor, &x.Date, &x.Status, &x.Receipt, &x.Notes)
		if err != nil {
			continue
		}
		expenses = append(expenses, x)
	}

	c.JSON(http.StatusOK, expenses)
}

// GetEventSpending returns an event's spent total against its budget.
func (h *ExpenseHandler) GetEventSpending(c *gin.Context) {
	userID := middleware.GetUserID(c)
	eventID := c.Param("id")

	var budget, spent float64
	err := h.DB.QueryRow(`
		SELECT e.budget, COALESCE(SUM(x.amount), 0)
		FROM events e
		LEFT JOIN expenses x ON x.event_id = e.id
		WHERE e.id = $1 AND e.user_id = $2
		GROUP BY e.budget
	`, eventID, userID).Scan(&budget, &spent)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spending"})
		return
	}

	utilization := 0.0
	if budget > 0 {
		utilization = spent / budget * 100
	}

	c.JSON(http.StatusOK, gin.H{
		"budget":              budget,
		"total_spent":         spent,
		"remaining":           budget - spent,
		"budget_utilization":  utilization,
		"display_total_spent": utils.FormatAmount(spent),
		"display_utilization": utils.FormatPercent(utilization),
	})
}

// UpdateExpense patches the provided fields of an expense.
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	expenseID := c.Param("id")

	var req models.UpdateExpenseRequest
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

	if req.Title != nil {
		sets = append(sets, "title = "+arg(*req.Title))
	}
	if req.Amount != nil {
		if *req.Amount < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be non-negative"})
			return
		}
		sets = append(sets, "amount = "+arg(*req.Amount))
	}
	if req.Category != nil {
		sets = append(sets, "category = "+arg(*req.Category))
	}
	if req.Vendor != nil {
		sets = append(sets, "vendor = NULLIF("+arg(*req.Vendor)+", '')")
	}
	if req.Date != nil {
		date, err := time.Parse(dateLayout, *req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		sets = append(sets, "date = "+arg(date))
	}
	if req.Status != nil {
		if !models.ExpenseStatus(*req.Status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expense status"})
			return
		}
		sets = append(sets, "status = "+arg(*req.Status))
	}
	if req.Receipt != nil {
		sets = append(sets, "receipt = NULLIF("+arg(*req.Receipt)+", '')")
	}
	if req.Notes != nil {
		sets = append(sets, "notes = NULLIF("+arg(*req.Notes)+", '')")
	}

	if len(sets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	query := "UPDATE expenses SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = " + arg(expenseID) + " AND user_id = " + arg(userID) + " RETURNING event_id"

	var eventID string
	err := h.DB.QueryRow(query, args...).Scan(&eventID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update expense"})
		return
	}

	h.WS.BroadcastEventUpdate(eventID, "expense_updated", expenseID)

	c.JSON(http.StatusOK, gin.H{"message": "Expense updated successfully"})
}

// DeleteExpense removes an expense.
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID := middleware.GetUserID(c)
	expenseID := c.Param("id")

	var eventID string
	err := h.DB.QueryRow(`
		DELETE FROM expenses
		WHERE id = $1 AND user_id = $2
		RETURNING event_id
	`, expenseID, userID).Scan(&eventID)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}

	h.WS.BroadcastEventUpdate(eventID, "expense_deleted", expenseID)

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}
