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

type TaskHandler struct {
	DB *sql.DB
}

// CreateTask adds a task to one of the user's events.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.TaskStatusTodo
	if req.Status != "" {
		status = models.TaskStatus(req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
			return
		}
	}

	priority := models.TaskPriorityMedium
	if req.Priority != "" {
		priority = models.TaskPriority(req.Priority)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task priority"})
			return
		}
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
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

	task := models.Task{
		UserID:      userID,
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     dueDate,
		Status:      status,
		Priority:    priority,
		Category:    req.Category,
	}

	err = h.DB.QueryRow(`
		INSERT INTO tasks (user_id, event_id, title, description, assigned_to, due_date, status, priority, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, userID, req.EventID, req.Title, req.Description, req.AssignedTo,
		dueDate, status, priority, req.Category,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

// GetTasks returns the user's tasks, optionally limited to one event via
// ?event_id=.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := `
		SELECT id, user_id, event_id, title, description, assigned_to,
		       due_date, status, priority, category, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
	`
	args := []interface{}{userID}

	if eventID := c.Query("event_id"); eventID != "" {
		query += " AND event_id = $2"
		args = append(args, eventID)
	}
	query += " ORDER BY due_date ASC"

	rows, err := h.DB.Query(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		err := rows.Scan(&t.ID, &t.UserID, &t.EventID, &t.Title,
			&t.Description, &t.AssignedTo, &t.DueDate, &t.Status,
			&t.Priority, &t.Category, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			continue
		}
		tasks = append(tasks, t)
	}

	c.JSON(http.StatusOK, tasks)
}

// UpdateTask patches the provided fields of a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID := middleware.GetUserID(c)
	taskID := c.Param("id")

	var req models.UpdateTaskRequest
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
	if req.Description != nil {
		sets = append(sets, "description = "+arg(*req.Description))
	}
	if req.AssignedTo != nil {
		sets = append(sets, "assigned_to = "+arg(*req.AssignedTo))
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date, expected YYYY-MM-DD"})
			return
		}
		sets = append(sets, "due_date = "+arg(dueDate))
	}
	if req.Status != nil {
		if !models.TaskStatus(*req.Status).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status"})
			return
		}
		sets = append(sets, "status = "+arg(*req.Status))
	}
	if req.Priority != nil {
		if !models.TaskPriority(*req.Priority).IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task priority"})
			return
		}
		sets = append(sets, "priority = "+arg(*req.Priority))
	}
	if req.Category != nil {
		sets = append(sets, "category = "+arg(*req.Category))
	}

	if len(sets) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	sets = append(sets, "updated_at = NOW()")

	query := "UPDATE tasks SET "
	for i, s := range sets {
		if i > 0 {
			query += ", "
		}
		query += s
	}
	query += " WHERE id = " + arg(taskID) + " AND user_id = " + arg(userID)

	result, err := h.DB.Exec(query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully"})
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID := middleware.GetUserID(c)
	taskID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM tasks
		WHERE id = $1 AND user_id = $2
	`, taskID, userID)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
