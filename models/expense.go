package models

import (
	"time"
)

type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "pending"
	ExpenseStatusPaid    ExpenseStatus = "paid"
	ExpenseStatusOverdue ExpenseStatus = "overdue"
)

func (s ExpenseStatus) IsValid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusPaid, ExpenseStatusOverdue:
		return true
	default:
		return false
	}
}

type Expense struct {
	ID       string        `json:"id"`
	UserID   string        `json:"user_id"`
	EventID  string        `json:"event_id"`
	Title    string        `json:"title"`
	Amount   float64       `json:"amount"`
	Category string        `json:"category"`
	Vendor   string        `json:"vendor,omitempty"`
	Date     time.Time     `json:"date"`
	Status   ExpenseStatus `json:"status"`
	Receipt  string        `json:"receipt,omitempty"`
	Notes    string        `json:"notes,omitempty"`
}

type CreateExpenseRequest struct {
	EventID  string  `json:"event_id" binding:"required"`
	Title    string  `json:"title" binding:"required"`
	Amount   float64 `json:"amount" binding:"gte=0"`
	Category string  `json:"category" binding:"required"`
	Vendor   string  `json:"vendor"`
	Date     string  `json:"date" binding:"required"`
	Status   string  `json:"status"`
	Receipt  string  `json:"receipt"`
	Notes    string  `json:"notes"`
}

type UpdateExpenseRequest struct {
	Title    *string  `json:"title"`
	Amount   *float64 `json:"amount"`
	Category *string  `json:"category"`
	Vendor   *string  `json:"vendor"`
	Date     *string  `json:"date"`
	Status   *string  `json:"status"`
	Receipt  *string  `json:"receipt"`
	Notes    *string  `json:"notes"`
}
