package models

import (
	"time"
)

type EventType string

const (
	EventTypePhysical EventType = "physical"
	EventTypeVirtual  EventType = "virtual"
	EventTypeHybrid   EventType = "hybrid"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventTypePhysical, EventTypeVirtual, EventTypeHybrid:
		return true
	default:
		return false
	}
}

// Label returns the display form used in invitation emails (capitalized).
func (t EventType) Label() string {
	switch t {
	case EventTypePhysical:
		return "Physical"
	case EventTypeVirtual:
		return "Virtual"
	case EventTypeHybrid:
		return "Hybrid"
	default:
		return string(t)
	}
}

type EventStatus string

const (
	EventStatusPlanning  EventStatus = "planning"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// EventStatuses lists every status in display order.
var EventStatuses = []EventStatus{
	EventStatusPlanning,
	EventStatusActive,
	EventStatusCompleted,
	EventStatusCancelled,
}

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusPlanning, EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	default:
		return false
	}
}

func (s EventStatus) Label() string {
	switch s {
	case EventStatusPlanning:
		return "Planning"
	case EventStatusActive:
		return "Active"
	case EventStatusCompleted:
		return "Completed"
	case EventStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

type Event struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Time        string      `json:"time"`
	Location    string      `json:"location"`
	Type        EventType   `json:"type"`
	Theme       string      `json:"theme"`
	CoverImage  string      `json:"cover_image,omitempty"`
	Budget      float64     `json:"budget"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type CreateEventRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Date        string  `json:"date" binding:"required"`
	Time        string  `json:"time"`
	Location    string  `json:"location"`
	Type        string  `json:"type" binding:"required"`
	Theme       string  `json:"theme"`
	CoverImage  string  `json:"cover_image"`
	Budget      float64 `json:"budget" binding:"gte=0"`
	Status      string  `json:"status"`
}

type UpdateEventRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
	Time        *string  `json:"time"`
	Location    *string  `json:"location"`
	Type        *string  `json:"type"`
	Theme       *string  `json:"theme"`
	CoverImage  *string  `json:"cover_image"`
	Budget      *float64 `json:"budget"`
	Status      *string  `json:"status"`
}
