package models

import (
	"time"
)

type GuestCategory string

const (
	GuestCategoryGeneral   GuestCategory = "general"
	GuestCategoryVIP       GuestCategory = "vip"
	GuestCategorySpeaker   GuestCategory = "speaker"
	GuestCategoryVolunteer GuestCategory = "volunteer"
	GuestCategoryStaff     GuestCategory = "staff"
)

// GuestCategories lists every category in display order.
var GuestCategories = []GuestCategory{
	GuestCategoryGeneral,
	GuestCategoryVIP,
	GuestCategorySpeaker,
	GuestCategoryVolunteer,
	GuestCategoryStaff,
}

func (c GuestCategory) IsValid() bool {
	switch c {
	case GuestCategoryGeneral, GuestCategoryVIP, GuestCategorySpeaker, GuestCategoryVolunteer, GuestCategoryStaff:
		return true
	default:
		return false
	}
}

func (c GuestCategory) Label() string {
	switch c {
	case GuestCategoryGeneral:
		return "General"
	case GuestCategoryVIP:
		return "VIP"
	case GuestCategorySpeaker:
		return "Speakers"
	case GuestCategoryVolunteer:
		return "Volunteers"
	case GuestCategoryStaff:
		return "Staff"
	default:
		return string(c)
	}
}

type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
	RSVPMaybe    RSVPStatus = "maybe"
)

func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPPending, RSVPAccepted, RSVPDeclined, RSVPMaybe:
		return true
	default:
		return false
	}
}

// IsResponse reports whether the status is one a guest can answer with.
// Pending is the initial state and never a valid token binding.
func (s RSVPStatus) IsResponse() bool {
	switch s {
	case RSVPAccepted, RSVPDeclined, RSVPMaybe:
		return true
	case RSVPPending:
		return false
	default:
		return false
	}
}

type Guest struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	EventID     string        `json:"event_id"`
	Name        string        `json:"name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	Category    GuestCategory `json:"category"`
	RSVPStatus  RSVPStatus    `json:"rsvp_status"`
	InvitedAt   time.Time     `json:"invited_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

type CreateGuestRequest struct {
	EventID  string `json:"event_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

type UpdateGuestRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	Category   *string `json:"category"`
	RSVPStatus *string `json:"rsvp_status"`
	Notes      *string `json:"notes"`
}
