package models

// PeriodFilter restricts events to those dated in the same week, month or
// year as "now" before any statistics are computed.
type PeriodFilter string

const (
	PeriodWeek  PeriodFilter = "week"
	PeriodMonth PeriodFilter = "month"
	PeriodYear  PeriodFilter = "year"
)

// ParsePeriodFilter maps a query value to a filter, defaulting to month.
func ParsePeriodFilter(s string) PeriodFilter {
	switch PeriodFilter(s) {
	case PeriodWeek:
		return PeriodWeek
	case PeriodMonth:
		return PeriodMonth
	case PeriodYear:
		return PeriodYear
	default:
		return PeriodMonth
	}
}

// AnalyticsResult is the full set of derived statistics for one filter
// selection. Rates are raw percentages (not clamped, not rounded); display
// rounding is a formatting concern.
type AnalyticsResult struct {
	TotalEvents     int `json:"total_events"`
	ActiveEvents    int `json:"active_events"`
	CompletedEvents int `json:"completed_events"`

	TotalGuests    int     `json:"total_guests"`
	AcceptedGuests int     `json:"accepted_guests"`
	RSVPRate       float64 `json:"rsvp_rate"`

	TotalTasks         int     `json:"total_tasks"`
	CompletedTasks     int     `json:"completed_tasks"`
	TaskCompletionRate float64 `json:"task_completion_rate"`

	TotalBudget       float64 `json:"total_budget"`
	TotalSpent        float64 `json:"total_spent"`
	RemainingBudget   float64 `json:"remaining_budget"`
	BudgetUtilization float64 `json:"budget_utilization"`

	EventStatusBreakdown   map[EventStatus]int   `json:"event_status_breakdown"`
	GuestCategoryBreakdown map[GuestCategory]int `json:"guest_category_breakdown"`
}
