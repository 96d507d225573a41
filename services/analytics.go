package services

import (
	"context"
	"database/sql"
	"math"
	"time"

	"eventplanner-api/models"
)

// WeekNumber computes the week-of-year bucket used by the week period
// filter. The formula is ceil((pastDaysOfYear + weekdayOfJan1 + 1) / 7) with
// a fractional day count. It is not the ISO-8601 week; the same function is
// applied to both "now" and each event date, so only bucket equality matters.
func WeekNumber(t time.Time) int {
	firstDay := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	pastDays := t.Sub(firstDay).Hours() / 24
	return int(math.Ceil((pastDays + float64(firstDay.Weekday()) + 1) / 7))
}

// FilterEventsByPeriod restricts events to those dated in the same week,
// month or year as now. Filtering always cascades from events; tasks, guests
// and expenses are never filtered against their own dates.
func FilterEventsByPeriod(events []models.Event, period models.PeriodFilter, now time.Time) []models.Event {
	filtered := make([]models.Event, 0, len(events))
	for _, e := range events {
		if e.Date.Year() != now.Year() {
			continue
		}
		switch period {
		case models.PeriodWeek:
			if WeekNumber(e.Date) == WeekNumber(now) {
				filtered = append(filtered, e)
			}
		case models.PeriodMonth:
			if e.Date.Month() == now.Month() {
				filtered = append(filtered, e)
			}
		case models.PeriodYear:
			filtered = append(filtered, e)
		default:
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Aggregate computes the derived statistics for one filter selection. Pure
// function over in-memory collections: no I/O, no error states, and every
// empty-input edge case yields a well-defined zero instead of NaN.
//
// statusFilter further restricts the event set when non-empty; the period
// filter applies first.
func Aggregate(
	events []models.Event,
	tasks []models.Task,
	guests []models.Guest,
	expenses []models.Expense,
	period models.PeriodFilter,
	statusFilter models.EventStatus,
	now time.Time,
) models.AnalyticsResult {
	filtered := FilterEventsByPeriod(events, period, now)
	if statusFilter != "" {
		kept := filtered[:0]
		for _, e := range filtered {
			if e.Status == statusFilter {
				kept = append(kept, e)
			}
		}
		filtered = kept
	}

	eventIDs := make(map[string]struct{}, len(filtered))
	for _, e := range filtered {
		eventIDs[e.ID] = struct{}{}
	}

	result := models.AnalyticsResult{
		TotalEvents:            len(filtered),
		EventStatusBreakdown:   make(map[models.EventStatus]int, len(models.EventStatuses)),
		GuestCategoryBreakdown: make(map[models.GuestCategory]int, len(models.GuestCategories)),
	}

	// Zero counts are valid breakdown entries.
	for _, s := range models.EventStatuses {
		result.EventStatusBreakdown[s] = 0
	}
	for _, c := range models.GuestCategories {
		result.GuestCategoryBreakdown[c] = 0
	}

	for _, e := range filtered {
		switch e.Status {
		case models.EventStatusActive:
			result.ActiveEvents++
		case models.EventStatusCompleted:
			result.CompletedEvents++
		case models.EventStatusPlanning, models.EventStatusCancelled:
		default:
		}
		result.EventStatusBreakdown[e.Status]++
		result.TotalBudget += e.Budget
	}

	for _, g := range guests {
		if _, ok := eventIDs[g.EventID]; !ok {
			continue
		}
		result.TotalGuests++
		if g.RSVPStatus == models.RSVPAccepted {
			result.AcceptedGuests++
		}
		result.GuestCategoryBreakdown[g.Category]++
	}

	for _, t := range tasks {
		if _, ok := eventIDs[t.EventID]; !ok {
			continue
		}
		result.TotalTasks++
		if t.Status == models.TaskStatusCompleted {
			result.CompletedTasks++
		}
	}

	for _, x := range expenses {
		if _, ok := eventIDs[x.EventID]; !ok {
			continue
		}
		result.TotalSpent += x.Amount
	}

	if result.TotalGuests > 0 {
		result.RSVPRate = float64(result.AcceptedGuests) / float64(result.TotalGuests) * 100
	}
	if result.TotalTasks > 0 {
		result.TaskCompletionRate = float64(result.CompletedTasks) / float64(result.TotalTasks) * 100
	}
	if result.TotalBudget > 0 {
		result.BudgetUtilization = result.TotalSpent / result.TotalBudget * 100
	}
	result.RemainingBudget = result.TotalBudget - result.TotalSpent

	return result
}

// AnalyticsService loads a user's collections and feeds them to Aggregate.
type AnalyticsService struct {
	db *sql.DB
}

func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Snapshot computes the analytics for one user and filter selection.
func (s *AnalyticsService) Snapshot(ctx context.Context, userID string, period models.PeriodFilter, statusFilter models.EventStatus) (models.AnalyticsResult, error) {
	events, err := s.loadEvents(ctx, userID)
	if err != nil {
		return models.AnalyticsResult{}, err
	}
	tasks, err := s.loadTasks(ctx, userID)
	if err != nil {
		return models.AnalyticsResult{}, err
	}
	guests, err := s.loadGuests(ctx, userID)
	if err != nil {
		return models.AnalyticsResult{}, err
	}
	expenses, err := s.loadExpenses(ctx, userID)
	if err != nil {
		return models.AnalyticsResult{}, err
	}

	return Aggregate(events, tasks, guests, expenses, period, statusFilter, time.Now()), nil
}

func (s *AnalyticsService) loadEvents(ctx context.Context, userID string) ([]models.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, budget, status FROM events WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var e models.Event
		if err := rows.Scan(&e.ID, &e.Date, &e.Budget, &e.Status); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *AnalyticsService) loadTasks(ctx context.Context, userID string) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, status FROM tasks WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.EventID, &t.Status); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *AnalyticsService) loadGuests(ctx context.Context, userID string) ([]models.Guest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, category, rsvp_status FROM guests WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.ID, &g.EventID, &g.Category, &g.RSVPStatus); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (s *AnalyticsService) loadExpenses(ctx context.Context, userID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, event_id, amount FROM expenses WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var x models.Expense
		if err := rows.Scan(&x.ID, &x.EventID, &x.Amount); err != nil {
			return nil, err
		}
		expenses = append(expenses, x)
	}
	return expenses, rows.Err()
}
