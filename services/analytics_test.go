package services

import (
	"math"
	"testing"
	"time"

	"eventplanner-api/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekNumber(t *testing.T) {
	// 2025 starts on a Wednesday, so week 1 runs Jan 1-4 and week 2
	// starts on Sunday Jan 5.
	cases := []struct {
		date time.Time
		want int
	}{
		{date(2025, time.January, 1), 1},
		{date(2025, time.January, 4), 1},
		{date(2025, time.January, 5), 2},
		{date(2025, time.January, 11), 2},
		{date(2025, time.January, 12), 3},
		// 2023 starts on a Sunday, so week 1 is a full Sun-Sat week.
		{date(2023, time.January, 1), 1},
		{date(2023, time.January, 7), 1},
		{date(2023, time.January, 8), 2},
		{date(2023, time.December, 31), 53},
	}
	for _, c := range cases {
		if got := WeekNumber(c.date); got != c.want {
			t.Errorf("WeekNumber(%s) = %d, want %d", c.date.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestFilterEventsByPeriod(t *testing.T) {
	now := date(2025, time.June, 15) // Sunday, start of a week bucket
	events := []models.Event{
		{ID: "same-day", Date: date(2025, time.June, 15)},
		{ID: "same-week", Date: date(2025, time.June, 18)},
		{ID: "same-month", Date: date(2025, time.June, 2)},
		{ID: "same-year", Date: date(2025, time.November, 30)},
		{ID: "last-year", Date: date(2024, time.June, 15)},
	}

	ids := func(evs []models.Event) map[string]bool {
		m := make(map[string]bool, len(evs))
		for _, e := range evs {
			m[e.ID] = true
		}
		return m
	}

	week := ids(FilterEventsByPeriod(events, models.PeriodWeek, now))
	if len(week) != 2 || !week["same-day"] || !week["same-week"] {
		t.Errorf("week filter kept %v, want same-day and same-week", week)
	}

	month := ids(FilterEventsByPeriod(events, models.PeriodMonth, now))
	if len(month) != 3 || !month["same-month"] {
		t.Errorf("month filter kept %v, want same-day, same-week, same-month", month)
	}

	year := ids(FilterEventsByPeriod(events, models.PeriodYear, now))
	if len(year) != 4 || year["last-year"] {
		t.Errorf("year filter kept %v, want everything but last-year", year)
	}
}

func TestAggregateEmptyInputs(t *testing.T) {
	got := Aggregate(nil, nil, nil, nil, models.PeriodMonth, "", date(2025, time.June, 15))

	if got.TotalEvents != 0 || got.TotalGuests != 0 || got.TotalTasks != 0 {
		t.Fatalf("expected zero counts, got %+v", got)
	}
	if got.RSVPRate != 0 || got.TaskCompletionRate != 0 || got.BudgetUtilization != 0 {
		t.Errorf("expected zero rates with empty denominators, got rsvp=%v tasks=%v budget=%v",
			got.RSVPRate, got.TaskCompletionRate, got.BudgetUtilization)
	}
	if len(got.EventStatusBreakdown) != len(models.EventStatuses) {
		t.Errorf("status breakdown missing keys: %v", got.EventStatusBreakdown)
	}
	if len(got.GuestCategoryBreakdown) != len(models.GuestCategories) {
		t.Errorf("category breakdown missing keys: %v", got.GuestCategoryBreakdown)
	}
	for s, n := range got.EventStatusBreakdown {
		if n != 0 {
			t.Errorf("empty input produced %s = %d", s, n)
		}
	}
}

func TestAggregateRates(t *testing.T) {
	now := date(2025, time.June, 15)
	events := []models.Event{
		{ID: "e1", Date: date(2025, time.June, 10), Status: models.EventStatusActive},
	}
	guests := []models.Guest{
		{EventID: "e1", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryGeneral},
		{EventID: "e1", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryVIP},
		{EventID: "e1", RSVPStatus: models.RSVPDeclined, Category: models.GuestCategoryGeneral},
		{EventID: "e1", RSVPStatus: models.RSVPPending, Category: models.GuestCategorySpeaker},
		{EventID: "e1", RSVPStatus: models.RSVPMaybe, Category: models.GuestCategoryGeneral},
	}

	got := Aggregate(events, nil, guests, nil, models.PeriodMonth, "", now)

	if got.TotalGuests != 5 || got.AcceptedGuests != 2 {
		t.Fatalf("guest counts = %d/%d, want 5/2", got.TotalGuests, got.AcceptedGuests)
	}
	if got.RSVPRate != 40 {
		t.Errorf("RSVPRate = %v, want 40", got.RSVPRate)
	}
	if got.GuestCategoryBreakdown[models.GuestCategoryGeneral] != 3 {
		t.Errorf("general guests = %d, want 3", got.GuestCategoryBreakdown[models.GuestCategoryGeneral])
	}
}

func TestAggregateThreeOfFourGuests(t *testing.T) {
	now := date(2025, time.June, 15)
	events := []models.Event{{ID: "e1", Date: now, Status: models.EventStatusActive}}
	guests := []models.Guest{
		{EventID: "e1", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryGeneral},
		{EventID: "e1", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryGeneral},
		{EventID: "e1", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryGeneral},
		{EventID: "e1", RSVPStatus: models.RSVPPending, Category: models.GuestCategoryGeneral},
	}

	got := Aggregate(events, nil, guests, nil, models.PeriodMonth, "", now)
	if got.RSVPRate != 75 {
		t.Errorf("RSVPRate = %v, want 75", got.RSVPRate)
	}
}

func TestAggregateBudget(t *testing.T) {
	now := date(2025, time.June, 15)
	events := []models.Event{
		{ID: "conf", Name: "Tech Conf", Date: date(2025, time.June, 20), Status: models.EventStatusActive, Budget: 10000},
	}
	expenses := []models.Expense{
		{EventID: "conf", Amount: 3000},
		{EventID: "conf", Amount: 4500},
		{EventID: "other", Amount: 99999}, // not in the filtered event set
	}
	tasks := []models.Task{
		{EventID: "conf", Status: models.TaskStatusCompleted},
		{EventID: "conf", Status: models.TaskStatusCompleted},
		{EventID: "conf", Status: models.TaskStatusTodo},
	}

	got := Aggregate(events, tasks, nil, expenses, models.PeriodMonth, "", now)

	if got.TotalBudget != 10000 || got.TotalSpent != 7500 {
		t.Fatalf("budget/spent = %v/%v, want 10000/7500", got.TotalBudget, got.TotalSpent)
	}
	if got.BudgetUtilization != 75 {
		t.Errorf("BudgetUtilization = %v, want 75", got.BudgetUtilization)
	}
	if got.RemainingBudget != 2500 {
		t.Errorf("RemainingBudget = %v, want 2500", got.RemainingBudget)
	}
	if math.Abs(got.TaskCompletionRate-200.0/3.0) > 1e-9 {
		t.Errorf("TaskCompletionRate = %v, want 66.66...", got.TaskCompletionRate)
	}
}

func TestAggregateCascadesFilterToChildren(t *testing.T) {
	now := date(2025, time.June, 15)
	events := []models.Event{
		{ID: "in", Date: date(2025, time.June, 1), Status: models.EventStatusPlanning, Budget: 500},
		{ID: "out", Date: date(2025, time.December, 1), Status: models.EventStatusPlanning, Budget: 9000},
	}
	guests := []models.Guest{
		{EventID: "in", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryGeneral},
		{EventID: "out", RSVPStatus: models.RSVPAccepted, Category: models.GuestCategoryGeneral},
	}
	tasks := []models.Task{
		{EventID: "out", Status: models.TaskStatusCompleted},
	}
	expenses := []models.Expense{
		{EventID: "out", Amount: 1000},
	}

	got := Aggregate(events, tasks, guests, expenses, models.PeriodMonth, "", now)

	if got.TotalEvents != 1 {
		t.Fatalf("TotalEvents = %d, want 1", got.TotalEvents)
	}
	if got.TotalGuests != 1 || got.TotalTasks != 0 || got.TotalSpent != 0 {
		t.Errorf("children not cascaded: guests=%d tasks=%d spent=%v",
			got.TotalGuests, got.TotalTasks, got.TotalSpent)
	}
	if got.TotalBudget != 500 {
		t.Errorf("TotalBudget = %v, want 500", got.TotalBudget)
	}
}

func TestAggregateStatusFilter(t *testing.T) {
	now := date(2025, time.June, 15)
	events := []models.Event{
		{ID: "a", Date: now, Status: models.EventStatusActive, Budget: 100},
		{ID: "b", Date: now, Status: models.EventStatusCompleted, Budget: 200},
		{ID: "c", Date: now, Status: models.EventStatusActive, Budget: 300},
	}

	got := Aggregate(events, nil, nil, nil, models.PeriodMonth, models.EventStatusActive, now)

	if got.TotalEvents != 2 || got.ActiveEvents != 2 || got.CompletedEvents != 0 {
		t.Fatalf("status filter: total=%d active=%d completed=%d",
			got.TotalEvents, got.ActiveEvents, got.CompletedEvents)
	}
	if got.TotalBudget != 400 {
		t.Errorf("TotalBudget = %v, want 400", got.TotalBudget)
	}
}
