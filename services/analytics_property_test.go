package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"eventplanner-api/models"
)

func genEventStatus() gopter.Gen {
	return gen.OneConstOf(
		models.EventStatusPlanning,
		models.EventStatusActive,
		models.EventStatusCompleted,
		models.EventStatusCancelled,
	)
}

func genRSVPStatus() gopter.Gen {
	return gen.OneConstOf(
		models.RSVPPending,
		models.RSVPAccepted,
		models.RSVPDeclined,
		models.RSVPMaybe,
	)
}

func genGuestCategory() gopter.Gen {
	return gen.OneConstOf(
		models.GuestCategoryGeneral,
		models.GuestCategoryVIP,
		models.GuestCategorySpeaker,
		models.GuestCategoryVolunteer,
		models.GuestCategoryStaff,
	)
}

type eventRow struct {
	ID     string
	Day    int
	Status models.EventStatus
	Budget float64
}

// genEvents generates events spread across the year containing now, so the
// period filters have both hits and misses to work with.
func genEvents(now time.Time) gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(eventRow{}), map[string]gopter.Gen{
		"ID":     gen.Identifier(),
		"Day":    gen.IntRange(1, 365),
		"Status": genEventStatus(),
		"Budget": gen.Float64Range(0, 50000),
	})).Map(func(rows []eventRow) []models.Event {
		events := make([]models.Event, len(rows))
		jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		for i, r := range rows {
			events[i] = models.Event{
				ID:     r.ID,
				Date:   jan1.AddDate(0, 0, r.Day-1),
				Status: r.Status,
				Budget: r.Budget,
			}
		}
		return events
	})
}

type guestRow struct {
	RSVP     models.RSVPStatus
	Category models.GuestCategory
}

// genGuestRows generates guest attributes; tests attach them to event ids.
func genGuestRows() gopter.Gen {
	return gen.SliceOf(gen.Struct(reflect.TypeOf(guestRow{}), map[string]gopter.Gen{
		"RSVP":     genRSVPStatus(),
		"Category": genGuestCategory(),
	}))
}

func TestAggregateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	// The status breakdown is a partition: every filtered event lands in
	// exactly one bucket, and the buckets sum back to the total.
	properties.Property("status breakdown partitions filtered events", prop.ForAll(
		func(events []models.Event, period string) bool {
			result := Aggregate(events, nil, nil, nil, models.PeriodFilter(period), "", now)
			sum := 0
			for _, n := range result.EventStatusBreakdown {
				sum += n
			}
			return sum == result.TotalEvents
		},
		genEvents(now),
		gen.OneConstOf("week", "month", "year"),
	))

	properties.Property("every breakdown key present even at zero", prop.ForAll(
		func(events []models.Event) bool {
			result := Aggregate(events, nil, nil, nil, models.PeriodYear, "", now)
			for _, s := range models.EventStatuses {
				if _, ok := result.EventStatusBreakdown[s]; !ok {
					return false
				}
			}
			for _, c := range models.GuestCategories {
				if _, ok := result.GuestCategoryBreakdown[c]; !ok {
					return false
				}
			}
			return true
		},
		genEvents(now),
	))

	properties.Property("active plus completed never exceeds total", prop.ForAll(
		func(events []models.Event) bool {
			result := Aggregate(events, nil, nil, nil, models.PeriodYear, "", now)
			return result.ActiveEvents+result.CompletedEvents <= result.TotalEvents
		},
		genEvents(now),
	))

	properties.Property("rsvp rate matches accepted over total", prop.ForAll(
		func(rows []guestRow) bool {
			event := models.Event{ID: "e1", Date: now, Status: models.EventStatusActive}
			guests := make([]models.Guest, len(rows))
			for i, r := range rows {
				guests[i] = models.Guest{EventID: "e1", RSVPStatus: r.RSVP, Category: r.Category}
			}
			result := Aggregate([]models.Event{event}, nil, guests, nil, models.PeriodYear, "", now)
			if result.TotalGuests == 0 {
				return result.RSVPRate == 0
			}
			want := float64(result.AcceptedGuests) / float64(result.TotalGuests) * 100
			return result.RSVPRate == want && result.RSVPRate >= 0 && result.RSVPRate <= 100
		},
		genGuestRows(),
	))

	properties.Property("guest categories partition counted guests", prop.ForAll(
		func(rows []guestRow) bool {
			guests := make([]models.Guest, len(rows))
			for i, r := range rows {
				guests[i] = models.Guest{EventID: "e1", RSVPStatus: r.RSVP, Category: r.Category}
			}
			event := models.Event{ID: "e1", Date: now, Status: models.EventStatusActive}
			result := Aggregate([]models.Event{event}, nil, guests, nil, models.PeriodYear, "", now)
			sum := 0
			for _, n := range result.GuestCategoryBreakdown {
				sum += n
			}
			return sum == result.TotalGuests
		},
		genGuestRows(),
	))

	properties.Property("remaining budget is budget minus spent", prop.ForAll(
		func(events []models.Event) bool {
			result := Aggregate(events, nil, nil, nil, models.PeriodYear, "", now)
			return result.RemainingBudget == result.TotalBudget-result.TotalSpent
		},
		genEvents(now),
	))

	properties.TestingRun(t)
}

func TestFilterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	// June 15 2025 is a Sunday, so its whole week bucket sits inside June
	// and the periods nest cleanly.
	now := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)

	properties.Property("narrower periods keep subsets", prop.ForAll(
		func(events []models.Event) bool {
			week := len(FilterEventsByPeriod(events, models.PeriodWeek, now))
			month := len(FilterEventsByPeriod(events, models.PeriodMonth, now))
			year := len(FilterEventsByPeriod(events, models.PeriodYear, now))
			return week <= month && month <= year && year <= len(events)
		},
		genEvents(now),
	))

	properties.Property("filtering is idempotent", prop.ForAll(
		func(events []models.Event) bool {
			once := FilterEventsByPeriod(events, models.PeriodMonth, now)
			twice := FilterEventsByPeriod(once, models.PeriodMonth, now)
			return len(once) == len(twice)
		},
		genEvents(now),
	))

	properties.TestingRun(t)
}
