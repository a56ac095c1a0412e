// Package availability turns the raw slot list returned by the backend
// into a deduplicated, display-ready sequence. The projection is advisory:
// it never mutates its input and has no failure mode.
package availability

import (
	"sort"
	"time"

	"github.com/tutorhive/booking_gateway/models"
)

// group accumulates the recurring instances sharing one weekly window.
type group struct {
	summary  models.AvailabilitySlot
	earliest time.Time
	latest   time.Time
	endDate  *string
}

// Project filters out booked slots, passes non-recurring slots through
// unchanged, and collapses recurring instances into one summary slot per
// (weekday, start clock, end clock) bucket. The summary keeps the earliest
// occurrence's start and carries the explicit recurrence end date if any
// instance had one, otherwise the latest observed occurrence date. Output
// is sorted ascending by start time. A slot whose times fail to parse is
// treated as non-recurring and passed through, so malformed upstream data
// stays visible instead of silently disappearing.
func Project(slots []models.AvailabilitySlot) []models.AvailabilitySlot {
	var passthrough []models.AvailabilitySlot
	groups := make(map[string]*group)
	var order []string

	for _, s := range slots {
		if s.IsBooked {
			continue
		}
		start, startErr := time.Parse(time.RFC3339, s.StartTime)
		end, endErr := time.Parse(time.RFC3339, s.EndTime)
		if !s.IsRecurring || startErr != nil || endErr != nil {
			passthrough = append(passthrough, s)
			continue
		}

		// Bucket by clock time, not calendar date: weekly instances share
		// a time window but differ in date.
		key := s.RecurringDay + "|" + start.Format("15:04:05") + "|" + end.Format("15:04:05")
		g, ok := groups[key]
		if !ok {
			groups[key] = &group{summary: s, earliest: start, latest: start, endDate: s.RecurrenceEndDate}
			order = append(order, key)
			continue
		}
		if start.Before(g.earliest) {
			g.summary = s
			g.earliest = start
		}
		if start.After(g.latest) {
			g.latest = start
		}
		if g.endDate == nil && s.RecurrenceEndDate != nil {
			g.endDate = s.RecurrenceEndDate
		}
	}

	out := make([]models.AvailabilitySlot, 0, len(passthrough)+len(order))
	out = append(out, passthrough...)
	for _, key := range order {
		g := groups[key]
		summary := g.summary
		if g.endDate != nil {
			summary.RecurrenceEndDate = g.endDate
		} else {
			// No explicit end is known; assume the series runs through the
			// latest sample observed.
			until := g.latest.Format("2006-01-02")
			summary.RecurrenceEndDate = &until
		}
		out = append(out, summary)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return startOf(out[i]).Before(startOf(out[j]))
	})
	return out
}

// startOf is the sort key; unparsable starts sort as the zero time so
// malformed slots surface at the front of the list.
func startOf(s models.AvailabilitySlot) time.Time {
	t, err := time.Parse(time.RFC3339, s.StartTime)
	if err != nil {
		return time.Time{}
	}
	return t
}
