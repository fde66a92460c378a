package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/usm-dti/event-tracker-api/internal/models"
)

// FilterEvents derives the visible subset of events for the given criteria.
// All conditions AND together; store order is preserved. Stored records are
// trusted to satisfy endDate >= startDate, the CRUD boundary enforces it.
func FilterEvents(events []models.Event, criteria models.FilterCriteria) []models.Event {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	matched := make([]models.Event, 0, len(events))
	for _, event := range events {
		if query != "" && !strings.Contains(strings.ToLower(event.Title), query) {
			continue
		}
		if !matchesTaxonomy(criteria.Category, event.Category) {
			continue
		}
		if !matchesTaxonomy(criteria.Public, event.Public) {
			continue
		}
		if criteria.SelectedDate != "" {
			if event.StartDate > criteria.SelectedDate || event.EndDate < criteria.SelectedDate {
				continue
			}
		}
		matched = append(matched, event)
	}
	return matched
}

func matchesTaxonomy(criterion, value string) bool {
	return criterion == "" || criterion == models.FilterWildcard || criterion == value
}

// UpcomingEvents retains events not yet fully elapsed (endDate >= today),
// sorted ascending by start date and truncated to limit. The current date is
// injected by the caller to keep the derivation pure.
func UpcomingEvents(events []models.Event, today string, limit int) []models.Event {
	upcoming := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.EndDate >= today {
			upcoming = append(upcoming, event)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartDate < upcoming[j].StartDate
	})
	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// EventOptions derives the categorical filter choices from the collection,
// in first-appearance order.
func EventOptions(events []models.Event) models.EventOptions {
	options := models.EventOptions{
		Categories: make([]string, 0, 4),
		Publics:    make([]string, 0, 4),
	}
	seenCategory := make(map[string]struct{})
	seenPublic := make(map[string]struct{})
	for _, event := range events {
		if _, ok := seenCategory[event.Category]; !ok && event.Category != "" {
			seenCategory[event.Category] = struct{}{}
			options.Categories = append(options.Categories, event.Category)
		}
		if _, ok := seenPublic[event.Public]; !ok && event.Public != "" {
			seenPublic[event.Public] = struct{}{}
			options.Publics = append(options.Publics, event.Public)
		}
	}
	return options
}

// MonthOccupancy lists, for a YYYY-MM month, the days covered by at least one
// event together with the covering event ids.
func MonthOccupancy(events []models.Event, month string) ([]models.CalendarDay, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	days := make([]models.CalendarDay, 0)
	for cursor := first; cursor.Month() == first.Month(); cursor = cursor.AddDate(0, 0, 1) {
		date := cursor.Format("2006-01-02")
		var ids []string
		for _, event := range events {
			if event.StartDate <= date && event.EndDate >= date {
				ids = append(ids, event.ID)
			}
		}
		if len(ids) > 0 {
			days = append(days, models.CalendarDay{Date: date, EventIDs: ids})
		}
	}
	return days, nil
}
