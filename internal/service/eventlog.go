package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/repository"
)

// EventFilter supports feed filtering by time range and event type.
type EventFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "CREATED", "DELETED"
}

type EventLogService struct {
	events repository.Events
}

func NewEventLogService(events repository.Events) *EventLogService {
	return &EventLogService{events: events}
}

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f EventFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	return from, to, eventType, nil
}

func (s *EventLogService) List(ctx context.Context, f EventFilter) ([]models.BlogEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, from, to, typ)
}
