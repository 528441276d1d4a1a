package service

import (
	"context"
	"strings"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/domain"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/idx"
)

// EventService owns calendar entries.
type EventService struct {
	Store store.Store
}

type CreateEventInput struct {
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
}

type UpdateEventInput struct {
	Title       string
	Description string
	Location    string
	StartTime   *time.Time
	EndTime     *time.Time
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return domain.Event{}, validationErrorf("Title field is missing in post body.")
	}
	if !in.EndTime.IsZero() && !in.StartTime.IsZero() && in.EndTime.Before(in.StartTime) {
		return domain.Event{}, validationErrorf("Event cannot end before it starts.")
	}

	event := domain.Event{
		ID:          idx.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	if err := s.Store.Events().CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return s.Store.Events().GetEventByID(ctx, event.ID)
}

func (s *EventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	return s.Store.Events().GetEventByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.Store.Events().ListEvents(ctx)
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, in UpdateEventInput) (domain.Event, error) {
	event, err := s.Store.Events().GetEventByID(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		event.Title = title
	}
	if in.Description != "" {
		event.Description = in.Description
	}
	if location := strings.TrimSpace(in.Location); location != "" {
		event.Location = location
	}
	if in.StartTime != nil {
		event.StartTime = *in.StartTime
	}
	if in.EndTime != nil {
		event.EndTime = *in.EndTime
	}
	if !event.EndTime.IsZero() && !event.StartTime.IsZero() && event.EndTime.Before(event.StartTime) {
		return domain.Event{}, validationErrorf("Event cannot end before it starts.")
	}

	if err := s.Store.Events().UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return s.Store.Events().GetEventByID(ctx, id)
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) (domain.Event, error) {
	return s.Store.Events().DeleteEvent(ctx, id)
}
