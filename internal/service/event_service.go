package service

import (
	"context"
	"strings"

	"github.com/xxxsen/bizdir/internal/model"
	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
	"github.com/xxxsen/bizdir/internal/pkg/timeutil"
	"github.com/xxxsen/bizdir/internal/repo"
)

type EventInput struct {
	Title       string               `json:"title"`
	Date        int64                `json:"date"`
	Location    model.EventLocation  `json:"location"`
	Organizer   model.EventOrganizer `json:"organizer"`
	Theme       string               `json:"theme"`
	Summary     string               `json:"summary"`
	Description string               `json:"description"`
	Schedule    []model.EventSession `json:"schedule"`
}

type EventService struct {
	events *repo.EventRepo
}

func NewEventService(events *repo.EventRepo) *EventService {
	return &EventService{events: events}
}

// List returns events ordered by date. With upcoming set only events from
// now on are returned.
func (s *EventService) List(ctx context.Context, state string, upcoming bool, limit int) ([]model.Event, error) {
	filter := repo.EventFilter{State: strings.ToUpper(strings.TrimSpace(state)), Limit: limit}
	if upcoming {
		filter.From = timeutil.NowUnix()
	}
	return s.events.List(ctx, filter)
}

func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	return s.events.Get(ctx, id)
}

func (s *EventService) Create(ctx context.Context, input EventInput) (*model.Event, error) {
	input = normalizeEventInput(input)
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	event := &model.Event{ID: newID(), Ctime: now}
	applyEventInput(event, input, now)
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Update(ctx context.Context, id string, input EventInput) (*model.Event, error) {
	input = normalizeEventInput(input)
	if err := validateEventInput(input); err != nil {
		return nil, err
	}
	event, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	applyEventInput(event, input, timeutil.NowUnix())
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	return s.events.Delete(ctx, id)
}

func normalizeEventInput(input EventInput) EventInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Location.State = strings.ToUpper(strings.TrimSpace(input.Location.State))
	if input.Schedule == nil {
		input.Schedule = []model.EventSession{}
	}
	return input
}

func validateEventInput(input EventInput) error {
	if input.Title == "" || input.Date <= 0 {
		return appErr.ErrInvalid
	}
	return nil
}

func applyEventInput(event *model.Event, input EventInput, now int64) {
	event.Title = input.Title
	event.Date = input.Date
	event.Location = input.Location
	event.Organizer = input.Organizer
	event.Theme = input.Theme
	event.Summary = input.Summary
	event.Description = input.Description
	event.Schedule = input.Schedule
	event.Mtime = now
}
