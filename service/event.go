package service

import (
	"context"

	"github.com/bbois1999/gun-event/domain"

	"github.com/google/uuid"
)

type eventService struct {
	eventRepo domain.EventRepository
}

func NewEventService(eventRepo domain.EventRepository) domain.EventUseCase {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	event.ID = uuid.NewString()
	event.Published = true
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.eventRepo.GetEventByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	return s.eventRepo.ListEvents(ctx)
}
