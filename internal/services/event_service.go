package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
	"github.com/vansh-agarwal/Agent/internal/repositories"
)

// EventCreateResult carries both outcomes of an event creation: the remote
// calendar mirror and the local persistence are independent, and neither
// cancels the other.
type EventCreateResult struct {
	Event         *models.CalendarEvent
	GoogleEventID string
	CalendarErr   error
	StoreErr      error
}

type EventService interface {
	Create(ctx context.Context, event *models.CalendarEvent) EventCreateResult
	GetByID(ctx context.Context, id int64, userEmail string) (*models.CalendarEvent, error)
	GetAll(ctx context.Context, userEmail string) ([]models.CalendarEvent, error)
	Upcoming(ctx context.Context, userEmail string, now time.Time, limit int) ([]models.CalendarEvent, error)
	Delete(ctx context.Context, id int64, userEmail string) error
}

type eventService struct {
	repo     repositories.EventRepository
	calendar CalendarClient
}

func NewEventService(repo repositories.EventRepository, calendar CalendarClient) EventService {
	return &eventService{repo: repo, calendar: calendar}
}

func (s *eventService) Create(ctx context.Context, event *models.CalendarEvent) EventCreateResult {
	result := EventCreateResult{Event: event}

	if !event.StartTime.Before(event.EndTime) {
		result.StoreErr = fmt.Errorf("event start must be before end")
		return result
	}
	event.CreatedAt = time.Now()

	if s.calendar != nil {
		remoteID, err := s.calendar.Insert(ctx, event)
		if err != nil {
			log.Printf("[event][create] calendar mirror failed: %v", err)
			result.CalendarErr = err
		} else {
			event.GoogleEventID = remoteID
			result.GoogleEventID = remoteID
		}
	}

	result.StoreErr = s.repo.Store(ctx, event)
	return result
}

func (s *eventService) GetByID(ctx context.Context, id int64, userEmail string) (*models.CalendarEvent, error) {
	return s.repo.FindByID(ctx, id, userEmail)
}

func (s *eventService) GetAll(ctx context.Context, userEmail string) ([]models.CalendarEvent, error) {
	return s.repo.FindAll(ctx, userEmail)
}

// Upcoming returns at most limit events that have not yet ended, soonest first.
func (s *eventService) Upcoming(ctx context.Context, userEmail string, now time.Time, limit int) ([]models.CalendarEvent, error) {
	events, err := s.repo.FindAll(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	var out []models.CalendarEvent
	for _, e := range events {
		if e.EndTime.After(now) {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *eventService) Delete(ctx context.Context, id int64, userEmail string) error {
	event, err := s.repo.FindByID(ctx, id, userEmail)
	if err != nil {
		return err
	}
	if s.calendar != nil && event.GoogleEventID != "" {
		if err := s.calendar.Delete(ctx, event.GoogleEventID); err != nil {
			// Local deletion proceeds regardless of the mirror.
			log.Printf("[event][delete] calendar mirror failed: %v", err)
		}
	}
	return s.repo.Delete(ctx, id, userEmail)
}
