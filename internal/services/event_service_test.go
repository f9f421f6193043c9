package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vansh-agarwal/Agent/internal/models"
)

type stubEventRepo struct {
	events   []models.CalendarEvent
	storeErr error
}

func (r *stubEventRepo) Store(ctx context.Context, event *models.CalendarEvent) error {
	if r.storeErr != nil {
		return r.storeErr
	}
	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, *event)
	return nil
}

func (r *stubEventRepo) FindByID(ctx context.Context, id int64, userEmail string) (*models.CalendarEvent, error) {
	for i := range r.events {
		if r.events[i].ID == id {
			return &r.events[i], nil
		}
	}
	return nil, errors.New("event not found")
}

func (r *stubEventRepo) FindAll(ctx context.Context, userEmail string) ([]models.CalendarEvent, error) {
	return r.events, nil
}

func (r *stubEventRepo) Delete(ctx context.Context, id int64, userEmail string) error { return nil }

func (r *stubEventRepo) ListAll(ctx context.Context) ([]models.CalendarEvent, error) {
	return r.events, nil
}

type stubCalendar struct {
	insertID  string
	insertErr error
	deleted   []string
}

func (c *stubCalendar) Insert(ctx context.Context, event *models.CalendarEvent) (string, error) {
	return c.insertID, c.insertErr
}

func (c *stubCalendar) Delete(ctx context.Context, remoteID string) error {
	c.deleted = append(c.deleted, remoteID)
	return nil
}

var eventNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func validEvent() *models.CalendarEvent {
	return &models.CalendarEvent{
		UserEmail: "a@x.com",
		Title:     "standup",
		StartTime: eventNow,
		EndTime:   eventNow.Add(30 * time.Minute),
	}
}

func TestEventCreateMirrorsToCalendar(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewEventService(repo, &stubCalendar{insertID: "g-123"})

	res := svc.Create(context.Background(), validEvent())

	require.NoError(t, res.StoreErr)
	require.NoError(t, res.CalendarErr)
	require.Equal(t, "g-123", res.GoogleEventID)
	require.Equal(t, "g-123", repo.events[0].GoogleEventID)
}

func TestEventCreateCalendarFailureStillStores(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewEventService(repo, &stubCalendar{insertErr: errors.New("mirror down")})

	res := svc.Create(context.Background(), validEvent())

	require.NoError(t, res.StoreErr)
	require.Error(t, res.CalendarErr)
	require.Len(t, repo.events, 1)
}

func TestEventCreateRejectsInvertedRange(t *testing.T) {
	repo := &stubEventRepo{}
	svc := NewEventService(repo, nil)

	event := validEvent()
	event.StartTime, event.EndTime = event.EndTime, event.StartTime
	res := svc.Create(context.Background(), event)

	require.Error(t, res.StoreErr)
	require.Empty(t, repo.events)
}

func TestEventUpcomingFiltersEndedAndLimits(t *testing.T) {
	repo := &stubEventRepo{events: []models.CalendarEvent{
		{ID: 1, EndTime: eventNow.Add(-time.Hour)},
		{ID: 2, EndTime: eventNow.Add(time.Hour)},
		{ID: 3, EndTime: eventNow.Add(2 * time.Hour)},
		{ID: 4, EndTime: eventNow.Add(3 * time.Hour)},
	}}
	svc := NewEventService(repo, nil)

	events, err := svc.Upcoming(context.Background(), "a@x.com", eventNow, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, int64(2), events[0].ID)
}

func TestEventDeleteRemovesRemoteMirror(t *testing.T) {
	repo := &stubEventRepo{events: []models.CalendarEvent{
		{ID: 1, GoogleEventID: "g-9"},
	}}
	cal := &stubCalendar{}
	svc := NewEventService(repo, cal)

	require.NoError(t, svc.Delete(context.Background(), 1, "a@x.com"))
	require.Equal(t, []string{"g-9"}, cal.deleted)
}

func TestEmailServiceDryRunWithoutHost(t *testing.T) {
	svc := NewEmailService("", 587, "", "", "aria@example.com", false)

	require.NoError(t, svc.Send([]string{"a@x.com"}, "hi", "body"))
	require.Error(t, svc.Send(nil, "hi", "body"))
}
