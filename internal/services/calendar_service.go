package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/vansh-agarwal/Agent/internal/models"
)

// CalendarClient mirrors events to an external calendar. Remote failures are
// reported to the caller but never block local persistence.
type CalendarClient interface {
	Insert(ctx context.Context, event *models.CalendarEvent) (string, error)
	Delete(ctx context.Context, remoteID string) error
}

type calendarClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	dryRun  bool
}

func NewCalendarClient(baseURL, apiKey string, dryRun bool) CalendarClient {
	return &calendarClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		dryRun:  dryRun || baseURL == "",
	}
}

func (c *calendarClient) Insert(ctx context.Context, event *models.CalendarEvent) (string, error) {
	if c.dryRun {
		log.Printf("[calendar][dry-run] insert title=%q start=%s", event.Title, event.StartTime.Format(time.RFC3339))
		return "", nil
	}

	body := map[string]any{
		"summary":     event.Title,
		"description": event.Description,
		"start":       map[string]string{"dateTime": event.StartTime.Format(time.RFC3339), "timeZone": "UTC"},
		"end":         map[string]string{"dateTime": event.EndTime.Format(time.RFC3339), "timeZone": "UTC"},
	}
	b, _ := json.Marshal(body)

	url := c.baseURL + "/calendars/primary/events"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("calendar insert: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calendar insert: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("calendar insert returned status %d", resp.StatusCode)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("parse calendar response: %w", err)
	}
	return created.ID, nil
}

func (c *calendarClient) Delete(ctx context.Context, remoteID string) error {
	if c.dryRun || remoteID == "" {
		return nil
	}

	url := c.baseURL + "/calendars/primary/events/" + remoteID
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return fmt.Errorf("calendar delete: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calendar delete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("calendar delete returned status %d", resp.StatusCode)
	}
	return nil
}
