package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prediction kinds understood by the ML backend.
const (
	PredictionCareerIncome    = "career_income"
	PredictionHRProductivity  = "hr_productivity"
	PredictionCustomerSegment = "customer_segment"
)

// PredictionService is the opaque statistical-model collaborator. The core
// only knows the predict(kind, features) contract, never the model internals.
type PredictionService interface {
	Predict(ctx context.Context, kind string, features map[string]any) (map[string]any, error)
	Status(ctx context.Context) (map[string]any, error)
}

type predictionService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPredictionService(baseURL, apiKey string) PredictionService {
	return &predictionService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *predictionService) Predict(ctx context.Context, kind string, features map[string]any) (map[string]any, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("ml service not configured")
	}

	b, _ := json.Marshal(features)
	url := fmt.Sprintf("%s/predict/%s", s.baseURL, kind)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("ml request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ml service returned status %d", resp.StatusCode)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse ml response: %w", err)
	}
	return result, nil
}

func (s *predictionService) Status(ctx context.Context) (map[string]any, error) {
	if s.baseURL == "" {
		return map[string]any{"available": false}, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/status", nil)
	if err != nil {
		return nil, fmt.Errorf("ml request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse ml status: %w", err)
	}
	return result, nil
}
