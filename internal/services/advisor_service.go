package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"tripmate/internal/models/trip_models"
	"tripmate/pkg/utils"
)

type AdvisorServiceInterface interface {
	// Generate produces a day-by-day itinerary for the brief, retrying on
	// empty or unparseable model output up to the configured limit.
	Generate(ctx context.Context, brief *trip_models.TripBrief) (*trip_models.Itinerary, error)
}

type TripAdvisorService struct {
	client     utils.CompletionClientInterface
	maxRetries int
}

func NewTripAdvisorService(client utils.CompletionClientInterface, maxRetries int) AdvisorServiceInterface {
	if maxRetries < 1 {
		maxRetries = 3
	}
	return &TripAdvisorService{
		client:     client,
		maxRetries: maxRetries,
	}
}

func (s *TripAdvisorService) Generate(ctx context.Context, brief *trip_models.TripBrief) (*trip_models.Itinerary, error) {
	prompt := buildTripAdvisePrompt(brief)

	itinerary, err := s.generateWithRetry(ctx, prompt)
	if err != nil {
		log.Printf("Trip advise generation exhausted %d attempts: %v", s.maxRetries, err)
		return nil, utils.ErrAdviseGenerationFailed
	}

	// The model's echoed city identifier is free text and unreliable;
	// always stamp the adcode from the originating brief.
	itinerary.Adcode = brief.Adcode
	return itinerary, nil
}

// generateWithRetry is an explicit bounded-retry loop returning the
// parsed itinerary or the last attempt's error once all attempts failed.
func (s *TripAdvisorService) generateWithRetry(ctx context.Context, prompt string) (*trip_models.Itinerary, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		itinerary, err := s.attempt(ctx, prompt)
		if err == nil {
			return itinerary, nil
		}
		lastErr = err
		log.Printf("Trip advise attempt %d/%d failed: %v", attempt, s.maxRetries, err)
	}
	return nil, lastErr
}

func (s *TripAdvisorService) attempt(ctx context.Context, prompt string) (*trip_models.Itinerary, error) {
	text, err := s.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	text = cleanJSONResponse(text)
	if text == "" {
		return nil, fmt.Errorf("empty completion")
	}

	var itinerary trip_models.Itinerary
	if err := json.Unmarshal([]byte(text), &itinerary); err != nil {
		return nil, fmt.Errorf("invalid itinerary JSON: %w", err)
	}
	if err := validateItinerary(&itinerary); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func validateItinerary(it *trip_models.Itinerary) error {
	if len(it.Days) == 0 {
		return fmt.Errorf("itinerary has no days")
	}
	for i, day := range it.Days {
		if len(day.Schedule) == 0 {
			return fmt.Errorf("itinerary day %d has an empty schedule", i+1)
		}
	}
	return nil
}

// cleanJSONResponse strips markdown code fences some models wrap around
// JSON output.
func cleanJSONResponse(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}
