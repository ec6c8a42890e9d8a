package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripmate/internal/models/trip_models"
	"tripmate/pkg/utils"
)

func shaoxingBrief() *trip_models.TripBrief {
	return &trip_models.TripBrief{
		City:         "绍兴",
		Adcode:       "330600",
		StandardCity: "绍兴市",
		Duration:     "2天",
		Weathers: []trip_models.ForecastDay{
			{DayWeather: "晴", NightWeather: "多云"},
			{DayWeather: "阴转小雨", NightWeather: "晴"},
		},
	}
}

// exampleAdviseJSON reuses the first worked example as a well-formed
// model response.
func exampleAdviseJSON(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(tripAdviseExamples[0].Advise)
	require.NoError(t, err)
	return string(raw)
}

func TestGenerate(t *testing.T) {
	client := &fakeCompletionClient{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return exampleAdviseJSON(t), nil
		},
	}

	svc := NewTripAdvisorService(client, 3)
	itinerary, err := svc.Generate(context.Background(), shaoxingBrief())

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "330600", itinerary.Adcode)
	require.Len(t, itinerary.Days, 2)
	assert.Equal(t, "鲁迅故里", itinerary.Days[0].Schedule[0].Location)
}

func TestGenerate_StripsCodeFences(t *testing.T) {
	client := &fakeCompletionClient{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "```json\n" + exampleAdviseJSON(t) + "\n```", nil
		},
	}

	svc := NewTripAdvisorService(client, 3)
	itinerary, err := svc.Generate(context.Background(), shaoxingBrief())

	require.NoError(t, err)
	assert.Len(t, itinerary.Days, 2)
}

func TestGenerate_RetriesThenSucceeds(t *testing.T) {
	client := &fakeCompletionClient{}
	client.completeFn = func(ctx context.Context, prompt string) (string, error) {
		if client.calls < 3 {
			return "not json at all", nil
		}
		return exampleAdviseJSON(t), nil
	}

	svc := NewTripAdvisorService(client, 3)
	itinerary, err := svc.Generate(context.Background(), shaoxingBrief())

	require.NoError(t, err)
	assert.Equal(t, 3, client.calls)
	assert.Equal(t, "330600", itinerary.Adcode)
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	client := &fakeCompletionClient{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "{broken", nil
		},
	}

	svc := NewTripAdvisorService(client, 3)
	itinerary, err := svc.Generate(context.Background(), shaoxingBrief())

	assert.ErrorIs(t, err, utils.ErrAdviseGenerationFailed)
	assert.Nil(t, itinerary)
	assert.Equal(t, 3, client.calls)
}

func TestGenerate_ClientErrorExhaustsRetries(t *testing.T) {
	client := &fakeCompletionClient{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "", fmt.Errorf("model unavailable")
		},
	}

	svc := NewTripAdvisorService(client, 2)
	_, err := svc.Generate(context.Background(), shaoxingBrief())

	assert.ErrorIs(t, err, utils.ErrAdviseGenerationFailed)
	assert.Equal(t, 2, client.calls)
}

func TestGenerate_RejectsEmptyCompletion(t *testing.T) {
	client := &fakeCompletionClient{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return "```json\n```", nil
		},
	}

	svc := NewTripAdvisorService(client, 1)
	_, err := svc.Generate(context.Background(), shaoxingBrief())

	assert.ErrorIs(t, err, utils.ErrAdviseGenerationFailed)
}

func TestGenerate_RejectsEmptyScheduleDay(t *testing.T) {
	hollow := trip_models.Itinerary{
		City: "绍兴",
		Days: []trip_models.ItineraryDay{
			{Date: "第1天", DayWeather: "晴", NightWeather: "多云"},
		},
	}
	raw, err := json.Marshal(hollow)
	require.NoError(t, err)

	client := &fakeCompletionClient{
		completeFn: func(ctx context.Context, prompt string) (string, error) {
			return string(raw), nil
		},
	}

	svc := NewTripAdvisorService(client, 1)
	_, err = svc.Generate(context.Background(), shaoxingBrief())

	assert.ErrorIs(t, err, utils.ErrAdviseGenerationFailed)
}

func TestBuildTripAdvisePrompt(t *testing.T) {
	prompt := buildTripAdvisePrompt(shaoxingBrief())

	assert.True(t, strings.HasPrefix(prompt, tripAdviseInstruction))
	assert.Contains(t, prompt, "示例1:")
	assert.Contains(t, prompt, "示例2:")
	assert.Contains(t, prompt, "请你根据以下出行信息制定旅游攻略:")
	assert.Contains(t, prompt, "目的地:绍兴")
	assert.Contains(t, prompt, "旅游天数:2天")
	assert.Contains(t, prompt, "第1天白天晴, 晚上多云。")
	assert.Contains(t, prompt, "第2天白天阴转小雨, 晚上晴。")

	// The worked examples marshal without an adcode field.
	assert.NotContains(t, prompt, `"adcode"`)

	assert.Equal(t, prompt, buildTripAdvisePrompt(shaoxingBrief()))
}
