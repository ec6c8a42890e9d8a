package response_models

import (
	"fmt"

	"tripmate/internal/models/trip_models"
)

// HighlightSegment is one typed text span of a day panel. Kind is one of
// "time", "location", "tip" so the consumer can color-code spans.
type HighlightSegment struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

type HighlightedDay struct {
	Label string             `json:"label"`
	Texts []HighlightSegment `json:"texts"`
}

type MapCenter struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// TripTraceResponse augments a located trace with its map center so the
// rendering consumer can position the viewport without reparsing
// coordinates. Center is absent for traces with no resolved points.
type TripTraceResponse struct {
	Label  string                   `json:"label"`
	Points []trip_models.TracePoint `json:"points"`
	Center *MapCenter               `json:"center,omitempty"`
}

type TripPlanResponse struct {
	Brief      *trip_models.TripBrief `json:"brief"`
	Itinerary  *trip_models.Itinerary `json:"itinerary"`
	Traces     []TripTraceResponse    `json:"traces"`
	Highlights []HighlightedDay       `json:"highlights"`
	Warning    string                 `json:"warning,omitempty"`
}

func NewTripPlanResponse(plan *trip_models.TripPlan) TripPlanResponse {
	resp := TripPlanResponse{
		Brief:      plan.Brief,
		Itinerary:  plan.Itinerary,
		Traces:     buildTraces(plan.Traces),
		Highlights: buildHighlights(plan.Brief, plan.Itinerary),
	}
	if plan.LocatingFailed {
		resp.Warning = "Itinerary stops could not be placed on the map"
	}
	return resp
}

func buildTraces(traces []trip_models.LocatedTrace) []TripTraceResponse {
	out := make([]TripTraceResponse, 0, len(traces))
	for _, tr := range traces {
		out = append(out, TripTraceResponse{
			Label:  tr.Label,
			Points: tr.Points,
			Center: traceCenter(tr.Points),
		})
	}
	return out
}

func traceCenter(points []trip_models.TracePoint) *MapCenter {
	var sumLon, sumLat float64
	n := 0
	for _, p := range points {
		lon, lat, err := p.Location.LonLat()
		if err != nil {
			continue
		}
		sumLon += lon
		sumLat += lat
		n++
	}
	if n == 0 {
		return nil
	}
	return &MapCenter{Lon: sumLon / float64(n), Lat: sumLat / float64(n)}
}

// buildHighlights zips the brief's dates and weathers with the generated
// days into per-day labeled text panels.
func buildHighlights(brief *trip_models.TripBrief, itinerary *trip_models.Itinerary) []HighlightedDay {
	if brief == nil || itinerary == nil {
		return nil
	}

	var highlights []HighlightedDay
	for i, day := range itinerary.Days {
		if i >= len(brief.Dates) || i >= len(brief.Weathers) {
			break
		}
		w := brief.Weathers[i]
		label := fmt.Sprintf("%s, 白天%s, 晚上%s",
			brief.Dates[i].Format("2006-01-02"), w.DayWeather, w.NightWeather)

		texts := make([]HighlightSegment, 0, len(day.Schedule)*3)
		for _, entry := range day.Schedule {
			texts = append(texts,
				HighlightSegment{Text: entry.Time + "\n", Kind: "time"},
				HighlightSegment{Text: entry.Location, Kind: "location"},
				HighlightSegment{Text: entry.Description + "\n", Kind: "tip"},
			)
		}
		highlights = append(highlights, HighlightedDay{Label: label, Texts: texts})
	}
	return highlights
}
