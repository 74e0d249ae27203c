package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period          string            `json:"period"`
	EventCounts     map[EventType]int `json:"event_counts"`
	Calculations    int               `json:"calculations"`
	Refusals        int               `json:"refusals"`
	Failures        int               `json:"failures"`
	CalcsByMaster   map[string]int    `json:"calcs_by_master"`
	AvgDurationMS   float64           `json:"avg_duration_ms"`
	AvgGPPerHour    float64           `json:"avg_gp_per_hour"`
	PriceLookups    int               `json:"price_lookups"`
	OverrideUpdates int               `json:"override_updates"`
}

// CalculateStats computes usage stats from recorded events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:        since.Format("2006-01-02"),
		EventCounts:   make(map[EventType]int),
		CalcsByMaster: make(map[string]int),
	}

	var totalDuration, totalGP float64
	var durationSamples, gpSamples int

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventCalcSpecific, EventCalcExpected, EventCalcBreakdown:
			stats.Calculations++
			if master, ok := metadata["master"].(string); ok && master != "" {
				stats.CalcsByMaster[master]++
			}
			if ms, ok := metadata["duration_ms"].(float64); ok {
				totalDuration += ms
				durationSamples++
			}
			if gp, ok := metadata["gp_hr"].(float64); ok {
				totalGP += gp
				gpSamples++
			}
		case EventCalcRefused:
			stats.Refusals++
		case EventCalcFailed:
			stats.Failures++
		case EventPriceLookup:
			stats.PriceLookups++
		case EventOverrideUpdated:
			stats.OverrideUpdates++
		}
	}

	if durationSamples > 0 {
		stats.AvgDurationMS = totalDuration / float64(durationSamples)
	}
	if gpSamples > 0 {
		stats.AvgGPPerHour = totalGP / float64(gpSamples)
	}

	return stats, nil
}
