package telemetry

import "time"

type EventType string

const (
	EventCalcSpecific    EventType = "calc_specific"
	EventCalcExpected    EventType = "calc_expected"
	EventCalcBreakdown   EventType = "calc_breakdown"
	EventCalcRefused     EventType = "calc_refused"
	EventCalcFailed      EventType = "calc_failed"
	EventCatalogListed   EventType = "catalog_listed"
	EventPriceLookup     EventType = "price_lookup"
	EventOverrideUpdated EventType = "override_updated"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
