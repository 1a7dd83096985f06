package entities

import "time"

// CatalogEventType identifies the kind of catalog event
type CatalogEventType string

const (
	// CatalogEventReloaded is published after the loader rewrites the catalog
	CatalogEventReloaded CatalogEventType = "catalog.reloaded"
)

// CatalogEvent signals a change to the persisted catalog. API instances use
// it to drop cached snapshots so the next diagnosis sees fresh data.
type CatalogEvent struct {
	Type      CatalogEventType `json:"type"`
	Source    string           `json:"source"`
	Symptoms  int              `json:"symptoms"`
	Diseases  int              `json:"diseases"`
	Timestamp time.Time        `json:"timestamp"`
}
