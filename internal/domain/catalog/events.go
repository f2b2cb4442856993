package catalog

import (
	"github.com/andrewsame/shaishaile/internal/domain/events"
)

// Event types
const (
	EventTypeCatalogReplaced = "catalog.replaced"
)

// CatalogReplacedEvent is raised after a refresh swaps in a new snapshot
type CatalogReplacedEvent struct {
	events.BaseEvent
	Version    string
	Source     string
	OwnerCount int
	RepoCount  int
}

// NewCatalogReplacedEvent creates a new CatalogReplacedEvent
func NewCatalogReplacedEvent(snapshot Snapshot) *CatalogReplacedEvent {
	version := snapshot.Version().String()
	return &CatalogReplacedEvent{
		BaseEvent:  events.NewBaseEvent(EventTypeCatalogReplaced, version),
		Version:    version,
		Source:     snapshot.Source(),
		OwnerCount: snapshot.Catalog().OwnerCount(),
		RepoCount:  snapshot.Catalog().RepoCount(),
	}
}
