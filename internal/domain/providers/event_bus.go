package providers

import (
	"context"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
)

// EventChannelCatalog is the channel carrying catalog lifecycle events.
const EventChannelCatalog = "catalog:updates"

// EventBus defines the interface for publishing and subscribing to catalog
// events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error

	// Subscribe subscribes to events on a channel. The subscription lasts
	// until the context is canceled or the bus is closed.
	Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error)

	// Close closes the event bus and all subscriptions
	Close() error
}
