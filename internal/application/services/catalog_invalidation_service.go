package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/providers"
)

// SnapshotInvalidator drops a cached catalog snapshot.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context) error
}

// CatalogInvalidationService listens for catalog reload events and drops
// the cached snapshot so every instance picks up new data without waiting
// for the TTL to expire.
type CatalogInvalidationService struct {
	invalidator SnapshotInvalidator
	eventBus    providers.EventBus
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewCatalogInvalidationService creates a new catalog invalidation service
func NewCatalogInvalidationService(invalidator SnapshotInvalidator, eventBus providers.EventBus) *CatalogInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CatalogInvalidationService{
		invalidator: invalidator,
		eventBus:    eventBus,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start begins listening for catalog events
func (s *CatalogInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelCatalog)
	if err != nil {
		return fmt.Errorf("failed to subscribe to catalog updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Catalog invalidation service started")
	return nil
}

// Stop stops the catalog invalidation service
func (s *CatalogInvalidationService) Stop() {
	s.cancel()
	log.Println("Catalog invalidation service stopped")
}

func (s *CatalogInvalidationService) processEvents(eventChan <-chan *entities.CatalogEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CatalogInvalidationService) handleEvent(event *entities.CatalogEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("Processing catalog invalidation for %s event from %s (%d symptoms, %d diseases)",
		event.Type, event.Source, event.Symptoms, event.Diseases)

	if err := s.invalidator.Invalidate(ctx); err != nil {
		log.Printf("Warning: Failed to invalidate catalog snapshot: %v", err)
	}
}
