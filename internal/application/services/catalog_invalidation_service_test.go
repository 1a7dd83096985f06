package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medassist/symptom-assistant/internal/domain/entities"
	"github.com/medassist/symptom-assistant/internal/domain/providers"
)

type stubEventBus struct {
	events chan *entities.CatalogEvent
}

func newStubEventBus() *stubEventBus {
	return &stubEventBus{events: make(chan *entities.CatalogEvent, 10)}
}

func (b *stubEventBus) Publish(ctx context.Context, channel string, event *entities.CatalogEvent) error {
	b.events <- event
	return nil
}

func (b *stubEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.CatalogEvent, error) {
	return b.events, nil
}

func (b *stubEventBus) Close() error { return nil }

type stubInvalidator struct {
	calls atomic.Int32
}

func (s *stubInvalidator) Invalidate(ctx context.Context) error {
	s.calls.Add(1)
	return nil
}

func TestCatalogInvalidation_DropsSnapshotOnReload(t *testing.T) {
	bus := newStubEventBus()
	invalidator := &stubInvalidator{}
	svc := NewCatalogInvalidationService(invalidator, bus)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	err := bus.Publish(context.Background(), providers.EventChannelCatalog, &entities.CatalogEvent{
		Type:      entities.CatalogEventReloaded,
		Source:    "loader",
		Symptoms:  131,
		Diseases:  41,
		Timestamp: time.Now(),
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return invalidator.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestCatalogInvalidation_IgnoresNilEvents(t *testing.T) {
	bus := newStubEventBus()
	invalidator := &stubInvalidator{}
	svc := NewCatalogInvalidationService(invalidator, bus)

	require.NoError(t, svc.Start())
	defer svc.Stop()

	bus.events <- nil
	bus.events <- &entities.CatalogEvent{Type: entities.CatalogEventReloaded, Source: "loader"}

	assert.Eventually(t, func() bool {
		return invalidator.calls.Load() == 1
	}, time.Second, 10*time.Millisecond)
}
