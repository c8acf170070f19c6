package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var received []Event
	d.Subscribe(EventTicketCreated, func(_ context.Context, event Event) error {
		received = append(received, event)
		return nil
	})
	d.Subscribe(EventTicketDeleted, func(_ context.Context, event Event) error {
		t.Fatal("handler for a different event type must not fire")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: "t1", TenantID: "LogisticsCo"})
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, "t1", received[0].TicketID)
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].Timestamp.IsZero())
}

func TestDispatcherContinuesPastFailingHandler(t *testing.T) {
	d := NewInMemoryDispatcher()

	var called bool
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		return errors.New("handler failure")
	})
	d.Subscribe(EventTicketCreated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated}))
	assert.True(t, called)
}
