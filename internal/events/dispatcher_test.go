package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribedHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var seen []EventType
	d.Subscribe(EventTenantRegistered, func(_ context.Context, event Event) error {
		seen = append(seen, event.Type)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTenantRegistered}))
	require.NoError(t, d.Publish(context.Background(), Event{Type: EventChannelConnected}))
	assert.Equal(t, []EventType{EventTenantRegistered}, seen)
}

func TestPublishRunsAllHandlersAndReportsFailures(t *testing.T) {
	d := NewInMemoryDispatcher()

	handlerErr := errors.New("handler failed")
	d.Subscribe(EventTenantRegistered, func(context.Context, Event) error {
		return handlerErr
	})

	var secondRan bool
	d.Subscribe(EventTenantRegistered, func(context.Context, Event) error {
		secondRan = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventTenantRegistered})
	require.ErrorIs(t, err, handlerErr)
	assert.True(t, secondRan, "a failing handler must not stop the rest")
}
