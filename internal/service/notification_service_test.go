package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/feeportal/fee-service/internal/config"
	"github.com/feeportal/fee-service/internal/events"
)

func TestNotificationServiceRoutesByEventType(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	n := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "bursar@uni.edu",
		WebhookURL: "https://hooks.example.test/fees",
	})
	n.RegisterHandlers()

	ctx := context.Background()
	for _, eventType := range events.AllEventTypes {
		require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: eventType, RequestID: "r1"}))
	}

	assert.Equal(t, 1, logs.FilterMessage(string(events.EventFeeRequestSubmitted)).Len())
	assert.Equal(t, 1, logs.FilterMessage(string(events.EventFeeRequestDecided)).Len())
	assert.Equal(t, 1, logs.FilterMessage(string(events.EventFeeRequestPaid)).Len())
	assert.Equal(t, 2, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 2, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestNotificationServiceSkipsUnconfiguredChannels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{EmailFrom: "bursar@uni.edu"}).RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{Type: events.EventFeeRequestSubmitted, RequestID: "r1"}))

	assert.Equal(t, 0, logs.FilterMessage("sendWebhookNotificationStub").Len())
	assert.Equal(t, 0, logs.FilterMessage("sendEmailNotificationStub").Len())
}
