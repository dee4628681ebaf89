package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/feeportal/fee-service/internal/config"
	"github.com/feeportal/fee-service/internal/events"
)

type notifyChannel int

const (
	channelEmail notifyChannel = iota
	channelWebhook
)

// Submissions go to the faculty webhook; students hear back by email once a
// request is decided or paid.
var notificationRoutes = map[events.EventType][]notifyChannel{
	events.EventFeeRequestSubmitted: {channelWebhook},
	events.EventFeeRequestDecided:   {channelEmail, channelWebhook},
	events.EventFeeRequestPaid:      {channelEmail},
}

// NotificationService turns workflow events into (stubbed) outbound notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to every routed event type.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for eventType := range notificationRoutes {
		n.dispatcher.Subscribe(eventType, n.handle)
	}
}

func (n *NotificationService) handle(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("request_id", event.RequestID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Any("payload", event.Payload))

	for _, channel := range notificationRoutes[event.Type] {
		switch channel {
		case channelEmail:
			n.sendEmailNotificationStub(ctx, event)
		case channelWebhook:
			n.sendWebhookNotificationStub(ctx, event)
		}
	}
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("request_id", event.RequestID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("request_id", event.RequestID),
		zap.String("event_type", string(event.Type)))
}
