package worker

import (
	"github.com/feeportal/fee-service/internal/events"
	"github.com/feeportal/fee-service/internal/service"
)

// StartNotificationWorker subscribes the notification stubs and, when Redis is
// configured, the event forwarder to the dispatcher.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService, forwarder *events.RedisForwarder) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	if forwarder != nil && dispatcher != nil {
		forwarder.Register(dispatcher)
	}
}
