package worker

import (
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/events"
	"github.com/spec-kit/user-service/internal/service"
)

// StartNotificationWorker attaches the event subscribers: the notification
// service always, the Kafka sink when brokers are configured. The returned
// stop func waits for pending webhook deliveries and flushes the sink.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, cfg config.NotificationConfig, logger *zap.Logger) (stop func()) {
	stop = func() {}
	if dispatcher == nil {
		return stop
	}
	if notifications != nil {
		notifications.RegisterHandlers()
		stop = notifications.Wait
	}
	if len(cfg.KafkaBrokers) == 0 {
		return stop
	}
	waitWebhooks := stop

	sink := events.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	sink.Subscribe(dispatcher)
	logger.Info("forwarding user events to kafka",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic))

	return func() {
		waitWebhooks()
		if err := sink.Close(); err != nil {
			logger.Warn("kafka sink close", zap.Error(err))
		}
	}
}
