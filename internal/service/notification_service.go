package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/user-service/internal/config"
	"github.com/spec-kit/user-service/internal/events"
)

const webhookTimeout = 5 * time.Second

// NotificationService handles emitting notifications for account events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	inflight   sync.WaitGroup
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleUserRegistered)
	for _, et := range []events.EventType{events.EventUserCreated, events.EventUserUpdated, events.EventUserDeleted, events.EventUsersPurged} {
		n.dispatcher.Subscribe(et, n.handleAudit)
	}
}

// Wait blocks until every pending webhook delivery has finished.
func (n *NotificationService) Wait() {
	n.inflight.Wait()
}

func (n *NotificationService) handleUserRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.postWebhook(event)
	return nil
}

func (n *NotificationService) handleAudit(_ context.Context, event events.Event) error {
	n.logger.Info("UserAdministration",
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.UserID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload))
	n.postWebhook(event)
	return nil
}

// postWebhook delivers the event JSON in the background. It outlives the
// request that published the event; failures are logged only.
func (n *NotificationService) postWebhook(event events.Event) {
	url := strings.TrimSpace(n.cfg.WebhookURL)
	if url == "" {
		return
	}

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()

		agent := fiber.Post(url)
		agent.Timeout(webhookTimeout)
		agent.Set("X-Event-Type", string(event.Type))
		agent.JSON(event)

		code, body, errs := agent.Bytes()
		fields := []zap.Field{
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
		}
		switch {
		case len(errs) > 0:
			n.logger.Warn("webhook delivery failed", append(fields, zap.Errors("errors", errs))...)
		case code < fiber.StatusOK || code >= fiber.StatusMultipleChoices:
			n.logger.Warn("webhook rejected event", append(fields, zap.Int("status", code), zap.ByteString("body", body))...)
		default:
			n.logger.Debug("webhook delivered", append(fields, zap.Int("status", code))...)
		}
	}()
}
