package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admissions-service/internal/config"
	"github.com/spec-kit/admissions-service/internal/events"
)

// NotificationService handles emitting notifications for applicant
// lifecycle events. Handler failures never affect request outcomes.
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

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventApplicantSubmitted, n.handleApplicantSubmitted)
	n.dispatcher.Subscribe(events.EventApplicantAccepted, n.handleApplicantAccepted)
}

func (n *NotificationService) handleApplicantSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicantSubmitted", zap.String("student_id", event.StudentID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleApplicantAccepted(ctx context.Context, event events.Event) error {
	n.logger.Info("ApplicantAccepted", zap.String("student_id", event.StudentID))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("student_id", event.StudentID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("student_id", event.StudentID),
		zap.String("event_type", string(event.Type)))
}
