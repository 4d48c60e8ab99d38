package notification

import (
	"fmt"

	"opdcare/models"
	"opdcare/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sender delivers a single message over its channel. Implementations must be
// safe for concurrent use.
type Sender interface {
	Send(payload models.MessagePayload) error
}

// NotificationService queues outbound patient messages. Delivery happens in
// the background worker; Queue only fails when the broker is unreachable.
type NotificationService interface {
	Queue(payload models.MessagePayload) error
}

// DefaultNotificationService enqueues messages on the shared task queue.
type DefaultNotificationService struct {
	Client *asynq.Client
}

// NewDefaultNotificationService wires the service to an asynq client.
func NewDefaultNotificationService(client *asynq.Client) (*DefaultNotificationService, error) {
	if client == nil {
		return nil, fmt.Errorf("notification service initialization error: asynq client is nil")
	}
	return &DefaultNotificationService{Client: client}, nil
}

func (s *DefaultNotificationService) Queue(payload models.MessagePayload) error {
	if payload.To == "" || payload.Body == "" {
		return fmt.Errorf("notification requires a recipient and a body")
	}
	if payload.Channel == "" {
		payload.Channel = models.ChannelSMS
	}

	task, err := NewMessageSendTask(payload)
	if err != nil {
		return fmt.Errorf("failed to build notification task: %w", err)
	}
	info, err := s.Client.Enqueue(task, asynq.MaxRetry(3))
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	utils.GetLogger().Debug("notification queued",
		zap.String("taskID", info.ID),
		zap.String("channel", payload.Channel),
		zap.String("refKind", payload.RefKind))
	return nil
}
