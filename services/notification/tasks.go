package notification

import (
	"encoding/json"

	"opdcare/models"

	"github.com/hibiken/asynq"
)

const TypeMessageSend = "notification:send"

// NewMessageSendTask wraps a message payload as a queue task.
func NewMessageSendTask(payload models.MessagePayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMessageSend, b), nil
}
