// Package jobs contains background task definitions and the Asynq worker.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskCommsDispatch is the task type for fanning out communication
	// notifications to recipients.
	TaskCommsDispatch = "comms:dispatch"
)

// CommsDispatchPayload identifies the communication post to fan out.
type CommsDispatchPayload struct {
	TenantID string `json:"tenantId"`
	PostID   string `json:"postId"`
}

// NewCommsDispatchTask constructs an Asynq task.
func NewCommsDispatchTask(payload CommsDispatchPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommsDispatch, data), nil
}
