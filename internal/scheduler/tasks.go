package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskReleaseInactiveProspects = "prospects.release_inactive"

type ReleaseInactivePayload struct {
	TriggeredBy string `json:"triggeredBy"`
}

func NewReleaseInactiveTask(payload ReleaseInactivePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReleaseInactiveProspects, data), nil
}

func ParseReleaseInactivePayload(task *asynq.Task) (ReleaseInactivePayload, error) {
	var payload ReleaseInactivePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ReleaseInactivePayload{}, err
	}
	return payload, nil
}
