package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskAccountOnboarding = "accounts.onboarding"

type AccountOnboardingPayload struct {
	AccountID string `json:"accountId"`
	LeadID    string `json:"leadId"`
	Company   string `json:"company"`
	Owner     string `json:"owner"`
}

func NewAccountOnboardingTask(payload AccountOnboardingPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAccountOnboarding, data), nil
}

func ParseAccountOnboardingPayload(task *asynq.Task) (AccountOnboardingPayload, error) {
	var payload AccountOnboardingPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return AccountOnboardingPayload{}, err
	}
	return payload, nil
}
