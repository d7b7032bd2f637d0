package transport

import "time"

type AccountResponse struct {
	ID        string    `json:"id"`
	LeadID    *string   `json:"leadId,omitempty"`
	Company   string    `json:"company"`
	Industry  string    `json:"industry"`
	Value     string    `json:"value"`
	Owner     string    `json:"owner"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
