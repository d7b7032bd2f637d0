package transport

import "time"

type CreateActivityRequest struct {
	Account string         `json:"account" validate:"required,uuid"`
	Type    string         `json:"type" validate:"omitempty,max=50"`
	Subject string         `json:"subject" validate:"omitempty,max=500"`
	Date    *time.Time     `json:"date"`
	Payload map[string]any `json:"payload"`
}

type ActivityResponse struct {
	ID        string         `json:"id"`
	Account   string         `json:"account"`
	Type      string         `json:"type"`
	Subject   string         `json:"subject"`
	Date      time.Time      `json:"date"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"createdAt"`
}
