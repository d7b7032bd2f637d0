package transport

import (
	"time"

	accountstransport "sales_portal_backend/internal/accounts/transport"
	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/platform/validator"

	playground "github.com/go-playground/validator/v10"
)

// TagLeadStatus validates a status against the lead vocabulary, ignoring case.
const TagLeadStatus = "leadstatus"

// RegisterValidations adds the lead-specific tags to val.
func RegisterValidations(val *validator.Validator) error {
	return val.RegisterValidation(TagLeadStatus, func(fl playground.FieldLevel) bool {
		_, ok := domain.ParseStatus(fl.Field().String())
		return ok
	})
}

// Request DTOs
type CreateLeadRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Company     string   `json:"company" validate:"required,min=1,max=200"`
	Industry    string   `json:"industry" validate:"omitempty,max=100"`
	Email       string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string   `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	MatchScore  *int     `json:"matchScore" validate:"omitempty,min=0,max=100"`
	Status      string   `json:"status,omitempty" validate:"omitempty,leadstatus"`
	CompanySize string   `json:"companySize" validate:"omitempty,max=50"`
	Location    string   `json:"location" validate:"omitempty,max=200"`
	Feedback    []string `json:"feedback" validate:"omitempty,dive,max=2000"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,leadstatus"`
}

type ReplaceFeedbackRequest struct {
	Feedback []string `json:"feedback" validate:"required,dive,max=2000"`
}

type ConvertLeadRequest struct {
	LeadID string `json:"leadId" validate:"required"`
}

// ListLeadsRequest carries the optional list filters from the query string.
type ListLeadsRequest struct {
	Industry    string `form:"industry"`
	Status      string `form:"status"`
	MinScore    string `form:"minScore"`
	MaxScore    string `form:"maxScore"`
	Search      string `form:"search"`
	Confidence  string `form:"confidence"`
	CompanySize string `form:"companySize"`
	Location    string `form:"location"`
	LastUpdated string `form:"lastUpdated"`
	Sort        string `form:"sort"`
}

// Response DTOs
type LeadResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Company     string    `json:"company"`
	Industry    string    `json:"industry"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	MatchScore  int       `json:"matchScore"`
	Status      string    `json:"status"`
	CompanySize string    `json:"companySize"`
	Location    string    `json:"location"`
	Feedback    []string  `json:"feedback"`
	CreatedAt   time.Time `json:"createdAt"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type ConversionResponse struct {
	Lead    LeadResponse                      `json:"lead"`
	Account accountstransport.AccountResponse `json:"account"`
}
