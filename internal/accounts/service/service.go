package service

import (
	"context"

	"sales_portal_backend/internal/accounts/repository"
	"sales_portal_backend/internal/accounts/transport"
	"sales_portal_backend/platform/apperr"
)

const opList = "accounts.List"

// Reader is the slice of the accounts repository the service needs.
type Reader interface {
	List(ctx context.Context) ([]repository.Account, error)
}

// Service provides read access to converted accounts.
type Service struct {
	repo Reader
}

// New creates a new accounts service
func New(repo Reader) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]transport.AccountResponse, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperr.Store("server error", err).WithOp(opList)
	}

	items := make([]transport.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		items = append(items, ToResponse(account))
	}
	return items, nil
}

// ToResponse maps a stored account to its JSON shape.
func ToResponse(account repository.Account) transport.AccountResponse {
	resp := transport.AccountResponse{
		ID:        account.ID.String(),
		Company:   account.Company,
		Industry:  account.Industry,
		Value:     account.Value,
		Owner:     account.Owner,
		Status:    account.Status,
		CreatedAt: account.CreatedAt,
	}
	if account.LeadID != nil {
		leadID := account.LeadID.String()
		resp.LeadID = &leadID
	}
	return resp
}
