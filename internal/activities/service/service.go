package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sales_portal_backend/internal/activities/repository"
	"sales_portal_backend/internal/activities/transport"
	"sales_portal_backend/platform/apperr"
	"sales_portal_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	opCreate        = "activities.Create"
	opListByAccount = "activities.ListByAccount"

	defaultType = "note"

	// TypeConversion marks the activity logged when a lead becomes an account.
	TypeConversion = "conversion"
)

// Store is the slice of the activities repository the service needs.
type Store interface {
	Create(ctx context.Context, params repository.CreateParams) (repository.Activity, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]repository.Activity, error)
}

// Service records and lists account activities.
type Service struct {
	repo Store
	now  func() time.Time
}

// New creates a new activities service
func New(repo Store) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req transport.CreateActivityRequest) (transport.ActivityResponse, error) {
	accountID, err := uuid.Parse(req.Account)
	if err != nil {
		return transport.ActivityResponse{}, apperr.InvalidArgument("invalid account id").WithOp(opCreate)
	}

	activityType := req.Type
	if activityType == "" {
		activityType = defaultType
	}
	date := s.now()
	if req.Date != nil {
		date = *req.Date
	}

	activity, err := s.repo.Create(ctx, repository.CreateParams{
		AccountID: accountID,
		Type:      activityType,
		Subject:   sanitize.Text(req.Subject),
		Date:      date,
		Payload:   req.Payload,
	})
	if errors.Is(err, repository.ErrAccountNotFound) {
		return transport.ActivityResponse{}, apperr.InvalidArgument("account does not exist").WithOp(opCreate)
	}
	if err != nil {
		return transport.ActivityResponse{}, apperr.Store("server error", err).WithOp(opCreate)
	}

	return toResponse(activity), nil
}

func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]transport.ActivityResponse, error) {
	activities, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, apperr.Store("server error", err).WithOp(opListByAccount)
	}

	items := make([]transport.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		items = append(items, toResponse(activity))
	}
	return items, nil
}

// RecordConversion logs the conversion of leadID on the new account.
func (s *Service) RecordConversion(ctx context.Context, accountID, leadID uuid.UUID, company, owner string) error {
	_, err := s.repo.Create(ctx, repository.CreateParams{
		AccountID: accountID,
		Type:      TypeConversion,
		Subject:   fmt.Sprintf("%s converted to account", company),
		Date:      s.now(),
		Payload: map[string]any{
			"leadId": leadID.String(),
			"owner":  owner,
		},
	})
	if err != nil {
		return fmt.Errorf("record conversion for account %s: %w", accountID, err)
	}
	return nil
}

func toResponse(activity repository.Activity) transport.ActivityResponse {
	return transport.ActivityResponse{
		ID:        activity.ID.String(),
		Account:   activity.AccountID.String(),
		Type:      activity.Type,
		Subject:   activity.Subject,
		Date:      activity.Date,
		Payload:   activity.Payload,
		CreatedAt: activity.CreatedAt,
	}
}
