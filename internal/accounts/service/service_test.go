package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"sales_portal_backend/internal/accounts/repository"
	"sales_portal_backend/platform/apperr"

	"github.com/google/uuid"
)

type fakeReader struct {
	accounts []repository.Account
	err      error
}

func (f fakeReader) List(context.Context) ([]repository.Account, error) {
	return f.accounts, f.err
}

func TestListMapsAccounts(t *testing.T) {
	leadID := uuid.New()
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := New(fakeReader{accounts: []repository.Account{
		{ID: uuid.New(), LeadID: &leadID, Company: "Acme Logistics", Industry: "Technology", Value: "$50,000", Owner: "Rahul Sharma", Status: "Active", CreatedAt: created},
		{ID: uuid.New(), Company: "Manual Co", Status: "Active", CreatedAt: created},
	}})

	items, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(items))
	}
	if items[0].LeadID == nil || *items[0].LeadID != leadID.String() || items[0].Value != "$50,000" {
		t.Fatalf("unexpected converted account: %+v", items[0])
	}
	if items[1].LeadID != nil {
		t.Fatalf("expected no lead id on manual account, got %v", *items[1].LeadID)
	}
}

func TestListEmptyAndErrors(t *testing.T) {
	items, err := New(fakeReader{}).List(context.Background())
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v, %v", items, err)
	}

	_, err = New(fakeReader{err: errors.New("db down")}).List(context.Background())
	if !apperr.Is(err, apperr.KindStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}
