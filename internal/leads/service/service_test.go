package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	accountsrepo "sales_portal_backend/internal/accounts/repository"
	"sales_portal_backend/internal/events"
	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/internal/leads/filter"
	"sales_portal_backend/internal/leads/repository"
	"sales_portal_backend/internal/leads/transport"
	"sales_portal_backend/platform/apperr"
	"sales_portal_backend/platform/logger"
	"sales_portal_backend/platform/random"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu        sync.Mutex
	leads     map[uuid.UUID]domain.Lead
	accounts  map[uuid.UUID]accountsrepo.Account
	lastQuery filter.Query
	listCalls int
	failWith  error
}

func newFakeRepo(leads ...domain.Lead) *fakeRepo {
	r := &fakeRepo{
		leads:    make(map[uuid.UUID]domain.Lead),
		accounts: make(map[uuid.UUID]accountsrepo.Account),
	}
	for _, lead := range leads {
		r.leads[lead.ID] = lead
	}
	return r
}

func (r *fakeRepo) List(_ context.Context, q filter.Query) ([]domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	r.lastQuery = q
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]domain.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		out = append(out, lead)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (r *fakeRepo) Create(_ context.Context, p repository.CreateLeadParams) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return domain.Lead{}, r.failWith
	}
	lead := domain.Lead{
		ID:         uuid.New(),
		Name:       p.Name,
		Company:    p.Company,
		Phone:      p.Phone,
		MatchScore: p.MatchScore,
		Status:     p.Status,
		Feedback:   p.Feedback,
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	lead.Status = status
	r.leads[id] = lead
	return lead, nil
}

func (r *fakeRepo) ReplaceFeedback(_ context.Context, id uuid.UUID, feedback []string) (domain.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	lead.Feedback = feedback
	r.leads[id] = lead
	return lead, nil
}

func (r *fakeRepo) Convert(_ context.Context, id uuid.UUID, d repository.AccountDefaults) (domain.Lead, accountsrepo.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return domain.Lead{}, accountsrepo.Account{}, r.failWith
	}
	lead, ok := r.leads[id]
	if !ok {
		return domain.Lead{}, accountsrepo.Account{}, repository.ErrNotFound
	}
	if lead.Status == domain.StatusConverted {
		return domain.Lead{}, accountsrepo.Account{}, repository.ErrAlreadyConverted
	}
	lead.Status = domain.StatusConverted
	r.leads[id] = lead

	leadID := lead.ID
	account := accountsrepo.Account{
		ID:       uuid.New(),
		LeadID:   &leadID,
		Company:  lead.Company,
		Industry: d.Industry,
		Value:    d.Value,
		Owner:    d.Owner,
		Status:   d.Status,
	}
	r.accounts[account.ID] = account
	return lead, account, nil
}

func newTestService(repo Repository, seed uint64) (*Service, *events.InMemoryBus) {
	bus := events.NewInMemoryBus(logger.Nop())
	svc := New(repo, bus, Options{
		Location:    time.UTC,
		PhoneRegion: "IN",
		Random:      random.Seeded(seed),
		Now:         func() time.Time { return time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC) },
	})
	return svc, bus
}

func newLead(status domain.Status) domain.Lead {
	return domain.Lead{ID: uuid.New(), Name: "Asha Rao", Company: "Acme Logistics", MatchScore: 88, Status: status}
}

func TestListRejectsInvalidFilterWithoutQuerying(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, 1)

	_, err := svc.List(context.Background(), filter.Params{MinScore: "eighty"})
	if !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if repo.listCalls != 0 {
		t.Fatalf("expected store not to be queried")
	}
}

func TestListPassesBuiltQuery(t *testing.T) {
	repo := newFakeRepo(newLead(domain.StatusNew))
	svc, _ := newTestService(repo, 1)

	items, err := svc.List(context.Background(), filter.Params{Status: "NEW", Sort: "newest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(items))
	}
	if len(repo.lastQuery.Clauses) != 1 {
		t.Fatalf("expected status clause, got %#v", repo.lastQuery.Clauses)
	}
	if repo.lastQuery.Sort.Field != filter.FieldCreatedAt || !repo.lastQuery.Sort.Desc {
		t.Fatalf("unexpected sort %+v", repo.lastQuery.Sort)
	}
}

func TestListStoreFailureIsStoreError(t *testing.T) {
	repo := newFakeRepo()
	repo.failWith = errors.New("connection reset")
	svc, _ := newTestService(repo, 1)

	_, err := svc.List(context.Background(), filter.Params{})
	if !apperr.Is(err, apperr.KindStore) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestGetByIDMalformedIsNotFound(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), 1)

	_, err := svc.GetByID(context.Background(), "not-a-uuid")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateStatusLowercasesAndPublishes(t *testing.T) {
	lead := newLead(domain.StatusNew)
	repo := newFakeRepo(lead)
	svc, bus := newTestService(repo, 1)

	var (
		mu       sync.Mutex
		received []events.LeadStatusChanged
	)
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, e.(events.LeadStatusChanged))
		return nil
	}))

	resp, err := svc.UpdateStatus(context.Background(), lead.ID.String(), "Qualified")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bus.Wait()

	if resp.Status != "qualified" {
		t.Fatalf("expected qualified, got %q", resp.Status)
	}
	if len(received) != 1 || received[0].NewStatus != "qualified" || received[0].LeadID != lead.ID {
		t.Fatalf("unexpected events %+v", received)
	}
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	lead := newLead(domain.StatusConverted)
	svc, _ := newTestService(newFakeRepo(lead), 1)

	resp, err := svc.UpdateStatus(context.Background(), lead.ID.String(), "new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "new" {
		t.Fatalf("expected new, got %q", resp.Status)
	}
}

func TestUpdateStatusErrors(t *testing.T) {
	lead := newLead(domain.StatusNew)
	svc, _ := newTestService(newFakeRepo(lead), 1)

	if _, err := svc.UpdateStatus(context.Background(), lead.ID.String(), "won"); !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), uuid.NewString(), "new"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReplaceFeedbackReplaces(t *testing.T) {
	lead := newLead(domain.StatusContacted)
	lead.Feedback = []string{"first call went well"}
	svc, _ := newTestService(newFakeRepo(lead), 1)

	resp, err := svc.ReplaceFeedback(context.Background(), lead.ID.String(), []string{"needs pricing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Feedback) != 1 || resp.Feedback[0] != "needs pricing" {
		t.Fatalf("expected feedback to be replaced, got %v", resp.Feedback)
	}

	if _, err := svc.ReplaceFeedback(context.Background(), uuid.NewString(), nil); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFeedbackIsStoredVerbatim(t *testing.T) {
	lead := newLead(domain.StatusNew)
	repo := newFakeRepo(lead)
	svc, _ := newTestService(repo, 1)
	entries := []string{"budget < 50k but > 20k", "R&amp;D team", "  spaced  ", "<b>bold</b>"}

	if _, err := svc.ReplaceFeedback(context.Background(), lead.ID.String(), entries); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := repo.leads[lead.ID].Feedback
	if len(stored) != len(entries) {
		t.Fatalf("expected %d entries, got %q", len(entries), stored)
	}
	for i := range entries {
		if stored[i] != entries[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, entries[i], stored[i])
		}
	}

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:     "Asha Rao",
		Company:  "Rao Foods",
		Feedback: entries,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range entries {
		if resp.Feedback[i] != entries[i] {
			t.Fatalf("create entry %d: expected %q, got %q", i, entries[i], resp.Feedback[i])
		}
	}
}

func TestConvertCreatesAccountOnce(t *testing.T) {
	lead := newLead(domain.StatusNew)
	repo := newFakeRepo(lead)
	svc, _ := newTestService(repo, 42)

	resp, err := svc.Convert(context.Background(), lead.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Lead.Status != "converted" {
		t.Fatalf("expected converted lead, got %q", resp.Lead.Status)
	}
	if resp.Account.Company != lead.Company {
		t.Fatalf("expected account company %q, got %q", lead.Company, resp.Account.Company)
	}
	if resp.Account.Industry != DefaultAccountIndustry || resp.Account.Value != DefaultAccountValue || resp.Account.Status != DefaultAccountStatus {
		t.Fatalf("unexpected account defaults %+v", resp.Account)
	}
	wantOwner := AccountOwners[random.Seeded(42).IntN(len(AccountOwners))]
	if resp.Account.Owner != wantOwner {
		t.Fatalf("expected owner %q, got %q", wantOwner, resp.Account.Owner)
	}

	_, err = svc.Convert(context.Background(), lead.ID.String())
	if !apperr.Is(err, apperr.KindAlreadyConverted) {
		t.Fatalf("expected already converted, got %v", err)
	}
	if len(repo.accounts) != 1 {
		t.Fatalf("expected exactly one account, got %d", len(repo.accounts))
	}
}

func TestConvertPublishesEvent(t *testing.T) {
	lead := newLead(domain.StatusQualified)
	svc, bus := newTestService(newFakeRepo(lead), 3)

	var got events.LeadConverted
	bus.Subscribe(events.LeadConverted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		got = e.(events.LeadConverted)
		return nil
	}))

	resp, err := svc.Convert(context.Background(), lead.ID.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bus.Wait()

	if got.LeadID != lead.ID || got.AccountID.String() != resp.Account.ID {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestConvertErrors(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), 1)
	if _, err := svc.Convert(context.Background(), uuid.NewString()); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.Convert(context.Background(), "bogus"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}

	failing := newFakeRepo(newLead(domain.StatusNew))
	failing.failWith = errors.New("tx aborted")
	svc, _ = newTestService(failing, 1)
	for id := range failing.leads {
		if _, err := svc.Convert(context.Background(), id.String()); !apperr.Is(err, apperr.KindStore) {
			t.Fatalf("expected store error, got %v", err)
		}
	}
}

func TestCreateNormalizesPhoneAndDefaultsStatus(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), 1)
	score := 72

	resp, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:       "Vikram Nair",
		Company:    "Nair Exports",
		Phone:      "098765 43210",
		MatchScore: &score,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Status != "new" {
		t.Fatalf("expected new status, got %q", resp.Status)
	}
	if resp.Phone != "+919876543210" {
		t.Fatalf("expected E.164 phone, got %q", resp.Phone)
	}
	if resp.Feedback == nil {
		t.Fatalf("expected empty feedback slice, got nil")
	}
}

func TestCreateRejectsScoreOutOfRange(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), 1)
	score := 101

	_, err := svc.Create(context.Background(), transport.CreateLeadRequest{Name: "A", Company: "B", MatchScore: &score})
	if !apperr.Is(err, apperr.KindInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}
