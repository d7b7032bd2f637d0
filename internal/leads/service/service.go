package service

import (
	"context"
	"errors"
	"time"

	accountsrepo "sales_portal_backend/internal/accounts/repository"
	accountsservice "sales_portal_backend/internal/accounts/service"
	"sales_portal_backend/internal/events"
	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/internal/leads/filter"
	"sales_portal_backend/internal/leads/repository"
	"sales_portal_backend/internal/leads/transport"
	"sales_portal_backend/platform/apperr"
	"sales_portal_backend/platform/phone"
	"sales_portal_backend/platform/random"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	msgLeadNotFound     = "lead not found"
	msgAlreadyConverted = "lead already converted"
	msgServerError      = "server error"

	opList            = "leads.List"
	opGetByID         = "leads.GetByID"
	opCreate          = "leads.Create"
	opUpdateStatus    = "leads.UpdateStatus"
	opReplaceFeedback = "leads.ReplaceFeedback"
	opConvert         = "leads.Convert"
)

// Defaults for accounts created by a conversion. None of them come from the
// lead except the company name.
const (
	DefaultAccountIndustry = "Technology"
	DefaultAccountValue    = "$50,000"
	DefaultAccountStatus   = "Active"
)

// AccountOwners is the roster a converted account's owner is drawn from.
var AccountOwners = []string{"Rahul Sharma", "Priya Patel", "Arjun Mehta", "Sneha Iyer"}

var (
	leadsConverted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leads_converted_total",
		Help: "Total number of leads converted to accounts",
	})

	leadStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_status_updates_total",
			Help: "Total number of lead status updates by new status",
		},
		[]string{"status"},
	)
)

// Repository is the persistence the lead lifecycle needs.
type Repository interface {
	List(ctx context.Context, q filter.Query) ([]domain.Lead, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	Create(ctx context.Context, params repository.CreateLeadParams) (domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error)
	ReplaceFeedback(ctx context.Context, id uuid.UUID, feedback []string) (domain.Lead, error)
	Convert(ctx context.Context, id uuid.UUID, defaults repository.AccountDefaults) (domain.Lead, accountsrepo.Account, error)
}

// Options tune the service. Zero values fall back to UTC, the default
// phone region, the global random source and time.Now.
type Options struct {
	Location    *time.Location
	PhoneRegion string
	Random      random.Source
	Now         func() time.Time
}

// Service implements listing, intake and the lead lifecycle.
type Service struct {
	repo        Repository
	bus         events.Bus
	loc         *time.Location
	phoneRegion string
	rnd         random.Source
	now         func() time.Time
}

func New(repo Repository, bus events.Bus, opts Options) *Service {
	s := &Service{
		repo:        repo,
		bus:         bus,
		loc:         opts.Location,
		phoneRegion: opts.PhoneRegion,
		rnd:         opts.Random,
		now:         opts.Now,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.phoneRegion == "" {
		s.phoneRegion = phone.DefaultRegion
	}
	if s.rnd == nil {
		s.rnd = random.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// List returns every lead matching p in the requested order.
func (s *Service) List(ctx context.Context, p filter.Params) ([]transport.LeadResponse, error) {
	q, err := filter.Build(p, s.now(), s.loc)
	if err != nil {
		return nil, err
	}

	leads, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apperr.Store(msgServerError, err).WithOp(opList)
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, toLeadResponse(lead))
	}
	return items, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (transport.LeadResponse, error) {
	id, err := parseLeadID(rawID, opGetByID)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, opGetByID)
	}
	return toLeadResponse(lead), nil
}

// Create stores a lead from intake. New leads start as "new" unless the
// caller says otherwise.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	status := domain.StatusNew
	if req.Status != "" {
		parsed, ok := domain.ParseStatus(req.Status)
		if !ok {
			return transport.LeadResponse{}, apperr.InvalidArgument("invalid status").WithOp(opCreate)
		}
		status = parsed
	}

	score := 0
	if req.MatchScore != nil {
		score = *req.MatchScore
	}
	if score < domain.MinMatchScore || score > domain.MaxMatchScore {
		return transport.LeadResponse{}, apperr.InvalidArgument("matchScore must be between 0 and 100").WithOp(opCreate)
	}

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:        req.Name,
		Company:     req.Company,
		Industry:    req.Industry,
		Email:       req.Email,
		Phone:       phone.NormalizeE164(req.Phone, s.phoneRegion),
		MatchScore:  score,
		Status:      status,
		CompanySize: req.CompanySize,
		Location:    req.Location,
		Feedback:    req.Feedback,
	})
	if err != nil {
		return transport.LeadResponse{}, apperr.Store(msgServerError, err).WithOp(opCreate)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		Company:    lead.Company,
		MatchScore: lead.MatchScore,
	})

	return toLeadResponse(lead), nil
}

// UpdateStatus lowercases and stores the status. Any status may follow any
// other.
func (s *Service) UpdateStatus(ctx context.Context, rawID string, rawStatus string) (transport.LeadResponse, error) {
	id, err := parseLeadID(rawID, opUpdateStatus)
	if err != nil {
		return transport.LeadResponse{}, err
	}
	status, ok := domain.ParseStatus(rawStatus)
	if !ok {
		return transport.LeadResponse{}, apperr.InvalidArgument("invalid status").WithOp(opUpdateStatus)
	}

	lead, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, opUpdateStatus)
	}

	leadStatusUpdates.WithLabelValues(string(status)).Inc()
	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		NewStatus: string(lead.Status),
	})

	return toLeadResponse(lead), nil
}

// ReplaceFeedback overwrites the feedback sequence; it never appends. Entries
// are stored exactly as received.
func (s *Service) ReplaceFeedback(ctx context.Context, rawID string, feedback []string) (transport.LeadResponse, error) {
	id, err := parseLeadID(rawID, opReplaceFeedback)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.repo.ReplaceFeedback(ctx, id, feedback)
	if err != nil {
		return transport.LeadResponse{}, mapRepoError(err, opReplaceFeedback)
	}
	return toLeadResponse(lead), nil
}

// Convert turns the lead into an account. The lead write and the account
// insert commit together, and a lead that is already converted is rejected.
func (s *Service) Convert(ctx context.Context, rawID string) (transport.ConversionResponse, error) {
	id, err := parseLeadID(rawID, opConvert)
	if err != nil {
		return transport.ConversionResponse{}, err
	}

	lead, account, err := s.repo.Convert(ctx, id, repository.AccountDefaults{
		Industry: DefaultAccountIndustry,
		Value:    DefaultAccountValue,
		Owner:    AccountOwners[s.rnd.IntN(len(AccountOwners))],
		Status:   DefaultAccountStatus,
	})
	if err != nil {
		return transport.ConversionResponse{}, mapRepoError(err, opConvert)
	}

	leadsConverted.Inc()
	s.bus.Publish(ctx, events.LeadConverted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		AccountID: account.ID,
		Company:   account.Company,
		Owner:     account.Owner,
	})

	return transport.ConversionResponse{
		Lead:    toLeadResponse(lead),
		Account: accountsservice.ToResponse(account),
	}, nil
}

// parseLeadID treats a malformed id like an unknown one.
func parseLeadID(raw string, op string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.NotFound(msgLeadNotFound).WithOp(op)
	}
	return id, nil
}

func mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperr.NotFound(msgLeadNotFound).WithOp(op)
	case errors.Is(err, repository.ErrAlreadyConverted):
		return apperr.AlreadyConverted(msgAlreadyConverted).WithOp(op)
	default:
		return apperr.Store(msgServerError, err).WithOp(op)
	}
}

func toLeadResponse(lead domain.Lead) transport.LeadResponse {
	feedback := lead.Feedback
	if feedback == nil {
		feedback = []string{}
	}
	return transport.LeadResponse{
		ID:          lead.ID.String(),
		Name:        lead.Name,
		Company:     lead.Company,
		Industry:    lead.Industry,
		Email:       lead.Email,
		Phone:       lead.Phone,
		MatchScore:  lead.MatchScore,
		Status:      string(lead.Status),
		CompanySize: lead.CompanySize,
		Location:    lead.Location,
		Feedback:    feedback,
		CreatedAt:   lead.CreatedAt,
		LastUpdated: lead.LastUpdated,
	}
}
