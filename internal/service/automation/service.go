package automation

import (
	"context"
	"fmt"
	"time"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/distlock"
	"github.com/kloudinfotech/helpdesk-console/internal/pkg/logger"
)

// RunDedupeWindow is how long a triggered run blocks another trigger of
// the same automation.
const RunDedupeWindow = 10 * time.Second

// LockFunc returns a lock for the given key.
type LockFunc func(key string, ttl time.Duration) distlock.DistLock

// Service manages email automations through the helpdesk API.
type Service struct {
	repo    Repository
	newLock LockFunc
}

// NewService creates an automation service. newLock may be nil, in which
// case runs are not de-duplicated.
func NewService(repo Repository, newLock LockFunc) *Service {
	return &Service{repo: repo, newLock: newLock}
}

// Catalog is everything the automation screen loads at once.
type Catalog struct {
	Automations   []domain.AutomationConfig `json:"automations"`
	Templates     []domain.EmailTemplate    `json:"templates"`
	Organizations []domain.Organization     `json:"organizations"`
}

// Catalog loads automations, templates and organizations.
func (s *Service) Catalog(ctx context.Context) (*Catalog, error) {
	autos, err := s.repo.ListAutomations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list automations: %w", err)
	}
	tpls, err := s.repo.ListEmailTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list email templates: %w", err)
	}
	orgs, err := s.repo.ListOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return &Catalog{Automations: autos, Templates: tpls, Organizations: orgs}, nil
}

// List returns the tenant's automations.
func (s *Service) List(ctx context.Context) ([]domain.AutomationConfig, error) {
	return s.repo.ListAutomations(ctx)
}

// Create validates and stores a new automation.
func (s *Service) Create(ctx context.Context, draft domain.AutomationConfig) (domain.AutomationConfig, error) {
	cfg, err := Prepare(draft)
	if err != nil {
		return cfg, err
	}
	cfg.ID = ""
	cfg.LastSent = nil
	return s.repo.CreateAutomation(ctx, cfg)
}

// Update validates and replaces an existing automation.
func (s *Service) Update(ctx context.Context, id string, draft domain.AutomationConfig) (domain.AutomationConfig, error) {
	if id == "" {
		return draft, fmt.Errorf("%w: id is required", ErrValidation)
	}
	cfg, err := Prepare(draft)
	if err != nil {
		return cfg, err
	}
	cfg.ID = id
	return s.repo.UpdateAutomation(ctx, id, cfg)
}

// Delete removes an automation.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteAutomation(ctx, id)
}

// Toggle flips the automation's enabled flag and returns the new value.
func (s *Service) Toggle(ctx context.Context, id string) (bool, error) {
	autos, err := s.repo.ListAutomations(ctx)
	if err != nil {
		return false, fmt.Errorf("list automations: %w", err)
	}
	for _, a := range autos {
		if a.ID == id {
			next := !a.IsEnabled
			if err := s.repo.SetAutomationEnabled(ctx, id, next); err != nil {
				return a.IsEnabled, err
			}
			return next, nil
		}
	}
	return false, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Run triggers an automation. A second trigger for the same automation
// within RunDedupeWindow returns ErrRunInProgress. If the lock backend is
// unavailable the run proceeds.
func (s *Service) Run(ctx context.Context, id string) error {
	var lock distlock.DistLock
	if s.newLock != nil {
		l := s.newLock("automation-run:"+id, RunDedupeWindow)
		ok, err := l.Acquire(ctx)
		switch {
		case err != nil:
			logger.Warn("automation run lock unavailable", "automation_id", id, "error", err)
		case !ok:
			return fmt.Errorf("%w: %s", ErrRunInProgress, id)
		default:
			lock = l
		}
	}
	if err := s.repo.RunAutomation(ctx, id); err != nil {
		// A failed trigger must not block the retry.
		if lock != nil {
			_ = lock.Release(context.WithoutCancel(ctx))
		}
		return err
	}
	return nil
}
