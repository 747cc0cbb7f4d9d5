package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/saubh/planwise/internal/metrics"
	"github.com/saubh/planwise/internal/repository"
)

// Service is the single in-memory source of truth consumed by presentation.
// Every mutation persists through the repository and then reloads the full
// ordered collection wholesale, so the snapshot can never silently diverge
// from durable state. A failed operation leaves the prior snapshot intact.
type Service struct {
	repo   Repository
	logger *slog.Logger

	mu       sync.RWMutex
	projects []Project
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Load replaces the in-memory collection with the store's current contents,
// preserving store order. Idempotent; safe to call repeatedly.
func (s *Service) Load(ctx context.Context) error {
	start := time.Now()
	list, err := s.repo.List(ctx)
	metrics.ObserveStore("list", start, err)
	if err != nil {
		return fmt.Errorf("loading projects: %w", err)
	}

	s.mu.Lock()
	s.projects = list
	s.mu.Unlock()
	metrics.SetSnapshotSize(len(list))

	return nil
}

// Add persists a new project and reloads the collection. The draft's ID is
// ignored; the store assigns a fresh one. Both timestamps are set to now.
// The service does not validate the draft; see Validator.
func (s *Service) Add(ctx context.Context, draft Project) (Project, error) {
	now := time.Now()
	draft.ID = 0
	draft.CreationDate = now
	draft.LastModifiedDate = now

	start := time.Now()
	id, err := s.repo.Insert(ctx, &draft)
	metrics.ObserveStore("insert", start, err)
	if err != nil {
		return Project{}, fmt.Errorf("adding project: %w", err)
	}
	draft.ID = id

	if err := s.Load(ctx); err != nil {
		return Project{}, err
	}

	s.logger.Debug("project added", "id", id, "client", draft.ClientName)
	return draft, nil
}

// Update replaces the stored record matching proj.ID with the supplied record
// and reloads the collection. LastModifiedDate is refreshed before persisting;
// CreationDate is persisted as given and must carry the original value.
func (s *Service) Update(ctx context.Context, proj Project) (Project, error) {
	proj.LastModifiedDate = time.Now()

	start := time.Now()
	err := s.repo.Update(ctx, &proj)
	metrics.ObserveStore("update", start, err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Project{}, ErrProjectNotFound
		}
		return Project{}, fmt.Errorf("updating project: %w", err)
	}

	if err := s.Load(ctx); err != nil {
		return Project{}, err
	}

	s.logger.Debug("project updated", "id", proj.ID)
	return proj, nil
}

// Delete removes the record matching proj.ID and reloads the collection.
// Deleting an absent id is a no-op.
func (s *Service) Delete(ctx context.Context, proj Project) error {
	start := time.Now()
	err := s.repo.Delete(ctx, proj.ID)
	metrics.ObserveStore("delete", start, err)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	if err := s.Load(ctx); err != nil {
		return err
	}

	s.logger.Debug("project deleted", "id", proj.ID)
	return nil
}

// Projects returns a copy of the current snapshot in store order.
func (s *Service) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Get returns the snapshot's project with the given id.
func (s *Service) Get(id int64) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return Project{}, ErrProjectNotFound
}

// Totals sums payment amounts across the snapshot.
func (s *Service) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t Totals
	for _, p := range s.projects {
		t.TotalPayment += p.TotalPayment
		t.AdvancePayment += p.AdvancePayment
	}
	t.Outstanding = t.TotalPayment - t.AdvancePayment
	return t
}
