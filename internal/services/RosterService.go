package services

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/store"
	"calltracker/internal/structures"
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	StrategyClient = "client"
	StrategyRemote = "remote"
)

type RosterServiceInterface interface {
	Search(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error)
	Count(ctx context.Context) (int, error)
	Lookup(ctx context.Context, raw string) ([]models.VoterRecord, error)
	Voter(ctx context.Context, id string) (*models.VoterRecord, error)
	Reload(ctx context.Context) error
	Strategy() string
}

// RosterService runs roster searches with one of two strategies. The client
// strategy loads the whole roster once and filters in process; the remote
// strategy pushes the criteria down to the store on every call.
type RosterService struct {
	store    store.RecordStore
	engine   *models.FilterEngine
	strategy string
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger

	mu     sync.RWMutex
	corpus []models.VoterRecord
	loaded bool
}

func NewRosterService(conf *structures.Config, store store.RecordStore, metrics providers.MetricsProviderInterface, logger providers.Logger) *RosterService {
	strategy := conf.Search.Strategy
	if strategy != StrategyClient {
		strategy = StrategyRemote
	}
	return &RosterService{
		store:    store,
		engine:   models.NewFilterEngine(conf.Search.AddressMatchesMetadata),
		strategy: strategy,
		metrics:  metrics,
		logger:   logger,
	}
}

func (rs *RosterService) Strategy() string {
	return rs.strategy
}

// Search returns every matching voter in roster order. Blank criteria return
// an empty result without touching the store.
func (rs *RosterService) Search(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error) {
	criteria = criteria.Normalize()
	if criteria.IsEmpty() {
		return []models.VoterRecord{}, nil
	}
	rs.metrics.IncSearches(rs.strategy)

	if rs.strategy == StrategyClient {
		corpus, err := rs.loadCorpus(ctx)
		if err != nil {
			return nil, err
		}
		return rs.engine.Search(criteria, corpus), nil
	}

	voters, err := rs.store.FetchVoters(ctx, criteria)
	if err != nil {
		return nil, remote("fetch voters", err)
	}
	return voters, nil
}

func (rs *RosterService) loadCorpus(ctx context.Context) ([]models.VoterRecord, error) {
	rs.mu.RLock()
	if rs.loaded {
		corpus := rs.corpus
		rs.mu.RUnlock()
		return corpus, nil
	}
	rs.mu.RUnlock()

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.loaded {
		return rs.corpus, nil
	}
	corpus, err := rs.store.FetchAllVoters(ctx)
	if err != nil {
		return nil, remote("fetch roster", err)
	}
	rs.corpus = corpus
	rs.loaded = true
	rs.logger.Infof(providers.TypeApp, "Roster loaded for client search: %d voters", len(corpus))
	return corpus, nil
}

// Reload drops the client-side roster so the next search fetches it again.
func (rs *RosterService) Reload(ctx context.Context) error {
	rs.mu.Lock()
	rs.corpus = nil
	rs.loaded = false
	rs.mu.Unlock()
	if rs.strategy != StrategyClient {
		return nil
	}
	_, err := rs.loadCorpus(ctx)
	return err
}

func (rs *RosterService) Count(ctx context.Context) (int, error) {
	n, err := rs.store.CountVoters(ctx)
	if err != nil {
		return 0, remote("count voters", err)
	}
	return n, nil
}

// Lookup serves the voter slip search. Queries shorter than two characters
// yield nothing.
func (rs *RosterService) Lookup(ctx context.Context, raw string) ([]models.VoterRecord, error) {
	q, ok := models.ClassifyLookup(raw)
	if !ok {
		return []models.VoterRecord{}, nil
	}
	voters, err := rs.store.LookupVoters(ctx, q)
	if err != nil {
		return nil, remote("lookup voters", err)
	}
	return voters, nil
}

func (rs *RosterService) Voter(ctx context.Context, id string) (*models.VoterRecord, error) {
	if id == "" {
		return nil, models.NewValidationError("id", "voter id is required")
	}
	voters, err := rs.store.FetchVotersByIDs(ctx, []string{id})
	if err != nil {
		return nil, remote("fetch voter", err)
	}
	if len(voters) == 0 {
		return nil, fmt.Errorf("voter %s: %w", id, models.ErrNotFound)
	}
	return &voters[0], nil
}

// remote tags store failures. Cancellation, not-found and validation errors
// pass through untouched.
func remote(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, models.ErrNotFound) || errors.Is(err, models.ErrValidation) {
		return err
	}
	return models.Remote(op, err)
}
