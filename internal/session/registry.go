package session

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/structures"
	"context"
	"fmt"
	"sync"
)

// RosterSearcher is the roster search a session runs on criteria changes.
type RosterSearcher interface {
	Search(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error)
}

// Registry maps client tokens to live sessions.
type Registry struct {
	conf     *structures.Config
	store    CallStore
	searcher RosterSearcher
	metrics  providers.MetricsProviderInterface
	logger   providers.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(conf *structures.Config, store CallStore, searcher RosterSearcher, metrics providers.MetricsProviderInterface, logger providers.Logger) *Registry {
	return &Registry{
		conf:     conf,
		store:    store,
		searcher: searcher,
		metrics:  metrics,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Open returns the session for token, creating and hydrating it on first
// use. An existing session for a different identity is replaced.
func (r *Registry) Open(ctx context.Context, token string, identity models.Identity) (*Session, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}

	r.mu.RLock()
	sess, ok := r.sessions[token]
	r.mu.RUnlock()
	if ok && sess.Identity.ID == identity.ID {
		sess.Touch()
		return sess, nil
	}

	sess = r.newSession(token, identity)
	if err := sess.tracker.Hydrate(ctx); err != nil {
		sess.Close()
		return nil, fmt.Errorf("open session for %s: %w", identity.ID, err)
	}

	r.mu.Lock()
	if prev, ok := r.sessions[token]; ok {
		if prev.Identity.ID == identity.ID {
			r.mu.Unlock()
			sess.Close()
			prev.Touch()
			return prev, nil
		}
		prev.Close()
	}
	r.sessions[token] = sess
	r.mu.Unlock()

	r.logger.Debugf(providers.TypeApp, "Session opened for %s (%d called)", identity.ID, sess.tracker.Len())
	return sess, nil
}

func (r *Registry) newSession(token string, identity models.Identity) *Session {
	sess := &Session{
		Identity:  identity,
		Token:     token,
		tracker:   NewTracker(identity.ID, r.store),
		paginator: models.NewPaginator[models.VoterRecord](nil, r.conf.Search.PageSize),
	}
	sess.searcher = NewSearcher(r.searcher.Search, func(d Delivery) {
		if d.Err != nil {
			r.logger.Errorf(providers.TypeApp, "Search for %s failed: %v", identity.ID, d.Err)
		}
		if !sess.Apply(d) {
			r.metrics.IncStaleDeliveries()
		}
	}, r.conf.Search.Debounce, r.conf.Search.Timeout, r.metrics)
	sess.Touch()
	return sess
}

func (r *Registry) Get(token string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[token]
	if ok {
		sess.Touch()
	}
	return sess, ok
}

func (r *Registry) Close(token string) {
	r.mu.Lock()
	sess, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()
	if ok {
		sess.Close()
	}
}

// Sweep drops sessions idle for longer than the configured ttl.
func (r *Registry) Sweep() int {
	ttl := r.conf.Session.TTL
	var idle []*Session

	r.mu.Lock()
	for token, sess := range r.sessions {
		if sess.Idle(ttl) {
			idle = append(idle, sess)
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()

	for _, sess := range idle {
		sess.Close()
	}
	return len(idle)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll stops every session. Used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()
	for _, sess := range sessions {
		sess.Close()
	}
}
