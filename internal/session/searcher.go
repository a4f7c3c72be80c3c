package session

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type SearchFunc func(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error)

// Delivery is the outcome of one debounced search.
type Delivery struct {
	Seq      uint64
	Criteria models.FilterCriteria
	Results  []models.VoterRecord
	Err      error
}

// Searcher debounces criteria changes. Every Submit gets a new sequence
// number; it stops the pending timer and cancels the search in flight.
// Only the delivery matching the latest sequence reaches deliver.
type Searcher struct {
	search   SearchFunc
	deliver  func(Delivery)
	debounce time.Duration
	timeout  time.Duration
	metrics  providers.MetricsProviderInterface

	seq    atomic.Uint64
	mu     sync.Mutex
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool
}

func NewSearcher(search SearchFunc, deliver func(Delivery), debounce, timeout time.Duration, metrics providers.MetricsProviderInterface) *Searcher {
	return &Searcher{
		search:   search,
		deliver:  deliver,
		debounce: debounce,
		timeout:  timeout,
		metrics:  metrics,
	}
}

// Submit schedules a search for criteria and returns its sequence number.
func (s *Searcher) Submit(criteria models.FilterCriteria) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.seq.Inc()
	if s.closed {
		return seq
	}
	s.stopLocked()
	s.timer = time.AfterFunc(s.debounce, func() {
		s.run(seq, criteria)
	})
	return seq
}

func (s *Searcher) run(seq uint64, criteria models.FilterCriteria) {
	s.mu.Lock()
	if s.closed || seq != s.seq.Load() {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), s.timeout)
	}
	s.cancel = cancel
	s.mu.Unlock()

	results, err := s.search(ctx, criteria)
	cancel()

	if seq != s.seq.Load() || errors.Is(err, context.Canceled) {
		s.metrics.IncStaleDeliveries()
		return
	}
	s.deliver(Delivery{Seq: seq, Criteria: criteria, Results: results, Err: err})
}

func (s *Searcher) stopLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Cancel supersedes any pending or running search without scheduling a new
// one and returns the new sequence number.
func (s *Searcher) Cancel() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seq := s.seq.Inc()
	s.stopLocked()
	return seq
}

// Latest is the sequence number of the newest submission.
func (s *Searcher) Latest() uint64 {
	return s.seq.Load()
}

// Stop cancels pending and in-flight work. Later submissions are ignored.
func (s *Searcher) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopLocked()
}
