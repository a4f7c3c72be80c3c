package session

import (
	"calltracker/internal/models"
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type Nav string

const (
	NavFirst Nav = "first"
	NavPrev  Nav = "prev"
	NavNext  Nav = "next"
	NavLast  Nav = "last"
)

// Session is one logged-in identity's view: its criteria, the last
// delivered result with a page cursor, and its call tracker.
type Session struct {
	Identity models.Identity
	Token    string

	tracker  *Tracker
	searcher *Searcher
	lastSeen atomic.Time

	mu        sync.Mutex
	criteria  models.FilterCriteria
	paginator *models.Paginator[models.VoterRecord]
	wantSeq   uint64
	loading   bool
	lastErr   error
}

// SetCriteria records new input and schedules a debounced search. Blank
// criteria clear the result right away without touching the store.
func (s *Session) SetCriteria(criteria models.FilterCriteria) {
	criteria = criteria.Normalize()
	s.Touch()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = criteria
	s.lastErr = nil
	if criteria.IsEmpty() {
		s.wantSeq = s.searcher.Cancel()
		s.loading = false
		s.paginator.Reset(nil)
		return
	}
	s.wantSeq = s.searcher.Submit(criteria)
	s.loading = true
}

// Apply installs a search delivery. Deliveries for superseded input are
// dropped; failures keep the previous result on screen.
func (s *Session) Apply(d Delivery) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d.Seq != s.wantSeq {
		return false
	}
	s.loading = false
	if d.Err != nil {
		s.lastErr = d.Err
		return true
	}
	s.lastErr = nil
	s.paginator.Reset(d.Results)
	return true
}

// View renders the current page.
func (s *Session) View() models.PageView {
	s.Touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Navigate moves the page cursor and renders. page > 0 takes precedence
// over nav.
func (s *Session) Navigate(nav Nav, page int) models.PageView {
	s.Touch()
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case page > 0:
		s.paginator.Goto(page)
	case nav == NavFirst:
		s.paginator.First()
	case nav == NavPrev:
		s.paginator.Prev()
	case nav == NavNext:
		s.paginator.Next()
	case nav == NavLast:
		s.paginator.Last()
	}
	return s.viewLocked()
}

func (s *Session) viewLocked() models.PageView {
	view := models.NewPageView(s.criteria, s.paginator, s.tracker.IsCalled)
	view.Loading = s.loading
	if s.lastErr != nil {
		view.Error = s.lastErr.Error()
	}
	return view
}

func (s *Session) Criteria() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *Session) Toggle(ctx context.Context, voterID string) (bool, error) {
	s.Touch()
	return s.tracker.Toggle(ctx, voterID)
}

func (s *Session) Tracker() *Tracker {
	return s.tracker
}

func (s *Session) Touch() {
	s.lastSeen.Store(time.Now())
}

// Idle reports whether the session has been unused for longer than ttl.
func (s *Session) Idle(ttl time.Duration) bool {
	return ttl > 0 && time.Since(s.lastSeen.Load()) > ttl
}

func (s *Session) Close() {
	s.searcher.Stop()
}
