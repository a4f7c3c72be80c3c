package session

import (
	"calltracker/internal/models"
	"context"
	"errors"
	"sync"
	"time"
)

type ToggleState int

const (
	StateIdle ToggleState = iota
	StatePending
	StateCommitted
	StateRolledBack
)

func (s ToggleState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "idle"
	}
}

// CallStore is the slice of the record store the tracker writes through.
type CallStore interface {
	FetchCallEvents(ctx context.Context, identityID string) ([]models.CallEvent, error)
	InsertCallEvent(ctx context.Context, ev models.CallEvent) error
	DeleteCallEvent(ctx context.Context, identityID, voterID string) error
}

// Tracker owns one identity's called set. A toggle flips the local set
// first and then writes through; a failed write restores the set. Only one
// toggle may be pending at a time.
type Tracker struct {
	identityID string
	store      CallStore
	called     *models.CalledSet
	now        func() time.Time

	mu      sync.Mutex
	state   ToggleState
	pending string
}

func NewTracker(identityID string, store CallStore) *Tracker {
	return &Tracker{
		identityID: identityID,
		store:      store,
		called:     models.NewCalledSet(),
		now:        time.Now,
	}
}

// Hydrate replaces the called set with the identity's stored events.
func (t *Tracker) Hydrate(ctx context.Context) error {
	events, err := t.store.FetchCallEvents(ctx, t.identityID)
	if err != nil {
		return models.Remote("fetch call events", err)
	}
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.VoterID)
	}
	t.called.PutData(ids)
	return nil
}

// Toggle flips voterID and reports whether it is now marked called.
func (t *Tracker) Toggle(ctx context.Context, voterID string) (bool, error) {
	if voterID == "" {
		return false, models.NewValidationError("voterId", "voter id is required")
	}

	t.mu.Lock()
	if t.state == StatePending {
		t.mu.Unlock()
		return false, models.ErrToggleInFlight
	}
	t.state = StatePending
	t.pending = voterID
	wasCalled := t.called.Has(voterID)
	if wasCalled {
		t.called.Remove(voterID)
	} else {
		t.called.Add(voterID)
	}
	t.mu.Unlock()

	var err error
	if wasCalled {
		err = t.store.DeleteCallEvent(ctx, t.identityID, voterID)
	} else {
		err = t.store.InsertCallEvent(ctx, models.CallEvent{
			IdentityID: t.identityID,
			VoterID:    voterID,
			CreatedAt:  t.now().UTC(),
		})
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = ""
	if err != nil {
		if wasCalled {
			t.called.Add(voterID)
		} else {
			t.called.Remove(voterID)
		}
		t.state = StateRolledBack
		if errors.Is(err, models.ErrNotFound) {
			return wasCalled, err
		}
		return wasCalled, models.Remote("toggle call", err)
	}
	t.state = StateCommitted
	return !wasCalled, nil
}

func (t *Tracker) IsCalled(voterID string) bool {
	return t.called.Has(voterID)
}

func (t *Tracker) Called() []string {
	return t.called.IDs()
}

func (t *Tracker) Len() int {
	return t.called.Len()
}

// State returns the last toggle state and the voter in flight, if any.
func (t *Tracker) State() (ToggleState, string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.pending
}
