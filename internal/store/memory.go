package store

import (
	"calltracker/internal/models"
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps the whole roster and all events in process. It is
// persisted through Snapshot/PutSnapshot by the persistence scheduler.
type MemoryStore struct {
	mu         sync.RWMutex
	engine     *models.FilterEngine
	voters     []models.VoterRecord
	voterIndex map[string]int
	identities map[string]models.Identity
	calls      []models.CallEvent
	callIndex  map[string]struct{}
	exports    []models.ExportEvent
}

func NewMemoryStore(engine *models.FilterEngine) *MemoryStore {
	return &MemoryStore{
		engine:     engine,
		voterIndex: make(map[string]int),
		identities: make(map[string]models.Identity),
		callIndex:  make(map[string]struct{}),
	}
}

func (s *MemoryStore) FetchVoters(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Search(criteria, s.voters), nil
}

func (s *MemoryStore) FetchAllVoters(ctx context.Context) ([]models.VoterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VoterRecord, len(s.voters))
	copy(out, s.voters)
	return out, nil
}

func (s *MemoryStore) FetchVotersByIDs(ctx context.Context, ids []string) ([]models.VoterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VoterRecord, 0, len(ids))
	for _, id := range ids {
		if i, ok := s.voterIndex[id]; ok {
			out = append(out, s.voters[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) LookupVoters(ctx context.Context, q models.LookupQuery) ([]models.VoterRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.VoterRecord, 0)
	for i := range s.voters {
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
		if q.Matches(&s.voters[i]) {
			out = append(out, s.voters[i])
		}
	}
	return out, nil
}

func (s *MemoryStore) CountVoters(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.voters), nil
}

// UpsertVoters replaces records with a known id in place and appends the
// rest, keeping store order stable.
func (s *MemoryStore) UpsertVoters(ctx context.Context, voters []models.VoterRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range voters {
		if v.ID == "" {
			return 0, models.NewValidationError("id", "voter id is required")
		}
		if i, ok := s.voterIndex[v.ID]; ok {
			s.voters[i] = v
			continue
		}
		s.voterIndex[v.ID] = len(s.voters)
		s.voters = append(s.voters, v)
	}
	return len(voters), nil
}

func (s *MemoryStore) FetchCallEvents(ctx context.Context, identityID string) ([]models.CallEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.CallEvent, 0, len(s.calls))
	for _, ev := range s.calls {
		if identityID == "" || ev.IdentityID == identityID {
			out = append(out, ev)
		}
	}
	return out, nil
}

// InsertCallEvent records a call. Both the identity and the voter must exist.
func (s *MemoryStore) InsertCallEvent(ctx context.Context, ev models.CallEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[ev.IdentityID]; !ok {
		return fmt.Errorf("identity %s: %w", ev.IdentityID, models.ErrNotFound)
	}
	if _, ok := s.voterIndex[ev.VoterID]; !ok {
		return fmt.Errorf("voter %s: %w", ev.VoterID, models.ErrNotFound)
	}
	key := ev.Key()
	if _, ok := s.callIndex[key]; ok {
		return nil
	}
	s.callIndex[key] = struct{}{}
	s.calls = append(s.calls, ev)
	return nil
}

func (s *MemoryStore) DeleteCallEvent(ctx context.Context, identityID, voterID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.CallEvent{IdentityID: identityID, VoterID: voterID}.Key()
	if _, ok := s.callIndex[key]; !ok {
		return nil
	}
	delete(s.callIndex, key)
	for i, ev := range s.calls {
		if ev.Key() == key {
			s.calls = append(s.calls[:i], s.calls[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) FetchIdentities(ctx context.Context) ([]models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Identity, 0, len(s.identities))
	for _, id := range s.identities {
		out = append(out, id)
	}
	return out, nil
}

func (s *MemoryStore) FetchIdentity(ctx context.Context, id string) (*models.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.identities[id]
	if !ok {
		return nil, fmt.Errorf("identity %s: %w", id, models.ErrNotFound)
	}
	return &identity, nil
}

func (s *MemoryStore) UpsertIdentity(ctx context.Context, identity models.Identity) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// fast path
	s.mu.RLock()
	_, ok := s.identities[identity.ID]
	s.mu.RUnlock()
	if ok {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[identity.ID]; ok {
		return nil
	}
	s.identities[identity.ID] = identity
	return nil
}

func (s *MemoryStore) InsertExportEvent(ctx context.Context, ev models.ExportEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports = append(s.exports, ev)
	return nil
}

func (s *MemoryStore) CountExportEvents(ctx context.Context, identityID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, ev := range s.exports {
		if ev.IdentityID == identityID {
			n++
		}
	}
	return n, nil
}

// Snapshot returns a deep copy suitable for serialization without holding
// the lock.
func (s *MemoryStore) Snapshot() *models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &models.Snapshot{
		Version:      models.SnapshotVersion,
		Voters:       make([]models.VoterRecord, len(s.voters)),
		Identities:   make([]models.Identity, 0, len(s.identities)),
		CallEvents:   make([]models.CallEvent, len(s.calls)),
		ExportEvents: make([]models.ExportEvent, len(s.exports)),
	}
	copy(snap.Voters, s.voters)
	copy(snap.CallEvents, s.calls)
	copy(snap.ExportEvents, s.exports)
	for _, id := range s.identities {
		snap.Identities = append(snap.Identities, id)
	}
	return snap
}

// PutSnapshot replaces the store contents. Duplicate call pairs in the
// image are collapsed.
func (s *MemoryStore) PutSnapshot(snap *models.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.voters = make([]models.VoterRecord, 0, len(snap.Voters))
	s.voterIndex = make(map[string]int, len(snap.Voters))
	for _, v := range snap.Voters {
		if i, ok := s.voterIndex[v.ID]; ok {
			s.voters[i] = v
			continue
		}
		s.voterIndex[v.ID] = len(s.voters)
		s.voters = append(s.voters, v)
	}

	s.identities = make(map[string]models.Identity, len(snap.Identities))
	for _, id := range snap.Identities {
		s.identities[id.ID] = id
	}

	s.calls = make([]models.CallEvent, 0, len(snap.CallEvents))
	s.callIndex = make(map[string]struct{}, len(snap.CallEvents))
	for _, ev := range snap.CallEvents {
		if _, ok := s.callIndex[ev.Key()]; ok {
			continue
		}
		s.callIndex[ev.Key()] = struct{}{}
		s.calls = append(s.calls, ev)
	}

	s.exports = append([]models.ExportEvent(nil), snap.ExportEvents...)
}

func (s *MemoryStore) Close() {}
