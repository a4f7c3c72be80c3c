package testutil

import (
	"calltracker/internal/models"
	"calltracker/internal/providers"
	"calltracker/internal/store"
	"context"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// identity
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu              sync.Mutex
	CacheHits       int
	CacheMisses     int
	Persisted       int
	Records         map[string]int
	Searches        map[string]int
	StaleDeliveries int
	Toggles         map[string]int
	Exports         map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Persisted++
}

func (m *MockMetrics) SetRecordsTotal(kind string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Records == nil {
		m.Records = make(map[string]int)
	}
	m.Records[kind] = count
}

func (m *MockMetrics) IncSearches(strategy string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Searches == nil {
		m.Searches = make(map[string]int)
	}
	m.Searches[strategy]++
}

func (m *MockMetrics) IncStaleDeliveries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleDeliveries++
}

func (m *MockMetrics) IncToggles(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Toggles == nil {
		m.Toggles = make(map[string]int)
	}
	m.Toggles[outcome]++
}

func (m *MockMetrics) IncExports(exportType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Exports == nil {
		m.Exports = make(map[string]int)
	}
	m.Exports[exportType]++
}

// Stale returns the stale delivery count under the lock.
func (m *MockMetrics) Stale() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StaleDeliveries
}

// MockStore wraps a MemoryStore with injectable failures and hooks. Insert
// and delete hooks run first; a nil error lets the real call proceed.
type MockStore struct {
	*store.MemoryStore

	mu                sync.Mutex
	FetchVotersFn     func(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error)
	FetchAllVotersErr error
	InsertCallFn      func(ctx context.Context, ev models.CallEvent) error
	DeleteCallFn      func(ctx context.Context, identityID, voterID string) error
	FetchCallsErr     error
	FetchVotersCalls  int
	FetchAllCalls     int
}

func NewMockStore(voters ...models.VoterRecord) *MockStore {
	ms := store.NewMemoryStore(models.NewFilterEngine(false))
	if len(voters) > 0 {
		_, _ = ms.UpsertVoters(context.Background(), voters)
	}
	return &MockStore{MemoryStore: ms}
}

var _ store.RecordStore = (*MockStore)(nil)

func (m *MockStore) FetchVoters(ctx context.Context, criteria models.FilterCriteria) ([]models.VoterRecord, error) {
	m.mu.Lock()
	m.FetchVotersCalls++
	fn := m.FetchVotersFn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, criteria)
	}
	return m.MemoryStore.FetchVoters(ctx, criteria)
}

func (m *MockStore) FetchAllVoters(ctx context.Context) ([]models.VoterRecord, error) {
	m.mu.Lock()
	m.FetchAllCalls++
	err := m.FetchAllVotersErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.MemoryStore.FetchAllVoters(ctx)
}

func (m *MockStore) FetchCallEvents(ctx context.Context, identityID string) ([]models.CallEvent, error) {
	m.mu.Lock()
	err := m.FetchCallsErr
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.MemoryStore.FetchCallEvents(ctx, identityID)
}

func (m *MockStore) InsertCallEvent(ctx context.Context, ev models.CallEvent) error {
	m.mu.Lock()
	fn := m.InsertCallFn
	m.mu.Unlock()
	if fn != nil {
		if err := fn(ctx, ev); err != nil {
			return err
		}
	}
	return m.MemoryStore.InsertCallEvent(ctx, ev)
}

func (m *MockStore) DeleteCallEvent(ctx context.Context, identityID, voterID string) error {
	m.mu.Lock()
	fn := m.DeleteCallFn
	m.mu.Unlock()
	if fn != nil {
		if err := fn(ctx, identityID, voterID); err != nil {
			return err
		}
	}
	return m.MemoryStore.DeleteCallEvent(ctx, identityID, voterID)
}

// Calls returns FetchVoters and FetchAllVoters call counts.
func (m *MockStore) Calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchVotersCalls, m.FetchAllCalls
}
