package persistence

import (
	"calltracker/internal/models"
	"calltracker/internal/store"
	"calltracker/internal/structures"
	"calltracker/internal/testutil"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep() int {
	s.calls.Add(1)
	return 1
}

func testConfig(filePath string) *structures.Config {
	return &structures.Config{
		Store: structures.StoreConfig{
			Driver:       "memory",
			SnapshotPath: filePath,
			SaveInterval: 1 * time.Second,
		},
		Session: structures.SessionConfig{
			TTL:           time.Hour,
			SweepInterval: 1 * time.Second,
		},
	}
}

func TestScheduler_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snap.dat")
	logger := &testutil.MockLogger{}
	metrics := &testutil.MockMetrics{}

	src := seededStore(t)
	s := NewScheduler(testConfig(path), logger, nil, NewFileManager(&testutil.MockCompressor{}, src, logger), metrics)
	require.NoError(t, s.Persist())
	assert.Equal(t, 1, metrics.Persisted)
	assert.Equal(t, 1, metrics.Records["call_events"])
	assert.Equal(t, 1, metrics.Records["voters"])

	dst := store.NewMemoryStore(models.NewFilterEngine(false))
	s = NewScheduler(testConfig(path), logger, nil, NewFileManager(&testutil.MockCompressor{}, dst, logger), metrics)
	require.NoError(t, s.Restore())
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestScheduler_Restore_FileNotExist(t *testing.T) {
	logger := &testutil.MockLogger{}
	fm := NewFileManager(&testutil.MockCompressor{}, seededStore(t), logger)

	s := NewScheduler(testConfig("/nonexistent/file.dat"), logger, nil, fm, &testutil.MockMetrics{})
	assert.NoError(t, s.Restore())
}

func TestScheduler_Restore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dat")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))
	logger := &testutil.MockLogger{}
	fm := NewFileManager(&testutil.MockCompressor{}, seededStore(t), logger)

	s := NewScheduler(testConfig(path), logger, nil, fm, &testutil.MockMetrics{})
	assert.Error(t, s.Restore())
}

func TestScheduler_Persist_WriteError(t *testing.T) {
	comp := &testutil.MockCompressor{
		CompressFn: func(b []byte) ([]byte, error) {
			return nil, errors.New("compress error")
		},
	}
	logger := &testutil.MockLogger{}
	fm := NewFileManager(comp, seededStore(t), logger)

	s := NewScheduler(testConfig(filepath.Join(t.TempDir(), "x.dat")), logger, nil, fm, &testutil.MockMetrics{})
	assert.Error(t, s.Persist())
	assert.Equal(t, 1, logger.Count("error"))
}

func TestScheduler_NoSnapshotSourceIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "never.dat")
	logger := &testutil.MockLogger{}
	fm := NewFileManager(&testutil.MockCompressor{}, nil, logger)

	s := NewScheduler(testConfig(path), logger, nil, fm, &testutil.MockMetrics{})
	assert.NoError(t, s.Restore())
	assert.NoError(t, s.Persist())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_StopNilCron(t *testing.T) {
	logger := &testutil.MockLogger{}
	s := NewScheduler(testConfig("/tmp/test.dat"), logger, nil, nil, &testutil.MockMetrics{})
	s.Stop()
}

func TestScheduler_InitRunsJobs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifecycle.dat")
	logger := &testutil.MockLogger{}
	sweeper := &countingSweeper{}
	fm := NewFileManager(&testutil.MockCompressor{}, seededStore(t), logger)

	s := NewScheduler(testConfig(path), logger, sweeper, fm, &testutil.MockMetrics{})
	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(path)
		return err == nil && sweeper.calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)
}
