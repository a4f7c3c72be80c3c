package persistence

import (
	"calltracker/internal/persistence/interfaces"
	"calltracker/internal/providers"
	"calltracker/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

// Sweeper drops idle sessions and returns how many were removed.
type Sweeper interface {
	Sweep() int
}

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	sweeper     Sweeper
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

// Init starts the periodic jobs. Snapshot persistence only runs for the
// memory store.
func (s *Scheduler) Init() {
	s.cron = gron.New()

	if s.canSnapshot() && s.config.Store.SaveInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Store.SaveInterval), func() {
			if err := s.Persist(); err != nil {
				return
			}
			s.logger.Debugf(providers.TypeApp, "Persisted snapshot to file %s", s.config.Store.SnapshotPath)
		})
	}

	if s.sweeper != nil && s.config.Session.SweepInterval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Session.SweepInterval), func() {
			s.opsMu.Lock()
			defer s.opsMu.Unlock()

			if n := s.sweeper.Sweep(); n > 0 {
				s.logger.Infof(providers.TypeApp, "Swept %d idle sessions", n)
			}
		})
	}

	s.cron.Start()
}

func (s *Scheduler) canSnapshot() bool {
	return s.fileManager != nil && s.fileManager.CanSnapshot()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if !s.canSnapshot() {
		return nil
	}
	loaded, err := s.fileManager.LoadFromFile(s.config.Store.SnapshotPath)
	if err != nil {
		return err
	}
	if loaded {
		s.logger.Infof(providers.TypeApp, "Restored snapshot from %s", s.config.Store.SnapshotPath)
	}
	return nil
}

func (s *Scheduler) Persist() error {
	if !s.canSnapshot() {
		return nil
	}
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	snap, err := s.fileManager.SaveToFile(s.config.Store.SnapshotPath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.metrics.SetRecordsTotal("voters", len(snap.Voters))
	s.metrics.SetRecordsTotal("identities", len(snap.Identities))
	s.metrics.SetRecordsTotal("call_events", len(snap.CallEvents))
	s.metrics.SetRecordsTotal("export_events", len(snap.ExportEvents))
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, sweeper Sweeper, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		sweeper:     sweeper,
		fileManager: fileManager,
		metrics:     metrics,
	}
}

// NewSnapshotScheduler is a scheduler without the session sweep, for one-shot
// commands that only restore and persist.
func NewSnapshotScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return NewScheduler(config, logger, nil, fileManager, metrics)
}
