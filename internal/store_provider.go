package internal

import (
	"calltracker/internal/models"
	"calltracker/internal/persistence"
	"calltracker/internal/providers"
	"calltracker/internal/store"
	"calltracker/internal/store/postgres"
	"calltracker/internal/structures"
	"context"
	"time"
)

const storeConnectTimeout = 15 * time.Second

// NewRecordStore opens the backend selected by store.driver. The postgres
// driver applies pending migrations first when database.migrateOnStart is set.
func NewRecordStore(conf *structures.Config, logger providers.Logger) (store.RecordStore, error) {
	if conf.Store.Driver != "postgres" {
		logger.Infof(providers.TypeApp, "Using in-memory record store")
		return store.NewMemoryStore(models.NewFilterEngine(conf.Search.AddressMatchesMetadata)), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, conf.Database)
	if err != nil {
		return nil, err
	}
	if conf.Database.MigrateOnStart {
		versions, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		if len(versions) > 0 {
			logger.Infof(providers.TypeApp, "Applied migrations %v", versions)
		}
	}
	logger.Infof(providers.TypeApp, "Using PostgreSQL record store")
	return postgres.New(pool, conf.Search.AddressMatchesMetadata), nil
}

// NewSnapshotter returns the store itself when it lives in process, nil
// otherwise.
func NewSnapshotter(rs store.RecordStore) persistence.Snapshotter {
	if ms, ok := rs.(*store.MemoryStore); ok {
		return ms
	}
	return nil
}
