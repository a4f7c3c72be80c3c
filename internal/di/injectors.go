//go:build wireinject
// +build wireinject

package di

import (
	"calltracker/internal"
	"calltracker/internal/controllers"
	"calltracker/internal/guest"
	"calltracker/internal/persistence"
	"calltracker/internal/providers"
	"calltracker/internal/roster"
	"calltracker/internal/services"
	"calltracker/internal/session"
	"calltracker/internal/store"
	"calltracker/internal/structures"

	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,

	internal.NewRecordStore,
	internal.NewSnapshotter,
	persistence.NewZstdCompressor,
	persistence.NewFileManager,
	roster.NewImporter,
	wire.Bind(new(roster.Reader), new(*persistence.FileManager)),
)

var sessionSet = wire.NewSet(
	services.NewRosterService,
	wire.Bind(new(services.RosterServiceInterface), new(*services.RosterService)),
	wire.Bind(new(session.RosterSearcher), new(*services.RosterService)),
	wire.Bind(new(session.CallStore), new(store.RecordStore)),
	session.NewRegistry,
	wire.Bind(new(persistence.Sweeper), new(*session.Registry)),
	wire.Bind(new(controllers.SessionCounter), new(*session.Registry)),
	persistence.NewScheduler,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		sessionSet,
		providers.NewInstrumentedCacheProvider,
		guest.NewStore,

		services.NewGuestService,
		wire.Bind(new(services.GuestServiceInterface), new(*services.GuestService)),
		services.NewLeaderboardService,
		wire.Bind(new(services.LeaderboardServiceInterface), new(*services.LeaderboardService)),
		services.NewSlipService,
		wire.Bind(new(services.SlipServiceInterface), new(*services.SlipService)),
		services.NewExportService,
		wire.Bind(new(services.ExportServiceInterface), new(*services.ExportService)),

		controllers.NewApiController,
		controllers.NewAuthController,
		controllers.NewVoterController,
		controllers.NewLeaderboardController,
		controllers.NewSlipController,
		controllers.NewExportController,
		controllers.NewHealthController,
		internal.NewControllers,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitRosterJob(cfg *structures.CliFlags) (*internal.RosterJob, error) {

	wire.Build(
		coreSet,
		persistence.NewSnapshotScheduler,
		internal.NewRosterJob,
	)

	return nil, nil
}
