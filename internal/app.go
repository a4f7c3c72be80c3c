package internal

import (
	"calltracker/internal/controllers"
	"calltracker/internal/persistence/interfaces"
	"calltracker/internal/providers"
	"calltracker/internal/roster"
	"calltracker/internal/session"
	"calltracker/internal/store"
	"calltracker/internal/structures"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

func NewApp(healthController *controllers.HealthController, scheduler interfaces.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, registry *session.Registry, records store.RecordStore, importer *roster.Importer) (*App, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		providers.RegisterSessionGauge(conf, registry)
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)
	err := scheduler.Restore()
	if err != nil {
		logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	if err := seedRoster(conf, records, importer, logger); err != nil {
		logger.Errorf(providers.TypeApp, "Roster seed error: %s", err)
	}

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		scheduler.Stop()
		records.Close()
		return nil, fmt.Errorf("server error: %w", err)
	}

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	registry.CloseAll()
	err = scheduler.Persist()
	records.Close()
	if err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}

// seedRoster imports store.rosterPath into an empty in-memory store.
func seedRoster(conf *structures.Config, records store.RecordStore, importer *roster.Importer, logger providers.Logger) error {
	if conf.Store.Driver == "postgres" || conf.Store.RosterPath == "" {
		return nil
	}
	ctx := context.Background()
	n, err := records.CountVoters(ctx)
	if err != nil || n > 0 {
		return err
	}
	res, err := importer.Import(ctx, conf.Store.RosterPath)
	if err != nil {
		return err
	}
	logger.Infof(providers.TypeApp, "Seeded roster from %s: %d voters", conf.Store.RosterPath, res.Upserted)
	return nil
}
