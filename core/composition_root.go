package core

import (
	"github.com/impactcrypto/dashboard/appstate"
	"github.com/impactcrypto/dashboard/cache"
	"github.com/impactcrypto/dashboard/coingecko"
	"github.com/impactcrypto/dashboard/config"
	"github.com/impactcrypto/dashboard/fetch"
	"github.com/impactcrypto/dashboard/fxrate"
	"github.com/impactcrypto/dashboard/fxtimeseries"
	"github.com/impactcrypto/dashboard/metrics"
)

// App bundles the wired services the UI consumes
type App struct {
	Registry   *Registry
	State      *appstate.Store
	Markets    *coingecko.Client
	FX         *fxrate.Client
	Timeseries *fxtimeseries.Service
	Dashboard  *Dashboard
}

// Setup creates and registers all services
func Setup(cfg *config.Config) *App {
	registry := NewRegistry()

	// Cache first: every remote call goes through it
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	fetcher := fetch.NewClient(cacheService, cfg.Fetch, metrics.NewWriter("fetch"))

	marketsClient := coingecko.NewClient(fetcher, cfg.Coingecko)
	fxClient := fxrate.NewClient(fetcher, cfg.FxRate)
	timeseries := fxtimeseries.NewService(fxClient)

	state := appstate.NewStore(appstate.NewFilePersister(cfg.StatePath))

	dashboard := NewDashboard(marketsClient, state, cfg.Poller)
	registry.Register(dashboard)

	if cfg.Metrics.Enabled {
		registry.Register(metrics.NewExposition(cfg.Metrics.Port))
	}

	return &App{
		Registry:   registry,
		State:      state,
		Markets:    marketsClient,
		FX:         fxClient,
		Timeseries: timeseries,
		Dashboard:  dashboard,
	}
}
