// Package api is the HTTP surface of the back office: session-gated CRUD
// for products, categories, billboards and pages, file upload, and the
// public read endpoints the storefront consumes.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shopkeeper"
	"shopkeeper/cache"
	"shopkeeper/store"
	"shopkeeper/uploader"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpcache "github.com/victorspringer/http-cache"
	"github.com/victorspringer/http-cache/adapter/memory"
)

// HealthChecker reports backend reachability for the check route.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// API server
type API struct {
	Log      *zerolog.Logger
	Routes   chi.Router
	Addr     string
	Config   *shopkeeper.Config
	Store    *store.Store
	Cache    *cache.Store
	Uploader *uploader.Uploader
	Auth     AuthBackend
	Backend  HealthChecker
}

// NewAPI registers routes
func NewAPI(
	log *zerolog.Logger,
	addr string,
	config *shopkeeper.Config,
	st *store.Store,
	cacheStore *cache.Store,
	up *uploader.Uploader,
	auth AuthBackend,
	backend HealthChecker,
) (*API, error) {
	api := &API{
		Log:      log,
		Routes:   chi.NewRouter(),
		Addr:     addr,
		Config:   config,
		Store:    st,
		Cache:    cacheStore,
		Uploader: up,
		Auth:     auth,
		Backend:  backend,
	}

	api.Routes.Use(middleware.RequestID)
	api.Routes.Use(middleware.RealIP)
	api.Routes.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{config.AdminWebHostURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	// Response cache fronting the public read routes, refreshed by TTL; the
	// keyed cache behind them handles mutation-driven invalidation.
	memcached, err := memory.NewAdapter(
		memory.AdapterWithAlgorithm(memory.LRU),
		memory.AdapterWithCapacity(10000000),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create memory adaptor: %w", err)
	}
	cacheClient, err := httpcache.NewClient(
		httpcache.ClientWithAdapter(memcached),
		httpcache.ClientWithTTL(1*time.Minute),
		httpcache.ClientWithRefreshKey("opn"),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create cache client: %w", err)
	}

	api.Routes.Handle("/metrics", promhttp.Handler())
	api.Routes.Route("/api", func(r chi.Router) {
		r.Mount("/check", CheckRouter(api))
		r.Mount("/auth", AuthRouter(api))
		r.Mount("/files", FileRouter(api))
		r.Mount("/products", ProductRouter(api, cacheClient.Middleware))
		r.Mount("/categories", CategoryRouter(api))
		r.Mount("/billboards", BillboardRouter(api))
		r.Mount("/pages", PageRouter(api))

		// Storefront reads, kept at their original paths.
		billboards := &BillboardController{API: api}
		r.Get("/fetch-billboard-items", cacheClient.Middleware(WithError(billboards.List)).ServeHTTP)
	})

	return api, nil
}

// Run serves the API until the context is cancelled.
func (api *API) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    api.Addr,
		Handler: api.Routes,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		if err != nil {
			api.Log.Warn().Err(err).Msg("server shutdown")
		}
	}()

	api.Log.Info().Str("addr", api.Addr).Msg("serving admin API")
	err := server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
