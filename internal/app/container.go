package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"service-fleet-dispatch/internal/config"
	"service-fleet-dispatch/internal/http/handlers"
	obs "service-fleet-dispatch/internal/http/middleware"
	"service-fleet-dispatch/internal/http/middleware/ratelimit"
	"service-fleet-dispatch/internal/http/router"
	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/metrics"
	"service-fleet-dispatch/internal/notify"
	"service-fleet-dispatch/internal/repository"
	"service-fleet-dispatch/internal/service/broadcast"
	"service-fleet-dispatch/internal/service/eligibility"
	"service-fleet-dispatch/internal/service/resolver"
)

type (
	dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)
	migrateFunc   func(context.Context, *pgxpool.Pool) error

	// operationTimeout bounds a single storage-backed use case call.
	operationTimeout time.Duration
	sweepInterval    time.Duration
)

// sweeper expires stale offers in the background.
type sweeper interface {
	ExpireStale(ctx context.Context) (int64, error)
}

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	migrate   migrateFunc
	config    *config.Config
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		migrate:   repository.Migrate,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithConfig uses cfg instead of loading it from the environment.
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	b.config = cfg
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the HTTP service container.
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the response consumer container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildBase(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildBase(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.config); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerNotify(container); err != nil {
		return nil, fmt.Errorf("notify: %w", err)
	}
	if err := registerService(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the HTTP service container.
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the worker container.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, cfg *config.Config) error {
	loadConfig := config.Load
	if cfg != nil {
		loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		newRegistry,
		func(reg *prometheus.Registry) prometheus.Registerer { return reg },
		func(reg *prometheus.Registry) prometheus.Gatherer { return reg },
		provideMetrics,
		func() operationTimeout { return operationTimeout(3 * time.Second) },
		func(cfg *config.Config) sweepInterval { return sweepInterval(cfg.Offer.SweepInterval) },
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container,
		providerDB,
		repository.NewBookingRepo,
		repository.NewVehicleRepo,
		repository.NewOfferRepo,
		repository.NewNotificationRepo,
	)
}

func registerNotify(container *dig.Container) error {
	return provideAll(container,
		newSMSDispatcher,
		newMQTTClient,
		newDispatcher,
		newOutbox,
	)
}

func registerService(container *dig.Container) error {
	return provideAll(container,
		func(cfg *config.Config, repo *repository.VehicleRepo) *eligibility.Selector {
			return eligibility.NewSelector(repo, eligibility.LeastTrips{}, cfg.Offer.PoolCap)
		},
		newBroadcaster,
		newResolver,
		func(r *resolver.Resolver) sweeper { return r },
	)
}

type broadcasterIn struct {
	dig.In
	Config   *config.Config
	Logger   logx.Logger
	Bookings *repository.BookingRepo
	Offers   *repository.OfferRepo
	Selector *eligibility.Selector
	Outbox   *notify.Outbox
	Metrics  *metrics.Offers
	Timeout  operationTimeout
}

func newBroadcaster(in broadcasterIn) *broadcast.Broadcaster {
	return broadcast.New(in.Bookings, in.Offers, in.Selector, in.Outbox, in.Metrics, broadcast.Config{
		TTL:              in.Config.Offer.TTL,
		OperationTimeout: time.Duration(in.Timeout),
	}, in.Logger.With(logx.String("component", "broadcast")))
}

type resolverIn struct {
	dig.In
	Logger  logx.Logger
	Offers  *repository.OfferRepo
	Staff   *repository.BookingRepo
	Outbox  *notify.Outbox
	Metrics *metrics.Offers
	Timeout operationTimeout
}

func newResolver(in resolverIn) *resolver.Resolver {
	return resolver.New(in.Offers, in.Staff, in.Outbox, in.Metrics, time.Duration(in.Timeout),
		in.Logger.With(logx.String("component", "resolver")))
}

type routerIn struct {
	dig.In
	Base      *handlers.Handlers
	Offers    *handlers.OffersHandler
	Logger    logx.Logger
	HTTP      *obs.HTTPMetrics
	RateLimit *ratelimit.Middleware
	Gatherer  prometheus.Gatherer
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Base:        in.Base,
		Offers:      in.Offers,
		Logger:      in.Logger,
		HTTPMetrics: in.HTTP,
		RateLimit:   in.RateLimit,
		Metrics:     promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{}),
	})
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewBroadcastUsecase,
		handlers.NewResolveUsecase,
		handlers.NewOffersHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}
