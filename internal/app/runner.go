package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/notify"
)

// Runner runs the HTTP server and the offer expiry sweep.
type Runner struct {
	runFn func(*dig.Container) error
	exit  func(int)
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run, exit: os.Exit}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logger := containerLogger(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		if r.exit != nil {
			r.exit(1)
		}
	}
}

func containerLogger(container *dig.Container) logx.Logger {
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

type runIn struct {
	dig.In
	Ctx      context.Context
	Logger   logx.Logger
	Server   *http.Server
	Pool     *pgxpool.Pool
	Sweeper  sweeper
	Interval sweepInterval
	SMS      *notify.KafkaDispatcher `optional:"true"`
	MQTT     mqtt.Client             `optional:"true"`
}

func appRun(in runIn) error {
	serveErr := startServer(in.Server, in.Logger)
	startSweepLoop(in.Ctx, in.Logger, in.Sweeper, time.Duration(in.Interval))

	var err error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down fleet-dispatch")
		err = in.Ctx.Err()
	case err = <-serveErr:
		in.Logger.Error("listen error", logx.Err(err))
	}

	gracefulShutdown(in.Server, in.Logger, 15*time.Second)
	closeResources(in)
	return err
}

func startServer(server *http.Server, logger logx.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("fleet-dispatch listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

// startSweepLoop expires stale offers every interval until ctx is done.
// A non-positive interval disables the sweep.
func startSweepLoop(ctx context.Context, logger logx.Logger, s sweeper, interval time.Duration) {
	if s == nil || interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.ExpireStale(ctx); err != nil && ctx.Err() == nil {
					logger.Error("offer expiry sweep failed", logx.Err(err))
				}
			}
		}
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in runIn) {
	if err := in.Server.Close(); err != nil {
		in.Logger.Error("server close error", logx.Err(err))
	}
	closeNotify(in.Logger, in.SMS, in.MQTT)
	if in.Pool != nil {
		in.Pool.Close()
	}
}
