package app

import (
	"context"
	"errors"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/notify"
	"service-fleet-dispatch/internal/transport/kafka"
)

// WorkerRunner runs the Kafka responses consumer.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes until the container context is canceled and panics on any other error.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

type workerIn struct {
	dig.In
	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	SMS      *notify.KafkaDispatcher
	MQTT     mqtt.Client
}

func workerRun(in workerIn) error {
	if in.Consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(in)

	in.Logger.Info("fleet-dispatch worker started")
	return in.Consumer.Run(in.Ctx)
}

func closeWorker(in workerIn) {
	if err := in.Consumer.Close(); err != nil {
		in.Logger.Error("kafka close error", logx.Err(err))
	}
	closeNotify(in.Logger, in.SMS, in.MQTT)
	if in.Pool != nil {
		in.Pool.Close()
	}
}
