package app

import (
	"go.uber.org/dig"

	"service-fleet-dispatch/internal/config"
	"service-fleet-dispatch/internal/logx"
	"service-fleet-dispatch/internal/service/resolver"
	"service-fleet-dispatch/internal/service/responses"
	"service-fleet-dispatch/internal/transport/kafka"
)

var newConsumer = kafka.NewConsumer

func newResponsesConsumer(cfg *config.Config, logger logx.Logger, p *responses.Processor) (*kafka.Consumer, error) {
	return newConsumer(
		logger.With(logx.String("component", "responses_consumer")),
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		cfg.Kafka.ResponsesTopic,
		makeResponsesKafka(p),
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(r *resolver.Resolver, logger logx.Logger) *responses.Processor {
			return responses.NewProcessor(r, logger.With(logx.String("component", "responses")))
		},
		newResponsesConsumer,
	)
}
