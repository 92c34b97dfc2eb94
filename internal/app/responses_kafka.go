package app

import (
	"context"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/service/responses"
	"service-fleet-dispatch/internal/transport/kafka"
)

type responseHandler interface {
	Handle(ctx context.Context, e responses.Event) error
}

// makeResponsesKafka marks client errors permanent so the consumer commits past them.
func makeResponsesKafka(h responseHandler) kafka.HandleFunc {
	return func(ctx context.Context, e responses.Event) error {
		err := h.Handle(ctx, e)
		if err != nil && apperr.IsClient(err) {
			return kafka.Permanent(err)
		}
		return err
	}
}
