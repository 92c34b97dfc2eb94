package handlers

import (
	"context"

	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/service/broadcast"
	"service-fleet-dispatch/internal/service/resolver"
)

type broadcastUsecase interface {
	Broadcast(ctx context.Context, req broadcast.Request) (domain.BroadcastResult, error)
}

// NewBroadcastUsecase wires a Broadcaster into a broadcastUsecase.
func NewBroadcastUsecase(b *broadcast.Broadcaster) broadcastUsecase {
	return b
}

type resolveUsecase interface {
	Resolve(ctx context.Context, res domain.Resolution) (domain.ResolveResult, error)
}

// NewResolveUsecase wires a Resolver into a resolveUsecase.
func NewResolveUsecase(r *resolver.Resolver) resolveUsecase {
	return r
}
