package notify

import (
	"context"
	"fmt"

	"service-fleet-dispatch/internal/domain"
)

// Router sends each message through the dispatcher registered for its channel.
type Router struct {
	routes   map[domain.NotificationChannel]Dispatcher
	fallback Dispatcher
}

// NewRouter creates a Router. fallback may be nil.
func NewRouter(routes map[domain.NotificationChannel]Dispatcher, fallback Dispatcher) *Router {
	r := &Router{routes: make(map[domain.NotificationChannel]Dispatcher, len(routes)), fallback: fallback}
	for ch, d := range routes {
		if d != nil {
			r.routes[ch] = d
		}
	}
	return r
}

// Dispatch implements Dispatcher.
func (r *Router) Dispatch(ctx context.Context, msg Message) error {
	if d, ok := r.routes[msg.Channel]; ok {
		return d.Dispatch(ctx, msg)
	}
	if r.fallback != nil {
		return r.fallback.Dispatch(ctx, msg)
	}
	return Permanent(fmt.Errorf("%w: %q", ErrUnsupportedChannel, msg.Channel))
}
