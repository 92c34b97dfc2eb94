package notify

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"service-fleet-dispatch/internal/domain"
)

// RateLimited holds each channel to its own send rate.
type RateLimited struct {
	next      Dispatcher
	limiters  map[domain.NotificationChannel]*rate.Limiter
	throttled counter
}

// NewRateLimited creates one limiter per channel. A non-positive perSecond disables limiting.
func NewRateLimited(next Dispatcher, perSecond float64, burst int, throttled counter, channels ...domain.NotificationChannel) Dispatcher {
	if perSecond <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	l := &RateLimited{
		next:      next,
		limiters:  make(map[domain.NotificationChannel]*rate.Limiter, len(channels)),
		throttled: throttled,
	}
	for _, ch := range channels {
		l.limiters[ch] = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return l
}

// Dispatch waits for the channel limiter, then forwards.
func (l *RateLimited) Dispatch(ctx context.Context, msg Message) error {
	if lim, ok := l.limiters[msg.Channel]; ok {
		if err := lim.Wait(ctx); err != nil {
			if l.throttled != nil {
				l.throttled.Inc()
			}
			return fmt.Errorf("wait %s rate limit: %w", msg.Channel, err)
		}
	}
	return l.next.Dispatch(ctx, msg)
}
