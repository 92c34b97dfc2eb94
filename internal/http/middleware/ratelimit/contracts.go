package ratelimit

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(key string) bool
}
