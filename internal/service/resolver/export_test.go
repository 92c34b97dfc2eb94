package resolver

import "time"

// SetNow overrides the clock.
func SetNow(r *Resolver, now func() time.Time) { r.now = now }
