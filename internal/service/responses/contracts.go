//go:generate mockgen -source=contracts.go -destination=responses_mocks_test.go -package=responses_test

package responses

import (
	"context"

	"service-fleet-dispatch/internal/domain"
)

// ResolverPort is the part of the resolver the processor drives.
type ResolverPort interface {
	Resolve(ctx context.Context, res domain.Resolution) (domain.ResolveResult, error)
}
