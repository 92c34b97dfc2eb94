package responses

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"service-fleet-dispatch/internal/apperr"
	"service-fleet-dispatch/internal/domain"
	"service-fleet-dispatch/internal/logx"
)

// Processor applies relayed candidate replies to offers.
type Processor struct {
	resolver ResolverPort
	factory  *actionFactory
	logger   logx.Logger
}

// NewProcessor creates a new Processor.
func NewProcessor(resolver ResolverPort, logger logx.Logger) *Processor {
	if logger == nil {
		logger = logx.Nop()
	}
	p := &Processor{resolver: resolver, logger: logger}
	p.factory = newActionFactory(p.onConfirm, p.onReject)
	return p
}

// Handle processes a single Event. Malformed replies yield apperr.ErrInvalid.
// Replies the resolver refuses (unknown, resolved or expired offers) are logged
// and dropped; only transport failures are returned otherwise.
func (p *Processor) Handle(ctx context.Context, e Event) error {
	fn, ok := p.factory.get(e.Action)
	if !ok {
		return fmt.Errorf("unknown action %q: %w", e.Action, apperr.ErrInvalid)
	}
	return fn(ctx, e)
}

func (p *Processor) onConfirm(ctx context.Context, e Event) error {
	return p.resolve(ctx, e, domain.ActionConfirm)
}

func (p *Processor) onReject(ctx context.Context, e Event) error {
	return p.resolve(ctx, e, domain.ActionReject)
}

func (p *Processor) resolve(ctx context.Context, e Event, action domain.OfferAction) error {
	id, err := uuid.Parse(strings.TrimSpace(e.OfferID))
	if err != nil {
		return fmt.Errorf("offer id %q: %w", e.OfferID, apperr.ErrInvalid)
	}

	res, err := p.resolver.Resolve(ctx, domain.Resolution{
		OfferID:    id,
		Action:     action,
		PriceOffer: e.PriceOffer,
		Notes:      e.Notes,
	})
	if err != nil {
		if apperr.IsClient(err) {
			p.logger.Info("response refused",
				logx.String("event", "response_refused"),
				logx.Stringer("offer_id", id),
				logx.String("action", string(action)),
				logx.String("channel", e.Channel),
				logx.Err(err),
			)
			return nil
		}
		return fmt.Errorf("resolve offer %s: %w", id, err)
	}

	p.logger.Info("response applied",
		logx.String("event", "response_applied"),
		logx.Stringer("offer_id", res.OfferID),
		logx.String("status", string(res.Status)),
		logx.String("channel", e.Channel),
	)
	return nil
}
