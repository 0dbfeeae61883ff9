package services

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
	"github.com/scanhound/scanhound-cli/internal/core/ports/driven"
)

// Ensure LimitedOracle implements the interface.
var _ driven.Oracle = (*LimitedOracle)(nil)

// Default oracle pacing for batch runs. The oracle is an expensive
// external process; the limiter bounds how fast consecutive files can
// fire requests at it.
const (
	defaultOracleRPS   = 0.5
	defaultOracleBurst = 1
)

// LimitedOracle decorates an Oracle with a token-bucket rate limit.
// Waiting respects the caller's context, so a cancelled run does not
// sit in the limiter queue.
type LimitedOracle struct {
	inner   driven.Oracle
	limiter *rate.Limiter
}

// NewLimitedOracle wraps an oracle with the default pacing.
func NewLimitedOracle(inner driven.Oracle) *LimitedOracle {
	return &LimitedOracle{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(defaultOracleRPS), defaultOracleBurst),
	}
}

// Complete waits for a limiter token, then delegates.
func (o *LimitedOracle) Complete(ctx context.Context, model domain.Model, prompt string) (string, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("oracle rate limit: %w", err)
	}
	return o.inner.Complete(ctx, model, prompt)
}

// Ping delegates without consuming a token.
func (o *LimitedOracle) Ping(ctx context.Context) error {
	return o.inner.Ping(ctx)
}
