package driven

import (
	"context"

	"github.com/scanhound/scanhound-cli/internal/core/domain"
)

// Oracle is the external language model consulted for naming, boundary
// detection, and field extraction. It is a pure request-response
// capability with explicit failure modes: unavailable, timeout, and
// malformed output are surfaced as wrapped domain errors.
//
// Implementations may include:
//   - the claude CLI invoked as a subprocess (prompt on stdin)
//   - the Anthropic Messages HTTP API
//   - a deterministic fake for tests
type Oracle interface {
	// Complete sends a prompt to the given model tier and returns the
	// raw text reply. The call blocks until the reply arrives, the
	// context is cancelled, or the adapter's timeout fires.
	Complete(ctx context.Context, model domain.Model, prompt string) (string, error)

	// Ping verifies the oracle is reachable without running inference.
	Ping(ctx context.Context) error
}
