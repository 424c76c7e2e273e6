package web

import (
	"context"

	"linkdrop/internal/auth"
)

// Outcome is the credential gate's verdict for one request. The gate
// never rejects a request; handlers read the outcome and decide how to
// degrade for anonymous callers.
type Outcome struct {
	Authenticated bool
	Identity      auth.Identity
}

type ctxKey struct{}

// WithOutcome attaches the gate outcome to the request context.
func WithOutcome(ctx context.Context, o Outcome) context.Context {
	return context.WithValue(ctx, ctxKey{}, o)
}

// OutcomeFrom reads the gate outcome; absent means anonymous.
func OutcomeFrom(ctx context.Context) Outcome {
	if o, ok := ctx.Value(ctxKey{}).(Outcome); ok {
		return o
	}
	return Outcome{}
}
