package domain

import "context"

type actorContextKey struct{}

// WithActor stores the authenticated user id recording ledger operations.
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actorID)
}

func ActorFromContext(ctx context.Context) (string, bool) {
	actorID, ok := ctx.Value(actorContextKey{}).(string)
	return actorID, ok && actorID != ""
}
