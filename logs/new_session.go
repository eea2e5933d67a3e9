package logs

import (
	"context"
	"crypto/rand"
)

// NewSession allocates a session id, stores it in the returned context and
// logs the start of the session.
type NewSession func(ctx context.Context, kind string) (context.Context, SessionID)

func (Module) NewSession(
	logger Logger,
) NewSession {
	return func(ctx context.Context, kind string) (context.Context, SessionID) {
		var args []any
		if parent, ok := SessionOf(ctx); ok {
			args = append(args, "parent", parent)
		}
		id := SessionID(rand.Text()[:10])
		ctx = WithSession(ctx, id)
		args = append(args, "transport", kind)
		logger.InfoContext(ctx, "new session", args...)
		return ctx, id
	}
}
