package logs

import "context"

type contextKey uint8

const (
	sessionKey contextKey = iota + 1
	exchangeKey
)

// SessionID names one peer session in log records.
type SessionID string

func WithSession(ctx context.Context, id SessionID) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

func SessionOf(ctx context.Context) (SessionID, bool) {
	id, ok := ctx.Value(sessionKey).(SessionID)
	return id, ok
}

// WithExchange tags ctx with the sequence number of a request/response
// exchange within its session.
func WithExchange(ctx context.Context, seq int64) context.Context {
	return context.WithValue(ctx, exchangeKey, seq)
}

func ExchangeOf(ctx context.Context) (int64, bool) {
	seq, ok := ctx.Value(exchangeKey).(int64)
	return seq, ok
}
