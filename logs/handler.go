package logs

import (
	"context"
	"log/slog"
)

// Handler adds the session and exchange found in the context to each record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if id, ok := SessionOf(ctx); ok {
		record.AddAttrs(slog.String("session", string(id)))
	}
	if seq, ok := ExchangeOf(ctx); ok {
		record.AddAttrs(slog.Int64("exchange", seq))
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithAttrs(attrs),
	}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		Handler: h.Handler.WithGroup(name),
	}
}
