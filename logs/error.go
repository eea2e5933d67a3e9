package logs

import (
	"context"
	"fmt"
)

// WrapSession annotates err with the session found in ctx.
func WrapSession(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	id, ok := SessionOf(ctx)
	if !ok {
		return err
	}
	return fmt.Errorf("session %s: %w", id, err)
}
