package starlarks

import (
	"context"
	"fmt"

	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/sessions"
	"github.com/reusee/dscope"
	"go.starlark.net/repl"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

type Module struct {
	dscope.Module
	Logs     logs.Module
	Sessions sessions.Module
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

func newThread(ctx context.Context, name string, output sessions.Output) *starlark.Thread {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(output, msg)
		},
	}
	WithContext(thread, ctx)
	return thread
}

// ExecScript runs a Starlark script with the lisp module predeclared. src
// is as for starlark.ExecFile: nil reads filename.
type ExecScript func(ctx context.Context, peer Peer, filename string, src any) error

func (Module) ExecScript(
	logger logs.Logger,
	output sessions.Output,
) ExecScript {
	return func(ctx context.Context, peer Peer, filename string, src any) error {
		logger.DebugContext(ctx, "exec script", "file", filename)
		thread := newThread(ctx, filename, output)
		_, err := starlark.ExecFileOptions(fileOptions, thread, filename, src, Globals(peer))
		if err != nil {
			if evalErr, ok := err.(*starlark.EvalError); ok {
				logger.DebugContext(ctx, "script failed", "file", filename, "backtrace", evalErr.Backtrace())
			}
			return fmt.Errorf("%s: %w", filename, err)
		}
		return nil
	}
}

// REPL reads Starlark statements from the terminal until end of input.
type REPL func(ctx context.Context, peer Peer)

func (Module) REPL(
	logger logs.Logger,
	output sessions.Output,
) REPL {
	return func(ctx context.Context, peer Peer) {
		logger.InfoContext(ctx, "starlark repl")
		defer func() {
			logger.InfoContext(ctx, "starlark repl end")
		}()
		repl.REPLOptions(fileOptions, newThread(ctx, "repl", output), Globals(peer))
	}
}
