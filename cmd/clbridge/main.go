package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/clbridge/cmds"
	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/modes"
	"github.com/reusee/clbridge/sessions"
	"github.com/reusee/clbridge/starlarks"
	"github.com/reusee/dscope"
	"golang.org/x/term"
)

var (
	evalArgs     = cmds.Collect[string]("eval", "evaluate a form and print its values")
	runArg       = cmds.Var[string]("run", "run a starlark script against the peer")
	starlarkFlag = cmds.Switch("starlark", "start a starlark repl instead of a lisp repl")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	var err error
	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(func(
		open sessions.Open,
		logger logs.Logger,
		execScript starlarks.ExecScript,
		starlarkREPL starlarks.REPL,
	) {
		session, openErr := open(ctx)
		if openErr != nil {
			err = openErr
			return
		}
		defer func() {
			if closeErr := session.Close(); closeErr != nil {
				logger.WarnContext(ctx, "close session", "error", closeErr)
			}
		}()

		switch {
		case *runArg != "":
			err = execScript(ctx, session, *runArg, nil)
		case len(*evalArgs) > 0:
			for _, src := range *evalArgs {
				if err = evalPrint(ctx, session, src, os.Stdout); err != nil {
					return
				}
			}
		case !term.IsTerminal(int(os.Stdin.Fd())):
			err = evalStream(ctx, session, os.Stdin, os.Stdout)
		case *starlarkFlag:
			starlarkREPL(ctx, session)
		default:
			runREPL(ctx, session)
		}
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
