package sessions

import (
	"context"
	"io"
	"os"

	"github.com/reusee/clbridge/configs"
	"github.com/reusee/clbridge/logs"
	"github.com/reusee/clbridge/nets"
	"github.com/reusee/clbridge/values"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
	Nets    nets.Module
}

// Output receives what the peer prints while evaluating.
type Output io.Writer

func (Module) Output() Output {
	return os.Stdout
}

// Connect opens the transport described by the config.
type Connect func(ctx context.Context) (Transport, error)

func (Module) Connect(
	config Config,
	dialer nets.Dialer,
	logger logs.Logger,
) Connect {
	return func(ctx context.Context) (Transport, error) {
		if config.Address != "" {
			return Dial(ctx, dialer, config.Address)
		}
		return StartProcess(ctx, logger, config.Command)
	}
}

// Open starts a configured session: it connects, then applies the package,
// backtrace and quicklisp settings.
type Open func(ctx context.Context) (*Session, error)

func (Module) Open(
	config Config,
	connect Connect,
	newSession logs.NewSession,
	logger logs.Logger,
	output Output,
) Open {
	return func(ctx context.Context) (*Session, error) {
		kind := "process"
		if config.Address != "" {
			kind = "tcp"
		}
		ctx, _ = newSession(ctx, kind)

		transport, err := connect(ctx)
		if err != nil {
			return nil, logs.WrapSession(ctx, err)
		}
		session := New(ctx, transport, logger, output)

		setup := func() error {
			if config.Package != "" && config.Package != values.UserPackage {
				if err := session.InPackage(ctx, config.Package); err != nil {
					return err
				}
			}
			if config.Backtrace {
				if err := session.SetBacktrace(ctx, true); err != nil {
					return err
				}
			}
			if config.Quicklisp {
				found, err := session.LoadQuicklisp(ctx)
				if err != nil {
					return err
				}
				if !found {
					logger.WarnContext(ctx, "quicklisp not found")
				}
			}
			return nil
		}
		if err := setup(); err != nil {
			session.Close()
			return nil, logs.WrapSession(ctx, err)
		}

		return session, nil
	}
}
