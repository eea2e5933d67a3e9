package sessions

import (
	"strings"

	"github.com/reusee/clbridge/cmds"
	"github.com/reusee/clbridge/configs"
	"github.com/reusee/clbridge/values"
	"github.com/reusee/clbridge/vars"
)

var (
	lispFlag      = cmds.Var[string]("-lisp", "peer command line")
	addrFlag      = cmds.Var[string]("-addr", "TCP address of a running peer")
	backtraceFlag = cmds.Switch("-backtrace", "append backtraces to remote errors")
	quicklispFlag = cmds.Switch("-quicklisp", "load quicklisp in the peer")
	packageFlag   = cmds.Var[string]("-package", "initial package")
)

type Config struct {
	// Command starts the peer; the script path is appended.
	Command []string
	// Address of a peer to dial instead of starting a process.
	Address   string
	Backtrace bool
	Quicklisp bool
	Package   string
}

func (Module) Config(
	loader configs.Loader,
) Config {
	command := configs.First[[]string](loader, "command")
	if *lispFlag != "" {
		command = strings.Fields(*lispFlag)
	}
	if len(command) == 0 {
		command = DefaultCommand
	}
	return Config{
		Command: command,
		Address: vars.FirstNonZero(
			*addrFlag,
			configs.First[string](loader, "address"),
		),
		Backtrace: *backtraceFlag || vars.DerefOrZero(configs.First[*bool](loader, "backtrace")),
		Quicklisp: *quicklispFlag || vars.DerefOrZero(configs.First[*bool](loader, "quicklisp")),
		Package: vars.FirstNonZero(
			*packageFlag,
			configs.First[string](loader, "package"),
			values.UserPackage,
		),
	}
}
