package cmds

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// PrintUsage writes the defined commands, sub commands indented under their
// parent.
func (p *Executor) PrintUsage(w io.Writer) {
	printCommands(w, p.commands, 0)
}

func printCommands(w io.Writer, commands map[string]*Command, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if command == nil || slices.Contains(command.Aliases, name) {
			// aliases are listed with the command
			continue
		}
		line := indent + name
		if len(command.Aliases) > 0 {
			line += ", " + strings.Join(command.Aliases, ", ")
		}
		if n := command.arity(); n > 0 {
			line += fmt.Sprintf(" <%d args>", n)
		}
		if command.Description != "" {
			line += "\t" + command.Description
		}
		fmt.Fprintln(w, line)
		if len(command.Subs) > 0 {
			printCommands(w, command.Subs, depth+1)
		}
	}
}
