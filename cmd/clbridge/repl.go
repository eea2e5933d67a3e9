package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/clbridge/reader"
	"github.com/reusee/clbridge/sessions"
)

func runREPL(ctx context.Context, session *sessions.Session) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".clbridge_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      prompt(session),
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()

	var pending strings.Builder
	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			continue
		}
		pending.WriteString(line)
		pending.WriteByte('\n')

		form, err := session.ReadString(pending.String())
		if errors.Is(err, reader.ErrUnexpectedEOF) {
			rl.SetPrompt(strings.Repeat(" ", len(prompt(session))))
			continue
		}
		pending.Reset()
		rl.SetPrompt(prompt(session))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		rets, err := session.EvalValues(ctx, form)
		var protocolErr sessions.ProtocolError
		if errors.As(err, &protocolErr) || errors.Is(err, sessions.ErrClosed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		if err := printValues(os.Stdout, rets); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		rl.SetPrompt(prompt(session))
	}
}

func prompt(session *sessions.Session) string {
	return session.Package() + "> "
}
