// Copyright (C) 2025 Dyne.org foundation
// designed, written and maintained by Denis Roio <jaromil@dyne.org>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"vfsh/internal/commands"
	"vfsh/internal/shell"
	"vfsh/internal/theme"
)

type consoleDeps struct {
	session  *shell.Session
	registry *commands.Registry
	env      *commands.Env
	theme    *theme.Manager
	prompt   string
	logger   zerolog.Logger
}

func consolePrompt(session *shell.Session, colors *theme.ColorScheme, prompt string) string {
	return colors.Prompt.Sprint(session.CurrentPath()) + prompt
}

func runConsole(ctx context.Context, deps consoleDeps) error {
	deps.logger.Debug().Msg("Running in console mode")
	colors := deps.theme.ColorScheme()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:              consolePrompt(deps.session, colors, deps.prompt),
		HistoryLimit:        -1,
		AutoComplete:        newCompleter(deps.session, deps.registry),
		Listener:            &historyKeys{history: deps.session.History()},
		FuncFilterInputRune: filterInterruptRune,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	var closeOnce sync.Once
	closeReadline := func() { closeOnce.Do(func() { _ = rl.Close() }) }
	defer closeReadline()

	go func() {
		<-ctx.Done()
		closeReadline()
	}()

	out := rl.Stdout()
	fmt.Fprintln(out, colors.Header.Sprint("vfsh "+Version))
	fmt.Fprintln(out, "Type /help for commands, Ctrl+D or /quit to exit")
	fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if err != nil {
			switch classifyReadlineError(line, err) {
			case readlineContinue:
				continue
			case readlineExit:
				deps.logger.Debug().Msg("Readline closed")
				return nil
			default:
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("failed to read input: %w", err)
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		deps.logger.Info().Str("user_input", line).Msg("User input received")

		reply := deps.registry.Handle(line, deps.env)
		if reply.Clear {
			_, _ = readline.ClearScreen(out)
		}
		renderReply(out, reply, deps.theme)
		if reply.Quit {
			return nil
		}
		rl.SetPrompt(consolePrompt(deps.session, colors, deps.prompt))
	}
}

// renderReply prints one reply: errors in the error color, listings colored
// per entry, anything else as is.
func renderReply(w io.Writer, reply commands.Reply, mgr *theme.Manager) {
	colors := mgr.ColorScheme()
	switch {
	case reply.Err != nil:
		fmt.Fprintln(w, colors.Error.Sprint(reply.Err.Error()))
	case reply.Text == "":
	case reply.Listing:
		fmt.Fprintln(w, mgr.Listing(reply.Text))
	default:
		fmt.Fprintln(w, reply.Text)
	}
}
