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
	"io"
	"strings"

	"github.com/chzyer/readline"

	"vfsh/internal/commands"
	"vfsh/internal/history"
	"vfsh/internal/shell"
)

type readlineAction int

const (
	readlineContinue readlineAction = iota
	readlineExit
	readlineUnhandled
)

func classifyReadlineError(line string, err error) readlineAction {
	switch {
	case err == nil:
		return readlineUnhandled
	case err == readline.ErrInterrupt:
		return readlineContinue
	case err == io.EOF:
		if strings.TrimSpace(line) == "" {
			return readlineExit
		}
		return readlineContinue
	default:
		return readlineUnhandled
	}
}

// historyKeys replaces readline's own history with the session history, so
// Up and Down walk the same list the TUI and /history use.
type historyKeys struct {
	history *history.List
}

func (h *historyKeys) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	var dir history.Direction
	switch key {
	case readline.CharPrev:
		dir = history.Older
	case readline.CharNext:
		dir = history.Newer
	default:
		return line, pos, false
	}
	recalled, ok := h.history.Recall(dir)
	if !ok {
		return line, pos, false
	}
	out := []rune(recalled)
	return out, len(out), true
}

// childNames lists the entries of the current directory for completion.
// Directories carry a trailing "/".
func childNames(session *shell.Session) func(string) []string {
	return func(string) []string {
		children := session.Tree().Current().Children()
		names := make([]string, 0, len(children))
		for _, child := range children {
			if child.IsDir() {
				names = append(names, child.Name()+"/")
				continue
			}
			names = append(names, child.Name())
		}
		return names
	}
}

// newCompleter completes command names, then entry names of the current
// directory for their operands.
func newCompleter(session *shell.Session, registry *commands.Registry) *readline.PrefixCompleter {
	names := childNames(session)
	items := make([]readline.PrefixCompleterInterface, 0)
	for _, cmd := range session.Commands() {
		var operand readline.PrefixCompleterInterface
		switch cmd.MaxArgs {
		case 0:
			items = append(items, readline.PcItem(cmd.Name))
			continue
		case 1:
			operand = readline.PcItemDynamic(names)
		default:
			operand = readline.PcItemDynamic(names, readline.PcItemDynamic(names))
		}
		items = append(items, readline.PcItem(cmd.Name, operand))
	}
	for _, name := range registry.Names() {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}
