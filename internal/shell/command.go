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

package shell

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/vfs"
)

// unbounded marks a command whose trailing arguments are free-form.
const unbounded = -1

// validateFunc checks arguments against the tree without touching it.
type validateFunc func(s *Session, name string, args []string) error

// executeFunc applies an already validated command and returns its output.
type executeFunc func(s *Session, name string, args []string) string

// Command describes one file system command.
type Command struct {
	Name        string
	Usage       string
	Description string
	MinArgs     int
	MaxArgs     int

	validate validateFunc
	execute  executeFunc
}

// checkArity is the first gate every command goes through.
func (c *Command) checkArity(args []string) error {
	n := len(args)
	if n >= c.MinArgs && (c.MaxArgs == unbounded || n <= c.MaxArgs) {
		return nil
	}
	var want string
	switch {
	case c.MaxArgs == 0:
		want = "no arguments"
	case c.MaxArgs == unbounded:
		want = fmt.Sprintf("at least %d arguments", c.MinArgs)
	case c.MinArgs == c.MaxArgs:
		want = pluralArgs(c.MinArgs)
	default:
		want = fmt.Sprintf("%d to %d arguments", c.MinArgs, c.MaxArgs)
	}
	return apperrors.Newf(apperrors.KindArityMismatch, c.Name,
		"expected %s, got %d (usage: %s)", want, n, c.Usage)
}

func pluralArgs(n int) string {
	if n == 1 {
		return "1 argument"
	}
	return fmt.Sprintf("%d arguments", n)
}

func newCommandTable() *orderedmap.OrderedMap[string, *Command] {
	table := orderedmap.New[string, *Command]()
	for _, c := range []*Command{
		{
			Name: "touch", Usage: "touch <path>", Description: "Create an empty file",
			MinArgs: 1, MaxArgs: 1,
			validate: createValidator(vfs.File), execute: execCreate(vfs.File),
		},
		{
			Name: "mkdir", Usage: "mkdir <path>", Description: "Create a directory",
			MinArgs: 1, MaxArgs: 1,
			validate: createValidator(vfs.Directory), execute: execCreate(vfs.Directory),
		},
		{
			Name: "ls", Usage: "ls [<path>] [-r|-a]", Description: "List a directory (-a shows hidden, -r reverses)",
			MinArgs: 0, MaxArgs: 2,
			validate: validateList, execute: execList,
		},
		{
			Name: "cd", Usage: "cd <..|path>", Description: "Change the current directory",
			MinArgs: 1, MaxArgs: 1,
			validate: validateChangeDir, execute: execChangeDir,
		},
		{
			Name: "pwd", Usage: "pwd", Description: "Print the current directory",
			MinArgs: 0, MaxArgs: 0,
			validate: func(*Session, string, []string) error { return nil }, execute: execPrintDir,
		},
		{
			Name: "print", Usage: "print <path>", Description: "Print a file's content",
			MinArgs: 1, MaxArgs: 1,
			validate: validateFileTarget, execute: execPrint,
		},
		{
			Name: "setContent", Usage: "setContent <path> <content...>", Description: "Replace a file's content",
			MinArgs: 2, MaxArgs: unbounded,
			validate: validateFileTarget, execute: execSetContent,
		},
		{
			Name: "rm", Usage: "rm <path>", Description: "Remove a file",
			MinArgs: 1, MaxArgs: 1,
			validate: validateFileTarget, execute: execRemove,
		},
		{
			Name: "mv", Usage: "mv <path> <path>", Description: "Move a file (or a directory, with a trailing /) into a directory",
			MinArgs: 2, MaxArgs: 2,
			validate: validateTransfer, execute: execMove,
		},
		{
			Name: "copy", Usage: "copy <path> <path>", Description: "Copy a file (or a directory, with a trailing /) into a directory",
			MinArgs: 2, MaxArgs: 2,
			validate: validateTransfer, execute: execCopy,
		},
	} {
		table.Set(c.Name, c)
	}
	return table
}

// unsupported builds the rejection for an unknown command name, suggesting
// the closest known command when there is one.
func unsupported(name string, known []string) error {
	msg := fmt.Sprintf("unsupported command %q", name)
	ranks := fuzzy.RankFindFold(name, known)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		msg += fmt.Sprintf(" (did you mean %q?)", ranks[0].Target)
	}
	return apperrors.New(apperrors.KindUnsupportedCommand, "", msg)
}
