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

// Package shell parses, validates and executes file system commands against
// a session's tree.
package shell

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/history"
	"vfsh/internal/vfs"
)

// Options configures a new Session.
type Options struct {
	RootName   string
	Extensions []string
	Logger     *zerolog.Logger
	// Clock overrides time.Now for entry timestamps.
	Clock func() time.Time
}

// Session holds one tree and one command history.
//
// Thread-safety: Session is not safe for concurrent use. Each submitted line
// runs to completion before the next one; front-ends call it from a single
// goroutine.
type Session struct {
	tree       *vfs.Tree
	history    *history.List
	commands   *orderedmap.OrderedMap[string, *Command]
	extensions map[string]bool
	logger     zerolog.Logger
}

// Result is the outcome of one submitted line.
type Result struct {
	Accepted bool
	Output   string
	Err      error
}

// Text returns the output of an accepted command or the rejection message.
func (r Result) Text() string {
	if r.Err != nil {
		return r.Err.Error()
	}
	return r.Output
}

// NewSession creates a session with an empty root directory.
func NewSession(opts Options) *Session {
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	var treeOpts []vfs.Option
	if opts.Clock != nil {
		treeOpts = append(treeOpts, vfs.WithClock(opts.Clock))
	}
	return &Session{
		tree:       vfs.NewTree(opts.RootName, treeOpts...),
		history:    history.New(),
		commands:   newCommandTable(),
		extensions: extensionSet(opts.Extensions),
		logger:     logger,
	}
}

// Tree exposes the session's tree for read-only views such as /tree.
func (s *Session) Tree() *vfs.Tree { return s.tree }

// History returns the command history. Front-ends record submitted lines and
// recall them on navigation keys.
func (s *Session) History() *history.List { return s.history }

// CurrentPath returns the path of the current directory, for the prompt.
func (s *Session) CurrentPath() string {
	return s.tree.Current().Path()
}

// Commands returns the supported commands in help order.
func (s *Session) Commands() []*Command {
	out := make([]*Command, 0, s.commands.Len())
	for pair := s.commands.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// CommandNames returns the names of the supported commands in help order.
func (s *Session) CommandNames() []string {
	out := make([]string, 0, s.commands.Len())
	for pair := s.commands.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Submit validates line and, if every check passes, executes it. A rejected
// line leaves the tree untouched. Blank lines are accepted with no output.
func (s *Session) Submit(line string) Result {
	name, args := tokenize(line)
	if name == "" {
		return Result{Accepted: true}
	}

	cmd, err := s.validate(name, args)
	if err != nil {
		s.logger.Debug().
			Str("command", name).
			Str("kind", string(apperrors.KindOf(err))).
			Err(err).
			Msg("Command rejected")
		return Result{Err: err}
	}

	out := cmd.execute(s, name, args)
	s.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Str("cwd", s.CurrentPath()).
		Msg("Command executed")
	return Result{Accepted: true, Output: out}
}

// Validate runs every check Submit would run without executing the line.
func (s *Session) Validate(line string) error {
	name, args := tokenize(line)
	if name == "" {
		return nil
	}
	_, err := s.validate(name, args)
	return err
}

// validate applies the gates in order: known command, arity, semantics.
func (s *Session) validate(name string, args []string) (*Command, error) {
	cmd, ok := s.commands.Get(name)
	if !ok {
		return nil, unsupported(name, s.CommandNames())
	}
	if err := cmd.checkArity(args); err != nil {
		return nil, err
	}
	if err := cmd.validate(s, name, args); err != nil {
		return nil, err
	}
	return cmd, nil
}

// tokenize splits a line on whitespace into a command name and its arguments.
func tokenize(line string) (string, []string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}
