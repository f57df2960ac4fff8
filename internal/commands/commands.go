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

// Package commands implements the slash meta-commands shared by the console
// and the TUI. They inspect the session but never change its tree.
package commands

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/shell"
)

// Prefix marks a meta-command line.
const Prefix = "/"

// Env is what a meta-command may act on.
type Env struct {
	Session *shell.Session
	// Debug is toggled by /debug; OnDebug, when set, is told the new value.
	Debug   *bool
	OnDebug func(enabled bool)
	// Now overrides time.Now for /tree ages.
	Now func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Outcome tells the front-end what to show and what to do next.
type Outcome struct {
	Output string
	Err    error
	Clear  bool
	Quit   bool
}

// Handler runs one meta-command.
type Handler func(env *Env, args []string) Outcome

// Command is a registered meta-command.
type Command struct {
	Name        string
	Description string
	Handler     Handler
}

// Registry holds meta-commands in registration order.
type Registry struct {
	commands *orderedmap.OrderedMap[string, *Command]
	logger   zerolog.Logger
	keys     []string
}

// NewRegistry returns a registry with the built-in meta-commands.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{
		commands: orderedmap.New[string, *Command](),
		logger:   logger,
	}

	r.Register("help", "Show available commands", r.handleHelp)
	r.Register("history", "Show submitted command lines", handleHistory)
	r.Register("tree", "Draw the tree below the current directory (/tree / for the root)", handleTree)
	r.Register("clear", "Clear the screen", handleClear)
	r.Register("debug", "Toggle debug logging", handleDebug)
	r.Register("quit", "Exit the application", handleQuit)
	r.Register("exit", "Exit the application", handleQuit)

	return r
}

// Register adds or replaces a meta-command.
func (r *Registry) Register(name, description string, handler Handler) {
	r.commands.Set(name, &Command{
		Name:        name,
		Description: description,
		Handler:     handler,
	})
}

// SetKeys sets the keyboard shortcut lines shown by /help.
func (r *Registry) SetKeys(lines ...string) {
	r.keys = lines
}

// Commands returns the meta-commands in registration order.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, r.commands.Len())
	for pair := r.commands.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Names returns the meta-command names with their prefix.
func (r *Registry) Names() []string {
	out := make([]string, 0, r.commands.Len())
	for pair := r.commands.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, Prefix+pair.Key)
	}
	return out
}

// IsMeta reports whether line is addressed to the registry rather than the
// session.
func IsMeta(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), Prefix)
}

// Execute runs a meta-command line. It returns false when line is not one.
func (r *Registry) Execute(line string, env *Env) (Outcome, bool) {
	if !IsMeta(line) {
		return Outcome{}, false
	}
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), Prefix))
	if len(fields) == 0 {
		return Outcome{Err: r.unknown("")}, true
	}
	name := strings.ToLower(fields[0])

	r.logger.Debug().Str("command", name).Msg("Executing meta command")

	cmd, ok := r.commands.Get(name)
	if !ok {
		return Outcome{Err: r.unknown(name)}, true
	}
	return cmd.Handler(env, fields[1:]), true
}

// Reply is the front-end independent result of one input line.
type Reply struct {
	Text string
	Err  error
	// Listing marks Text as ls output, which front-ends color per entry.
	Listing bool
	Clear   bool
	Quit    bool
}

// Handle records line in the session history and dispatches it either to a
// meta-command or to the session. Blank lines produce an empty Reply.
func (r *Registry) Handle(line string, env *Env) Reply {
	line = strings.TrimSpace(line)
	if line == "" {
		return Reply{}
	}
	env.Session.History().Record(line)

	if out, ok := r.Execute(line, env); ok {
		return Reply{Text: out.Output, Err: out.Err, Clear: out.Clear, Quit: out.Quit}
	}

	res := env.Session.Submit(line)
	name := strings.Fields(line)[0]
	return Reply{
		Text:    res.Output,
		Err:     res.Err,
		Listing: res.Accepted && name == "ls",
	}
}

func (r *Registry) unknown(name string) error {
	msg := fmt.Sprintf("unknown command %s%s (type /help for available commands)", Prefix, name)
	if name != "" {
		known := make([]string, 0, r.commands.Len())
		for pair := r.commands.Oldest(); pair != nil; pair = pair.Next() {
			known = append(known, pair.Key)
		}
		if ranks := fuzzy.RankFindFold(name, known); len(ranks) > 0 {
			sort.Sort(ranks)
			msg = fmt.Sprintf("unknown command %s%s (did you mean %s%s?)", Prefix, name, Prefix, ranks[0].Target)
		}
	}
	return apperrors.New(apperrors.KindUnsupportedCommand, "", msg)
}

func (r *Registry) handleHelp(env *Env, _ []string) Outcome {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 8, 2, ' ', 0)

	fmt.Fprintln(w, "Commands:")
	for _, c := range env.Session.Commands() {
		fmt.Fprintf(w, "  %s\t%s\n", c.Usage, c.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Meta commands:")
	for _, c := range r.Commands() {
		fmt.Fprintf(w, "  %s%s\t%s\n", Prefix, c.Name, c.Description)
	}
	if len(r.keys) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Keyboard shortcuts:")
		for _, k := range r.keys {
			fmt.Fprintf(w, "  %s\n", k)
		}
	}
	w.Flush()

	return Outcome{Output: strings.TrimRight(b.String(), "\n")}
}

func handleHistory(env *Env, _ []string) Outcome {
	entries := env.Session.History().Entries()
	if len(entries) == 0 {
		return Outcome{Output: "No command history"}
	}
	var b strings.Builder
	width := len(fmt.Sprint(len(entries)))
	for i, line := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*d  %s", width, i+1, line)
	}
	return Outcome{Output: b.String()}
}

func handleClear(_ *Env, _ []string) Outcome {
	return Outcome{Clear: true}
}

func handleDebug(env *Env, _ []string) Outcome {
	if env.Debug == nil {
		return Outcome{Err: apperrors.New(apperrors.KindUnsupportedCommand, "", "debug mode is not available here")}
	}
	*env.Debug = !*env.Debug
	if env.OnDebug != nil {
		env.OnDebug(*env.Debug)
	}
	if *env.Debug {
		return Outcome{Output: "Debug mode enabled"}
	}
	return Outcome{Output: "Debug mode disabled"}
}

func handleQuit(_ *Env, _ []string) Outcome {
	return Outcome{Quit: true}
}
