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
	"errors"
	"io"
	"reflect"
	"testing"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"vfsh/internal/commands"
	"vfsh/internal/history"
	"vfsh/internal/shell"
)

func TestClassifyReadlineError(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		err      error
		expected readlineAction
	}{
		{"interrupt", "", readline.ErrInterrupt, readlineContinue},
		{"eof-empty", "", io.EOF, readlineExit},
		{"eof-whitespace", "   ", io.EOF, readlineExit},
		{"eof-line", "ls", io.EOF, readlineContinue},
		{"other", "", errors.New("boom"), readlineUnhandled},
		{"nil", "", nil, readlineUnhandled},
	}

	for _, tc := range cases {
		if got := classifyReadlineError(tc.line, tc.err); got != tc.expected {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.expected, got)
		}
	}
}

func TestHistoryKeys(t *testing.T) {
	h := history.New()
	keys := &historyKeys{history: h}

	if _, _, ok := keys.OnChange(nil, 0, readline.CharPrev); ok {
		t.Fatal("expected no change on empty history")
	}

	h.Record("ls")
	h.Record("pwd")

	line, pos, ok := keys.OnChange([]rune("typed"), 5, readline.CharPrev)
	if !ok || string(line) != "ls" || pos != 2 {
		t.Fatalf("expected ls at 2, got %q at %d (ok=%v)", string(line), pos, ok)
	}
	line, pos, ok = keys.OnChange(line, pos, readline.CharNext)
	if !ok || string(line) != "pwd" || pos != 3 {
		t.Fatalf("expected pwd at 3, got %q at %d (ok=%v)", string(line), pos, ok)
	}

	line, pos, ok = keys.OnChange([]rune("x"), 1, 'x')
	if ok || string(line) != "x" || pos != 1 {
		t.Fatal("expected other keys to pass through")
	}
}

func TestChildNames(t *testing.T) {
	session := shell.NewSession(shell.Options{RootName: "root"})
	for _, line := range []string{"mkdir docs", "touch a.txt"} {
		if res := session.Submit(line); !res.Accepted {
			t.Fatalf("%s rejected: %v", line, res.Err)
		}
	}
	got := childNames(session)("")
	if want := []string{"docs/", "a.txt"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNewCompleter(t *testing.T) {
	session := shell.NewSession(shell.Options{RootName: "root"})
	completer := newCompleter(session, commands.NewRegistry(zerolog.Nop()))

	children := completer.GetChildren()
	want := len(session.Commands()) + len(commands.NewRegistry(zerolog.Nop()).Names())
	if len(children) != want {
		t.Fatalf("expected %d completion roots, got %d", want, len(children))
	}
}
