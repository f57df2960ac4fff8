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
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"vfsh/internal/commands"
	"vfsh/internal/shell"
)

func newBatchEnv() (*commands.Registry, *commands.Env) {
	debug := false
	return commands.NewRegistry(zerolog.Nop()), &commands.Env{
		Session: shell.NewSession(shell.Options{RootName: "root"}),
		Debug:   &debug,
	}
}

func TestRunBatch(t *testing.T) {
	registry, env := newBatchEnv()
	script := strings.Join([]string{
		"# notes",
		"mkdir docs",
		"touch docs/a.txt",
		"setContent docs/a.txt hello world",
		"",
		"print docs/a.txt",
		"ls docs",
	}, "\n")

	var out, errOut bytes.Buffer
	if err := runBatch(context.Background(), strings.NewReader(script), &out, &errOut, registry, env, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.String(); got != "hello world\na.txt\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if errOut.Len() != 0 {
		t.Fatalf("expected no errors, got %q", errOut.String())
	}
	if env.Session.History().Len() != 5 {
		t.Fatalf("expected comments and blanks to stay out of history, got %v", env.Session.History().Entries())
	}
}

func TestRunBatchReportsRejections(t *testing.T) {
	registry, env := newBatchEnv()
	script := "mkdir a\nmkdir a\nfrobnicate\npwd\n"

	var out, errOut bytes.Buffer
	err := runBatch(context.Background(), strings.NewReader(script), &out, &errOut, registry, env, zerolog.Nop())
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected rejected error, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(errOut.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "line 2: mkdir: ") || !strings.HasPrefix(lines[1], "line 3: ") {
		t.Fatalf("unexpected stderr %q", errOut.String())
	}
	if got := out.String(); got != "root\n" {
		t.Fatalf("expected script to continue after rejections, got %q", got)
	}
}

func TestRunBatchQuit(t *testing.T) {
	registry, env := newBatchEnv()
	var out bytes.Buffer
	err := runBatch(context.Background(), strings.NewReader("pwd\n/quit\nmkdir late\n"), &out, &bytes.Buffer{}, registry, env, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.Session.Tree().Current().Len() != 0 {
		t.Fatal("expected lines after /quit to be skipped")
	}
}

func TestRunBatchCanceled(t *testing.T) {
	registry, env := newBatchEnv()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runBatch(ctx, strings.NewReader("mkdir a\n"), &bytes.Buffer{}, &bytes.Buffer{}, registry, env, zerolog.Nop())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
