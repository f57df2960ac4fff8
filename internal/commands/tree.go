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

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/vfs"
)

func handleTree(env *Env, args []string) Outcome {
	if len(args) > 1 {
		return Outcome{Err: apperrors.Newf(apperrors.KindArityMismatch, "/tree",
			"expected at most 1 argument, got %d (usage: /tree [<path>])", len(args))}
	}
	tree := env.Session.Tree()
	start := tree.Current()
	if len(args) == 1 {
		if start = tree.Resolve(args[0]); start == nil {
			return Outcome{Err: apperrors.Newf(apperrors.KindPathNotFound, "/tree", "no such directory %q", args[0])}
		}
	}

	out, err := RenderTree(start, env.now())
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Output: out}
}

// RenderTree draws dir and everything below it, followed by a count line.
func RenderTree(dir *vfs.Entry, now time.Time) (string, error) {
	rendered, err := pterm.DefaultTree.WithRoot(pterm.TreeNode{
		Text:     dir.Path(),
		Children: treeNodes(dir, now),
	}).Srender()
	if err != nil {
		return "", fmt.Errorf("render tree: %w", err)
	}

	var dirs, files int
	_ = vfs.Walk(dir, func(e *vfs.Entry, depth int) error {
		switch {
		case depth == 0:
		case e.IsDir():
			dirs++
		default:
			files++
		}
		return nil
	})

	return strings.TrimRight(rendered, "\n") + "\n" + summary(dirs, files), nil
}

func treeNodes(dir *vfs.Entry, now time.Time) []pterm.TreeNode {
	children := dir.Children()
	if len(children) == 0 {
		return nil
	}
	nodes := make([]pterm.TreeNode, 0, len(children))
	for _, c := range children {
		nodes = append(nodes, pterm.TreeNode{
			Text:     label(c, now),
			Children: treeNodes(c, now),
		})
	}
	return nodes
}

func label(e *vfs.Entry, now time.Time) string {
	age := humanize.RelTime(e.ModifiedAt(), now, "ago", "from now")
	if e.IsDir() {
		return fmt.Sprintf("%s%s  (%s)", e.Name(), vfs.Separator, age)
	}
	return fmt.Sprintf("%s  (%s, %s)", e.Name(), humanize.Bytes(uint64(len(e.Content()))), age)
}

func summary(dirs, files int) string {
	return fmt.Sprintf("%d %s, %d %s", dirs, plural(dirs, "directory", "directories"), files, plural(files, "file", "files"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
