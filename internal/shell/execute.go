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
	"strings"

	"vfsh/internal/vfs"
)

// Executors run only after the matching validator accepted the same
// arguments. A lookup that fails here is a bug, not a user error, so they panic.

func (s *Session) mustDir(cmd, path string) *vfs.Entry {
	dir := s.tree.Resolve(path)
	if dir == nil {
		panic(fmt.Sprintf("shell: %s: directory %q vanished after validation", cmd, path))
	}
	return dir
}

func (s *Session) mustEntry(cmd, dir, name string, kind vfs.Kind) *vfs.Entry {
	entry, _ := s.tree.Lookup(dir, name, kind)
	if entry == nil {
		panic(fmt.Sprintf("shell: %s: %s %q vanished after validation", cmd, kind, name))
	}
	return entry
}

func (s *Session) mustFile(cmd, path string) *vfs.Entry {
	dir, name := vfs.SplitDirAndName(path)
	return s.mustEntry(cmd, dir, name, vfs.File)
}

func execCreate(kind vfs.Kind) executeFunc {
	return func(s *Session, cmd string, args []string) string {
		dir, name := vfs.SplitDirAndName(args[0])
		parent := s.mustDir(cmd, dir)
		s.tree.Attach(parent, s.tree.Create(name, kind))
		return ""
	}
}

func execChangeDir(s *Session, cmd string, args []string) string {
	if args[0] == parentDir {
		s.tree.SetCurrent(s.tree.Current().Parent())
		return ""
	}
	s.tree.SetCurrent(s.mustDir(cmd, args[0]))
	return ""
}

func execPrintDir(s *Session, _ string, _ []string) string {
	return s.tree.Current().Path()
}

func execList(s *Session, cmd string, args []string) string {
	var path, flag string
	switch len(args) {
	case 1:
		if isListFlag(args[0]) {
			flag = args[0]
		} else {
			path = args[0]
		}
	case 2:
		path, flag = args[0], args[1]
	}

	children := s.mustDir(cmd, path).Children()
	names := make([]string, 0, len(children))
	for _, c := range children {
		if flag != flagAll && strings.HasPrefix(c.Name(), ".") {
			continue
		}
		name := c.Name()
		if c.IsDir() {
			name += vfs.Separator
		}
		names = append(names, name)
	}
	if flag == flagReverse {
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
	}
	return strings.Join(names, " ")
}

func execPrint(s *Session, cmd string, args []string) string {
	return s.mustFile(cmd, args[0]).Content()
}

func execSetContent(s *Session, cmd string, args []string) string {
	s.tree.SetContent(s.mustFile(cmd, args[0]), strings.Join(args[1:], " "))
	return ""
}

func execRemove(s *Session, cmd string, args []string) string {
	s.tree.Detach(s.mustFile(cmd, args[0]))
	return ""
}

func execMove(s *Session, cmd string, args []string) string {
	dir, name, kind := vfs.SplitDirNameAndKind(args[0])
	src := s.mustEntry(cmd, dir, name, kind)
	s.tree.Move(src, s.mustDir(cmd, args[1]))
	return ""
}

func execCopy(s *Session, cmd string, args []string) string {
	dir, name, kind := vfs.SplitDirNameAndKind(args[0])
	src := s.mustEntry(cmd, dir, name, kind)
	s.tree.Attach(s.mustDir(cmd, args[1]), vfs.Clone(src))
	return ""
}
