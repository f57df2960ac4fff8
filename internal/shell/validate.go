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
	"strings"

	apperrors "vfsh/internal/errors"
	"vfsh/internal/vfs"
)

const parentDir = ".."

// ls flags
const (
	flagReverse = "-r"
	flagAll     = "-a"
)

func isListFlag(arg string) bool {
	return arg == flagReverse || arg == flagAll
}

func noSuchDirectory(cmd, path string) error {
	return apperrors.Newf(apperrors.KindPathNotFound, cmd, "no such directory %q", path)
}

func createValidator(kind vfs.Kind) validateFunc {
	return func(s *Session, cmd string, args []string) error {
		dir, name := vfs.SplitDirAndName(args[0])
		if err := s.checkName(cmd, name, kind); err != nil {
			return err
		}
		parent := s.tree.Resolve(dir)
		if parent == nil {
			return noSuchDirectory(cmd, dir)
		}
		if vfs.FindChild(parent, name, kind) != nil {
			return apperrors.Collision(cmd, kind.String(), name)
		}
		return nil
	}
}

func validateChangeDir(s *Session, cmd string, args []string) error {
	target := args[0]
	if target == parentDir {
		if s.tree.Current().Parent() == nil {
			return apperrors.New(apperrors.KindPathNotFound, cmd, "already at the root directory")
		}
		return nil
	}
	if !s.tree.IsValidPath(target) {
		return noSuchDirectory(cmd, target)
	}
	return nil
}

func validateList(s *Session, cmd string, args []string) error {
	switch len(args) {
	case 1:
		arg := args[0]
		if isListFlag(arg) || s.tree.IsValidPath(arg) {
			return nil
		}
		if strings.HasPrefix(arg, "-") {
			return invalidFlag(cmd, arg)
		}
		return noSuchDirectory(cmd, arg)
	case 2:
		if !s.tree.IsValidPath(args[0]) {
			return noSuchDirectory(cmd, args[0])
		}
		if !isListFlag(args[1]) {
			return invalidFlag(cmd, args[1])
		}
	}
	return nil
}

func invalidFlag(cmd, flag string) error {
	return apperrors.Newf(apperrors.KindInvalidListFlag, cmd,
		"invalid flag %q (expected %s or %s)", flag, flagReverse, flagAll)
}

// validateFileTarget checks that args[0] names an existing file.
func validateFileTarget(s *Session, cmd string, args []string) error {
	dir, name := vfs.SplitDirAndName(args[0])
	file, parent := s.tree.Lookup(dir, name, vfs.File)
	if parent == nil {
		return noSuchDirectory(cmd, dir)
	}
	if file == nil {
		return apperrors.Newf(apperrors.KindPathNotFound, cmd, "no such file %q", args[0])
	}
	return nil
}

// validateTransfer covers mv and copy: the source entry must exist, the
// destination must be an existing directory other than "..", and the
// destination must not already hold an entry with the same name and kind.
func validateTransfer(s *Session, cmd string, args []string) error {
	dir, name, kind := vfs.SplitDirNameAndKind(args[0])
	src, parent := s.tree.Lookup(dir, name, kind)
	if parent == nil {
		return noSuchDirectory(cmd, dir)
	}
	if src == nil {
		return apperrors.Newf(apperrors.KindPathNotFound, cmd, "no such %s", describe(kind, args[0]))
	}

	to := args[1]
	if to == parentDir {
		return apperrors.Newf(apperrors.KindInvalidMoveTarget, cmd, "%q is not a valid destination", to)
	}
	dst := s.tree.Resolve(to)
	if dst == nil {
		return noSuchDirectory(cmd, to)
	}
	if cmd == "mv" && src.IsAncestorOf(dst) {
		return apperrors.Newf(apperrors.KindInvalidMoveTarget, cmd,
			"cannot move %q into itself", args[0])
	}
	if vfs.FindChild(dst, name, kind) != nil {
		return apperrors.Collision(cmd, kind.String(), name)
	}
	return nil
}
